package gallery

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/handiism/allofart/internal/config"
	apphttp "github.com/handiism/allofart/internal/http"
	ioutils "github.com/handiism/allofart/internal/io"
	"github.com/handiism/allofart/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a gallery export update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// Summary describes a finished export.
type Summary struct {
	Dir    string
	Files  int
	Failed int
	Bytes  int64
}

// String returns a one-line description, e.g. "6 images (1.2 MB) in /tmp/x".
func (s Summary) String() string {
	msg := fmt.Sprintf("%d images (%s) in %s", s.Files, humanize.Bytes(uint64(max(s.Bytes, 0))), s.Dir)
	if s.Failed > 0 {
		msg += fmt.Sprintf(", %d failed", s.Failed)
	}
	return msg
}

// Saver exports the portrait and the gallery of an artist to disk.
type Saver struct {
	httpClient  *apphttp.Client
	assetBase   string
	dir         string
	concurrency int
	maxSize     int
	retries     int
	cooldown    time.Duration

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// NewSaver creates a Saver from settings. onProgress may be nil.
func NewSaver(settings *config.Settings, httpClient *apphttp.Client, onProgress func(ProgressEvent)) *Saver {
	if httpClient == nil {
		httpClient = apphttp.NewClient()
	}
	return &Saver{
		httpClient:  httpClient,
		assetBase:   settings.AssetBase(),
		dir:         settings.GalleryDir,
		concurrency: max(1, settings.GalleryConcurrency),
		maxSize:     settings.GalleryMaxSize,
		retries:     max(1, settings.GalleryRetries),
		cooldown:    200 * time.Millisecond,
		onProgress:  onProgress,
	}
}

type job struct {
	name string // file name without extension
	path string // image path from the record
}

// jobs lists the portrait followed by the bounded gallery slice.
func jobs(a *model.Artist) []job {
	var out []job
	if p := a.Portrait(); p != "" {
		out = append(out, job{name: "portrait", path: p})
	}
	for i, p := range a.Gallery() {
		out = append(out, job{name: fmt.Sprintf("%02d", i+1), path: p})
	}
	return out
}

// Save downloads the images of a into <gallery_dir>/<artist name>/.
// Individual image failures are reported and counted; Save only returns an
// error when the context is cancelled or no image could be saved.
func (s *Saver) Save(ctx context.Context, a *model.Artist) (Summary, error) {
	if err := a.Validate(); err != nil {
		return Summary{}, err
	}

	summary := Summary{Dir: filepath.Join(s.dir, ioutils.SanitizeFileName(a.Name))}
	todo := jobs(a)
	if len(todo) == 0 {
		s.progress(ProgressEvent{Message: fmt.Sprintf("%s has no images", a.Name), Level: LevelWarning})
		return summary, nil
	}

	var (
		saved  atomic.Int32
		failed atomic.Int32
		bytes  atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for _, j := range todo {
		g.Go(func() error {
			n, err := s.saveOne(ctx, summary.Dir, j)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				failed.Add(1)
				s.progress(ProgressEvent{Message: fmt.Sprintf("Error saving %s: %v", j.path, err), Level: LevelError})
				return nil // Continue with other images
			}
			saved.Add(1)
			bytes.Add(n)
			return nil
		})
	}

	err := g.Wait()
	summary.Files = int(saved.Load())
	summary.Failed = int(failed.Load())
	summary.Bytes = bytes.Load()

	if err != nil {
		return summary, err
	}
	if summary.Files == 0 {
		return summary, fmt.Errorf("no images saved for %s", a.Name)
	}

	level := LevelSuccess
	if summary.Failed > 0 {
		level = LevelWarning
	}
	s.progress(ProgressEvent{Message: "Saved " + summary.String(), Level: level})
	return summary, nil
}

func (s *Saver) saveOne(ctx context.Context, dir string, j job) (int64, error) {
	url := model.ImageURL(s.assetBase, j.path)

	var data []byte
	var err error
	for tries := 0; tries < s.retries; tries++ {
		data, err = s.httpClient.DownloadBytes(ctx, url)
		if err == nil || errors.Is(err, apphttp.ErrBodyTooLarge) {
			break
		}
		if tries+1 < s.retries {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, s.retries, j.path), Level: LevelVerbose})
			s.waitForRetry(ctx, tries)
		}
	}
	if err != nil {
		return 0, err
	}

	ext := ioutils.ImageExt(j.path)
	if s.maxSize > 0 {
		thumb, err := ioutils.Thumbnail(data, s.maxSize)
		if err != nil {
			s.progress(ProgressEvent{Message: fmt.Sprintf("Keeping original %s: %v", j.path, err), Level: LevelWarning})
		} else {
			data, ext = thumb, ".jpg"
		}
	}

	if err := ioutils.WriteFile(filepath.Join(dir, j.name+ext), data); err != nil {
		return 0, err
	}

	s.progress(ProgressEvent{Message: fmt.Sprintf("Saved %s", j.name+ext), Level: LevelVerbose})
	return int64(len(data)), nil
}

func (s *Saver) waitForRetry(ctx context.Context, tries int) {
	wait := s.cooldown << tries
	t := time.NewTimer(wait)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (s *Saver) progress(event ProgressEvent) {
	if s.onProgress == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onProgress(event)
}
