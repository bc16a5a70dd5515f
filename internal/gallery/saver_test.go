package gallery

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/handiism/allofart/internal/config"
	"github.com/handiism/allofart/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		goleak.IgnoreAnyFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreAnyFunction("net/http.(*persistConn).writeLoop"),
	)
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func newSaver(t *testing.T, handler http.HandlerFunc, tweak func(*config.Settings)) (*Saver, string, *[]ProgressEvent) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	settings := config.DefaultSettings()
	settings.APIURL = srv.URL
	settings.GalleryDir = t.TempDir()
	settings.GalleryRetries = 2
	if tweak != nil {
		tweak(settings)
	}

	var mu sync.Mutex
	var events []ProgressEvent
	s := NewSaver(settings, nil, func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		events = append(events, e)
	})
	s.cooldown = 0
	return s, settings.GalleryDir, &events
}

func listFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestSaver_SavesPortraitAndBoundedGallery(t *testing.T) {
	img := pngBytes(t, 4, 4)
	s, root, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(img)
	}, nil)

	a := &model.Artist{Name: "Claude Monet"}
	for i := range 9 {
		a.Images = append(a.Images, "/img/"+string(rune('a'+i))+".png")
	}

	summary, err := s.Save(context.Background(), a)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "Claude Monet"), summary.Dir)
	assert.Equal(t, 7, summary.Files, "portrait plus six gallery images")
	assert.Zero(t, summary.Failed)
	assert.Equal(t, int64(7*len(img)), summary.Bytes)
	assert.Equal(t,
		[]string{"01.png", "02.png", "03.png", "04.png", "05.png", "06.png", "portrait.png"},
		listFiles(t, summary.Dir))
}

func TestSaver_FewImages(t *testing.T) {
	s, _, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("jpegdata"))
	}, nil)

	summary, err := s.Save(context.Background(), &model.Artist{Name: "X", Images: []string{"/p.jpg", "/1.jpg", "/2.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, []string{"01.jpg", "02.jpg", "portrait.jpg"}, listFiles(t, summary.Dir))
}

func TestSaver_PartialFailure(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	s, _, events := newSaver(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		if r.URL.Path == "/broken.jpg" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}, nil)

	summary, err := s.Save(context.Background(), &model.Artist{Name: "Y", Images: []string{"/p.jpg", "/broken.jpg"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, hits["/broken.jpg"], "failed image is retried")
	assert.Contains(t, summary.String(), "1 failed")

	var errorsSeen int
	for _, e := range *events {
		if e.Level == LevelError {
			errorsSeen++
		}
	}
	assert.Equal(t, 1, errorsSeen)
}

func TestSaver_OversizedImageIsNotWritten(t *testing.T) {
	var mu sync.Mutex
	hits := map[string]int{}
	huge := bytes.Repeat([]byte{'x'}, 32<<20+1)
	s, root, _ := newSaver(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits[r.URL.Path]++
		mu.Unlock()
		if r.URL.Path == "/huge.png" {
			_, _ = w.Write(huge)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}, nil)

	summary, err := s.Save(context.Background(), &model.Artist{Name: "W", Images: []string{"/p.png", "/huge.png"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, int64(2), summary.Bytes)
	assert.Equal(t, 1, hits["/huge.png"], "oversized image is not retried")
	assert.Equal(t, []string{"portrait.png"}, listFiles(t, filepath.Join(root, "W")))
}

func TestSaver_AllFail(t *testing.T) {
	s, _, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}, nil)

	_, err := s.Save(context.Background(), &model.Artist{Name: "Z", Images: []string{"/p.jpg"}})
	assert.Error(t, err)
}

func TestSaver_NoImages(t *testing.T) {
	s, _, events := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {}, nil)

	summary, err := s.Save(context.Background(), &model.Artist{Name: "Empty"})
	require.NoError(t, err)
	assert.Zero(t, summary.Files)
	require.Len(t, *events, 1)
	assert.Equal(t, LevelWarning, (*events)[0].Level)
}

func TestSaver_Resizes(t *testing.T) {
	img := pngBytes(t, 300, 100)
	s, _, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(img)
	}, func(st *config.Settings) { st.GalleryMaxSize = 60 })

	summary, err := s.Save(context.Background(), &model.Artist{Name: "R", Images: []string{"/p.png"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"portrait.jpg"}, listFiles(t, summary.Dir))
}

func TestSaver_Cancelled(t *testing.T) {
	s, _, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("x"))
	}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.Save(ctx, &model.Artist{Name: "C", Images: []string{"/p.jpg", "/1.jpg"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSaver_InvalidRecord(t *testing.T) {
	s, _, _ := newSaver(t, func(w http.ResponseWriter, _ *http.Request) {}, nil)
	_, err := s.Save(context.Background(), &model.Artist{})
	assert.Error(t, err)
}
