package detail

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/handiism/allofart/internal/artist"
	"github.com/handiism/allofart/internal/errmsg"
	"github.com/handiism/allofart/internal/model"
	"github.com/handiism/allofart/internal/viewport"
)

// Request is a fetch issued for one identifier. Token identifies the
// generation the request belongs to.
type Request struct {
	ID    string
	Token uint64

	ctx context.Context
}

// Result is the outcome of a Request.
type Result struct {
	ID     string
	Token  uint64
	Record *model.Artist
	Err    error
}

// Controller owns the state of the artist page: the identifier, the
// fetched record, the selected tab and the page breakpoint.
//
// All methods except Fetch must be called from the event loop. Fetch only
// reads the request and the fetcher, so it may run elsewhere.
type Controller struct {
	fetcher   artist.Fetcher
	log       *zap.Logger
	threshold int

	monitor *viewport.Monitor

	id      string
	token   uint64
	cancel  context.CancelFunc
	loading bool
	record  *model.Artist
	err     error

	tab model.Tab
}

// NewController creates a Controller. threshold is the page breakpoint in
// width-units. A nil logger discards log output.
func NewController(fetcher artist.Fetcher, threshold int, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		fetcher:   fetcher,
		log:       log.Named("detail"),
		threshold: threshold,
		tab:       model.TabAbout,
	}
}

// Mount attaches the page breakpoint to s. onChange is called when the
// narrow flag flips. Mounting an already mounted controller releases the
// previous registration first.
func (c *Controller) Mount(s viewport.Signal, onChange func(narrow bool)) {
	c.monitor.Unmount()
	c.monitor = viewport.Mount(s, c.threshold, onChange)
}

// Unmount releases the resize handler, cancels any in-flight request and
// resets the page state.
func (c *Controller) Unmount() {
	c.monitor.Unmount()
	c.monitor = nil
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	// Results still in flight belong to an older generation.
	c.token++
	c.id = ""
	c.loading = false
	c.record = nil
	c.err = nil
	c.tab = model.TabAbout
}

// Narrow reports the page breakpoint state. An unmounted controller is
// never narrow.
func (c *Controller) Narrow() bool {
	return c.monitor.Narrow()
}

// OnIdentifierAvailable registers id as the current identifier. It returns
// a Request when a fetch must be issued: id is present and differs from the
// identifier already requested. The previous request, if any, is cancelled
// and its record discarded.
func (c *Controller) OnIdentifierAvailable(ctx context.Context, id string) (Request, bool) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Request{}, false
	}
	if id == c.id && c.token > 0 {
		return Request{}, false
	}

	c.id = id
	c.record = nil
	c.err = nil
	return c.begin(ctx), true
}

// Refresh re-issues the fetch for the current identifier.
func (c *Controller) Refresh(ctx context.Context) (Request, bool) {
	if c.id == "" {
		return Request{}, false
	}
	return c.begin(ctx), true
}

func (c *Controller) begin(ctx context.Context) Request {
	if c.cancel != nil {
		c.cancel()
	}
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.token++
	c.loading = true

	c.log.Debug("fetching artist", zap.String("id", c.id), zap.Uint64("token", c.token))
	return Request{ID: c.id, Token: c.token, ctx: reqCtx}
}

// Fetch runs the fetcher for req. It does not touch controller state.
func (c *Controller) Fetch(req Request) Result {
	ctx := req.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	record, err := c.fetcher.Fetch(ctx, req.ID)
	return Result{ID: req.ID, Token: req.Token, Record: record, Err: err}
}

// Apply stores the result if it belongs to the current generation. Stale
// results are dropped and Apply returns false.
//
// On failure the record is left as it was and the error is logged and kept
// for Err.
func (c *Controller) Apply(res Result) bool {
	if res.Token != c.token || res.ID != c.id {
		c.log.Debug("discarding stale artist result",
			zap.String("id", res.ID),
			zap.Uint64("token", res.Token),
			zap.Uint64("current", c.token))
		return false
	}

	c.loading = false
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}

	if res.Err == nil && res.Record == nil {
		res.Err = artist.ErrMalformedRecord
	}
	if res.Err != nil {
		c.err = res.Err
		c.log.Warn("artist fetch failed", zap.String("id", res.ID), zap.Error(res.Err))
		return true
	}

	c.record = res.Record
	c.err = nil
	c.log.Info("artist loaded",
		zap.String("id", res.ID),
		zap.String("name", res.Record.Name),
		zap.Int("images", len(res.Record.Images)))
	return true
}

// Load fetches id synchronously. It is a convenience for non-interactive
// callers; it returns the fetch error, if any.
func (c *Controller) Load(ctx context.Context, id string) error {
	req, ok := c.OnIdentifierAvailable(ctx, id)
	if !ok {
		if strings.TrimSpace(id) == "" {
			return artist.ErrMissingIdentifier
		}
		return c.err
	}
	c.Apply(c.Fetch(req))
	return c.err
}

// SelectTab selects a tab. Progress follows the tab.
func (c *Controller) SelectTab(t model.Tab) {
	c.tab = t
}

// Tab returns the selected tab.
func (c *Controller) Tab() model.Tab {
	return c.tab
}

// Progress returns the progress fraction for the selected tab.
func (c *Controller) Progress() float64 {
	return model.Progress(c.tab)
}

// ID returns the current identifier, or "" if none is known yet.
func (c *Controller) ID() string {
	return c.id
}

// Record returns the fetched record, or nil.
func (c *Controller) Record() *model.Artist {
	return c.record
}

// Loading reports whether a request for the current identifier is pending.
func (c *Controller) Loading() bool {
	return c.loading
}

// Err returns the error of the last fetch for the current identifier.
func (c *Controller) Err() error {
	return c.err
}

// Decision renders the current state.
func (c *Controller) Decision() Decision {
	d := Render(c.Narrow(), c.record, c.tab)
	if c.err != nil && !errors.Is(c.err, context.Canceled) {
		d.Notice = errmsg.FormatWith(errmsg.OpArtistLoad, c.id, c.err)
	}
	return d
}
