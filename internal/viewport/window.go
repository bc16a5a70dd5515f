package viewport

import (
	"maps"
	"slices"
	"sync"
)

// Subscription is a registered resize handler. Unsubscribe removes exactly
// that handler; calling it more than once is a no-op.
type Subscription interface {
	Unsubscribe()
}

// Signal reports the viewport width and notifies subscribers on resize.
type Signal interface {
	// Width returns the current width in width-units.
	Width() int

	// Subscribe registers fn to be called with the new width after every
	// resize.
	Subscribe(fn func(width int)) Subscription
}

// CurrentWidth reads the width from s.
func CurrentWidth(s Signal) int {
	return s.Width()
}

// IsNarrow reports whether the width of s is below threshold.
func IsNarrow(s Signal, threshold int) bool {
	return s.Width() < threshold
}

// Window is a Signal backed by the terminal size. Widths are reported in
// width-units: columns multiplied by the cell width.
type Window struct {
	mu        sync.Mutex
	columns   int
	cellWidth int
	nextID    uint64
	handlers  map[uint64]func(int)
}

// NewWindow creates a Window with the given cell width (width-units per
// column). Non-positive values fall back to 1.
func NewWindow(cellWidth int) *Window {
	if cellWidth <= 0 {
		cellWidth = 1
	}
	return &Window{
		cellWidth: cellWidth,
		handlers:  make(map[uint64]func(int)),
	}
}

// Width implements Signal.
func (w *Window) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.columns * w.cellWidth
}

// Columns returns the current width in terminal columns.
func (w *Window) Columns() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.columns
}

// Resize records a new column count and notifies subscribers in
// registration order. Handlers run outside the lock.
func (w *Window) Resize(columns int) {
	if columns < 0 {
		columns = 0
	}

	w.mu.Lock()
	w.columns = columns
	width := columns * w.cellWidth
	ids := slices.Sorted(maps.Keys(w.handlers))
	fns := make([]func(int), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, w.handlers[id])
	}
	w.mu.Unlock()

	for _, fn := range fns {
		fn(width)
	}
}

// Subscribe implements Signal.
func (w *Window) Subscribe(fn func(width int)) Subscription {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	id := w.nextID
	w.handlers[id] = fn
	return &handle{w: w, id: id}
}

// Listeners returns the number of registered handlers.
func (w *Window) Listeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.handlers)
}

func (w *Window) remove(id uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.handlers, id)
}

type handle struct {
	w    *Window
	id   uint64
	once sync.Once
}

func (h *handle) Unsubscribe() {
	h.once.Do(func() {
		h.w.remove(h.id)
	})
}
