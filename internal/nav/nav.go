// Package nav holds the primary navigation table and the drawer state
// machine used by the header.
package nav

import (
	"go.uber.org/zap"

	"github.com/handiism/allofart/internal/viewport"
)

// Entry is one navigation destination. Destination is a route path; what
// happens when it is selected is up to the caller.
type Entry struct {
	Label       string
	Destination string
}

var entries = [...]Entry{
	{Label: "Analysis Style", Destination: "/analysis"},
	{Label: "Transfer Style", Destination: "/transfer"},
	{Label: "Sign In", Destination: "/signin"},
	{Label: "Sign up", Destination: "/signup"},
	{Label: "About", Destination: "/about"},
	{Label: "Gallery", Destination: "/gallery"},
}

// Entries returns the navigation table. The desktop button row and the
// mobile drawer both render from it.
func Entries() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries[:])
	return out
}

// Layout is the header layout.
//
// The layout is derived, not stored: Drawer.Layout combines the navigation
// breakpoint with the drawer's open flag, so a drawer can never be open on
// a desktop-width terminal.
type Layout int

const (
	// LayoutDesktop shows every entry as a button in one header row.
	LayoutDesktop Layout = iota

	// LayoutMobileClosed shows only the menu icon.
	LayoutMobileClosed

	// LayoutMobileOpen shows the menu icon and the drawer listing every
	// entry.
	LayoutMobileOpen
)

// String returns a short name for the layout, e.g. "mobile-open".
func (l Layout) String() string {
	switch l {
	case LayoutMobileClosed:
		return "mobile"
	case LayoutMobileOpen:
		return "mobile-open"
	default:
		return "desktop"
	}
}

// Mobile reports whether l is one of the mobile layouts.
func (l Layout) Mobile() bool {
	return l == LayoutMobileClosed || l == LayoutMobileOpen
}

// Drawer is the navigation header state machine.
//
//	Desktop <-> MobileClosed   on breakpoint crossing
//	MobileClosed -> MobileOpen on OpenMenu
//	MobileOpen -> MobileClosed on Close, Select or crossing to desktop
type Drawer struct {
	threshold int
	log       *zap.Logger

	monitor *viewport.Monitor
	open    bool
	cursor  int
}

// NewDrawer creates a Drawer with the given breakpoint in width-units.
func NewDrawer(threshold int, log *zap.Logger) *Drawer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Drawer{threshold: threshold, log: log.Named("nav")}
}

// Mount evaluates the breakpoint and subscribes to resizes. A drawer that
// was already mounted releases its previous registration first.
func (d *Drawer) Mount(s viewport.Signal) {
	d.monitor.Unmount()
	d.open = false
	d.monitor = viewport.Mount(s, d.threshold, d.onBreakpoint)
}

// Unmount releases the resize handler.
func (d *Drawer) Unmount() {
	d.monitor.Unmount()
	d.monitor = nil
	d.open = false
}

func (d *Drawer) onBreakpoint(narrow bool) {
	if !narrow && d.open {
		d.log.Debug("closing drawer on desktop layout")
		d.open = false
	}
}

// Layout returns the current layout.
func (d *Drawer) Layout() Layout {
	switch {
	case !d.monitor.Narrow():
		return LayoutDesktop
	case d.open:
		return LayoutMobileOpen
	default:
		return LayoutMobileClosed
	}
}

// OpenMenu opens the drawer. It only has an effect in MobileClosed.
func (d *Drawer) OpenMenu() bool {
	if d.Layout() != LayoutMobileClosed {
		return false
	}
	d.open = true
	d.cursor = 0
	return true
}

// Close closes the drawer. It only has an effect in MobileOpen.
func (d *Drawer) Close() bool {
	if d.Layout() != LayoutMobileOpen {
		return false
	}
	d.open = false
	return true
}

// Select returns entry i and closes the drawer. Navigating to the
// destination is up to the caller.
func (d *Drawer) Select(i int) (Entry, bool) {
	if i < 0 || i >= len(entries) {
		return Entry{}, false
	}
	d.open = false
	e := entries[i]
	d.log.Debug("navigation selected", zap.String("destination", e.Destination))
	return e, true
}

// Cursor returns the highlighted drawer item.
func (d *Drawer) Cursor() int {
	return d.cursor
}

// MoveCursor moves the highlighted drawer item, clamped to the table.
func (d *Drawer) MoveCursor(delta int) {
	d.cursor = max(0, min(len(entries)-1, d.cursor+delta))
}

// SelectCursor selects the highlighted drawer item.
func (d *Drawer) SelectCursor() (Entry, bool) {
	if d.Layout() != LayoutMobileOpen {
		return Entry{}, false
	}
	return d.Select(d.cursor)
}
