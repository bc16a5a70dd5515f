package model

import "strings"

// Tab selects one section of the artist page.
type Tab int

const (
	// TabAbout shows years, genre, nationality and the short description.
	TabAbout Tab = iota

	// TabLife shows the long description.
	TabLife

	// TabPaintings shows the gallery.
	TabPaintings
)

// Tabs returns all tabs in display order.
func Tabs() []Tab {
	return []Tab{TabAbout, TabLife, TabPaintings}
}

// String returns the tab label.
func (t Tab) String() string {
	switch t {
	case TabAbout:
		return "About"
	case TabLife:
		return "Life"
	case TabPaintings:
		return "Paintings"
	default:
		return "Paintings"
	}
}

// Valid reports whether t is one of the known tabs.
func (t Tab) Valid() bool {
	return t >= TabAbout && t <= TabPaintings
}

// Normalize maps unknown values onto TabPaintings.
func (t Tab) Normalize() Tab {
	if !t.Valid() {
		return TabPaintings
	}
	return t
}

// Next returns the tab after t, wrapping around.
func (t Tab) Next() Tab {
	return (t.Normalize() + 1) % 3
}

// Prev returns the tab before t, wrapping around.
func (t Tab) Prev() Tab {
	return (t.Normalize() + 2) % 3
}

// ParseTab returns the tab with the given label (case-insensitive).
func ParseTab(s string) (Tab, bool) {
	for _, t := range Tabs() {
		if strings.EqualFold(t.String(), strings.TrimSpace(s)) {
			return t, true
		}
	}
	return TabAbout, false
}

// Progress returns the progress fraction for a tab.
//
//   - TabAbout: 0.33
//   - TabLife: 0.58
//   - TabPaintings and anything else: 1.0
func Progress(t Tab) float64 {
	switch t {
	case TabAbout:
		return 0.33
	case TabLife:
		return 0.58
	default:
		return 1.0
	}
}
