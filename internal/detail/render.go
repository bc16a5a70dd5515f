package detail

import "github.com/handiism/allofart/internal/model"

// Kind is the shape of a render decision.
//
// The two renderers in the TUI switch on Kind alone:
//
//	switch d.Kind {
//	case detail.KindStacked:
//	    return renderStacked(d)
//	case detail.KindTabbed:
//	    return renderTabbed(d)
//	}
type Kind int

const (
	// KindNothing renders no artist content.
	KindNothing Kind = iota

	// KindStacked renders every section in a single column (narrow).
	KindStacked

	// KindTabbed renders the selected section with tabs and progress.
	KindTabbed
)

// String returns the lower-case name of the kind, as printed by
// "allofart artist".
func (k Kind) String() string {
	switch k {
	case KindStacked:
		return "stacked"
	case KindTabbed:
		return "tabbed"
	default:
		return "nothing"
	}
}

// Decision describes what the artist page should display.
type Decision struct {
	Kind   Kind
	Record *model.Artist

	// Sections lists the sections to render, in order.
	Sections []model.Tab

	// ShowTabs is true when the tab row and progress indicator are visible.
	ShowTabs bool
	Tab      model.Tab
	Progress float64

	// Gallery holds the bounded image slice when the Paintings section is
	// part of Sections.
	Gallery []string

	// Notice is a user-visible message, set by the controller when the last
	// fetch failed.
	Notice string
}

// Has reports whether the decision includes section s.
func (d Decision) Has(s model.Tab) bool {
	for _, sec := range d.Sections {
		if sec == s {
			return true
		}
	}
	return false
}

// Render combines the breakpoint state, the record and the selected tab.
//
// Without a record nothing is rendered. When narrow, the tab is ignored and
// About, Life and Paintings are all included; tabs and progress are hidden.
// Otherwise only the selected section is included together with tabs and
// progress.
func Render(narrow bool, record *model.Artist, tab model.Tab) Decision {
	if record == nil {
		return Decision{Kind: KindNothing}
	}

	if narrow {
		return Decision{
			Kind:     KindStacked,
			Record:   record,
			Sections: model.Tabs(),
			Tab:      tab.Normalize(),
			Gallery:  record.Gallery(),
		}
	}

	tab = tab.Normalize()
	d := Decision{
		Kind:     KindTabbed,
		Record:   record,
		Sections: []model.Tab{tab},
		ShowTabs: true,
		Tab:      tab,
		Progress: model.Progress(tab),
	}
	if tab == model.TabPaintings {
		d.Gallery = record.Gallery()
	}
	return d
}
