package tui

import (
	"fmt"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/allofart/internal/detail"
	"github.com/handiism/allofart/internal/model"
	"github.com/handiism/allofart/internal/nav"
)

const defaultWidth = 80

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")

	switch m.state {
	case StatePrompt:
		b.WriteString(m.viewPrompt())
	case StateBrowse:
		b.WriteString(m.viewArtist())
	}

	if m.notice != "" {
		b.WriteString("\n\n")
		switch m.noticeLevel {
		case noticeError:
			b.WriteString(errorStyle.Render("✗ " + m.notice))
		case noticeSuccess:
			b.WriteString(successStyle.Render("✓ " + m.notice))
		default:
			b.WriteString(infoStyle.Render(m.notice))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(m.help()))
	return b.String()
}

// viewHeader renders the navigation header. Both layouts read the same
// entry table.
func (m Model) viewHeader() string {
	logo := titleStyle.Render("All of Art")
	entries := nav.Entries()

	switch m.drawer.Layout() {
	case nav.LayoutDesktop:
		buttons := make([]string, len(entries))
		for i, e := range entries {
			buttons[i] = navButtonStyle.Render(fmt.Sprintf("%d %s", i+1, e.Label))
		}
		return lipgloss.JoinHorizontal(lipgloss.Center, logo, "   ", strings.Join(buttons, ""))

	case nav.LayoutMobileOpen:
		var items strings.Builder
		for i, e := range entries {
			if i > 0 {
				items.WriteString("\n")
			}
			if i == m.drawer.Cursor() {
				items.WriteString(cursorStyle.Render("› " + e.Label))
			} else {
				items.WriteString("  " + e.Label)
			}
		}
		return "☰ " + logo + "\n" + drawerStyle.Render(items.String())

	default:
		return "☰ " + logo
	}
}

func (m Model) viewPrompt() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Enter an artist id:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	return b.String()
}

func (m Model) viewArtist() string {
	d := m.detail.Decision()

	if m.detail.Loading() && d.Record == nil {
		return fmt.Sprintf("%s Fetching artist %s...", m.spinner.View(), m.detail.ID())
	}

	switch d.Kind {
	case detail.KindNothing:
		if d.Notice != "" {
			return errorStyle.Render("✗ "+d.Notice) + "\n" + dimStyle.Render("Press r to retry")
		}
		return dimStyle.Render("No artist selected")
	case detail.KindStacked:
		return m.withStatus(d, m.renderStacked(d))
	default:
		return m.withStatus(d, m.renderTabbed(d))
	}
}

// withStatus appends the refresh spinner or the last failure below a page
// that still shows the previous record.
func (m Model) withStatus(d detail.Decision, page string) string {
	switch {
	case m.detail.Loading():
		return page + "\n" + m.spinner.View() + " Refreshing..."
	case d.Notice != "":
		return page + "\n" + errorStyle.Render("✗ "+d.Notice)
	}
	return page
}

// renderTabbed renders the wide layout: the tab row, the progress indicator
// and the selected section only.
func (m Model) renderTabbed(d detail.Decision) string {
	var b strings.Builder
	b.WriteString(m.viewTitle(d.Record))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(model.Tabs()))
	for _, t := range model.Tabs() {
		if t == d.Tab {
			tabs = append(tabs, activeTabStyle.Render(t.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(t.String()))
		}
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(d.Progress))
	b.WriteString("\n\n")

	for _, s := range d.Sections {
		b.WriteString(m.renderSection(d, s, false))
	}
	return strings.TrimRight(b.String(), "\n")
}

// renderStacked renders the narrow layout: every section in order, with the
// gallery as a horizontally scrollable strip.
func (m Model) renderStacked(d detail.Decision) string {
	var b strings.Builder
	b.WriteString(m.viewTitle(d.Record))
	b.WriteString("\n\n")

	for _, s := range d.Sections {
		b.WriteString(m.renderSection(d, s, true))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewTitle(a *model.Artist) string {
	title := nameStyle.Render(a.Name)
	if portrait := a.Portrait(); portrait != "" {
		title += "\n" + dimStyle.Render(m.assetURL(portrait))
	}
	return title
}

func (m Model) renderSection(d detail.Decision, s model.Tab, narrow bool) string {
	a := d.Record
	width := m.contentWidth()

	switch s {
	case model.TabAbout:
		var lines []string
		if a.Year != "" {
			lines = append(lines, "Years: "+a.Year.String())
		}
		if a.Genre != "" {
			lines = append(lines, "Genre: "+a.Genre)
		}
		if a.Nation != "" {
			lines = append(lines, "Nationality: "+a.Nation)
		}
		if a.ShortDescription != "" {
			lines = append(lines, "", a.ShortDescription)
		}
		return aboutStyle.Width(width).Render(strings.Join(lines, "\n")) + "\n"

	case model.TabLife:
		return lifeStyle.Width(width).Render(a.LongDescription) + "\n"

	default:
		if len(d.Gallery) == 0 {
			return dimStyle.Render("No paintings") + "\n"
		}
		if narrow {
			return m.galleryStrip(d.Gallery) + "\n"
		}
		return m.galleryList(d.Gallery) + "\n"
	}
}

// galleryStrip lays tiles side by side starting at the scroll offset, as
// many as fit the terminal width.
func (m Model) galleryStrip(images []string) string {
	offset := max(0, min(m.galleryOffset, len(images)-1))
	width := m.contentWidth()

	var tiles []string
	used := 0
	for i := offset; i < len(images); i++ {
		tile := tileStyle.Render(fmt.Sprintf("%d\n%s", i+1, path.Base(images[i])))
		w := lipgloss.Width(tile)
		if len(tiles) > 0 && used+w > width {
			break
		}
		tiles = append(tiles, tile)
		used += w
	}

	strip := lipgloss.JoinHorizontal(lipgloss.Top, tiles...)
	var marks []string
	if offset > 0 {
		marks = append(marks, "‹ more")
	}
	if offset+len(tiles) < len(images) {
		marks = append(marks, "more ›")
	}
	if len(marks) > 0 {
		strip += "\n" + dimStyle.Render(strings.Join(marks, "   "))
	}
	return strip
}

func (m Model) galleryList(images []string) string {
	lines := make([]string, len(images))
	for i, img := range images {
		lines[i] = fmt.Sprintf("%d. %s", i+1, m.assetURL(img))
	}
	return strings.Join(lines, "\n")
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(20, m.width-2)
}

func (m Model) help() string {
	switch {
	case m.state == StatePrompt:
		return "enter: load • esc: back • ctrl+c: quit"
	case m.drawer.Layout() == nav.LayoutMobileOpen:
		return "↑/↓: move • enter: go • esc: close"
	}

	parts := []string{}
	if !m.drawer.Layout().Mobile() {
		parts = append(parts, "1-6: navigate")
	} else {
		parts = append(parts, "m: menu")
	}
	if m.detail.Narrow() {
		parts = append(parts, "←/→: scroll gallery")
	} else {
		parts = append(parts, "←/→: tabs")
	}
	parts = append(parts, "/: artist", "r: reload", "s: save gallery", "k: share", "q: quit")
	return strings.Join(parts, " • ")
}
