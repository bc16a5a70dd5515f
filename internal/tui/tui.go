// Package tui provides a Bubble Tea terminal user interface for All of Art.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/allofart/internal/artist"
	"github.com/handiism/allofart/internal/config"
	"github.com/handiism/allofart/internal/detail"
	"github.com/handiism/allofart/internal/errmsg"
	"github.com/handiism/allofart/internal/gallery"
	apphttp "github.com/handiism/allofart/internal/http"
	"github.com/handiism/allofart/internal/model"
	"github.com/handiism/allofart/internal/nav"
	"github.com/handiism/allofart/internal/share"
	"github.com/handiism/allofart/internal/viewport"
)

// State represents the current UI state.
type State int

const (
	// StatePrompt asks for an artist identifier.
	StatePrompt State = iota

	// StateBrowse shows the artist page.
	StateBrowse
)

type noticeLevel int

const (
	noticeInfo noticeLevel = iota
	noticeSuccess
	noticeError
)

// Options configures the TUI. Zero values fall back to defaults built from
// Settings.
type Options struct {
	Settings *config.Settings
	Logger   *zap.Logger
	Fetcher  artist.Fetcher
	Saver    *gallery.Saver
	SDK      share.SDK

	// ArtistID is the initial identifier. Empty starts at the prompt.
	ArtistID string

	// ResultID is the analysis result shared with k.
	ResultID string
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	log       *zap.Logger

	window *viewport.Window
	detail *detail.Controller
	drawer *nav.Drawer
	saver  *gallery.Saver
	sdk    share.SDK

	resultID string
	initial  string

	ctx    context.Context
	cancel context.CancelFunc

	route         string
	notice        string
	noticeLevel   noticeLevel
	saving        bool
	galleryOffset int

	width  int
	height int
}

// NewModel creates a new TUI model and mounts the artist page and the
// navigation header on the terminal window.
func NewModel(opts Options) Model {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	client := apphttp.NewClient(
		apphttp.WithTimeout(settings.HTTPTimeout()),
		apphttp.WithUserAgent(settings.UserAgent),
	)
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = artist.NewClient(client, settings.APIURL)
	}
	saver := opts.Saver
	if saver == nil {
		saver = gallery.NewSaver(settings, client, func(e gallery.ProgressEvent) {
			log.Debug(e.Message, zap.String("component", "gallery"))
		})
	}

	ti := textinput.New()
	ti.Placeholder = "artist id, e.g. 12"
	ti.CharLimit = 64
	ti.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))

	prog := progress.New(progress.WithSolidFill("#000000"), progress.WithoutPercentage())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	m := Model{
		state:     StatePrompt,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		log:       log,
		window:    viewport.NewWindow(settings.CellWidth),
		detail:    detail.NewController(fetcher, settings.DetailBreakpoint(), log),
		drawer:    nav.NewDrawer(settings.NavBreakpoint, log),
		saver:     saver,
		sdk:       opts.SDK,
		resultID:  strings.TrimSpace(opts.ResultID),
		initial:   strings.TrimSpace(opts.ArtistID),
		ctx:       ctx,
		cancel:    cancel,
	}

	m.detail.Mount(m.window, nil)
	m.drawer.Mount(m.window)

	if m.initial != "" {
		m.state = StateBrowse
	} else {
		m.textInput.Focus()
	}
	return m
}

// Close releases the resize handlers and cancels pending requests.
func (m Model) Close() {
	m.cancel()
	m.detail.Unmount()
	m.drawer.Unmount()
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.state == StatePrompt {
		cmds = append(cmds, textinput.Blink)
	}
	if m.initial != "" {
		cmds = append(cmds, m.load(m.initial))
	}
	return tea.Batch(cmds...)
}

// Message types
type (
	// FetchedMsg is sent when an artist fetch completes.
	FetchedMsg struct {
		Result detail.Result
	}

	// SavedMsg is sent when a gallery export completes.
	SavedMsg struct {
		Summary gallery.Summary
		Err     error
	}

	// SharedMsg is sent when a share attempt completes.
	SharedMsg struct {
		URL string
		Err error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.window.Resize(msg.Width)
		m.progress.Width = max(20, min(80, msg.Width-20))
		m.textInput.Width = max(10, min(40, msg.Width-10))
		m.clampGallery()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case FetchedMsg:
		if m.detail.Apply(msg.Result) {
			m.galleryOffset = 0
			if msg.Result.Err == nil {
				m.setNotice("", noticeInfo)
			}
		}
		return m, nil

	case SavedMsg:
		m.saving = false
		if msg.Err != nil {
			m.log.Warn("gallery export failed", zap.Error(msg.Err))
			m.setNotice(errmsg.Format(errmsg.OpGallerySave, msg.Err), noticeError)
		} else {
			m.setNotice("Saved "+msg.Summary.String(), noticeSuccess)
		}
		return m, nil

	case SharedMsg:
		if msg.Err != nil {
			m.log.Warn("share failed", zap.Error(msg.Err))
			m.setNotice(share.Notice(msg.Err), noticeError)
		} else {
			m.setNotice("Link copied: "+msg.URL, noticeSuccess)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	if m.state == StatePrompt {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.cancel()
		return m, tea.Quit
	}

	if m.state == StatePrompt {
		return m.updatePrompt(msg)
	}
	if m.drawer.Layout() == nav.LayoutMobileOpen {
		return m.updateDrawer(msg), nil
	}

	switch msg.String() {
	case "q", "esc":
		m.cancel()
		return m, tea.Quit

	case "/":
		m.state = StatePrompt
		m.textInput.SetValue("")
		cmd := m.textInput.Focus()
		return m, cmd

	case "m":
		m.drawer.OpenMenu()

	case "r":
		if req, ok := m.detail.Refresh(m.ctx); ok {
			return m, m.fetch(req)
		}

	case "tab":
		m.detail.SelectTab(m.detail.Tab().Next())

	case "shift+tab":
		m.detail.SelectTab(m.detail.Tab().Prev())

	case "right", "l":
		if m.detail.Narrow() {
			m.scrollGallery(1)
		} else {
			m.detail.SelectTab(m.detail.Tab().Next())
		}

	case "left", "h":
		if m.detail.Narrow() {
			m.scrollGallery(-1)
		} else {
			m.detail.SelectTab(m.detail.Tab().Prev())
		}

	case "1", "2", "3", "4", "5", "6":
		if !m.drawer.Layout().Mobile() {
			if e, ok := m.drawer.Select(int(msg.String()[0] - '1')); ok {
				m.navigate(e)
			}
		}

	case "s":
		cmd := m.saveGallery()
		return m, cmd

	case "k":
		cmd := m.shareResult()
		return m, cmd
	}

	return m, nil
}

func (m Model) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id := strings.TrimSpace(m.textInput.Value())
		if id == "" {
			return m, nil
		}
		m.state = StateBrowse
		m.textInput.Blur()
		m.setNotice("", noticeInfo)
		m.galleryOffset = 0
		return m, m.load(id)

	case "esc":
		if m.detail.ID() == "" {
			m.cancel()
			return m, tea.Quit
		}
		m.state = StateBrowse
		m.textInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// updateDrawer handles keys while the mobile drawer is open.
func (m Model) updateDrawer(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "up", "k":
		m.drawer.MoveCursor(-1)
	case "down", "j":
		m.drawer.MoveCursor(1)
	case "enter":
		if e, ok := m.drawer.SelectCursor(); ok {
			m.navigate(e)
		}
	case "esc", "m", "q":
		m.drawer.Close()
	}
	return m
}

func (m *Model) navigate(e nav.Entry) {
	m.route = e.Destination
	m.log.Info("navigate", zap.String("destination", e.Destination))
	m.setNotice(fmt.Sprintf("→ %s (%s)", e.Label, e.Destination), noticeInfo)
}

func (m *Model) setNotice(text string, level noticeLevel) {
	m.notice = text
	m.noticeLevel = level
}

func (m *Model) scrollGallery(delta int) {
	m.galleryOffset += delta
	m.clampGallery()
}

func (m *Model) clampGallery() {
	n := len(m.detail.Record().Gallery())
	m.galleryOffset = max(0, min(m.galleryOffset, n-1))
}

// load registers id with the artist page and returns the fetch command, if
// a fetch is needed.
func (m Model) load(id string) tea.Cmd {
	req, ok := m.detail.OnIdentifierAvailable(m.ctx, id)
	if !ok {
		return nil
	}
	return m.fetch(req)
}

// fetch runs the request off the event loop. The result is applied in
// Update, where stale results are dropped.
func (m Model) fetch(req detail.Request) tea.Cmd {
	ctrl := m.detail
	return func() tea.Msg {
		return FetchedMsg{Result: ctrl.Fetch(req)}
	}
}

// saveGallery exports the current record in the background.
func (m *Model) saveGallery() tea.Cmd {
	record := m.detail.Record()
	if record == nil || m.saving {
		return nil
	}
	m.saving = true
	m.setNotice(fmt.Sprintf("Saving gallery of %s...", record.Name), noticeInfo)

	saver, ctx := m.saver, m.ctx
	return func() tea.Msg {
		summary, err := saver.Save(ctx, record)
		return SavedMsg{Summary: summary, Err: err}
	}
}

// shareResult hands the analysis result feed to the sharing SDK.
func (m *Model) shareResult() tea.Cmd {
	if m.resultID == "" {
		m.setNotice("No analysis result to share (start with --result)", noticeError)
		return nil
	}
	feed := share.NewFeed(m.settings.ShareURL, m.resultID)
	sdk := m.sdk
	return func() tea.Msg {
		return SharedMsg{URL: feed.Content.Link.WebURL, Err: share.Share(sdk, feed)}
	}
}

// Run starts the TUI application.
func Run(opts Options) error {
	m := NewModel(opts)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// assetURL composes the displayable locator of an image path.
func (m Model) assetURL(path string) string {
	return model.ImageURL(m.settings.AssetBase(), path)
}
