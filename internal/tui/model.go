package tui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gitmesh/docs-hub/internal/clipboard"
	"github.com/gitmesh/docs-hub/internal/content"
	"github.com/gitmesh/docs-hub/internal/grid"
	"github.com/gitmesh/docs-hub/internal/metrics"
	"github.com/gitmesh/docs-hub/internal/viewer"
)

// Mode is the screen the TUI is showing.
type Mode int

const (
	ModeGrid Mode = iota
	ModeDocs
	ModeSearch
	ModeNotFound
)

// frameInterval paces the track animation, roughly 60 frames per second.
const frameInterval = 16 * time.Millisecond

// Options configures a Model.
type Options struct {
	// Clipboard receives copied code blocks. Nil disables copying.
	Clipboard clipboard.Writer
	Feedback  time.Duration
	// Dev enables the hover size and gap keys on the grid.
	Dev bool
	// CleanInterface hides the dev key hints in the footer.
	CleanInterface bool
	Logger         *slog.Logger
	Metrics        *metrics.HubMetrics
	Grid           []grid.Option
}

type animTickMsg time.Time

type feedbackMsg clipboard.Token

type clearStatusMsg struct{}

// Model is the Bubble Tea model of the terminal hub.
type Model struct {
	reg     *content.Registry
	opts    Options
	log     *slog.Logger
	layout  *grid.Layout
	copier  *clipboard.Copier
	metrics *metrics.HubMetrics

	mode Mode
	// section is the active section key; "" shows the grid.
	section string
	viewer  *viewer.Viewer

	focus      int // index into layout tiles
	block      int // focused code block on the active tab
	animating  bool
	feedback   chan clipboard.Token
	search     textinput.Model
	body       viewport.Model
	blockLines []int

	width, height int
	statusMsg     string
}

// New returns a model showing the landing grid over tiles.
func New(reg *content.Registry, tiles []grid.Tile, opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	if opts.Feedback <= 0 {
		opts.Feedback = clipboard.DefaultFeedback
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.Disabled{}
	}

	m := &Model{
		reg:      reg,
		opts:     opts,
		log:      log,
		metrics:  opts.Metrics,
		feedback: make(chan clipboard.Token, 4),
		width:    80,
		height:   24,
	}

	gridOpts := append([]grid.Option{grid.WithActivate(m.openSection)}, opts.Grid...)
	m.layout = grid.NewLayout(tiles, gridOpts...)

	m.copier = clipboard.NewCopier(opts.Clipboard,
		clipboard.WithFeedback(opts.Feedback),
		clipboard.WithLogger(log),
		clipboard.WithNotify(m.notify),
	)

	m.search = textinput.New()
	m.search.Placeholder = "Search documentation..."
	m.search.Prompt = searchGlyph + " "
	m.search.CharLimit = 120

	m.body = viewport.New(m.width, m.bodyHeight())
	return m
}

// Init starts listening for copy feedback changes.
func (m *Model) Init() tea.Cmd {
	return m.waitFeedback()
}

// Close stops the copy feedback timer.
func (m *Model) Close() {
	m.copier.Stop()
}

// Section returns the active section key, "" when the grid is showing.
func (m *Model) Section() string { return m.section }

// Mode returns the current screen.
func (m *Model) Mode() Mode { return m.mode }

// Layout returns the landing grid.
func (m *Model) Layout() *grid.Layout { return m.layout }

// Viewer returns the open viewer, or nil on the grid.
func (m *Model) Viewer() *viewer.Viewer { return m.viewer }

// Update handles a message and returns the next command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.body.Width = msg.Width
		m.body.Height = m.bodyHeight()
		m.search.Width = max(msg.Width/3, 10)
		m.refreshBody()

	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.MouseMsg:
		cmd = m.handleMouse(msg)

	case animTickMsg:
		if m.layout.Animating() {
			cmd = animTick()
		} else {
			m.animating = false
		}

	case feedbackMsg:
		m.refreshBody()
		cmd = m.waitFeedback()

	case clearStatusMsg:
		m.statusMsg = ""
	}

	return m, cmd
}

// openSection is the grid's activate callback.
func (m *Model) openSection(section string) {
	m.section = section
	m.viewer = viewer.New(m.reg, section, viewer.WithBack(m.closeSection))
	m.block = 0
	m.search.SetValue("")
	m.body.GotoTop()
	if m.viewer.Found() {
		m.mode = ModeDocs
	} else {
		m.mode = ModeNotFound
	}
	m.metrics.RecordSectionView(metricSection(m.viewer), m.viewer.Found())
	m.log.Debug("opened section", "section", section, "found", m.viewer.Found())
	m.refreshBody()
}

// closeSection is the viewer's back callback.
func (m *Model) closeSection() {
	m.section = ""
	m.viewer = nil
	m.mode = ModeGrid
	m.search.Blur()
	m.blockLines = nil
}

// enter hovers the tile at index i of the layout and starts the track
// animation if it is not already running.
func (m *Model) enter(i int) tea.Cmd {
	tiles := m.layout.Tiles()
	if i < 0 || i >= len(tiles) {
		return nil
	}
	m.focus = i
	if m.layout.Hovered(tiles[i]) {
		return nil
	}
	if err := m.layout.Enter(tiles[i].ID); err != nil {
		return nil
	}
	return m.startAnimation()
}

func (m *Model) leave() tea.Cmd {
	if _, ok := m.layout.Hover(); !ok {
		return nil
	}
	m.layout.Leave()
	return m.startAnimation()
}

func (m *Model) startAnimation() tea.Cmd {
	if m.animating {
		return nil
	}
	m.animating = true
	return animTick()
}

func animTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return animTickMsg(t)
	})
}

// notify runs on the copier's timer goroutine when feedback expires, so it
// only hands the token to the event loop.
func (m *Model) notify(token clipboard.Token) {
	select {
	case m.feedback <- token:
	default:
	}
}

func (m *Model) waitFeedback() tea.Cmd {
	ch := m.feedback
	return func() tea.Msg {
		return feedbackMsg(<-ch)
	}
}

func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	return tea.Tick(m.opts.Feedback, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// codeBlocks lists the code blocks of the active tab in render order.
func (m *Model) codeBlocks() []*viewer.CodeBlock {
	if m.viewer == nil {
		return nil
	}
	return viewer.CodeBlocks(m.viewer.Body())
}

// copyFocused copies the focused code block. A failed copy is only logged by
// the copier; the screen stays as it was.
func (m *Model) copyFocused() {
	blocks := m.codeBlocks()
	if len(blocks) == 0 {
		return
	}
	b := blocks[m.block]
	if !m.copier.Copy(clipboard.Token(b.ID), b.Text) {
		m.metrics.RecordCopy(m.section, metrics.CopyFailure)
		return
	}
	m.metrics.RecordCopy(m.section, metrics.CopySuccess)
	m.refreshBody()
}

func (m *Model) bodyHeight() int {
	return max(m.height-docsHeaderLines-footerLines, 1)
}

func metricSection(v *viewer.Viewer) string {
	if !v.Found() {
		return "unknown"
	}
	return v.Key()
}
