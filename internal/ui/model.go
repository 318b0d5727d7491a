package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logr/internal/dialog"
	"github.com/five82/logr/internal/input"
	"github.com/five82/logr/internal/logging"
	"github.com/five82/logr/internal/pattern"
	"github.com/five82/logr/internal/source"
	"github.com/five82/logr/internal/state"
)

const (
	defaultTick = 20 * time.Millisecond
	// maxBatch caps how many queued lines one poll hands over.
	maxBatch = 256
)

// Options configures the UI.
type Options struct {
	Feed      *source.Feed // nil disables polling
	Store     *pattern.Store
	Dialog    *dialog.Controller
	Router    *input.Router
	Tick      time.Duration
	ThemeName string
	Logger    *logging.Logger
}

// Model is the pager. Update is the only place that mutates the buffer,
// the pattern store (through the router) or the scroll window.
type Model struct {
	feed   *source.Feed
	store  *pattern.Store
	dialog *dialog.Controller
	router *input.Router
	logger *logging.Logger
	tick   time.Duration

	buffer *state.Buffer
	filter *state.FilterIndex

	theme  Theme
	styles Styles
	help   help.Model
	input  textinput.Model

	width  int
	height int

	srcDone bool
	srcErr  error

	// frame is the last rendered screen; View returns it unchanged until
	// something visible happens.
	frame string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	tick := opts.Tick
	if tick <= 0 {
		tick = defaultTick
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}

	ti := textinput.New()
	ti.Prompt = "+ "
	ti.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		feed:   opts.Feed,
		store:  opts.Store,
		dialog: opts.Dialog,
		router: opts.Router,
		logger: logger,
		tick:   tick,
		buffer: &state.Buffer{},
		filter: &state.FilterIndex{},
		help:   help.New(),
		input:  ti,
	}
	m.setTheme(GetTheme(opts.ThemeName))
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.poll()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	dirty := false

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.feed != nil {
			m.feed.Resize(msg.Width-2, msg.Height-2)
		}
		dirty = true

	case tea.KeyMsg:
		res := m.router.Handle(msg, m.total(), m.viewHeight())
		if res.Exit {
			m.logger.Info("exit requested", "key", msg.String())
			return m, tea.Quit
		}
		if res.Command.Kind == input.CycleTheme {
			m.setTheme(GetTheme(NextTheme(m.theme.Name)))
			m.logger.Debug("theme changed", "theme", m.theme.Name)
		}
		dirty = res.Redraw

	case tea.MouseMsg:
		res := m.router.HandleMouse(msg, m.total(), m.viewHeight())
		dirty = res.Redraw

	case lineMsg:
		for _, line := range msg.lines {
			m.buffer.Append(line)
		}
		dirty = len(msg.lines) > 0
		if m.syncSource() {
			dirty = true
		}
		cmd = m.poll()

	case idleMsg:
		if m.syncSource() {
			dirty = true
		}
		cmd = m.poll()
	}

	if m.dialog.IsOpen() {
		dirty = true
	}
	if dirty {
		m.frame = m.render()
	}
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}
	return m.frame
}

// Lines returns the number of lines received so far.
func (m Model) Lines() int {
	return m.buffer.Len()
}

func (m *Model) setTheme(t Theme) {
	m.theme = t
	m.styles = t.Styles()
	m.help.Styles = m.styles.helpStyles()
}

// viewHeight is the number of content rows inside the border.
func (m Model) viewHeight() int {
	return max(0, m.height-2)
}

// total is the number of lines the view spans: every line, or only the
// matching ones in filter mode.
func (m Model) total() int {
	if !m.router.FilterOnly() {
		return m.buffer.Len()
	}
	m.filter.Sync(m.buffer, m.store)
	return m.filter.Len()
}

// lineAt maps a view position to a buffer line.
func (m Model) lineAt(i int) state.Line {
	if m.router.FilterOnly() {
		return m.buffer.At(m.filter.At(i))
	}
	return m.buffer.At(i)
}

// syncSource records the end of input. It reports whether anything changed.
func (m *Model) syncSource() bool {
	if m.srcDone || m.feed == nil || !m.feed.Done() {
		return false
	}
	m.srcDone = true
	m.srcErr = m.feed.Err()
	m.logger.Info("input ended", "lines", m.buffer.Len(), "error", m.srcErr)
	return true
}

// Messages

type lineMsg struct {
	lines []string
}

type idleMsg struct{}

// Commands

func (m Model) poll() tea.Cmd {
	if m.feed == nil || m.srcDone {
		return nil
	}
	return pollCmd(m.feed, m.tick)
}

// pollCmd waits up to tick for a line, then takes whatever else is already
// queued.
func pollCmd(feed *source.Feed, tick time.Duration) tea.Cmd {
	return func() tea.Msg {
		line, ok := feed.Next(tick)
		if !ok {
			return idleMsg{}
		}
		lines := []string{line}
		for len(lines) < maxBatch {
			line, ok := feed.Next(0)
			if !ok {
				break
			}
			lines = append(lines, line)
		}
		return lineMsg{lines: lines}
	}
}
