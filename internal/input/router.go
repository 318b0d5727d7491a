package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logr/internal/dialog"
	"github.com/five82/logr/internal/logging"
	"github.com/five82/logr/internal/view"
)

// wheelLines is how far one mouse wheel notch scrolls.
const wheelLines = 3

// Result tells the caller what a key press did.
type Result struct {
	Exit   bool
	Redraw bool
	// Command is the decoded command, for callers that react to it
	// themselves (theme cycling).
	Command Command
}

// Options configure a Router.
type Options struct {
	Keys       KeyMap
	IgnoreCase bool
	Wrap       bool
	FilterOnly bool
	Logger     *logging.Logger
}

// Router owns the scroll window and the view toggles, and forwards dialog
// input to the dialog controller.
type Router struct {
	keys       KeyMap
	dialog     *dialog.Controller
	window     view.Window
	ignoreCase bool
	wrap       bool
	filterOnly bool
	logger     *logging.Logger
}

// NewRouter returns a router in follow mode.
func NewRouter(dlg *dialog.Controller, opts Options) *Router {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NopLogger()
	}
	return &Router{
		keys:       opts.Keys,
		dialog:     dlg,
		window:     view.NewWindow(),
		ignoreCase: opts.IgnoreCase,
		wrap:       opts.Wrap,
		filterOnly: opts.FilterOnly,
		logger:     logger,
	}
}

// Keys returns the active key map.
func (r *Router) Keys() KeyMap { return r.keys }

// Window returns the scroll state.
func (r *Router) Window() view.Window { return r.window }

// Wrap reports whether long lines wrap.
func (r *Router) Wrap() bool { return r.wrap }

// FilterOnly reports whether non-matching lines are hidden.
func (r *Router) FilterOnly() bool { return r.filterOnly }

// Handle applies one key press. total is the number of lines the view
// currently spans and height the number of rows it shows. Every key press
// asks for a redraw, whether or not it was bound.
func (r *Router) Handle(msg tea.KeyMsg, total, height int) Result {
	if r.dialog.IsOpen() {
		return r.handleDialog(r.keys.DecodeDialog(msg))
	}
	return r.handleMain(r.keys.DecodeMain(msg), total, height)
}

// HandleMouse scrolls on wheel events. Other mouse events are ignored, as is
// everything while the dialog is open.
func (r *Router) HandleMouse(msg tea.MouseMsg, total, height int) Result {
	if r.dialog.IsOpen() || msg.Action != tea.MouseActionPress {
		return Result{}
	}
	var cmd Command
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		cmd.Kind = LineUp
	case tea.MouseButtonWheelDown:
		cmd.Kind = LineDown
	default:
		return Result{}
	}
	var res Result
	for i := 0; i < wheelLines; i++ {
		res = r.handleMain(cmd, total, height)
	}
	return res
}

func (r *Router) handleMain(cmd Command, total, height int) Result {
	res := Result{Redraw: true, Command: cmd}
	switch cmd.Kind {
	case Quit:
		res.Exit = true
	case OpenDialog:
		r.dialog.Open()
	case ToggleWrap:
		r.wrap = !r.wrap
		r.logger.Debug("wrap toggled", "wrap", r.wrap)
	case ToggleFilter:
		r.filterOnly = !r.filterOnly
		r.logger.Debug("filter toggled", "filter_only", r.filterOnly)
	case LineUp:
		r.window.LineUp(total, height)
	case LineDown:
		r.window.LineDown(total, height)
	case PageUp:
		r.window.PageUp(total, height)
	case PageDown:
		r.window.PageDown(total, height)
	case Top:
		r.window.Top(total, height)
	case Bottom:
		r.window.Bottom(total, height)
	}
	return res
}

func (r *Router) handleDialog(cmd Command) Result {
	res := Result{Redraw: true, Command: cmd}
	switch cmd.Kind {
	case Interrupt:
		res.Exit = true
	case Close:
		r.dialog.Close()
	case Submit:
		r.dialog.Submit(!r.ignoreCase)
	case SelectPrev:
		r.dialog.SelectPrev()
	case SelectNext:
		r.dialog.SelectNext()
	case ToggleCase:
		r.dialog.ToggleCase()
	case Delete:
		r.dialog.Delete()
	case Backspace:
		r.dialog.Backspace()
	case Insert:
		r.dialog.Insert(cmd.Text)
	}
	return res
}
