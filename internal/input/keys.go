package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings for the main view and the pattern dialog.
type KeyMap struct {
	// Main view
	Quit         key.Binding
	OpenDialog   key.Binding
	ToggleWrap   key.Binding
	ToggleFilter key.Binding
	CycleTheme   key.Binding
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	Top          key.Binding
	Bottom       key.Binding

	// Dialog
	Close      key.Binding
	Interrupt  key.Binding
	Submit     key.Binding
	SelectPrev key.Binding
	SelectNext key.Binding
	ToggleCase key.Binding
	Delete     key.Binding
	Backspace  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		OpenDialog: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "patterns"),
		),
		ToggleWrap: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "wrap"),
		),
		ToggleFilter: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "filter"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "theme"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j", "scroll down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u", "pgup"),
			key.WithHelp("ctrl-u", "page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d", "pgdown"),
			key.WithHelp("ctrl-d", "page down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "bottom"),
		),

		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
		Interrupt: key.NewBinding(
			key.WithKeys("ctrl+c"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "add"),
		),
		SelectPrev: key.NewBinding(
			key.WithKeys("up"),
		),
		SelectNext: key.NewBinding(
			key.WithKeys("down"),
		),
		ToggleCase: key.NewBinding(
			key.WithKeys("left", "right"),
			key.WithHelp("Left/Right", "case"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("Del", "delete"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
		),
	}
}

// ShortHelp returns the bindings shown in the bottom border.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.OpenDialog, k.ToggleWrap, k.ToggleFilter, k.Down, k.Up, k.HalfPageDown, k.HalfPageUp, k.Quit}
}

// FullHelp returns every main view binding, grouped.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.Top, k.Bottom},
		{k.OpenDialog, k.ToggleWrap, k.ToggleFilter, k.CycleTheme},
		{k.Quit},
	}
}

// DialogHelp returns the bindings listed in the dialog title.
func (k KeyMap) DialogHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Delete, k.ToggleCase, k.Close}
}
