// Package input turns key presses into state changes.
//
// Decoding and dispatch are separate steps. DecodeMain and DecodeDialog map
// a tea.KeyMsg onto a closed set of commands; the Router applies a command
// to the pattern dialog or to the scroll window, depending on whether the
// dialog is open. Nothing past the decode step looks at raw keys.
package input

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Kind identifies a command.
type Kind int

const (
	None Kind = iota

	// Main view
	Quit
	OpenDialog
	ToggleWrap
	ToggleFilter
	CycleTheme
	LineUp
	LineDown
	PageUp
	PageDown
	Top
	Bottom

	// Dialog
	Close
	Interrupt
	Submit
	SelectPrev
	SelectNext
	ToggleCase
	Delete
	Backspace
	Insert
)

var kindNames = map[Kind]string{
	None:         "none",
	Quit:         "quit",
	OpenDialog:   "open-dialog",
	ToggleWrap:   "toggle-wrap",
	ToggleFilter: "toggle-filter",
	CycleTheme:   "cycle-theme",
	LineUp:       "line-up",
	LineDown:     "line-down",
	PageUp:       "page-up",
	PageDown:     "page-down",
	Top:          "top",
	Bottom:       "bottom",
	Close:        "close",
	Interrupt:    "interrupt",
	Submit:       "submit",
	SelectPrev:   "select-prev",
	SelectNext:   "select-next",
	ToggleCase:   "toggle-case",
	Delete:       "delete",
	Backspace:    "backspace",
	Insert:       "insert",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Command is a decoded key press. Text is only set for Insert.
type Command struct {
	Kind Kind
	Text string
}

// DecodeMain maps a key press in the main view to a command.
func (k KeyMap) DecodeMain(msg tea.KeyMsg) Command {
	bindings := []struct {
		binding key.Binding
		kind    Kind
	}{
		{k.Quit, Quit},
		{k.OpenDialog, OpenDialog},
		{k.ToggleWrap, ToggleWrap},
		{k.ToggleFilter, ToggleFilter},
		{k.CycleTheme, CycleTheme},
		{k.Up, LineUp},
		{k.Down, LineDown},
		{k.HalfPageUp, PageUp},
		{k.HalfPageDown, PageDown},
		{k.Top, Top},
		{k.Bottom, Bottom},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return Command{Kind: b.kind}
		}
	}
	return Command{}
}

// DecodeDialog maps a key press inside the pattern dialog to a command.
// Printable characters insert text; keys with a control modifier never do.
func (k KeyMap) DecodeDialog(msg tea.KeyMsg) Command {
	bindings := []struct {
		binding key.Binding
		kind    Kind
	}{
		{k.Interrupt, Interrupt},
		{k.Close, Close},
		{k.Submit, Submit},
		{k.SelectPrev, SelectPrev},
		{k.SelectNext, SelectNext},
		{k.ToggleCase, ToggleCase},
		{k.Delete, Delete},
		{k.Backspace, Backspace},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return Command{Kind: b.kind}
		}
	}

	switch msg.Type {
	case tea.KeyRunes:
		if msg.Alt {
			return Command{}
		}
		text := strings.Map(func(r rune) rune {
			if unicode.IsControl(r) {
				return -1
			}
			return r
		}, string(msg.Runes))
		if text == "" {
			return Command{}
		}
		return Command{Kind: Insert, Text: text}
	case tea.KeySpace:
		return Command{Kind: Insert, Text: " "}
	}
	return Command{}
}
