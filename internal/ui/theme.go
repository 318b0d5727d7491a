package ui

import (
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors of the pager chrome. Log lines keep their own
// colors; pattern highlights use the fixed pattern palette.
type Theme struct {
	Name string

	Border      string // Main frame
	BorderFocus string // Dialog frame

	Text    string
	Muted   string
	Faint   string
	Accent  string
	Warning string
	Danger  string
	Info    string
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	Border      lipgloss.Style
	BorderFocus lipgloss.Style
	Title       lipgloss.Style
	TitleFlag   lipgloss.Style
	Status      lipgloss.Style
	Position    lipgloss.Style
	Error       lipgloss.Style
	DialogTitle lipgloss.Style
	Input       lipgloss.Style
	InputActive lipgloss.Style

	HintKey  lipgloss.Style
	HintDesc lipgloss.Style
	HintSep  lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Border: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Border)),

		BorderFocus: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.BorderFocus)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		TitleFlag: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Position: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		DialogTitle: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Input: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		InputActive: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		HintKey: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		HintDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		HintSep: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),
	}
}

// helpStyles dresses the key hint in the theme's colors.
func (s Styles) helpStyles() help.Styles {
	hs := help.New().Styles
	hs.ShortKey = s.HintKey
	hs.ShortDesc = s.HintDesc
	hs.ShortSeparator = s.HintSep
	hs.FullKey = s.HintKey
	hs.FullDesc = s.HintDesc
	hs.FullSeparator = s.HintSep
	return hs
}

// Theme definitions

var themes = map[string]Theme{
	"Dracula": draculaTheme(),
	"Slate":   slateTheme(),
}

var themeOrder = []string{"Dracula", "Slate"}

// GetTheme returns a theme by name, falling back to Dracula.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return draculaTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

// ThemeNames returns available theme names.
func ThemeNames() []string {
	return slices.Clone(themeOrder)
}

// HasTheme reports whether name is a known theme.
func HasTheme(name string) bool {
	_, ok := themes[name]
	return ok
}

func draculaTheme() Theme {
	// Official Dracula palette: https://draculatheme.com/spec
	return Theme{
		Name: "Dracula",

		Border:      "#44475A", // Selection
		BorderFocus: "#BD93F9", // Purple

		Text:    "#F8F8F2", // Foreground
		Muted:   "#6272A4", // Comment
		Faint:   "#44475A", // Selection
		Accent:  "#BD93F9", // Purple
		Warning: "#F1FA8C", // Yellow
		Danger:  "#FF5555", // Red
		Info:    "#8BE9FD", // Cyan
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Slate",

		Border:      "#334155", // slate-700
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Warning: "#facc15", // yellow-400
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
