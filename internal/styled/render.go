package styled

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const tabWidth = 4

// Lipgloss converts c to a lipgloss color. The default color maps to
// lipgloss.NoColor.
func (c Color) Lipgloss() lipgloss.TerminalColor {
	switch c.Kind {
	case ColorIndexed:
		return lipgloss.Color(strconv.Itoa(int(c.Index)))
	case ColorRGB:
		return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	default:
		return lipgloss.NoColor{}
	}
}

// Lipgloss builds the lipgloss style equivalent to s.
func (s Style) Lipgloss() lipgloss.Style {
	ls := lipgloss.NewStyle()
	if !s.Fg.IsDefault() {
		ls = ls.Foreground(s.Fg.Lipgloss())
	}
	if !s.Bg.IsDefault() {
		ls = ls.Background(s.Bg.Lipgloss())
	}
	if s.Attrs.Has(AttrBold) {
		ls = ls.Bold(true)
	}
	if s.Attrs.Has(AttrFaint) {
		ls = ls.Faint(true)
	}
	if s.Attrs.Has(AttrItalic) {
		ls = ls.Italic(true)
	}
	if s.Attrs.Has(AttrUnderline) {
		ls = ls.Underline(true)
	}
	if s.Attrs.Has(AttrBlink) {
		ls = ls.Blink(true)
	}
	if s.Attrs.Has(AttrReverse) {
		ls = ls.Reverse(true)
	}
	if s.Attrs.Has(AttrStrikethrough) {
		ls = ls.Strikethrough(true)
	}
	return ls
}

// Render returns the line as terminal output. Tabs are expanded to spaces
// so that width calculations downstream stay correct.
func (l Line) Render() string {
	var b strings.Builder
	for _, s := range l {
		text := strings.ReplaceAll(s.Text, "\t", strings.Repeat(" ", tabWidth))
		if s.Style.IsZero() {
			b.WriteString(text)
			continue
		}
		if s.Style.Attrs.Has(AttrHidden) {
			text = strings.Repeat(" ", lipgloss.Width(text))
		}
		b.WriteString(s.Style.Lipgloss().Render(text))
	}
	return b.String()
}
