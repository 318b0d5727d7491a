// Package styled models terminal text as runs of uniformly styled spans.
//
// A Line is what a raw output line looks like after its embedded SGR escape
// sequences have been decoded: an ordered list of spans whose texts
// concatenate to the visible (plain) text. Spans can be sliced at byte
// offsets and re-rendered with lipgloss.
package styled

import "strings"

// ColorKind distinguishes the color encodings a terminal understands.
type ColorKind uint8

const (
	ColorDefault ColorKind = iota
	ColorIndexed
	ColorRGB
)

// Color is a terminal color. Indexed covers both the 16 basic colors
// (0-15) and the 256-color palette.
type Color struct {
	Kind    ColorKind
	Index   uint8
	R, G, B uint8
}

// Indexed returns a palette color.
func Indexed(i uint8) Color {
	return Color{Kind: ColorIndexed, Index: i}
}

// RGB returns a true-color value.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, R: r, G: g, B: b}
}

// IsDefault reports whether c is the terminal default.
func (c Color) IsDefault() bool {
	return c.Kind == ColorDefault
}

// Basic ANSI colors by index.
var (
	Black        = Indexed(0)
	Red          = Indexed(1)
	Green        = Indexed(2)
	Yellow       = Indexed(3)
	Blue         = Indexed(4)
	Magenta      = Indexed(5)
	Cyan         = Indexed(6)
	White        = Indexed(7)
	LightRed     = Indexed(9)
	LightGreen   = Indexed(10)
	LightYellow  = Indexed(11)
	LightBlue    = Indexed(12)
	LightMagenta = Indexed(13)
	LightCyan    = Indexed(14)
)

// Attr is a bit set of text attributes.
type Attr uint16

const (
	AttrBold Attr = 1 << iota
	AttrFaint
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrikethrough
)

// Has reports whether all bits of flag are set.
func (a Attr) Has(flag Attr) bool {
	return a&flag == flag
}

// Style is the full rendition state of a span.
type Style struct {
	Fg    Color
	Bg    Color
	Attrs Attr
}

// WithFg returns a copy of s with the foreground replaced.
func (s Style) WithFg(c Color) Style {
	s.Fg = c
	return s
}

// IsZero reports whether s is the default rendition.
func (s Style) IsZero() bool {
	return s == (Style{})
}

// Span is a run of text with a single style.
type Span struct {
	Text  string
	Style Style
}

// Line is an ordered list of spans.
type Line []Span

// Plain returns the visible text of the line.
func (l Line) Plain() string {
	if len(l) == 1 {
		return l[0].Text
	}
	var b strings.Builder
	for _, s := range l {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Len returns the byte length of the visible text.
func (l Line) Len() int {
	n := 0
	for _, s := range l {
		n += len(s.Text)
	}
	return n
}

// Slice returns the spans covering the byte range [start, end) of the plain
// text, cutting the first and last span as needed. Callers must pass
// offsets that fall on rune boundaries.
func (l Line) Slice(start, end int) Line {
	if start >= end {
		return nil
	}
	var out Line
	offset := 0
	for _, s := range l {
		spanStart := offset
		spanEnd := offset + len(s.Text)
		offset = spanEnd
		if spanEnd <= start {
			continue
		}
		if spanStart >= end {
			break
		}
		from := max(start-spanStart, 0)
		to := min(end-spanStart, len(s.Text))
		if from < to {
			out = append(out, Span{Text: s.Text[from:to], Style: s.Style})
		}
	}
	return out
}

// appendSpan adds s to l, merging it into the last span when the styles
// match. Empty spans are dropped.
func appendSpan(l Line, s Span) Line {
	if s.Text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].Style == s.Style {
		l[n-1].Text += s.Text
		return l
	}
	return append(l, s)
}
