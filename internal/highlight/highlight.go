// Package highlight overlays pattern matches on a decoded terminal line.
//
// The base styling of a line comes from its own escape sequences. Every
// pattern contributes match ranges over the visible text; where ranges
// overlap, the pattern earlier in the list keeps every byte it claimed. A
// matched region only changes the foreground color, so bold, background and
// similar attributes from the source survive.
package highlight

import (
	"sort"
	"unicode/utf8"

	"github.com/five82/logr/internal/pattern"
	"github.com/five82/logr/internal/styled"
)

type match struct {
	start, end int
	index      int
	color      styled.Color
}

// Line decodes raw and highlights it.
func Line(raw string, patterns []pattern.Pattern) styled.Line {
	return Highlight(styled.Parse(raw), patterns)
}

// Highlight returns base with pattern matches recolored. The result covers
// the plain text of base exactly once, in order.
func Highlight(base styled.Line, patterns []pattern.Pattern) styled.Line {
	plain := base.Plain()
	matches := collect(plain, patterns)
	if len(matches) == 0 {
		return base
	}

	var out styled.Line
	cursor := 0
	for _, m := range matches {
		if m.end <= cursor {
			continue
		}
		start := max(m.start, cursor)
		if cursor < start {
			out = append(out, base.Slice(cursor, start)...)
		}
		for _, span := range base.Slice(start, m.end) {
			out = append(out, styled.Span{Text: span.Text, Style: span.Style.WithFg(m.color)})
		}
		cursor = m.end
	}
	if cursor < len(plain) {
		out = append(out, base.Slice(cursor, len(plain))...)
	}
	return out
}

// collect returns the non-empty matches of every pattern, ordered by start
// and then by pattern priority.
func collect(plain string, patterns []pattern.Pattern) []match {
	var matches []match
	for i, p := range patterns {
		re := p.Regexp()
		if re == nil {
			continue
		}
		color := pattern.Color(i)
		for _, loc := range re.FindAllStringIndex(plain, -1) {
			start := runeStart(plain, loc[0])
			end := runeStart(plain, loc[1])
			if start >= end {
				continue
			}
			matches = append(matches, match{start: start, end: end, index: i, color: color})
		}
	}
	sort.SliceStable(matches, func(a, b int) bool {
		if matches[a].start != matches[b].start {
			return matches[a].start < matches[b].start
		}
		return matches[a].index < matches[b].index
	})
	return matches
}

// runeStart moves i back to the first byte of the rune containing it.
func runeStart(s string, i int) int {
	if i >= len(s) {
		return len(s)
	}
	for i > 0 && !utf8.RuneStart(s[i]) {
		i--
	}
	return i
}

// MatchesAny reports whether any pattern matches plain. It drives the
// filter-only view and runs on text without escape sequences.
func MatchesAny(plain string, patterns []pattern.Pattern) bool {
	for _, p := range patterns {
		if re := p.Regexp(); re != nil && re.MatchString(plain) {
			return true
		}
	}
	return false
}
