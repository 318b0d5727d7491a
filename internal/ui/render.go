package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/five82/logr/internal/highlight"
	"github.com/five82/logr/internal/pattern"
	"github.com/five82/logr/internal/view"
)

// Rounded border pieces, as lipgloss.RoundedBorder draws them.
var border = lipgloss.RoundedBorder()

// render draws the whole screen: the bordered log view and, when open, the
// pattern dialog on top of it.
func (m *Model) render() string {
	if m.width < 2 || m.height < 2 {
		return ""
	}

	rows := make([]string, 0, m.height)
	rows = append(rows, m.renderTop())
	for _, row := range m.renderContent() {
		rows = append(rows, m.styles.Border.Render(border.Left)+row+m.styles.Border.Render(border.Right))
	}
	rows = append(rows, m.renderBottom())

	if m.dialog.IsOpen() {
		rows = m.overlayDialog(rows)
	}
	return strings.Join(rows, "\n")
}

// renderContent returns exactly viewHeight rows of exactly the inner width.
func (m *Model) renderContent() []string {
	width := m.width - 2
	height := m.viewHeight()
	total := m.total()
	window := m.router.Window()
	start, end := window.Visible(total, height)
	patterns := m.store.All()

	var rows []string
	for i := start; i < end; i++ {
		rendered := highlight.Line(m.lineAt(i).Raw, patterns).Render()
		if !m.router.Wrap() {
			rows = append(rows, ansi.Truncate(rendered, width, ""))
			continue
		}
		rows = append(rows, strings.Split(ansi.Hardwrap(rendered, width, true), "\n")...)
	}

	if len(rows) > height {
		// Wrapped lines overflow the view. While at the bottom keep the
		// newest rows on screen, otherwise keep the first line's top.
		if window.AtBottom(total, height) {
			rows = rows[len(rows)-height:]
		} else {
			rows = rows[:height]
		}
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	for i, row := range rows {
		rows[i] = padCells(row, width)
	}
	return rows
}

// renderTop draws the top border with the title.
func (m *Model) renderTop() string {
	return m.borderRow(border.TopLeft, border.Top, border.TopRight, m.renderTitle(), "")
}

// renderBottom draws the bottom border with the key hint on the left and the
// scroll position on the right. The hint gives way when both do not fit.
func (m *Model) renderBottom() string {
	inner := m.width - 2
	position := m.renderPosition()
	if ansi.StringWidth(position) > inner {
		position = ""
	}
	hint := m.help.ShortHelpView(m.router.Keys().ShortHelp())
	if ansi.StringWidth(hint)+ansi.StringWidth(position) > inner {
		hint = ""
	}
	return m.borderRow(border.BottomLeft, border.Bottom, border.BottomRight, hint, position)
}

// renderPosition returns "[cur/total (pct%)]" while scrolled back.
func (m *Model) renderPosition() string {
	total := m.total()
	height := m.viewHeight()
	start := m.router.Window().Start(total, height)
	if total == 0 || start >= view.MaxStart(total, height) {
		return ""
	}
	cur := start + 1
	return m.styles.Position.Render(fmt.Sprintf("[%d/%d (%d%%)]", cur, total, cur*100/total))
}

// renderTitle names the source and lists the active toggles.
func (m *Model) renderTitle() string {
	name := "logr"
	if m.feed != nil {
		name = m.feed.Name()
	}
	parts := []string{m.styles.Title.Render(name)}

	count := m.store.Len()
	label := fmt.Sprintf("%d patterns", count)
	if count == 1 {
		label = "1 pattern"
	}
	parts = append(parts, m.styles.TitleFlag.Render(label))
	if m.router.FilterOnly() {
		parts = append(parts, m.styles.TitleFlag.Render("filter"))
	}
	if m.router.Wrap() {
		parts = append(parts, m.styles.TitleFlag.Render("wrap"))
	}
	switch {
	case m.srcErr != nil:
		parts = append(parts, m.styles.Error.Render(m.srcErr.Error()))
	case m.srcDone:
		parts = append(parts, m.styles.Status.Render("EOF"))
	}

	sep := m.styles.Border.Render(" │ ")
	title := " " + strings.Join(parts, sep) + " "
	return ansi.Truncate(title, max(0, m.width-2), "…")
}

// borderRow lays left and right labels into a horizontal border line of the
// full width.
func (m *Model) borderRow(leftCorner, edge, rightCorner, left, right string) string {
	inner := m.width - 2
	fill := inner - ansi.StringWidth(left) - ansi.StringWidth(right)
	if fill < 0 {
		left = ansi.Truncate(left, max(0, inner-ansi.StringWidth(right)), "")
		fill = max(0, inner-ansi.StringWidth(left)-ansi.StringWidth(right))
	}
	return m.styles.Border.Render(leftCorner) +
		left +
		m.styles.Border.Render(strings.Repeat(edge, fill)) +
		right +
		m.styles.Border.Render(rightCorner)
}

// padCells pads or cuts s to exactly width cells.
func padCells(s string, width int) string {
	w := ansi.StringWidth(s)
	switch {
	case w > width:
		s = ansi.Truncate(s, width, "")
		return s + strings.Repeat(" ", width-ansi.StringWidth(s))
	case w < width:
		return s + strings.Repeat(" ", width-w)
	default:
		return s
	}
}

// patternStyle colors a dialog row like the pattern's highlights.
func patternStyle(i int) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(pattern.Color(i).Lipgloss())
}
