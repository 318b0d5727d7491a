package ui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

const (
	dialogWidthPct  = 80
	dialogHeightPct = 60
	dialogTitle     = "Patterns (Enter: add, Del: delete, Left/Right: case, Esc: close)"
)

// overlayDialog draws the pattern dialog centered over rows.
func (m *Model) overlayDialog(rows []string) []string {
	w := m.width * dialogWidthPct / 100
	h := m.height * dialogHeightPct / 100
	box := m.renderDialog(w, h)
	if box == nil {
		return rows
	}
	x := (m.width - w) / 2
	y := (m.height - h) / 2

	out := make([]string, len(rows))
	copy(out, rows)
	for i, line := range box {
		r := y + i
		if r >= len(out) {
			break
		}
		base := out[r]
		left := padCells(ansi.Cut(base, 0, x), x)
		right := ansi.Cut(base, x+w, m.width)
		out[r] = left + line + right
	}
	return out
}

// renderDialog returns h rows of w cells, or nil when the box is too small
// to hold anything.
func (m *Model) renderDialog(w, h int) []string {
	if w < 4 || h < 3 {
		return nil
	}
	inner := w - 2
	body := m.dialogRows(inner, h-2)

	edge := m.styles.BorderFocus
	title := m.styles.DialogTitle.Render(runewidth.Truncate(dialogTitle, inner, "…"))
	top := edge.Render(border.TopLeft) + title +
		edge.Render(strings.Repeat(border.Top, inner-ansi.StringWidth(title))) +
		edge.Render(border.TopRight)

	out := make([]string, 0, h)
	out = append(out, top)
	for _, row := range body {
		out = append(out, edge.Render(border.Left)+padCells(row, inner)+edge.Render(border.Right))
	}
	out = append(out, edge.Render(border.BottomLeft+strings.Repeat(border.Bottom, inner)+border.BottomRight))
	return out
}

// dialogRows lists the pattern rows, the error row and the input row,
// scrolled so the selected row stays visible.
func (m *Model) dialogRows(width, height int) []string {
	selected := m.dialog.Selected()
	patterns := m.store.All()

	rows := make([]string, 0, len(patterns)+2)
	for i, p := range patterns {
		marker := "  "
		if i == selected {
			marker = "> "
		}
		check := "[ ]"
		if p.CaseSensitive() {
			check = "[x]"
		}
		text := runewidth.Truncate(marker+check+" "+p.Text(), width, "…")
		rows = append(rows, patternStyle(i).Render(text))
	}
	if msg := m.dialog.Err(); msg != "" {
		rows = append(rows, m.styles.Error.Render(runewidth.Truncate(msg, width, "…")))
	}
	rows = append(rows, m.inputRow(width))

	focus := len(rows) - 1
	if selected < len(patterns) {
		focus = selected
	}
	offset := 0
	if focus >= height {
		offset = focus - height + 1
	}
	rows = rows[offset:]
	if len(rows) > height {
		rows = rows[:height]
	}
	for len(rows) < height {
		rows = append(rows, "")
	}
	return rows
}

// inputRow renders "> + text" with the text input showing the cursor while
// the input row is selected.
func (m *Model) inputRow(width int) string {
	marker := "  "
	style := m.styles.Input
	if m.dialog.OnInputRow() {
		marker = "> "
		style = m.styles.InputActive
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	m.input.PromptStyle = style
	m.input.TextStyle = style
	m.input.Width = max(1, width-ansi.StringWidth(marker)-ansi.StringWidth(m.input.Prompt)-1)
	m.input.SetValue(m.dialog.Input())
	m.input.CursorEnd()
	return style.Render(marker) + m.input.View()
}
