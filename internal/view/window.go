// Package view tracks which slice of the line buffer is on screen.
//
// A Window is a scroll offset plus a follow flag. In follow mode the view
// sticks to the newest lines; any backward movement turns follow off and a
// downward movement that reaches the bottom turns it back on. All methods
// take the current line count and viewport height because both change under
// the window between calls.
package view

// MaxStart is the largest useful scroll offset for total lines shown in a
// viewport of the given height.
func MaxStart(total, height int) int {
	if height <= 0 || total <= 0 {
		return 0
	}
	return max(0, total-height)
}

// Window is the scroll state.
type Window struct {
	Scroll int
	Follow bool
}

// NewWindow returns a window that follows new lines.
func NewWindow() Window {
	return Window{Follow: true}
}

// Start returns the index of the first visible line.
func (w Window) Start(total, height int) int {
	maxStart := MaxStart(total, height)
	if w.Follow {
		return maxStart
	}
	return min(max(w.Scroll, 0), maxStart)
}

// Visible returns the half-open range of buffer indexes on screen.
func (w Window) Visible(total, height int) (start, end int) {
	if total <= 0 || height <= 0 {
		return 0, 0
	}
	start = w.Start(total, height)
	return start, min(total, start+height)
}

// AtBottom reports whether the last line is on screen.
func (w Window) AtBottom(total, height int) bool {
	return w.Start(total, height) >= MaxStart(total, height)
}

// LineUp scrolls back one line. Leaving follow mode snaps the offset to the
// current bottom first.
func (w *Window) LineUp(total, height int) {
	w.up(total, height, 1)
}

// LineDown scrolls forward one line, re-engaging follow at the bottom.
func (w *Window) LineDown(total, height int) {
	w.down(total, height, 1, false)
}

// PageUp scrolls back half a page.
func (w *Window) PageUp(total, height int) {
	w.up(total, height, pageDelta(height))
}

// PageDown scrolls forward half a page.
func (w *Window) PageDown(total, height int) {
	w.down(total, height, pageDelta(height), true)
}

// Top jumps to the first line.
func (w *Window) Top(total, height int) {
	if total <= 0 {
		return
	}
	w.Follow = false
	w.Scroll = 0
}

// Bottom jumps to the last line and follows.
func (w *Window) Bottom(total, height int) {
	if total <= 0 {
		return
	}
	w.Follow = true
	w.Scroll = MaxStart(total, height)
}

func (w *Window) up(total, height, delta int) {
	if total <= 0 {
		return
	}
	maxStart := MaxStart(total, height)
	if w.Follow {
		w.Follow = false
		w.Scroll = maxStart
	}
	w.Scroll = max(0, min(w.Scroll, maxStart)-delta)
}

// down advances by delta. A page move that lands on the bottom follows
// immediately; a line move only follows once it is pressed at the bottom.
func (w *Window) down(total, height, delta int, followOnLand bool) {
	if total <= 0 {
		return
	}
	maxStart := MaxStart(total, height)
	if w.Follow {
		w.Scroll = maxStart
	}
	cur := min(max(w.Scroll, 0), maxStart)
	if cur >= maxStart {
		w.Scroll = maxStart
		w.Follow = true
		return
	}
	w.Scroll = min(cur+delta, maxStart)
	if w.Scroll == maxStart && followOnLand {
		w.Follow = true
	}
}

func pageDelta(height int) int {
	return max(1, height/2)
}
