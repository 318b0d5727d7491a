// Package ui is the Bubble Tea front end of the pager.
//
// # Loop
//
// Model.Update is the single mutator. Three kinds of message reach it:
//
//   - tea.KeyMsg and tea.MouseMsg go to the input router, which either edits
//     patterns through the dialog or moves the scroll window. A quit result
//     returns tea.Quit, so nothing after it is processed.
//   - lineMsg and idleMsg come from a chained poll command that waits up to
//     one tick for the next line from the source feed. Each result issues the
//     next poll; polling stops once the feed is exhausted.
//   - tea.WindowSizeMsg updates the layout and resizes a pty-backed source.
//
// The screen is rendered inside Update only when one of these changed
// something visible (or while the dialog is open); View returns the cached
// frame.
//
// # Layout
//
//	╭ source │ 2 patterns │ filter │ EOF ────────────────╮
//	│ highlighted log lines                               │
//	│ ...                                                 │
//	╰ p patterns • w wrap • ... ─────── [10/250 (4%)] ────╯
//
// Content height is the terminal height minus the two border rows. Lines are
// cut at the inner width, or hard wrapped in wrap mode. When wrapped lines
// overflow while following, the newest rows stay on screen.
//
// The pattern dialog covers the middle 80% by 60% of the screen. It lists
// one row per pattern ("> [x] text", colored like its highlights), the last
// compile error, and the input row for a new pattern.
//
// # Themes
//
// Dracula (default) and Slate color the chrome only; T cycles them for the
// session.
package ui
