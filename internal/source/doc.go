// Package source provides the line feeds logr reads from.
//
// # Overview
//
// A Source produces lines on its own goroutine; a Feed wraps it and hands
// the lines to the UI one at a time through a buffered channel. The UI is
// the only consumer and polls with a bounded wait:
//
//	Producer goroutine:            UI loop:
//	┌──────────────────┐          ┌──────────────────┐
//	│ src.Run(emit)    │          │ feed.Next(tick)  │
//	│      ↓           │ (chan)   │      ↓           │
//	│ emit(line) ──────┼─────────→│ buffer.Append    │
//	└──────────────────┘          └──────────────────┘
//
// emit blocks when the channel is full, so a fast producer is throttled by
// the UI rather than growing memory without bound.
//
// # Sources
//
//   - Reader: any io.Reader, normally stdin. Lines longer than 1 MiB are
//     cut to 1 MiB and reading goes on with the next line.
//   - File: shows the last N lines of a file, then follows appends with
//     fsnotify. A file truncated in place is re-read from the start; a
//     removed or renamed file ends the feed with ErrSourceGone.
//   - Command: runs a program under a pty so that it keeps writing colors.
//     A non-zero exit status becomes the feed error.
//
// # Tail Algorithm
//
// The File seed keeps a ring of the last N lines while reading the file
// once, so memory stays O(N) regardless of file size:
//
//  1. Allocate a ring of N entries
//  2. Store each complete line at the current index and advance it
//  3. At EOF the oldest line sits at the current index
//
// Bytes after the last newline are kept as a partial line and completed by
// later appends.
//
// # End of Input
//
// A finished source does not stop the pager. Next returns ok=false and Done
// turns true once every buffered line was consumed; Err then reports why
// the source ended, or nil for a clean end of input.
package source
