// Package state holds the lines logr has received.
//
// # Overview
//
// Buffer is append-only. Each line is stored twice: the raw text exactly as
// the source produced it, escape sequences included, and the plain text
// with escapes removed. Plain text is computed once on append because both
// the filter and the search for matches run on it for every frame.
//
// FilterIndex backs the filter-only view. It maps positions in the filtered
// view to positions in the buffer:
//
//	buffer:   0 ok   1 ERROR   2 ok   3 error   4 fine
//	filtered: 0 → 1            1 → 3
//
// # Update Semantics
//
// Sync is called before every render that needs the filtered view:
//
//   - New lines since the last Sync are tested and appended to the index
//   - A changed pattern store version discards the index and rescans the
//     whole buffer
//
// The store version increments on every successful add, remove or case
// toggle, so the index never shows matches for a stale pattern list.
//
// # Concurrency Model
//
// Neither type is safe for concurrent use. The UI loop is their only owner:
// lines arrive as messages and are appended inside Update, and the view
// reads them in the same goroutine. Sources never touch the buffer.
package state
