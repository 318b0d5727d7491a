package state

import (
	"github.com/five82/logr/internal/highlight"
	"github.com/five82/logr/internal/pattern"
	"github.com/five82/logr/internal/styled"
)

// Line is one received line.
type Line struct {
	Raw   string
	Plain string // Raw without escape sequences
}

// Buffer is the append-only list of received lines.
type Buffer struct {
	lines []Line
}

// Append stores raw and returns its index.
func (b *Buffer) Append(raw string) int {
	b.lines = append(b.lines, Line{Raw: raw, Plain: styled.Parse(raw).Plain()})
	return len(b.lines) - 1
}

// Len returns the number of lines received.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// At returns line i.
func (b *Buffer) At(i int) Line {
	return b.lines[i]
}

// FilterIndex lists the buffer positions whose plain text matches at least
// one pattern. It extends itself as lines arrive and starts over when the
// pattern list changes.
type FilterIndex struct {
	positions []int
	scanned   int
	version   uint64
	valid     bool
}

// Sync brings the index up to date with buf and store.
func (f *FilterIndex) Sync(buf *Buffer, store *pattern.Store) {
	if !f.valid || f.version != store.Version() {
		f.positions = f.positions[:0]
		f.scanned = 0
		f.version = store.Version()
		f.valid = true
	}
	if f.scanned >= buf.Len() {
		return
	}
	patterns := store.All()
	for i := f.scanned; i < buf.Len(); i++ {
		if highlight.MatchesAny(buf.At(i).Plain, patterns) {
			f.positions = append(f.positions, i)
		}
	}
	f.scanned = buf.Len()
}

// Len returns the number of matching lines.
func (f *FilterIndex) Len() int {
	return len(f.positions)
}

// At returns the buffer position of the i-th matching line.
func (f *FilterIndex) At(i int) int {
	return f.positions[i]
}
