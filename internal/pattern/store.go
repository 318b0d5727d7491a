// Package pattern owns the ordered list of highlight patterns.
//
// Each Pattern pairs its source text and case mode with the regexp compiled
// from them. Mutations compile first and commit only on success, so a
// Pattern's matcher always agrees with its text and case flag. List position
// is priority: index 0 wins overlapping matches and gets the first palette
// color.
package pattern

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/five82/logr/internal/styled"
)

var (
	// ErrInvalidPattern wraps every compile failure.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrNoSuchPattern is returned for an index outside the list.
	ErrNoSuchPattern = errors.New("no such pattern")
)

// CompileError carries the compiler's message for a rejected pattern.
type CompileError struct {
	Text string
	Err  error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("invalid pattern %q: %v", e.Text, e.Err)
}

func (e *CompileError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrInvalidPattern) hold for every CompileError.
func (e *CompileError) Is(target error) bool {
	return target == ErrInvalidPattern
}

// Compiler builds a matcher for text in the given case mode.
type Compiler func(text string, caseSensitive bool) (*regexp.Regexp, error)

// Compile is the default Compiler. Case-insensitive patterns get the (?i)
// flag; everything else is plain RE2 syntax.
func Compile(text string, caseSensitive bool) (*regexp.Regexp, error) {
	if caseSensitive {
		return regexp.Compile(text)
	}
	return regexp.Compile("(?i)" + text)
}

// Pattern is one highlight rule.
type Pattern struct {
	text          string
	caseSensitive bool
	re            *regexp.Regexp
}

// Text returns the pattern source.
func (p Pattern) Text() string { return p.text }

// CaseSensitive reports the case mode.
func (p Pattern) CaseSensitive() bool { return p.caseSensitive }

// Regexp returns the compiled matcher.
func (p Pattern) Regexp() *regexp.Regexp { return p.re }

// Option configures a Store.
type Option func(*Store)

// WithCompiler replaces the default compiler.
func WithCompiler(c Compiler) Option {
	return func(s *Store) {
		s.compile = c
	}
}

// Store is the ordered pattern list. It is not safe for concurrent use; the
// UI loop is its only owner.
type Store struct {
	patterns []Pattern
	compile  Compiler
	version  uint64
}

// NewStore returns an empty store.
func NewStore(opts ...Option) *Store {
	s := &Store{compile: Compile}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add compiles text and appends it, returning the new index. On a compile
// failure the store is left untouched.
func (s *Store) Add(text string, caseSensitive bool) (int, error) {
	re, err := s.compile(text, caseSensitive)
	if err != nil {
		return -1, &CompileError{Text: text, Err: err}
	}
	s.patterns = append(s.patterns, Pattern{text: text, caseSensitive: caseSensitive, re: re})
	s.version++
	return len(s.patterns) - 1, nil
}

// ToggleCase flips the case mode of pattern i. The pattern is only updated
// if the text compiles under the new mode.
func (s *Store) ToggleCase(i int) error {
	if i < 0 || i >= len(s.patterns) {
		return fmt.Errorf("toggle case %d: %w", i, ErrNoSuchPattern)
	}
	p := s.patterns[i]
	flipped := !p.caseSensitive
	re, err := s.compile(p.text, flipped)
	if err != nil {
		return &CompileError{Text: p.text, Err: err}
	}
	s.patterns[i] = Pattern{text: p.text, caseSensitive: flipped, re: re}
	s.version++
	return nil
}

// Remove deletes pattern i. Out-of-range indexes are ignored.
func (s *Store) Remove(i int) {
	if i < 0 || i >= len(s.patterns) {
		return
	}
	s.patterns = append(s.patterns[:i], s.patterns[i+1:]...)
	s.version++
}

// Len returns the number of patterns.
func (s *Store) Len() int {
	return len(s.patterns)
}

// At returns pattern i. It panics if i is out of range, like a slice index.
func (s *Store) At(i int) Pattern {
	return s.patterns[i]
}

// All returns a copy of the list in priority order.
func (s *Store) All() []Pattern {
	out := make([]Pattern, len(s.patterns))
	copy(out, s.patterns)
	return out
}

// Version changes whenever the list or any pattern in it changes.
func (s *Store) Version() uint64 {
	return s.version
}

// Palette is the fixed set of highlight colors, reused cyclically.
var Palette = [10]styled.Color{
	styled.Red,
	styled.Green,
	styled.Blue,
	styled.Yellow,
	styled.Magenta,
	styled.Cyan,
	styled.LightRed,
	styled.LightGreen,
	styled.LightYellow,
	styled.LightBlue,
}

// Color returns the highlight color for list position i.
func Color(i int) styled.Color {
	if i < 0 {
		i = -i
	}
	return Palette[i%len(Palette)]
}
