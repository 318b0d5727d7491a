// Package dialog implements the pattern editing overlay.
//
// The controller is either closed or open. While open it holds the text
// being typed, a selection cursor over the pattern rows, and the last
// compile error. The cursor ranges over [0, len(patterns)], where the extra
// position is the input row for a new pattern.
package dialog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/five82/logr/internal/logging"
	"github.com/five82/logr/internal/pattern"
)

// Controller is the dialog state machine. It mutates the pattern store it
// was built with.
type Controller struct {
	store    *pattern.Store
	logger   *logging.Logger
	open     bool
	input    string
	selected int
	err      string
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger records pattern edits on logger.
func WithLogger(logger *logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New returns a closed dialog editing store.
func New(store *pattern.Store, opts ...Option) *Controller {
	c := &Controller{store: store, logger: logging.NopLogger()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Open shows the dialog with a fresh input row and the first pattern
// selected.
func (c *Controller) Open() {
	c.open = true
	c.input = ""
	c.err = ""
	c.selected = 0
}

// Close hides the dialog and drops any pending input and error.
func (c *Controller) Close() {
	c.open = false
	c.input = ""
	c.err = ""
	c.selected = 0
}

// IsOpen reports whether the dialog is showing.
func (c *Controller) IsOpen() bool { return c.open }

// Input returns the text typed so far.
func (c *Controller) Input() string { return c.input }

// Err returns the last error message, or "".
func (c *Controller) Err() string { return c.err }

// Selected returns the cursor position. Len() of the store means the input
// row.
func (c *Controller) Selected() int {
	return min(max(c.selected, 0), c.store.Len())
}

// OnInputRow reports whether the cursor is on the input row.
func (c *Controller) OnInputRow() bool {
	return c.Selected() == c.store.Len()
}

// Submit adds the typed text as a new pattern. Blank input just closes the
// dialog. On a compile failure the dialog stays open with the input kept
// and the error shown.
func (c *Controller) Submit(caseSensitive bool) {
	if !c.open {
		return
	}
	if strings.TrimSpace(c.input) == "" {
		c.Close()
		return
	}
	idx, err := c.store.Add(c.input, caseSensitive)
	if err != nil {
		c.fail("add pattern", err)
		return
	}
	c.logger.Info("pattern added", "index", idx, "pattern", c.input, "case_sensitive", caseSensitive)
	c.Close()
}

// SelectPrev moves the cursor up one row.
func (c *Controller) SelectPrev() {
	if !c.open {
		return
	}
	c.selected = max(0, c.Selected()-1)
}

// SelectNext moves the cursor down one row, stopping at the input row.
func (c *Controller) SelectNext() {
	if !c.open {
		return
	}
	c.selected = min(c.store.Len(), c.Selected()+1)
}

// ToggleCase flips the case mode of the selected pattern. It does nothing on
// the input row.
func (c *Controller) ToggleCase() {
	if !c.open || c.OnInputRow() {
		return
	}
	i := c.Selected()
	if err := c.store.ToggleCase(i); err != nil {
		c.fail("toggle case", err)
		return
	}
	p := c.store.At(i)
	c.logger.Info("pattern case toggled", "index", i, "pattern", p.Text(), "case_sensitive", p.CaseSensitive())
}

// Delete removes the selected pattern and keeps the cursor in range.
func (c *Controller) Delete() {
	if !c.open || c.OnInputRow() {
		return
	}
	i := c.Selected()
	text := c.store.At(i).Text()
	c.store.Remove(i)
	c.logger.Info("pattern removed", "index", i, "pattern", text)

	n := c.store.Len()
	if c.selected > n {
		c.selected = n
	}
	if n == 0 {
		c.selected = 0
	}
}

// Backspace drops the last typed character and moves the cursor to the
// input row.
func (c *Controller) Backspace() {
	if !c.open {
		return
	}
	if c.input != "" {
		_, size := utf8.DecodeLastRuneInString(c.input)
		c.input = c.input[:len(c.input)-size]
	}
	c.selected = c.store.Len()
}

// Insert appends text to the input and moves the cursor to the input row.
func (c *Controller) Insert(text string) {
	if !c.open {
		return
	}
	c.input += text
	c.selected = c.store.Len()
}

func (c *Controller) fail(op string, err error) {
	c.err = Message(err)
	c.logger.Warn(op+" failed", "error", err)
}

// Message formats err for the dialog's error row.
func Message(err error) string {
	var compileErr *pattern.CompileError
	if errors.As(err, &compileErr) {
		return "Invalid pattern: " + compileErr.Err.Error()
	}
	return err.Error()
}
