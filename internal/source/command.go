package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"syscall"

	"github.com/creack/pty"
)

// Command runs a program under a pseudo-terminal and reads its output.
// Programs that check for a terminal keep their colors this way.
type Command struct {
	name string
	args []string
	cols int
	rows int

	mu  sync.Mutex
	tty *os.File
}

// NewCommand returns a command source. cols and rows set the initial
// terminal size; zero leaves the pty default.
func NewCommand(name string, args []string, cols, rows int) *Command {
	return &Command{name: name, args: args, cols: cols, rows: rows}
}

// Name returns the command line.
func (c *Command) Name() string {
	return strings.Join(append([]string{c.name}, c.args...), " ")
}

// Run starts the program and emits its output. The program is killed when
// ctx is cancelled. A non-zero exit is returned as an error.
func (c *Command) Run(ctx context.Context, emit func(string) bool) error {
	cmd := exec.Command(c.name, c.args...)
	tty, err := pty.StartWithSize(cmd, c.winsize())
	if err != nil {
		return fmt.Errorf("start %s: %w", c.name, err)
	}
	c.setTTY(tty)
	defer func() {
		c.setTTY(nil)
		_ = tty.Close()
	}()

	stop := context.AfterFunc(ctx, func() {
		_ = cmd.Process.Kill()
	})
	defer stop()

	readErr := scanLines(tty, c.name, emit)
	if errors.Is(readErr, syscall.EIO) {
		// Linux reports EIO once the child side of the pty is closed.
		readErr = nil
	}
	if ctx.Err() == nil && readErr != nil {
		_ = cmd.Process.Kill()
	}
	waitErr := cmd.Wait()

	if ctx.Err() != nil {
		return nil
	}
	if readErr != nil {
		return readErr
	}
	if waitErr != nil {
		return fmt.Errorf("%s: %w", c.name, waitErr)
	}
	return nil
}

// Resize changes the pty size of a running command.
func (c *Command) Resize(cols, rows int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cols, c.rows = cols, rows
	ws := c.winsizeLocked()
	if c.tty == nil || ws == nil {
		return nil
	}
	return pty.Setsize(c.tty, ws)
}

func (c *Command) setTTY(tty *os.File) {
	c.mu.Lock()
	c.tty = tty
	c.mu.Unlock()
}

func (c *Command) winsize() *pty.Winsize {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.winsizeLocked()
}

func (c *Command) winsizeLocked() *pty.Winsize {
	if c.cols <= 0 || c.rows <= 0 {
		return nil
	}
	return &pty.Winsize{Cols: uint16(c.cols), Rows: uint16(c.rows)}
}
