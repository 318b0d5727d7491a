package app

import (
	"errors"
	"os"

	"golang.org/x/term"

	"github.com/five82/logr/internal/source"
)

// ErrNoInput is returned when logr would read lines from an interactive
// terminal.
var ErrNoInput = errors.New("nothing to read: pipe lines into logr, pass --file PATH, or give a command after --")

// selectSource picks the line producer: a command, then a file, then
// stdin. fromStdin reports the last case, where keys must be read from the
// controlling terminal instead.
func selectSource(opts Options, cols, rows int) (src source.Source, fromStdin bool, err error) {
	switch {
	case len(opts.Command) > 0:
		return source.NewCommand(opts.Command[0], opts.Command[1:], cols, rows), false, nil
	case opts.File != "":
		return source.File{Path: opts.File, Tail: opts.Config.Tail}, false, nil
	}

	stdin := opts.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if term.IsTerminal(int(stdin.Fd())) {
		return nil, false, ErrNoInput
	}
	return source.Reader{R: stdin}, true, nil
}

// terminalSize returns the content area (inside the border) of the
// terminal on stdout, or zeros when stdout is not a terminal.
func terminalSize() (cols, rows int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return 0, 0
	}
	return max(0, w-2), max(0, h-2)
}
