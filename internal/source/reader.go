package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// maxLineSize caps a single line. Longer lines are cut to this size and the
// rest of the line is discarded.
const maxLineSize = 1024 * 1024

// Reader reads lines from a stream such as stdin.
type Reader struct {
	R     io.Reader
	Label string
}

// Name returns the label, or "stdin".
func (s Reader) Name() string {
	if s.Label == "" {
		return "stdin"
	}
	return s.Label
}

// Run emits every line of the stream. A trailing carriage return is
// dropped.
func (s Reader) Run(ctx context.Context, emit func(string) bool) error {
	return scanLines(s.R, s.Name(), emit)
}

func scanLines(r io.Reader, name string, emit func(string) bool) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	for {
		chunk, err := br.ReadSlice('\n')
		if room := maxLineSize - len(line); room > 0 {
			line = append(line, chunk[:min(len(chunk), room)]...)
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if err == nil || len(line) > 0 {
			text := strings.TrimSuffix(string(line), "\n")
			if !emit(strings.TrimSuffix(text, "\r")) {
				return nil
			}
		}
		line = line[:0]
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
	}
}
