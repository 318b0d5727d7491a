package source

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// File shows the end of a file and then follows what is appended to it.
type File struct {
	Path string
	// Tail is how many existing lines to show first; zero or less shows
	// the whole file.
	Tail int
}

// Name returns the file path.
func (s File) Name() string {
	return s.Path
}

// Run emits the seed lines, then every line appended afterwards. A file
// truncated in place is read again from the start. The feed ends with
// ErrSourceGone when the file is removed or renamed.
func (s File) Run(ctx context.Context, emit func(string) bool) error {
	file, err := os.Open(s.Path)
	if err != nil {
		return fmt.Errorf("open %s: %w", s.Path, err)
	}
	defer file.Close()

	lines, offset, partial, err := readTail(file, s.Tail)
	if err != nil {
		return fmt.Errorf("read %s: %w", s.Path, err)
	}
	for _, line := range lines {
		if !emit(line) {
			return nil
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", s.Path, err)
	}
	defer watcher.Close()
	// Watch the directory: unlinking a file we hold open fires nothing on
	// the file's own watch.
	if err := watcher.Add(filepath.Dir(s.Path)); err != nil {
		return fmt.Errorf("watch %s: %w", s.Path, err)
	}
	target := filepath.Clean(s.Path)

	f := &follower{file: file, offset: offset, partial: partial}
	// Anything written between the seed read and the watch.
	if ok, err := f.drain(emit); err != nil || !ok {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				if f.partial != "" {
					emit(trimEOL(f.partial))
				}
				return fmt.Errorf("%s: %w", s.Path, ErrSourceGone)
			}
			if ev.Has(fsnotify.Write) {
				if ok, err := f.drain(emit); err != nil || !ok {
					return err
				}
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch %s: %w", s.Path, err)
		}
	}
}

// follower reads whatever was appended since the last call.
type follower struct {
	file    *os.File
	offset  int64  // bytes consumed, including partial
	partial string // bytes after the last newline
}

// drain emits the complete lines written since offset. It returns false if
// emit asked to stop.
func (f *follower) drain(emit func(string) bool) (bool, error) {
	info, err := f.file.Stat()
	if err != nil {
		return false, fmt.Errorf("stat %s: %w", f.file.Name(), err)
	}
	if info.Size() < f.offset {
		f.offset = 0
		f.partial = ""
	}
	if _, err := f.file.Seek(f.offset, io.SeekStart); err != nil {
		return false, fmt.Errorf("seek %s: %w", f.file.Name(), err)
	}

	br := bufio.NewReader(f.file)
	for {
		chunk, err := br.ReadString('\n')
		f.offset += int64(len(chunk))
		if err != nil {
			if errors.Is(err, io.EOF) {
				f.partial += chunk
				return true, nil
			}
			return false, fmt.Errorf("read %s: %w", f.file.Name(), err)
		}
		line := trimEOL(f.partial + chunk)
		f.partial = ""
		if !emit(line) {
			return false, nil
		}
	}
}

// readTail reads r to the end and returns its last n complete lines, or all
// of them when n <= 0. offset is the number of bytes read and partial the
// text after the last newline.
func readTail(r io.Reader, n int) (lines []string, offset int64, partial string, err error) {
	var ring []string
	if n > 0 {
		ring = make([]string, n)
	}
	count, idx := 0, 0

	br := bufio.NewReaderSize(r, 64*1024)
	for {
		chunk, err := br.ReadString('\n')
		offset += int64(len(chunk))
		if err != nil {
			if errors.Is(err, io.EOF) {
				partial = chunk
				break
			}
			return nil, 0, "", err
		}
		line := trimEOL(chunk)
		if n <= 0 {
			lines = append(lines, line)
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % n
		if count < n {
			count++
		}
	}

	if n <= 0 {
		return lines, offset, partial, nil
	}
	lines = make([]string, count)
	if count == n {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%n]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, offset, partial, nil
}

func trimEOL(s string) string {
	s = strings.TrimSuffix(s, "\n")
	return strings.TrimSuffix(s, "\r")
}
