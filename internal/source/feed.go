package source

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/five82/logr/internal/logging"
)

const (
	// bufferSize is how many lines a producer may run ahead of the UI.
	bufferSize = 4096
	// closeTimeout bounds how long Close waits for the producer. Reads
	// from a terminal or pipe cannot be interrupted, so Close may return
	// before such a producer exits.
	closeTimeout = 500 * time.Millisecond
)

// ErrSourceGone ends a followed file that was removed or renamed.
var ErrSourceGone = errors.New("source removed")

// Source produces lines until it runs out or ctx is cancelled. emit blocks
// until the line is accepted and returns false once the feed is closing;
// a Source must stop as soon as emit returns false.
type Source interface {
	Run(ctx context.Context, emit func(line string) bool) error
	Name() string
}

// Resizer is implemented by sources whose output depends on the terminal
// size.
type Resizer interface {
	Resize(cols, rows int) error
}

// Feed runs a Source on its own goroutine and hands its lines to a single
// consumer.
type Feed struct {
	src      Source
	logger   *logging.Logger
	lines    chan string
	finished chan struct{}
	cancel   context.CancelFunc

	mu   sync.Mutex
	err  error
	done bool
}

// Start launches src. The feed stops when ctx is cancelled or Close is
// called.
func Start(ctx context.Context, src Source, logger *logging.Logger) *Feed {
	if logger == nil {
		logger = logging.NopLogger()
	}
	ctx, cancel := context.WithCancel(ctx)
	f := &Feed{
		src:      src,
		logger:   logger.With("source", src.Name()),
		lines:    make(chan string, bufferSize),
		finished: make(chan struct{}),
		cancel:   cancel,
	}
	go f.run(ctx)
	return f
}

func (f *Feed) run(ctx context.Context) {
	defer close(f.finished)
	f.logger.Info("source started")

	count := 0
	err := f.src.Run(ctx, func(line string) bool {
		select {
		case f.lines <- line:
			count++
			return true
		case <-ctx.Done():
			return false
		}
	})
	if ctx.Err() != nil {
		err = nil
	}
	if err != nil {
		f.logger.Error("source failed", "error", err, "lines", count)
	} else {
		f.logger.Info("source finished", "lines", count)
	}

	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
	close(f.lines)
}

// Name returns the source name.
func (f *Feed) Name() string {
	return f.src.Name()
}

// Next waits up to wait for one line. ok is false when nothing arrived in
// time or the source is exhausted; Done tells the two apart.
func (f *Feed) Next(wait time.Duration) (line string, ok bool) {
	if wait <= 0 {
		select {
		case line, ok = <-f.lines:
		default:
			return "", false
		}
	} else {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case line, ok = <-f.lines:
		case <-timer.C:
			return "", false
		}
	}
	if !ok {
		f.mu.Lock()
		f.done = true
		f.mu.Unlock()
	}
	return line, ok
}

// Done reports whether the source has ended and every line was consumed.
func (f *Feed) Done() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.done
}

// Err returns the error the source ended with, if any.
func (f *Feed) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

// Resize forwards a terminal size change to the source if it cares.
func (f *Feed) Resize(cols, rows int) {
	r, ok := f.src.(Resizer)
	if !ok || cols <= 0 || rows <= 0 {
		return
	}
	if err := r.Resize(cols, rows); err != nil {
		f.logger.Warn("resize source failed", "error", err)
	}
}

// Close stops the source and waits briefly for it to exit.
func (f *Feed) Close() {
	f.cancel()
	select {
	case <-f.finished:
	case <-time.After(closeTimeout):
		f.logger.Warn("source did not stop in time")
	}
}
