package source

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"
)

// collect reads from feed until it is done or want lines arrived.
func collect(t *testing.T, feed *Feed, want int) []string {
	t.Helper()
	var got []string
	deadline := time.Now().Add(5 * time.Second)
	for len(got) < want && time.Now().Before(deadline) {
		line, ok := feed.Next(50 * time.Millisecond)
		if ok {
			got = append(got, line)
			continue
		}
		if feed.Done() {
			break
		}
	}
	return got
}

func waitDone(t *testing.T, feed *Feed) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !feed.Done() {
		if time.Now().After(deadline) {
			t.Fatal("feed did not finish")
		}
		feed.Next(20 * time.Millisecond)
	}
}

func TestReadTail(t *testing.T) {
	var content strings.Builder
	var all []string
	for i := 1; i <= 10; i++ {
		line := fmt.Sprintf("Line %d", i)
		content.WriteString(line + "\n")
		all = append(all, line)
	}

	tests := []struct {
		name     string
		maxLines int
		expected []string
	}{
		{"read all (0)", 0, all},
		{"read all (negative)", -1, all},
		{"read partial (5)", 5, all[5:]},
		{"read exactly all (10)", 10, all},
		{"read more than exists (20)", 20, all},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, offset, partial, err := readTail(strings.NewReader(content.String()), tt.maxLines)
			if err != nil {
				t.Fatalf("readTail() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("readTail() = %v, want %v", got, tt.expected)
			}
			if offset != int64(content.Len()) || partial != "" {
				t.Errorf("offset=%d partial=%q, want %d and empty", offset, partial, content.Len())
			}
		})
	}
}

func TestReadTail_PartialLineAndCRLF(t *testing.T) {
	got, offset, partial, err := readTail(strings.NewReader("a\r\nb\nunfinished"), 0)
	if err != nil {
		t.Fatalf("readTail() error = %v", err)
	}
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("lines = %q, want [a b]", got)
	}
	if partial != "unfinished" || offset != 15 {
		t.Fatalf("partial=%q offset=%d, want unfinished/15", partial, offset)
	}
}

func TestFeed_Reader(t *testing.T) {
	input := "one\r\ntwo\n\x1b[31mthree\x1b[0m"
	feed := Start(context.Background(), Reader{R: strings.NewReader(input)}, nil)
	defer feed.Close()

	got := collect(t, feed, 10)
	want := []string{"one", "two", "\x1b[31mthree\x1b[0m"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("lines = %q, want %q", got, want)
	}
	waitDone(t, feed)
	if err := feed.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
	if feed.Name() != "stdin" {
		t.Fatalf("Name() = %q, want stdin", feed.Name())
	}
}

func TestFeed_ReaderLineTooLong(t *testing.T) {
	input := "first\n" + strings.Repeat("x", maxLineSize+10) + "\r\nafter1\nafter2"
	feed := Start(context.Background(), Reader{R: strings.NewReader(input), Label: "pipe"}, nil)
	defer feed.Close()

	got := collect(t, feed, 4)
	if len(got) != 4 {
		t.Fatalf("got %d lines, want 4", len(got))
	}
	if got[0] != "first" || got[2] != "after1" || got[3] != "after2" {
		t.Fatalf("lines around the long one = %q, %q, %q", got[0], got[2], got[3])
	}
	if len(got[1]) != maxLineSize || strings.Trim(got[1], "x") != "" {
		t.Fatalf("long line has %d bytes, want %d x's", len(got[1]), maxLineSize)
	}

	waitDone(t, feed)
	if err := feed.Err(); err != nil {
		t.Fatalf("Err() = %v, want nil", err)
	}
}

func TestFeed_NextTimesOut(t *testing.T) {
	src := blockingSource{}
	feed := Start(context.Background(), src, nil)
	defer feed.Close()

	start := time.Now()
	if _, ok := feed.Next(30 * time.Millisecond); ok {
		t.Fatal("Next() returned a line from an empty source")
	}
	if time.Since(start) < 20*time.Millisecond {
		t.Fatal("Next() returned before the wait expired")
	}
	if _, ok := feed.Next(0); ok {
		t.Fatal("Next(0) returned a line")
	}
	if feed.Done() {
		t.Fatal("Done() = true for a running source")
	}
}

func TestFeed_CloseStopsSource(t *testing.T) {
	feed := Start(context.Background(), blockingSource{}, nil)
	feed.Close()
	select {
	case <-feed.finished:
	case <-time.After(time.Second):
		t.Fatal("source still running after Close")
	}
}

type blockingSource struct{}

func (blockingSource) Name() string { return "blocking" }

func (blockingSource) Run(ctx context.Context, emit func(string) bool) error {
	<-ctx.Done()
	return ctx.Err()
}

func TestFile_SeedsAndFollows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("1\n2\n3\n4\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	feed := Start(context.Background(), File{Path: path, Tail: 2}, nil)
	defer feed.Close()

	if got := collect(t, feed, 2); !reflect.DeepEqual(got, []string{"3", "4"}) {
		t.Fatalf("seed = %q, want [3 4]", got)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("5\nsix"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := collect(t, feed, 1); !reflect.DeepEqual(got, []string{"5"}) {
		t.Fatalf("appended = %q, want [5]", got)
	}
	if _, err := f.WriteString(" continued\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := collect(t, feed, 1); !reflect.DeepEqual(got, []string{"six continued"}) {
		t.Fatalf("completed partial = %q, want [six continued]", got)
	}
}

func TestFile_Truncation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("old line one\nold line two\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	feed := Start(context.Background(), File{Path: path}, nil)
	defer feed.Close()
	if got := collect(t, feed, 2); len(got) != 2 {
		t.Fatalf("seed = %q, want 2 lines", got)
	}

	if err := os.Truncate(path, 0); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open for append: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString("new\n"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if got := collect(t, feed, 1); !reflect.DeepEqual(got, []string{"new"}) {
		t.Fatalf("after truncation = %q, want [new]", got)
	}
}

func TestFile_RemovedEndsFeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	if err := os.WriteFile(path, []byte("only\n"), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}

	feed := Start(context.Background(), File{Path: path}, nil)
	defer feed.Close()
	collect(t, feed, 1)

	if err := os.Remove(path); err != nil {
		t.Fatalf("remove: %v", err)
	}
	waitDone(t, feed)
	if err := feed.Err(); !errors.Is(err, ErrSourceGone) {
		t.Fatalf("Err() = %v, want ErrSourceGone", err)
	}
}

func TestFile_MissingFile(t *testing.T) {
	feed := Start(context.Background(), File{Path: filepath.Join(t.TempDir(), "nope.log")}, nil)
	defer feed.Close()

	waitDone(t, feed)
	if err := feed.Err(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Err() = %v, want not-exist", err)
	}
}
