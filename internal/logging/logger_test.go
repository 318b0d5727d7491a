package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readRecords(t *testing.T, path string) []map[string]any {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	var records []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(string(content)), "\n") {
		if line == "" {
			continue
		}
		var rec map[string]any
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		records = append(records, rec)
	}
	return records
}

func TestNewLogger_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "logr.log")

	logger, err := NewLogger(path, LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("debug message", "key", "value")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message", "count", 3)
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 4 {
		t.Fatalf("got %d records, want 4", len(records))
	}
	wantLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	for i, rec := range records {
		if rec["level"] != wantLevels[i] {
			t.Errorf("record %d level = %v, want %s", i, rec["level"], wantLevels[i])
		}
	}
	if records[0]["key"] != "value" {
		t.Errorf("record 0 key = %v, want value", records[0]["key"])
	}
}

func TestNewLogger_LevelFilters(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logr.log")

	logger, err := NewLogger(path, "warn")
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	_ = logger.Close()

	records := readRecords(t, path)
	if len(records) != 1 || records[0]["msg"] != "shown" {
		t.Fatalf("records = %v, want only the warning", records)
	}
}

func TestNewLogger_EmptyPathDiscards(t *testing.T) {
	logger, err := NewLogger("", LevelDebug)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	logger.Info("nowhere")
	if err := logger.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
}

func TestLogger_WithAddsAttributes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logr.log")

	logger, err := NewLogger(path, LevelInfo)
	if err != nil {
		t.Fatalf("NewLogger() error = %v", err)
	}
	child := logger.With("component", "source")
	child.Info("started")
	if logger.With() != logger {
		t.Error("With() without args should return the receiver")
	}
	if err := child.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("second Close() error = %v", err)
	}

	records := readRecords(t, path)
	if len(records) != 1 || records[0]["component"] != "source" {
		t.Fatalf("records = %v, want component=source", records)
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   LevelDebug,
		" INFO ":  LevelInfo,
		"warning": LevelWarn,
		"Error":   LevelError,
		"":        LevelInfo,
		"verbose": LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %q, want %q", in, got, want)
		}
	}
	if len(ValidLevels()) != 4 {
		t.Errorf("ValidLevels() = %v", ValidLevels())
	}
}
