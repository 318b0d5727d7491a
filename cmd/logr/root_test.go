package main

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/five82/logr/internal/app"
)

func execute(t *testing.T, args ...string) (app.Options, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var got app.Options
	cmd := newRootCmd(func(_ context.Context, opts app.Options) error {
		got = opts
		return nil
	})
	cmd.SetArgs(args)
	cmd.SetOut(&strings.Builder{})
	cmd.SetErr(&strings.Builder{})
	err := cmd.Execute()
	return got, err
}

func TestRoot_Defaults(t *testing.T) {
	opts, err := execute(t)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if opts.Config.Theme != "Dracula" || opts.Config.Tick != 20*time.Millisecond || opts.Config.Tail != 1000 {
		t.Fatalf("Config = %+v, want defaults", opts.Config)
	}
	if opts.File != "" || len(opts.Command) != 0 {
		t.Fatalf("source = %q %q, want stdin", opts.File, opts.Command)
	}
}

func TestRoot_FlagsAndCommand(t *testing.T) {
	opts, err := execute(t, "-p", "ERROR", "-p", "warn", "-i", "--wrap", "--tail", "5", "--", "tail", "-f", "app.log")
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !reflect.DeepEqual(opts.Config.Patterns, []string{"ERROR", "warn"}) {
		t.Fatalf("Patterns = %q", opts.Config.Patterns)
	}
	if !opts.Config.IgnoreCase || !opts.Config.Wrap || opts.Config.Tail != 5 {
		t.Fatalf("Config = %+v", opts.Config)
	}
	if !reflect.DeepEqual(opts.Command, []string{"tail", "-f", "app.log"}) {
		t.Fatalf("Command = %q", opts.Command)
	}
}

func TestRoot_ConfigFileThenEnvThenFlag(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logr.toml")
	body := "theme = \"Slate\"\npatterns = [\"from-file\"]\ntail = 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	opts, err := execute(t, "-c", path, "--file", "app.log")
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if opts.Config.Theme != "Slate" || opts.Config.Tail != 7 || opts.File != "app.log" {
		t.Fatalf("Options = %+v, want file values", opts)
	}
	if !reflect.DeepEqual(opts.Config.Patterns, []string{"from-file"}) {
		t.Fatalf("Patterns = %q", opts.Config.Patterns)
	}

	t.Setenv("LOGR_TAIL", "8")
	opts, err = execute(t, "-c", path)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if opts.Config.Tail != 8 {
		t.Fatalf("Tail = %d, want env value 8", opts.Config.Tail)
	}

	opts, err = execute(t, "-c", path, "--tail", "9")
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if opts.Config.Tail != 9 {
		t.Fatalf("Tail = %d, want flag value 9", opts.Config.Tail)
	}
}

func TestRoot_ConfigFromEnvPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logr.toml")
	if err := os.WriteFile(path, []byte("wrap = true\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Setenv("LOGR_CONFIG", path)

	opts, err := execute(t)
	if err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if !opts.Config.Wrap {
		t.Fatal("LOGR_CONFIG file not read")
	}
}

func TestRoot_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"command without dash", []string{"tail", "x.log"}, "put the command after --"},
		{"bad tick", []string{"--tick", "0s"}, "tick must be positive"},
		{"unparsable flag", []string{"--tick", "soon"}, "invalid argument"},
		{"bad config file", []string{"-c", "/dev/null/logr.toml"}, "open config"},
		{"unknown theme", []string{"--theme", "Solarized"}, `unknown theme "Solarized" (available: Dracula, Slate)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("Execute error = %v, want %q", err, tt.want)
			}
		})
	}
}
