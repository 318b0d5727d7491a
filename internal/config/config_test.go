package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("Load = %+v, want defaults %+v", cfg, Default())
	}
}

func TestLoad_DefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	if got := DefaultPath(); got != filepath.Join(home, ".config", "logr", "config.toml") {
		t.Fatalf("DefaultPath = %q", got)
	}
	if _, err := Load(""); err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
patterns = ["ERROR", "WARN(ING)?"]
ignore_case = true
theme = "  Slate  "
tick = "50ms"
wrap = true
log_file = "  ~/logr/debug.log  "
log_level = "debug"
tail = 0
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"ERROR", "WARN(ING)?"}) {
		t.Fatalf("Patterns = %q", cfg.Patterns)
	}
	if !cfg.IgnoreCase || !cfg.Wrap {
		t.Fatalf("IgnoreCase=%v Wrap=%v, want both true", cfg.IgnoreCase, cfg.Wrap)
	}
	if cfg.Theme != "Slate" {
		t.Fatalf("Theme = %q, want Slate", cfg.Theme)
	}
	if cfg.Tick != 50*time.Millisecond {
		t.Fatalf("Tick = %s, want 50ms", cfg.Tick)
	}
	if cfg.LogFile != filepath.Join(home, "logr", "debug.log") {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.Tail != 0 {
		t.Fatalf("Tail = %d, want explicit 0 kept", cfg.Tail)
	}
}

func TestLoad_EmptyValuesUseDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	path := writeConfig(t, `
theme = "   "
tick = ""
log_level = ""
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("Load = %+v, want defaults", cfg)
	}
}

func TestLoad_InvalidFails(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad toml", `theme = [`},
		{"bad tick", `tick = "soon"`},
		{"wrong type", `tail = "many"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load returned nil error, want parse error")
			}
			if !strings.Contains(err.Error(), "parse config") {
				t.Fatalf("Load error = %q, want it to mention parse config", err.Error())
			}
		})
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	cfg.Tick = 0
	cfg.Patterns = []string{"ok", "  "}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate returned nil error")
	}
	for _, want := range []string{"tick must be positive", "pattern 2 is blank"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("Validate error %q missing %q", err, want)
		}
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := expandPath("~/a/b")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("expandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func resolveWith(t *testing.T, file Config, args ...string) (Config, error) {
	t.Helper()
	flags := pflag.NewFlagSet("logr", pflag.ContinueOnError)
	RegisterFlags(flags)
	if err := flags.Parse(args); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	v := viper.New()
	if err := Bind(v, file, flags); err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return Resolve(v)
}

func TestResolve_FileValuesWhenNothingElseSet(t *testing.T) {
	file := Default()
	file.Patterns = []string{"ERROR"}
	file.Theme = "Slate"
	file.Tail = 50

	cfg, err := resolveWith(t, file)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"ERROR"}) || cfg.Theme != "Slate" || cfg.Tail != 50 {
		t.Fatalf("Resolve = %+v, want file values", cfg)
	}
	if cfg.Tick != defaultTick || cfg.LogLevel != "INFO" {
		t.Fatalf("Tick=%s LogLevel=%q, want defaults", cfg.Tick, cfg.LogLevel)
	}
}

func TestResolve_EnvOverridesFile(t *testing.T) {
	t.Setenv("LOGR_THEME", "Slate")
	t.Setenv("LOGR_PATTERNS", "foo,bar")
	t.Setenv("LOGR_IGNORE_CASE", "true")
	t.Setenv("LOGR_TICK", "75ms")
	t.Setenv("LOGR_LOG_LEVEL", "warning")

	file := Default()
	file.Patterns = []string{"ERROR"}

	cfg, err := resolveWith(t, file)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Theme != "Slate" || !cfg.IgnoreCase || cfg.Tick != 75*time.Millisecond {
		t.Fatalf("Resolve = %+v, want env values", cfg)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"foo", "bar"}) {
		t.Fatalf("Patterns = %q, want [foo bar]", cfg.Patterns)
	}
	if cfg.LogLevel != "WARN" {
		t.Fatalf("LogLevel = %q, want WARN", cfg.LogLevel)
	}
}

func TestResolve_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("LOGR_THEME", "Slate")
	t.Setenv("LOGR_TAIL", "10")

	cfg, err := resolveWith(t, Default(),
		"--theme", "Dracula", "-p", "a", "-p", "b", "--tail", "5", "--wrap", "--tick", "1s")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if cfg.Theme != "Dracula" || cfg.Tail != 5 || !cfg.Wrap || cfg.Tick != time.Second {
		t.Fatalf("Resolve = %+v, want flag values", cfg)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{"a", "b"}) {
		t.Fatalf("Patterns = %q, want [a b]", cfg.Patterns)
	}
}

func TestResolve_RejectsBadValues(t *testing.T) {
	t.Setenv("LOGR_TICK", "0s")
	if _, err := resolveWith(t, Default()); err == nil {
		t.Fatal("Resolve accepted a zero tick")
	}
}

func TestResolve_PatternsKeepWhitespace(t *testing.T) {
	cfg, err := resolveWith(t, Default(), "-p", " ERROR ", "-p", "warn")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !reflect.DeepEqual(cfg.Patterns, []string{" ERROR ", "warn"}) {
		t.Fatalf("Patterns = %q, want [\" ERROR \" warn]", cfg.Patterns)
	}
}

func TestResolve_BlankPatternRejected(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
	}{
		{"blank flag", "", []string{"-p", "  "}},
		{"empty env item", "a,,b", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("LOGR_PATTERNS", tt.env)
			}
			_, err := resolveWith(t, Default(), tt.args...)
			if err == nil || !strings.Contains(err.Error(), "is blank") {
				t.Fatalf("Resolve error = %v, want blank pattern error", err)
			}
		})
	}
}

func TestStringList(t *testing.T) {
	tests := []struct {
		in   any
		want []string
	}{
		{nil, nil},
		{"", nil},
		{"a,b , c", []string{"a", "b ", " c"}},
		{[]string{"x", " ", "y"}, []string{"x", " ", "y"}},
		{[]string{}, nil},
		{[]any{"one", "two"}, []string{"one", "two"}},
	}
	for _, tt := range tests {
		if got := stringList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("stringList(%#v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
