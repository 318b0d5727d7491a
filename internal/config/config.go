package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config is the resolved logr configuration.
type Config struct {
	Patterns   []string
	IgnoreCase bool
	Theme      string
	Tick       time.Duration
	Wrap       bool
	LogFile    string
	LogLevel   string
	Tail       int
}

const (
	defaultConfigPath = "~/.config/logr/config.toml"
	defaultTheme      = "Dracula"
	defaultTick       = 20 * time.Millisecond
	defaultLogLevel   = "INFO"
	defaultTail       = 1000
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Theme:    defaultTheme,
		Tick:     defaultTick,
		LogLevel: defaultLogLevel,
		Tail:     defaultTail,
	}
}

// DefaultPath returns the expanded default config file location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

// Load parses the TOML file at path over the defaults. An empty path means
// the default location. A missing file is not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Patterns   []string `toml:"patterns"`
		IgnoreCase *bool    `toml:"ignore_case"`
		Theme      string   `toml:"theme"`
		Tick       string   `toml:"tick"`
		Wrap       *bool    `toml:"wrap"`
		LogFile    string   `toml:"log_file"`
		LogLevel   string   `toml:"log_level"`
		Tail       *int     `toml:"tail"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Patterns != nil {
		cfg.Patterns = raw.Patterns
	}
	if raw.IgnoreCase != nil {
		cfg.IgnoreCase = *raw.IgnoreCase
	}
	if theme := strings.TrimSpace(raw.Theme); theme != "" {
		cfg.Theme = theme
	}
	if tick := strings.TrimSpace(raw.Tick); tick != "" {
		d, err := time.ParseDuration(tick)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: tick: %w", err)
		}
		cfg.Tick = d
	}
	if raw.Wrap != nil {
		cfg.Wrap = *raw.Wrap
	}
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}
	if raw.Tail != nil {
		cfg.Tail = *raw.Tail
	}

	return cfg, nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	var errs []error
	if c.Tick <= 0 {
		errs = append(errs, fmt.Errorf("tick must be positive, got %s", c.Tick))
	}
	for i, p := range c.Patterns {
		if strings.TrimSpace(p) == "" {
			errs = append(errs, fmt.Errorf("pattern %d is blank", i+1))
		}
	}
	return errors.Join(errs...)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
