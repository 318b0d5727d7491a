package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/logr/internal/config"
	"github.com/five82/logr/internal/dialog"
	"github.com/five82/logr/internal/input"
	"github.com/five82/logr/internal/logging"
	"github.com/five82/logr/internal/pattern"
	"github.com/five82/logr/internal/source"
	"github.com/five82/logr/internal/ui"
)

// Options configure a logr session.
type Options struct {
	Config config.Config
	// File is followed when set and no command is given.
	File string
	// Command runs under a pty when non-empty; Command[0] is the program.
	Command []string
	// Stdin is read when neither File nor Command is set; nil means
	// os.Stdin.
	Stdin *os.File
}

// Run shows the pager until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg := opts.Config

	logger, err := logging.NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Close()

	store, err := newStore(cfg.Patterns, cfg.IgnoreCase)
	if err != nil {
		return err
	}

	cols, rows := terminalSize()
	src, fromStdin, err := selectSource(opts, cols, rows)
	if err != nil {
		return err
	}

	logger.Info("starting",
		"source", src.Name(),
		"patterns", store.Len(),
		"ignore_case", cfg.IgnoreCase,
		"theme", cfg.Theme,
		"tick", cfg.Tick.String(),
		"wrap", cfg.Wrap,
	)

	feed := source.Start(ctx, src, logger)
	defer feed.Close()

	dlg := dialog.New(store, dialog.WithLogger(logger))
	router := input.NewRouter(dlg, input.Options{
		Keys:       input.DefaultKeyMap(),
		IgnoreCase: cfg.IgnoreCase,
		Wrap:       cfg.Wrap,
		Logger:     logger,
	})
	model := ui.New(ui.Options{
		Feed:      feed,
		Store:     store,
		Dialog:    dlg,
		Router:    router,
		Tick:      cfg.Tick,
		ThemeName: cfg.Theme,
		Logger:    logger,
	})

	programOpts := []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	}
	if fromStdin {
		// stdin carries the log lines, so keys come from the terminal.
		programOpts = append(programOpts, tea.WithInputTTY())
	}

	final, err := tea.NewProgram(model, programOpts...).Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			logger.Info("stopped", "reason", ctx.Err())
			return nil
		}
		logger.Error("ui failed", "error", err)
		return fmt.Errorf("run ui: %w", err)
	}
	if m, ok := final.(ui.Model); ok {
		logger.Info("exit", "lines", m.Lines(), "patterns", store.Len())
	}
	return nil
}

// newStore compiles the startup patterns. Any bad pattern is fatal.
func newStore(patterns []string, ignoreCase bool) (*pattern.Store, error) {
	store := pattern.NewStore()
	for _, text := range patterns {
		if _, err := store.Add(text, !ignoreCase); err != nil {
			return nil, fmt.Errorf("initial pattern: %w", err)
		}
	}
	return store, nil
}
