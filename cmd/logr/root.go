package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/five82/logr/internal/app"
	"github.com/five82/logr/internal/config"
	"github.com/five82/logr/internal/ui"
)

type runFunc func(ctx context.Context, opts app.Options) error

func newRootCmd(run runFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logr [flags] [-- command [args...]]",
		Short: "Interactive pager that highlights regex matches in live output",
		Long: `logr shows a stream of lines in a scrollable terminal view and colors
every match of a list of regular expressions. Lines come from stdin, from a
followed file (--file), or from a command given after "--".

Press p to edit patterns, f to show only matching lines, w to wrap, q to quit.`,
		Example: `  journalctl -f | logr -p error -p 'warn(ing)?' -i
  logr --file /var/log/syslog --tail 500
  logr -p FAIL -- go test ./...`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 && cmd.ArgsLenAtDash() != 0 {
				return fmt.Errorf("unexpected argument %q: put the command after --", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := resolveOptions(cmd, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringP("config", "c", "", "config file (default is "+config.DefaultPath()+")")
	flags.StringP("file", "f", "", "follow this file instead of reading stdin")
	config.RegisterFlags(flags)
	return cmd
}

// resolveOptions merges the config file, LOGR_* variables and flags.
func resolveOptions(cmd *cobra.Command, args []string) (app.Options, error) {
	flags := cmd.Flags()

	path, _ := flags.GetString("config")
	if path == "" {
		path = os.Getenv("LOGR_CONFIG")
	}
	fileCfg, err := config.Load(path)
	if err != nil {
		return app.Options{}, err
	}

	v := viper.New()
	if err := config.Bind(v, fileCfg, flags); err != nil {
		return app.Options{}, err
	}
	cfg, err := config.Resolve(v)
	if err != nil {
		return app.Options{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if !ui.HasTheme(cfg.Theme) {
		return app.Options{}, fmt.Errorf("invalid configuration: unknown theme %q (available: %s)",
			cfg.Theme, strings.Join(ui.ThemeNames(), ", "))
	}

	file, _ := flags.GetString("file")
	return app.Options{
		Config:  cfg,
		File:    strings.TrimSpace(file),
		Command: args,
	}, nil
}
