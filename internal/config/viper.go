package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/five82/logr/internal/logging"
)

// Setting keys, shared by the config file, LOGR_* environment variables
// and (with "-" for "_") the command line flags.
const (
	KeyPatterns   = "patterns"
	KeyIgnoreCase = "ignore_case"
	KeyTheme      = "theme"
	KeyTick       = "tick"
	KeyWrap       = "wrap"
	KeyLogFile    = "log_file"
	KeyLogLevel   = "log_level"
	KeyTail       = "tail"
)

// Keys lists every setting key.
func Keys() []string {
	return []string{KeyPatterns, KeyIgnoreCase, KeyTheme, KeyTick, KeyWrap, KeyLogFile, KeyLogLevel, KeyTail}
}

// FlagName returns the command line flag for a key.
func FlagName(key string) string {
	return strings.ReplaceAll(key, "_", "-")
}

// RegisterFlags adds one flag per setting to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := Default()
	flags.StringSliceP(FlagName(KeyPatterns), "p", nil, "comma separated regex patterns to highlight")
	flags.BoolP(FlagName(KeyIgnoreCase), "i", d.IgnoreCase, "match patterns case-insensitively")
	flags.String(FlagName(KeyTheme), d.Theme, "color theme (Dracula, Slate)")
	flags.Duration(FlagName(KeyTick), d.Tick, "how long to wait for input per refresh")
	flags.Bool(FlagName(KeyWrap), d.Wrap, "wrap long lines")
	flags.String(FlagName(KeyLogFile), d.LogFile, "write debug logs to this file")
	flags.String(FlagName(KeyLogLevel), d.LogLevel, "log level ("+strings.Join(logging.ValidLevels(), ", ")+")")
	flags.Int(FlagName(KeyTail), d.Tail, "lines of an existing file to show first (0 = all)")
}

// Bind wires v to the config file values, the environment and flags. The
// file values become viper defaults, so flags and LOGR_* variables win over
// them.
func Bind(v *viper.Viper, file Config, flags *pflag.FlagSet) error {
	v.SetDefault(KeyPatterns, file.Patterns)
	v.SetDefault(KeyIgnoreCase, file.IgnoreCase)
	v.SetDefault(KeyTheme, file.Theme)
	v.SetDefault(KeyTick, file.Tick)
	v.SetDefault(KeyWrap, file.Wrap)
	v.SetDefault(KeyLogFile, file.LogFile)
	v.SetDefault(KeyLogLevel, file.LogLevel)
	v.SetDefault(KeyTail, file.Tail)

	v.SetEnvPrefix("LOGR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags == nil {
		return nil
	}
	for _, key := range Keys() {
		flag := flags.Lookup(FlagName(key))
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}
	return nil
}

// Resolve reads the merged settings out of v and validates them.
func Resolve(v *viper.Viper) (Config, error) {
	tick, err := cast.ToDurationE(v.Get(KeyTick))
	if err != nil {
		return Config{}, fmt.Errorf("tick: %w", err)
	}
	tail, err := cast.ToIntE(v.Get(KeyTail))
	if err != nil {
		return Config{}, fmt.Errorf("tail: %w", err)
	}

	cfg := Config{
		Patterns:   stringList(v.Get(KeyPatterns)),
		IgnoreCase: v.GetBool(KeyIgnoreCase),
		Theme:      strings.TrimSpace(v.GetString(KeyTheme)),
		Tick:       tick,
		Wrap:       v.GetBool(KeyWrap),
		LogFile:    strings.TrimSpace(v.GetString(KeyLogFile)),
		LogLevel:   logging.ParseLevel(v.GetString(KeyLogLevel)),
		Tail:       tail,
	}
	if cfg.Theme == "" {
		cfg.Theme = defaultTheme
	}
	if cfg.LogFile != "" {
		cfg.LogFile = mustExpand(cfg.LogFile)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// stringList accepts a list or a comma separated string. Environment
// variables arrive as the latter. Items are kept as given: whitespace is
// part of a regex, and blank items are left for Validate to reject.
func stringList(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		if v == "" {
			return nil
		}
		return strings.Split(v, ",")
	default:
		items := cast.ToStringSlice(v)
		if len(items) == 0 {
			return nil
		}
		return items
	}
}
