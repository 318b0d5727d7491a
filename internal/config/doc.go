// Package config resolves logr's settings.
//
// # Sources
//
// Settings come from four layers, highest first:
//
//  1. Command line flags (see RegisterFlags)
//  2. LOGR_* environment variables, e.g. LOGR_THEME or LOGR_IGNORE_CASE
//  3. The TOML file, ~/.config/logr/config.toml unless --config says otherwise
//  4. Built-in defaults (see Default)
//
// Load reads the file layer on top of the defaults. A missing file is not an
// error. Bind hands the result to a viper instance as its defaults and binds
// the environment and flags over it; Resolve reads the merged values back and
// validates them.
//
// # TOML Format
//
//	patterns = ["ERROR", "WARN(ING)?"]
//	ignore_case = false
//	theme = "Dracula"
//	tick = "20ms"
//	wrap = false
//	log_file = "~/.local/state/logr/logr.log"
//	log_level = "INFO"
//	tail = 1000
//
// Every field is optional. Blank strings fall back to the default. Tilde
// expansion applies to log_file and to the config path itself.
//
// Patterns given in an environment variable or a single -p flag are comma
// separated, so a regex that needs a literal comma belongs in the file.
package config
