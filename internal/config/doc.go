// Package config handles configuration loading for coven-prefs.
//
// # Configuration File
//
// Location:
//
//  1. Path from COVEN_PREFS_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/coven/prefs.yaml
//  3. ~/.config/coven/prefs.yaml
//
// A missing file is not an error: Load returns Default().
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	prefs:
//	  dir: "${HOME}/.local/state/coven"
//
// # Configuration Sections
//
// Preferences storage:
//
//	prefs:
//	  dir: "~/.config/coven/prefs"  # prefs.toml lives here
//
// Autosave:
//
//	autosave:
//	  interval: "5s"
//
// Logging:
//
//	logging:
//	  level: "info"   # debug, info, warn, error
//	  format: "text"  # text, json
//	  file: ""        # optional JSON log file
//
// # Usage
//
//	cfg, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
