// ABOUTME: Configuration loading and parsing for coven-prefs
// ABOUTME: Supports YAML files with environment variable expansion and duration parsing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultAutosaveInterval is used when autosave.interval is not set.
const DefaultAutosaveInterval = 5 * time.Second

// Config represents the complete coven-prefs configuration
type Config struct {
	Prefs    PrefsConfig    `yaml:"prefs"`
	Autosave AutosaveConfig `yaml:"autosave"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// PrefsConfig holds the preferences storage location
type PrefsConfig struct {
	Dir string `yaml:"dir"`
}

// AutosaveConfig holds autosave timing
type AutosaveConfig struct {
	Interval time.Duration `yaml:"-"`

	// Raw string value for YAML unmarshaling
	IntervalRaw string `yaml:"interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	// File, when set, receives a JSON copy of every log record.
	File string `yaml:"file"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Prefs:    PrefsConfig{Dir: DefaultPrefsDir()},
		Autosave: AutosaveConfig{Interval: DefaultAutosaveInterval},
		Logging:  LoggingConfig{Level: "info", Format: "text"},
	}
}

// DefaultPath returns the path to the config file.
// Priority: COVEN_PREFS_CONFIG env var > XDG_CONFIG_HOME/coven/prefs.yaml > ~/.config/coven/prefs.yaml
func DefaultPath() string {
	if envPath := os.Getenv("COVEN_PREFS_CONFIG"); envPath != "" {
		return envPath
	}
	return filepath.Join(configHome(), "coven", "prefs.yaml")
}

// DefaultPrefsDir returns the directory holding prefs.toml.
// Priority: XDG_CONFIG_HOME/coven/prefs > ~/.config/coven/prefs
func DefaultPrefsDir() string {
	return filepath.Join(configHome(), "coven", "prefs")
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "." // fallback
	}
	return filepath.Join(homeDir, ".config")
}

// Load reads a configuration file from the given path and returns a parsed Config.
// A missing file yields the defaults. Keys absent from the file keep their defaults.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	expandedData := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expandedData), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := parseDurations(cfg); err != nil {
		return nil, fmt.Errorf("parsing durations: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// Validate checks that all required configuration fields are present and valid.
func (c *Config) Validate() error {
	if c.Prefs.Dir == "" {
		return fmt.Errorf("prefs.dir is required")
	}

	if c.Autosave.Interval <= 0 {
		return fmt.Errorf("autosave.interval must be positive, got %s", c.Autosave.Interval)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format %q is not one of text, json", c.Logging.Format)
	}

	return nil
}

// parseDurations converts the raw duration strings into time.Duration values
func parseDurations(cfg *Config) error {
	if cfg.Autosave.IntervalRaw != "" {
		interval, err := time.ParseDuration(cfg.Autosave.IntervalRaw)
		if err != nil {
			return fmt.Errorf("parsing autosave interval %q: %w", cfg.Autosave.IntervalRaw, err)
		}
		cfg.Autosave.Interval = interval
	}
	return nil
}
