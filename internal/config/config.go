// Package config loads cpick configuration from file and environment, and
// persists the small preferences file the picker rewrites at runtime.
//
// Precedence (highest to lowest):
//  1. Environment variables (CPICK_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. $CPICK_CONFIG, when set
//  2. .cpick.yaml in current directory
//  3. $XDG_CONFIG_HOME/cpick/config.yaml (~/.config/cpick/config.yaml)
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/timvw/cpick/internal/capture"
)

// Config holds all cpick configuration.
type Config struct {
	// Capture
	Platform       string `yaml:"platform"`        // auto, windows, darwin, linux or fallback
	CommandTimeout string `yaml:"command_timeout"` // per helper subprocess, e.g. "300ms"

	// Sampling
	PollInterval string `yaml:"poll_interval"` // UI timer period, e.g. "20ms"
	MinInterval  string `yaml:"min_interval"`  // shortest gap between samples, e.g. "50ms"

	// UI
	Theme string `yaml:"theme"` // dark or light

	// Files
	PreferencesFile string `yaml:"preferences_file"`
	JournalFile     string `yaml:"journal_file"` // "off" disables the journal
	DebugLog        string `yaml:"debug_log"`    // where --debug writes while the TUI owns the terminal

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Parsed durations (not from YAML, set after loading)
	CommandTimeoutDuration time.Duration `yaml:"-"`
	PollIntervalDuration   time.Duration `yaml:"-"`
	MinIntervalDuration    time.Duration `yaml:"-"`

	// ConfigFile is the path to the config file that was loaded (empty if none).
	ConfigFile string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		Platform:        "auto",
		CommandTimeout:  "300ms",
		PollInterval:    "20ms",
		MinInterval:     "50ms",
		Theme:           "dark",
		PreferencesFile: filepath.Join(configHome(), "cpick", "preferences.json"),
		JournalFile:     filepath.Join(dataHome(), "cpick", "journal.db"),
		DebugLog:        filepath.Join(os.TempDir(), "cpick-debug.log"),
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	path, data, err := findConfigFile()
	if err != nil {
		return nil, err
	}
	if path != "" {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.ConfigFile = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// finish parses durations and validates enumerated settings.
func (c *Config) finish() error {
	var err error
	c.CommandTimeoutDuration, err = parsePositiveDuration(c.CommandTimeout, 300*time.Millisecond)
	if err != nil {
		return fmt.Errorf("invalid command_timeout %q: %w", c.CommandTimeout, err)
	}
	c.PollIntervalDuration, err = parsePositiveDuration(c.PollInterval, 20*time.Millisecond)
	if err != nil {
		return fmt.Errorf("invalid poll_interval %q: %w", c.PollInterval, err)
	}
	c.MinIntervalDuration, err = parsePositiveDuration(c.MinInterval, 50*time.Millisecond)
	if err != nil {
		return fmt.Errorf("invalid min_interval %q: %w", c.MinInterval, err)
	}
	if !slices.Contains(capture.Platforms, c.Platform) {
		return fmt.Errorf("invalid platform %q (supported: %v)", c.Platform, capture.Platforms)
	}
	if c.Theme != "dark" && c.Theme != "light" {
		return fmt.Errorf("invalid theme %q (supported: dark, light)", c.Theme)
	}
	return nil
}

// JournalEnabled reports whether commits should be journaled.
func (c *Config) JournalEnabled() bool {
	return c.JournalFile != "" && c.JournalFile != "off"
}

// findConfigFile returns the first config file found. A missing file is not
// an error, except when CPICK_CONFIG names it explicitly.
func findConfigFile() (string, []byte, error) {
	if path := os.Getenv("CPICK_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", nil, fmt.Errorf("reading config file: %w", err)
		}
		return path, data, nil
	}

	if data, err := os.ReadFile(".cpick.yaml"); err == nil {
		return ".cpick.yaml", data, nil
	}

	path := filepath.Join(configHome(), "cpick", "config.yaml")
	if data, err := os.ReadFile(path); err == nil {
		return path, data, nil
	}
	return "", nil, nil
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Platform, file.Platform)
	set(&cfg.CommandTimeout, file.CommandTimeout)
	set(&cfg.PollInterval, file.PollInterval)
	set(&cfg.MinInterval, file.MinInterval)
	set(&cfg.Theme, file.Theme)
	set(&cfg.PreferencesFile, expandHome(file.PreferencesFile))
	set(&cfg.JournalFile, expandHome(file.JournalFile))
	set(&cfg.DebugLog, expandHome(file.DebugLog))
	set(&cfg.OTELEndpoint, file.OTELEndpoint)
	set(&cfg.OTELHeaders, file.OTELHeaders)
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	vars := []struct {
		key string
		dst *string
	}{
		{"CPICK_PLATFORM", &cfg.Platform},
		{"CPICK_COMMAND_TIMEOUT", &cfg.CommandTimeout},
		{"CPICK_POLL_INTERVAL", &cfg.PollInterval},
		{"CPICK_MIN_INTERVAL", &cfg.MinInterval},
		{"CPICK_THEME", &cfg.Theme},
		{"CPICK_PREFERENCES_FILE", &cfg.PreferencesFile},
		{"CPICK_JOURNAL_FILE", &cfg.JournalFile},
		{"CPICK_DEBUG_LOG", &cfg.DebugLog},
		{"OTEL_EXPORTER_OTLP_ENDPOINT", &cfg.OTELEndpoint},
		{"OTEL_EXPORTER_OTLP_HEADERS", &cfg.OTELHeaders},
		{"CPICK_OTEL_ENDPOINT", &cfg.OTELEndpoint},
		{"CPICK_OTEL_HEADERS", &cfg.OTELHeaders},
	}
	for _, v := range vars {
		if val := os.Getenv(v.key); val != "" {
			*v.dst = val
		}
	}
}

// parsePositiveDuration parses a Go duration string. Empty returns the
// fallback; zero and negative values are rejected since every interval here
// drives a timer.
func parsePositiveDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive")
	}
	return d, nil
}

func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config")
	}
	return "."
}

func dataHome() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return dir
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share")
	}
	return "."
}

// expandHome turns a leading "~/" into the user's home directory.
func expandHome(p string) string {
	if len(p) < 2 || p[:2] != "~/" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, p[2:])
}
