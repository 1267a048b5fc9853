package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configurable timetrack settings.
type Config struct {
	RefreshInterval string `json:"refresh_interval" yaml:"refresh_interval"` // dashboard poll cadence, e.g. "1s"
	DefaultActive   *bool  `json:"default_active,omitempty" yaml:"default_active,omitempty"`
	ShowSeconds     *bool  `json:"show_seconds,omitempty" yaml:"show_seconds,omitempty"`
	DefaultFormat   string `json:"default_format" yaml:"default_format"` // "text" | "markdown" | "json" | "yaml"
	DataDir         string `json:"data_dir" yaml:"data_dir"`             // override XDG data dir
	LogLevel        string `json:"log_level" yaml:"log_level"`
}

// Defaults returns sensible default configuration values.
func Defaults() Config {
	return Config{
		RefreshInterval: "1s",
		DefaultActive:   boolPtr(true),
		ShowSeconds:     boolPtr(false),
		DefaultFormat:   "text",
		LogLevel:        "warn",
	}
}

// Refresh returns the parsed refresh interval.
func (c Config) Refresh() (time.Duration, error) {
	d, err := time.ParseDuration(c.RefreshInterval)
	if err != nil {
		return 0, fmt.Errorf("invalid refresh_interval %q: %w", c.RefreshInterval, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid refresh_interval %q: must be positive", c.RefreshInterval)
	}
	return d, nil
}

// StartActive reports whether newly added activities start tracking immediately.
func (c Config) StartActive() bool {
	return c.DefaultActive == nil || *c.DefaultActive
}

// Seconds reports whether durations are shown with seconds.
func (c Config) Seconds() bool {
	return c.ShowSeconds != nil && *c.ShowSeconds
}

// Validate checks values that are only parsed lazily.
func (c Config) Validate() error {
	_, err := c.Refresh()
	return err
}

// Dir returns ~/.config/timetrack.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "timetrack"), nil
}

// LoadGlobal reads ~/.config/timetrack/config.json, or config.yaml when no
// JSON file exists. Returns defaults if neither is present.
func LoadGlobal() (*Config, error) {
	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	cfg, err := loadFirst(filepath.Join(dir, "config.json"), filepath.Join(dir, "config.yaml"))
	if err != nil || cfg != nil {
		return cfg, err
	}
	d := Defaults()
	return &d, nil
}

// LoadProject reads .timetrack.json or .timetrack.yaml in the current
// working directory. Returns nil (no error) if neither exists.
func LoadProject() (*Config, error) {
	return loadFirst(".timetrack.json", ".timetrack.yaml")
}

// loadFirst parses the first of paths that exists, or returns nil.
func loadFirst(paths ...string) (*Config, error) {
	for _, p := range paths {
		cfg, err := loadFile(p)
		if err != nil {
			return nil, err
		}
		if cfg != nil {
			return cfg, nil
		}
	}
	return nil, nil
}

// loadFile reads and parses a JSON or YAML config file at path, chosen by
// extension. It returns nil when the file is absent.
func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return &cfg, nil
}

// Merge combines global and project configs, with project taking precedence.
// Missing keys fall back to global, then defaults.
func Merge(global, project *Config) Config {
	result := Defaults()
	for _, src := range []*Config{global, project} {
		if src == nil {
			continue
		}
		if src.RefreshInterval != "" {
			result.RefreshInterval = src.RefreshInterval
		}
		if src.DefaultActive != nil {
			result.DefaultActive = boolPtr(*src.DefaultActive)
		}
		if src.ShowSeconds != nil {
			result.ShowSeconds = boolPtr(*src.ShowSeconds)
		}
		if src.DefaultFormat != "" {
			result.DefaultFormat = src.DefaultFormat
		}
		if src.DataDir != "" {
			result.DataDir = src.DataDir
		}
		if src.LogLevel != "" {
			result.LogLevel = src.LogLevel
		}
	}
	return result
}

// ApplyEnv overrides cfg with TIMETRACK_* environment variables.
func ApplyEnv(cfg Config) Config {
	cfg.RefreshInterval = getEnv("TIMETRACK_REFRESH_INTERVAL", cfg.RefreshInterval)
	cfg.DataDir = getEnv("TIMETRACK_DATA_DIR", cfg.DataDir)
	cfg.LogLevel = getEnv("TIMETRACK_LOG_LEVEL", cfg.LogLevel)
	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func boolPtr(b bool) *bool {
	return &b
}

// ParseError is returned when a config file exists but cannot be parsed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return "failed to parse config file " + e.Path + ": " + e.Err.Error()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// WriteGlobal writes cfg to ~/.config/timetrack/config.yaml and returns the
// path. An existing file is only replaced when overwrite is set.
func WriteGlobal(cfg Config, overwrite bool) (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "config.yaml")
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%s already exists (use --force to replace it)", path)
		}
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
