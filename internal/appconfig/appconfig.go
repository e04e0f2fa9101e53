// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mwiater/benjmark/internal/settings"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/benjmark.json"
	// defaultRunTimeout bounds a single benchmark program run.
	defaultRunTimeout = 600 * time.Second
)

// Config represents the top-level application configuration.
type Config struct {
	Root           string              `json:"root" mapstructure:"root"`
	Keys           []string            `json:"keys" mapstructure:"keys"`
	Settings       map[string]any      `json:"settings,omitempty" mapstructure:"settings"`
	Commands       map[string][]string `json:"commands,omitempty" mapstructure:"commands"`
	TimeoutSeconds int                 `json:"timeout,omitempty" mapstructure:"timeout"`
	LogFile        string              `json:"logFile,omitempty" mapstructure:"logFile"`
	Debug          bool                `json:"debug" mapstructure:"debug"`
	ConfigPath     string              `json:"-" mapstructure:"-"`
}

// RunTimeout returns the per-run timeout, falling back to the default if not specified.
func (c Config) RunTimeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return defaultRunTimeout
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// LogFilePath returns the log file path. Empty means log to stdout only.
func (c Config) LogFilePath() string {
	return strings.TrimSpace(c.LogFile)
}

// ReportSettings applies the configured settings and then the "name=value"
// overrides on top of settings.Default.
func (c Config) ReportSettings(overrides []string) (settings.Settings, error) {
	s := settings.Default.Apply(c.Settings)
	extra, err := settings.ParseAssignments(overrides)
	if err != nil {
		return settings.Settings{}, err
	}
	s = s.Apply(extra)
	if err := s.Err(); err != nil {
		return settings.Settings{}, err
	}
	return s, nil
}

// Validate checks the fields every report command needs.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Root) == "" {
		return errors.New("config must name a results root (root)")
	}
	if len(c.Keys) == 0 {
		return errors.New("config must contain at least one dataset key (keys)")
	}
	return nil
}

// Load reads the application configuration from the specified path.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}

	config, err := loadFromPath(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	config.ConfigPath = path
	return config, nil
}

// loadFromPath is a helper function that loads the configuration from a specific file path.
func loadFromPath(path string) (Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	if err := json.NewDecoder(file).Decode(&config); err != nil {
		return Config{}, err
	}
	if config.TimeoutSeconds <= 0 {
		config.TimeoutSeconds = int(defaultRunTimeout.Seconds())
	}

	return config, nil
}
