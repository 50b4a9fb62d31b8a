// Package config loads wintools settings from an optional YAML file
// overlaid with WINTOOLS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/timeouts"
)

const (
	// EnvPrefix is the prefix of every environment override.
	EnvPrefix = "WINTOOLS"

	// PathEnv names the variable that points at an explicit config file.
	PathEnv = "WINTOOLS_CONFIG"

	DefaultConfigDir  = "wintools"
	DefaultConfigFile = "config.yaml"
)

// Config holds all application configuration
type Config struct {
	Verbose   bool            `yaml:"verbose"`
	Log       LogConfig       `yaml:"log"`
	Clipboard ClipboardConfig `yaml:"clipboard"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	Dir        string `yaml:"dir"`
	MaxSize    int    `yaml:"max_size" split_words:"true"`
	MaxBackups int    `yaml:"max_backups" split_words:"true"`
	MaxAge     int    `yaml:"max_age" split_words:"true"`
	Compress   bool   `yaml:"compress"`
	Disabled   bool   `yaml:"disabled"`
}

// ClipboardConfig configures clipboard access.
type ClipboardConfig struct {
	// OpenRetries is how many extra OpenClipboard attempts are made while
	// another process holds the clipboard.
	OpenRetries int `yaml:"open_retries" split_words:"true"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			MaxSize:    logger.DefaultLogMaxSize,
			MaxBackups: logger.DefaultLogMaxBackups,
			MaxAge:     logger.DefaultLogMaxAge,
			Compress:   true,
		},
		Clipboard: ClipboardConfig{
			OpenRetries: timeouts.ClipboardOpenRetries,
		},
	}
}

// GetConfigPath returns the config file location: $WINTOOLS_CONFIG when
// set, otherwise %APPDATA%\wintools\config.yaml.
func GetConfigPath() string {
	if p := os.Getenv(PathEnv); p != "" {
		return p
	}

	appData := os.Getenv("APPDATA")
	if appData == "" {
		appData = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
	}

	return filepath.Join(appData, DefaultConfigDir, DefaultConfigFile)
}

// Load loads configuration from the default location and the environment.
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath(), os.Getenv(PathEnv) != "")
}

// LoadFrom reads path (a missing file is only an error when required) and
// applies environment overrides on top.
func LoadFrom(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !required:
	default:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate rejects negative sizes and counts.
func (c *Config) Validate() error {
	checks := []struct {
		name  string
		value int
	}{
		{"log.max_size", c.Log.MaxSize},
		{"log.max_backups", c.Log.MaxBackups},
		{"log.max_age", c.Log.MaxAge},
		{"clipboard.open_retries", c.Clipboard.OpenRetries},
	}

	for _, chk := range checks {
		if chk.value < 0 {
			return fmt.Errorf("%s must not be negative (got %d)", chk.name, chk.value)
		}
	}

	return nil
}

// LoggerOptions maps the log settings onto logger options.
func (c *Config) LoggerOptions() logger.LoggerOptions {
	return logger.LoggerOptions{
		Verbose:      c.Verbose,
		LogDir:       c.Log.Dir,
		MaxSize:      c.Log.MaxSize,
		MaxBackups:   c.Log.MaxBackups,
		MaxAge:       c.Log.MaxAge,
		Compress:     c.Log.Compress,
		FileDisabled: c.Log.Disabled,
	}
}
