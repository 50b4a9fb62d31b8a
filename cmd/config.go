// Package cmd implements the command-line interface for wintools.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/wintools/internal/config"
)

// Config holds the settings given as root flags
type Config struct {
	Verbose  bool
	ShowLogs bool
}

// NewConfigFromFlags creates a Config from parsed command flags
func NewConfigFromFlags(cmd *cobra.Command) *Config {
	return &Config{
		Verbose:  getBoolFlag(cmd, "verbose"),
		ShowLogs: getBoolFlag(cmd, "logs"),
	}
}

// getBoolFlag retrieves a boolean flag, checking local, persistent and
// finally the root's persistent flags. Utility commands never parse their
// own flags, so their values live on the root.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	if val, err := cmd.Flags().GetBool(name); err == nil && val {
		return true
	}

	if val, err := cmd.PersistentFlags().GetBool(name); err == nil && val {
		return true
	}

	val, _ := cmd.Root().PersistentFlags().GetBool(name)
	return val
}

// loadSettings reads the file and environment configuration and applies
// the flags on top.
func loadSettings(flags *Config) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if flags.Verbose {
		cfg.Verbose = true
	}

	return cfg, nil
}
