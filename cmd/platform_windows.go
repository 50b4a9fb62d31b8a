//go:build windows

package cmd

import (
	"github.com/Norgate-AV/wintools/internal/config"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/process"
	"github.com/Norgate-AV/wintools/internal/winapi"
)

func newPlatform(log logger.LoggerInterface, cfg *config.Config) (*Platform, error) {
	client := winapi.NewClient(log, winapi.Options{
		ClipboardOpenRetries: cfg.Clipboard.OpenRetries,
	})

	return &Platform{
		Windows:   client.Windows,
		Processes: process.NewResolver(),
		Clipboard: client.Clipboard,
		Wallpaper: client.Wallpaper,
	}, nil
}
