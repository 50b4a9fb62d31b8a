//go:build windows

package winapi

import (
	"time"

	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/timeouts"
)

// Options tunes OS interaction.
type Options struct {
	// ClipboardOpenRetries is how many times a busy clipboard is retried.
	ClipboardOpenRetries int
	ClipboardRetryDelay  time.Duration
}

// Client provides methods for interacting with Windows APIs
// It composes specialized managers for different categories of functionality
type Client struct {
	log       logger.LoggerInterface
	Windows   *windowManager
	Clipboard *clipboardManager
	Wallpaper *wallpaperManager
}

// NewClient creates a new Windows API client
func NewClient(log logger.LoggerInterface, opts Options) *Client {
	if opts.ClipboardRetryDelay == 0 {
		opts.ClipboardRetryDelay = timeouts.ClipboardRetryDelay
	}

	return &Client{
		log:       log,
		Windows:   newWindowManager(log),
		Clipboard: newClipboardManager(log, opts.ClipboardOpenRetries, opts.ClipboardRetryDelay),
		Wallpaper: newWallpaperManager(log),
	}
}

var (
	_ interfaces.WindowSystem   = (*windowManager)(nil)
	_ interfaces.Clipboard      = (*clipboardManager)(nil)
	_ interfaces.WallpaperStore = (*wallpaperManager)(nil)
)
