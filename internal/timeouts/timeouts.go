// Package timeouts defines retry and delay constants for Win32 operations.
package timeouts

import "time"

const (
	// Clipboard Access

	// ClipboardOpenRetries is the number of additional OpenClipboard attempts
	// made while another process holds the clipboard open.
	ClipboardOpenRetries = 5

	// ClipboardRetryDelay is the delay between OpenClipboard attempts.
	ClipboardRetryDelay = 20 * time.Millisecond
)
