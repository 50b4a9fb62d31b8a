// Package testutil provides test utilities and mock implementations.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTempDir creates a temporary directory for testing
func CreateTempDir(t *testing.T) string {
	dir, err := os.MkdirTemp("", "wintools-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}

	t.Cleanup(func() {
		if err := os.RemoveAll(dir); err != nil {
			// Ignore cleanup errors in tests
		}
	})
	return dir
}

// CreateTestFile writes content to dir/name and returns its path
func CreateTestFile(t *testing.T, dir string, name string, content string) string {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	return path
}

// IsolateEnv points every directory wintools reads configuration or writes
// logs to at a temporary directory, and clears WINTOOLS_* overrides.
func IsolateEnv(t *testing.T) string {
	dir := t.TempDir()

	t.Setenv("LOCALAPPDATA", dir)
	t.Setenv("APPDATA", dir)
	t.Setenv("USERPROFILE", dir)
	// Setenv restores the original values on cleanup; Unsetenv makes the
	// variables absent rather than empty for the duration of the test.
	for _, key := range []string{
		"WINTOOLS_CONFIG",
		"WINTOOLS_VERBOSE",
		"WINTOOLS_LOG_DIR",
		"WINTOOLS_LOG_MAX_SIZE",
		"WINTOOLS_LOG_MAX_BACKUPS",
		"WINTOOLS_LOG_MAX_AGE",
		"WINTOOLS_LOG_COMPRESS",
		"WINTOOLS_LOG_DISABLED",
		"WINTOOLS_CLIPBOARD_OPEN_RETRIES",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	return dir
}
