// Package logger writes wintools diagnostics to a rotating log file and to
// the console. The console is stderr by default so stdout stays reserved for
// the JSON a utility prints.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	// DefaultLogMaxSize is the size in megabytes at which wintools.log rotates
	DefaultLogMaxSize = 2

	// DefaultLogMaxBackups is how many rotated files are kept
	DefaultLogMaxBackups = 3

	// DefaultLogMaxAge is how many days rotated files are kept
	DefaultLogMaxAge = 28

	// LevelTrace sits below Debug and only reaches the log file
	LevelTrace = slog.LevelDebug - 4
)

// AppName names the log directory and file.
const AppName = "wintools"

// LoggerInterface is what the utilities log through.
type LoggerInterface interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Close()
	GetLogPath() string
}

// LoggerOptions configures NewLogger. Zero rotation values take the
// Default* constants.
type LoggerOptions struct {
	Verbose      bool // Debug records reach the console as VERBOSE:
	LogDir       string
	MaxSize      int
	MaxBackups   int
	MaxAge       int
	Compress     bool
	FileDisabled bool
	Console      io.Writer
}

func (o LoggerOptions) withDefaults() LoggerOptions {
	if o.MaxSize == 0 {
		o.MaxSize = DefaultLogMaxSize
	}

	if o.MaxBackups == 0 {
		o.MaxBackups = DefaultLogMaxBackups
	}

	if o.MaxAge == 0 {
		o.MaxAge = DefaultLogMaxAge
	}

	if o.Console == nil {
		o.Console = os.Stderr
	}

	return o
}

// GetLogPath resolves the log file for opts. Without LogDir it is
// %LOCALAPPDATA%\wintools\wintools.log, falling back to
// %USERPROFILE%\AppData\Local when LOCALAPPDATA is unset.
func GetLogPath(opts LoggerOptions) string {
	dir := opts.LogDir
	if dir == "" {
		base := os.Getenv("LOCALAPPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Local")
		}

		dir = filepath.Join(base, AppName)
	}

	return filepath.Join(dir, AppName+".log")
}

// PrintLogFile copies the log file for opts to w, or to stdout when w is
// nil. A missing file yields an error wrapping os.ErrNotExist.
func PrintLogFile(w io.Writer, opts LoggerOptions) error {
	if w == nil {
		w = os.Stdout
	}

	path := GetLogPath(opts)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read log file %s: %w", path, err)
	}

	return nil
}

// Logger fans every record out to the console and, unless disabled, the
// rotating log file. Each sink filters levels on its own.
type Logger struct {
	sinks   []*slog.Logger
	rotator *lumberjack.Logger
	path    string
}

// NewLogger builds a Logger for one utility run.
func NewLogger(opts LoggerOptions) (*Logger, error) {
	opts = opts.withDefaults()

	l := &Logger{
		sinks: []*slog.Logger{slog.New(NewConsoleHandler(opts.Console, opts.Verbose))},
	}

	if opts.FileDisabled {
		return l, nil
	}

	l.path = GetLogPath(opts)
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return nil, fmt.Errorf("could not create log directory: %w", err)
	}

	l.rotator = &lumberjack.Logger{
		Filename:   l.path,
		MaxSize:    opts.MaxSize,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAge,
		Compress:   opts.Compress,
	}

	l.sinks = append(l.sinks, slog.New(slog.NewTextHandler(l.rotator, &slog.HandlerOptions{
		Level:       LevelTrace,
		ReplaceAttr: traceLevelName,
	})))

	return l, nil
}

// traceLevelName writes LevelTrace as TRACE rather than DEBUG-4.
func traceLevelName(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}

	if lv, ok := a.Value.Any().(slog.Level); ok && lv == LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}

	return a
}

func (l *Logger) emit(level slog.Level, msg string, args []any) {
	for _, s := range l.sinks {
		s.Log(context.Background(), level, msg, args...)
	}
}

// Close flushes and closes the log file.
func (l *Logger) Close() {
	if l.rotator == nil {
		return
	}

	if err := l.rotator.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to close log file: %v\n", err)
	}
}

// GetLogPath returns the log file in use, or "" when file logging is off.
func (l *Logger) GetLogPath() string {
	return l.path
}

// Trace records file-only detail such as per-window lookups.
func (l *Logger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }

func (l *Logger) Debug(msg string, args ...any) { l.emit(slog.LevelDebug, msg, args) }

func (l *Logger) Info(msg string, args ...any) { l.emit(slog.LevelInfo, msg, args) }

func (l *Logger) Warn(msg string, args ...any) { l.emit(slog.LevelWarn, msg, args) }

func (l *Logger) Error(msg string, args ...any) { l.emit(slog.LevelError, msg, args) }
