package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
)

type consoleStyle struct {
	prefix string
	color  *color.Color
}

var consoleStyles = map[slog.Level]consoleStyle{
	slog.LevelError: {"ERROR: ", color.New(color.FgRed)},
	slog.LevelWarn:  {"WARNING: ", color.New(color.FgYellow)},
	slog.LevelDebug: {"VERBOSE: ", color.New(color.FgCyan)},
}

// ConsoleHandler prints one line per record: a level prefix, the message
// and the attributes as key=value. Info lines carry no prefix. Trace never
// prints, and Debug prints only when verbose.
type ConsoleHandler struct {
	writer  io.Writer
	verbose bool
	attrs   []slog.Attr
}

// NewConsoleHandler returns a ConsoleHandler writing to w.
func NewConsoleHandler(w io.Writer, verbose bool) *ConsoleHandler {
	return &ConsoleHandler{writer: w, verbose: verbose}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	switch {
	case level <= LevelTrace:
		return false
	case level < slog.LevelInfo:
		return h.verbose
	}

	return true
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var line strings.Builder

	line.WriteString(r.Message)

	writeAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&line, " %s=%v", a.Key, a.Value)
		return true
	}

	for _, a := range h.attrs {
		writeAttr(a)
	}

	r.Attrs(writeAttr)

	// Console write failures are dropped; the file sink still has the record.
	if style, ok := consoleStyles[r.Level]; ok {
		_, _ = style.color.Fprintf(h.writer, "%s%s\n", style.prefix, line.String())
		return nil
	}

	_, _ = fmt.Fprintln(h.writer, line.String())
	return nil
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &next
}

// WithGroup is a no-op; console lines are flat.
func (h *ConsoleHandler) WithGroup(_ string) slog.Handler {
	return h
}
