// Package wallpaper implements the desktop-background utility.
package wallpaper

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/argv"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/jsonout"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// Usage is the desktop-background help text.
const Usage = `desktop-background - Utility to interact with the desktop background image

Usage:
	desktop-background --get         Retrieve the current desktop background image path.
	desktop-background --set <path>  Update the desktop background to the specified image.
	desktop-background --help        Display this help text.
`

type mode int

const (
	modeGet mode = iota
	modeSet
	modeHelp
)

var modes = argv.NewTable[mode]().
	Add(modeHelp, "help", "h", "v", "?").
	Add(modeGet, "get", "g", "read", "r").
	Add(modeSet, "set", "s", "write", "w")

// Tool implements desktop-background. Results and failures are both
// reported as a one-key JSON object on out.
type Tool struct {
	store interfaces.WallpaperStore
	out   io.Writer
	log   logger.LoggerInterface
}

func NewTool(store interfaces.WallpaperStore, out io.Writer, log logger.LoggerInterface) *Tool {
	return &Tool{store: store, out: out, log: log}
}

// Run executes one desktop-background invocation.
func (t *Tool) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(t.out, Usage)
		return apperr.Exit(apperr.ExitUsage)
	}

	m, err := argv.ParseMode(modes, args[0])
	if err != nil {
		return err
	}

	switch m {
	case modeHelp:
		fmt.Fprint(t.out, Usage)
		return nil
	case modeGet:
		if len(args) > 1 {
			return apperr.AtToken(apperr.KindArgument, args[1], 2, "too many arguments to get mode")
		}

		path, err := t.store.Wallpaper()
		if err != nil {
			return t.fail(err)
		}

		return t.print("path", path)
	case modeSet:
		if len(args) != 2 || args[1] == "" {
			return t.fail(apperr.New(apperr.KindArgument, "set mode takes exactly one path"))
		}

		path := Normalize(args[1])
		t.log.Debug("Setting wallpaper", slog.String("path", path))

		if err := t.store.SetWallpaper(path); err != nil {
			return t.fail(err)
		}

		return t.print("path", path)
	}

	return nil
}

func (t *Tool) print(key, value string) error {
	_, err := fmt.Fprintln(t.out, jsonout.NewObject().String(key, value).Encode())
	return err
}

// fail reports err as {"error": ...} and exits with its code without a
// second message on stderr.
func (t *Tool) fail(err error) error {
	msg := err.Error()

	var e *apperr.Error
	if errors.As(err, &e) && e.Msg != "" {
		msg = e.Msg
	}

	t.log.Debug("Wallpaper request failed", slog.Any("error", err))

	if perr := t.print("error", msg); perr != nil {
		return perr
	}

	return apperr.Exit(apperr.ExitCode(err))
}

// Normalize drops double quotes, converts forward slashes to backslashes
// and collapses runs of separators.
func Normalize(path string) string {
	var b strings.Builder
	b.Grow(len(path))

	lastSep := false
	for i := 0; i < len(path); i++ {
		c := path[i]

		switch c {
		case '"':
			continue
		case '\\', '/':
			if lastSep {
				continue
			}

			b.WriteByte('\\')
			lastSep = true
		default:
			b.WriteByte(c)
			lastSep = false
		}
	}

	return b.String()
}
