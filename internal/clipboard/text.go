package clipboard

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/argv"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// TextUsage is the clipboard-text help text.
const TextUsage = `clipboard-text - Utility to read and write clipboard text data

Usage:
	clipboard-text --read             Print the clipboard data stored in plain text format.
	clipboard-text --write <text...>  Set the clipboard text from the remaining arguments.
	clipboard-text --file <path>      Load the content of a file and write it to the clipboard.
	clipboard-text --help             Print usage instructions and arguments.
`

type textMode int

const (
	textRead textMode = iota
	textWrite
	textFile
	textHelp
)

var textModes = argv.NewTable[textMode]().
	Add(textHelp, "help", "h", "v", "he", "hel", "hep", "hlp", "vv", "vvv", "ve", "ver", "version", "info").
	Add(textWrite, "write", "w", "s", "set", "post", "put", "place", "replace", "save", "upload", "overwrite").
	Add(textFile, "file", "f", "l", "from", "load", "readfile", "inputfile", "inputfrom", "source", "sourcefile", "sourcefrom", "writefromfile").
	Add(textRead, "read", "r", "g", "get", "text", "download", "retrieve")

// TextTool implements clipboard-text.
type TextTool struct {
	clipboard interfaces.Clipboard
	out       io.Writer
	log       logger.LoggerInterface
	readFile  func(string) ([]byte, error)
}

// NewTextTool creates a TextTool that reads --file sources from disk.
func NewTextTool(cb interfaces.Clipboard, out io.Writer, log logger.LoggerInterface) *TextTool {
	return NewTextToolWithDeps(cb, out, log, os.ReadFile)
}

// NewTextToolWithDeps is the testable version with an injected file reader.
func NewTextToolWithDeps(cb interfaces.Clipboard, out io.Writer, log logger.LoggerInterface, readFile func(string) ([]byte, error)) *TextTool {
	return &TextTool{clipboard: cb, out: out, log: log, readFile: readFile}
}

// Run executes one clipboard-text invocation.
func (t *TextTool) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(t.out, TextUsage)
		return apperr.Exit(apperr.ExitUsage)
	}

	mode, err := argv.ParseMode(textModes, args[0])
	if err != nil {
		return err
	}

	rest := args[1:]

	switch mode {
	case textHelp:
		fmt.Fprint(t.out, TextUsage)
		return nil
	case textRead:
		if len(rest) > 0 {
			return apperr.AtToken(apperr.KindArgument, rest[0], 2, "unexpected argument to read mode")
		}

		return t.read()
	case textWrite:
		if len(rest) == 0 {
			return apperr.AtToken(apperr.KindArgument, args[0], 2, "missing text for")
		}

		return t.write([]byte(strings.Join(rest, " ")))
	case textFile:
		if len(rest) == 0 || rest[0] == "" {
			return apperr.AtToken(apperr.KindArgument, args[0], 2, "missing source file for")
		}

		if len(rest) > 1 {
			return apperr.AtToken(apperr.KindArgument, rest[1], 3, "too many arguments to file mode")
		}

		data, err := t.readFile(rest[0])
		if err != nil {
			return &apperr.Error{Kind: apperr.KindInvalidArgument, Msg: "could not read source file", Token: rest[0], Err: err}
		}

		return t.write(data)
	}

	return nil
}

func (t *TextTool) read() error {
	data, err := t.clipboard.Read(CF_TEXT)
	if err != nil {
		return err
	}

	// CF_TEXT is NUL-terminated; the allocation may be larger than the text.
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}

	t.log.Debug("Read clipboard text", slog.Int("bytes", len(data)))

	if _, err := t.out.Write(data); err != nil {
		return fmt.Errorf("writing clipboard text: %w", err)
	}

	return nil
}

func (t *TextTool) write(text []byte) error {
	data := make([]byte, len(text)+1)
	copy(data, text)

	if err := t.clipboard.Write(CF_TEXT, data); err != nil {
		return err
	}

	t.log.Debug("Wrote clipboard text", slog.Int("bytes", len(text)))
	return nil
}
