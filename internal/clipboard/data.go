package clipboard

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/argv"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/jsonout"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// DataUsage is the clipboard-data help text.
const DataUsage = `clipboard-data - Utility to read and write clipboard data of any format

Usage:
	clipboard-data --list                    List the formats currently on the clipboard as JSON.
	clipboard-data --get <format>            Print the raw data stored for a format.
	clipboard-data --set <format> <text>     Replace the clipboard with text stored under a format.
	clipboard-data --help                    Print usage instructions and arguments.

Formats are positive decimal or 0x-prefixed hexadecimal codes (CF_TEXT is 1).
`

type dataMode int

const (
	dataList dataMode = iota
	dataGet
	dataSet
	dataHelp
)

var dataModes = argv.NewTable[dataMode]().
	Add(dataHelp, "help", "h", "v", "version").
	Add(dataList, "list", "l", "ls", "i", "info").
	Add(dataGet, "get", "g", "read", "r").
	Add(dataSet, "set", "s", "write", "w")

// DataTool implements clipboard-data.
type DataTool struct {
	clipboard interfaces.Clipboard
	out       io.Writer
	log       logger.LoggerInterface
}

func NewDataTool(cb interfaces.Clipboard, out io.Writer, log logger.LoggerInterface) *DataTool {
	return &DataTool{clipboard: cb, out: out, log: log}
}

// Run executes one clipboard-data invocation.
func (d *DataTool) Run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(d.out, DataUsage)
		return apperr.Exit(apperr.ExitUsage)
	}

	mode, err := argv.ParseMode(dataModes, args[0])
	if err != nil {
		return err
	}

	tokens := argv.Tokenize(args)

	switch mode {
	case dataHelp:
		fmt.Fprint(d.out, DataUsage)
		return nil
	case dataList:
		if len(tokens) > 1 {
			return apperr.AtToken(apperr.KindArgument, tokens[1].Raw, tokens[1].Index, "too many arguments to list mode")
		}

		return d.list()
	case dataGet:
		format, err := formatOperand(tokens)
		if err != nil {
			return err
		}

		if len(tokens) > 2 {
			return apperr.AtToken(apperr.KindArgument, tokens[2].Raw, tokens[2].Index, "too many arguments to get mode")
		}

		return d.get(format)
	case dataSet:
		format, err := formatOperand(tokens)
		if err != nil {
			return err
		}

		if len(tokens) < 3 {
			return apperr.AtToken(apperr.KindArgument, tokens[0].Raw, 3, "missing data for")
		}

		if len(tokens) > 3 {
			return apperr.AtToken(apperr.KindArgument, tokens[3].Raw, tokens[3].Index, "too many arguments to set mode")
		}

		return d.set(format, tokens[2].Raw)
	}

	return nil
}

func formatOperand(tokens []argv.Token) (uint32, error) {
	if len(tokens) < 2 {
		return 0, apperr.AtToken(apperr.KindArgument, tokens[0].Raw, 2, "missing clipboard format for")
	}

	return ParseFormat(tokens[1])
}

// FormatName resolves a display name: the standard name, else the
// registered name, else CUSTOM.
func FormatName(cb interfaces.Clipboard, format uint32) string {
	if name := StandardName(format); name != "" {
		return name
	}

	if name := cb.FormatName(format); name != "" {
		return name
	}

	return CustomFormatName
}

func (d *DataTool) list() error {
	formats, err := d.clipboard.Formats()
	if err != nil {
		return err
	}

	items := make([]string, 0, len(formats))
	for _, f := range formats {
		items = append(items, jsonout.NewObject().
			Uint("format", uint64(f)).
			String("name", FormatName(d.clipboard, f)).
			Encode())
	}

	d.log.Debug("Listed clipboard formats", slog.Int("count", len(formats)))

	_, err = fmt.Fprintln(d.out, jsonout.Array(items))
	return err
}

func (d *DataTool) get(format uint32) error {
	data, err := d.clipboard.Read(format)
	if err != nil {
		return err
	}

	if n := len(data); n > 0 && data[n-1] == 0 {
		data = data[:n-1]
	}

	d.log.Debug("Read clipboard data",
		slog.Uint64("format", uint64(format)),
		slog.Int("bytes", len(data)))

	_, err = d.out.Write(data)
	return err
}

func (d *DataTool) set(format uint32, text string) error {
	data := append([]byte(text), 0)

	if err := d.clipboard.Write(format, data); err != nil {
		return err
	}

	d.log.Debug("Wrote clipboard data",
		slog.Uint64("format", uint64(format)),
		slog.Int("bytes", len(data)))

	return nil
}
