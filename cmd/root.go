package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/config"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/version"
)

var (
	// exitFunc ends the process after --logs; defaults to os.Exit
	exitFunc = os.Exit

	// loadConfig reads the file and environment configuration
	loadConfig = config.Load
)

// RootCmd is the root command for the wintools CLI application.
var RootCmd = &cobra.Command{
	Use:               "wintools <utility> [args...]",
	Short:             "wintools - Inspect and control desktop windows, the clipboard and the wallpaper",
	Version:           version.GetFullVersion(),
	TraverseChildren:  true,
	PersistentPreRunE: handleRootFlags,
	RunE:              runRoot,
	SilenceUsage:      true, // Don't show usage on runtime errors
	SilenceErrors:     true, // Main prints errors through the ERROR: prefix
}

func init() {
	// Set custom version template to show full version info
	RootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	RootCmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolP("logs", "l", false, "print the current log file to stdout and exit")

	// Traverse looks flags up in Flags() before persistent flags are merged
	// into it; without this "-V window-state" would treat the utility name
	// as the flag's value.
	RootCmd.Flags().AddFlagSet(RootCmd.PersistentFlags())

	RootCmd.AddCommand(windowStateCmd, clipboardTextCmd, clipboardDataCmd, desktopBackgroundCmd)
}

// Main runs the application for the full process argument list and returns
// the process exit code.
func Main(argv []string) int {
	RootCmd.SetArgs(DispatchArgs(argv))

	err := RootCmd.Execute()
	if err != nil && !apperr.IsSilent(err) {
		fmt.Fprintf(RootCmd.ErrOrStderr(), "ERROR: %v\n", err)
	}

	return apperr.ExitCode(err)
}

// DispatchArgs turns the process arguments into root command arguments.
// An executable named after a utility (window-state.exe and so on) runs
// that utility directly.
func DispatchArgs(argv []string) []string {
	if len(argv) == 0 {
		return []string{}
	}

	name := argv[0]
	if i := strings.LastIndexAny(name, `\/`); i >= 0 {
		name = name[i+1:]
	}

	name = strings.TrimSuffix(strings.ToLower(name), ".exe")

	for _, c := range RootCmd.Commands() {
		if c.Name() == name {
			return append([]string{name}, argv[1:]...)
		}
	}

	return argv[1:]
}

func handleRootFlags(cmd *cobra.Command, _ []string) error {
	return handleLogsFlag(cmd, NewConfigFromFlags(cmd), exitFunc)
}

// handleLogsFlag processes the --logs flag and exits if needed
func handleLogsFlag(cmd *cobra.Command, cfg *Config, exit func(int)) error {
	if !cfg.ShowLogs {
		return nil
	}

	// A broken config still lets the default log be printed.
	opts := logger.LoggerOptions{}
	if settings, err := loadSettings(cfg); err == nil {
		opts = settings.LoggerOptions()
	}

	if err := logger.PrintLogFile(cmd.OutOrStdout(), opts); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(cmd.ErrOrStderr(), "Log file does not exist: %s\n", logger.GetLogPath(opts))
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "ERROR: %v\n", err)
		}

		exit(1)
		return nil
	}

	exit(0)
	return nil // Won't actually reach here due to exit
}

// runRoot runs when no utility was named, or when the first argument names
// no known utility.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return apperr.AtToken(apperr.KindArgument, args[0], 1, "unknown utility")
	}

	_ = cmd.Help()
	return apperr.Exit(apperr.ExitUsage)
}
