package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/config"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/version"
)

// Platform bundles the OS services the utilities run against.
type Platform struct {
	Windows   interfaces.WindowSystem
	Processes interfaces.ProcessResolver
	Clipboard interfaces.Clipboard
	Wallpaper interfaces.WallpaperStore
}

// platformFactory builds the OS services; tests substitute fakes.
var platformFactory = newPlatform

// runEnv is what a utility sees: its output, logger and settings.
type runEnv struct {
	out      io.Writer
	log      logger.LoggerInterface
	settings *config.Config
}

func (e *runEnv) platform() (*Platform, error) {
	return platformFactory(e.log, e.settings)
}

// utilityFunc runs one utility with its raw arguments.
type utilityFunc func(env *runEnv, args []string) error

// newUtilityCommand creates a subcommand that receives its arguments
// untouched. The utilities accept flags with any of their own prefixes,
// so cobra must not parse them.
func newUtilityCommand(name, short string, run utilityFunc) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [args...]",
		Short:              short,
		DisableFlagParsing: true,
		SilenceUsage:       true,
		SilenceErrors:      true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUtility(cmd, name, args, run)
		},
	}
}

// runUtility sets up configuration and logging, runs the utility and turns
// a failure into a logged message plus a silent exit code.
func runUtility(cmd *cobra.Command, name string, args []string, run utilityFunc) (err error) {
	settings, err := loadSettings(NewConfigFromFlags(cmd))
	if err != nil {
		return err
	}

	opts := settings.LoggerOptions()
	opts.Console = cmd.ErrOrStderr()

	log, err := logger.NewLogger(opts)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	defer log.Close()

	log.Debug("Starting "+version.Banner(name), slog.Any("args", args))

	// Recover from panics and log them
	defer func() {
		if r := recover(); r != nil {
			log.Error("PANIC RECOVERED",
				slog.Any("panic", r),
				slog.String("stack", string(debug.Stack())),
			)

			fmt.Fprintf(cmd.ErrOrStderr(), "\n*** PANIC: %v ***\n", r)
			fmt.Fprintf(cmd.ErrOrStderr(), "Check log file for details\n")

			err = apperr.Exit(apperr.ExitUsage)
		}
	}()

	env := &runEnv{
		out:      cmd.OutOrStdout(),
		log:      log,
		settings: settings,
	}

	runErr := run(env, args)
	if runErr == nil {
		return nil
	}

	code := apperr.ExitCode(runErr)

	if !apperr.IsSilent(runErr) {
		log.Error(runErr.Error())
		log.Trace("Failure classified",
			slog.String("kind", apperr.KindOf(runErr).String()),
			slog.Int("exitCode", code))
	}

	return apperr.Exit(code)
}
