package cmd

import (
	"fmt"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/clipboard"
	"github.com/Norgate-AV/wintools/internal/wallpaper"
	"github.com/Norgate-AV/wintools/internal/windowstate"
)

var (
	windowStateCmd = newUtilityCommand("window-state",
		"Describe windows as JSON or change their state", runWindowState)

	clipboardTextCmd = newUtilityCommand("clipboard-text",
		"Read and write clipboard text", runClipboardText)

	clipboardDataCmd = newUtilityCommand("clipboard-data",
		"List, read and write clipboard data of any format", runClipboardData)

	desktopBackgroundCmd = newUtilityCommand("desktop-background",
		"Get or set the desktop background image", runDesktopBackground)
)

func runWindowState(env *runEnv, args []string) error {
	// Arguments are fully resolved before any OS call.
	req, err := windowstate.Parse(args)
	if err != nil {
		return err
	}

	if req.Help {
		fmt.Fprint(env.out, windowstate.Usage)

		if req.HelpExit != apperr.ExitOK {
			return apperr.Exit(req.HelpExit)
		}

		return nil
	}

	p, err := env.platform()
	if err != nil {
		return err
	}

	res, err := windowstate.NewExecutor(p.Windows, p.Processes, env.log).Run(req)
	if err != nil {
		return err
	}

	if res.Query {
		fmt.Fprintln(env.out, res.JSON())
	}

	return nil
}

func runClipboardText(env *runEnv, args []string) error {
	p, err := env.platform()
	if err != nil {
		return err
	}

	return clipboard.NewTextTool(p.Clipboard, env.out, env.log).Run(args)
}

func runClipboardData(env *runEnv, args []string) error {
	p, err := env.platform()
	if err != nil {
		return err
	}

	return clipboard.NewDataTool(p.Clipboard, env.out, env.log).Run(args)
}

func runDesktopBackground(env *runEnv, args []string) error {
	p, err := env.platform()
	if err != nil {
		return err
	}

	return wallpaper.NewTool(p.Wallpaper, env.out, env.log).Run(args)
}
