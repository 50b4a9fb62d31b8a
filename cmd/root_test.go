package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/clipboard"
	"github.com/Norgate-AV/wintools/internal/config"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/testutil"
	"github.com/Norgate-AV/wintools/internal/version"
	"github.com/Norgate-AV/wintools/internal/windowstate"
)

// resetFlags resets all flags to their default values between tests
func resetFlags() {
	_ = RootCmd.PersistentFlags().Set("verbose", "false")
	_ = RootCmd.PersistentFlags().Set("logs", "false")
	_ = RootCmd.Flags().Set("help", "false")
	_ = RootCmd.Flags().Set("version", "false")
}

type result struct {
	code   int
	stdout string
	stderr string
}

// execute runs Main against a fake platform with captured output. A nil
// platform makes every OS access fail as on an unsupported system.
func execute(t *testing.T, p *Platform, argv ...string) result {
	t.Helper()

	testutil.IsolateEnv(t)
	resetFlags()

	original := platformFactory
	platformFactory = func(logger.LoggerInterface, *config.Config) (*Platform, error) {
		if p == nil {
			return nil, apperr.New(apperr.KindUnsupportedPlatform, "no platform in test")
		}

		return p, nil
	}

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)

	t.Cleanup(func() {
		platformFactory = original
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
		resetFlags()
	})

	code := Main(argv)

	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func desktopPlatform(desktop *testutil.MockDesktop) *Platform {
	return &Platform{
		Windows:   desktop,
		Processes: testutil.NewMockProcessResolver(),
		Clipboard: testutil.NewMockClipboard(),
		Wallpaper: testutil.NewMockWallpaper(),
	}
}

const editorJSON = `[{"handle": 5, "title": "Editor", "parent": 0, "pid": 0, "thread": 0, ` +
	`"visible": false, "unicode": false}]` + "\n"

func TestDispatchArgs(t *testing.T) {
	tests := []struct {
		name string
		argv []string
		want []string
	}{
		{"multi-call name", []string{"wintools.exe", "window-state", "-l"}, []string{"window-state", "-l"}},
		{"windows path", []string{`C:\Tools\Window-State.EXE`, "--handle", "5"}, []string{"window-state", "--handle", "5"}},
		{"unix path", []string{"/usr/local/bin/clipboard-text", "-r"}, []string{"clipboard-text", "-r"}},
		{"utility without arguments", []string{"desktop-background.exe"}, []string{"desktop-background"}},
		{"unrelated name", []string{"clipboard-data.bak", "--list"}, []string{"--list"}},
		{"empty", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DispatchArgs(tt.argv))
		})
	}
}

func TestMain_WindowStateQuery(t *testing.T) {
	desktop := testutil.NewMockDesktop().WithWindow(testutil.MockWindow{Handle: 5, Title: "Editor"})

	res := execute(t, desktopPlatform(desktop), "wintools", "window-state", "--handle", "5")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, editorJSON, res.stdout)
}

func TestMain_ModifierOnlyPrintsEmptyList(t *testing.T) {
	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2)

	res := execute(t, desktopPlatform(desktop), "wintools", "window-state", "--strict")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "[]\n", res.stdout)
}

func TestMain_UtilityExecutableName(t *testing.T) {
	desktop := testutil.NewMockDesktop().WithWindow(testutil.MockWindow{Handle: 5, Title: "Editor"})

	res := execute(t, desktopPlatform(desktop), `C:\bin\window-state.exe`, "5")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, editorJSON, res.stdout)
}

func TestMain_WindowStateAction(t *testing.T) {
	desktop := testutil.NewMockDesktop().WithWindow(testutil.MockWindow{Handle: 5, Visible: true})

	res := execute(t, desktopPlatform(desktop), "wintools", "window-state", "--handle", "5", "--minimize")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Empty(t, res.stdout)

	require.Len(t, desktop.ShowWindowCalls, 1)
	assert.Equal(t, testutil.ShowWindowCall{Hwnd: 5, Cmd: windowstate.SW_MINIMIZE}, desktop.ShowWindowCalls[0])
}

func TestMain_TargetNotFound(t *testing.T) {
	res := execute(t, desktopPlatform(testutil.NewMockDesktop()), "wintools", "window-state", "--handle", "999")

	assert.Equal(t, apperr.KindTargetNotFound.ExitCode(), res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, "ERROR: target handle 999 was not found")
}

func TestMain_ArgumentErrorsPrecedePlatform(t *testing.T) {
	res := execute(t, nil, "wintools", "window-state", "--handle", "5", "--bogus")

	assert.Equal(t, apperr.KindArgument.ExitCode(), res.code)
	assert.Contains(t, res.stderr, `"--bogus"`)
}

func TestMain_UnsupportedPlatform(t *testing.T) {
	res := execute(t, nil, "wintools", "window-state", "--desktop")

	assert.Equal(t, apperr.KindUnsupportedPlatform.ExitCode(), res.code)
	assert.Contains(t, res.stderr, "ERROR: no platform in test")
}

func TestMain_WindowStateHelp(t *testing.T) {
	res := execute(t, nil, "wintools", "window-state", "--help")
	assert.Equal(t, 0, res.code)
	assert.Equal(t, windowstate.Usage, res.stdout)

	res = execute(t, nil, "wintools", "window-state", "--desktop", "-h")
	assert.Equal(t, apperr.ExitUsage, res.code)
	assert.Equal(t, windowstate.Usage, res.stdout)
	assert.Empty(t, res.stderr)
}

func TestMain_ClipboardText(t *testing.T) {
	p := desktopPlatform(testutil.NewMockDesktop())
	p.Clipboard = testutil.NewMockClipboard().WithData(clipboard.CF_TEXT, []byte("hello\x00"))

	res := execute(t, p, "wintools", "clipboard-text", "--read")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, "hello", res.stdout)
}

func TestMain_ClipboardDataSet(t *testing.T) {
	cb := testutil.NewMockClipboard()
	p := desktopPlatform(testutil.NewMockDesktop())
	p.Clipboard = cb

	res := execute(t, p, "clipboard-data.exe", "--set", "13", "hi")

	assert.Equal(t, 0, res.code, res.stderr)
	require.Len(t, cb.Writes, 1)
	assert.Equal(t, uint32(13), cb.Writes[0].Format)
}

func TestMain_DesktopBackgroundFailure(t *testing.T) {
	p := desktopPlatform(testutil.NewMockDesktop())
	p.Wallpaper = testutil.NewMockWallpaper().
		WithSetError(apperr.OSFailure("SystemParametersInfoW", 0, errors.New("denied")))

	res := execute(t, p, "wintools", "desktop-background", "--set", `C:\a.jpg`)

	assert.Equal(t, apperr.KindOsOperationFailed.ExitCode(), res.code)
	assert.Equal(t, `{"error": "OS operation failed"}`+"\n", res.stdout)
	assert.Empty(t, res.stderr, "the JSON error is the only report")
}

func TestMain_VerboseFlag(t *testing.T) {
	desktop := testutil.NewMockDesktop().WithWindow(testutil.MockWindow{Handle: 5, Title: "Editor"})

	res := execute(t, desktopPlatform(desktop), "wintools", "-V", "window-state", "5")

	assert.Equal(t, 0, res.code, res.stderr)
	assert.Equal(t, editorJSON, res.stdout)
	assert.Contains(t, res.stderr, "VERBOSE: Starting window-state")
}

func TestMain_NoArguments(t *testing.T) {
	res := execute(t, nil, "wintools")

	assert.Equal(t, apperr.ExitUsage, res.code)
	assert.Contains(t, res.stdout, "wintools <utility> [args...]")

	for _, name := range []string{"window-state", "clipboard-text", "clipboard-data", "desktop-background"} {
		assert.Contains(t, res.stdout, name)
	}
}

func TestMain_UnknownUtility(t *testing.T) {
	res := execute(t, nil, "wintools", "paint")

	assert.Equal(t, apperr.KindArgument.ExitCode(), res.code)
	assert.Empty(t, res.stdout)
	assert.Contains(t, res.stderr, `ERROR: unknown utility "paint" at index 1`)

	res = execute(t, nil, "wintools", "-V", "paint")

	assert.Equal(t, apperr.KindArgument.ExitCode(), res.code)
	assert.Contains(t, res.stderr, `unknown utility "paint"`)
}

func TestMain_Version(t *testing.T) {
	res := execute(t, nil, "wintools", "--version")

	assert.Equal(t, 0, res.code)
	assert.Contains(t, res.stdout, version.GetFullVersion(), "Should print version information")
}

func TestMain_InvalidConfig(t *testing.T) {
	dir := testutil.IsolateEnv(t)
	path := testutil.CreateTestFile(t, dir, "config.yaml", "log:\n  max_size: -1\n")
	t.Setenv(config.PathEnv, path)

	resetFlags()

	var stdout, stderr bytes.Buffer
	RootCmd.SetOut(&stdout)
	RootCmd.SetErr(&stderr)

	t.Cleanup(func() {
		RootCmd.SetOut(nil)
		RootCmd.SetErr(nil)
	})

	code := Main([]string{"wintools", "window-state", "--desktop"})

	assert.Equal(t, apperr.ExitUsage, code)
	assert.Contains(t, stderr.String(), "ERROR: failed to load configuration")
	assert.Empty(t, stdout.String())
}

// TestHandleLogsFlag tests the --logs flag functionality
func TestHandleLogsFlag(t *testing.T) {
	dir := testutil.IsolateEnv(t)

	testContent := "Test log content\nLine 2\nLine 3"
	logPath := filepath.Join(dir, logger.AppName, logger.AppName+".log")
	require.NoError(t, os.MkdirAll(filepath.Dir(logPath), 0o755))
	require.NoError(t, os.WriteFile(logPath, []byte(testContent), 0o644))

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)

	exitCalled := false
	exitCode := -1

	err := handleLogsFlag(cmd, &Config{ShowLogs: true}, func(code int) {
		exitCalled = true
		exitCode = code
	})
	require.NoError(t, err)

	assert.True(t, exitCalled, "Should call exit function for --logs flag")
	assert.Equal(t, 0, exitCode, "Should exit with code 0 for --logs")
	assert.Equal(t, testContent, out.String(), "Should print log file content to stdout")
}

func TestHandleLogsFlag_NoLogFile(t *testing.T) {
	testutil.IsolateEnv(t)

	var errOut bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetErr(&errOut)

	exitCode := -1
	err := handleLogsFlag(cmd, &Config{ShowLogs: true}, func(code int) { exitCode = code })
	require.NoError(t, err)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, errOut.String(), "Log file does not exist")
}

func TestHandleLogsFlag_NotRequested(t *testing.T) {
	t.Parallel()

	err := handleLogsFlag(&cobra.Command{}, &Config{}, func(int) {
		t.Fatal("exit must not be called")
	})

	assert.NoError(t, err)
}

// TestRootCmd_Flags tests flag parsing
func TestRootCmd_Flags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		args            []string
		expectedVerbose bool
		expectedLogs    bool
	}{
		{name: "no flags", args: []string{}},
		{name: "verbose flag short", args: []string{"-V"}, expectedVerbose: true},
		{name: "verbose flag long", args: []string{"--verbose"}, expectedVerbose: true},
		{name: "logs flag short", args: []string{"-l"}, expectedLogs: true},
		{name: "logs flag long", args: []string{"--logs"}, expectedLogs: true},
		{name: "all flags", args: []string{"--verbose", "--logs"}, expectedVerbose: true, expectedLogs: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			// Create a new command instance to avoid flag conflicts
			cmd := &cobra.Command{Use: "test"}
			cmd.PersistentFlags().BoolP("verbose", "V", false, "enable verbose output")
			cmd.PersistentFlags().BoolP("logs", "l", false, "print log file")

			require.NoError(t, cmd.ParseFlags(tt.args), "Flag parsing should not error")

			cfg := NewConfigFromFlags(cmd)
			assert.Equal(t, tt.expectedVerbose, cfg.Verbose, "Verbose flag mismatch")
			assert.Equal(t, tt.expectedLogs, cfg.ShowLogs, "Logs flag mismatch")
		})
	}
}

func TestRunUtility_RecoversPanic(t *testing.T) {
	testutil.IsolateEnv(t)
	resetFlags()

	var stderr bytes.Buffer
	cmd := &cobra.Command{Use: "boom"}
	cmd.SetErr(&stderr)

	err := runUtility(cmd, "boom", nil, func(*runEnv, []string) error {
		panic("kaboom")
	})

	assert.True(t, apperr.IsSilent(err))
	assert.Equal(t, apperr.ExitUsage, apperr.ExitCode(err))
	assert.Contains(t, stderr.String(), "*** PANIC: kaboom ***")
}
