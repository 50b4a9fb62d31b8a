package windowstate_test

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
	"github.com/Norgate-AV/wintools/internal/testutil"
	"github.com/Norgate-AV/wintools/internal/windowstate"
)

func run(t *testing.T, desktop *testutil.MockDesktop, args ...string) (*windowstate.Result, error) {
	t.Helper()

	req, err := windowstate.Parse(args)
	require.NoError(t, err)

	return windowstate.NewExecutor(desktop, nil, logger.NewNoOpLogger()).Run(req)
}

func handlesOf(t *testing.T, res *windowstate.Result) []string {
	t.Helper()

	out := make([]string, 0, len(res.Descriptors))
	for _, d := range res.Descriptors {
		require.True(t, strings.HasPrefix(d, `{"handle": `), d)
		rest := strings.TrimPrefix(d, `{"handle": `)
		out = append(out, rest[:strings.IndexByte(rest, ',')])
	}

	return out
}

func TestRun_DesktopQueryKeepsZOrder(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(3, 1, 2)

	res, err := run(t, desktop, "--desktop")
	require.NoError(t, err)

	assert.True(t, res.Query)
	assert.Equal(t, 3, res.Visited)
	assert.Equal(t, []string{"3", "1", "2"}, handlesOf(t, res))
	assert.True(t, strings.HasPrefix(res.JSON(), `[{"handle": 3, "title": "Window 3"`))
	assert.Empty(t, desktop.Calls, "queries never mutate")
}

func TestRun_EmptyDesktop(t *testing.T) {
	t.Parallel()

	res, err := run(t, testutil.NewMockDesktop(), "*")
	require.NoError(t, err)

	assert.Equal(t, 0, res.Visited)
	assert.Equal(t, "[]", res.JSON())
}

func TestRun_SiblingLoopTerminates(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithSiblingOverride(3, 1)

	res, err := run(t, desktop, "--desktop")
	require.NoError(t, err)

	assert.Equal(t, []string{"1", "2", "3"}, handlesOf(t, res))
}

func TestRun_SelfLoopTerminates(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1).
		WithSiblingOverride(1, 1)

	res, err := run(t, desktop, "--desktop", "--hide")
	require.NoError(t, err)

	assert.Equal(t, 1, res.Visited)
	assert.Len(t, desktop.ShowWindowCalls, 1)
}

func TestRun_ChainStopsAtClosedWindow(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithVanishAfter(2, 0)

	res, err := run(t, desktop, "--desktop")
	require.NoError(t, err)

	assert.Equal(t, []string{"1"}, handlesOf(t, res))
}

func TestRun_ParentFilter(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(10, 20).
		WithWindow(testutil.MockWindow{Handle: 11, Parent: 10}).
		WithWindow(testutil.MockWindow{Handle: 12, Parent: 10})

	res, err := run(t, desktop, "--parent", "10")
	require.NoError(t, err)

	assert.Equal(t, []string{"11", "12"}, handlesOf(t, res))
	assert.Contains(t, res.Descriptors[0], `"parent": 10`)
}

func TestRun_ParentNotFound(t *testing.T) {
	t.Parallel()

	_, err := run(t, testutil.NewMockDesktop().WithTopLevel(1), "--parent", "77")
	require.Error(t, err)

	assert.Equal(t, apperr.KindTargetNotFound, apperr.KindOf(err))
	assert.Equal(t, 3, apperr.ExitCode(err))
}

func TestRun_Foreground(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2).WithForeground(2)

	res, err := run(t, desktop, "-f")
	require.NoError(t, err)
	assert.Equal(t, []string{"2"}, handlesOf(t, res))

	_, err = run(t, testutil.NewMockDesktop().WithTopLevel(1), "-f")
	assert.Equal(t, apperr.KindTargetNotFound, apperr.KindOf(err))
}

func TestRun_HandleQueryKeepsArgumentOrder(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2, 3)

	res, err := run(t, desktop, "3", "--handle", "1")
	require.NoError(t, err)

	assert.Equal(t, []string{"3", "1"}, handlesOf(t, res))
}

func TestRun_HandleVanishesBeforeDescribe(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(5).
		WithVanishAfter(5, 1)

	res, err := run(t, desktop, "5")
	require.NoError(t, err)

	assert.Equal(t, `[{"target": 5, "error": "Window not found"}]`, res.JSON())
}

func TestRun_MissingHandleTouchesNothing(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1)

	_, err := run(t, desktop, "--handle", "1", "--handle", "99", "--move", "5", "5")
	require.Error(t, err)

	assert.Equal(t, apperr.KindTargetNotFound, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "99")
	assert.Empty(t, desktop.Calls)
}

func TestRun_ZeroHandleIsNotFound(t *testing.T) {
	t.Parallel()

	_, err := run(t, testutil.NewMockDesktop(), "0")
	assert.Equal(t, apperr.KindTargetNotFound, apperr.KindOf(err))
}

func TestRun_ApplyOrder(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1)

	res, err := run(t, desktop, "1", "--raise", "--move", "10", "20", "--hide", "--set-foreground")
	require.NoError(t, err)

	assert.False(t, res.Query)
	assert.Nil(t, res.Descriptors)
	assert.Equal(t, []string{"SetForeground:1", "ShowWindow:1", "SetWindowPos:1", "SetWindowPos:1"}, desktop.Calls)

	require.Len(t, desktop.ShowWindowCalls, 1)
	assert.Equal(t, int32(windowstate.SW_HIDE), desktop.ShowWindowCalls[0].Cmd)

	require.Len(t, desktop.SetWindowPosCalls, 2)
	assert.Equal(t, testutil.SetWindowPosCall{
		Hwnd:  1,
		X:     10,
		Y:     20,
		Flags: windowstate.SWP_NOZORDER | windowstate.SWP_NOSIZE,
	}, desktop.SetWindowPosCalls[0])
	assert.Equal(t, testutil.SetWindowPosCall{
		Hwnd:        1,
		InsertAfter: windowstate.HWND_TOP,
		Flags:       windowstate.SWP_NOMOVE | windowstate.SWP_NOSIZE,
	}, desktop.SetWindowPosCalls[1])
}

func TestRun_StrictHandleListAbortsOnFirstFailure(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2).
		WithFailure("SetWindowPos", 1)

	_, err := run(t, desktop, "--handle", "1", "--handle", "2", "--size", "640", "480")
	require.Error(t, err)

	assert.Equal(t, apperr.KindOsOperationFailed, apperr.KindOf(err))
	assert.Equal(t, 6, apperr.ExitCode(err))
	assert.ErrorIs(t, err, testutil.ErrMockFailure)
	require.Len(t, desktop.SetWindowPosCalls, 1)
	assert.Equal(t, interfaces.Handle(1), desktop.SetWindowPosCalls[0].Hwnd)
}

func TestRun_LenientChainTalliesFailures(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithFailure("SetWindowPos", 2)

	res, err := run(t, desktop, "--desktop", "--move", "0", "0")
	require.NoError(t, err)

	assert.Equal(t, 3, res.Visited)
	require.Len(t, res.Failures, 1)
	assert.Equal(t, apperr.KindOsOperationFailed, apperr.KindOf(res.Failures[0]))
	assert.Len(t, desktop.SetWindowPosCalls, 3)
}

func TestRun_LenientFailuresWarnWithTally(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithFailure("SetWindowPos", 2)

	var console bytes.Buffer
	log, err := logger.NewLogger(logger.LoggerOptions{FileDisabled: true, Console: &console})
	require.NoError(t, err)

	req, err := windowstate.Parse([]string{"--desktop", "--move", "0", "0"})
	require.NoError(t, err)

	_, err = windowstate.NewExecutor(desktop, nil, log).Run(req)
	require.NoError(t, err)

	assert.Contains(t, console.String(), "WARNING: Actions applied filter=desktop targets=3 failures=1")
}

func TestRun_CleanActionsSummaryStaysQuiet(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2)

	var console bytes.Buffer
	log, err := logger.NewLogger(logger.LoggerOptions{FileDisabled: true, Console: &console})
	require.NoError(t, err)

	req, err := windowstate.Parse([]string{"--desktop", "--move", "0", "0"})
	require.NoError(t, err)

	_, err = windowstate.NewExecutor(desktop, nil, log).Run(req)
	require.NoError(t, err)

	assert.Empty(t, console.String())
}

func TestRun_StrictChainAborts(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithFailure("SetWindowPos", 2)

	_, err := run(t, desktop, "--desktop", "--strict", "--move", "0", "0")
	require.Error(t, err)

	assert.Equal(t, apperr.KindOsOperationFailed, apperr.KindOf(err))
	assert.Len(t, desktop.SetWindowPosCalls, 2)
}

func TestRun_SetForegroundAppliesToFirstSuccess(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithTopLevel(1, 2, 3).
		WithFailure("SetForeground", 1)

	res, err := run(t, desktop, "--desktop", "--set-foreground")
	require.NoError(t, err)

	assert.Equal(t, []interfaces.Handle{1, 2}, desktop.SetForegroundCalls)
	assert.Equal(t, interfaces.Handle(2), desktop.Foreground)
	assert.Len(t, res.Failures, 1)
}

func TestRun_BringToTopMostOnce(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2)

	_, err := run(t, desktop, "--desktop", "--set-top", "--set-top-most")
	require.NoError(t, err)

	require.Len(t, desktop.SetWindowPosCalls, 1)
	assert.Equal(t, interfaces.Handle(1), desktop.SetWindowPosCalls[0].Hwnd)
	assert.Equal(t, interfaces.Handle(windowstate.HWND_TOPMOST), desktop.SetWindowPosCalls[0].InsertAfter)
}

func TestRun_ShowAndHideHitEveryTarget(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().WithTopLevel(1, 2, 3)

	_, err := run(t, desktop, "--desktop", "--minimize")
	require.NoError(t, err)

	require.Len(t, desktop.ShowWindowCalls, 3)
	for i, call := range desktop.ShowWindowCalls {
		assert.Equal(t, interfaces.Handle(i+1), call.Hwnd)
		assert.Equal(t, int32(windowstate.SW_MINIMIZE), call.Cmd)
	}
}

func TestRun_DescriptorIncludesExecutable(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop().
		WithWindow(testutil.MockWindow{Handle: 4, PID: 40, Visible: true})
	procs := testutil.NewMockProcessResolver().WithPath(40, `C:\Windows\explorer.exe`)

	req, err := windowstate.Parse([]string{"4"})
	require.NoError(t, err)

	res, err := windowstate.NewExecutor(desktop, procs, logger.NewNoOpLogger()).Run(req)
	require.NoError(t, err)

	require.Len(t, res.Descriptors, 1)
	assert.Contains(t, res.Descriptors[0], `"executable": "C:\\Windows\\explorer.exe"`)
}

func TestRun_LargeDesktop(t *testing.T) {
	t.Parallel()

	desktop := testutil.NewMockDesktop()
	want := make([]string, 0, 200)
	for h := interfaces.Handle(1); h <= 200; h++ {
		desktop.WithTopLevel(h)
		want = append(want, fmt.Sprint(h))
	}

	res, err := run(t, desktop, "--all")
	require.NoError(t, err)

	assert.Equal(t, want, handlesOf(t, res))
}
