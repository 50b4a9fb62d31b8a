//go:build windows

package winapi

import (
	"fmt"
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// windowManager implements interfaces.WindowSystem
type windowManager struct {
	log logger.LoggerInterface
}

// newWindowManager creates a new window manager
func newWindowManager(log logger.LoggerInterface) *windowManager {
	return &windowManager{log: log}
}

func hwnd(h interfaces.Handle) uintptr {
	return uintptr(h)
}

func handle(ret uintptr) interfaces.Handle {
	return interfaces.Handle(ret)
}

func (w *windowManager) IsWindow(h interfaces.Handle) bool {
	ret, _, _ := procIsWindow.Call(hwnd(h))
	return ret != 0
}

func (w *windowManager) ForegroundWindow() interfaces.Handle {
	ret, _, _ := procGetForegroundWindow.Call()
	return handle(ret)
}

// FirstChild returns the topmost child of parent; parent 0 enumerates
// top-level windows.
func (w *windowManager) FirstChild(parent interfaces.Handle) interfaces.Handle {
	ret, _, _ := procFindWindowExW.Call(hwnd(parent), 0, 0, 0)
	return handle(ret)
}

func (w *windowManager) NextSibling(h interfaces.Handle) interfaces.Handle {
	ret, _, _ := procGetWindow.Call(hwnd(h), GW_HWNDNEXT)
	return handle(ret)
}

func (w *windowManager) Parent(h interfaces.Handle) interfaces.Handle {
	ret, _, _ := procGetParent.Call(hwnd(h))
	return handle(ret)
}

func (w *windowManager) Child(h interfaces.Handle) interfaces.Handle {
	ret, _, _ := procGetWindow.Call(hwnd(h), GW_CHILD)
	return handle(ret)
}

// Title retrieves the text of a window
func (w *windowManager) Title(h interfaces.Handle) string {
	return readText(procGetWindowTextW, hwnd(h), textBufferSize)
}

func (w *windowManager) ModuleFileName(h interfaces.Handle) string {
	return readText(procGetWindowModuleFileNameW, hwnd(h), textBufferSize)
}

// ClassName retrieves the class name of a window
func (w *windowManager) ClassName(h interfaces.Handle) string {
	return readText(procGetClassNameW, hwnd(h), classNameSize)
}

func (w *windowManager) ThreadProcessID(h interfaces.Handle) (uint32, uint32) {
	var pid uint32

	ret, _, _ := procGetWindowThreadProcessId.Call(hwnd(h), uintptr(unsafe.Pointer(&pid)))
	return uint32(ret), pid
}

func (w *windowManager) Style(h interfaces.Handle) uint32 {
	ret, _, _ := procGetWindowLongW.Call(hwnd(h), gwl(GWL_STYLE))
	return uint32(ret)
}

func (w *windowManager) ExStyle(h interfaces.Handle) uint32 {
	ret, _, _ := procGetWindowLongW.Call(hwnd(h), gwl(GWL_EXSTYLE))
	return uint32(ret)
}

func (w *windowManager) IsUnicode(h interfaces.Handle) bool {
	ret, _, _ := procIsWindowUnicode.Call(hwnd(h))
	return ret != 0
}

func (w *windowManager) IsVisible(h interfaces.Handle) bool {
	ret, _, _ := procIsWindowVisible.Call(hwnd(h))
	return ret != 0
}

func (w *windowManager) Rect(h interfaces.Handle) (interfaces.Rect, bool) {
	var r windows.Rect

	ret, _, _ := procGetWindowRect.Call(hwnd(h), uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return interfaces.Rect{}, false
	}

	return interfaces.Rect{Left: r.Left, Top: r.Top, Right: r.Right, Bottom: r.Bottom}, true
}

// SetForeground brings a window to the foreground, attaching to the
// foreground thread's input queue when the plain call is refused.
func (w *windowManager) SetForeground(h interfaces.Handle) error {
	ret, _, err := procSetForegroundWindow.Call(hwnd(h))
	if ret != 0 {
		return nil
	}

	w.log.Debug("Standard SetForegroundWindow failed, trying AttachThreadInput technique",
		slog.Int64("hwnd", int64(h)),
		slog.Any("error", lastError(err)))

	fg, _, _ := procGetForegroundWindow.Call()
	if fg == 0 {
		return fmt.Errorf("SetForegroundWindow refused: %w", windows.ERROR_ACCESS_DENIED)
	}

	fgThreadID, _, _ := procGetWindowThreadProcessId.Call(fg, 0)
	selfThreadID := uintptr(windows.GetCurrentThreadId())

	if fgThreadID == 0 || fgThreadID == selfThreadID {
		return fmt.Errorf("SetForegroundWindow refused: %w", windows.ERROR_ACCESS_DENIED)
	}

	ret, _, err = procAttachThreadInput.Call(selfThreadID, fgThreadID, 1)
	if ret == 0 {
		return fmt.Errorf("AttachThreadInput failed: %w", err)
	}

	ret, _, err = procSetForegroundWindow.Call(hwnd(h))

	if detached, _, _ := procAttachThreadInput.Call(selfThreadID, fgThreadID, 0); detached == 0 {
		w.log.Warn("Failed to detach threads", slog.Uint64("fgThreadID", uint64(fgThreadID)))
	}

	if ret == 0 {
		if e := lastError(err); e != nil {
			return e
		}

		return fmt.Errorf("SetForegroundWindow refused: %w", windows.ERROR_ACCESS_DENIED)
	}

	w.log.Debug("SetForegroundWindow succeeded (with AttachThreadInput)", slog.Int64("hwnd", int64(h)))
	return nil
}

func (w *windowManager) ShowWindow(h interfaces.Handle, cmd int32) bool {
	ret, _, _ := procShowWindow.Call(hwnd(h), uintptr(cmd))
	return ret != 0
}

func (w *windowManager) SetWindowPos(h, insertAfter interfaces.Handle, x, y, cx, cy int32, flags uint32) error {
	ret, _, err := procSetWindowPos.Call(
		hwnd(h),
		hwnd(insertAfter),
		uintptr(x),
		uintptr(y),
		uintptr(cx),
		uintptr(cy),
		uintptr(flags),
	)
	if ret == 0 {
		return err
	}

	return nil
}

// readText calls one of the (hwnd, buffer, size) text getters.
func readText(proc *windows.LazyProc, h uintptr, size int) string {
	buf := make([]uint16, size)

	ret, _, _ := proc.Call(h, uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return windows.UTF16ToString(buf[:ret])
}
