//go:build windows

// Package winapi implements the wintools capability interfaces on top of
// user32, kernel32 and the registry.
package winapi

import (
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procFindWindowExW            = user32.NewProc("FindWindowExW")
	procGetWindow                = user32.NewProc("GetWindow")
	procGetParent                = user32.NewProc("GetParent")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowModuleFileNameW = user32.NewProc("GetWindowModuleFileNameW")
	procGetClassNameW            = user32.NewProc("GetClassNameW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowLongW           = user32.NewProc("GetWindowLongW")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsWindowUnicode          = user32.NewProc("IsWindowUnicode")
	procIsWindowVisible          = user32.NewProc("IsWindowVisible")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
	procShowWindow               = user32.NewProc("ShowWindow")
	procSetWindowPos             = user32.NewProc("SetWindowPos")

	procOpenClipboard              = user32.NewProc("OpenClipboard")
	procCloseClipboard             = user32.NewProc("CloseClipboard")
	procEmptyClipboard             = user32.NewProc("EmptyClipboard")
	procEnumClipboardFormats       = user32.NewProc("EnumClipboardFormats")
	procGetClipboardFormatNameW    = user32.NewProc("GetClipboardFormatNameW")
	procIsClipboardFormatAvailable = user32.NewProc("IsClipboardFormatAvailable")
	procGetClipboardData           = user32.NewProc("GetClipboardData")
	procSetClipboardData           = user32.NewProc("SetClipboardData")

	procSystemParametersInfoW = user32.NewProc("SystemParametersInfoW")

	procGlobalAlloc  = kernel32.NewProc("GlobalAlloc")
	procGlobalFree   = kernel32.NewProc("GlobalFree")
	procGlobalLock   = kernel32.NewProc("GlobalLock")
	procGlobalUnlock = kernel32.NewProc("GlobalUnlock")
	procGlobalSize   = kernel32.NewProc("GlobalSize")
)

const (
	GW_HWNDNEXT = 2
	GW_CHILD    = 5

	GWL_STYLE   = -16
	GWL_EXSTYLE = -20

	GMEM_MOVEABLE = 0x0002

	SPI_SETDESKWALLPAPER = 0x0014
	SPIF_UPDATEINIFILE   = 0x0001
	SPIF_SENDCHANGE      = 0x0002

	// textBufferSize bounds titles, module paths and format names.
	textBufferSize = 1024
	classNameSize  = 256
)

// gwl converts a negative GWL_* index to the uintptr argument form.
func gwl(index int32) uintptr {
	return uintptr(index)
}

// lastError extracts a meaningful error from a proc.Call result; a zero
// errno means the call failed without setting one.
func lastError(err error) error {
	if errno, ok := err.(windows.Errno); ok && errno == 0 {
		return nil
	}

	return err
}
