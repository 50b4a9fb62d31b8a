// Package interfaces defines core interfaces for dependency injection and testing.
package interfaces

// Handle is an opaque window handle. Zero means "no window" except where an
// operation documents it as the desktop.
type Handle int64

// Rect is a window rectangle in screen coordinates.
type Rect struct {
	Left   int32
	Top    int32
	Right  int32
	Bottom int32
}

// IsZero reports whether every edge is zero.
func (r Rect) IsZero() bool {
	return r == Rect{}
}

// WindowQuerier reads window state. Lookups on a stale handle return zero
// values rather than errors.
type WindowQuerier interface {
	IsWindow(h Handle) bool
	ForegroundWindow() Handle
	// FirstChild returns the first child of parent; parent 0 is the desktop.
	FirstChild(parent Handle) Handle
	NextSibling(h Handle) Handle
	Parent(h Handle) Handle
	Child(h Handle) Handle
	Title(h Handle) string
	ModuleFileName(h Handle) string
	ClassName(h Handle) string
	ThreadProcessID(h Handle) (thread uint32, pid uint32)
	Style(h Handle) uint32
	ExStyle(h Handle) uint32
	IsUnicode(h Handle) bool
	IsVisible(h Handle) bool
	Rect(h Handle) (Rect, bool)
}

// WindowMutator changes window state.
type WindowMutator interface {
	SetForeground(h Handle) error
	// ShowWindow reports whether the window was previously visible. The
	// result is informational and never a failure.
	ShowWindow(h Handle, cmd int32) bool
	SetWindowPos(h Handle, insertAfter Handle, x, y, cx, cy int32, flags uint32) error
}

// WindowSystem is the full window capability used by window-state.
type WindowSystem interface {
	WindowQuerier
	WindowMutator
}

// ProcessResolver maps a process id to its executable path.
type ProcessResolver interface {
	ExecutablePath(pid uint32) (string, error)
}

// Clipboard reads and writes clipboard formats. Each call is one
// open/close session.
type Clipboard interface {
	Formats() ([]uint32, error)
	// FormatName returns the registered name of a custom format, or "".
	FormatName(format uint32) string
	Read(format uint32) ([]byte, error)
	Write(format uint32, data []byte) error
}

// WallpaperStore reads and applies the desktop wallpaper path.
type WallpaperStore interface {
	Wallpaper() (string, error)
	SetWallpaper(path string) error
}
