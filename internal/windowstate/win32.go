package windowstate

// ShowWindow commands.
const (
	SW_HIDE          = 0
	SW_SHOWMINIMIZED = 2
	SW_SHOWMAXIMIZED = 3
	SW_SHOW          = 5
	SW_MINIMIZE      = 6
)

// SetWindowPos flags and insert-after handles.
const (
	SWP_NOSIZE   = 0x0001
	SWP_NOMOVE   = 0x0002
	SWP_NOZORDER = 0x0004

	HWND_TOP     = 0
	HWND_TOPMOST = -1
)

// Window style bits.
const (
	WS_POPUP        = 0x80000000
	WS_MINIMIZE     = 0x20000000
	WS_VISIBLE      = 0x10000000
	WS_CLIPSIBLINGS = 0x04000000
	WS_BORDER       = 0x00800000
	WS_VSCROLL      = 0x00200000
	WS_HSCROLL      = 0x00100000
	WS_THICKFRAME   = 0x00040000
)

// Extended window style bits.
const (
	WS_EX_TOPMOST     = 0x00000008
	WS_EX_TRANSPARENT = 0x00000020
)
