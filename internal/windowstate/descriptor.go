package windowstate

import (
	"log/slog"

	"github.com/Norgate-AV/wintools/internal/interfaces"
	"github.com/Norgate-AV/wintools/internal/jsonout"
	"github.com/Norgate-AV/wintools/internal/logger"
)

// Descriptor is a snapshot of one window's attributes.
type Descriptor struct {
	Handle     interfaces.Handle
	Title      string
	Module     string
	Executable string
	ClassName  string
	Parent     interfaces.Handle
	Sibling    interfaces.Handle
	Child      interfaces.Handle
	PID        uint32
	Thread     uint32
	Style      uint32
	ExStyle    uint32
	Visible    bool
	Unicode    bool
	Rect       interfaces.Rect
}

// Collect snapshots h. The executable path is resolved through procs when
// it is non-nil; a failed lookup leaves the field empty.
func Collect(ws interfaces.WindowQuerier, procs interfaces.ProcessResolver, log logger.LoggerInterface, h interfaces.Handle) Descriptor {
	d := Descriptor{
		Handle:    h,
		Title:     ws.Title(h),
		Module:    ws.ModuleFileName(h),
		ClassName: ws.ClassName(h),
		Parent:    ws.Parent(h),
		Sibling:   ws.NextSibling(h),
		Child:     ws.Child(h),
		Style:     ws.Style(h),
		ExStyle:   ws.ExStyle(h),
		Visible:   ws.IsVisible(h),
		Unicode:   ws.IsUnicode(h),
	}

	d.Thread, d.PID = ws.ThreadProcessID(h)

	if rect, ok := ws.Rect(h); ok {
		d.Rect = rect
	}

	if procs != nil && d.PID != 0 {
		exe, err := procs.ExecutablePath(d.PID)
		if err != nil {
			log.Trace("Could not resolve executable",
				slog.Uint64("pid", uint64(d.PID)),
				slog.Any("error", err))
		}

		d.Executable = exe
	}

	return d
}

func (d Descriptor) Popup() bool      { return d.Style&WS_POPUP != 0 }
func (d Descriptor) Contained() bool  { return d.Style&WS_CLIPSIBLINGS != 0 }
func (d Descriptor) Bordered() bool   { return d.Style&(WS_BORDER|WS_THICKFRAME) != 0 }
func (d Descriptor) Scrollable() bool { return d.Style&(WS_HSCROLL|WS_VSCROLL) != 0 }
func (d Descriptor) Minimized() bool  { return d.Style&WS_MINIMIZE != 0 }
func (d Descriptor) TopMost() bool    { return d.ExStyle&WS_EX_TOPMOST != 0 }

func (d Descriptor) Transparent() bool { return d.ExStyle&WS_EX_TRANSPARENT != 0 }

// VisibleAlt reports whether the WS_VISIBLE bit disagrees with IsWindowVisible,
// which happens for visible windows whose owner is hidden.
func (d Descriptor) VisibleAlt() bool {
	return (d.Style&WS_VISIBLE != 0) != d.Visible
}

// Encode renders the descriptor. Empty strings, zero sibling/child handles,
// zero style words and false flags are omitted; the rectangle is emitted
// only when some edge is non-zero. Style words are printed as the signed
// 32-bit values the OS returns.
func (d Descriptor) Encode() string {
	obj := jsonout.NewObject().
		Int("handle", int64(d.Handle)).
		StringIf("title", d.Title).
		StringIf("module", d.Module).
		StringIf("executable", d.Executable).
		StringIf("classname", d.ClassName).
		Int("parent", int64(d.Parent)).
		IntIf("sibling", int64(d.Sibling)).
		IntIf("child", int64(d.Child)).
		Uint("pid", uint64(d.PID)).
		Uint("thread", uint64(d.Thread)).
		IntIf("style", int64(int32(d.Style))).
		IntIf("exstyle", int64(int32(d.ExStyle))).
		Bool("visible", d.Visible).
		Bool("unicode", d.Unicode).
		Flag("popup", d.Popup()).
		Flag("contained", d.Contained()).
		Flag("bordered", d.Bordered()).
		Flag("scrollable", d.Scrollable()).
		Flag("visible_alt", d.VisibleAlt()).
		Flag("minimized", d.Minimized()).
		Flag("topmost", d.TopMost()).
		Flag("transparent", d.Transparent())

	if !d.Rect.IsZero() {
		obj.Int("top", int64(d.Rect.Top)).
			Int("right", int64(d.Rect.Right)).
			Int("bottom", int64(d.Rect.Bottom)).
			Int("left", int64(d.Rect.Left))
	}

	return obj.Encode()
}

// NotFound renders the placeholder emitted for a handle that vanished
// before it could be described.
func NotFound(h interfaces.Handle) string {
	return jsonout.NewObject().
		Int("target", int64(h)).
		String("error", "Window not found").
		Encode()
}
