package testutil

import (
	"errors"
	"fmt"

	"github.com/Norgate-AV/wintools/internal/interfaces"
)

// ErrMockFailure is the default error returned by injected failures.
var ErrMockFailure = errors.New("mock OS failure")

// MockWindow is one window on the mock desktop.
type MockWindow struct {
	Handle    interfaces.Handle
	Parent    interfaces.Handle
	Title     string
	Module    string
	ClassName string
	PID       uint32
	Thread    uint32
	Style     uint32
	ExStyle   uint32
	Visible   bool
	Unicode   bool
	Rect      interfaces.Rect
}

type ShowWindowCall struct {
	Hwnd interfaces.Handle
	Cmd  int32
}

type SetWindowPosCall struct {
	Hwnd        interfaces.Handle
	InsertAfter interfaces.Handle
	X, Y        int32
	Cx, Cy      int32
	Flags       uint32
}

// MockDesktop is an in-memory window tree implementing
// interfaces.WindowSystem. Children are kept in z-order per parent.
type MockDesktop struct {
	Windows    map[interfaces.Handle]*MockWindow
	Children   map[interfaces.Handle][]interfaces.Handle
	Foreground interfaces.Handle

	// SiblingOverrides forces NextSibling results, e.g. to build loops.
	SiblingOverrides map[interfaces.Handle]interfaces.Handle

	// Failures maps an operation name to the handles it fails for.
	Failures map[string]map[interfaces.Handle]error

	// vanishAfter closes a window after it passed IsWindow n times.
	vanishAfter map[interfaces.Handle]int

	SetForegroundCalls []interfaces.Handle
	ShowWindowCalls    []ShowWindowCall
	SetWindowPosCalls  []SetWindowPosCall

	// Calls records every mutation as "Op:hwnd" in call order.
	Calls []string
}

func NewMockDesktop() *MockDesktop {
	return &MockDesktop{
		Windows:          make(map[interfaces.Handle]*MockWindow),
		Children:         make(map[interfaces.Handle][]interfaces.Handle),
		SiblingOverrides: make(map[interfaces.Handle]interfaces.Handle),
		Failures:         make(map[string]map[interfaces.Handle]error),
		vanishAfter:      make(map[interfaces.Handle]int),
	}
}

// Helper methods for fluent configuration
func (m *MockDesktop) WithWindow(w MockWindow) *MockDesktop {
	win := w
	m.Windows[w.Handle] = &win
	m.Children[w.Parent] = append(m.Children[w.Parent], w.Handle)

	return m
}

// WithTopLevel adds plain visible top-level windows with the given handles.
func (m *MockDesktop) WithTopLevel(handles ...interfaces.Handle) *MockDesktop {
	for _, h := range handles {
		m.WithWindow(MockWindow{
			Handle:  h,
			Title:   fmt.Sprintf("Window %d", h),
			Visible: true,
			Unicode: true,
		})
	}

	return m
}

func (m *MockDesktop) WithForeground(h interfaces.Handle) *MockDesktop {
	m.Foreground = h
	return m
}

func (m *MockDesktop) WithSiblingOverride(h, next interfaces.Handle) *MockDesktop {
	m.SiblingOverrides[h] = next
	return m
}

// WithFailure makes op fail for h. op is one of "SetForeground" or "SetWindowPos".
func (m *MockDesktop) WithFailure(op string, h interfaces.Handle) *MockDesktop {
	if m.Failures[op] == nil {
		m.Failures[op] = make(map[interfaces.Handle]error)
	}

	m.Failures[op][h] = ErrMockFailure
	return m
}

// WithVanishAfter closes h once it has passed n IsWindow checks.
func (m *MockDesktop) WithVanishAfter(h interfaces.Handle, n int) *MockDesktop {
	m.vanishAfter[h] = n
	return m
}

// Close removes a window; its handle becomes invalid.
func (m *MockDesktop) Close(h interfaces.Handle) {
	delete(m.Windows, h)
}

func (m *MockDesktop) window(h interfaces.Handle) *MockWindow {
	if h == 0 {
		return nil
	}

	return m.Windows[h]
}

func (m *MockDesktop) fail(op string, h interfaces.Handle) error {
	m.Calls = append(m.Calls, fmt.Sprintf("%s:%d", op, h))

	if errs, ok := m.Failures[op]; ok {
		if err, ok := errs[h]; ok {
			return err
		}
	}

	return nil
}

func (m *MockDesktop) IsWindow(h interfaces.Handle) bool {
	if m.window(h) == nil {
		return false
	}

	if n, ok := m.vanishAfter[h]; ok {
		if n <= 0 {
			m.Close(h)
			return false
		}

		m.vanishAfter[h] = n - 1
	}

	return true
}

func (m *MockDesktop) ForegroundWindow() interfaces.Handle { return m.Foreground }

func (m *MockDesktop) FirstChild(parent interfaces.Handle) interfaces.Handle {
	if kids := m.Children[parent]; len(kids) > 0 {
		return kids[0]
	}

	return 0
}

func (m *MockDesktop) NextSibling(h interfaces.Handle) interfaces.Handle {
	if next, ok := m.SiblingOverrides[h]; ok {
		return next
	}

	w := m.window(h)
	if w == nil {
		return 0
	}

	kids := m.Children[w.Parent]
	for i, k := range kids {
		if k == h && i+1 < len(kids) {
			return kids[i+1]
		}
	}

	return 0
}

func (m *MockDesktop) Parent(h interfaces.Handle) interfaces.Handle {
	if w := m.window(h); w != nil {
		return w.Parent
	}

	return 0
}

func (m *MockDesktop) Child(h interfaces.Handle) interfaces.Handle {
	if m.window(h) == nil {
		return 0
	}

	return m.FirstChild(h)
}

func (m *MockDesktop) Title(h interfaces.Handle) string {
	if w := m.window(h); w != nil {
		return w.Title
	}

	return ""
}

func (m *MockDesktop) ModuleFileName(h interfaces.Handle) string {
	if w := m.window(h); w != nil {
		return w.Module
	}

	return ""
}

func (m *MockDesktop) ClassName(h interfaces.Handle) string {
	if w := m.window(h); w != nil {
		return w.ClassName
	}

	return ""
}

func (m *MockDesktop) ThreadProcessID(h interfaces.Handle) (uint32, uint32) {
	if w := m.window(h); w != nil {
		return w.Thread, w.PID
	}

	return 0, 0
}

func (m *MockDesktop) Style(h interfaces.Handle) uint32 {
	if w := m.window(h); w != nil {
		return w.Style
	}

	return 0
}

func (m *MockDesktop) ExStyle(h interfaces.Handle) uint32 {
	if w := m.window(h); w != nil {
		return w.ExStyle
	}

	return 0
}

func (m *MockDesktop) IsUnicode(h interfaces.Handle) bool {
	w := m.window(h)
	return w != nil && w.Unicode
}

func (m *MockDesktop) IsVisible(h interfaces.Handle) bool {
	w := m.window(h)
	return w != nil && w.Visible
}

func (m *MockDesktop) Rect(h interfaces.Handle) (interfaces.Rect, bool) {
	if w := m.window(h); w != nil {
		return w.Rect, true
	}

	return interfaces.Rect{}, false
}

func (m *MockDesktop) SetForeground(h interfaces.Handle) error {
	m.SetForegroundCalls = append(m.SetForegroundCalls, h)

	if err := m.fail("SetForeground", h); err != nil {
		return err
	}

	m.Foreground = h
	return nil
}

func (m *MockDesktop) ShowWindow(h interfaces.Handle, cmd int32) bool {
	m.ShowWindowCalls = append(m.ShowWindowCalls, ShowWindowCall{Hwnd: h, Cmd: cmd})
	m.Calls = append(m.Calls, fmt.Sprintf("ShowWindow:%d", h))

	w := m.window(h)
	if w == nil {
		return false
	}

	was := w.Visible
	w.Visible = cmd != 0

	return was
}

func (m *MockDesktop) SetWindowPos(h, insertAfter interfaces.Handle, x, y, cx, cy int32, flags uint32) error {
	m.SetWindowPosCalls = append(m.SetWindowPosCalls, SetWindowPosCall{
		Hwnd:        h,
		InsertAfter: insertAfter,
		X:           x,
		Y:           y,
		Cx:          cx,
		Cy:          cy,
		Flags:       flags,
	})

	return m.fail("SetWindowPos", h)
}

// MockProcessResolver maps pids to executable paths.
type MockProcessResolver struct {
	Paths map[uint32]string
}

func NewMockProcessResolver() *MockProcessResolver {
	return &MockProcessResolver{Paths: make(map[uint32]string)}
}

func (m *MockProcessResolver) WithPath(pid uint32, path string) *MockProcessResolver {
	m.Paths[pid] = path
	return m
}

func (m *MockProcessResolver) ExecutablePath(pid uint32) (string, error) {
	if p, ok := m.Paths[pid]; ok {
		return p, nil
	}

	return "", fmt.Errorf("process %d not found", pid)
}
