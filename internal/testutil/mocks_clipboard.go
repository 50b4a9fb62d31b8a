package testutil

import (
	"github.com/Norgate-AV/wintools/internal/apperr"
)

// MockClipboard keeps formats in insertion order. Write replaces the whole
// clipboard, like EmptyClipboard followed by SetClipboardData.
type MockClipboard struct {
	Data     map[uint32][]byte
	Order    []uint32
	Names    map[uint32]string
	OpenErr  error
	WriteErr error

	Writes []ClipboardWrite
}

type ClipboardWrite struct {
	Format uint32
	Data   []byte
}

func NewMockClipboard() *MockClipboard {
	return &MockClipboard{
		Data:  make(map[uint32][]byte),
		Names: make(map[uint32]string),
	}
}

func (m *MockClipboard) WithData(format uint32, data []byte) *MockClipboard {
	if _, ok := m.Data[format]; !ok {
		m.Order = append(m.Order, format)
	}

	m.Data[format] = data
	return m
}

func (m *MockClipboard) WithName(format uint32, name string) *MockClipboard {
	m.Names[format] = name
	return m
}

func (m *MockClipboard) WithOpenError(err error) *MockClipboard {
	m.OpenErr = err
	return m
}

func (m *MockClipboard) WithWriteError(err error) *MockClipboard {
	m.WriteErr = err
	return m
}

func (m *MockClipboard) open() error {
	if m.OpenErr != nil {
		return apperr.OSFailure("OpenClipboard", 0, m.OpenErr)
	}

	return nil
}

func (m *MockClipboard) Formats() ([]uint32, error) {
	if err := m.open(); err != nil {
		return nil, err
	}

	return append([]uint32(nil), m.Order...), nil
}

func (m *MockClipboard) FormatName(format uint32) string {
	return m.Names[format]
}

func (m *MockClipboard) Read(format uint32) ([]byte, error) {
	if err := m.open(); err != nil {
		return nil, err
	}

	data, ok := m.Data[format]
	if !ok {
		return nil, apperr.New(apperr.KindTargetNotFound, "clipboard format %d is not available", format)
	}

	return append([]byte(nil), data...), nil
}

func (m *MockClipboard) Write(format uint32, data []byte) error {
	if err := m.open(); err != nil {
		return err
	}

	if m.WriteErr != nil {
		return apperr.OSFailure("SetClipboardData", 0, m.WriteErr)
	}

	m.Writes = append(m.Writes, ClipboardWrite{Format: format, Data: append([]byte(nil), data...)})
	m.Data = map[uint32][]byte{format: append([]byte(nil), data...)}
	m.Order = []uint32{format}

	return nil
}

// MockWallpaper stores the wallpaper path in memory.
type MockWallpaper struct {
	Path     string
	GetErr   error
	SetErr   error
	SetCalls []string
}

func NewMockWallpaper() *MockWallpaper {
	return &MockWallpaper{}
}

func (m *MockWallpaper) WithPath(path string) *MockWallpaper {
	m.Path = path
	return m
}

func (m *MockWallpaper) WithGetError(err error) *MockWallpaper {
	m.GetErr = err
	return m
}

func (m *MockWallpaper) WithSetError(err error) *MockWallpaper {
	m.SetErr = err
	return m
}

func (m *MockWallpaper) Wallpaper() (string, error) {
	if m.GetErr != nil {
		return "", m.GetErr
	}

	return m.Path, nil
}

func (m *MockWallpaper) SetWallpaper(path string) error {
	m.SetCalls = append(m.SetCalls, path)

	if m.SetErr != nil {
		return m.SetErr
	}

	m.Path = path
	return nil
}
