//go:build windows

package winapi

import (
	"errors"
	"log/slog"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/logger"
)

var errNoData = errors.New("no data returned")

// clipboardManager implements interfaces.Clipboard. Every call opens the
// clipboard, performs one operation and closes it again.
type clipboardManager struct {
	log     logger.LoggerInterface
	retries int
	delay   time.Duration
}

func newClipboardManager(log logger.LoggerInterface, retries int, delay time.Duration) *clipboardManager {
	return &clipboardManager{log: log, retries: retries, delay: delay}
}

// session runs fn with the clipboard open. The clipboard is owned by the
// calling thread, so the goroutine stays locked to it until CloseClipboard.
func (c *clipboardManager) session(fn func() error) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if err := c.open(); err != nil {
		return err
	}

	defer func() {
		if ret, _, err := procCloseClipboard.Call(); ret == 0 {
			c.log.Warn("CloseClipboard failed", slog.Any("error", err))
		}
	}()

	return fn()
}

func (c *clipboardManager) open() error {
	for attempt := 0; ; attempt++ {
		ret, _, err := procOpenClipboard.Call(0)
		if ret != 0 {
			return nil
		}

		if attempt >= c.retries {
			return apperr.OSFailure("OpenClipboard", 0, err)
		}

		c.log.Debug("Clipboard busy, retrying",
			slog.Int("attempt", attempt+1),
			slog.Any("error", err))

		time.Sleep(c.delay)
	}
}

// Formats lists the available formats in enumeration order.
func (c *clipboardManager) Formats() ([]uint32, error) {
	var formats []uint32

	err := c.session(func() error {
		format := uintptr(0)

		for {
			ret, _, err := procEnumClipboardFormats.Call(format)
			if ret == 0 {
				if e := lastError(err); e != nil {
					return apperr.OSFailure("EnumClipboardFormats", 0, e)
				}

				return nil
			}

			formats = append(formats, uint32(ret))
			format = ret
		}
	})

	return formats, err
}

// FormatName returns the registered name of a custom format. Predefined
// formats have none.
func (c *clipboardManager) FormatName(format uint32) string {
	buf := make([]uint16, textBufferSize)

	ret, _, _ := procGetClipboardFormatNameW.Call(uintptr(format), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if ret == 0 {
		return ""
	}

	return windows.UTF16ToString(buf[:ret])
}

// Read copies the global memory block stored under format.
func (c *clipboardManager) Read(format uint32) ([]byte, error) {
	var data []byte

	err := c.session(func() error {
		if ret, _, _ := procIsClipboardFormatAvailable.Call(uintptr(format)); ret == 0 {
			return apperr.New(apperr.KindTargetNotFound, "clipboard format %d is not available", format)
		}

		h, _, err := procGetClipboardData.Call(uintptr(format))
		if h == 0 {
			return apperr.OSFailure("GetClipboardData", 0, orNoData(err))
		}

		size, _, err := procGlobalSize.Call(h)
		if size == 0 {
			return apperr.OSFailure("GlobalSize", 0, orNoData(err))
		}

		ptr, _, err := procGlobalLock.Call(h)
		if ptr == 0 {
			return apperr.OSFailure("GlobalLock", 0, orNoData(err))
		}

		data = make([]byte, size)
		copy(data, lockedBytes(ptr, int(size)))

		procGlobalUnlock.Call(h)

		c.log.Trace("Read clipboard block",
			slog.Uint64("format", uint64(format)),
			slog.Uint64("size", uint64(size)))

		return nil
	})

	return data, err
}

// Write empties the clipboard and stores data under format. Ownership of
// the memory block passes to the system on success.
func (c *clipboardManager) Write(format uint32, data []byte) error {
	return c.session(func() error {
		if ret, _, err := procEmptyClipboard.Call(); ret == 0 {
			return apperr.OSFailure("EmptyClipboard", 0, err)
		}

		h, _, err := procGlobalAlloc.Call(GMEM_MOVEABLE, uintptr(len(data)))
		if h == 0 {
			return apperr.OSFailure("GlobalAlloc", 0, err)
		}

		ptr, _, err := procGlobalLock.Call(h)
		if ptr == 0 {
			procGlobalFree.Call(h)
			return apperr.OSFailure("GlobalLock", 0, err)
		}

		copy(lockedBytes(ptr, len(data)), data)
		procGlobalUnlock.Call(h)

		if ret, _, err := procSetClipboardData.Call(uintptr(format), h); ret == 0 {
			procGlobalFree.Call(h)
			return apperr.OSFailure("SetClipboardData", 0, err)
		}

		c.log.Trace("Wrote clipboard block",
			slog.Uint64("format", uint64(format)),
			slog.Int("size", len(data)))

		return nil
	})
}

func orNoData(err error) error {
	if e := lastError(err); e != nil {
		return e
	}

	return errNoData
}

// lockedBytes views n bytes at ptr, an address returned by GlobalLock. The
// block lives outside the Go heap and stays fixed until GlobalUnlock, so the
// slice must not be used after the unlock.
func lockedBytes(ptr uintptr, n int) []byte {
	if n == 0 {
		return nil
	}

	return unsafe.Slice((*byte)(*(*unsafe.Pointer)(unsafe.Pointer(&ptr))), n)
}
