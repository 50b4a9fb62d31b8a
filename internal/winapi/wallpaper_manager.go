//go:build windows

package winapi

import (
	"log/slog"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"

	"github.com/Norgate-AV/wintools/internal/apperr"
	"github.com/Norgate-AV/wintools/internal/logger"
)

const (
	desktopKey     = `Control Panel\Desktop`
	wallpaperValue = "Wallpaper"
)

// wallpaperManager implements interfaces.WallpaperStore against the
// per-user desktop registry key.
type wallpaperManager struct {
	log logger.LoggerInterface
}

func newWallpaperManager(log logger.LoggerInterface) *wallpaperManager {
	return &wallpaperManager{log: log}
}

func registryFailure(msg, op string, err error) *apperr.Error {
	return &apperr.Error{Kind: apperr.KindOsOperationFailed, Msg: msg, Op: op, Err: err}
}

// Wallpaper reads the configured wallpaper path. An unset value reads as "".
func (m *wallpaperManager) Wallpaper() (string, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, desktopKey, registry.QUERY_VALUE)
	if err != nil {
		return "", registryFailure("Could not open registry for reading", "RegOpenKeyEx", err)
	}
	defer key.Close()

	path, valType, err := key.GetStringValue(wallpaperValue)
	if err != nil {
		return "", registryFailure("Could not read registry value after opening", "RegQueryValueEx", err)
	}

	m.log.Debug("Read wallpaper registry value",
		slog.String("path", path),
		slog.Uint64("type", uint64(valType)))

	return path, nil
}

// SetWallpaper stores path and notifies running applications.
func (m *wallpaperManager) SetWallpaper(path string) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, desktopKey, registry.SET_VALUE)
	if err != nil {
		return registryFailure("Could not open registry to write", "RegOpenKeyEx", err)
	}
	defer key.Close()

	if err := key.SetStringValue(wallpaperValue, path); err != nil {
		return registryFailure("Could not set registry value", "RegSetValueEx", err)
	}

	ptr, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return &apperr.Error{Kind: apperr.KindInvalidArgument, Msg: "Path contains a NUL character", Err: err}
	}

	// The stored value still applies at next logon if the broadcast is refused.
	ret, _, err := procSystemParametersInfoW.Call(
		SPI_SETDESKWALLPAPER,
		0,
		uintptr(unsafe.Pointer(ptr)),
		SPIF_UPDATEINIFILE|SPIF_SENDCHANGE,
	)
	if ret == 0 {
		m.log.Warn("SystemParametersInfoW did not apply the wallpaper", slog.Any("error", err))
	}

	return nil
}
