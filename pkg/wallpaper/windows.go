//go:build windows
// +build windows

package wallpaper

import (
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows/registry"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants (defined manually)
const (
	SPISetDeskWallpaper  = 0x0014
	SPIFUpdateIniFile    = 0x01
	SPIFSendWinIniChange = 0x02
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}

// setWallpaper applies the image file as the desktop background, spanning the
// virtual desktop.
func (w *windowsOS) setWallpaper(imagePath string) error {
	if err := w.setSpanStyle(); err != nil {
		return err
	}

	imagePathUTF16, err := syscall.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}

	ret, _, err := systemParametersInfo.Call(
		uintptr(SPISetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(SPIFUpdateIniFile|SPIFSendWinIniChange),
	)
	if ret == 0 {
		return err
	}
	return nil
}

// setSpanStyle configures Windows to display the wallpaper across all
// monitors (WallpaperStyle 22, no tiling).
func (w *windowsOS) setSpanStyle() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.SetStringValue("WallpaperStyle", "22"); err != nil {
		return err
	}
	return k.SetStringValue("TileWallpaper", "0")
}

// currentWallpaper reads the currently applied wallpaper path from the registry.
func (w *windowsOS) currentWallpaper() (string, bool) {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	path, _, err := k.GetStringValue("Wallpaper")
	if err != nil || path == "" {
		return "", false
	}
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
