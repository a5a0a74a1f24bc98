//go:build windows
// +build windows

package monitor

import (
	"fmt"
	"image"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"
)

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// iDesktopWallpaperVtbl is the IDesktopWallpaper COM vtable. Only the monitor
// enumeration slots are called here.
type iDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
}

const desktopWallpaperCLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
const desktopWallpaperIID = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"

var (
	modole32          = syscall.NewLazyDLL("ole32.dll")
	procCoTaskMemFree = modole32.NewProc("CoTaskMemFree")
)

// desktopAPIDetector enumerates monitors through the IDesktopWallpaper COM API.
type desktopAPIDetector struct{}

// NewSystemDetector returns the native monitor detector for this platform.
func NewSystemDetector() Detector {
	return &desktopAPIDetector{}
}

func (d *desktopAPIDetector) Detect() ([]Monitor, error) {
	ole.CoInitialize(0)
	defer ole.CoUninitialize()

	desktop, err := ole.CreateInstance(
		ole.NewGUID(desktopWallpaperCLSID),
		ole.NewGUID(desktopWallpaperIID))
	if err != nil {
		return nil, fmt.Errorf("creating IDesktopWallpaper instance: %w", err)
	}
	defer desktop.Release()

	vtable := (*iDesktopWallpaperVtbl)(unsafe.Pointer(desktop.RawVTable))

	var count uint32
	hr, _, _ := syscall.Syscall(
		vtable.GetMonitorDevicePathCount,
		2,
		uintptr(unsafe.Pointer(desktop)),
		uintptr(unsafe.Pointer(&count)),
		0)
	if hr != 0 {
		return nil, fmt.Errorf("unexpected value from GetMonitorDevicePathCount %d", hr)
	}

	monitors := make([]Monitor, 0, count)
	for i := uint32(0); i < count; i++ {
		var pathPtr *uint16
		hr, _, _ = syscall.Syscall(
			vtable.GetMonitorDevicePathAt,
			3,
			uintptr(unsafe.Pointer(desktop)),
			uintptr(i),
			uintptr(unsafe.Pointer(&pathPtr)))
		if hr != 0 {
			return nil, fmt.Errorf("unexpected value from GetMonitorDevicePathAt %d", hr)
		}

		name := windows.UTF16PtrToString(pathPtr)

		var r rect
		hr, _, _ = syscall.Syscall(
			vtable.GetMonitorRECT,
			3,
			uintptr(unsafe.Pointer(desktop)),
			uintptr(unsafe.Pointer(pathPtr)),
			uintptr(unsafe.Pointer(&r)))
		procCoTaskMemFree.Call(uintptr(unsafe.Pointer(pathPtr)))
		if hr != 0 {
			// Detached display device, still listed but without a rect.
			continue
		}

		monitors = append(monitors, Monitor{
			ID:   len(monitors),
			Name: name,
			Rect: image.Rect(int(r.left), int(r.top), int(r.right), int(r.bottom)),
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no active monitors reported by IDesktopWallpaper")
	}
	return monitors, nil
}
