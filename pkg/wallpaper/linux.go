//go:build linux
// +build linux

package wallpaper

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// linuxOS implements the OS interface for Linux.
type linuxOS struct{}

// getOS returns a new instance of the linuxOS struct.
func getOS() OS {
	return &linuxOS{}
}

// setWallpaper sets the desktop wallpaper on Linux, supporting X11 and some
// Wayland compositors.
func (l *linuxOS) setWallpaper(imagePath string) error {
	desktopEnv := os.Getenv("XDG_CURRENT_DESKTOP")
	if desktopEnv == "" {
		desktopEnv = os.Getenv("DESKTOP_SESSION")
	}
	desktopEnv = strings.ToLower(desktopEnv)

	if os.Getenv("WAYLAND_DISPLAY") != "" && strings.Contains(desktopEnv, "sway") {
		return l.setWallpaperSway(imagePath)
	}

	switch {
	case strings.Contains(desktopEnv, "gnome") || strings.Contains(desktopEnv, "unity") || strings.Contains(desktopEnv, "cinnamon"):
		return l.setWallpaperGNOME(imagePath)
	case strings.Contains(desktopEnv, "xfce"):
		return l.setWallpaperXFCE(imagePath)
	default:
		return fmt.Errorf("unsupported desktop environment: %s", desktopEnv)
	}
}

// setWallpaperGNOME sets the wallpaper for GNOME-based desktop environments.
// The spanned style maps to gsettings' picture-options.
func (l *linuxOS) setWallpaperGNOME(imagePath string) error {
	cmd := exec.Command("gsettings", "set", "org.gnome.desktop.background", "picture-uri", fmt.Sprintf("file://%s", imagePath))
	if err := cmd.Run(); err != nil {
		return err
	}
	return exec.Command("gsettings", "set", "org.gnome.desktop.background", "picture-options", "spanned").Run()
}

// setWallpaperXFCE sets the wallpaper for XFCE.
func (l *linuxOS) setWallpaperXFCE(imagePath string) error {
	cmd := exec.Command("xfconf-query", "--channel", "xfce4-desktop",
		"--property", "/backdrop/screen0/monitor0/workspace0/last-image",
		"--set", imagePath)
	return cmd.Run()
}

// setWallpaperSway sets the wallpaper under the sway compositor.
func (l *linuxOS) setWallpaperSway(imagePath string) error {
	cmd := exec.Command("swaymsg", "output", "*", "bg", imagePath, "fill")
	return cmd.Run()
}

// currentWallpaper is not resolvable portably on Linux; the applier falls back
// to its own last output file.
func (l *linuxOS) currentWallpaper() (string, bool) {
	return "", false
}
