//go:build !windows && !linux
// +build !windows,!linux

package wallpaper

import "errors"

// defaultOS implements the OS interface for unsupported platforms.
type defaultOS struct{}

// getOS returns a new instance of the defaultOS struct.
func getOS() OS {
	return &defaultOS{}
}

func (d *defaultOS) setWallpaper(imagePath string) error {
	return errors.New("setting the desktop background is not supported on this platform")
}

func (d *defaultOS) currentWallpaper() (string, bool) {
	return "", false
}
