//go:build !windows
// +build !windows

package monitor

import "errors"

// unsupportedDetector is used on platforms without native monitor detection.
// Callers fall back to the static monitor list from configuration.
type unsupportedDetector struct{}

// NewSystemDetector returns the native monitor detector for this platform.
func NewSystemDetector() Detector {
	return &unsupportedDetector{}
}

func (d *unsupportedDetector) Detect() ([]Monitor, error) {
	return nil, errors.New("native monitor detection is not supported on this platform; configure [[display.monitors]] in settings.toml")
}
