// Package monitor describes connected displays in virtual-desktop coordinates
// and provides detection backends.
package monitor

import "image"

// Monitor represents one physical display's position and size in the combined
// virtual-desktop coordinate space. A fresh list is produced on every detect
// call; there is no persistent identity beyond list ordering.
type Monitor struct {
	ID   int
	Name string
	Rect image.Rectangle
}

// VirtualDesktop returns the bounding box covering all monitor rectangles.
// An empty list yields the zero rectangle.
func VirtualDesktop(monitors []Monitor) image.Rectangle {
	var bounds image.Rectangle
	for i, m := range monitors {
		if i == 0 {
			bounds = m.Rect
			continue
		}
		bounds = bounds.Union(m.Rect)
	}
	return bounds
}

// Detector returns the current list of connected monitors.
type Detector interface {
	Detect() ([]Monitor, error)
}

// StaticDetector serves a fixed monitor list, e.g. from configuration or tests.
type StaticDetector struct {
	Monitors []Monitor
}

// Detect returns a copy of the configured monitor list.
func (d *StaticDetector) Detect() ([]Monitor, error) {
	return append([]Monitor(nil), d.Monitors...), nil
}
