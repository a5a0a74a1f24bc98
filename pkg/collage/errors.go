package collage

import "errors"

var (
	// ErrNoImages indicates the source folder is missing or holds no supported image files.
	ErrNoImages = errors.New("no images found")

	// ErrNoMonitors indicates a composition was requested with an empty monitor list.
	ErrNoMonitors = errors.New("no monitors detected")
)
