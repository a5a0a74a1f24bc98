// Package wallpaper persists a composed canvas as a bitmap file and notifies
// the host OS to redraw the desktop background, optionally with a cross-fade
// transition.
package wallpaper

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
)

// OS interface defines the operating system specific operations.
type OS interface {
	setWallpaper(path string) error
	currentWallpaper() (string, bool)
}

// OutputName is the fixed output filename for the composed bitmap.
const OutputName = "wallpaper_collage.bmp"

const (
	fadeFrames = 8
	fadeDelay  = 150 * time.Millisecond
	fadeNameA  = "_fade_a.bmp"
	fadeNameB  = "_fade_b.bmp"
)

// Applier writes the finished canvas to the output folder and applies it as
// the desktop background.
type Applier struct {
	os        OS
	outputDir string

	// Testing hook
	sleep func(time.Duration)
}

// NewApplier creates an applier writing into outputDir.
func NewApplier(outputDir string) *Applier {
	return &Applier{
		os:        getOS(),
		outputDir: outputDir,
		sleep:     time.Sleep,
	}
}

// Apply saves the canvas as a bitmap and sets it as the wallpaper. With fadeIn
// it first blends the currently applied wallpaper toward the new canvas over a
// few intermediate frames. Returns the path of the written bitmap.
func (a *Applier) Apply(canvas image.Image, fadeIn bool) (string, error) {
	if err := os.MkdirAll(a.outputDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	out := filepath.Join(a.outputDir, OutputName)

	if fadeIn {
		if prev := a.previousCanvas(canvas.Bounds()); prev != nil {
			if err := a.crossFade(prev, canvas); err != nil {
				return "", err
			}
		}
	}

	return out, a.saveAndSet(canvas, out)
}

// previousCanvas loads the currently applied wallpaper scaled to the new
// canvas size, or nil when there is nothing usable to fade from.
func (a *Applier) previousCanvas(bounds image.Rectangle) image.Image {
	path, ok := a.os.currentWallpaper()
	if !ok {
		path = filepath.Join(a.outputDir, OutputName)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil
	}
	if img.Bounds().Dx() != bounds.Dx() || img.Bounds().Dy() != bounds.Dy() {
		img = imaging.Resize(img, bounds.Dx(), bounds.Dy(), imaging.Lanczos)
	}
	return img
}

// crossFade applies intermediate blend frames. Two alternating temp filenames
// force the OS to re-read the image on every frame.
func (a *Applier) crossFade(old, next image.Image) error {
	tmpA := filepath.Join(a.outputDir, fadeNameA)
	tmpB := filepath.Join(a.outputDir, fadeNameB)
	defer os.Remove(tmpA)
	defer os.Remove(tmpB)

	for i := 1; i <= fadeFrames; i++ {
		alpha := float64(i) / fadeFrames
		frame := imaging.Overlay(old, next, image.Point{}, alpha)

		tmp := tmpA
		if i%2 == 0 {
			tmp = tmpB
		}
		if err := a.saveAndSet(frame, tmp); err != nil {
			return err
		}
		a.sleep(fadeDelay)
	}
	return nil
}

// saveAndSet encodes the image as BMP at path and applies it.
func (a *Applier) saveAndSet(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("writing bitmap: %w", err)
	}
	if err := bmp.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encoding bitmap: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	if err := a.os.setWallpaper(path); err != nil {
		return fmt.Errorf("setting wallpaper: %w", err)
	}
	return nil
}
