package collage

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Mosaic/pkg/monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// saveSolid writes a solid-color PNG; mtimes descend in call order so
// sequential selection follows it.
func saveSolid(t *testing.T, dir, name string, c color.NRGBA, order int) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, imaging.Save(imaging.New(64, 64, c), path))
	mtime := time.Now().Add(-time.Duration(order) * time.Hour)
	require.NoError(t, os.Chtimes(path, mtime, mtime))
}

func TestComposeSingleMonitorQuad(t *testing.T) {
	dir := t.TempDir()
	saveSolid(t, dir, "a.png", white, 0)
	saveSolid(t, dir, "b.png", white, 1)
	saveSolid(t, dir, "c.png", white, 2)
	saveSolid(t, dir, "d.png", white, 3)

	engine := NewEngine(NewMemoryStore())
	comp, err := engine.Compose(Request{
		Folder: dir,
		Mode:   FitFill,
		Count:  4,
		Policy: SelectionSequential,
		Monitors: []monitor.Monitor{
			{ID: 0, Rect: image.Rect(0, 0, 192, 108)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 192, comp.Canvas.Bounds().Dx())
	assert.Equal(t, 108, comp.Canvas.Bounds().Dy())
	assert.Len(t, comp.Used, 4)

	// Four white quadrants tile the monitor exactly.
	for _, pt := range []image.Point{{48, 27}, {144, 27}, {48, 81}, {144, 81}, {0, 0}, {191, 107}} {
		colorNear(t, comp.Canvas, pt.X, pt.Y, white)
	}
}

func TestComposeTwoMonitorOffsets(t *testing.T) {
	dir := t.TempDir()
	blue := color.NRGBA{B: 255, A: 255}
	saveSolid(t, dir, "first.png", red, 0)
	saveSolid(t, dir, "second.png", blue, 1)

	engine := NewEngine(NewMemoryStore())
	comp, err := engine.Compose(Request{
		Folder: dir,
		Mode:   FitFill,
		Count:  1,
		Policy: SelectionSequential,
		Monitors: []monitor.Monitor{
			{ID: 0, Rect: image.Rect(0, 0, 96, 54)},
			{ID: 1, Rect: image.Rect(96, 0, 150, 150)},
		},
	})
	require.NoError(t, err)

	// Canvas covers the bounding box of both monitors.
	assert.Equal(t, 150, comp.Canvas.Bounds().Dx())
	assert.Equal(t, 150, comp.Canvas.Bounds().Dy())
	require.Len(t, comp.Used, 2)

	colorNear(t, comp.Canvas, 48, 27, red)   // monitor 0 content
	colorNear(t, comp.Canvas, 120, 75, blue) // monitor 1 content
	// Below monitor 0 lies outside every monitor: black canvas.
	colorNear(t, comp.Canvas, 48, 100, color.NRGBA{A: 255})
}

func TestComposeNegativeOriginMonitors(t *testing.T) {
	dir := t.TempDir()
	saveSolid(t, dir, "a.png", white, 0)
	saveSolid(t, dir, "b.png", white, 1)

	engine := NewEngine(NewMemoryStore())
	comp, err := engine.Compose(Request{
		Folder: dir,
		Mode:   FitStretch,
		Count:  1,
		Policy: SelectionSequential,
		Monitors: []monitor.Monitor{
			{ID: 0, Rect: image.Rect(-100, -50, 0, 50)},
			{ID: 1, Rect: image.Rect(0, -50, 100, 50)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 200, comp.Canvas.Bounds().Dx())
	assert.Equal(t, 100, comp.Canvas.Bounds().Dy())
	colorNear(t, comp.Canvas, 50, 50, white)
	colorNear(t, comp.Canvas, 150, 50, white)
}

func TestComposeSameForAll(t *testing.T) {
	dir := t.TempDir()
	saveSolid(t, dir, "a.png", red, 0)
	saveSolid(t, dir, "b.png", white, 1)

	engine := NewEngine(NewMemoryStore())
	comp, err := engine.Compose(Request{
		Folder:     dir,
		Mode:       FitFill,
		Count:      1,
		Policy:     SelectionSequential,
		SameForAll: true,
		Monitors: []monitor.Monitor{
			{ID: 0, Rect: image.Rect(0, 0, 50, 50)},
			{ID: 1, Rect: image.Rect(50, 0, 100, 50)},
		},
	})
	require.NoError(t, err)

	// One image selected, reused on both monitors.
	require.Len(t, comp.Used, 1)
	colorNear(t, comp.Canvas, 25, 25, red)
	colorNear(t, comp.Canvas, 75, 25, red)
}

func TestComposeNoMonitors(t *testing.T) {
	engine := NewEngine(NewMemoryStore())
	_, err := engine.Compose(Request{Folder: t.TempDir(), Count: 1})
	assert.True(t, errors.Is(err, ErrNoMonitors))
}

func TestComposeDecodeFailureAborts(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not an image"), 0644))

	engine := NewEngine(NewMemoryStore())
	_, err := engine.Compose(Request{
		Folder:   dir,
		Mode:     FitFill,
		Count:    1,
		Policy:   SelectionSequential,
		Monitors: []monitor.Monitor{{ID: 0, Rect: image.Rect(0, 0, 50, 50)}},
	})
	assert.Error(t, err)
}

func TestReplayLengthMismatch(t *testing.T) {
	engine := NewEngine(NewMemoryStore())
	_, err := engine.Replay(Request{
		Count:    2,
		Monitors: []monitor.Monitor{{ID: 0, Rect: image.Rect(0, 0, 50, 50)}},
	}, []string{"only-one.png"})
	assert.Error(t, err)
}

func TestReplayReproducesComposition(t *testing.T) {
	dir := t.TempDir()
	saveSolid(t, dir, "a.png", red, 0)

	engine := NewEngine(NewMemoryStore())
	req := Request{
		Folder:   dir,
		Mode:     FitFill,
		Count:    1,
		Policy:   SelectionSequential,
		Monitors: []monitor.Monitor{{ID: 0, Rect: image.Rect(0, 0, 40, 40)}},
	}
	comp, err := engine.Compose(req)
	require.NoError(t, err)

	replayed, err := engine.Replay(req, comp.Used)
	require.NoError(t, err)
	assert.Equal(t, comp.Canvas.Pix, replayed.Canvas.Pix)
}
