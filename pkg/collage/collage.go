// Package collage composes a multi-monitor wallpaper canvas from a folder of
// source pictures: it selects images, partitions each monitor into a grid,
// fits every image to its cell and pastes the result onto one canvas sized to
// the virtual desktop.
package collage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/Mosaic/pkg/monitor"
)

// Request is the input bundle for one composition.
type Request struct {
	Folder     string
	Mode       FitMode
	Count      int // images per monitor
	Policy     SelectionPolicy
	SameForAll bool // every monitor reuses the same images in the same cell order
	SmartCrop  bool // saliency crop instead of center crop for fill/span
	Monitors   []monitor.Monitor
}

// Composition is the result of one compose call: the finished canvas and the
// ordered list of image paths actually used, so a caller can replay it.
type Composition struct {
	Canvas *image.NRGBA
	Used   []string
}

// Engine runs the composition pipeline. It holds no mutable state beyond what
// the selector persists on disk.
type Engine struct {
	selector *Selector
}

// NewEngine creates an engine whose selector persists state in the given store.
func NewEngine(store StateStore) *Engine {
	return &Engine{selector: NewSelector(store)}
}

// Selector exposes the engine's selector for last-applied bookkeeping.
func (e *Engine) Selector() *Selector {
	return e.selector
}

// Compose selects images for the request and builds the canvas.
func (e *Engine) Compose(req Request) (*Composition, error) {
	if len(req.Monitors) == 0 {
		return nil, ErrNoMonitors
	}

	count := req.Count
	if count < 1 {
		count = 1
	}
	need := count
	if !req.SameForAll {
		need = count * len(req.Monitors)
	}

	paths, err := e.selector.Pick(req.Folder, need, req.Policy)
	if err != nil {
		return nil, err
	}
	return e.Replay(req, paths)
}

// Replay builds the canvas from an explicit image list, e.g. the Used list of
// a previous composition. The list length must match what Compose would have
// selected for the request.
func (e *Engine) Replay(req Request, paths []string) (*Composition, error) {
	if len(req.Monitors) == 0 {
		return nil, ErrNoMonitors
	}

	count := req.Count
	if count < 1 {
		count = 1
	}
	need := count
	if !req.SameForAll {
		need = count * len(req.Monitors)
	}
	if len(paths) != need {
		return nil, fmt.Errorf("composition needs %d images, got %d", need, len(paths))
	}

	bounds := monitor.VirtualDesktop(req.Monitors)
	canvas := imaging.New(bounds.Dx(), bounds.Dy(), color.Black)

	idx := 0
	for _, mon := range req.Monitors {
		cells, err := ComputeGrid(count, mon.Rect.Dx(), mon.Rect.Dy())
		if err != nil {
			return nil, fmt.Errorf("monitor %d: %w", mon.ID, err)
		}
		for j, cell := range cells {
			srcIdx := idx
			if req.SameForAll {
				srcIdx = j
			}

			src, err := imaging.Open(paths[srcIdx])
			if err != nil {
				return nil, fmt.Errorf("opening %s: %w", paths[srcIdx], err)
			}
			fitted, err := e.fitCell(src, cell.Dx(), cell.Dy(), req)
			if err != nil {
				return nil, fmt.Errorf("fitting %s: %w", paths[srcIdx], err)
			}

			pos := image.Pt(
				mon.Rect.Min.X-bounds.Min.X+cell.Min.X,
				mon.Rect.Min.Y-bounds.Min.Y+cell.Min.Y,
			)
			canvas = imaging.Paste(canvas, fitted, pos)

			if !req.SameForAll {
				idx++
			}
		}
	}

	return &Composition{Canvas: canvas, Used: paths}, nil
}

func (e *Engine) fitCell(src image.Image, width, height int, req Request) (*image.NRGBA, error) {
	if req.SmartCrop && (req.Mode == FitFill || req.Mode == FitSpan) {
		return SmartFill(src, width, height)
	}
	return Fit(src, width, height, req.Mode)
}
