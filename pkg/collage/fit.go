package collage

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"

	// Register decoders for the supported extensions beyond jpeg/png.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Fit produces a new image of exactly width x height from src under the given
// fit mode. FitSpan is normalized to FitFill. Unused area in FitContain and
// FitCenter is filled with black.
func Fit(src image.Image, width, height int, mode FitMode) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("target rectangle must have positive dimensions, got %dx%d", width, height)
	}

	switch mode {
	case FitStretch:
		return imaging.Resize(src, width, height, imaging.Lanczos), nil
	case FitCenter:
		canvas := imaging.New(width, height, color.Black)
		return imaging.PasteCenter(canvas, src), nil
	case FitFill, FitSpan:
		return imaging.Fill(src, width, height, imaging.Center, imaging.Lanczos), nil
	case FitContain:
		resized := imaging.Fit(src, width, height, imaging.Lanczos)
		canvas := imaging.New(width, height, color.Black)
		return imaging.PasteCenter(canvas, resized), nil
	default:
		return nil, fmt.Errorf("unknown fit mode: %v", mode)
	}
}

// SmartFill behaves like FitFill but picks the crop window with a saliency
// analysis instead of center-cropping.
func SmartFill(src image.Image, width, height int) (*image.NRGBA, error) {
	analyzer := smartcrop.NewAnalyzer(&lanczosResizer{})
	topCrop, err := analyzer.FindBestCrop(src, width, height)
	if err != nil {
		return nil, fmt.Errorf("finding best crop: %w", err)
	}
	cropped := imaging.Crop(src, topCrop)
	return imaging.Resize(cropped, width, height, imaging.Lanczos), nil
}

// lanczosResizer implements the smartcrop.Resizer interface.
type lanczosResizer struct{}

func (r *lanczosResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}
