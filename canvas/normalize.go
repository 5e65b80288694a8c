package canvas

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// ErrInvalidGlyphDimensions is returned when the input image has no area or
// the options cannot produce a canvas.
var ErrInvalidGlyphDimensions = errors.New("canvas: invalid glyph dimensions")

// DefaultCanvasSize is the side of the canonical canvas in pixels.
const DefaultCanvasSize = 200

// Options configures Normalize.
type Options struct {
	// MaxDimension is the length in pixels of the scaled image's longer side.
	MaxDimension int

	// CanvasSize is the side of the square output canvas. It must be at
	// least MaxDimension.
	CanvasSize int

	// Background fills the canvas where the glyph is transparent.
	// Nil means white.
	Background color.Color

	// Filter is the resampling kernel.
	Filter Filter
}

// DefaultOptions returns a 200 px white canvas with the glyph scaled to
// 100 px and Lanczos resampling.
func DefaultOptions() Options {
	return Options{
		MaxDimension: DefaultCanvasSize / 2,
		CanvasSize:   DefaultCanvasSize,
		Background:   color.White,
		Filter:       FilterLanczos,
	}
}

func (o Options) validate() error {
	if o.CanvasSize <= 0 || o.MaxDimension <= 0 {
		return fmt.Errorf("%w: canvas %d, max %d", ErrInvalidGlyphDimensions, o.CanvasSize, o.MaxDimension)
	}
	if o.MaxDimension > o.CanvasSize {
		return fmt.Errorf("%w: max dimension %d exceeds canvas %d", ErrInvalidGlyphDimensions, o.MaxDimension, o.CanvasSize)
	}
	return nil
}

// ProportionalSize returns the size of a w × h image scaled so that its
// longer side is maxDim, keeping the aspect ratio. The shorter side is
// rounded to the nearest pixel and is at least 1.
func ProportionalSize(w, h, maxDim int) (sw, sh int, err error) {
	if w <= 0 || h <= 0 || maxDim <= 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d to %d", ErrInvalidGlyphDimensions, w, h, maxDim)
	}
	ratio := float64(w) / float64(h)
	if w > h {
		return maxDim, max(1, int(math.Round(float64(maxDim)/ratio))), nil
	}
	return max(1, int(math.Round(float64(maxDim)*ratio))), maxDim, nil
}

// Normalize scales img proportionally so that its longer side equals
// MaxDimension, then composites it centred onto a CanvasSize square filled
// with Background, using the glyph's alpha as the mask.
//
// When the scaled size equals the input size the pixels are copied
// unchanged, so normalizing an opaque CanvasSize square with MaxDimension
// equal to CanvasSize is the identity.
func Normalize(img image.Image, o Options) (*image.RGBA, error) {
	if err := o.validate(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	sw, sh, err := ProportionalSize(b.Dx(), b.Dy(), o.MaxDimension)
	if err != nil {
		return nil, err
	}

	var scaled image.Image = img
	if sw != b.Dx() || sh != b.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, sw, sh))
		o.Filter.Interpolator().Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
		scaled = dst
	}

	bg := o.Background
	if bg == nil {
		bg = color.White
	}
	c := o.CanvasSize
	out := image.NewRGBA(image.Rect(0, 0, c, c))
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	off := image.Pt((c-sw)/2, (c-sh)/2)
	r := image.Rectangle{Min: off, Max: off.Add(image.Pt(sw, sh))}
	draw.Draw(out, r, scaled, scaled.Bounds().Min, draw.Over)
	return out, nil
}
