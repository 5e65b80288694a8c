package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/gogpu/fontmap/font"
)

// GlyphSource supplies glyph outlines. *font.Font implements it.
type GlyphSource interface {
	Glyph(gid font.GlyphIndex) (*font.Outline, error)
}

// Option configures a Rasterizer.
type Option func(*config)

type config struct {
	backend   Backend
	ink       color.Color
	scale     float32
	maxPixels int
}

func defaultConfig() config {
	return config{
		backend:   BackendVector,
		ink:       color.Black,
		scale:     1,
		maxPixels: 1 << 26,
	}
}

// WithBackend selects the pen backend. The default is BackendVector.
func WithBackend(b Backend) Option {
	return func(c *config) {
		c.backend = b
	}
}

// WithInk sets the glyph fill colour. The default is opaque black.
func WithInk(ink color.Color) Option {
	return func(c *config) {
		if ink != nil {
			c.ink = ink
		}
	}
}

// WithScale sets pixels per font unit. The default 1 makes the raw image
// exactly advance × (ascent - descent) pixels. Non-positive values are
// ignored.
func WithScale(s float32) Option {
	return func(c *config) {
		if s > 0 {
			c.scale = s
		}
	}
}

// WithMaxPixels bounds width × height of a raw image.
func WithMaxPixels(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxPixels = n
		}
	}
}

// Rasterizer turns glyph outlines into raw glyph images.
// It is stateless apart from its options and safe for concurrent use.
type Rasterizer struct {
	cfg config
}

// New creates a Rasterizer.
func New(opts ...Option) *Rasterizer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Rasterizer{cfg: cfg}
}

// Backend returns the configured backend.
func (r *Rasterizer) Backend() Backend {
	return r.cfg.backend
}

// Render rasterizes the glyph of e into an image of
// ceil(advance·scale) × ceil((ascent - descent)·scale) pixels. Failures are
// returned as *GlyphRenderError.
func (r *Rasterizer) Render(src GlyphSource, e font.Entry, m font.Metrics) (*image.RGBA, error) {
	fail := func(err error) error {
		return &GlyphRenderError{Codepoint: e.Codepoint, ID: e.ID, Err: err}
	}

	outline, err := src.Glyph(e.GID)
	if err != nil {
		return nil, fail(err)
	}
	if outline.Advance <= 0 {
		return nil, fail(ErrNonPositiveAdvance)
	}
	if outline.IsEmpty() || outline.Bounds().Empty() {
		return nil, fail(ErrNoOutline)
	}

	s := r.cfg.scale
	width := int(math.Ceil(float64(outline.Advance * s)))
	height := int(math.Ceil(float64(float32(m.Height()) * s)))
	if height <= 0 {
		return nil, fail(fmt.Errorf("raster: line height %d is not positive", m.Height()))
	}
	if width*height > r.cfg.maxPixels {
		return nil, fail(fmt.Errorf("%w: %dx%d", ErrImageTooLarge, width, height))
	}
	if s != 1 {
		outline = outline.Scale(s)
	}

	pen := NewPen(r.cfg.backend, r.cfg.ink)
	Draw(pen, outline)
	img, err := pen.Image(width, height, float32(m.Baseline())*s)
	if err != nil {
		return nil, fail(err)
	}
	return img, nil
}

// Draw sends the outline's segments to pen, closing every contour.
func Draw(pen Pen, o *font.Outline) {
	open := false
	for _, seg := range o.Segments {
		p := seg.Points
		switch seg.Op {
		case font.SegmentMoveTo:
			if open {
				pen.ClosePath()
			}
			pen.MoveTo(p[0].X, p[0].Y)
			open = true
		case font.SegmentLineTo:
			pen.LineTo(p[0].X, p[0].Y)
		case font.SegmentQuadTo:
			pen.QuadTo(p[0].X, p[0].Y, p[1].X, p[1].Y)
		case font.SegmentCubeTo:
			pen.CubeTo(p[0].X, p[0].Y, p[1].X, p[1].Y, p[2].X, p[2].Y)
		}
	}
	if open {
		pen.ClosePath()
	}
}

// toRGBA converts any image to *image.RGBA with origin (0, 0).
func toRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}
