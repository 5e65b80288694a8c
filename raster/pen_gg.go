package raster

import (
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// ggPen rasterizes with the gogpu/gg software renderer.
type ggPen struct {
	path
	ink color.Color
}

type ggSink struct {
	dc *gg.Context
}

func (s ggSink) moveTo(x, y float32) { s.dc.MoveTo(float64(x), float64(y)) }
func (s ggSink) lineTo(x, y float32) { s.dc.LineTo(float64(x), float64(y)) }
func (s ggSink) quadTo(cx, cy, x, y float32) {
	s.dc.QuadraticTo(float64(cx), float64(cy), float64(x), float64(y))
}
func (s ggSink) cubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	s.dc.CubicTo(float64(c1x), float64(c1y), float64(c2x), float64(c2y), float64(x), float64(y))
}
func (s ggSink) closePath() { s.dc.ClosePath() }

// Image implements Pen.
func (p *ggPen) Image(width, height int, baseline float32) (*image.RGBA, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	dc.SetColor(p.ink)
	dc.SetFillRule(gg.FillRuleNonZero)
	p.replay(ggSink{dc: dc}, height, baseline)
	if err := dc.Fill(); err != nil {
		return nil, fmt.Errorf("raster: gg fill: %w", err)
	}

	img := dc.Image()
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	return toRGBA(img), nil
}
