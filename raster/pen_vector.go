package raster

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// vectorPen rasterizes with golang.org/x/image/vector.
type vectorPen struct {
	path
	ink color.Color
}

type vectorSink struct {
	r *vector.Rasterizer
}

func (s vectorSink) moveTo(x, y float32)                     { s.r.MoveTo(x, y) }
func (s vectorSink) lineTo(x, y float32)                     { s.r.LineTo(x, y) }
func (s vectorSink) quadTo(cx, cy, x, y float32)             { s.r.QuadTo(cx, cy, x, y) }
func (s vectorSink) cubeTo(c1x, c1y, c2x, c2y, x, y float32) { s.r.CubeTo(c1x, c1y, c2x, c2y, x, y) }
func (s vectorSink) closePath()                              { s.r.ClosePath() }

// Image implements Pen.
func (p *vectorPen) Image(width, height int, baseline float32) (*image.RGBA, error) {
	if err := checkSize(width, height); err != nil {
		return nil, err
	}
	r := vector.NewRasterizer(width, height)
	r.DrawOp = draw.Over
	p.replay(vectorSink{r: r}, height, baseline)

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	r.Draw(dst, dst.Bounds(), image.NewUniform(p.ink), image.Point{})
	return dst, nil
}
