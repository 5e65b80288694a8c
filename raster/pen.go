package raster

import (
	"fmt"
	"image"
	"image/color"
)

// Pen receives an outline in font space (Y up, origin on the baseline at
// the glyph origin) and turns it into pixels.
type Pen interface {
	MoveTo(x, y float32)
	LineTo(x, y float32)
	QuadTo(cx, cy, x, y float32)
	CubeTo(c1x, c1y, c2x, c2y, x, y float32)
	ClosePath()

	// Image rasterizes everything drawn so far into a width × height
	// image. baseline is the distance of the baseline above the bottom
	// edge, so a font space point (x, y) lands on pixel
	// (x, height - baseline - y).
	Image(width, height int, baseline float32) (*image.RGBA, error)
}

// Backend selects a Pen implementation.
type Backend uint8

const (
	// BackendVector rasterizes with golang.org/x/image/vector.
	BackendVector Backend = iota

	// BackendGG rasterizes with the gogpu/gg software renderer.
	BackendGG
)

// String returns the backend name.
func (b Backend) String() string {
	switch b {
	case BackendVector:
		return "vector"
	case BackendGG:
		return "gg"
	default:
		return fmt.Sprintf("Backend(%d)", b)
	}
}

// ParseBackend parses "vector" or "gg".
func ParseBackend(s string) (Backend, error) {
	switch s {
	case "vector", "":
		return BackendVector, nil
	case "gg":
		return BackendGG, nil
	}
	return 0, fmt.Errorf("raster: unknown backend %q", s)
}

// NewPen returns an empty pen for the backend that fills with ink.
func NewPen(b Backend, ink color.Color) Pen {
	switch b {
	case BackendGG:
		return &ggPen{ink: ink}
	default:
		return &vectorPen{ink: ink}
	}
}

type pathOp uint8

const (
	opMove pathOp = iota
	opLine
	opQuad
	opCube
	opClose
)

type pathCmd struct {
	op  pathOp
	pts [6]float32
}

// path records pen commands so backends can replay them once the target
// size is known.
type path struct {
	cmds []pathCmd
}

func (p *path) MoveTo(x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opMove, pts: [6]float32{x, y}})
}

func (p *path) LineTo(x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opLine, pts: [6]float32{x, y}})
}

func (p *path) QuadTo(cx, cy, x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opQuad, pts: [6]float32{cx, cy, x, y}})
}

func (p *path) CubeTo(c1x, c1y, c2x, c2y, x, y float32) {
	p.cmds = append(p.cmds, pathCmd{op: opCube, pts: [6]float32{c1x, c1y, c2x, c2y, x, y}})
}

func (p *path) ClosePath() {
	p.cmds = append(p.cmds, pathCmd{op: opClose})
}

// sink is what a backend's native path API looks like after the font
// space → pixel transform.
type sink interface {
	moveTo(x, y float32)
	lineTo(x, y float32)
	quadTo(cx, cy, x, y float32)
	cubeTo(c1x, c1y, c2x, c2y, x, y float32)
	closePath()
}

// replay sends the recorded commands to s with Y flipped around the
// baseline.
func (p *path) replay(s sink, height int, baseline float32) {
	top := float32(height) - baseline
	ty := func(y float32) float32 { return top - y }
	for _, c := range p.cmds {
		a := c.pts
		switch c.op {
		case opMove:
			s.moveTo(a[0], ty(a[1]))
		case opLine:
			s.lineTo(a[0], ty(a[1]))
		case opQuad:
			s.quadTo(a[0], ty(a[1]), a[2], ty(a[3]))
		case opCube:
			s.cubeTo(a[0], ty(a[1]), a[2], ty(a[3]), a[4], ty(a[5]))
		case opClose:
			s.closePath()
		}
	}
}

func checkSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("raster: invalid image size %dx%d", width, height)
	}
	return nil
}
