package font

import (
	"math"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Point is a point of a glyph outline in font units, Y axis up.
type Point struct {
	X, Y float32
}

// Segment is one path operation of a glyph outline.
type Segment struct {
	// Op is the segment operation type.
	Op SegmentOp

	// Points contains the control and end points for this segment.
	// - MoveTo, LineTo: Points[0] is the target point
	// - QuadTo: Points[0] is control, Points[1] is target
	// - CubeTo: Points[0], Points[1] are controls, Points[2] is target
	Points [3]Point
}

// SegmentOp is the type of path operation.
type SegmentOp uint8

const (
	// SegmentMoveTo starts a new contour.
	SegmentMoveTo SegmentOp = iota

	// SegmentLineTo draws a line to the target point.
	SegmentLineTo

	// SegmentQuadTo draws a quadratic bezier curve.
	SegmentQuadTo

	// SegmentCubeTo draws a cubic bezier curve.
	SegmentCubeTo
)

// String returns a string representation of the operation.
func (op SegmentOp) String() string {
	switch op {
	case SegmentMoveTo:
		return "MoveTo"
	case SegmentLineTo:
		return "LineTo"
	case SegmentQuadTo:
		return "QuadTo"
	case SegmentCubeTo:
		return "CubeTo"
	default:
		return "Unknown"
	}
}

// Bounds is an axis-aligned box in font units.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// Empty reports whether the box has no area.
func (b Bounds) Empty() bool {
	return b.MinX >= b.MaxX || b.MinY >= b.MaxY
}

// Outline is the vector outline of a glyph plus its advance width.
type Outline struct {
	// GID is the glyph this outline belongs to.
	GID GlyphIndex

	// Segments make up one or more closed contours.
	Segments []Segment

	// Advance is the horizontal advance width in font units.
	Advance float32
}

// IsEmpty returns true if the outline has no segments.
func (o *Outline) IsEmpty() bool {
	return o == nil || len(o.Segments) == 0
}

// Bounds returns the control box of the outline. Control points are
// included, so for curves the box may be slightly larger than the ink.
func (o *Outline) Bounds() Bounds {
	if o.IsEmpty() {
		return Bounds{}
	}
	b := Bounds{
		MinX: math.MaxFloat32, MinY: math.MaxFloat32,
		MaxX: -math.MaxFloat32, MaxY: -math.MaxFloat32,
	}
	for _, seg := range o.Segments {
		for _, p := range seg.Points[:seg.Op.pointCount()] {
			b.MinX = min(b.MinX, p.X)
			b.MinY = min(b.MinY, p.Y)
			b.MaxX = max(b.MaxX, p.X)
			b.MaxY = max(b.MaxY, p.Y)
		}
	}
	return b
}

// Scale returns a new outline with all coordinates and the advance scaled
// by factor.
func (o *Outline) Scale(factor float32) *Outline {
	if o == nil {
		return nil
	}
	scaled := &Outline{
		GID:      o.GID,
		Segments: make([]Segment, len(o.Segments)),
		Advance:  o.Advance * factor,
	}
	for i, seg := range o.Segments {
		scaled.Segments[i] = Segment{
			Op: seg.Op,
			Points: [3]Point{
				{X: seg.Points[0].X * factor, Y: seg.Points[0].Y * factor},
				{X: seg.Points[1].X * factor, Y: seg.Points[1].Y * factor},
				{X: seg.Points[2].X * factor, Y: seg.Points[2].Y * factor},
			},
		}
	}
	return scaled
}

func (op SegmentOp) pointCount() int {
	switch op {
	case SegmentQuadTo:
		return 2
	case SegmentCubeTo:
		return 3
	default:
		return 1
	}
}

// convertSegments converts x/image segments (Y down, 26.6 fixed point at
// ppem = unitsPerEm) into font units with the Y axis up.
func convertSegments(segs sfnt.Segments) []Segment {
	out := make([]Segment, 0, len(segs))
	for _, s := range segs {
		var seg Segment
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			seg.Op = SegmentMoveTo
		case sfnt.SegmentOpLineTo:
			seg.Op = SegmentLineTo
		case sfnt.SegmentOpQuadTo:
			seg.Op = SegmentQuadTo
		case sfnt.SegmentOpCubeTo:
			seg.Op = SegmentCubeTo
		default:
			continue
		}
		for i := range seg.Op.pointCount() {
			seg.Points[i] = fixedPoint(s.Args[i])
		}
		out = append(out, seg)
	}
	return out
}

func fixedPoint(p fixed.Point26_6) Point {
	return Point{X: fixedToFloat32(p.X), Y: -fixedToFloat32(p.Y)}
}

// fixedToFloat32 converts fixed.Int26_6 to float32.
func fixedToFloat32(x fixed.Int26_6) float32 {
	return float32(x) / 64.0
}
