// Package fonttest provides an in-memory font.ParsedFont with exact,
// hand-written geometry for tests.
package fonttest

import (
	"errors"
	"sync/atomic"

	"github.com/gogpu/fontmap/font"
)

// ErrNoSuchGlyph is returned by Glyph for indices past the glyph table.
var ErrNoSuchGlyph = errors.New("fonttest: no such glyph")

// Glyph is one synthetic glyph.
type Glyph struct {
	Name     string
	Advance  float32
	Segments []font.Segment

	// Err, when set, is returned by ParsedFont.Glyph.
	Err error

	// Panic, when set, makes ParsedFont.Glyph panic with this value.
	Panic any
}

// Font is a synthetic font.ParsedFont. Glyph 0 is .notdef by convention.
type Font struct {
	Name    string
	UPEM    int
	Ascent  int
	Descent int
	Glyphs  []Glyph
	Chars   map[rune]font.GlyphIndex

	// CmapErr, when set, is returned by Cmap.
	CmapErr error

	// GlyphCalls counts Glyph invocations.
	GlyphCalls atomic.Int64
}

var _ font.ParsedFont = (*Font)(nil)

// FullName implements font.ParsedFont.
func (f *Font) FullName() string { return f.Name }

// NumGlyphs implements font.ParsedFont.
func (f *Font) NumGlyphs() int { return len(f.Glyphs) }

// UnitsPerEm implements font.ParsedFont.
func (f *Font) UnitsPerEm() int {
	if f.UPEM == 0 {
		return 1000
	}
	return f.UPEM
}

// Cmap implements font.ParsedFont.
func (f *Font) Cmap() (map[rune]font.GlyphIndex, error) {
	if f.CmapErr != nil {
		return nil, f.CmapErr
	}
	out := make(map[rune]font.GlyphIndex, len(f.Chars))
	for r, g := range f.Chars {
		out[r] = g
	}
	return out, nil
}

// GlyphName implements font.ParsedFont.
func (f *Font) GlyphName(gid font.GlyphIndex) string {
	if int(gid) >= len(f.Glyphs) {
		return ""
	}
	return f.Glyphs[gid].Name
}

// Metrics implements font.ParsedFont. Both sources report the same values.
func (f *Font) Metrics(font.MetricsSource) (font.Metrics, error) {
	return font.Metrics{Ascent: f.Ascent, Descent: f.Descent, UnitsPerEm: f.UnitsPerEm()}, nil
}

// Glyph implements font.ParsedFont.
func (f *Font) Glyph(gid font.GlyphIndex) (*font.Outline, error) {
	f.GlyphCalls.Add(1)
	if int(gid) >= len(f.Glyphs) {
		return nil, ErrNoSuchGlyph
	}
	g := f.Glyphs[gid]
	if g.Panic != nil {
		panic(g.Panic)
	}
	if g.Err != nil {
		return nil, g.Err
	}
	return &font.Outline{
		GID:      gid,
		Segments: append([]font.Segment(nil), g.Segments...),
		Advance:  g.Advance,
	}, nil
}

// Rect returns a closed rectangular contour from (x0, y0) to (x1, y1) in
// font units, Y up.
func Rect(x0, y0, x1, y1 float32) []font.Segment {
	return []font.Segment{
		{Op: font.SegmentMoveTo, Points: [3]font.Point{{X: x0, Y: y0}}},
		{Op: font.SegmentLineTo, Points: [3]font.Point{{X: x1, Y: y0}}},
		{Op: font.SegmentLineTo, Points: [3]font.Point{{X: x1, Y: y1}}},
		{Op: font.SegmentLineTo, Points: [3]font.Point{{X: x0, Y: y1}}},
		{Op: font.SegmentLineTo, Points: [3]font.Point{{X: x0, Y: y0}}},
	}
}

// Codepoints used by ThreeGlyph.
const (
	SquareRune    rune = 'A'
	WideRune      rune = 0xE000
	ZeroWidthRune rune = 0xE001
)

// ThreeGlyph returns a font with ascent 800, descent -200 and three mapped
// glyphs:
//
//	'A'    "square"  advance 1000, filled square 100..900 x -100..700
//	U+E000 "wide"    advance 2000, filled rectangle 0..2000 x 200..400
//	U+E001 "zero"    advance 0, no outline
func ThreeGlyph() *Font {
	return &Font{
		Name:    "FontmapTest Regular",
		UPEM:    1000,
		Ascent:  800,
		Descent: -200,
		Glyphs: []Glyph{
			{Name: ".notdef", Advance: 500},
			{Name: "square", Advance: 1000, Segments: Rect(100, -100, 900, 700)},
			{Name: "wide", Advance: 2000, Segments: Rect(0, 200, 2000, 400)},
			{Name: "zero", Advance: 0},
		},
		Chars: map[rune]font.GlyphIndex{
			SquareRune:    1,
			WideRune:      2,
			ZeroWidthRune: 3,
		},
	}
}

// MustFont wraps f with font.New and panics on error.
func MustFont(f font.ParsedFont, opts ...font.Option) *font.Font {
	ff, err := font.New(f, opts...)
	if err != nil {
		panic(err)
	}
	return ff
}
