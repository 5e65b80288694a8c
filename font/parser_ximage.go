package font

import (
	"bytes"
	"fmt"
	"sync"

	tsfont "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype"
	xfont "golang.org/x/image/font"
	xopentype "golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// ximageParser implements Parser using golang.org/x/image/font/opentype for
// outlines, names and hhea metrics, and go-text/typesetting for the table
// directory, the cmap and OS/2.
type ximageParser struct{}

// Parse implements Parser.Parse.
func (p *ximageParser) Parse(data []byte) (ParsedFont, error) {
	f, err := xopentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("font: failed to parse font: %w", err)
	}
	ld, err := opentype.NewLoader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("font: failed to read table directory: %w", err)
	}
	cmap, err := tsfont.NewFont(ld)
	if err != nil {
		return nil, fmt.Errorf("font: failed to read cmap: %w", err)
	}
	pf := &ximageParsedFont{
		font: f,
		cmap: cmap,
		ppem: fixed.Int26_6(int(f.UnitsPerEm()) << 6),
	}
	pf.winAscent, pf.winDescent, pf.hasWin = winMetrics(ld)
	return pf, nil
}

// ximageParsedFont implements ParsedFont using sfnt.Font.
//
// sfnt.Font is safe for concurrent use but sfnt.Buffer is not, so every
// call borrows a buffer from the pool.
type ximageParsedFont struct {
	font *xopentype.Font
	cmap *tsfont.Font

	// OS/2 usWinAscent and usWinDescent, read once at parse time.
	winAscent, winDescent int
	hasWin                bool

	// ppem equal to unitsPerEm makes x/image return values in font units.
	ppem fixed.Int26_6

	buffers sync.Pool
}

func (f *ximageParsedFont) buffer() *sfnt.Buffer {
	if b, ok := f.buffers.Get().(*sfnt.Buffer); ok {
		return b
	}
	return &sfnt.Buffer{}
}

// FullName implements ParsedFont.FullName.
func (f *ximageParsedFont) FullName() string {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	if name, err := f.font.Name(buf, sfnt.NameIDFull); err == nil {
		return name
	}
	return ""
}

// NumGlyphs implements ParsedFont.NumGlyphs.
func (f *ximageParsedFont) NumGlyphs() int {
	return f.font.NumGlyphs()
}

// UnitsPerEm implements ParsedFont.UnitsPerEm.
func (f *ximageParsedFont) UnitsPerEm() int {
	return int(f.font.UnitsPerEm())
}

// Cmap implements ParsedFont.Cmap. Entries pointing at glyph 0 (.notdef)
// or past the end of the glyph set are dropped.
func (f *ximageParsedFont) Cmap() (map[rune]GlyphIndex, error) {
	if f.cmap == nil || f.cmap.Cmap == nil {
		return nil, ErrEmptyCmap
	}
	n := f.font.NumGlyphs()
	out := make(map[rune]GlyphIndex)
	it := f.cmap.Cmap.Iter()
	for it.Next() {
		r, gid := it.Char()
		if gid == 0 || int(gid) >= n {
			continue
		}
		out[r] = GlyphIndex(gid) // #nosec G115 -- bounded by NumGlyphs
	}
	return out, nil
}

// GlyphName implements ParsedFont.GlyphName.
func (f *ximageParsedFont) GlyphName(gid GlyphIndex) string {
	buf := f.buffer()
	defer f.buffers.Put(buf)
	name, err := f.font.GlyphName(buf, sfnt.GlyphIndex(gid))
	if err != nil {
		return ""
	}
	return name
}

// Metrics implements ParsedFont.Metrics.
func (f *ximageParsedFont) Metrics(src MetricsSource) (Metrics, error) {
	m := Metrics{UnitsPerEm: f.UnitsPerEm()}
	if src == MetricsWin {
		if f.hasWin {
			m.Ascent, m.Descent = f.winAscent, -f.winDescent
			return m, nil
		}
	}

	buf := f.buffer()
	defer f.buffers.Put(buf)
	hm, err := f.font.Metrics(buf, f.ppem, xfont.HintingNone)
	if err != nil {
		return Metrics{}, fmt.Errorf("font: failed to read metrics: %w", err)
	}
	m.Ascent = hm.Ascent.Round()
	m.Descent = -hm.Descent.Round()
	return m, nil
}

// Glyph implements ParsedFont.Glyph.
func (f *ximageParsedFont) Glyph(gid GlyphIndex) (*Outline, error) {
	buf := f.buffer()
	defer f.buffers.Put(buf)

	x := sfnt.GlyphIndex(gid)
	adv, err := f.font.GlyphAdvance(buf, x, f.ppem, xfont.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("font: glyph %d advance: %w", gid, err)
	}
	segs, err := f.font.LoadGlyph(buf, x, f.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("font: glyph %d outline: %w", gid, err)
	}
	// segs aliases buf and must be converted before buf goes back to the pool.
	return &Outline{
		GID:      gid,
		Segments: convertSegments(segs),
		Advance:  fixedToFloat32(adv),
	}, nil
}
