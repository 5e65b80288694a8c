package font

import (
	"fmt"
	"sort"
	"sync"
)

// GlyphIndex is a glyph's index within the font.
type GlyphIndex uint16

// Parser is an interface for font parsing backends.
// This abstraction allows swapping the parsing library, and lets tests
// substitute synthetic fonts.
//
// The default implementation uses golang.org/x/image/font/sfnt together with
// github.com/go-text/typesetting for cmap enumeration.
type Parser interface {
	// Parse parses SFNT font data (TTF or OTF) and returns a ParsedFont.
	Parse(data []byte) (ParsedFont, error)
}

// ParsedFont represents a parsed font file.
//
// Implementations must allow concurrent calls to Glyph: the batch renderer
// fetches outlines from several workers at once.
type ParsedFont interface {
	// FullName returns the full font name, or "" if not available.
	FullName() string

	// NumGlyphs returns the number of glyphs in the font.
	NumGlyphs() int

	// UnitsPerEm returns the units per em for the font.
	UnitsPerEm() int

	// Cmap returns the font's best codepoint → glyph mapping. The choice of
	// subtable is the parser's own.
	Cmap() (map[rune]GlyphIndex, error)

	// GlyphName returns the glyph's PostScript name, or "" if the font
	// carries no glyph names.
	GlyphName(gid GlyphIndex) string

	// Metrics returns the font-wide vertical metrics in font units.
	Metrics(src MetricsSource) (Metrics, error)

	// Glyph returns the glyph's outline and advance in font units.
	// A glyph without contours (such as a space) yields an empty outline,
	// not an error.
	Glyph(gid GlyphIndex) (*Outline, error)
}

// parserRegistry holds registered font parsers.
var (
	parserMu       sync.RWMutex
	parserRegistry = map[string]Parser{
		"ximage": &ximageParser{},
	}
)

// defaultParserName is the name of the default parser.
const defaultParserName = "ximage"

// RegisterParser registers a custom font parser under name.
func RegisterParser(name string, parser Parser) {
	parserMu.Lock()
	defer parserMu.Unlock()
	parserRegistry[name] = parser
}

// Parsers returns the names of all registered parsers, sorted.
func Parsers() []string {
	parserMu.RLock()
	defer parserMu.RUnlock()
	names := make([]string, 0, len(parserRegistry))
	for name := range parserRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// getParser returns the parser registered under name.
func getParser(name string) (Parser, error) {
	parserMu.RLock()
	defer parserMu.RUnlock()
	if p, ok := parserRegistry[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("font: unknown parser %q", name)
}
