// Package font loads obfuscated web fonts and exposes what the recovery
// pipeline needs from them: the best codepoint → glyph mapping, font-wide
// vertical metrics and per-glyph outlines.
//
// # Loading
//
//	f, err := font.Load("page.woff")
//	if err != nil {
//	    // *font.LoadError: fatal, nothing can be recovered without the font
//	}
//	for _, e := range f.Mapping().Entries() {
//	    fmt.Printf("U+%04X -> %s\n", e.Codepoint, e.ID)
//	}
//
// # Parsers
//
// Parsing is delegated to a pluggable [Parser]. The default "ximage" parser
// reads outlines, advances, glyph names and hhea metrics with
// golang.org/x/image/font/sfnt and enumerates the best cmap subtable with
// github.com/go-text/typesetting. Web font containers are unwrapped before
// parsing: WOFF through the typesetting loader, WOFF2 (Brotli plus the
// glyf/loca transform) through github.com/tdewolff/font.
//
// # Coordinates
//
// Outlines are returned in font units with the Y axis pointing up and the
// origin on the baseline at the left side bearing origin, the same space
// the metrics are expressed in.
package font
