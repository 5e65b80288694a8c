// Package fontmap recovers the real characters behind obfuscated web fonts.
//
// # Overview
//
// Anti-scraping sites ship fonts whose cmap assigns glyphs to scrambled
// codepoints, so the page text is unreadable without the font. fontmap
// reverses the scramble from the font file alone:
//
//  1. extract the codepoint → glyph mapping and metrics (package font)
//  2. rasterize each glyph at its natural size (package raster)
//  3. normalize it onto a canonical square canvas (package canvas)
//  4. persist one PNG per glyph, concurrently (package render)
//  5. resolve each image to a character, named Unicode characters
//     directly and everything else through a recognizer (package resolve)
//  6. write the mapping as JSON (package export)
//
// # Quick Start
//
//	cfg := fontmap.DefaultConfig()
//	cfg.FontPath = "page.woff"
//	cfg.OutputDir = "glyphs"
//	cfg.ResultJSONPath = "mapping.json"
//
//	s, err := fontmap.Open(cfg)
//	if err != nil {
//	    log.Fatal(err) // *font.LoadError
//	}
//	rec, _ := ocr.NewTemplate("")
//	res, err := s.Run(ctx, rec)
//
// # Recognizers
//
// Recognition is a capability passed in by the caller, never a global. Any
// resolve.Recognizer works; package ocr ships an external-command, an HTTP
// and a pure-Go template matcher.
//
// # Logging
//
// fontmap is silent by default. SetLogger enables log/slog output for
// fontmap, its sub-packages and the gogpu/gg rasterizer backend.
package fontmap
