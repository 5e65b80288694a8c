package font

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/fontmap/internal/logging"
)

// Font is a loaded font: the parsed binary plus the mapping and metrics
// derived from it. A Font is read-only after loading and safe for
// concurrent use.
type Font struct {
	path    string
	name    string
	parsed  ParsedFont
	mapping *Mapping
	metrics Metrics
}

// Load reads and parses the font file at path.
// Any failure is reported as *LoadError.
func Load(path string, opts ...Option) (*Font, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided font path
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	f, err := Parse(data, opts...)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
			return nil, le
		}
		return nil, &LoadError{Path: path, Err: err}
	}
	f.path = path
	return f, nil
}

// Parse parses font data held in memory. TTF, OTF, WOFF and WOFF2 are
// accepted. Any failure is reported as *LoadError.
func Parse(data []byte, opts ...Option) (*Font, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	switch {
	case len(data) == 0:
		return nil, &LoadError{Err: ErrEmptyFontData}
	case isWOFF(data), isWOFF2(data):
		unwrap, format := unwrapWOFF, "WOFF"
		if isWOFF2(data) {
			unwrap, format = unwrapWOFF2, "WOFF2"
		}
		sfntData, err := unwrap(data)
		if err != nil {
			return nil, &LoadError{Err: err}
		}
		logging.Logger().Debug("font: unwrapped web font container",
			slog.String("format", format),
			slog.Int("container_bytes", len(data)), slog.Int("sfnt_bytes", len(sfntData)))
		data = sfntData
	}

	parser, err := getParser(cfg.parserName)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	parsed, err := parser.Parse(data)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	return New(parsed, opts...)
}

// New builds a Font from an already parsed font. It is the entry point for
// custom Parser implementations and synthetic fonts in tests.
func New(parsed ParsedFont, opts ...Option) (*Font, error) {
	cfg := defaultLoadConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	cmap, err := parsed.Cmap()
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	mapping, err := buildMapping(parsed, cmap)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	metrics, err := parsed.Metrics(cfg.metrics)
	if err != nil {
		return nil, &LoadError{Err: err}
	}
	if err := metrics.validate(); err != nil {
		return nil, &LoadError{Err: err}
	}

	f := &Font{
		name:    parsed.FullName(),
		parsed:  parsed,
		mapping: mapping,
		metrics: metrics,
	}
	logging.Logger().Debug("font: loaded",
		slog.String("name", f.name),
		slog.Int("codepoints", mapping.Len()),
		slog.Int("glyphs", parsed.NumGlyphs()),
		slog.String("metrics", cfg.metrics.String()),
		slog.Int("ascent", metrics.Ascent),
		slog.Int("descent", metrics.Descent))
	return f, nil
}

// Path returns the file the font was loaded from, or "" for in-memory fonts.
func (f *Font) Path() string { return f.path }

// Name returns the font's full name, or "" if not available.
func (f *Font) Name() string { return f.name }

// Mapping returns the codepoint → glyph mapping.
func (f *Font) Mapping() *Mapping { return f.mapping }

// Metrics returns the font-wide vertical metrics.
func (f *Font) Metrics() Metrics { return f.metrics }

// Parsed returns the underlying parsed font.
func (f *Font) Parsed() ParsedFont { return f.parsed }

// Glyph returns the outline and advance of gid in font units.
func (f *Font) Glyph(gid GlyphIndex) (*Outline, error) {
	if int(gid) >= f.parsed.NumGlyphs() {
		return nil, fmt.Errorf("font: glyph %d out of range (%d glyphs)", gid, f.parsed.NumGlyphs())
	}
	return f.parsed.Glyph(gid)
}
