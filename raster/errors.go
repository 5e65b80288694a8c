package raster

import (
	"errors"
	"fmt"
)

// Sentinel errors for the raster package.
var (
	// ErrNoOutline is returned for glyphs without contours or whose
	// contours enclose no area.
	ErrNoOutline = errors.New("raster: glyph has no outline")

	// ErrNonPositiveAdvance is returned for glyphs whose advance is zero
	// or negative.
	ErrNonPositiveAdvance = errors.New("raster: glyph advance is not positive")

	// ErrImageTooLarge is returned when the raw image would exceed the
	// configured pixel limit.
	ErrImageTooLarge = errors.New("raster: glyph image too large")
)

// GlyphRenderError reports that one glyph could not be rasterized.
// It never aborts a batch; the renderer records it and moves on.
type GlyphRenderError struct {
	// Codepoint is the mapped codepoint the glyph was rendered for.
	Codepoint rune

	// ID is the glyph identifier.
	ID string

	// Err is the underlying cause.
	Err error
}

func (e *GlyphRenderError) Error() string {
	return fmt.Sprintf("raster: glyph %s (U+%04X): %v", e.ID, e.Codepoint, e.Err)
}

// Unwrap returns the underlying cause.
func (e *GlyphRenderError) Unwrap() error {
	return e.Err
}
