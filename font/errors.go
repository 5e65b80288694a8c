package font

import "errors"

// Sentinel errors for the font package.
var (
	// ErrEmptyFontData is returned when font data is empty.
	ErrEmptyFontData = errors.New("font: empty font data")

	// ErrInvalidWOFF is returned when a WOFF or WOFF2 container is
	// malformed.
	ErrInvalidWOFF = errors.New("font: invalid WOFF data")

	// ErrInvalidMetrics is returned when ascent - descent is not positive.
	ErrInvalidMetrics = errors.New("font: ascent - descent must be positive")

	// ErrEmptyCmap is returned when the font maps no codepoint to a glyph.
	ErrEmptyCmap = errors.New("font: font has no usable cmap entries")

	// ErrDuplicateCodepoint is returned by NewMapping for repeated codepoints.
	ErrDuplicateCodepoint = errors.New("font: duplicate codepoint in mapping")
)

// LoadError is returned when a font cannot be loaded. It is fatal for a
// recovery session: no mapping can be produced without the font.
type LoadError struct {
	// Path is the font file path, empty when loading from memory.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return "font: load: " + e.Err.Error()
	}
	return "font: load " + e.Path + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}
