package render

import (
	"time"

	"github.com/gogpu/fontmap/font"
)

// GlyphFailure records a glyph that could not be rendered or written.
type GlyphFailure struct {
	Entry font.Entry
	Err   error
}

// Report summarizes a batch render. Entries are in codepoint order.
type Report struct {
	// Dir is the output directory.
	Dir string

	// Rendered lists glyphs whose image was written.
	Rendered []font.Entry

	// Failed lists glyphs that failed with a per-glyph error.
	Failed []GlyphFailure

	// NotAttempted lists glyphs never started because the context was
	// cancelled.
	NotAttempted []font.Entry

	// Elapsed is the wall time of the batch.
	Elapsed time.Duration
}

// Total returns the number of glyphs in the batch.
func (r *Report) Total() int {
	return len(r.Rendered) + len(r.Failed) + len(r.NotAttempted)
}

// Complete reports whether every glyph was attempted.
func (r *Report) Complete() bool {
	return len(r.NotAttempted) == 0
}
