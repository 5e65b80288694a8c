// Package render rasterizes and normalizes every glyph of a font and
// persists one canonical PNG per glyph identifier.
//
// Glyphs are independent: each task owns its images and its output file,
// and a failing glyph is recorded in the Report without stopping the
// batch. Work is spread over a bounded worker pool (3 workers by default).
package render
