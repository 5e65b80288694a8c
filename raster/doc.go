// Package raster draws a glyph outline into a raw bitmap whose size is the
// glyph's advance by the font's line height (ascent - descent), with the
// baseline -descent pixels above the bottom edge.
//
// Rasterization goes through a [Pen]. Two backends are available:
// [BackendVector] uses golang.org/x/image/vector, [BackendGG] uses the
// github.com/gogpu/gg software renderer. Both fill with the non-zero
// winding rule and produce anti-aliased coverage in the ink colour on a
// transparent background.
package raster
