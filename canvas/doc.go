// Package canvas turns raw glyph bitmaps of any aspect ratio into canonical
// images: a fixed square canvas with an opaque background and the glyph
// scaled so that its longer side equals a maximum dimension, centred.
//
// The output is uniform input for recognition engines, which are
// sensitive to scale and padding. Normalize is a pure function.
package canvas
