// Package resolve maps persisted glyph images back to characters.
//
// For each <ID>.png in a directory the Resolver looks up the codepoints
// drawn with that glyph. A codepoint that already is a standard named
// Unicode character resolves to itself (the fast path) and the recognizer
// is never consulted for it. Everything else is classified by the
// Recognizer (the slow path). Every codepoint of the mapping ends up with
// exactly one Entry, resolved or not.
package resolve
