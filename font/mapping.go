package font

import (
	"fmt"
	"slices"
	"strings"
)

// Entry maps one obfuscated codepoint to the glyph it is drawn with.
type Entry struct {
	// Codepoint is the character code as it appears in the obfuscated text.
	Codepoint rune

	// GID is the glyph index.
	GID GlyphIndex

	// ID is the glyph identifier, used as the image file name stem.
	ID string
}

// String returns "U+XXXX -> id".
func (e Entry) String() string {
	return fmt.Sprintf("U+%04X -> %s", e.Codepoint, e.ID)
}

// Mapping is the immutable codepoint → glyph table of a font, ordered by
// codepoint. Several codepoints may share one glyph and so one ID.
type Mapping struct {
	entries []Entry
	byRune  map[rune]int
	byID    map[string][]int
}

// NewMapping builds a Mapping from entries in any order. Codepoints must be
// unique.
func NewMapping(entries []Entry) (*Mapping, error) {
	sorted := slices.Clone(entries)
	slices.SortFunc(sorted, func(a, b Entry) int { return int(a.Codepoint) - int(b.Codepoint) })

	m := &Mapping{
		entries: sorted,
		byRune:  make(map[rune]int, len(sorted)),
		byID:    make(map[string][]int),
	}
	for i, e := range sorted {
		if _, dup := m.byRune[e.Codepoint]; dup {
			return nil, fmt.Errorf("%w: U+%04X", ErrDuplicateCodepoint, e.Codepoint)
		}
		m.byRune[e.Codepoint] = i
		m.byID[e.ID] = append(m.byID[e.ID], i)
	}
	return m, nil
}

// Len returns the number of codepoints.
func (m *Mapping) Len() int {
	return len(m.entries)
}

// Entries returns a copy of all entries, ordered by codepoint.
func (m *Mapping) Entries() []Entry {
	return slices.Clone(m.entries)
}

// ByCodepoint returns the entry for r.
func (m *Mapping) ByCodepoint(r rune) (Entry, bool) {
	i, ok := m.byRune[r]
	if !ok {
		return Entry{}, false
	}
	return m.entries[i], true
}

// ByID returns every entry drawn with the glyph identified by id, ordered by
// codepoint. It returns nil for an unknown id.
func (m *Mapping) ByID(id string) []Entry {
	idx := m.byID[id]
	if len(idx) == 0 {
		return nil
	}
	out := make([]Entry, len(idx))
	for i, j := range idx {
		out[i] = m.entries[j]
	}
	return out
}

// IDs returns the unique glyph identifiers, sorted.
func (m *Mapping) IDs() []string {
	ids := make([]string, 0, len(m.byID))
	for id := range m.byID {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Glyphs returns one entry per unique ID, the lowest codepoint of each, in
// codepoint order. This is the list of images a batch render produces.
func (m *Mapping) Glyphs() []Entry {
	out := make([]Entry, 0, len(m.byID))
	for _, e := range m.entries {
		if m.byID[e.ID][0] == m.byRune[e.Codepoint] {
			out = append(out, e)
		}
	}
	return out
}

// buildMapping derives glyph identifiers and assembles the mapping.
func buildMapping(pf ParsedFont, cmap map[rune]GlyphIndex) (*Mapping, error) {
	if len(cmap) == 0 {
		return nil, ErrEmptyCmap
	}

	ids := make(map[GlyphIndex]string)
	owner := make(map[string]GlyphIndex)
	gids := make([]GlyphIndex, 0, len(cmap))
	for _, gid := range cmap {
		if _, seen := ids[gid]; !seen {
			ids[gid] = ""
			gids = append(gids, gid)
		}
	}
	// Deterministic collision handling: lower glyph indices keep their name.
	slices.Sort(gids)
	for _, gid := range gids {
		id := SanitizeID(pf.GlyphName(gid))
		if other, taken := owner[id]; id == "" || (taken && other != gid) {
			id = fallbackID(gid)
			for n := 1; ; n++ {
				if _, taken := owner[id]; !taken {
					break
				}
				id = fmt.Sprintf("%s_%d", fallbackID(gid), n)
			}
		}
		ids[gid] = id
		owner[id] = gid
	}

	entries := make([]Entry, 0, len(cmap))
	for r, gid := range cmap {
		entries = append(entries, Entry{Codepoint: r, GID: gid, ID: ids[gid]})
	}
	return NewMapping(entries)
}

func fallbackID(gid GlyphIndex) string {
	return fmt.Sprintf("glyph%05d", gid)
}

// SanitizeID makes a glyph name safe for use as a file name stem. Path
// separators, reserved characters and control characters become '_'.
// Names that would be special to the filesystem yield "".
func SanitizeID(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r < 0x20, r == 0x7f:
			return '_'
		case strings.ContainsRune(`/\:*?"<>|`, r):
			return '_'
		}
		return r
	}, name)
	if name == "." || name == ".." || strings.TrimSpace(name) == "" {
		return ""
	}
	return name
}
