package resolve

import (
	"fmt"
	"slices"
)

// Status says how a codepoint was resolved.
type Status uint8

const (
	// StatusNamed means the codepoint is a named Unicode character and
	// resolved to itself without recognition.
	StatusNamed Status = iota

	// StatusRecognized means the recognizer returned non-empty text.
	StatusRecognized

	// StatusUnresolved means the recognizer returned "" or failed.
	StatusUnresolved

	// StatusMissing means no image existed for the codepoint's glyph,
	// usually because rendering skipped it.
	StatusMissing
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusNamed:
		return "named"
	case StatusRecognized:
		return "recognized"
	case StatusUnresolved:
		return "unresolved"
	case StatusMissing:
		return "missing"
	default:
		return fmt.Sprintf("Status(%d)", s)
	}
}

// Resolved reports whether the status carries text.
func (s Status) Resolved() bool {
	return s == StatusNamed || s == StatusRecognized
}

// Entry is the resolution of one codepoint.
type Entry struct {
	Codepoint rune
	ID        string

	// Text is the recovered character(s). Empty unless Status.Resolved().
	Text string

	Status Status

	// Err is the recognizer error for StatusUnresolved, if any.
	Err error
}

// Result holds one Entry per mapping codepoint, ordered by codepoint.
type Result struct {
	entries []Entry
	index   map[rune]int
}

// NewResult builds a Result from entries in any order. It takes ownership
// of the slice.
func NewResult(entries []Entry) *Result {
	slices.SortFunc(entries, func(a, b Entry) int { return int(a.Codepoint) - int(b.Codepoint) })
	r := &Result{entries: entries, index: make(map[rune]int, len(entries))}
	for i, e := range entries {
		r.index[e.Codepoint] = i
	}
	return r
}

// Len returns the number of entries.
func (r *Result) Len() int {
	return len(r.entries)
}

// Entries returns a copy of all entries, ordered by codepoint.
func (r *Result) Entries() []Entry {
	return slices.Clone(r.entries)
}

// Lookup returns the entry for codepoint cp.
func (r *Result) Lookup(cp rune) (Entry, bool) {
	i, ok := r.index[cp]
	if !ok {
		return Entry{}, false
	}
	return r.entries[i], true
}

// Count returns the number of entries with status s.
func (r *Result) Count(s Status) int {
	n := 0
	for _, e := range r.entries {
		if e.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the unresolved and missing entries.
func (r *Result) Failed() []Entry {
	var out []Entry
	for _, e := range r.entries {
		if !e.Status.Resolved() {
			out = append(out, e)
		}
	}
	return out
}
