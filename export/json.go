// Package export serializes resolution results as a UTF-8 JSON object.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gogpu/fontmap/resolve"
)

// KeyMode selects what the JSON object keys are.
type KeyMode uint8

const (
	// KeyID uses glyph identifiers as keys.
	KeyID KeyMode = iota

	// KeyCodepoint uses "U+XXXX" codepoints as keys.
	KeyCodepoint
)

// String returns the mode name.
func (k KeyMode) String() string {
	switch k {
	case KeyID:
		return "id"
	case KeyCodepoint:
		return "codepoint"
	default:
		return fmt.Sprintf("KeyMode(%d)", k)
	}
}

// ParseKeyMode parses "id" or "codepoint".
func ParseKeyMode(s string) (KeyMode, error) {
	switch s {
	case "id", "":
		return KeyID, nil
	case "codepoint", "cp":
		return KeyCodepoint, nil
	}
	return 0, fmt.Errorf("export: unknown key mode %q", s)
}

// Options configures the JSON output.
type Options struct {
	Keys KeyMode

	// Unresolved is written for unresolved and missing entries. Nil writes
	// JSON null.
	Unresolved *string

	// Indent, when non-empty, pretty-prints with this indent.
	Indent string
}

// Sentinel returns a pointer to s, for Options.Unresolved.
func Sentinel(s string) *string {
	return &s
}

// Map builds the key → value map that WriteJSON serializes. A nil value
// stands for unresolved.
//
// With KeyID several codepoints may share a key; the first resolved entry
// in codepoint order wins, and the key is unresolved only if all of them
// are.
func Map(res *resolve.Result, keys KeyMode) map[string]*string {
	out := make(map[string]*string, res.Len())
	for _, e := range res.Entries() {
		key := e.ID
		if keys == KeyCodepoint {
			key = fmt.Sprintf("U+%04X", e.Codepoint)
		}
		var val *string
		if e.Status.Resolved() {
			text := e.Text
			val = &text
		}
		if prev, ok := out[key]; ok && (prev != nil || val == nil) {
			continue
		}
		out[key] = val
	}
	return out
}

// WriteJSON writes res as a JSON object with sorted keys and a trailing
// newline. Non-ASCII text is written as-is and HTML characters are not
// escaped.
func WriteJSON(w io.Writer, res *resolve.Result, o Options) error {
	m := Map(res, o.Keys)
	for k, v := range m {
		if v == nil {
			m[k] = o.Unresolved
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", o.Indent)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

// WriteFile writes res to path atomically, creating parent directories.
func WriteFile(path string, res *resolve.Result, o Options) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 -- output is meant to be shared
		return fmt.Errorf("export: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if err := WriteJSON(tmp, res, o); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil { // #nosec G302 -- output is meant to be shared
		return fmt.Errorf("export: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
