package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/runenames"
)

// HasStandardName reports whether r is an assigned character with a
// standard Unicode name. Control characters, private use, surrogates and
// unassigned codepoints have none. CJK unified ideographs and Hangul
// syllables are named algorithmically and count as named.
func HasStandardName(r rune) bool {
	if r < 0 || r > unicode.MaxRune {
		return false
	}
	if isHangulSyllable(r) || unicode.Is(unicode.Unified_Ideograph, r) {
		return true
	}
	name := runenames.Name(r)
	return name != "" && !strings.HasPrefix(name, "<")
}

func isHangulSyllable(r rune) bool {
	return r >= 0xAC00 && r <= 0xD7A3
}
