package font

import "fmt"

// MetricsSource selects which table supplies the font-wide vertical metrics.
type MetricsSource uint8

const (
	// MetricsWin uses OS/2 usWinAscent and usWinDescent, falling back to
	// hhea when the OS/2 table is missing or both values are zero.
	MetricsWin MetricsSource = iota

	// MetricsHhea uses the hhea ascender and descender.
	MetricsHhea
)

// String returns the source name.
func (s MetricsSource) String() string {
	switch s {
	case MetricsWin:
		return "win"
	case MetricsHhea:
		return "hhea"
	default:
		return fmt.Sprintf("MetricsSource(%d)", s)
	}
}

// ParseMetricsSource parses "win" or "hhea".
func ParseMetricsSource(s string) (MetricsSource, error) {
	switch s {
	case "win", "os2", "":
		return MetricsWin, nil
	case "hhea":
		return MetricsHhea, nil
	}
	return 0, fmt.Errorf("font: unknown metrics source %q", s)
}

// Metrics holds font-wide vertical metrics in font units.
type Metrics struct {
	// Ascent is the distance from the baseline to the top of the line box.
	Ascent int

	// Descent is the signed distance from the baseline to the bottom of the
	// line box. It is zero or negative.
	Descent int

	// UnitsPerEm is the font's design grid size.
	UnitsPerEm int
}

// Height returns Ascent - Descent, the height of a raw glyph image.
func (m Metrics) Height() int {
	return m.Ascent - m.Descent
}

// Baseline returns the distance of the baseline above the bottom edge of a
// raw glyph image.
func (m Metrics) Baseline() int {
	return -m.Descent
}

func (m Metrics) validate() error {
	if m.Height() <= 0 {
		return fmt.Errorf("%w (ascent %d, descent %d)", ErrInvalidMetrics, m.Ascent, m.Descent)
	}
	return nil
}
