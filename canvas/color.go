package canvas

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/colornames"
)

// ParseColor parses an SVG/CSS colour name, "transparent", or a hex colour
// in #rgb, #rgba, #rrggbb or #rrggbbaa form. The result is
// non-premultiplied.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA(c), nil
	}
	digits, ok := strings.CutPrefix(s, "#")
	if !ok {
		return color.NRGBA{}, fmt.Errorf("canvas: unknown colour %q", s)
	}
	// gg.Hex maps malformed input to black, so validate first.
	switch len(digits) {
	case 3, 4, 6, 8:
	default:
		return color.NRGBA{}, fmt.Errorf("canvas: invalid hex colour %q", s)
	}
	if strings.Trim(digits, "0123456789abcdef") != "" {
		return color.NRGBA{}, fmt.Errorf("canvas: invalid hex colour %q", s)
	}
	c := gg.Hex(digits)
	return color.NRGBA{R: unit8(c.R), G: unit8(c.G), B: unit8(c.B), A: unit8(c.A)}, nil
}

func unit8(v float64) uint8 {
	return uint8(math.Round(v * 255)) // #nosec G115 -- gg.Hex yields values in [0, 1]
}
