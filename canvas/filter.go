package canvas

import (
	"fmt"
	"math"

	"golang.org/x/image/draw"
)

// Filter selects the resampling kernel.
type Filter uint8

const (
	// FilterLanczos is a Lanczos-3 windowed sinc. Default.
	FilterLanczos Filter = iota

	// FilterCatmullRom is the Catmull-Rom cubic.
	FilterCatmullRom

	// FilterBiLinear is the tent kernel.
	FilterBiLinear

	// FilterApproxBiLinear is a faster approximation of FilterBiLinear.
	FilterApproxBiLinear

	// FilterNearestNeighbor picks the nearest source pixel.
	FilterNearestNeighbor
)

// lanczos3 is a Lanczos kernel with a = 3.
var lanczos3 = &draw.Kernel{
	Support: 3,
	At: func(t float64) float64 {
		if t == 0 {
			return 1
		}
		if t >= 3 {
			return 0
		}
		pt := math.Pi * t
		return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
	},
}

// Interpolator returns the x/image/draw interpolator for f.
func (f Filter) Interpolator() draw.Interpolator {
	switch f {
	case FilterCatmullRom:
		return draw.CatmullRom
	case FilterBiLinear:
		return draw.BiLinear
	case FilterApproxBiLinear:
		return draw.ApproxBiLinear
	case FilterNearestNeighbor:
		return draw.NearestNeighbor
	default:
		return lanczos3
	}
}

// String returns the filter name.
func (f Filter) String() string {
	switch f {
	case FilterLanczos:
		return "lanczos"
	case FilterCatmullRom:
		return "catmullrom"
	case FilterBiLinear:
		return "bilinear"
	case FilterApproxBiLinear:
		return "approxbilinear"
	case FilterNearestNeighbor:
		return "nearest"
	default:
		return fmt.Sprintf("Filter(%d)", f)
	}
}

// ParseFilter parses a filter name as returned by Filter.String.
func ParseFilter(s string) (Filter, error) {
	for f := FilterLanczos; f <= FilterNearestNeighbor; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	if s == "" {
		return FilterLanczos, nil
	}
	return 0, fmt.Errorf("canvas: unknown filter %q", s)
}
