package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"

	"golang.org/x/image/draw"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontmap/canvas"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/raster"
	"github.com/gogpu/fontmap/resolve"
)

// DefaultAlphabet is the candidate set used when NewTemplate gets "".
const DefaultAlphabet = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz"

const (
	defaultSampleSize = 32
	defaultThreshold  = 0.12

	// inkCutoff is the darkness above which a pixel counts as ink when
	// locating the glyph.
	inkCutoff = 0.25
)

// TemplateOption configures NewTemplate.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	ref        *font.Font
	threshold  float64
	sampleSize int
	rasterizer *raster.Rasterizer
	canvas     canvas.Options
}

// WithReferenceFont sets the font candidates are rendered from. The default
// is Go Regular.
func WithReferenceFont(f *font.Font) TemplateOption {
	return func(c *templateConfig) {
		c.ref = f
	}
}

// WithThreshold sets the largest mean pixel distance, in [0, 1], that still
// counts as a match.
func WithThreshold(d float64) TemplateOption {
	return func(c *templateConfig) {
		c.threshold = d
	}
}

// WithSampleSize sets the side of the square signature images compare at.
func WithSampleSize(n int) TemplateOption {
	return func(c *templateConfig) {
		if n > 0 {
			c.sampleSize = n
		}
	}
}

// WithTemplateCanvas sets the normalization used for candidate glyphs.
func WithTemplateCanvas(o canvas.Options) TemplateOption {
	return func(c *templateConfig) {
		c.canvas = o
	}
}

type candidate struct {
	text string
	sig  []float32
}

// Template recognizes glyphs by comparing them with glyphs of a reference
// font rendered through the same raster and canvas pipeline. It is safe for
// concurrent use.
type Template struct {
	candidates []candidate
	threshold  float64
	size       int
}

var _ resolve.Recognizer = (*Template)(nil)

// NewTemplate renders every character of alphabet that the reference font
// maps. Characters without a glyph or without ink are left out.
func NewTemplate(alphabet string, opts ...TemplateOption) (*Template, error) {
	cfg := templateConfig{
		threshold:  defaultThreshold,
		sampleSize: defaultSampleSize,
		rasterizer: raster.New(),
		canvas:     canvas.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.ref == nil {
		ref, err := font.Parse(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("ocr: reference font: %w", err)
		}
		cfg.ref = ref
	}
	if alphabet == "" {
		alphabet = DefaultAlphabet
	}

	t := &Template{threshold: cfg.threshold, size: cfg.sampleSize}
	seen := make(map[rune]bool)
	for _, r := range alphabet {
		if seen[r] {
			continue
		}
		seen[r] = true
		e, ok := cfg.ref.Mapping().ByCodepoint(r)
		if !ok {
			continue
		}
		raw, err := cfg.rasterizer.Render(cfg.ref, e, cfg.ref.Metrics())
		if err != nil {
			continue
		}
		img, err := canvas.Normalize(raw, cfg.canvas)
		if err != nil {
			return nil, fmt.Errorf("ocr: template %q: %w", r, err)
		}
		if sig := signature(img, t.size); sig != nil {
			t.candidates = append(t.candidates, candidate{text: string(r), sig: sig})
		}
	}
	if len(t.candidates) == 0 {
		return nil, fmt.Errorf("ocr: no template glyphs for alphabet %q", alphabet)
	}
	return t, nil
}

// Len returns the number of candidates.
func (t *Template) Len() int {
	return len(t.candidates)
}

// Classify implements resolve.Recognizer. It returns "" when the image has
// no ink or no candidate is within the threshold.
func (t *Template) Classify(ctx context.Context, data []byte) (string, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("ocr: decode image: %w", err)
	}
	text, _ := t.Match(img)
	return text, ctx.Err()
}

// Match returns the best candidate for img and its distance. The text is ""
// when the distance exceeds the threshold.
func (t *Template) Match(img image.Image) (string, float64) {
	sig := signature(img, t.size)
	if sig == nil {
		return "", math.Inf(1)
	}
	best, bestDist := "", math.Inf(1)
	for _, c := range t.candidates {
		if d := distance(sig, c.sig); d < bestDist {
			best, bestDist = c.text, d
		}
	}
	if bestDist > t.threshold {
		return "", bestDist
	}
	return best, bestDist
}

// signature crops img to its ink, pads the crop to a square keeping the
// aspect ratio, and scales it to size × size darkness values in [0, 1].
// The background is taken from the top-left pixel. It returns nil for an
// image without ink.
func signature(img image.Image, size int) []float32 {
	b := img.Bounds()
	bg := luminance(img, b.Min.X, b.Min.Y)

	ink := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	var box image.Rectangle
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Abs(luminance(img, x, y) - bg)
			ink.Pix[ink.PixOffset(x-b.Min.X, y-b.Min.Y)] = uint8(math.Round(d * 255))
			if d > inkCutoff {
				box = box.Union(image.Rect(x-b.Min.X, y-b.Min.Y, x-b.Min.X+1, y-b.Min.Y+1))
			}
		}
	}
	if box.Empty() {
		return nil
	}

	side := max(box.Dx(), box.Dy())
	square := image.NewGray(image.Rect(0, 0, side, side))
	off := image.Pt((side-box.Dx())/2, (side-box.Dy())/2)
	draw.Draw(square, image.Rectangle{Min: off, Max: off.Add(box.Size())}, ink, box.Min, draw.Src)

	small := image.NewGray(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(small, small.Bounds(), square, square.Bounds(), draw.Src, nil)

	sig := make([]float32, size*size)
	for i, v := range small.Pix {
		sig[i] = float32(v) / 255
	}
	return sig
}

func luminance(img image.Image, x, y int) float64 {
	r, g, b, a := img.At(x, y).RGBA()
	if a == 0 {
		return 1
	}
	// Rec. 601 luma on 16-bit channels; transparent reads as white.
	l := (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
	return l + (1 - float64(a)/0xffff)
}

func distance(a, b []float32) float64 {
	var sum float64
	for i := range a {
		sum += math.Abs(float64(a[i] - b[i]))
	}
	return sum / float64(len(a))
}
