package fontmap

import (
	"errors"
	"fmt"
	"image/color"
	"time"

	"github.com/gogpu/fontmap/canvas"
	"github.com/gogpu/fontmap/export"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/raster"
	"github.com/gogpu/fontmap/render"
)

// Configuration errors.
var (
	ErrNoFontPath  = errors.New("fontmap: font path is required")
	ErrNoOutputDir = errors.New("fontmap: output dir is required")
	ErrBadWorkers  = errors.New("fontmap: workers must be positive")
)

// Config configures a Session.
type Config struct {
	// FontPath is the font file to recover. Required.
	FontPath string

	// OutputDir receives one <ID>.png per glyph. Required.
	OutputDir string

	// SaveImages renders glyph images before resolving. When false the
	// render phase is skipped and OutputDir must already hold the images.
	SaveImages bool

	// CanvasSize is the side of the canonical image in pixels.
	CanvasSize int

	// MaxDimension is the longer side of the scaled glyph. Zero means
	// CanvasSize/2.
	MaxDimension int

	// Background fills the canvas behind the glyph.
	Background color.Color

	// Workers is the render pool size.
	Workers int

	// ResultJSONPath, when set, receives the mapping as JSON.
	ResultJSONPath string

	Metrics font.MetricsSource
	Backend raster.Backend
	Filter  canvas.Filter

	// Parser names the font parser backend. Empty means the default.
	Parser string

	// FastPath resolves named Unicode characters without the recognizer.
	FastPath bool

	// RecognizerWorkers bounds concurrent recognizer calls.
	RecognizerWorkers int

	// RecognizerTimeout bounds each recognizer call. Zero means no limit.
	RecognizerTimeout time.Duration

	// JSONKeys selects glyph IDs or codepoints as JSON keys.
	JSONKeys export.KeyMode

	// Unresolved, when set, is written instead of null for unresolved
	// entries.
	Unresolved *string
}

// DefaultConfig returns the default configuration: images saved onto a
// 200 px white canvas with the glyph at 100 px, 3 render workers, win
// metrics, the vector rasterizer with Lanczos resampling and the fast path
// enabled. FontPath and OutputDir still need to be set.
func DefaultConfig() Config {
	return Config{
		SaveImages:        true,
		CanvasSize:        canvas.DefaultCanvasSize,
		Background:        color.White,
		Workers:           render.DefaultWorkers,
		Metrics:           font.MetricsWin,
		Backend:           raster.BackendVector,
		Filter:            canvas.FilterLanczos,
		FastPath:          true,
		RecognizerWorkers: 1,
	}
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.FontPath == "" {
		return ErrNoFontPath
	}
	if c.OutputDir == "" {
		return ErrNoOutputDir
	}
	if c.Workers <= 0 || c.RecognizerWorkers <= 0 {
		return fmt.Errorf("%w: render %d, recognizer %d", ErrBadWorkers, c.Workers, c.RecognizerWorkers)
	}
	if c.RecognizerTimeout < 0 {
		return fmt.Errorf("fontmap: negative recognizer timeout %v", c.RecognizerTimeout)
	}
	o := c.canvasOptions()
	if o.CanvasSize <= 0 || o.MaxDimension <= 0 || o.MaxDimension > o.CanvasSize {
		return fmt.Errorf("%w: canvas %d, max dimension %d",
			canvas.ErrInvalidGlyphDimensions, o.CanvasSize, o.MaxDimension)
	}
	return nil
}

func (c Config) canvasOptions() canvas.Options {
	maxDim := c.MaxDimension
	if maxDim == 0 {
		maxDim = c.CanvasSize / 2
	}
	bg := c.Background
	if bg == nil {
		bg = color.White
	}
	return canvas.Options{
		MaxDimension: maxDim,
		CanvasSize:   c.CanvasSize,
		Background:   bg,
		Filter:       c.Filter,
	}
}
