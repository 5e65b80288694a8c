// Command fontmap recovers the characters behind an obfuscated font.
//
//	fontmap -font page.woff -out glyphs -json mapping.json
//	fontmap -font page.ttf -out glyphs -ocr command -ocr-cmd "tesseract stdin stdout --psm 10"
//	fontmap -font page.ttf -out glyphs -ocr http -ocr-url http://127.0.0.1:9898/ocr/b64 -ocr-field image
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/flopp/go-findfont"
	"golang.org/x/term"

	"github.com/gogpu/fontmap"
	"github.com/gogpu/fontmap/canvas"
	"github.com/gogpu/fontmap/export"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/ocr"
	"github.com/gogpu/fontmap/raster"
	"github.com/gogpu/fontmap/render"
	"github.com/gogpu/fontmap/resolve"
)

type options struct {
	fontPath   string
	outDir     string
	jsonPath   string
	canvasSize int
	maxDim     int
	background string
	workers    int
	saveImages bool
	metrics    string
	backend    string
	filter     string
	noFastPath bool
	keys       string
	null       string
	ocrKind    string
	ocrCmd     string
	ocrURL     string
	ocrField   string
	alphabet   string
	refFont    string
	timeout    time.Duration
	verbose    bool
}

func parseFlags(fs *flag.FlagSet, args []string) (*options, error) {
	o := &options{}
	fs.StringVar(&o.fontPath, "font", "", "font file (ttf, otf, woff)")
	fs.StringVar(&o.outDir, "out", "fontmap-out", "directory for glyph images")
	fs.StringVar(&o.jsonPath, "json", "", "write the mapping to this JSON file instead of stdout")
	fs.IntVar(&o.canvasSize, "canvas", canvas.DefaultCanvasSize, "canvas size in pixels")
	fs.IntVar(&o.maxDim, "max", 0, "longer side of the scaled glyph (default canvas/2)")
	fs.StringVar(&o.background, "background", "white", "canvas background colour (name or #rrggbb)")
	fs.IntVar(&o.workers, "workers", render.DefaultWorkers, "render workers")
	fs.BoolVar(&o.saveImages, "save-images", true, "render glyph images before resolving")
	fs.StringVar(&o.metrics, "metrics", "win", "vertical metrics source: win or hhea")
	fs.StringVar(&o.backend, "backend", "vector", "rasterizer: vector or gg")
	fs.StringVar(&o.filter, "filter", "lanczos", "resampling: lanczos, catmullrom, bilinear, approxbilinear, nearest")
	fs.BoolVar(&o.noFastPath, "no-fast-path", false, "send named Unicode characters to the recognizer too")
	fs.StringVar(&o.keys, "keys", "id", "JSON keys: id or codepoint")
	fs.StringVar(&o.null, "null", "", "value written for unresolved entries (default JSON null)")
	fs.StringVar(&o.ocrKind, "ocr", "template", "recognizer: template, command or http")
	fs.StringVar(&o.ocrCmd, "ocr-cmd", "", "command line for -ocr command; {image} is replaced by a file path")
	fs.StringVar(&o.ocrURL, "ocr-url", "", "endpoint for -ocr http")
	fs.StringVar(&o.ocrField, "ocr-field", "", "JSON field carrying base64 image for -ocr http (raw PNG when empty)")
	fs.StringVar(&o.alphabet, "alphabet", "", "candidate characters for -ocr template")
	fs.StringVar(&o.refFont, "ref-font", "", "reference font for -ocr template: a path or an installed font file name (default Go Regular)")
	fs.DurationVar(&o.timeout, "timeout", 0, "per-image recognizer timeout")
	fs.BoolVar(&o.verbose, "v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if o.fontPath == "" {
		return nil, errors.New("-font is required")
	}
	return o, nil
}

func (o *options) config() (fontmap.Config, error) {
	cfg := fontmap.DefaultConfig()
	cfg.FontPath = o.fontPath
	cfg.OutputDir = o.outDir
	cfg.ResultJSONPath = o.jsonPath
	cfg.CanvasSize = o.canvasSize
	cfg.MaxDimension = o.maxDim
	cfg.Workers = o.workers
	cfg.SaveImages = o.saveImages
	cfg.FastPath = !o.noFastPath
	cfg.RecognizerTimeout = o.timeout

	var err error
	if cfg.Background, err = canvas.ParseColor(o.background); err != nil {
		return cfg, err
	}
	if cfg.Metrics, err = font.ParseMetricsSource(o.metrics); err != nil {
		return cfg, err
	}
	if cfg.Backend, err = raster.ParseBackend(o.backend); err != nil {
		return cfg, err
	}
	if cfg.Filter, err = canvas.ParseFilter(o.filter); err != nil {
		return cfg, err
	}
	if cfg.JSONKeys, err = export.ParseKeyMode(o.keys); err != nil {
		return cfg, err
	}
	if o.null != "" {
		cfg.Unresolved = export.Sentinel(o.null)
	}
	return cfg, cfg.Validate()
}

func (o *options) recognizer() (resolve.Recognizer, error) {
	switch o.ocrKind {
	case "template", "":
		var opts []ocr.TemplateOption
		if o.refFont != "" {
			ref, err := loadReferenceFont(o.refFont)
			if err != nil {
				return nil, err
			}
			opts = append(opts, ocr.WithReferenceFont(ref))
		}
		return ocr.NewTemplate(o.alphabet, opts...)
	case "command":
		return ocr.ParseCommand(o.ocrCmd)
	case "http":
		if o.ocrURL == "" {
			return nil, errors.New("-ocr http needs -ocr-url")
		}
		return &ocr.HTTP{URL: o.ocrURL, Field: o.ocrField, Client: &http.Client{Timeout: time.Minute}}, nil
	}
	return nil, fmt.Errorf("unknown -ocr %q", o.ocrKind)
}

// loadReferenceFont loads name as a path, or else looks it up among the
// installed system fonts.
func loadReferenceFont(name string) (*font.Font, error) {
	if _, err := os.Stat(name); err == nil {
		return font.Load(name)
	}
	path, err := findfont.Find(name)
	if err != nil {
		return nil, fmt.Errorf("reference font %q: %w", name, err)
	}
	return font.Load(path)
}

func newLogger(w io.Writer, fd uintptr, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if term.IsTerminal(int(fd)) { // #nosec G115 -- file descriptors fit in int
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(flag.NewFlagSet("fontmap", flag.ContinueOnError), args)
	if err != nil {
		return err
	}
	fontmap.SetLogger(newLogger(os.Stderr, os.Stderr.Fd(), o.verbose))

	cfg, err := o.config()
	if err != nil {
		return err
	}
	rec, err := o.recognizer()
	if err != nil {
		return err
	}
	s, err := fontmap.Open(cfg)
	if err != nil {
		return err
	}
	res, err := s.Run(ctx, rec)
	if err != nil {
		return err
	}
	if cfg.ResultJSONPath == "" {
		return export.WriteJSON(stdout, res, export.Options{
			Keys:       cfg.JSONKeys,
			Unresolved: cfg.Unresolved,
			Indent:     "  ",
		})
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Fatalf("fontmap: %v", err)
	}
}
