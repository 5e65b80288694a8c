package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/fontmap/canvas"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/internal/logging"
	"github.com/gogpu/fontmap/internal/parallel"
	"github.com/gogpu/fontmap/raster"
)

// DefaultWorkers is the default size of the render pool.
const DefaultWorkers = 3

// Option configures a Renderer.
type Option func(*Renderer)

// WithWorkers sets the pool size. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithRasterizer replaces the default rasterizer.
func WithRasterizer(rz *raster.Rasterizer) Option {
	return func(r *Renderer) {
		if rz != nil {
			r.raster = rz
		}
	}
}

// WithCanvas sets the normalization options.
func WithCanvas(o canvas.Options) Option {
	return func(r *Renderer) {
		r.canvas = o
	}
}

// Renderer turns glyphs into canonical images.
type Renderer struct {
	raster  *raster.Rasterizer
	canvas  canvas.Options
	workers int
}

// New creates a Renderer with a vector rasterizer, default canvas options
// and DefaultWorkers workers.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		raster:  raster.New(),
		canvas:  canvas.DefaultOptions(),
		workers: DefaultWorkers,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Workers returns the pool size.
func (r *Renderer) Workers() int {
	return r.workers
}

// RenderGlyph rasterizes and normalizes one glyph.
func (r *Renderer) RenderGlyph(f *font.Font, e font.Entry) (*image.RGBA, error) {
	raw, err := r.raster.Render(f, e, f.Metrics())
	if err != nil {
		return nil, err
	}
	img, err := canvas.Normalize(raw, r.canvas)
	if err != nil {
		return nil, &raster.GlyphRenderError{Codepoint: e.Codepoint, ID: e.ID, Err: err}
	}
	return img, nil
}

// EncodeGlyph renders one glyph and returns it PNG-encoded.
func (r *Renderer) EncodeGlyph(f *font.Font, e font.Entry) ([]byte, error) {
	img, err := r.RenderGlyph(f, e)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode %s: %w", e.ID, err)
	}
	return buf.Bytes(), nil
}

type outcome struct {
	done bool
	err  error
}

// RenderAll writes <ID>.png into dir for every unique glyph of f, creating
// dir if needed. Per-glyph failures are collected in the report; the
// returned error is non-nil only when dir cannot be created or ctx was
// cancelled, in which case the report is still valid.
func (r *Renderer) RenderAll(ctx context.Context, f *font.Font, dir string) (*Report, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 -- images are meant to be shared
		return nil, fmt.Errorf("render: create output dir: %w", err)
	}

	log := logging.Logger()
	glyphs := f.Mapping().Glyphs()
	results := make([]outcome, len(glyphs))
	work := make([]func(), len(glyphs))
	for i, e := range glyphs {
		work[i] = func() {
			results[i] = outcome{done: true, err: r.renderOne(f, e, dir)}
			if results[i].err != nil {
				log.Warn("render: glyph failed",
					slog.String("id", e.ID),
					slog.String("codepoint", fmt.Sprintf("U+%04X", e.Codepoint)),
					slog.Any("error", results[i].err))
				return
			}
			log.Debug("render: glyph written", slog.String("id", e.ID))
		}
	}

	start := time.Now()
	pool := parallel.NewWorkerPool(r.workers)
	pool.ExecuteAll(ctx, work)
	pool.Close()

	rep := &Report{Dir: dir, Elapsed: time.Since(start)}
	for i, e := range glyphs {
		switch res := results[i]; {
		case !res.done:
			rep.NotAttempted = append(rep.NotAttempted, e)
		case res.err != nil:
			rep.Failed = append(rep.Failed, GlyphFailure{Entry: e, Err: res.err})
		default:
			rep.Rendered = append(rep.Rendered, e)
		}
	}

	log.Info("render: batch finished",
		slog.String("dir", dir),
		slog.Int("glyphs", len(glyphs)),
		slog.Int("rendered", len(rep.Rendered)),
		slog.Int("failed", len(rep.Failed)),
		slog.Int("not_attempted", len(rep.NotAttempted)),
		slog.Int("workers", r.workers),
		slog.Duration("elapsed", rep.Elapsed))

	if err := ctx.Err(); err != nil && !rep.Complete() {
		return rep, err
	}
	return rep, nil
}

// renderOne renders and writes a single glyph. Panics inside the parser or
// rasterizer are turned into a GlyphRenderError so one bad glyph cannot
// take down the batch. On failure any <ID>.png left by an earlier run is
// removed, so the image directory never holds a picture of a glyph that
// did not render.
func (r *Renderer) renderOne(f *font.Font, e font.Entry, dir string) (err error) {
	target := filepath.Join(dir, e.ID+".png")
	defer func() {
		if p := recover(); p != nil {
			err = &raster.GlyphRenderError{Codepoint: e.Codepoint, ID: e.ID, Err: fmt.Errorf("panic: %v", p)}
		}
		if err == nil {
			return
		}
		if rmErr := os.Remove(target); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
			err = fmt.Errorf("%w (stale image not removed: %w)", err, rmErr)
		}
	}()

	data, err := r.EncodeGlyph(f, e)
	if err != nil {
		return err
	}
	return writeFileAtomic(target, data)
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial image.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	name := tmp.Name()
	defer func() { _ = os.Remove(name) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("render: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("render: close %s: %w", path, err)
	}
	if err := os.Chmod(name, 0o644); err != nil { // #nosec G302 -- images are meant to be shared
		return fmt.Errorf("render: chmod %s: %w", path, err)
	}
	if err := os.Rename(name, path); err != nil {
		return fmt.Errorf("render: rename %s: %w", path, err)
	}
	return nil
}
