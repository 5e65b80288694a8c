package fontmap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/fontmap/export"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/raster"
	"github.com/gogpu/fontmap/render"
	"github.com/gogpu/fontmap/resolve"
)

// Session owns one loaded font for the lifetime of a recovery run.
type Session struct {
	cfg      Config
	font     *font.Font
	renderer *render.Renderer
}

// Open validates cfg and loads the font. A font that cannot be loaded is
// reported as *font.LoadError.
func Open(cfg Config) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts := []font.Option{font.WithMetrics(cfg.Metrics)}
	if cfg.Parser != "" {
		opts = append(opts, font.WithParser(cfg.Parser))
	}
	f, err := font.Load(cfg.FontPath, opts...)
	if err != nil {
		return nil, err
	}
	return newSession(cfg, f), nil
}

// OpenFont is like Open for a font that is already loaded. cfg.FontPath is
// not required.
func OpenFont(cfg Config, f *font.Font) (*Session, error) {
	if cfg.FontPath == "" {
		cfg.FontPath = f.Path()
		if cfg.FontPath == "" {
			cfg.FontPath = "(memory)"
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newSession(cfg, f), nil
}

func newSession(cfg Config, f *font.Font) *Session {
	s := &Session{
		cfg:  cfg,
		font: f,
		renderer: render.New(
			render.WithWorkers(cfg.Workers),
			render.WithCanvas(cfg.canvasOptions()),
			render.WithRasterizer(raster.New(raster.WithBackend(cfg.Backend))),
		),
	}
	Logger().Info("fontmap: session opened",
		slog.String("font", f.Name()),
		slog.String("path", cfg.FontPath),
		slog.Int("codepoints", f.Mapping().Len()),
		slog.Int("glyph_ids", len(f.Mapping().IDs())))
	return s
}

// Font returns the loaded font.
func (s *Session) Font() *font.Font {
	return s.font
}

// Config returns the session configuration.
func (s *Session) Config() Config {
	return s.cfg
}

// Render writes every glyph image into the output directory.
func (s *Session) Render(ctx context.Context) (*render.Report, error) {
	return s.renderer.RenderAll(ctx, s.font, s.cfg.OutputDir)
}

// Resolve resolves the images in the output directory with rec.
func (s *Session) Resolve(ctx context.Context, rec resolve.Recognizer) (*resolve.Result, error) {
	r := resolve.New(rec,
		resolve.WithFastPath(s.cfg.FastPath),
		resolve.WithWorkers(s.cfg.RecognizerWorkers),
		resolve.WithTimeout(s.cfg.RecognizerTimeout))
	return r.Resolve(ctx, s.font.Mapping(), s.cfg.OutputDir)
}

// Export writes res to ResultJSONPath. It does nothing when the path is
// empty.
func (s *Session) Export(res *resolve.Result) error {
	if s.cfg.ResultJSONPath == "" {
		return nil
	}
	err := export.WriteFile(s.cfg.ResultJSONPath, res, export.Options{
		Keys:       s.cfg.JSONKeys,
		Unresolved: s.cfg.Unresolved,
		Indent:     "  ",
	})
	if err != nil {
		return err
	}
	Logger().Info("fontmap: mapping written", slog.String("path", s.cfg.ResultJSONPath))
	return nil
}

// Run renders (when SaveImages is set), resolves with rec and exports (when
// ResultJSONPath is set). Per-glyph failures never abort the run; they
// show up as unresolved or missing entries in the result.
func (s *Session) Run(ctx context.Context, rec resolve.Recognizer) (*resolve.Result, error) {
	if s.cfg.SaveImages {
		rep, err := s.Render(ctx)
		if err != nil {
			return nil, fmt.Errorf("fontmap: render: %w", err)
		}
		for _, fl := range rep.Failed {
			Logger().Debug("fontmap: glyph skipped", slog.String("id", fl.Entry.ID), slog.Any("error", fl.Err))
		}
	}
	res, err := s.Resolve(ctx, rec)
	if err != nil {
		return res, fmt.Errorf("fontmap: resolve: %w", err)
	}
	if err := s.Export(res); err != nil {
		return res, fmt.Errorf("fontmap: %w", err)
	}
	return res, nil
}
