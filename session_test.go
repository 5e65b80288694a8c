package fontmap_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontmap"
	"github.com/gogpu/fontmap/canvas"
	"github.com/gogpu/fontmap/export"
	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/internal/fonttest"
	"github.com/gogpu/fontmap/ocr"
	"github.com/gogpu/fontmap/raster"
	"github.com/gogpu/fontmap/resolve"
)

// darkBounds returns the bounding box of pixels darker than mid grey.
func darkBounds(img image.Image) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if cr, _, _, _ := img.At(x, y).RGBA(); cr < 0x8000 {
				r = r.Union(image.Rect(x, y, x+1, y+1))
			}
		}
	}
	return r
}

func TestRunThreeGlyph(t *testing.T) {
	for _, backend := range []raster.Backend{raster.BackendVector, raster.BackendGG} {
		t.Run(backend.String(), func(t *testing.T) {
			dir := t.TempDir()
			cfg := fontmap.DefaultConfig()
			cfg.OutputDir = filepath.Join(dir, "glyphs")
			cfg.ResultJSONPath = filepath.Join(dir, "map.json")
			cfg.CanvasSize = 200
			cfg.Backend = backend
			cfg.JSONKeys = export.KeyCodepoint

			s, err := fontmap.OpenFont(cfg, fonttest.MustFont(fonttest.ThreeGlyph()))
			if err != nil {
				t.Fatalf("OpenFont() error = %v", err)
			}

			var calls int
			rec := resolve.RecognizerFunc(func(_ context.Context, data []byte) (string, error) {
				calls++
				img, err := png.Decode(bytes.NewReader(data))
				if err != nil {
					t.Errorf("recognizer got invalid PNG: %v", err)
					return "", err
				}
				if img.Bounds() != image.Rect(0, 0, 200, 200) {
					t.Errorf("image bounds = %v, want 200x200", img.Bounds())
				}
				// 2000x1000 raw image letterboxed to 100x50 at (50, 75);
				// the ink band is rows 20..30 of it.
				got := darkBounds(img)
				if got.Min.X != 50 || got.Max.X != 150 || got.Min.Y < 94 || got.Max.Y > 106 {
					t.Errorf("ink bounds = %v, want x 50..150 centred on row 100", got)
				}
				if cy := (got.Min.Y + got.Max.Y) / 2; cy < 99 || cy > 101 {
					t.Errorf("ink centre row = %d, want 100", cy)
				}
				return "龍", nil
			})

			res, err := s.Run(context.Background(), rec)
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if calls != 1 {
				t.Errorf("recognizer calls = %d, want 1 (only U+E000)", calls)
			}

			want := []resolve.Entry{
				{Codepoint: 'A', ID: "square", Text: "A", Status: resolve.StatusNamed},
				{Codepoint: 0xE000, ID: "wide", Text: "龍", Status: resolve.StatusRecognized},
				{Codepoint: 0xE001, ID: "zero", Status: resolve.StatusMissing},
			}
			if diff := cmp.Diff(want, res.Entries()); diff != "" {
				t.Errorf("result mismatch (-want +got):\n%s", diff)
			}

			data, err := os.ReadFile(cfg.ResultJSONPath)
			if err != nil {
				t.Fatalf("read JSON: %v", err)
			}
			var got map[string]*string
			if err := json.Unmarshal(data, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if len(got) != 3 || got["U+0041"] == nil || *got["U+0041"] != "A" ||
				got["U+E000"] == nil || *got["U+E000"] != "龍" || got["U+E001"] != nil {
				t.Errorf("JSON = %s", data)
			}
		})
	}
}

func TestRunGoRegular(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	cfg := fontmap.DefaultConfig()
	cfg.FontPath = path
	cfg.OutputDir = filepath.Join(t.TempDir(), "out")

	s, err := fontmap.Open(cfg)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	tmpl, err := ocr.NewTemplate("")
	if err != nil {
		t.Fatalf("NewTemplate() error = %v", err)
	}
	res, err := s.Run(context.Background(), tmpl)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if res.Len() != s.Font().Mapping().Len() {
		t.Errorf("Len() = %d, want one entry per codepoint (%d)", res.Len(), s.Font().Mapping().Len())
	}
	for _, r := range "BRx7" {
		if e, _ := res.Lookup(r); e.Text != string(r) || e.Status != resolve.StatusNamed {
			t.Errorf("Lookup(%q) = %+v, want named", r, e)
		}
	}
	// The space has no outline: it has no image and is reported missing.
	if e, _ := res.Lookup(' '); e.Status != resolve.StatusMissing {
		t.Errorf("Lookup(' ').Status = %v, want missing", e.Status)
	}
}

func TestRunWithoutSavingImages(t *testing.T) {
	cfg := fontmap.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.SaveImages = false

	s, err := fontmap.OpenFont(cfg, fonttest.MustFont(fonttest.ThreeGlyph()))
	if err != nil {
		t.Fatalf("OpenFont() error = %v", err)
	}
	rec := resolve.RecognizerFunc(func(context.Context, []byte) (string, error) {
		t.Error("recognizer called without images")
		return "", nil
	})
	res, err := s.Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := res.Count(resolve.StatusMissing); got != 3 {
		t.Errorf("Count(missing) = %d, want 3", got)
	}
}

func TestRunIgnoresImageFromEarlierRun(t *testing.T) {
	cfg := fontmap.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	// The zero-width glyph fails to render; its picture from a previous
	// font must not be recognized.
	stale := filepath.Join(cfg.OutputDir, "zero.png")
	if err := os.WriteFile(stale, []byte("old"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := fontmap.OpenFont(cfg, fonttest.MustFont(fonttest.ThreeGlyph()))
	if err != nil {
		t.Fatalf("OpenFont() error = %v", err)
	}
	rec := resolve.RecognizerFunc(func(_ context.Context, data []byte) (string, error) {
		if string(data) == "old" {
			return "STALE", nil
		}
		return "wide", nil
	})
	res, err := s.Run(context.Background(), rec)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	e, _ := res.Lookup(fonttest.ZeroWidthRune)
	if e.Status != resolve.StatusMissing || e.Text != "" {
		t.Errorf("zero-width entry = %v %q, want missing", e.Status, e.Text)
	}
	if _, err := os.Stat(stale); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Stat(zero.png) error = %v, want not exist", err)
	}
	if e, _ := res.Lookup(fonttest.WideRune); e.Text != "wide" {
		t.Errorf("wide entry text = %q, want wide", e.Text)
	}
}

func TestOpenErrors(t *testing.T) {
	cfg := fontmap.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	cfg.FontPath = filepath.Join(t.TempDir(), "missing.woff")

	_, err := fontmap.Open(cfg)
	var le *font.LoadError
	if !errors.As(err, &le) {
		t.Errorf("Open(missing font) error = %v, want *font.LoadError", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := fontmap.DefaultConfig()
	valid.FontPath = "f.ttf"
	valid.OutputDir = "out"

	tests := []struct {
		name   string
		mutate func(*fontmap.Config)
		want   error
	}{
		{"valid", func(*fontmap.Config) {}, nil},
		{"no font", func(c *fontmap.Config) { c.FontPath = "" }, fontmap.ErrNoFontPath},
		{"no output", func(c *fontmap.Config) { c.OutputDir = "" }, fontmap.ErrNoOutputDir},
		{"no workers", func(c *fontmap.Config) { c.Workers = 0 }, fontmap.ErrBadWorkers},
		{"max exceeds canvas", func(c *fontmap.Config) { c.MaxDimension = 300 }, canvas.ErrInvalidGlyphDimensions},
		{"zero canvas", func(c *fontmap.Config) { c.CanvasSize = 0 }, canvas.ErrInvalidGlyphDimensions},
		{"explicit max", func(c *fontmap.Config) { c.CanvasSize = 400; c.MaxDimension = 400 }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	fontmap.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { fontmap.SetLogger(nil) })

	cfg := fontmap.DefaultConfig()
	cfg.OutputDir = t.TempDir()
	if _, err := fontmap.OpenFont(cfg, fonttest.MustFont(fonttest.ThreeGlyph())); err != nil {
		t.Fatalf("OpenFont() error = %v", err)
	}
	if !strings.Contains(buf.String(), "session opened") {
		t.Errorf("log = %q, want the session message", buf.String())
	}

	fontmap.SetLogger(nil)
	if fontmap.Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("Logger() enabled after SetLogger(nil)")
	}
}
