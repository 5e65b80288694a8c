package font_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/fontmap/font"
	"github.com/gogpu/fontmap/internal/fonttest"
)

func TestParseGoRegular(t *testing.T) {
	f, err := font.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if f.Name() == "" {
		t.Error("Name() is empty")
	}
	m := f.Mapping()
	if m.Len() < 95 {
		t.Errorf("Mapping().Len() = %d, want at least the printable ASCII range", m.Len())
	}

	e, ok := m.ByCodepoint('A')
	if !ok {
		t.Fatal("ByCodepoint('A') not found")
	}
	if e.ID == "" {
		t.Error("ByCodepoint('A').ID is empty")
	}
	if name := f.Parsed().GlyphName(e.GID); name != "" && name != e.ID {
		t.Errorf("ID = %q, want glyph name %q", e.ID, name)
	}

	found := false
	for _, shared := range m.ByID(e.ID) {
		if shared.Codepoint == 'A' {
			found = true
		}
	}
	if !found {
		t.Errorf("ByID(%q) does not contain 'A'", e.ID)
	}

	entries := m.Entries()
	for i := 1; i < len(entries); i++ {
		if entries[i-1].Codepoint >= entries[i].Codepoint {
			t.Fatalf("Entries() not sorted at %d: U+%04X >= U+%04X", i, entries[i-1].Codepoint, entries[i].Codepoint)
		}
	}
}

func TestMetricsSources(t *testing.T) {
	tests := []struct {
		name string
		src  font.MetricsSource
	}{
		{"win", font.MetricsWin},
		{"hhea", font.MetricsHhea},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := font.Parse(goregular.TTF, font.WithMetrics(tt.src))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			m := f.Metrics()
			if m.Ascent <= 0 {
				t.Errorf("Ascent = %d, want > 0", m.Ascent)
			}
			if m.Descent >= 0 {
				t.Errorf("Descent = %d, want < 0", m.Descent)
			}
			if m.Height() != m.Ascent-m.Descent {
				t.Errorf("Height() = %d, want %d", m.Height(), m.Ascent-m.Descent)
			}
			if m.UnitsPerEm != 2048 {
				t.Errorf("UnitsPerEm = %d, want 2048", m.UnitsPerEm)
			}
		})
	}
}

func TestGlyphOutline(t *testing.T) {
	f, err := font.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	a, _ := f.Mapping().ByCodepoint('A')
	o, err := f.Glyph(a.GID)
	if err != nil {
		t.Fatalf("Glyph('A') error = %v", err)
	}
	if o.IsEmpty() {
		t.Fatal("Glyph('A') outline is empty")
	}
	if o.Advance <= 0 {
		t.Errorf("Advance = %v, want > 0", o.Advance)
	}
	if o.Segments[0].Op != font.SegmentMoveTo {
		t.Errorf("first segment = %v, want MoveTo", o.Segments[0].Op)
	}
	b := o.Bounds()
	// Y axis up: 'A' sits on the baseline and rises to cap height.
	if b.MinY < -1 || b.MaxY < 1000 {
		t.Errorf("Bounds() = %+v, want MinY ~ 0 and MaxY near cap height", b)
	}

	sp, _ := f.Mapping().ByCodepoint(' ')
	o, err = f.Glyph(sp.GID)
	if err != nil {
		t.Fatalf("Glyph(' ') error = %v", err)
	}
	if !o.IsEmpty() {
		t.Errorf("Glyph(' ') has %d segments, want none", len(o.Segments))
	}
	if o.Advance <= 0 {
		t.Errorf("Glyph(' ').Advance = %v, want > 0", o.Advance)
	}

	if _, err := f.Glyph(font.GlyphIndex(f.Parsed().NumGlyphs())); err == nil {
		t.Error("Glyph(out of range) error = nil")
	}
}

func TestLoadWOFF2(t *testing.T) {
	path := filepath.Join("testdata", "OpenSans-Regular.woff2")
	f, err := font.Load(path)
	if err != nil {
		t.Fatalf("Load(%s) error = %v", path, err)
	}
	if got := f.Parsed().UnitsPerEm(); got != 2048 {
		t.Errorf("UnitsPerEm() = %d, want 2048", got)
	}
	if h := f.Metrics().Height(); h <= 0 {
		t.Errorf("Metrics().Height() = %d, want > 0", h)
	}

	for _, r := range "Ag9" {
		e, ok := f.Mapping().ByCodepoint(r)
		if !ok {
			t.Fatalf("ByCodepoint(%q) not found", r)
		}
		o, err := f.Glyph(e.GID)
		if err != nil {
			t.Fatalf("Glyph(%q) error = %v", r, err)
		}
		if o.IsEmpty() || o.Advance <= 0 {
			t.Errorf("Glyph(%q): %d segments, advance %v, want an outline", r, len(o.Segments), o.Advance)
		}
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.ttf")
	if err := os.WriteFile(garbage, []byte("definitely not a font"), 0o600); err != nil {
		t.Fatal(err)
	}
	empty := filepath.Join(dir, "empty.ttf")
	if err := os.WriteFile(empty, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	woff2 := filepath.Join(dir, "truncated.woff2")
	if err := os.WriteFile(woff2, []byte("wOF2\x00\x01\x00\x00"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		target error
	}{
		{"missing", filepath.Join(dir, "missing.ttf"), fs.ErrNotExist},
		{"empty", empty, font.ErrEmptyFontData},
		{"truncated woff2", woff2, font.ErrInvalidWOFF},
		{"garbage", garbage, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := font.Load(tt.path)
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			var le *font.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("Load() error = %T, want *font.LoadError", err)
			}
			if le.Path != tt.path {
				t.Errorf("LoadError.Path = %q, want %q", le.Path, tt.path)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("Load() error = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goregular.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0o600); err != nil {
		t.Fatal(err)
	}
	f, err := font.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
}

func TestUnknownParser(t *testing.T) {
	_, err := font.Parse(goregular.TTF, font.WithParser("nope"))
	var le *font.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("Parse() error = %v, want *font.LoadError", err)
	}
}

type stubParser struct{ pf font.ParsedFont }

func (p stubParser) Parse([]byte) (font.ParsedFont, error) { return p.pf, nil }

func TestRegisterParser(t *testing.T) {
	font.RegisterParser("fonttest", stubParser{pf: fonttest.ThreeGlyph()})
	f, err := font.Parse([]byte{0, 1, 0, 0}, font.WithParser("fonttest"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got := f.Mapping().Len(); got != 3 {
		t.Errorf("Mapping().Len() = %d, want 3", got)
	}

	found := false
	for _, name := range font.Parsers() {
		if name == "fonttest" {
			found = true
		}
	}
	if !found {
		t.Errorf("Parsers() = %v, want fonttest registered", font.Parsers())
	}
}

func TestNewMetricsValidation(t *testing.T) {
	pf := fonttest.ThreeGlyph()
	pf.Ascent, pf.Descent = 0, 0
	_, err := font.New(pf)
	if !errors.Is(err, font.ErrInvalidMetrics) {
		t.Errorf("New() error = %v, want ErrInvalidMetrics", err)
	}
}

func TestNewEmptyCmap(t *testing.T) {
	pf := fonttest.ThreeGlyph()
	pf.Chars = nil
	_, err := font.New(pf)
	if !errors.Is(err, font.ErrEmptyCmap) {
		t.Errorf("New() error = %v, want ErrEmptyCmap", err)
	}
}

func TestMappingIDs(t *testing.T) {
	pf := &fonttest.Font{
		Ascent: 800, Descent: -200,
		Glyphs: []fonttest.Glyph{
			{Name: ".notdef"},
			{Name: "uniE000"},
			{Name: "uniE000"}, // duplicate name on a different glyph
			{Name: ""},        // no name
			{Name: "a/b"},     // path-hostile
		},
		Chars: map[rune]font.GlyphIndex{
			0xE000: 1,
			0xE001: 2,
			0xE002: 3,
			0xE003: 4,
			0xE004: 1, // shares glyph 1
		},
	}
	f, err := font.New(pf)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	want := []font.Entry{
		{Codepoint: 0xE000, GID: 1, ID: "uniE000"},
		{Codepoint: 0xE001, GID: 2, ID: "glyph00002"},
		{Codepoint: 0xE002, GID: 3, ID: "glyph00003"},
		{Codepoint: 0xE003, GID: 4, ID: "a_b"},
		{Codepoint: 0xE004, GID: 1, ID: "uniE000"},
	}
	if diff := cmp.Diff(want, f.Mapping().Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	if diff := cmp.Diff([]string{"a_b", "glyph00002", "glyph00003", "uniE000"}, f.Mapping().IDs()); diff != "" {
		t.Errorf("IDs() mismatch (-want +got):\n%s", diff)
	}

	if got := len(f.Mapping().ByID("uniE000")); got != 2 {
		t.Errorf("len(ByID(uniE000)) = %d, want 2", got)
	}
	if got := f.Mapping().ByID("nope"); got != nil {
		t.Errorf("ByID(nope) = %v, want nil", got)
	}

	glyphs := f.Mapping().Glyphs()
	if len(glyphs) != 4 {
		t.Fatalf("len(Glyphs()) = %d, want 4", len(glyphs))
	}
	if glyphs[0].Codepoint != 0xE000 {
		t.Errorf("Glyphs()[0] = %v, want the lowest codepoint of uniE000", glyphs[0])
	}
}

func TestNewMappingDuplicate(t *testing.T) {
	_, err := font.NewMapping([]font.Entry{
		{Codepoint: 'a', GID: 1, ID: "a"},
		{Codepoint: 'a', GID: 2, ID: "b"},
	})
	if !errors.Is(err, font.ErrDuplicateCodepoint) {
		t.Errorf("NewMapping() error = %v, want ErrDuplicateCodepoint", err)
	}
}

func TestParseMetricsSource(t *testing.T) {
	tests := []struct {
		in      string
		want    font.MetricsSource
		wantErr bool
	}{
		{"win", font.MetricsWin, false},
		{"", font.MetricsWin, false},
		{"hhea", font.MetricsHhea, false},
		{"typo", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := font.ParseMetricsSource(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMetricsSource(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMetricsSource(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
