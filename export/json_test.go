package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gogpu/fontmap/resolve"
)

func sampleResult() *resolve.Result {
	return resolve.NewResult([]resolve.Entry{
		{Codepoint: 0xE003, ID: "uniE003", Status: resolve.StatusMissing},
		{Codepoint: 'A', ID: "square", Text: "A", Status: resolve.StatusNamed},
		{Codepoint: 0xE000, ID: "uniE000", Text: "龍", Status: resolve.StatusRecognized},
		{Codepoint: 0xE001, ID: "uniE001", Status: resolve.StatusUnresolved},
		{Codepoint: 0xE002, ID: "amp", Text: "<&>", Status: resolve.StatusRecognized},
	})
}

func TestWriteJSON(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{
			name: "ids with null",
			opts: Options{},
			want: `{"amp":"<&>","square":"A","uniE000":"龍","uniE001":null,"uniE003":null}` + "\n",
		},
		{
			name: "codepoints with sentinel",
			opts: Options{Keys: KeyCodepoint, Unresolved: Sentinel("Null")},
			want: `{"U+0041":"A","U+E000":"龍","U+E001":"Null","U+E002":"<&>","U+E003":"Null"}` + "\n",
		},
		{
			name: "indented",
			opts: Options{Keys: KeyCodepoint, Indent: "  "},
			want: "{\n" +
				`  "U+0041": "A",` + "\n" +
				`  "U+E000": "龍",` + "\n" +
				`  "U+E001": null,` + "\n" +
				`  "U+E002": "<&>",` + "\n" +
				`  "U+E003": null` + "\n" +
				"}\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := WriteJSON(&buf, sampleResult(), tt.opts); err != nil {
				t.Fatalf("WriteJSON() error = %v", err)
			}
			if diff := cmp.Diff(tt.want, buf.String()); diff != "" {
				t.Errorf("WriteJSON() mismatch (-want +got):\n%s", diff)
			}
			if !json.Valid(buf.Bytes()) {
				t.Error("WriteJSON() output is not valid JSON")
			}
		})
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, resolve.NewResult(nil), Options{Indent: "  "}); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}
	if got := buf.String(); got != "{}\n" {
		t.Errorf("WriteJSON(empty) = %q, want %q", got, "{}\n")
	}
}

func TestMapSharedID(t *testing.T) {
	res := resolve.NewResult([]resolve.Entry{
		{Codepoint: 0xE000, ID: "g", Status: resolve.StatusUnresolved},
		{Codepoint: 0xE001, ID: "g", Text: "x", Status: resolve.StatusRecognized},
		{Codepoint: 0xE002, ID: "g", Text: "y", Status: resolve.StatusRecognized},
		{Codepoint: 0xE003, ID: "h", Status: resolve.StatusMissing},
		{Codepoint: 0xE004, ID: "h", Status: resolve.StatusUnresolved},
	})
	m := Map(res, KeyID)
	if len(m) != 2 {
		t.Fatalf("len(Map()) = %d, want 2", len(m))
	}
	if v := m["g"]; v == nil || *v != "x" {
		t.Errorf(`Map()["g"] = %v, want "x"`, v)
	}
	if v, ok := m["h"]; !ok || v != nil {
		t.Errorf(`Map()["h"] = %v, %v, want nil, true`, v, ok)
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "map.json")
	if err := WriteFile(path, sampleResult(), Options{}); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	data, err := os.ReadFile(path) // #nosec G304 -- test file
	if err != nil {
		t.Fatal(err)
	}
	var got map[string]*string
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if v := got["uniE000"]; v == nil || *v != "龍" {
		t.Errorf(`"uniE000" = %v, want "龍"`, v)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("dir has %d entries, want only map.json", len(entries))
	}
}

func TestParseKeyMode(t *testing.T) {
	tests := []struct {
		in      string
		want    KeyMode
		wantErr bool
	}{
		{"id", KeyID, false},
		{"", KeyID, false},
		{"codepoint", KeyCodepoint, false},
		{"hex", 0, true},
	}
	for _, tt := range tests {
		got, err := ParseKeyMode(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKeyMode(%q) = %v, %v, want %v, wantErr %v", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}
