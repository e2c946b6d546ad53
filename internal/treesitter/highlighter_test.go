package treesitter

import (
	"context"
	"testing"
)

func hasKind(spans []HighlightSpan, kind string, startCol int) bool {
	for _, s := range spans {
		if s.Kind == kind && s.StartCol == startCol {
			return true
		}
	}
	return false
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"go":     "go",
		" Go ":   "go",
		"golang": "go",
		"yml":    "yaml",
		"sh":     "bash",
		"toml":   "toml",
		"python": "",
		"":       "",
	}
	for in, want := range cases {
		if got := Normalize(in); got != want {
			t.Fatalf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNewUnsupported(t *testing.T) {
	if _, err := New("cobol"); err == nil {
		t.Fatalf("New(cobol) error = nil, want error")
	}
}

func TestLanguagesCompile(t *testing.T) {
	for _, name := range Languages() {
		h, err := New(name)
		if err != nil {
			t.Fatalf("New(%q) error: %v", name, err)
		}
		h.Close()
	}
}

func TestGoHighlights(t *testing.T) {
	h, err := New("go")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer h.Close()

	if spans := h.Highlights(0, 1); spans != nil {
		t.Fatalf("highlights before parse = %v, want nil", spans)
	}

	src := "package main\n\n// hi\nfunc main() {}\n"
	if err := h.Parse(context.Background(), src, 1); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	spans := h.Highlights(0, 3)
	if !hasKind(spans[0], "keyword", 0) {
		t.Fatalf("line 0 spans = %v, want keyword at 0", spans[0])
	}
	if !hasKind(spans[2], "comment", 0) {
		t.Fatalf("line 2 spans = %v, want comment at 0", spans[2])
	}
	if !hasKind(spans[3], "function", 5) {
		t.Fatalf("line 3 spans = %v, want function at 5", spans[3])
	}
	if v, ok := h.Version(); !ok || v != 1 {
		t.Fatalf("Version = %d,%v, want 1,true", v, ok)
	}
}

func TestBashHighlights(t *testing.T) {
	h, err := New("sh")
	if err != nil {
		t.Fatalf("New(sh) error: %v", err)
	}
	defer h.Close()
	if h.Language() != "bash" {
		t.Fatalf("Language = %q, want bash", h.Language())
	}

	src := "if true; then\n  echo hi\nfi\n"
	if err := h.Parse(context.Background(), src, 1); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	spans := h.Highlights(0, 2)
	if !hasKind(spans[0], "keyword", 0) {
		t.Fatalf("line 0 spans = %v, want keyword at 0", spans[0])
	}
	if !hasKind(spans[1], "function", 2) {
		t.Fatalf("line 1 spans = %v, want function at 2", spans[1])
	}
	if !hasKind(spans[2], "keyword", 0) {
		t.Fatalf("line 2 spans = %v, want keyword at 0", spans[2])
	}
}

func TestHighlightsUseRuneColumns(t *testing.T) {
	h, err := New("go")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer h.Close()

	src := "package main\nvar s = \"жж\" // x\n"
	if err := h.Parse(context.Background(), src, 1); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	spans := h.Highlights(1, 1)[1]
	if !hasKind(spans, "string", 8) {
		t.Fatalf("spans = %v, want string at 8", spans)
	}
	// The comment follows two 2-byte runes; in runes it starts at col 13.
	if !hasKind(spans, "comment", 13) {
		t.Fatalf("spans = %v, want comment at 13", spans)
	}
}

func TestHighlightsWindow(t *testing.T) {
	h, err := New("toml")
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	defer h.Close()

	src := "# top\n[editor]\ntab-width = 4\n"
	if err := h.Parse(context.Background(), src, 7); err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	spans := h.Highlights(2, 2)
	if _, ok := spans[0]; ok {
		t.Fatalf("row 0 outside window returned spans")
	}
	if !hasKind(spans[2], "number", 12) {
		t.Fatalf("row 2 spans = %v, want number at 12", spans[2])
	}
	if h.Highlights(3, 1) != nil {
		t.Fatalf("inverted window returned spans")
	}
}
