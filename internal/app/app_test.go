package app

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/visionary/internal/clipboard"
	"github.com/kobzarvs/visionary/internal/config"
	"github.com/kobzarvs/visionary/internal/editor"
	"github.com/kobzarvs/visionary/internal/treesitter"
)

func newTestScreen(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	t.Setenv("VISIONARY_CONFIG_HOME", t.TempDir())
	t.Setenv("VISIONARY_LOG_FILE", filepath.Join(t.TempDir(), "visionary.log"))
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(40, 10)
	return s
}

func TestRunTypesAndQuits(t *testing.T) {
	s := newTestScreen(t)
	cfg := config.Default()
	cfg.Editor.DefaultText = ""

	s.InjectKey(tcell.KeyRune, 'h', tcell.ModNone)
	s.InjectKey(tcell.KeyRune, 'i', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)

	a := New()
	if err := a.run(s, cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if got := a.editor.Content(); got != "hi" {
		t.Fatalf("content = %q, want %q", got, "hi")
	}
}

func TestRunHighlightsConfiguredLanguage(t *testing.T) {
	s := newTestScreen(t)
	cfg := config.Default()
	cfg.Editor.DefaultText = "package main"
	cfg.Editor.Language = "go"

	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)

	a := New()
	if err := a.run(s, cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if !a.editor.HasHighlights() {
		t.Fatalf("no highlights after run")
	}
	if !statusContains(s, " go | Ln 1, Col 1 ") {
		t.Fatalf("status line missing language")
	}
	if a.highlightVersion != a.editor.Version() {
		t.Fatalf("highlight version = %d, want %d", a.highlightVersion, a.editor.Version())
	}
}

func TestRunUnknownLanguageKeepsEditing(t *testing.T) {
	s := newTestScreen(t)
	cfg := config.Default()
	cfg.Editor.DefaultText = ""
	cfg.Editor.Language = "cobol"

	s.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	s.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModNone)

	a := New()
	if err := a.run(s, cfg); err != nil {
		t.Fatalf("run error: %v", err)
	}
	if a.highlighter != nil {
		t.Fatalf("highlighter created for unknown language")
	}
	if got := a.editor.Content(); got != "x" {
		t.Fatalf("content = %q, want %q", got, "x")
	}
}

func TestApplyConfig(t *testing.T) {
	a := New()
	a.editor = editor.New(config.Default(), clipboard.NewMem())

	a.applyConfig(configChange{err: errors.New("bad toml")})
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	defer s.Fini()
	s.SetSize(40, 5)
	a.editor.Render(s)
	if !statusContains(s, "config: bad toml") {
		t.Fatalf("status line missing reload error")
	}

	cfg := config.Default()
	cfg.Theme.Background = "#010203"
	a.applyConfig(configChange{cfg: cfg})
	a.editor.Render(s)
	cells, w, _ := s.GetContents()
	if _, bg, _ := cells[2*w].Style.Decompose(); bg != tcell.NewRGBColor(1, 2, 3) {
		t.Fatalf("background = %v, want #010203", bg)
	}
	if !statusContains(s, "theme reloaded") {
		t.Fatalf("status line missing reload notice")
	}
}

func statusContains(s tcell.SimulationScreen, text string) bool {
	cells, w, h := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		if r := cells[(h-1)*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return strings.Contains(b.String(), text)
}

func TestConvertSpans(t *testing.T) {
	if convertSpans(nil) != nil {
		t.Fatalf("convertSpans(nil) != nil")
	}
	got := convertSpans(map[int][]treesitter.HighlightSpan{
		3: {{StartCol: 1, EndCol: 4, Kind: "keyword"}},
	})
	want := editor.HighlightSpan{StartCol: 1, EndCol: 4, Kind: "keyword"}
	if len(got[3]) != 1 || got[3][0] != want {
		t.Fatalf("convertSpans = %v, want %v", got, want)
	}
}
