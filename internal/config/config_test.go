package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestConfigDirEnv(t *testing.T) {
	t.Setenv("VISIONARY_CONFIG_HOME", "/tmp/visionary-config")
	dir, err := ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/visionary-config" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/visionary-config")
	}

	t.Setenv("VISIONARY_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err = ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir error: %v", err)
	}
	if dir != "/tmp/xdg/visionary" {
		t.Fatalf("ConfigDir = %q, want %q", dir, "/tmp/xdg/visionary")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("VISIONARY_CONFIG_HOME", t.TempDir())
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want 4", cfg.Editor.TabWidth)
	}
	if cfg.Editor.DefaultText != "Hello, World!" {
		t.Fatalf("DefaultText = %q, want %q", cfg.Editor.DefaultText, "Hello, World!")
	}
	if cfg.Keymap["ctrl+v"] != "paste" {
		t.Fatalf("keymap ctrl+v = %q, want %q", cfg.Keymap["ctrl+v"], "paste")
	}
}

func TestLoadWithThemeAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VISIONARY_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "test.toml"), `
foreground = "#111111"
background = "#222222"
selection-background = "#333333"
`)

	writeFile(t, filepath.Join(dir, "config.toml"), `
[editor]
tab-width = 8
default-text = "package main"
line-numbers = "relative"
language = "go"

[theme]
theme = "test"
background = "#123456"

[keymap]
"ctrl+t" = "toggle_select"
`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("TabWidth = %d, want 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.DefaultText != "package main" {
		t.Fatalf("DefaultText = %q, want %q", cfg.Editor.DefaultText, "package main")
	}
	if cfg.Editor.LineNumbers != "relative" {
		t.Fatalf("LineNumbers = %q, want %q", cfg.Editor.LineNumbers, "relative")
	}
	if cfg.Editor.Language != "go" {
		t.Fatalf("Language = %q, want %q", cfg.Editor.Language, "go")
	}
	if cfg.Theme.Foreground != "#111111" {
		t.Fatalf("Foreground = %q, want %q", cfg.Theme.Foreground, "#111111")
	}
	if cfg.Theme.Background != "#123456" {
		t.Fatalf("Background = %q, want %q", cfg.Theme.Background, "#123456")
	}
	if cfg.Theme.SelectionBackground != "#333333" {
		t.Fatalf("SelectionBackground = %q, want %q", cfg.Theme.SelectionBackground, "#333333")
	}
	if cfg.Keymap["ctrl+t"] != "toggle_select" {
		t.Fatalf("keymap ctrl+t = %q, want %q", cfg.Keymap["ctrl+t"], "toggle_select")
	}
	if cfg.Keymap["left"] != "move_left" {
		t.Fatalf("keymap left = %q, want %q", cfg.Keymap["left"], "move_left")
	}
}

func TestLoadInvalidToml(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VISIONARY_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[editor\ntab-width = ")

	cfg, err := Load()
	if err == nil {
		t.Fatalf("Load error = nil, want parse error")
	}
	if cfg.Editor.TabWidth != 4 {
		t.Fatalf("TabWidth = %d, want defaults on error", cfg.Editor.TabWidth)
	}
}

func TestLoadMissingTheme(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VISIONARY_CONFIG_HOME", dir)
	writeFile(t, filepath.Join(dir, "config.toml"), "[theme]\ntheme = \"nope\"\n")

	if _, err := Load(); err == nil {
		t.Fatalf("Load error = nil, want missing theme error")
	}
}

func TestLoadThemeWrapped(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VISIONARY_CONFIG_HOME", dir)

	writeFile(t, filepath.Join(dir, "theme", "wrapped.toml"), `
[theme]
foreground = "#aaaaaa"
current-line-background = "#bbbbbb"
`)

	theme, err := LoadTheme("wrapped")
	if err != nil {
		t.Fatalf("LoadTheme error: %v", err)
	}
	if theme.Foreground != "#aaaaaa" {
		t.Fatalf("Foreground = %q, want %q", theme.Foreground, "#aaaaaa")
	}
	if theme.CurrentLineBackground != "#bbbbbb" {
		t.Fatalf("CurrentLineBackground = %q, want %q", theme.CurrentLineBackground, "#bbbbbb")
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VISIONARY_CONFIG_HOME", dir)

	changes := make(chan Config, 8)
	w, err := Watch(func(cfg Config, err error) {
		if err != nil {
			return
		}
		select {
		case changes <- cfg:
		default:
		}
	})
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	defer w.Close()

	writeFile(t, filepath.Join(dir, "config.toml"), "[theme]\nforeground = \"#010203\"\n")

	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-changes:
			if cfg.Theme.Foreground == "#010203" {
				return
			}
		case <-deadline:
			t.Fatalf("no reload after writing config.toml")
		}
	}
}

func TestWatchIgnoresOtherFiles(t *testing.T) {
	if !isConfigFile("/cfg/config.toml") {
		t.Fatalf("config.toml not recognized")
	}
	if !isConfigFile("/cfg/theme/dark.toml") {
		t.Fatalf("theme file not recognized")
	}
	if isConfigFile("/cfg/visionary.log") {
		t.Fatalf("log file treated as config")
	}
}

func TestWatcherCloseTwice(t *testing.T) {
	t.Setenv("VISIONARY_CONFIG_HOME", t.TempDir())
	w, err := Watch(func(Config, error) {})
	if err != nil {
		t.Fatalf("Watch error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("second Close error: %v", err)
	}
}
