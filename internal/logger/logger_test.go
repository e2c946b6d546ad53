package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogPathEnv(t *testing.T) {
	t.Setenv("VISIONARY_LOG_FILE", "/tmp/custom.log")
	path, err := LogPath()
	if err != nil {
		t.Fatalf("LogPath error: %v", err)
	}
	if path != "/tmp/custom.log" {
		t.Fatalf("LogPath = %q, want %q", path, "/tmp/custom.log")
	}

	t.Setenv("VISIONARY_LOG_FILE", "")
	t.Setenv("VISIONARY_CONFIG_HOME", "/tmp/vis")
	path, err = LogPath()
	if err != nil {
		t.Fatalf("LogPath error: %v", err)
	}
	if path != "/tmp/vis/visionary.log" {
		t.Fatalf("LogPath = %q, want %q", path, "/tmp/vis/visionary.log")
	}

	t.Setenv("VISIONARY_CONFIG_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	path, err = LogPath()
	if err != nil {
		t.Fatalf("LogPath error: %v", err)
	}
	if path != "/tmp/xdg/visionary/visionary.log" {
		t.Fatalf("LogPath = %q, want %q", path, "/tmp/xdg/visionary/visionary.log")
	}
}

func TestInitWritesDebugEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "visionary.log")
	t.Setenv("VISIONARY_LOG_FILE", path)

	if err := Init(true); err != nil {
		t.Fatalf("Init error: %v", err)
	}
	Debug("rejected range", "begin", "(0,4)")
	if err := Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "rejected range") {
		t.Fatalf("log missing debug entry:\n%s", data)
	}
}

func TestHelpersAreNilSafe(t *testing.T) {
	_ = Close()
	Debug("ignored")
	Info("ignored")
	Warn("ignored")
	Error("ignored")
}

func TestDebugFromEnv(t *testing.T) {
	t.Setenv("VISIONARY_DEBUG", "1")
	if !DebugFromEnv() {
		t.Fatalf("DebugFromEnv = false, want true")
	}
	t.Setenv("VISIONARY_DEBUG", "")
	if DebugFromEnv() {
		t.Fatalf("DebugFromEnv = true, want false")
	}
}
