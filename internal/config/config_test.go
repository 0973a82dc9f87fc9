package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("LUMEN_SERVER_URL", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://127.0.0.1:8000" {
		t.Fatalf("unexpected server url %q", cfg.ServerURL)
	}
	if cfg.PollInterval != 2*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval)
	}
	if cfg.LogDir == "" {
		t.Fatal("expected a default log dir")
	}
}

func TestLoadParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "server_url = \"http://album.local:9000\"\npoll_seconds = 5\nlog_dir = \"" + dir + "\"\nwatch_dir = \"" + dir + "\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://album.local:9000" {
		t.Fatalf("unexpected server url %q", cfg.ServerURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Fatalf("unexpected poll interval %v", cfg.PollInterval)
	}
	if cfg.WatchDir != dir {
		t.Fatalf("unexpected watch dir %q", cfg.WatchDir)
	}
	if got, want := cfg.LogPath(), filepath.Join(dir, "lumen.log"); got != want {
		t.Fatalf("LogPath = %q, want %q", got, want)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("server_url = \"http://from-file:1\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LUMEN_SERVER_URL", "http://from-env:2")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.ServerURL != "http://from-env:2" {
		t.Fatalf("env override ignored, got %q", cfg.ServerURL)
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("server_url = [broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestExpandPathTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir available")
	}
	got, err := expandPath("~/photos")
	if err != nil {
		t.Fatalf("expandPath returned error: %v", err)
	}
	if got != filepath.Join(home, "photos") {
		t.Fatalf("expandPath = %q", got)
	}
}
