package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "127.0.0.1:8000" {
		t.Fatalf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.ProbeEvery != 30*time.Second {
		t.Fatalf("ProbeEvery = %v, want 30s", cfg.ProbeEvery)
	}
	if cfg.QuickLimit != 8 || cfg.SearchLimit != 50 || cfg.RecentCount != 6 {
		t.Fatalf("limits = %d/%d/%d, want 8/50/6",
			cfg.QuickLimit, cfg.SearchLimit, cfg.RecentCount)
	}
	if cfg.LogPath == "" {
		t.Fatal("LogPath is empty")
	}
}

func TestLoadParsesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
api_url = "archive.local:9000"
probe_seconds = 10
quick_limit = 4
search_limit = 25
recent_count = 3
log_path = "` + filepath.Join(dir, "muse.log") + `"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "archive.local:9000" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.ProbeEvery != 10*time.Second {
		t.Fatalf("ProbeEvery = %v, want 10s", cfg.ProbeEvery)
	}
	if cfg.QuickLimit != 4 || cfg.SearchLimit != 25 || cfg.RecentCount != 3 {
		t.Fatalf("limits = %d/%d/%d", cfg.QuickLimit, cfg.SearchLimit, cfg.RecentCount)
	}
	if cfg.LogPath != filepath.Join(dir, "muse.log") {
		t.Fatalf("LogPath = %q", cfg.LogPath)
	}
}

func TestLoadPartialFileKeepsOtherDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`api_url = "10.0.0.5:8000"`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIURL != "10.0.0.5:8000" {
		t.Fatalf("APIURL = %q", cfg.APIURL)
	}
	if cfg.QuickLimit != 8 {
		t.Fatalf("QuickLimit = %d, want default 8", cfg.QuickLimit)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("api_url = [broken"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() error = nil for malformed file")
	}
}
