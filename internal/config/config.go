package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields muse needs to reach and browse the archive.
type Config struct {
	APIURL      string
	ProbeEvery  time.Duration
	QuickLimit  int
	SearchLimit int
	RecentCount int
	LogPath     string
}

const (
	defaultConfigPath  = "~/.config/muse/config.toml"
	defaultAPIURL      = "127.0.0.1:8000"
	defaultLogPath     = "~/.local/state/muse/muse.log"
	defaultProbeEvery  = 30 * time.Second
	defaultQuickLimit  = 8
	defaultSearchLimit = 50
	defaultRecentCount = 6
)

// Load locates and parses the muse config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := defaults()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL       string `toml:"api_url"`
		ProbeSeconds int    `toml:"probe_seconds"`
		QuickLimit   int    `toml:"quick_limit"`
		SearchLimit  int    `toml:"search_limit"`
		RecentCount  int    `toml:"recent_count"`
		LogPath      string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	if raw.ProbeSeconds > 0 {
		cfg.ProbeEvery = time.Duration(raw.ProbeSeconds) * time.Second
	}
	if raw.QuickLimit > 0 {
		cfg.QuickLimit = raw.QuickLimit
	}
	if raw.SearchLimit > 0 {
		cfg.SearchLimit = raw.SearchLimit
	}
	if raw.RecentCount > 0 {
		cfg.RecentCount = raw.RecentCount
	}
	if v := strings.TrimSpace(raw.LogPath); v != "" {
		cfg.LogPath = v
	}
	cfg.LogPath = mustExpand(cfg.LogPath)

	return cfg, nil
}

func defaults() Config {
	return Config{
		APIURL:      defaultAPIURL,
		ProbeEvery:  defaultProbeEvery,
		QuickLimit:  defaultQuickLimit,
		SearchLimit: defaultSearchLimit,
		RecentCount: defaultRecentCount,
		LogPath:     mustExpand(defaultLogPath),
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
