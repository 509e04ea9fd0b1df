package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"muse/internal/archive"
	"muse/internal/config"
	"muse/internal/prefs"
	"muse/internal/state"
	"muse/internal/ui"
)

// Options configure the muse application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/muse/prefs.toml
	APIURL     string // overrides the configured api_url
	ProbeEvery int    // seconds; zero uses the configured cadence
	ThemeName  string // overrides the saved theme preference
}

// Run boots the muse TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIURL != "" {
		cfg.APIURL = opts.APIURL
	}
	if opts.ProbeEvery > 0 {
		cfg.ProbeEvery = time.Duration(opts.ProbeEvery) * time.Second
	}

	userPrefs := prefs.Load(opts.PrefsPath)
	themeName := userPrefs.Theme
	if opts.ThemeName != "" {
		themeName = opts.ThemeName
	}

	logger, closeLog, err := OpenLogger(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = closeLog() }()

	client, err := archive.NewClient(cfg.APIURL, logger)
	if err != nil {
		return fmt.Errorf("init archive client: %w", err)
	}

	store := &state.Store{}

	// Start the background connection monitor and seed the store so the
	// header has a connectivity reading before the first probe tick.
	StartMonitor(ctx, store, client, cfg.ProbeEvery, logger)
	probe(ctx, store, client, logger)

	uiOpts := ui.Options{
		Context:   ctx,
		Client:    client,
		Store:     store,
		Config:    &cfg,
		ThemeName: themeName,
		PrefsPath: opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// OpenLogger opens the diagnostic log file. The TUI owns the terminal, so
// diagnostics never go to stdout or stderr while it runs.
func OpenLogger(path string) (*log.Logger, func() error, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := log.NewWithOptions(file, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
	})
	return logger, file.Close, nil
}
