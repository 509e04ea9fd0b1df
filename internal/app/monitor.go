package app

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"muse/internal/archive"
	"muse/internal/state"
)

const defaultProbeInterval = 30 * time.Second

// StartMonitor launches a background goroutine that probes the archive's
// liveness endpoint at a fixed cadence and records the result in the
// store. It returns immediately; only context cancellation stops it.
func StartMonitor(ctx context.Context, store *state.Store, client *archive.Client, interval time.Duration, logger *log.Logger) {
	if interval <= 0 {
		interval = defaultProbeInterval
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				probe(ctx, store, client, logger)
			}
		}
	}()
}

func probe(ctx context.Context, store *state.Store, client *archive.Client, logger *log.Logger) {
	health, err := client.Health(ctx)
	if err != nil {
		store.Update(nil, err)
		if logger != nil {
			logger.Warn("health probe failed", "err", err)
		}
		return
	}
	store.Update(&health, nil)
}
