// Package app is the composition root for the muse TUI.
//
// Run loads configuration and preferences, opens the diagnostic log file,
// builds the archive API client, starts the background connection monitor,
// and hands everything to the UI. The monitor probes /health every 30
// seconds (configurable) and records consecutive failures in state.Store;
// the UI renders the resulting connectivity indicator. Page data is not
// polled here: each view loads its own data on entry, so the only standing
// background work is the liveness probe.
//
// Fatal errors (unreadable config, unwritable log path, malformed API URL)
// are returned from Run before the UI starts. Probe failures are never
// fatal; the UI keeps running against the last known state.
package app
