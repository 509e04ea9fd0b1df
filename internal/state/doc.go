// Package state provides the thread-safe connectivity store shared by the
// background health monitor and the UI.
//
// The monitor probes /health on a fixed cadence and calls Update; the UI
// reads Snapshot on its own schedule. A failed probe keeps the previous
// health payload but records the error and bumps a consecutive-failure
// counter; two or more consecutive failures flip IsOffline. The store is
// usable from its zero value and copies on read so the UI never shares
// mutable state with the monitor.
package state
