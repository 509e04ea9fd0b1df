// Package ui implements the muse terminal interface with Bubble Tea.
//
// A single Model owns all page state. Pages (dashboard, browse, search,
// tags, analytics, reader) load their data on entry via asynchronous
// commands; every request is stamped with a monotonically increasing
// sequence number and Update discards any response whose stamp no longer
// matches the page's latest, so a slow response can never replace a newer
// one. The same mechanism debounces the search input: each keystroke bumps
// a generation counter and the 300ms timer only fires a request if its
// generation is still current.
//
// Explicit content is hidden by default. The gate is session state, never
// persisted; toggling it reloads the page the user is on, and every list
// render re-applies the filter so cached items cannot leak past a closed
// gate. Opening an explicit writing with the gate closed raises a warning
// dialog whose confirmation reveals only that one writing.
//
// Rendering is pure string assembly on top of Lipgloss. Archive content is
// sanitized before display (see internal/render) so stored text cannot
// inject terminal escapes.
package ui
