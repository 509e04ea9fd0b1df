// Package config loads the muse configuration file.
//
// Configuration lives at ~/.config/muse/config.toml and is entirely
// optional: a missing file yields working defaults pointed at a local
// archive API on 127.0.0.1:8000. Fields:
//
//	api_url = "127.0.0.1:8000"     # host:port or full URL of the archive API
//	probe_seconds = 30             # /health probe cadence
//	quick_limit = 8                # quick-search result limit
//	search_limit = 50              # full-search result limit
//	recent_count = 6               # dashboard recent-writings count
//	log_path = "~/.local/state/muse/muse.log"
//
// Tilde expansion is applied to paths. Load is read-only and returns an
// immutable Config; there is no global state.
package config
