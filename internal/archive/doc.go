// Package archive is the HTTP client for the writing archive API.
//
// Client covers the read surface (listings, search, stats, tags, health)
// and the write path (create, update, delete). Every call except Health
// runs under a retry budget of three attempts with a linearly growing
// delay between them, and each attempt carries its own 10 second timeout;
// the caller's context bounds the whole operation. Health makes a single
// attempt because the connection monitor supplies its own cadence.
//
// Non-2xx responses become *APIError with the status code and, when the
// backend sent one, its detail message. The zero-configuration base URL is
// 127.0.0.1:8000; a bare host:port is accepted and normalized to http.
package archive
