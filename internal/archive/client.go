package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Fetcher defines the read surface of the archive API.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	ListWritings(ctx context.Context, query ListQuery) (WritingPage, error)
	TodaysWritings(ctx context.Context, query ListQuery) (WritingPage, error)
	Chapters(ctx context.Context, query ListQuery) (WritingPage, error)
	WritingsByType(ctx context.Context, contentType string, query ListQuery) (WritingPage, error)
	WritingsByStatus(ctx context.Context, status string, query ListQuery) (WritingPage, error)
	WritingsByTag(ctx context.Context, name string, query ListQuery) (WritingPage, error)
	Writing(ctx context.Context, id int64) (*Writing, error)
	Search(ctx context.Context, query SearchQuery) (WritingPage, error)
	Stats(ctx context.Context) (*Stats, error)
	Tags(ctx context.Context) ([]Tag, error)
	Health(ctx context.Context) (HealthStatus, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

// Client talks to the archive HTTP API.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	logger     *log.Logger
	attempts   int
	retryDelay time.Duration
	timeout    time.Duration
}

const (
	defaultAPIURL    = "127.0.0.1:8000"
	defaultUserAgent = "muse/0.1"
	requestTimeout   = 10 * time.Second
	retryAttempts    = 3
	retryBaseDelay   = 500 * time.Millisecond
)

// NewClient builds a Client for the provided API address (host:port or URL).
// A nil logger silences attempt diagnostics.
func NewClient(apiURL string, logger *log.Logger) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Client{
		baseURL:    base,
		http:       &http.Client{},
		userAgent:  defaultUserAgent,
		logger:     logger,
		attempts:   retryAttempts,
		retryDelay: retryBaseDelay,
		timeout:    requestTimeout,
	}, nil
}

// ListQuery configures list endpoints. Zero values are omitted from the
// query string; defaults are the server's concern.
type ListQuery struct {
	Page              int
	Limit             int
	ContentType       string
	PublicationStatus string
	Explicit          bool
}

func (q ListQuery) values() url.Values {
	values := url.Values{}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		values.Set("limit", strconv.Itoa(q.Limit))
	}
	if ct := strings.TrimSpace(q.ContentType); ct != "" {
		values.Set("content_type", ct)
	}
	if ps := strings.TrimSpace(q.PublicationStatus); ps != "" {
		values.Set("publication_status", ps)
	}
	if q.Explicit {
		values.Set("explicit", "true")
	}
	return values
}

// SearchQuery configures /api/search requests.
type SearchQuery struct {
	Q               string
	Limit           int
	IncludeExplicit bool
}

// ListWritings retrieves a page of writings with optional filters.
func (c *Client) ListWritings(ctx context.Context, query ListQuery) (WritingPage, error) {
	return c.fetchPage(ctx, "/api/writings", query)
}

// TodaysWritings retrieves writings whose file timestamp falls on today.
func (c *Client) TodaysWritings(ctx context.Context, query ListQuery) (WritingPage, error) {
	return c.fetchPage(ctx, "/api/writings/today", query)
}

// Chapters retrieves prose and fragments that read as book chapters.
func (c *Client) Chapters(ctx context.Context, query ListQuery) (WritingPage, error) {
	return c.fetchPage(ctx, "/api/writings/chapters", query)
}

// WritingsByType retrieves writings of a single content type.
func (c *Client) WritingsByType(ctx context.Context, contentType string, query ListQuery) (WritingPage, error) {
	if strings.TrimSpace(contentType) == "" {
		return WritingPage{}, fmt.Errorf("content type required")
	}
	return c.fetchPage(ctx, "/api/writings/type/"+contentType, query)
}

// WritingsByStatus retrieves writings with a given publication status.
func (c *Client) WritingsByStatus(ctx context.Context, status string, query ListQuery) (WritingPage, error) {
	if strings.TrimSpace(status) == "" {
		return WritingPage{}, fmt.Errorf("publication status required")
	}
	return c.fetchPage(ctx, "/api/writings/status/"+status, query)
}

// WritingsByTag retrieves writings carrying the named tag.
func (c *Client) WritingsByTag(ctx context.Context, name string, query ListQuery) (WritingPage, error) {
	if strings.TrimSpace(name) == "" {
		return WritingPage{}, fmt.Errorf("tag name required")
	}
	return c.fetchPage(ctx, "/api/writings/tag/"+name, query)
}

// Writing retrieves a single writing by id.
func (c *Client) Writing(ctx context.Context, id int64) (*Writing, error) {
	if id <= 0 {
		return nil, fmt.Errorf("writing id required")
	}
	rel := &url.URL{Path: "/api/writings/" + strconv.FormatInt(id, 10)}
	var payload Writing
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Search runs a full-text search. The backend returns the whole batch at
// once; there is no incremental pagination on this endpoint.
func (c *Client) Search(ctx context.Context, query SearchQuery) (WritingPage, error) {
	q := strings.TrimSpace(query.Q)
	if q == "" {
		return WritingPage{}, fmt.Errorf("search query required")
	}
	values := url.Values{}
	values.Set("q", q)
	if query.Limit > 0 {
		values.Set("limit", strconv.Itoa(query.Limit))
	}
	if query.IncludeExplicit {
		values.Set("include_explicit", "true")
	}
	rel := &url.URL{Path: "/api/search", RawQuery: values.Encode()}
	var payload WritingPage
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return WritingPage{}, err
	}
	return payload, nil
}

// Stats retrieves the aggregate archive statistics snapshot.
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	rel := &url.URL{Path: "/api/stats"}
	var payload Stats
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Tags retrieves the tag list, accepting both the bare-array and the
// wrapped response shape.
func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	rel := &url.URL{Path: "/api/tags"}
	var payload tagList
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return nil, err
	}
	return []Tag(payload), nil
}

// Health probes the liveness endpoint. Unlike the other calls it makes a
// single attempt; the connection monitor supplies its own cadence.
func (c *Client) Health(ctx context.Context) (HealthStatus, error) {
	rel := &url.URL{Path: "/health"}
	var payload HealthStatus
	if err := c.attempt(ctx, http.MethodGet, rel, nil, &payload, uuid.NewString(), 1); err != nil {
		return HealthStatus{}, err
	}
	return payload, nil
}

// WritingDraft is the payload for creating a writing.
type WritingDraft struct {
	Title             string `json:"title"`
	ContentType       string `json:"content_type"`
	Content           string `json:"content"`
	Notes             string `json:"notes,omitempty"`
	PublicationStatus string `json:"publication_status,omitempty"`
}

// WritingUpdate is a partial update; nil fields are left untouched.
type WritingUpdate struct {
	Title             *string `json:"title,omitempty"`
	ContentType       *string `json:"content_type,omitempty"`
	Content           *string `json:"content,omitempty"`
	Notes             *string `json:"notes,omitempty"`
	PublicationStatus *string `json:"publication_status,omitempty"`
}

// CreateWriting submits a new writing.
func (c *Client) CreateWriting(ctx context.Context, draft WritingDraft) (*Writing, error) {
	rel := &url.URL{Path: "/api/writings"}
	var payload Writing
	if err := c.do(ctx, http.MethodPost, rel, draft, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// UpdateWriting applies a partial update and returns the updated writing.
func (c *Client) UpdateWriting(ctx context.Context, id int64, update WritingUpdate) (*Writing, error) {
	if id <= 0 {
		return nil, fmt.Errorf("writing id required")
	}
	rel := &url.URL{Path: "/api/writings/" + strconv.FormatInt(id, 10)}
	var payload Writing
	if err := c.do(ctx, http.MethodPut, rel, update, &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteWriting removes a writing by id.
func (c *Client) DeleteWriting(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("writing id required")
	}
	rel := &url.URL{Path: "/api/writings/" + strconv.FormatInt(id, 10)}
	return c.do(ctx, http.MethodDelete, rel, nil, nil)
}

func (c *Client) fetchPage(ctx context.Context, path string, query ListQuery) (WritingPage, error) {
	rel := &url.URL{Path: path, RawQuery: query.values().Encode()}
	var payload WritingPage
	if err := c.do(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return WritingPage{}, err
	}
	return payload, nil
}

// do runs a request with the retry budget. Network failures and non-2xx
// responses consume the same budget; the delay before attempt n grows
// linearly with n. Decode failures on a successful response end the loop
// early. The last attempt's error is returned, never swallowed.
func (c *Client) do(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	var payload []byte
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		payload = encoded
	}

	requestID := uuid.NewString()
	var lastErr error
	for attempt := 1; attempt <= c.attempts; attempt++ {
		if attempt > 1 {
			delay := c.retryDelay * time.Duration(attempt-1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		err := c.attempt(ctx, method, rel, payload, dest, requestID, attempt)
		if err == nil {
			return nil
		}
		var decodeErr *decodeError
		if errors.As(err, &decodeErr) {
			// The server responded; a retry would fetch the same body.
			return err
		}
		lastErr = err
	}
	return lastErr
}

func (c *Client) attempt(ctx context.Context, method string, rel *url.URL, payload []byte, dest any, requestID string, attempt int) error {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqURL := c.baseURL.ResolveReference(rel)
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(attemptCtx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("request failed",
			"method", method, "path", rel.Path, "request_id", requestID, "attempt", attempt, "err", err)
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		apiErr := newAPIError(resp)
		c.logger.Warn("request rejected",
			"method", method, "path", rel.Path, "request_id", requestID, "attempt", attempt,
			"status", resp.StatusCode)
		return apiErr
	}

	c.logger.Debug("request ok",
		"method", method, "path", rel.Path, "request_id", requestID, "attempt", attempt,
		"status", resp.StatusCode, "elapsed", time.Since(start))

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return &decodeError{err: err}
	}
	return nil
}

// newAPIError captures a non-2xx response. A body that cannot be read or
// parsed is treated as empty, never as a separate failure.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return apiErr
	}
	apiErr.Body = string(body)

	// FastAPI-style error envelopes carry a human-readable detail field.
	var detail struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(body, &detail) == nil {
		apiErr.Msg = detail.Detail
	}
	return apiErr
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
