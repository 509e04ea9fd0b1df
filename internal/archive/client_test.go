package archive

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	client.retryDelay = time.Millisecond
	return client, server
}

func writePage(w http.ResponseWriter, page WritingPage) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(page)
}

func TestListWritingsRetriesUntilSuccess(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			http.Error(w, `{"detail":"busy"}`, http.StatusServiceUnavailable)
			return
		}
		writePage(w, WritingPage{
			Items: []Writing{{ID: 7, Title: "Tidewater"}},
			Total: 1, Page: 1, Limit: 20, Pages: 1,
		})
	}))

	page, err := client.ListWritings(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("ListWritings() error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("request count = %d, want 3", got)
	}
	if len(page.Items) != 1 || page.Items[0].Title != "Tidewater" {
		t.Fatalf("ListWritings() page = %+v", page)
	}
}

func TestListWritingsSurfacesLastError(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"detail":"database locked"}`, http.StatusInternalServerError)
	}))

	_, err := client.ListWritings(context.Background(), ListQuery{})
	if err == nil {
		t.Fatal("ListWritings() error = nil, want error")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("request count = %d, want 3", got)
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusInternalServerError {
		t.Fatalf("APIError.Status = %d, want 500", apiErr.Status)
	}
	if apiErr.Msg != "database locked" {
		t.Fatalf("APIError.Msg = %q, want %q", apiErr.Msg, "database locked")
	}
}

func TestListQueryEncoding(t *testing.T) {
	t.Parallel()

	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		writePage(w, WritingPage{})
	}))

	_, err := client.ListWritings(context.Background(), ListQuery{
		Page:              2,
		Limit:             5,
		ContentType:       "poetry",
		PublicationStatus: "draft",
		Explicit:          true,
	})
	if err != nil {
		t.Fatalf("ListWritings() error = %v", err)
	}
	want := "content_type=poetry&explicit=true&limit=5&page=2&publication_status=draft"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}

	_, err = client.ListWritings(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("ListWritings() error = %v", err)
	}
	if gotQuery != "" {
		t.Fatalf("zero-value query = %q, want empty", gotQuery)
	}
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var gotAccept, gotAgent, gotRequestID string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotAgent = r.Header.Get("User-Agent")
		gotRequestID = r.Header.Get("X-Request-ID")
		writePage(w, WritingPage{})
	}))

	if _, err := client.ListWritings(context.Background(), ListQuery{}); err != nil {
		t.Fatalf("ListWritings() error = %v", err)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}
	if gotAgent != "muse/0.1" {
		t.Fatalf("User-Agent = %q, want muse/0.1", gotAgent)
	}
	if gotRequestID == "" {
		t.Fatal("X-Request-ID is empty")
	}
}

func TestRequestIDStableAcrossRetries(t *testing.T) {
	t.Parallel()

	var ids []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		http.Error(w, "nope", http.StatusBadGateway)
	}))

	if _, err := client.Stats(context.Background()); err == nil {
		t.Fatal("Stats() error = nil, want error")
	}
	if len(ids) != 3 {
		t.Fatalf("request count = %d, want 3", len(ids))
	}
	if ids[0] == "" || ids[0] != ids[1] || ids[1] != ids[2] {
		t.Fatalf("request ids differ across retries: %v", ids)
	}
}

func TestHealthMakesSingleAttempt(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))

	if _, err := client.Health(context.Background()); err == nil {
		t.Fatal("Health() error = nil, want error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("request count = %d, want 1", got)
	}
}

func TestHealthPath(t *testing.T) {
	t.Parallel()

	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","database":"connected","total_writings":42}`))
	}))

	health, err := client.Health(context.Background())
	if err != nil {
		t.Fatalf("Health() error = %v", err)
	}
	if gotPath != "/health" {
		t.Fatalf("path = %q, want /health", gotPath)
	}
	if !health.Healthy() || health.TotalWritings != 42 {
		t.Fatalf("Health() = %+v", health)
	}
}

func TestTagsAcceptsBothResponseShapes(t *testing.T) {
	t.Parallel()

	bodies := []string{
		`{"tags":[{"id":1,"name":"sea","usage_count":3}]}`,
		`[{"id":1,"name":"sea","usage_count":3}]`,
	}
	for _, body := range bodies {
		body := body
		client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}))

		tags, err := client.Tags(context.Background())
		if err != nil {
			t.Fatalf("Tags() error = %v for body %s", err, body)
		}
		if len(tags) != 1 || tags[0].Name != "sea" || tags[0].UsageCount != 3 {
			t.Fatalf("Tags() = %+v for body %s", tags, body)
		}
	}
}

func TestSearchEncodesQuery(t *testing.T) {
	t.Parallel()

	var gotPath, gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		writePage(w, WritingPage{Total: 0})
	}))

	_, err := client.Search(context.Background(), SearchQuery{
		Q:               "low tide",
		Limit:           8,
		IncludeExplicit: true,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if gotPath != "/api/search" {
		t.Fatalf("path = %q, want /api/search", gotPath)
	}
	want := "include_explicit=true&limit=8&q=low+tide"
	if gotQuery != want {
		t.Fatalf("query = %q, want %q", gotQuery, want)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	t.Parallel()

	client, err := NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Search(context.Background(), SearchQuery{Q: "  "}); err == nil {
		t.Fatal("Search() with blank query error = nil, want error")
	}
}

func TestWritingRequiresID(t *testing.T) {
	t.Parallel()

	client, err := NewClient("127.0.0.1:1", nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	if _, err := client.Writing(context.Background(), 0); err == nil {
		t.Fatal("Writing(0) error = nil, want error")
	}
}

func TestParseBaseURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"", "http://127.0.0.1:8000"},
		{"localhost:9000", "http://localhost:9000"},
		{"http://archive.local", "http://archive.local"},
		{"https://archive.local/api/?x=1#frag", "https://archive.local"},
	}
	for _, tt := range tests {
		got, err := parseBaseURL(tt.in)
		if err != nil {
			t.Fatalf("parseBaseURL(%q) error = %v", tt.in, err)
		}
		if got.String() != tt.want {
			t.Fatalf("parseBaseURL(%q) = %q, want %q", tt.in, got.String(), tt.want)
		}
	}
}

func TestDoStopsWhenContextCancelled(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	client.retryDelay = time.Hour // the cancelled context must win the wait

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := client.Stats(ctx)
		done <- err
	}()

	// Let the first attempt fail, then cancel during the backoff wait.
	for calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("error = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Stats() did not return after cancellation")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("request count = %d, want 1", got)
	}
}

func TestMalformedSuccessBodyNotRetried(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items": [`))
	}))

	_, err := client.ListWritings(context.Background(), ListQuery{})
	if err == nil {
		t.Fatal("ListWritings() error = nil for malformed body")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("request count = %d, want 1 (decode errors are terminal)", got)
	}
}

func TestRetryBackoffGrowsLinearly(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	client.retryDelay = 50 * time.Millisecond

	start := time.Now()
	_, err := client.Stats(context.Background())
	elapsed := time.Since(start)

	if err == nil {
		t.Fatal("Stats() error = nil, want error")
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("request count = %d, want 3", got)
	}
	// Waits are 1x before attempt 2 and 2x before attempt 3.
	if want := 140 * time.Millisecond; elapsed < want {
		t.Fatalf("elapsed = %v, want at least %v of backoff", elapsed, want)
	}
}

func TestUpdateAndDeleteWriting(t *testing.T) {
	t.Parallel()

	var methods []string
	var paths []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		paths = append(paths, r.URL.Path)
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":5,"title":"Revised"}`))
	}))

	title := "Revised"
	updated, err := client.UpdateWriting(context.Background(), 5, WritingUpdate{Title: &title})
	if err != nil {
		t.Fatalf("UpdateWriting() error = %v", err)
	}
	if updated.Title != "Revised" {
		t.Fatalf("updated.Title = %q", updated.Title)
	}

	if err := client.DeleteWriting(context.Background(), 5); err != nil {
		t.Fatalf("DeleteWriting() error = %v", err)
	}

	if methods[0] != http.MethodPut || methods[1] != http.MethodDelete {
		t.Fatalf("methods = %v, want [PUT DELETE]", methods)
	}
	for _, p := range paths {
		if p != "/api/writings/5" {
			t.Fatalf("path = %q, want /api/writings/5", p)
		}
	}
}

func TestCreateWritingSendsBody(t *testing.T) {
	t.Parallel()

	var gotMethod, gotContentType string
	var gotDraft WritingDraft
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotDraft)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":11,"title":"Driftwood"}`))
	}))

	created, err := client.CreateWriting(context.Background(), WritingDraft{
		Title:       "Driftwood",
		ContentType: "poetry",
		Content:     "salt and splinters",
	})
	if err != nil {
		t.Fatalf("CreateWriting() error = %v", err)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("method = %q, want POST", gotMethod)
	}
	if gotContentType != "application/json" {
		t.Fatalf("Content-Type = %q, want application/json", gotContentType)
	}
	if gotDraft.Title != "Driftwood" || gotDraft.ContentType != "poetry" {
		t.Fatalf("decoded draft = %+v", gotDraft)
	}
	if created.ID != 11 {
		t.Fatalf("created.ID = %d, want 11", created.ID)
	}
}
