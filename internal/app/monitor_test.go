package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"muse/internal/archive"
	"muse/internal/state"
)

func newProbeTarget(t *testing.T, handler http.Handler) *archive.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := archive.NewClient(server.URL, nil)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return client
}

func TestProbeRecordsHealth(t *testing.T) {
	t.Parallel()

	client := newProbeTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy","database":"connected","total_writings":7}`))
	}))
	store := &state.Store{}

	probe(context.Background(), store, client, nil)

	snap := store.Snapshot()
	if !snap.HasHealth || !snap.Health.Healthy() {
		t.Fatalf("snapshot = %+v, want healthy", snap)
	}
	if snap.Health.TotalWritings != 7 {
		t.Fatalf("TotalWritings = %d, want 7", snap.Health.TotalWritings)
	}
}

func TestProbeRecordsFailure(t *testing.T) {
	t.Parallel()

	client := newProbeTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	store := &state.Store{}

	probe(context.Background(), store, client, nil)
	probe(context.Background(), store, client, nil)

	snap := store.Snapshot()
	if snap.LastError == nil {
		t.Fatal("LastError = nil after failed probes")
	}
	if !snap.IsOffline() {
		t.Fatal("IsOffline() = false after two failed probes")
	}
}

func TestStartMonitorProbesOnInterval(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	client := newProbeTarget(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	}))
	store := &state.Store{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartMonitor(ctx, store, client, 10*time.Millisecond, nil)

	deadline := time.After(2 * time.Second)
	for calls.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("probe count = %d after 2s, want >= 2", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	settled := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() > settled+1 {
		t.Fatal("monitor kept probing after cancellation")
	}
}
