package state

import (
	"errors"
	"testing"

	"muse/internal/archive"
)

func TestUpdateRecordsHealth(t *testing.T) {
	t.Parallel()

	store := &Store{}
	store.Update(&archive.HealthStatus{Status: "healthy", TotalWritings: 12}, nil)

	snap := store.Snapshot()
	if !snap.HasHealth {
		t.Fatal("HasHealth = false after successful update")
	}
	if snap.Health.TotalWritings != 12 {
		t.Fatalf("TotalWritings = %d, want 12", snap.Health.TotalWritings)
	}
	if snap.LastError != nil {
		t.Fatalf("LastError = %v, want nil", snap.LastError)
	}
	if snap.LastChecked.IsZero() {
		t.Fatal("LastChecked is zero")
	}
}

func TestUpdateFailureKeepsLastHealth(t *testing.T) {
	t.Parallel()

	store := &Store{}
	store.Update(&archive.HealthStatus{Status: "healthy", TotalWritings: 12}, nil)
	store.Update(nil, errors.New("connection refused"))

	snap := store.Snapshot()
	if !snap.HasHealth || snap.Health.TotalWritings != 12 {
		t.Fatalf("previous health lost: %+v", snap)
	}
	if snap.LastError == nil {
		t.Fatal("LastError = nil after failure")
	}
	if snap.ConsecutiveFailures != 1 {
		t.Fatalf("ConsecutiveFailures = %d, want 1", snap.ConsecutiveFailures)
	}
}

func TestIsOfflineNeedsConsecutiveFailures(t *testing.T) {
	t.Parallel()

	store := &Store{}
	probeErr := errors.New("timeout")

	store.Update(nil, probeErr)
	if store.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = true after a single failure")
	}

	store.Update(nil, probeErr)
	if !store.Snapshot().IsOffline() {
		t.Fatal("IsOffline() = false after two consecutive failures")
	}

	store.Update(&archive.HealthStatus{Status: "healthy"}, nil)
	snap := store.Snapshot()
	if snap.IsOffline() || snap.ConsecutiveFailures != 0 {
		t.Fatalf("failure streak not reset: %+v", snap)
	}
}
