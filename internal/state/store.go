package state

import (
	"fmt"
	"sync"
	"time"

	"muse/internal/archive"
)

// Snapshot is the latest connectivity picture available to the UI.
type Snapshot struct {
	Health              archive.HealthStatus
	HasHealth           bool
	LastChecked         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the archive API has been unreachable for
// multiple consecutive probes.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the connectivity snapshot. The
// monitor goroutine writes, the UI reads.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous
// health payload is kept but the error is recorded for visibility.
func (s *Store) Update(health *archive.HealthStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot.LastChecked = time.Now()
	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.ConsecutiveFailures++
		return
	}

	if health != nil {
		s.snapshot.Health = *health
		s.snapshot.HasHealth = true
	} else {
		s.snapshot.HasHealth = false
	}
	s.snapshot.LastError = nil
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
