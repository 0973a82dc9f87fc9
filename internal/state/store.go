package state

import (
	"sync"
	"time"

	"github.com/lumen-tui/lumen/internal/album"
)

// JobSnapshot represents the latest known progress of one batch job kind.
type JobSnapshot struct {
	Kind        album.JobKind
	Status      album.JobStatus
	HasStatus   bool
	Polling     bool
	LastError   error
	LastUpdated time.Time
}

// Done reports whether the job finished while we were watching it: we have a
// status, it is not running, and polling has been torn down.
func (s JobSnapshot) Done() bool {
	return s.HasStatus && !s.Status.IsRunning && !s.Polling
}

// Store coordinates concurrent updates to job snapshots. Pollers write from
// their own goroutines; the UI reads on every frame.
type Store struct {
	mu   sync.RWMutex
	jobs map[album.JobKind]JobSnapshot
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{jobs: make(map[album.JobKind]JobSnapshot)}
}

// UpdateJob replaces the stored snapshot for a kind. When err is non-nil the
// previous status data is kept but the error is recorded for visibility.
func (s *Store) UpdateJob(kind album.JobKind, status *album.JobStatus, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.jobs[kind]
	snap.Kind = kind
	snap.LastUpdated = time.Now()
	if err != nil {
		snap.LastError = err
	} else {
		snap.LastError = nil
		if status != nil {
			snap.Status = *status
			snap.HasStatus = true
		}
	}
	s.jobs[kind] = snap
}

// SetPolling records whether a poller currently owns the kind.
func (s *Store) SetPolling(kind album.JobKind, polling bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.jobs[kind]
	snap.Kind = kind
	snap.Polling = polling
	s.jobs[kind] = snap
}

// Job returns a copy of the snapshot for one kind.
func (s *Store) Job(kind album.JobKind) JobSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.jobs[kind]
	if !ok {
		return JobSnapshot{Kind: kind}
	}
	return snap
}

// Jobs returns copies of every known snapshot keyed by kind.
func (s *Store) Jobs() map[album.JobKind]JobSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[album.JobKind]JobSnapshot, len(s.jobs))
	for kind, snap := range s.jobs {
		out[kind] = snap
	}
	return out
}
