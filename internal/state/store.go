// Package state holds the process-wide latest sensor snapshot.
// The sampler is the only writer; readers always get copies.
package state

import (
	"sync"
	"time"

	"hvac_monitor/internal/models"
)

// Status describes how fresh the stored snapshot is.
type Status struct {
	UpdatedAt time.Time // zero until the first publish
	Sampling  bool      // false before the first tick and after a device fault
	Fault     string    // last device fault, empty when healthy
}

type Store struct {
	mu        sync.RWMutex
	startedAt time.Time
	snap      models.SensorSnapshot
	status    Status
}

func NewStore(startedAt time.Time) *Store {
	return &Store{
		startedAt: startedAt,
		snap:      models.NewSensorSnapshot(),
	}
}

// Publish replaces the whole snapshot in one critical section.
func (s *Store) Publish(snap models.SensorSnapshot, at time.Time) {
	s.mu.Lock()
	s.snap = snap
	s.status = Status{UpdatedAt: at, Sampling: true}
	s.mu.Unlock()
}

// Snapshot returns a copy of the latest snapshot.
func (s *Store) Snapshot() models.SensorSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Read returns the snapshot and its status from the same tick.
func (s *Store) Read() (models.SensorSnapshot, Status) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.status
}

// MarkFault records a device fault. The last snapshot is kept as is.
func (s *Store) MarkFault(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status.Sampling = false
	if err != nil {
		s.status.Fault = err.Error()
	}
}

// MarkStopped records a clean sampler exit.
func (s *Store) MarkStopped() {
	s.mu.Lock()
	s.status.Sampling = false
	s.mu.Unlock()
}

func (s *Store) StartedAt() time.Time {
	return s.startedAt
}
