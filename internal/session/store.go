package session

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"braincheck/pkg/lifecycle"
)

// Store owns the records of all active sessions. Access to a record is
// serialized per session id: Acquire blocks until no other transition holds
// that session, so at most one event is ever in flight per conversation.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	idle    time.Duration
	sweep   time.Duration
	logger  *slog.Logger
}

type entry struct {
	mu      sync.Mutex
	record  *Record
	touched time.Time
	gone    atomic.Bool
}

// NewStore creates a Store whose idle sessions are swept after the given
// timeout, checked every sweep interval.
func NewStore(idle, sweep time.Duration, logger *slog.Logger) *Store {
	return &Store{
		entries: make(map[string]*entry),
		idle:    idle,
		sweep:   sweep,
		logger:  logger.With("system", "sessions"),
	}
}

// Acquire returns the record for id, creating it at StepName if absent, and
// locks the session until the returned release function is called. Records
// for distinct ids never alias.
func (s *Store) Acquire(id string) (*Record, func()) {
	for {
		s.mu.Lock()
		e, ok := s.entries[id]
		if !ok {
			e = &entry{
				record:  &Record{ID: id, Step: StepName, CreatedAt: time.Now()},
				touched: time.Now(),
			}
			s.entries[id] = e
		}
		s.mu.Unlock()

		e.mu.Lock()
		if e.gone.Load() {
			// swept between lookup and lock; retry with a fresh entry
			e.mu.Unlock()
			continue
		}

		release := func() {
			e.touched = time.Now()
			e.mu.Unlock()
		}
		return e.record, release
	}
}

// Remove disposes the session for id. Safe to call while holding the
// session's lock via Acquire.
func (s *Store) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[id]; ok {
		e.gone.Store(true)
		delete(s.entries, id)
	}
}

// Count returns the number of active sessions.
func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start launches the idle-session sweeper for the coordinator's lifetime.
func (s *Store) Start(lc *lifecycle.Coordinator) {
	go func() {
		ticker := time.NewTicker(s.sweep)
		defer ticker.Stop()

		for {
			select {
			case <-lc.Context().Done():
				return
			case <-ticker.C:
				s.sweepIdle()
			}
		}
	}()
}

func (s *Store) sweepIdle() {
	now := time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, e := range s.entries {
		// a held lock means a transition is in flight; skip this round
		if !e.mu.TryLock() {
			continue
		}
		if now.Sub(e.touched) > s.idle {
			e.gone.Store(true)
			delete(s.entries, id)
			s.logger.Info("session expired", "session", id, "step", e.record.Step)
		}
		e.mu.Unlock()
	}
}
