package services

import (
	"context"
	"sync"
	"time"

	"github.com/horizonit/backend/internal/models"
)

// In-process implementations of AttemptStore and SubmissionWindow for
// single-instance deployments. State is lost on restart, which is the
// documented behavior of the throttle and limiter.

// MemoryAttemptStore is a mutex-guarded map keyed by hashed client IP.
type MemoryAttemptStore struct {
	mu      sync.Mutex
	records map[string]*models.LoginAttemptRecord
}

func NewMemoryAttemptStore() *MemoryAttemptStore {
	return &MemoryAttemptStore{
		records: make(map[string]*models.LoginAttemptRecord),
	}
}

func (s *MemoryAttemptStore) Get(_ context.Context, key string) (*models.LoginAttemptRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[key]
	if !ok {
		return nil, nil
	}
	// Copy so callers can't mutate shared state outside Put.
	cp := *record
	return &cp, nil
}

func (s *MemoryAttemptStore) Put(_ context.Context, key string, record *models.LoginAttemptRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *record
	s.records[key] = &cp
	return nil
}

func (s *MemoryAttemptStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, key)
	return nil
}

func (s *MemoryAttemptStore) PurgeExpired(_ context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var removed int64
	for key, record := range s.records {
		lapsedLock := record.LockedUntil != nil && !record.Locked(now)
		stale := record.LockedUntil == nil && record.FirstAttempt.Before(before)
		if lapsedLock || stale {
			delete(s.records, key)
			removed++
		}
	}
	return removed, nil
}

// MemorySubmissionWindow keeps per-key submission timestamps in memory.
type MemorySubmissionWindow struct {
	mu      sync.Mutex
	entries map[string][]time.Time
}

func NewMemorySubmissionWindow() *MemorySubmissionWindow {
	return &MemorySubmissionWindow{
		entries: make(map[string][]time.Time),
	}
}

func (w *MemorySubmissionWindow) CountSince(_ context.Context, key string, since time.Time) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	count := 0
	for _, at := range w.entries[key] {
		if !at.Before(since) {
			count++
		}
	}
	return count, nil
}

func (w *MemorySubmissionWindow) Record(_ context.Context, key string, at time.Time) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.entries[key] = append(w.entries[key], at)
	return nil
}

func (w *MemorySubmissionWindow) PruneBefore(_ context.Context, before time.Time) (int64, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	var removed int64
	for key, stamps := range w.entries {
		kept := stamps[:0]
		for _, at := range stamps {
			if at.Before(before) {
				removed++
			} else {
				kept = append(kept, at)
			}
		}
		if len(kept) == 0 {
			delete(w.entries, key)
		} else {
			w.entries[key] = kept
		}
	}
	return removed, nil
}
