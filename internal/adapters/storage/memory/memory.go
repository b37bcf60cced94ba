// Package memory is a process-local store used in tests and when no
// durable storage is configured.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

// Store keeps everything in maps guarded by one mutex.
type Store struct {
	mu        sync.RWMutex
	quotes    []domain.Quote
	prefs     map[string]string
	conflicts []domain.ConflictRecord
}

// New returns an empty Store.
func New() *Store {
	return &Store{prefs: make(map[string]string)}
}

// LoadAll implements ports.QuoteStore.
func (s *Store) LoadAll(context.Context) ([]domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.quotes), nil
}

// SaveAll implements ports.QuoteStore.
func (s *Store) SaveAll(_ context.Context, quotes []domain.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.quotes = slices.Clone(quotes)

	return nil
}

// GetPreference implements ports.PreferenceStore.
func (s *Store) GetPreference(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.prefs[key]
	if !ok {
		return "", domain.NewNotFoundError("preference", key)
	}

	return v, nil
}

// SetPreference implements ports.PreferenceStore.
func (s *Store) SetPreference(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.prefs[key] = value

	return nil
}

// AppendConflicts implements ports.ConflictLog.
func (s *Store) AppendConflicts(_ context.Context, records []domain.ConflictRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.conflicts = append(s.conflicts, records...)

	return nil
}

// RecentConflicts implements ports.ConflictLog.
func (s *Store) RecentConflicts(_ context.Context, limit int) ([]domain.ConflictRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := min(max(limit, 0), len(s.conflicts))
	out := make([]domain.ConflictRecord, 0, n)

	for i := len(s.conflicts) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.conflicts[i])
	}

	return out, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string { return "memory" }

// Check implements ports.HealthChecker.
func (s *Store) Check(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }
