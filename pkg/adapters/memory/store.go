package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jdahm/lattice/pkg/ports"
)

// Store implements ports.RunStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]ports.RunRecord
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]ports.RunRecord),
	}
}

// Save persists the record in memory. Records are plain values, so the
// map assignment already isolates the caller's copy.
func (s *Store) Save(ctx context.Context, rec ports.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.ID] = rec
	return nil
}

// Get retrieves a record by ID.
func (s *Store) Get(ctx context.Context, id string) (ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[id]
	if !ok {
		return ports.RunRecord{}, ports.ErrRunNotFound
	}
	return rec, nil
}

// List returns all records, oldest start time first.
func (s *Store) List(ctx context.Context) ([]ports.RunRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs := make([]ports.RunRecord, 0, len(s.data))
	for _, rec := range s.data {
		runs = append(runs, rec)
	}
	sort.Slice(runs, func(i, j int) bool {
		if runs[i].StartedAt.Equal(runs[j].StartedAt) {
			return runs[i].ID < runs[j].ID
		}
		return runs[i].StartedAt.Before(runs[j].StartedAt)
	})
	return runs, nil
}

// Delete removes a record. Missing IDs are ignored.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}
