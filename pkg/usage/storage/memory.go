package storage

import (
	"context"
	"sort"
	"sync"

	"calpipe/refmatch/pkg/usage"
)

// MemoryStorage implements the usage.Storage interface with an
// in-memory slice. Suitable for tests and single-shot commands.
type MemoryStorage struct {
	records []*usage.Record
	mu      sync.RWMutex
}

// NewMemoryStorage creates a new in-memory usage index.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

// Store appends a batch of usage records.
func (s *MemoryStorage) Store(ctx context.Context, records []*usage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range records {
		recordCopy := *record
		s.records = append(s.records, &recordCopy)
	}
	return nil
}

// ByReference returns the records mentioning the given file basename,
// ordered by mapping name.
func (s *MemoryStorage) ByReference(ctx context.Context, reference string) ([]*usage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []*usage.Record{}
	for _, record := range s.records {
		if record.Reference == reference {
			recordCopy := *record
			results = append(results, &recordCopy)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Mapping < results[j].Mapping
	})
	return results, nil
}

// Count returns the total number of records.
func (s *MemoryStorage) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(len(s.records)), nil
}

// Clear removes all records.
func (s *MemoryStorage) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records = nil
	return nil
}

// Close releases resources; a no-op for the memory backend.
func (s *MemoryStorage) Close() error {
	return nil
}
