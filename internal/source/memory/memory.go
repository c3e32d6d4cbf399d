// Package memory provides an in-memory dataset source, used as a test
// fake and for seeding offline runs.
package memory

import (
	"context"
	"sync"

	"tally/internal/core"
	"tally/internal/source"
)

type Store struct {
	mu   sync.Mutex
	rows core.Dataset
}

var _ source.DatasetReader = (*Store)(nil)

func New(rows ...core.Row) *Store {
	s := &Store{rows: make(core.Dataset, len(rows))}
	copy(s.rows, rows)
	return s
}

// ReadDataset returns a copy of the stored rows so callers can never
// mutate the store's view of the data.
func (s *Store) ReadDataset(_ context.Context) (core.Dataset, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(core.Dataset, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

// Append adds rows, preserving insertion order.
func (s *Store) Append(rows ...core.Row) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rows = append(s.rows, rows...)
}
