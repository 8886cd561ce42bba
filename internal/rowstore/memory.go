package rowstore

import (
	"context"
	"fmt"
	"sync"
)

// MemoryStore is an in-memory Store used for local runs and tests.
// Row indexes follow the sheet convention (data starts at 2) so code
// written against SheetsStore behaves identically.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]map[string]string)}
}

func (s *MemoryStore) GetRows(_ context.Context, category string, match map[string]string) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var rows []Row
	for i, values := range s.data[category] {
		if values == nil || !matches(values, match) {
			continue
		}
		rows = append(rows, Row{
			Category: category,
			Index:    i + 2,
			Values:   copyValues(values),
		})
	}
	return rows, nil
}

func (s *MemoryStore) AddRow(_ context.Context, category string, fields map[string]string) (Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values := copyValues(fields)
	s.data[category] = append(s.data[category], values)

	return Row{
		Category: category,
		Index:    len(s.data[category]) + 1,
		Values:   copyValues(values),
	}, nil
}

func (s *MemoryStore) UpdateRow(_ context.Context, category, lookupCol, lookupVal string, fields map[string]string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, values := range s.data[category] {
		if values == nil || values[lookupCol] != lookupVal {
			continue
		}
		for col, val := range fields {
			values[col] = val
		}
		return true, nil
	}
	return false, nil
}

func (s *MemoryStore) DeleteRow(_ context.Context, row Row) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.data[row.Category]
	i := row.Index - 2
	if i < 0 || i >= len(rows) || rows[i] == nil {
		return fmt.Errorf("row %d not found in %s", row.Index, row.Category)
	}

	// Tombstone instead of shifting, so indexes from earlier reads stay valid.
	rows[i] = nil
	return nil
}

func copyValues(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for col, val := range values {
		out[col] = val
	}
	return out
}
