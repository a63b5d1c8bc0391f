package store

import (
	"sync"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// MemoryStore implements Store using in-memory data structures.
// It keeps every record it is given, in order, and is the accumulator
// behind the end-of-scan report.
type MemoryStore struct {
	mu      sync.RWMutex
	records []*types.ScanRecord
	ids     map[string]int // record ID -> number of copies held
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		records: make([]*types.ScanRecord, 0),
		ids:     make(map[string]int),
	}
}

// AddRecord appends a record.
func (m *MemoryStore) AddRecord(r *types.ScanRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records = append(m.records, r)
	m.ids[r.ID]++
	return nil
}

// RecordExists checks if a record with this ID has been stored.
func (m *MemoryStore) RecordExists(id string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.ids[id] > 0, nil
}

// GetRecords retrieves all records in insertion order.
func (m *MemoryStore) GetRecords() ([]*types.ScanRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// Return a copy to avoid external modifications
	result := make([]*types.ScanRecord, len(m.records))
	copy(result, m.records)
	return result, nil
}

// Len returns the number of records held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.records)
}

// Close is a no-op for memory store.
func (m *MemoryStore) Close() error {
	return nil
}
