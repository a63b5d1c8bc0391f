package store

import (
	"fmt"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// MemoryPath selects the in-memory store.
const MemoryPath = ":memory:"

// Store provides persistence for scan records.
// This interface abstracts the underlying storage implementation: the
// in-memory accumulator behind the final report, and the SQLite datastore
// that keeps history across runs.
type Store interface {
	// AddRecord stores a scan record. Records with an existing ID are ignored
	// by persistent backends.
	AddRecord(r *types.ScanRecord) error

	// RecordExists checks if a record with this ID has been stored.
	RecordExists(id string) (bool, error)

	// GetRecords retrieves all records in insertion order.
	GetRecords() ([]*types.ScanRecord, error)

	// Close releases the store.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path.
	// Use ":memory:" for the in-memory store (useful for testing).
	Path string
}

// New creates a new Store.
// ":memory:" returns a MemoryStore; any other path opens a SQLite database.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}

	return NewSQLite(cfg.Path)
}
