package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/praetorian-inc/envhunter/pkg/types"
)

// driverName is the database/sql driver registered by modernc.org/sqlite.
const driverName = "sqlite"

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a SQLite-based store.
func NewSQLite(path string) (*SQLiteStore, error) {
	db, err := openDB(path)
	if err != nil {
		return nil, err
	}

	// Initialize schema
	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// openDB opens path with a single connection so that ":memory:" databases
// are shared by every statement.
func openDB(path string) (*sql.DB, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// AddRecord stores a record and its secrets. Records already present are ignored.
func (s *SQLiteStore) AddRecord(r *types.ScanRecord) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT OR IGNORE INTO records (id, owner, label, file, raw_url)
		VALUES (?, ?, ?, ?, ?)
	`, r.ID, r.Owner, r.Label, r.File, r.RawURL)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}

	affected, _ := result.RowsAffected()
	if affected == 0 {
		return nil
	}

	stmt, err := tx.Prepare("INSERT OR IGNORE INTO secrets (record_id, name, value) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing secret insert: %w", err)
	}
	defer stmt.Close()

	for _, name := range r.Secrets.Keys() {
		if _, err := stmt.Exec(r.ID, name, r.Secrets[name]); err != nil {
			return fmt.Errorf("inserting secret: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// RecordExists checks if a record with this ID exists.
func (s *SQLiteStore) RecordExists(id string) (bool, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM records WHERE id = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking record existence: %w", err)
	}
	return count > 0, nil
}

// GetRecords retrieves all records in insertion order.
func (s *SQLiteStore) GetRecords() ([]*types.ScanRecord, error) {
	rows, err := s.db.Query(`
		SELECT r.id, r.owner, r.label, r.file, r.raw_url, s.name, s.value
		FROM records r
		LEFT JOIN secrets s ON s.record_id = r.id
		ORDER BY r.seq, s.id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []*types.ScanRecord
	byID := make(map[string]*types.ScanRecord)
	for rows.Next() {
		var r types.ScanRecord
		var name, value sql.NullString

		if err := rows.Scan(&r.ID, &r.Owner, &r.Label, &r.File, &r.RawURL, &name, &value); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}

		rec, ok := byID[r.ID]
		if !ok {
			rec = &r
			rec.Secrets = make(types.ExtractedSecret)
			byID[r.ID] = rec
			records = append(records, rec)
		}
		if name.Valid {
			rec.Secrets[name.String] = value.String
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}

	return records, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
