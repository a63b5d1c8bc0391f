package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current datastore schema version.
const SchemaVersion = 1

// CreateSchema creates the database schema if it doesn't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createRecordsTable(db); err != nil {
		return fmt.Errorf("creating records table: %w", err)
	}

	if err := createSecretsTable(db); err != nil {
		return fmt.Errorf("creating secrets table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	// Insert version if table is empty
	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count)
	if err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createRecordsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			owner TEXT NOT NULL DEFAULT '',
			label TEXT NOT NULL,
			file TEXT NOT NULL,
			raw_url TEXT NOT NULL
		)
	`)
	return err
}

func createSecretsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS secrets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			record_id TEXT NOT NULL REFERENCES records(id),
			name TEXT NOT NULL,
			value TEXT NOT NULL,
			UNIQUE(record_id, name)
		)
	`)
	if err != nil {
		return err
	}

	// Create index for efficient secret lookup by record
	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_secrets_record_id ON secrets(record_id)
	`)
	return err
}
