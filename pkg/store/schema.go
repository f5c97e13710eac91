package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current ledger schema version.
const SchemaVersion = 1

// CreateSchema creates the ledger tables if they don't exist.
func CreateSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}
	if err := createScansTable(db); err != nil {
		return fmt.Errorf("creating scans table: %w", err)
	}
	if err := createResultsTable(db); err != nil {
		return fmt.Errorf("creating results table: %w", err)
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

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
	}
	return err
}

func createScansTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS scans (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			root TEXT NOT NULL,
			recursive INTEGER NOT NULL,
			started_at TEXT NOT NULL
		)
	`)
	return err
}

func createResultsTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS results (
			scan_id INTEGER NOT NULL REFERENCES scans(id),
			path TEXT NOT NULL,
			name TEXT NOT NULL,
			size_bytes INTEGER NOT NULL,
			extension TEXT NOT NULL,
			file_type TEXT NOT NULL,
			processor TEXT,
			detection_method TEXT NOT NULL,
			confidence TEXT NOT NULL,
			error TEXT,
			PRIMARY KEY (scan_id, path)
		)
	`)
	return err
}
