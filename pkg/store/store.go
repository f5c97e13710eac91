// Package store persists batch identification runs to a SQLite ledger so
// successive runs over the same tree can be diffed.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/fileroute/fileroute/pkg/types"
)

// Store is a SQLite-backed scan ledger.
type Store struct {
	db *sql.DB
}

// New opens (creating if necessary) a ledger at path. Use ":memory:" for an
// in-memory ledger, useful in tests.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := CreateSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// ScanRecord describes one recorded batch run.
type ScanRecord struct {
	ID        int64     `json:"id"`
	Root      string    `json:"root"`
	Recursive bool      `json:"recursive"`
	StartedAt time.Time `json:"started_at"`
}

// BeginScan records a new batch run and returns its ID.
func (s *Store) BeginScan(root string, recursive bool) (int64, error) {
	res, err := s.db.Exec(
		"INSERT INTO scans (root, recursive, started_at) VALUES (?, ?, ?)",
		root, recursive, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting scan: %w", err)
	}
	return res.LastInsertId()
}

// AddResult stores one identification result under a scan.
func (s *Store) AddResult(scanID int64, r types.IdentificationResult) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO results
			(scan_id, path, name, size_bytes, extension, file_type, processor, detection_method, confidence, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		scanID,
		r.Metadata.Path,
		r.Metadata.Name,
		r.Metadata.SizeBytes,
		r.Metadata.Extension,
		r.FileType,
		r.Processor,
		string(r.DetectionMethod),
		string(r.Confidence),
		r.Error,
	)
	if err != nil {
		return fmt.Errorf("inserting result: %w", err)
	}
	return nil
}

// AddResults stores a whole batch under a scan.
func (s *Store) AddResults(scanID int64, results []types.IdentificationResult) error {
	for _, r := range results {
		if err := s.AddResult(scanID, r); err != nil {
			return err
		}
	}
	return nil
}

// Results returns the results of a scan ordered by path.
func (s *Store) Results(scanID int64) ([]types.IdentificationResult, error) {
	rows, err := s.db.Query(`
		SELECT path, name, size_bytes, extension, file_type, processor, detection_method, confidence, error
		FROM results WHERE scan_id = ? ORDER BY path
	`, scanID)
	if err != nil {
		return nil, fmt.Errorf("querying results: %w", err)
	}
	defer rows.Close()

	var results []types.IdentificationResult
	for rows.Next() {
		var r types.IdentificationResult
		var method, confidence string
		if err := rows.Scan(
			&r.Metadata.Path,
			&r.Metadata.Name,
			&r.Metadata.SizeBytes,
			&r.Metadata.Extension,
			&r.FileType,
			&r.Processor,
			&method,
			&confidence,
			&r.Error,
		); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		r.DetectionMethod = types.DetectionMethod(method)
		r.Confidence = types.Confidence(confidence)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Scans lists recorded batch runs, newest first.
func (s *Store) Scans() ([]ScanRecord, error) {
	rows, err := s.db.Query("SELECT id, root, recursive, started_at FROM scans ORDER BY id DESC")
	if err != nil {
		return nil, fmt.Errorf("querying scans: %w", err)
	}
	defer rows.Close()

	var scans []ScanRecord
	for rows.Next() {
		var rec ScanRecord
		var started string
		if err := rows.Scan(&rec.ID, &rec.Root, &rec.Recursive, &started); err != nil {
			return nil, fmt.Errorf("scanning scan record: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, started); err == nil {
			rec.StartedAt = t
		}
		scans = append(scans, rec)
	}
	return scans, rows.Err()
}
