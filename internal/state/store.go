// Package state persists validation run history in SQLite so MEDIUM drift
// can be tracked over time, not just per run.
package state

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/ruleforge/rulecheck/pkg/core"
	_ "modernc.org/sqlite" // database/sql driver
)

// RunRecord is one recorded validation batch.
type RunRecord struct {
	ID           string
	Root         string
	StartedAt    time.Time
	TotalFiles   int
	Clean        int
	WarningsOnly int
	Failed       int
	Critical     int
	High         int
	Medium       int
	Info         int
}

// FileRecord is one file's outcome within a run.
type FileRecord struct {
	RunID    string
	Path     string
	Status   string
	Critical int
	High     int
	Medium   int
	Info     int
}

// HistoryStore records and queries validation runs.
type HistoryStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the history database and runs pending migrations.
// Use ":memory:" for an in-memory store.
func Open(path string) (*HistoryStore, error) {
	dsn := path
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, fmt.Errorf("failed to create history directory: %w", err)
			}
		}
		dsn = fmt.Sprintf("%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history database: %w", err)
	}

	s := &HistoryStore{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists a batch summary and its per-file results in one
// transaction. Returns the generated run ID.
func (s *HistoryStore) RecordRun(root string, sum core.BatchSummary, startedAt time.Time) (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	id := uuid.New().String()
	var total core.Counts
	for i := range sum.Results {
		c := sum.Results[i].Counts()
		total.Critical += c.Critical
		total.High += c.High
		total.Medium += c.Medium
		total.Info += c.Info
	}

	_, err = tx.Exec(
		`INSERT INTO runs (id, root, started_at, total_files, clean, warnings_only, failed,
		                   critical_count, high_count, medium_count, info_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, root, startedAt.UTC(), sum.TotalFiles, sum.Clean, sum.WarningsOnly, sum.Failed,
		total.Critical, total.High, total.Medium, total.Info,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO file_results (run_id, path, status, critical_count, high_count, medium_count, info_count)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare file insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i := range sum.Results {
		result := &sum.Results[i]
		c := result.Counts()
		if _, err := stmt.Exec(id, result.Path, result.Status().String(),
			c.Critical, c.High, c.Medium, c.Info); err != nil {
			return "", fmt.Errorf("failed to record result for %s: %w", result.Path, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return id, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *HistoryStore) ListRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, root, started_at, total_files, clean, warnings_only, failed,
		        critical_count, high_count, medium_count, info_count
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.Root, &r.StartedAt, &r.TotalFiles, &r.Clean,
			&r.WarningsOnly, &r.Failed, &r.Critical, &r.High, &r.Medium, &r.Info); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// FileResults returns the per-file outcomes of one run, sorted by path.
func (s *HistoryStore) FileResults(runID string) ([]FileRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, path, status, critical_count, high_count, medium_count, info_count
		 FROM file_results WHERE run_id = ? ORDER BY path`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query file results: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var files []FileRecord
	for rows.Next() {
		var f FileRecord
		if err := rows.Scan(&f.RunID, &f.Path, &f.Status,
			&f.Critical, &f.High, &f.Medium, &f.Info); err != nil {
			return nil, fmt.Errorf("failed to scan file result: %w", err)
		}
		files = append(files, f)
	}
	return files, rows.Err()
}
