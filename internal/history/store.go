// Package history persists a record of validation runs.
//
// Course staff batch-checking submissions use it to see what has already
// been validated and how each submission fared, without re-running the
// checker.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/filelock"
)

//go:embed schema.sql
var schemaSQL string

// Run is a single recorded validation run.
type Run struct {
	// ID is a generated identifier for the run.
	ID string

	// Assignment is the full name of the assignment validated against.
	Assignment string

	// Submission is the path of the submission that was checked.
	Submission string

	// CandidateNumber is the candidate number supplied for the run, if any.
	CandidateNumber string

	// Fatal, Warnings and Information are the finding counts of the full
	// report (suppression flags never change what is recorded).
	Fatal       int
	Warnings    int
	Information int

	// CreatedAt is when the run finished, in UTC.
	CreatedAt time.Time
}

// Store manages the SQLite database of validation runs.
type Store struct {
	db   *sql.DB
	lock *filelock.FileLock
	path string
}

// NewStore opens (creating if necessary) the run database at dbPath.
// ":memory:" opens an in-memory database, used by tests.
func NewStore(dbPath string) (*Store, error) {
	var lock *filelock.FileLock
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
		lock = filelock.New(dbPath + ".lock")
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// busy_timeout first so later statements wait on locks instead of
	// failing immediately.
	for _, pragma := range []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, lock: lock, path: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun inserts a run, assigning an ID and timestamp when absent.
func (s *Store) RecordRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	if s.lock != nil {
		if err := s.lock.Lock(); err != nil {
			return err
		}
		defer s.lock.Unlock()
	}

	query := `INSERT INTO runs
		(id, assignment, submission, candidate_number, fatal, warnings, information, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, query,
		run.ID, run.Assignment, run.Submission, run.CandidateNumber,
		run.Fatal, run.Warnings, run.Information, run.CreatedAt); err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `SELECT id, assignment, submission, candidate_number, fatal, warnings, information, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.Assignment, &run.Submission, &run.CandidateNumber,
			&run.Fatal, &run.Warnings, &run.Information, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
