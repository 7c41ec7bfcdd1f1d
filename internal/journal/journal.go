// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal keeps a local SQLite history of sync runs and the outcome
// of every entry each run touched. The journal is write-only from the sync
// loop's point of view: selection never consults it.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/booksync/internal/booksync"
)

// DefaultPath is where the journal lives when no path is given.
const DefaultPath = ".booksync/journal.db"

// Journal is an open run history database.
type Journal struct {
	db *sql.DB
}

// Run is one recorded sync run with its per-status totals.
type Run struct {
	ID             string    `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	DryRun         bool      `json:"dry_run"`
	Selected       int       `json:"selected"`
	Updated        int       `json:"updated"`
	NoMatch        int       `json:"no_match"`
	Failed         int       `json:"failed"`
	Skipped        int       `json:"skipped"`
	SelectionError string    `json:"selection_error,omitempty"`
}

// Open opens or creates the journal database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating journal directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}

	j := &Journal{db: db}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			dry_run INTEGER NOT NULL,
			selected INTEGER NOT NULL,
			updated INTEGER NOT NULL,
			no_match INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			skipped INTEGER NOT NULL,
			selection_error TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS outcomes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			entry_id TEXT NOT NULL,
			title TEXT,
			status TEXT NOT NULL,
			matched_title TEXT,
			detail TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_run_id ON outcomes(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_entry_id ON outcomes(entry_id)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run summary and its outcomes in one transaction.
func (j *Journal) Record(ctx context.Context, sum booksync.Summary) error {
	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, dry_run, selected, updated, no_match, failed, skipped, selection_error)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sum.RunID,
		sum.StartedAt.UTC().Format(time.RFC3339Nano),
		sum.FinishedAt.UTC().Format(time.RFC3339Nano),
		sum.DryRun,
		sum.Selected,
		sum.Count(booksync.StatusUpdated),
		sum.Count(booksync.StatusNoMatch),
		sum.Failed(),
		sum.Count(booksync.StatusSkipped),
		sum.SelectionError,
	)
	if err != nil {
		return fmt.Errorf("inserting run %s: %w", sum.RunID, err)
	}

	for _, o := range sum.Outcomes {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, entry_id, title, status, matched_title, detail) VALUES (?, ?, ?, ?, ?, ?)`,
			sum.RunID, o.EntryID, o.Title, string(o.Status), o.MatchedTitle, o.Detail,
		)
		if err != nil {
			return fmt.Errorf("inserting outcome for %s: %w", o.EntryID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run %s: %w", sum.RunID, err)
	}
	return nil
}

// Runs returns the most recent runs first. A limit of zero returns all.
func (j *Journal) Runs(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, dry_run, selected, updated, no_match, failed, skipped, COALESCE(selection_error, '')
		FROM runs ORDER BY started_at DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &started, &finished, &r.DryRun, &r.Selected, &r.Updated, &r.NoMatch, &r.Failed, &r.Skipped, &r.SelectionError); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Outcomes returns the recorded outcomes of one run in processing order.
func (j *Journal) Outcomes(ctx context.Context, runID string) ([]booksync.Outcome, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT entry_id, COALESCE(title, ''), status, COALESCE(matched_title, ''), COALESCE(detail, '')
		 FROM outcomes WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []booksync.Outcome
	for rows.Next() {
		var o booksync.Outcome
		var status string
		if err := rows.Scan(&o.EntryID, &o.Title, &status, &o.MatchedTitle, &o.Detail); err != nil {
			return nil, fmt.Errorf("scanning outcome: %w", err)
		}
		o.Status = booksync.Status(status)
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}
