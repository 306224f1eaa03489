// Package journal keeps an audit trail of every step execution attempt in a
// local sqlite database. The flat-file history remains the source of truth
// for idempotence; the journal only answers "what ran, when, and how did it
// end", including dry-run previews.
package journal

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Outcomes recorded per attempt.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"
	OutcomeDryRun = "dry-run"
)

// Attempt is one recorded execution.
type Attempt struct {
	ID         int64
	Script     string
	Deployment string
	StartedAt  string
	FinishedAt string
	ExitCode   int
	Outcome    string
}

// Journal is the sqlite-backed attempt log.
type Journal struct {
	db *sql.DB
}

// Open ensures the database directory exists, opens the database, and
// applies the embedded schema.
func Open(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create journal dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply journal schema: %w", err)
	}
	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error { return j.db.Close() }

// Record inserts one attempt row.
func (j *Journal) Record(script, deployment string, started, finished time.Time, exitCode int, outcome string) error {
	_, err := j.db.Exec(
		`INSERT INTO attempts (script, deployment, started_at, finished_at, exit_code, outcome)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		script, deployment,
		started.UTC().Format(time.RFC3339), finished.UTC().Format(time.RFC3339),
		exitCode, outcome,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}

// Attempts returns all recorded attempts, oldest first.
func (j *Journal) Attempts() ([]Attempt, error) {
	rows, err := j.db.Query(
		`SELECT id, script, deployment, started_at, finished_at, exit_code, outcome
		 FROM attempts ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Attempt
	for rows.Next() {
		var a Attempt
		if err := rows.Scan(&a.ID, &a.Script, &a.Deployment, &a.StartedAt, &a.FinishedAt, &a.ExitCode, &a.Outcome); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return out, nil
}
