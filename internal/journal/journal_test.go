package journal

import (
	"path/filepath"
	"testing"
	"time"
)

func openTestJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = j.Close() })
	return j
}

func TestRecordAndList(t *testing.T) {
	j := openTestJournal(t)
	start := time.Date(2014, 3, 11, 9, 30, 0, 0, time.UTC)

	if err := j.Record("01-a", "katello", start, start.Add(2*time.Second), 0, OutcomeOK); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Record("02-b", "katello", start.Add(time.Minute), start.Add(time.Minute+time.Second), 4, OutcomeFailed); err != nil {
		t.Fatalf("Record: %v", err)
	}

	attempts, err := j.Attempts()
	if err != nil {
		t.Fatalf("Attempts: %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(attempts))
	}
	first := attempts[0]
	if first.Script != "01-a" || first.Outcome != OutcomeOK || first.ExitCode != 0 {
		t.Fatalf("unexpected first attempt: %+v", first)
	}
	if first.StartedAt != "2014-03-11T09:30:00Z" {
		t.Fatalf("timestamps should be stored as UTC RFC3339, got %q", first.StartedAt)
	}
	second := attempts[1]
	if second.Script != "02-b" || second.Outcome != OutcomeFailed || second.ExitCode != 4 {
		t.Fatalf("unexpected second attempt: %+v", second)
	}
}

func TestRecord_RejectsUnknownOutcome(t *testing.T) {
	j := openTestJournal(t)
	now := time.Now()
	if err := j.Record("01-a", "katello", now, now, 0, "maybe"); err == nil {
		t.Fatalf("schema should reject unknown outcomes")
	}
}

func TestOpen_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	now := time.Now()
	if err := j.Record("01-a", "katello", now, now, 0, OutcomeDryRun); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := j.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	j2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = j2.Close() }()
	attempts, err := j2.Attempts()
	if err != nil {
		t.Fatalf("Attempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].Outcome != OutcomeDryRun {
		t.Fatalf("journal should persist across opens, got %+v", attempts)
	}
}
