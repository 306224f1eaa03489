// Package history tracks which "once" steps have already been applied, as an
// append-only flat file of base filenames, one per line. The file is never
// rewritten or compacted; a missing file means nothing has been applied yet.
package history

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/pressplay21/katello-installer-legacy/internal/step"
)

// Store is the flat-file history of applied steps.
type Store struct {
	path string
	done map[string]bool
}

// Open loads the history file at path. A missing file is not an error.
func Open(path string) (*Store, error) {
	s := &Store{path: path, done: map[string]bool{}}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("open history %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			s.done[line] = true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history %s: %w", path, err)
	}
	return s, nil
}

// IsDone reports whether d has already been applied. Steps with run mode
// "always" are never considered done.
func (s *Store) IsDone(d *step.Descriptor) bool {
	if d.Mode == step.RunAlways {
		return false
	}
	return s.done[d.File()]
}

// MarkDone records d as applied. A no-op for "always" steps and for steps
// already recorded. A write failure is returned to the caller and must abort
// the run: continuing without the record would re-apply the step next time.
func (s *Store) MarkDone(d *step.Descriptor) error {
	if d.Mode == step.RunAlways || s.done[d.File()] {
		return nil
	}
	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open history %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()
	if _, err := fmt.Fprintln(f, d.File()); err != nil {
		return fmt.Errorf("append history %s: %w", s.path, err)
	}
	s.done[d.File()] = true
	return nil
}

// Applied returns the recorded filenames in file order.
func (s *Store) Applied() ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open history %s: %w", s.path, err)
	}
	defer func() { _ = f.Close() }()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" {
			out = append(out, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read history %s: %w", s.path, err)
	}
	return out, nil
}
