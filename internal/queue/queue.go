// Package queue builds the ordered list of upgrade steps to run: every
// executable file in the scripts directory whose header applies to the
// active deployment and which the history store does not already cover.
package queue

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/pressplay21/katello-installer-legacy/internal/history"
	"github.com/pressplay21/katello-installer-legacy/internal/step"
)

// Build scans dir and returns the filtered queue in lexicographic filename
// order. Directories and non-executable entries are logged and skipped; a
// malformed header aborts the whole build (validation is fatal by design,
// running a partial sequence is worse than running none).
func Build(dir string, deployment string, hist *history.Store, log zerolog.Logger) ([]*step.Descriptor, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read scripts dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	byName := make(map[string]fs.DirEntry, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
		byName[e.Name()] = e
	}
	// ReadDir sorts by filename already; keep the sort explicit because the
	// resulting order is the execution order.
	sort.Strings(names)

	var out []*step.Descriptor
	for _, name := range names {
		e := byName[name]
		path := filepath.Join(dir, name)
		if e.IsDir() {
			log.Warn().Str("entry", name).Msg("skipping directory in scripts dir")
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			log.Warn().Str("entry", name).Msg("skipping non-executable entry")
			continue
		}

		d, err := step.Parse(path)
		if err != nil {
			return nil, err
		}
		if !d.AppliesTo(deployment) {
			log.Debug().Str("step", name).Str("deployment", deployment).Msg("step not applicable")
			continue
		}
		if hist.IsDone(d) {
			log.Debug().Str("step", name).Msg("step already applied")
			continue
		}
		out = append(out, d)
	}
	return out, nil
}
