// Package step parses the self-describing comment header at the top of an
// upgrade script and exposes it as a validated descriptor.
package step

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

// RunMode says whether a step applies once (tracked in history) or on every
// invocation.
type RunMode string

const (
	RunOnce   RunMode = "once"
	RunAlways RunMode = "always"
)

// Descriptor is the parsed header of one upgrade script.
type Descriptor struct {
	// Path is the script's full path on disk.
	Path string
	// Name is the operator-facing display name from the header.
	Name string
	// Deployments lists the deployment variants the step applies to.
	Deployments []string
	// Mode is the step's run mode.
	Mode RunMode
	// Description is the header's free-text description, possibly empty.
	Description string
}

// File returns the script's base filename, the identity used by the history
// store.
func (d *Descriptor) File() string {
	return filepath.Base(d.Path)
}

// AppliesTo reports whether the step applies to the given deployment.
func (d *Descriptor) AppliesTo(deployment string) bool {
	for _, a := range d.Deployments {
		if a == deployment {
			return true
		}
	}
	return false
}

// lineKind classifies one header line.
type lineKind int

const (
	lineName lineKind = iota
	lineApply
	lineRun
	lineDescription
	lineComment // a comment line with no marker; description continuation
	lineEnd     // first non-comment line, header is over
)

// headerLine is the structured result of classifying a single line.
type headerLine struct {
	kind  lineKind
	value string
}

// classifyLine turns one raw line into a structured header line. The header
// lives entirely in leading '#' comment lines; the first non-comment line
// terminates it.
func classifyLine(raw string) headerLine {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "#") {
		return headerLine{kind: lineEnd}
	}
	body := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	for _, m := range []struct {
		marker string
		kind   lineKind
	}{
		{"name:", lineName},
		{"apply:", lineApply},
		{"run:", lineRun},
		{"description:", lineDescription},
	} {
		if strings.HasPrefix(body, m.marker) {
			return headerLine{kind: m.kind, value: strings.TrimSpace(body[len(m.marker):])}
		}
	}
	return headerLine{kind: lineComment, value: body}
}

// Parse reads path's header and returns its descriptor. A header missing
// name, apply, or run, or naming an unknown run mode, fails with the
// validation exit code; the whole run is expected to abort rather than skip
// the malformed step.
func Parse(path string) (*Descriptor, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open step %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	d := &Descriptor{Path: path}
	var desc []string
	inDescription := false

	s := bufio.NewScanner(f)
	for s.Scan() {
		line := classifyLine(s.Text())
		if line.kind == lineEnd {
			break
		}
		if line.kind != lineComment {
			inDescription = false
		}
		switch line.kind {
		case lineName:
			d.Name = line.value
		case lineApply:
			d.Deployments = strings.Fields(line.value)
		case lineRun:
			d.Mode = RunMode(line.value)
		case lineDescription:
			desc = append(desc, line.value)
			inDescription = true
		case lineComment:
			if inDescription {
				desc = append(desc, line.value)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("read step %s: %w", path, err)
	}

	d.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Descriptor) validate() error {
	file := d.File()
	if d.Name == "" {
		return status.Errorf(status.ValidationError, "step %s: missing name header", file)
	}
	if len(d.Deployments) == 0 {
		return status.Errorf(status.ValidationError, "step %s: missing apply header", file)
	}
	if d.Mode == "" {
		return status.Errorf(status.ValidationError, "step %s: missing run header", file)
	}
	if d.Mode != RunOnce && d.Mode != RunAlways {
		return status.Errorf(status.ValidationError, "step %s: run mode must be %q or %q, got %q", file, RunOnce, RunAlways, d.Mode)
	}
	return nil
}
