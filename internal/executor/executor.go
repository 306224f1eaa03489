// Package executor runs one upgrade script as a subprocess, streaming its
// combined stdout/stderr line-by-line to a sink while the child runs.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// LineSink receives each output line produced by a running script.
type LineSink func(line string)

// Runner executes a script. Tests inject fakes; production code uses
// Executor.
type Runner interface {
	// Run executes the script at path with dir as its working directory,
	// feeding each output line to sink. A non-zero exit is reported through
	// both the returned exit code and err.
	Run(ctx context.Context, path string, dir string, sink LineSink) (exitCode int, err error)
}

// Executor is the real Runner. DryRun suppresses execution and reports every
// script as trivially successful.
type Executor struct {
	DryRun bool
}

// New returns a Runner backed by Executor.
func New(dry bool) Runner {
	return &Executor{DryRun: dry}
}

// Run executes the script. Dry-run reports success without starting the
// child.
func (e *Executor) Run(ctx context.Context, path string, dir string, sink LineSink) (int, error) {
	if e.DryRun {
		sink(fmt.Sprintf("dry-run: %s", path))
		return 0, nil
	}
	return stream(exec.CommandContext(ctx, path), dir, sink)
}

// ArgvRunner runs an arbitrary argv with the same combined-output streaming
// as script execution. Used for the external service-control commands.
type ArgvRunner struct{}

// Run executes argv in the process's current directory.
func (ArgvRunner) Run(ctx context.Context, argv []string, sink LineSink) (int, error) {
	if len(argv) == 0 {
		return -1, fmt.Errorf("empty argv")
	}
	return stream(exec.CommandContext(ctx, argv[0], argv[1:]...), "", sink)
}

// stream starts cmd, reads its combined output through a single pipe so
// lines reach the sink in the order the child produced them, and reaps the
// child on every exit path.
func stream(cmd *exec.Cmd, dir string, sink LineSink) (int, error) {
	name := cmd.Path
	if dir != "" {
		cmd.Dir = dir
	}

	out, err := cmd.StdoutPipe()
	if err != nil {
		return -1, fmt.Errorf("pipe %s: %w", name, err)
	}
	// Combined output: point stderr at the same pipe as stdout.
	cmd.Stderr = cmd.Stdout

	if err := cmd.Start(); err != nil {
		_ = out.Close()
		return -1, fmt.Errorf("start %s: %w", name, err)
	}

	sc := bufio.NewScanner(out)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		sink(sc.Text())
	}
	scanErr := sc.Err()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
		}
		return -1, fmt.Errorf("wait %s: %w", name, err)
	}
	if scanErr != nil {
		return -1, fmt.Errorf("read output of %s: %w", name, scanErr)
	}
	return 0, nil
}
