// Package services shells out to the product's service-control commands.
// Both commands are opaque pass/fail subprocesses; their output is forwarded
// to the run log.
package services

import (
	"context"
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/pressplay21/katello-installer-legacy/internal/executor"
	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

// CommandRunner runs one argv. Tests inject fakes.
type CommandRunner interface {
	Run(ctx context.Context, argv []string, sink executor.LineSink) (exitCode int, err error)
}

// Control drives the external service stop/status commands.
type Control struct {
	// StopCommand and StatusCommand are full command strings, split with
	// shell quoting rules before execution.
	StopCommand   string
	StatusCommand string
	Runner        CommandRunner
}

// Stop stops all product services. Failure is fatal with the stop-error exit
// code: running upgrade steps against live services corrupts state.
func (c *Control) Stop(ctx context.Context, sink executor.LineSink) error {
	return c.run(ctx, c.StopCommand, "stop services", sink)
}

// CheckStopped verifies every relevant service is down. The status command
// exits non-zero while anything is still running.
func (c *Control) CheckStopped(ctx context.Context, sink executor.LineSink) error {
	return c.run(ctx, c.StatusCommand, "check services stopped", sink)
}

func (c *Control) run(ctx context.Context, command string, what string, sink executor.LineSink) error {
	argv, err := shellquote.Split(command)
	if err != nil {
		return status.Wrap(status.StopError, fmt.Sprintf("%s: parse command %q", what, command), err)
	}
	if len(argv) == 0 {
		return status.Errorf(status.StopError, "%s: empty command", what)
	}
	code, err := c.Runner.Run(ctx, argv, sink)
	if err != nil {
		return status.Wrap(status.StopError, what, err)
	}
	if code != 0 {
		return status.Errorf(status.StopError, "%s: %q exited with status %d", what, command, code)
	}
	return nil
}
