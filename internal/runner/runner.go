// Package runner iterates the upgrade queue: service stop/check, per-step
// prompting, subprocess execution, history marking, and journaling. Strictly
// sequential; one step finishes before the next is considered.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/pressplay21/katello-installer-legacy/internal/config"
	"github.com/pressplay21/katello-installer-legacy/internal/executor"
	"github.com/pressplay21/katello-installer-legacy/internal/history"
	"github.com/pressplay21/katello-installer-legacy/internal/interactive"
	"github.com/pressplay21/katello-installer-legacy/internal/journal"
	"github.com/pressplay21/katello-installer-legacy/internal/services"
	"github.com/pressplay21/katello-installer-legacy/internal/status"
	"github.com/pressplay21/katello-installer-legacy/internal/step"
)

// Runner executes or describes a built queue.
type Runner struct {
	Settings   config.Settings
	Deployment string
	Log        zerolog.Logger
	History    *history.Store
	// Journal may be nil; journaling is best-effort.
	Journal  *journal.Journal
	Exec     executor.Runner
	Services *services.Control
	// Ask is the per-step prompt; overridable in tests. Unused when
	// Settings.Unattended is set.
	Ask func(msg string) interactive.Answer
	// DescribeOut receives describe-mode output. Defaults to stdout.
	// Description text never enters the log file.
	DescribeOut io.Writer
}

// Describe prints each queued step's name, run mode, and description, then
// returns without executing anything.
func (r *Runner) Describe(steps []*step.Descriptor) {
	out := r.DescribeOut
	if out == nil {
		out = os.Stdout
	}
	if len(steps) == 0 {
		fmt.Fprintln(out, "Nothing to upgrade.")
		return
	}
	for _, d := range steps {
		fmt.Fprintf(out, "%s (%s, run: %s)\n", d.Name, d.File(), d.Mode)
		if d.Description != "" {
			fmt.Fprintf(out, "Description: %s\n", d.Description)
		}
	}
}

// Execute runs the queue. The returned error, if any, carries the exit code
// for main: operator decline and step failure both map to the interrupted
// outcome, which is safe to resume by re-running the tool.
func (r *Runner) Execute(ctx context.Context, steps []*step.Descriptor) error {
	sink := func(line string) { r.Log.Info().Msg(line) }

	if r.Settings.AutoStop {
		r.Log.Info().Msg("stopping services")
		if err := r.Services.Stop(ctx, sink); err != nil {
			return err
		}
	}
	if !r.Settings.SkipServiceCheck {
		r.Log.Info().Msg("checking that services are stopped")
		if err := r.Services.CheckStopped(ctx, sink); err != nil {
			return err
		}
	}

	if len(steps) == 0 {
		r.Log.Info().Msg("nothing to upgrade")
		return nil
	}

	for _, d := range steps {
		if !r.Settings.Unattended {
			switch r.ask(d) {
			case interactive.Skip:
				r.Log.Info().Str("step", d.File()).Msg("step skipped by operator")
				continue
			case interactive.No:
				return status.New(status.Interrupted, "upgrade interrupted by operator")
			}
		}
		if err := r.runStep(ctx, d, sink); err != nil {
			return err
		}
	}
	r.Log.Info().Msg("upgrade finished")
	return nil
}

func (r *Runner) ask(d *step.Descriptor) interactive.Answer {
	ask := r.Ask
	if ask == nil {
		ask = interactive.Ask
	}
	return ask(fmt.Sprintf("Run step %s (%s)?", d.File(), d.Name))
}

func (r *Runner) runStep(ctx context.Context, d *step.Descriptor, sink executor.LineSink) error {
	r.Log.Info().Str("step", d.File()).Str("name", d.Name).Msg("running step")

	started := time.Now()
	code, execErr := r.Exec.Run(ctx, d.Path, r.Settings.ScriptsDir, sink)
	finished := time.Now()

	outcome := journal.OutcomeOK
	switch {
	case r.Settings.DryRun:
		outcome = journal.OutcomeDryRun
	case execErr != nil:
		outcome = journal.OutcomeFailed
	}
	r.journal(d, started, finished, code, outcome)

	if execErr != nil {
		r.Log.Error().Str("step", d.File()).Int("exit_code", code).Msg("step failed")
		return status.Wrap(status.Interrupted, fmt.Sprintf("step %s failed", d.File()), execErr)
	}

	// Dry runs leave the history untouched so a later real run still sees
	// the step as pending.
	if !r.Settings.DryRun {
		if err := r.History.MarkDone(d); err != nil {
			return status.Wrap(status.GeneralError, "record step completion", err)
		}
	}
	r.Log.Info().Str("step", d.File()).Msg("step succeeded")
	return nil
}

// journal records the attempt if a journal is open. Failures degrade to a
// logged warning; the flat file is the authoritative record.
func (r *Runner) journal(d *step.Descriptor, started, finished time.Time, code int, outcome string) {
	if r.Journal == nil {
		return
	}
	if err := r.Journal.Record(d.File(), r.Deployment, started, finished, code, outcome); err != nil {
		r.Log.Warn().Err(err).Str("step", d.File()).Msg("journal write failed")
	}
}
