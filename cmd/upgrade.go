package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pressplay21/katello-installer-legacy/internal/config"
	"github.com/pressplay21/katello-installer-legacy/internal/deployment"
	"github.com/pressplay21/katello-installer-legacy/internal/executor"
	"github.com/pressplay21/katello-installer-legacy/internal/history"
	"github.com/pressplay21/katello-installer-legacy/internal/journal"
	"github.com/pressplay21/katello-installer-legacy/internal/logging"
	"github.com/pressplay21/katello-installer-legacy/internal/queue"
	"github.com/pressplay21/katello-installer-legacy/internal/runner"
	"github.com/pressplay21/katello-installer-legacy/internal/services"
	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

// loadSettings resolves built-in defaults, the optional defaults file, and
// the command's flags, in that order of precedence (later wins).
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	path, _ := cmd.Flags().GetString("config")
	explicit := path != ""
	if !explicit {
		path = config.DefaultDefaultsFile
	}
	s, err := config.Load(path, explicit)
	if err != nil {
		return s, status.Wrap(status.OptionError, "load defaults file", err)
	}

	if v, _ := cmd.Flags().GetString("deployment"); v != "" {
		s.Deployment = v
	}
	s.AutoStop, _ = cmd.Flags().GetBool("autostop")
	s.Unattended, _ = cmd.Flags().GetBool("yes")
	s.DryRun, _ = cmd.Flags().GetBool("dry-run")
	s.Quiet, _ = cmd.Flags().GetBool("quiet")
	s.Trace, _ = cmd.Flags().GetBool("trace")
	s.SkipServiceCheck, _ = cmd.Flags().GetBool("skip-service-check")
	s.SkipRootCheck, _ = cmd.Flags().GetBool("skip-root-check")
	return s, nil
}

func checkRoot(s config.Settings) error {
	if s.SkipRootCheck {
		return nil
	}
	if os.Geteuid() != 0 {
		return status.New(status.NotRoot, "this command must be run as root")
	}
	return nil
}

// runUpgrade is the whole run: option resolution, root check, queue
// building, then either describe or execute.
func runUpgrade(cmd *cobra.Command, describe bool) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := checkRoot(s); err != nil {
		return err
	}

	log, err := logging.Open(logging.Options{LogFile: s.LogFile, Quiet: s.Quiet})
	if err != nil {
		return status.Wrap(status.GeneralError, "open log", err)
	}
	defer func() { _ = log.Close() }()

	dep, err := deployment.Detect(s.Deployment, s.DeploymentConfig)
	if err != nil {
		return err
	}

	hist, err := history.Open(s.HistoryFile)
	if err != nil {
		return status.Wrap(status.GeneralError, "open history", err)
	}

	steps, err := queue.Build(s.ScriptsDir, dep, hist, log.Logger)
	if err != nil {
		return err
	}

	if describe {
		r := &runner.Runner{Settings: s, Deployment: dep, Log: log.Logger}
		r.Describe(steps)
		return nil
	}

	// Journal failures never block an upgrade.
	var jnl *journal.Journal
	if j, err := journal.Open(s.JournalDB); err != nil {
		log.Warn().Err(err).Msg("run journal unavailable")
	} else {
		jnl = j
		defer func() { _ = jnl.Close() }()
	}

	r := &runner.Runner{
		Settings:   s,
		Deployment: dep,
		Log:        log.Logger,
		History:    hist,
		Journal:    jnl,
		Exec:       executor.New(s.DryRun),
		Services: &services.Control{
			StopCommand:   s.StopCommand,
			StatusCommand: s.StatusCommand,
			Runner:        executor.ArgvRunner{},
		},
	}
	return r.Execute(cmd.Context(), steps)
}
