// Package cmd wires the CLI surface: the root upgrade command plus the
// describe, history, and version subcommands.
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

var rootCmd = &cobra.Command{
	Use:   "katello-upgrade",
	Short: "katello-upgrade sequences the pending upgrade steps for this installation",
	Long: "katello-upgrade scans the upgrade-scripts directory, filters the steps to those\n" +
		"applicable to the detected deployment and not yet applied, and runs them in\n" +
		"order with operator confirmation. Completed \"once\" steps are recorded so that\n" +
		"re-running after an interruption is always safe.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		describe, _ := cmd.Flags().GetBool("describe")
		return runUpgrade(cmd, describe)
	},
}

func init() {
	f := rootCmd.Flags()
	f.BoolP("autostop", "s", false, "Stop the product services before running any step")
	f.BoolP("yes", "y", false, "Unattended mode: run every step without prompting")
	f.Bool("dry-run", false, "Preview: run nothing, treat every step as successful")
	f.BoolP("quiet", "q", false, "Suppress console output (the log file still receives everything)")
	f.Bool("describe", false, "List the queued steps and exit without executing")
	f.Bool("trace", false, "Print a stack trace when a fatal error occurs")
	f.Bool("skip-service-check", false, "Do not verify that all services are stopped")
	f.Bool("skip-root-check", false, "Allow running without root privileges")
	f.StringP("deployment", "d", "", "Force the deployment instead of detecting it (katello or headpin)")
	f.StringP("config", "c", "", "Path to the defaults file (default /etc/katello/upgrade.toml)")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return status.Wrap(status.OptionError, "parse options", err)
	})
}

// Execute runs the CLI and returns the process exit code. SIGINT/SIGTERM
// terminate with the externally-stopped code; a step interrupted mid-flight
// leaves the history reflecting exactly the steps that completed, so
// re-running is safe.
func Execute() int {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Fprintln(os.Stderr, "katello-upgrade: externally stopped")
		os.Exit(status.ExternallyTerminated)
	}()

	err := rootCmd.Execute()
	if err == nil {
		return status.Success
	}

	quiet, _ := rootCmd.Flags().GetBool("quiet")
	trace, _ := rootCmd.Flags().GetBool("trace")
	code := status.CodeOf(err)
	if !quiet {
		fmt.Fprintf(os.Stderr, "katello-upgrade: %v (exit code %d)\n", err, code)
	}
	if trace {
		os.Stderr.Write(debug.Stack())
	}
	return code
}
