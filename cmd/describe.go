package cmd

import (
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List the steps that would run, without executing anything",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runUpgrade(cmd, true)
	},
}

func init() {
	// Same pre-flight and queue building as the root command; the flags that
	// shape the queue apply here too.
	f := describeCmd.Flags()
	f.Bool("quiet", false, "Suppress console logging")
	f.Bool("trace", false, "Print a stack trace when a fatal error occurs")
	f.Bool("skip-root-check", false, "Allow running without root privileges")
	f.StringP("deployment", "d", "", "Force the deployment instead of detecting it (katello or headpin)")
	f.StringP("config", "c", "", "Path to the defaults file (default /etc/katello/upgrade.toml)")
	rootCmd.AddCommand(describeCmd)
}
