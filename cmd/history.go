package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pressplay21/katello-installer-legacy/internal/config"
	"github.com/pressplay21/katello-installer-legacy/internal/history"
	"github.com/pressplay21/katello-installer-legacy/internal/journal"
	"github.com/pressplay21/katello-installer-legacy/internal/status"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show applied steps and the execution journal",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, _ := cmd.Flags().GetString("config")
		explicit := path != ""
		if !explicit {
			path = config.DefaultDefaultsFile
		}
		s, err := config.Load(path, explicit)
		if err != nil {
			return status.Wrap(status.OptionError, "load defaults file", err)
		}

		hist, err := history.Open(s.HistoryFile)
		if err != nil {
			return status.Wrap(status.GeneralError, "open history", err)
		}
		applied, err := hist.Applied()
		if err != nil {
			return status.Wrap(status.GeneralError, "read history", err)
		}
		if len(applied) == 0 {
			fmt.Println("no steps applied yet")
		} else {
			fmt.Println("Applied steps:")
			for _, name := range applied {
				fmt.Printf("  %s\n", name)
			}
		}

		jnl, err := journal.Open(s.JournalDB)
		if err != nil {
			// The journal is best-effort on the write side too.
			return nil
		}
		defer func() { _ = jnl.Close() }()
		attempts, err := jnl.Attempts()
		if err != nil || len(attempts) == 0 {
			return nil
		}
		fmt.Println("Execution journal:")
		for _, a := range attempts {
			fmt.Printf("  %s\t%s\t%s\texit=%d\t%s\n", a.StartedAt, a.Script, a.Deployment, a.ExitCode, a.Outcome)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringP("config", "c", "", "Path to the defaults file (default /etc/katello/upgrade.toml)")
	rootCmd.AddCommand(historyCmd)
}
