package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pressplay21/katello-installer-legacy/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("katello-upgrade %s\n", version.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
