package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
)

var (
	Version = "dev"
	Commit  = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and build information",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "billing-service %s (commit: %s, built-in plans: %d)\n", Version, Commit, plan.Default().Len())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
