package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "streakctl",
		Short: "Workout streak and consistency tools",
		Long: `streakctl computes workout streak stats, either offline from a CSV export
of workout logs, or by asking a running gymstreak service.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newRemoteCmd())

	return rootCmd
}
