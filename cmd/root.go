package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "ghrecap",
	Short: "ghrecap shows what a GitHub user has been up to",
	Long: `ghrecap fetches a user's GitHub activity from the public events feed and
the issue/PR search API, normalizes everything into one canonical item
stream, and lets you window, filter and sort it from the command line.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(activityCmd)
	rootCmd.AddCommand(cacheCmd)
}
