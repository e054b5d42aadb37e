// Package main provides the entry point for the svnstat CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/svnstat/svnstat/cmd/svnstat/commands"
)

var version = "dev"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		// A missing .env file is fine; the environment still applies.
		_ = err
	}

	rootCmd := &cobra.Command{
		Use:   "svnstat",
		Short: "Subversion commit statistics",
		Long: `svnstat fetches Subversion history incrementally, persists the commit
record set, and turns it into time-bucketed statistics.

Commands:
  sync      Fetch new commits into the persisted record set
  report    Render an HTML statistics dashboard
  authors   Show per-author commit totals
  serve     Serve the statistics JSON API
  reset     Delete the persisted record set for a repository`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewSyncCommand())
	rootCmd.AddCommand(commands.NewReportCommand())
	rootCmd.AddCommand(commands.NewAuthorsCommand())
	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewResetCommand())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "svnstat %s\n", version)
		},
	}
}
