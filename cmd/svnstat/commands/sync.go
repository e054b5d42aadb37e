package commands

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/svnstat/svnstat/internal/config"
)

// NewSyncCommand creates the sync command.
func NewSyncCommand() *cobra.Command {
	var (
		repo    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch new commits into the persisted record set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			repoURL, err := resolveRepo(repo, cfg)
			if err != nil {
				return err
			}

			logger := newLogger(verbose)
			svc, cleanup, err := newService(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			result, err := svc.Sync(cmd.Context(), repoURL)
			if err != nil {
				return fmt.Errorf("sync %s: %w", repoURL, err)
			}

			if !result.Fetched {
				fmt.Printf("%s nothing to fetch, %s commits recorded\n",
					color.YellowString("up to date:"),
					humanize.Comma(int64(result.TotalCommits)))
				return nil
			}

			fmt.Printf("%s %s commits (%s new) in %s\n",
				color.GreenString("synced:"),
				humanize.Comma(int64(result.TotalCommits)),
				humanize.Comma(int64(result.NewCommits)),
				result.Duration.Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "repository URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	return cmd
}
