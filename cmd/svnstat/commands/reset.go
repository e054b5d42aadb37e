package commands

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/svnstat/svnstat/internal/config"
)

// NewResetCommand creates the reset command.
func NewResetCommand() *cobra.Command {
	var (
		repo    string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete the persisted record set for a repository",
		Long: `Deletes every persisted commit record for a repository. The next sync
refetches the full history.`,
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

			if err := svc.Reset(cmd.Context(), repoURL); err != nil {
				return fmt.Errorf("reset %s: %w", repoURL, err)
			}

			fmt.Printf("%s %s\n", color.GreenString("record set deleted:"), repoURL)
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "repository URL")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	return cmd
}
