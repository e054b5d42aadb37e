package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/svnstat/svnstat/internal/config"
	"github.com/svnstat/svnstat/internal/report"
	"github.com/svnstat/svnstat/internal/stats"
)

// NewReportCommand creates the report command.
func NewReportCommand() *cobra.Command {
	var (
		repo    string
		out     string
		last    int
		from    string
		to      string
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render an HTML statistics dashboard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			repoURL, err := resolveRepo(repo, cfg)
			if err != nil {
				return err
			}

			override, err := resolveRange(last, from, to, time.Now())
			if err != nil {
				return err
			}

			logger := newLogger(verbose)
			svc, cleanup, err := newService(cfg, logger)
			if err != nil {
				return err
			}
			defer cleanup()

			summary, err := svc.Stats(cmd.Context(), repoURL, override, stats.ModeAll)
			if err != nil {
				return fmt.Errorf("aggregate %s: %w", repoURL, err)
			}

			f, err := os.Create(out)
			if err != nil {
				return fmt.Errorf("create report file: %w", err)
			}
			defer f.Close()

			if err := report.WriteDashboard(f, repoURL, summary); err != nil {
				return err
			}

			fmt.Printf("%s %s (%d commits in range)\n",
				color.GreenString("report written:"), out, summary.TotalCommits)
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "repository URL")
	cmd.Flags().StringVarP(&out, "out", "o", "svnstat-report.html", "output HTML file")
	cmd.Flags().IntVar(&last, "last", 0, "report on the last N days instead of the full history")
	cmd.Flags().StringVar(&from, "from", "", "report range start (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "report range end (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	return cmd
}
