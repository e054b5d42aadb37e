package commands

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/svnstat/svnstat/internal/config"
)

// NewAuthorsCommand creates the authors command.
func NewAuthorsCommand() *cobra.Command {
	var (
		repo    string
		limit   int
		verbose bool
	)

	cmd := &cobra.Command{
		Use:   "authors",
		Short: "Show per-author commit totals",
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

			authors, err := svc.Authors(cmd.Context(), repoURL, limit)
			if err != nil {
				return fmt.Errorf("load authors for %s: %w", repoURL, err)
			}
			if len(authors) == 0 {
				fmt.Println("no commits recorded; run sync first")
				return nil
			}

			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"#", "Author", "Commits", "First", "Last"})
			for i, a := range authors {
				t.AppendRow(table.Row{
					i + 1,
					a.Name,
					humanize.Comma(int64(a.CommitCount)),
					a.FirstCommitAt.Format("2006-01-02"),
					a.LastCommitAt.Format("2006-01-02"),
				})
			}
			t.Render()
			return nil
		},
	}

	cmd.Flags().StringVarP(&repo, "repo", "r", "", "repository URL")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of authors to show")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	return cmd
}
