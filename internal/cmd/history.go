package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/UCL-COMP0233-24-25/assignment-submission-checker/internal/history"
)

// NewHistoryCommand creates and returns the history subcommand.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent validation runs",
		Long: `List the most recent validation runs recorded in the history database,
newest first, with the finding counts of each run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfigFromCmd(cmd)
			if err != nil {
				return err
			}

			store, err := history.NewStore(cfg.History.DBPath)
			if err != nil {
				return fmt.Errorf("failed to open history database: %w", err)
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No recorded runs.")
				return nil
			}
			for _, run := range runs {
				fmt.Fprintf(out, "%s  %s  %s  fatal=%d warnings=%d information=%d\n",
					run.CreatedAt.Format("2006-01-02 15:04:05"), shortID(run.ID), run.Submission,
					run.Fatal, run.Warnings, run.Information)
			}
			return nil
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "maximum number of runs to list")

	return cmd
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
