package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect and prune the rejected-call history",
	}

	cmd.AddCommand(
		newHistoryListCmd(app),
		newHistoryPruneCmd(app),
		newHistoryClearCmd(app),
	)

	return cmd
}

func newHistoryListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rejected callers, most recent first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := app.history.List(cmd.Context(), app.now())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd, historyToJSON(entries))
			}

			for _, entry := range entries {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\t%s\n",
					entry.CallerID, entry.RejectedAt.UnixMilli(), entry.WindowRemaining); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print history as JSON")

	return cmd
}

func newHistoryPruneCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove rejections older than the configured retention",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.history.Prune(cmd.Context(), app.now())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "pruned %d entries\n", removed)
			return err
		},
	}
}

func newHistoryClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every recorded rejection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.history.Clear(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d entries\n", removed)
			return err
		},
	}
}
