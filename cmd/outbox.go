package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

type outboxMessageJSON struct {
	ID       string    `json:"id"`
	To       string    `json:"to"`
	Body     string    `json:"body"`
	QueuedAt time.Time `json:"queued_at"`
}

func newOutboxCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "outbox",
		Short: "Inspect apologies queued in the local outbox",
	}

	cmd.AddCommand(
		newOutboxListCmd(app),
		newOutboxClearCmd(app),
	)

	return cmd
}

func newOutboxListCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List queued messages, oldest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			messages, err := app.outbox.List(cmd.Context())
			if err != nil {
				return err
			}

			if asJSON {
				out := make([]outboxMessageJSON, 0, len(messages))
				for _, msg := range messages {
					out = append(out, outboxMessageJSON(msg))
				}
				return writeJSON(cmd, out)
			}

			for _, msg := range messages {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n",
					msg.QueuedAt.Format(time.RFC3339), msg.To, msg.Body); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print messages as JSON")

	return cmd
}

func newOutboxClearCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Drop every queued message",
		RunE: func(cmd *cobra.Command, _ []string) error {
			removed, err := app.outbox.Clear(cmd.Context())
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "cleared %d messages\n", removed)
			return err
		},
	}
}
