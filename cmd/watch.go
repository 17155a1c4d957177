package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/drivefocus/internal/domain"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		count   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Stream monitoring and driving state changes",
		Long:  "Prints the current monitoring and driving flags, then one line per change, until interrupted.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			changes, err := app.feed.Watch(ctx, domain.KeyMonitoringEnabled, domain.KeyIsDriving)
			if err != nil {
				return fmt.Errorf("watch state: %w", err)
			}

			seen := 0
			for change := range changes {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s=%t\n",
					change.At.Format(time.RFC3339), change.Key, change.Value); err != nil {
					return err
				}
				seen++
				if count > 0 && seen >= count {
					return nil
				}
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Exit after this many lines (0 streams until interrupted)")
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "Exit after this long (0 waits indefinitely)")

	return cmd
}
