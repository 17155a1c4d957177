package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	statusadapter "github.com/bnema/drivefocus/internal/adapters/render/status"
	"github.com/bnema/drivefocus/internal/application"
)

type historyEntryJSON struct {
	CallerID          string    `json:"caller_id"`
	RejectedAt        time.Time `json:"rejected_at"`
	RejectedAtMS      int64     `json:"rejected_at_ms"`
	WindowRemainingMS int64     `json:"window_remaining_ms"`
}

type statusJSON struct {
	At                time.Time          `json:"at"`
	MonitoringEnabled bool               `json:"monitoring_enabled"`
	Driving           bool               `json:"is_driving"`
	DefaultHandler    bool               `json:"default_handler"`
	History           []historyEntryJSON `json:"history"`
}

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show monitoring, driving and rejected callers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			status, err := app.status.Status(cmd.Context())
			if err != nil {
				return err
			}

			return writeStatusOutput(cmd, app, status, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print status as JSON")

	return cmd
}

func writeStatusOutput(cmd *cobra.Command, app *app, status application.Status, asJSON bool) error {
	if asJSON {
		return writeJSON(cmd, statusJSON{
			At:                status.At,
			MonitoringEnabled: status.MonitoringEnabled,
			Driving:           status.Driving,
			DefaultHandler:    status.DefaultHandler,
			History:           historyToJSON(status.History),
		})
	}

	rendered, err := app.statusRenderer(status, statusadapter.RenderOptions{
		EmergencyWindow: app.cfg.Policy.EmergencyWindow,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}

func historyToJSON(entries []application.HistoryEntry) []historyEntryJSON {
	out := make([]historyEntryJSON, 0, len(entries))
	for _, entry := range entries {
		out = append(out, historyEntryJSON{
			CallerID:          entry.CallerID,
			RejectedAt:        entry.RejectedAt,
			RejectedAtMS:      entry.RejectedAt.UnixMilli(),
			WindowRemainingMS: entry.WindowRemaining.Milliseconds(),
		})
	}
	return out
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
