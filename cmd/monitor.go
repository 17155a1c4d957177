package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/drivefocus/internal/adapters/location/ndjson"
)

func newMonitorCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monitor",
		Short: "Run or stop driving monitoring",
	}

	cmd.AddCommand(
		newMonitorRunCmd(app),
		newMonitorStopCmd(app),
	)

	return cmd
}

func newMonitorRunCmd(app *app) *cobra.Command {
	var (
		samplesPath string
		pace        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Enable monitoring and classify speed samples until input ends",
		Long: "Reads newline-delimited speed samples (a number in m/s, or {\"speed_mps\": n, \"at\": \"RFC3339\"}) " +
			"from --samples or stdin. Monitoring is switched off again when input ends, on interrupt, " +
			"or when `drivefocus monitor stop` runs elsewhere.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var input io.Reader = cmd.InOrStdin()
			if samplesPath != "" && samplesPath != "-" {
				file, err := os.Open(samplesPath)
				if err != nil {
					return fmt.Errorf("open samples: %w", err)
				}
				defer file.Close()
				input = file
			}

			var opts []ndjson.Option
			if pace {
				opts = append(opts, ndjson.WithPacing(app.cfg.Location.RequestedInterval, app.cfg.Location.MinInterval))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			source := ndjson.NewSource(input, opts...)
			defer source.Close()

			if err := app.monitor.Run(ctx, source); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "monitoring stopped")
			return err
		},
	}

	cmd.Flags().StringVar(&samplesPath, "samples", "", "NDJSON speed sample file (default stdin)")
	cmd.Flags().BoolVar(&pace, "pace", false, "Replay samples at the configured location request interval")

	return cmd
}

func newMonitorStopCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Switch monitoring off and clear the driving state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := app.monitor.Stop(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "monitoring disabled")
			return err
		},
	}
}
