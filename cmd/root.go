package cmd

import (
	"github.com/spf13/cobra"

	"github.com/bnema/drivefocus/internal/logger"
)

func Execute() error {
	rootCmd, cleanup := newRootCmd()
	defer cleanup()

	return rootCmd.Execute()
}

func newRootCmd() (*cobra.Command, func()) {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:           "drivefocus",
		Short:         "Screen incoming calls while driving",
		Long:          "drivefocus classifies driving from speed samples and decides whether incoming calls ring through. Screened callers get an apology and may call back once within the emergency window.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logger.SetOutput(cmd.ErrOrStderr())
			if verbose {
				logger.SetVerbose(true)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd, func() {}
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newMonitorCmd(app),
		newScreenCmd(app),
		newStatusCmd(app),
		newHistoryCmd(app),
		newWatchCmd(app),
		newOutboxCmd(app),
	)

	return rootCmd, func() {
		if err := app.Close(); err != nil {
			logger.Warn("close state store", "error", err)
		}
	}
}
