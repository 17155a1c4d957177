package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/drivefocus/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the drivefocus version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "drivefocus %s\n", version.String())
			return err
		},
	}
}
