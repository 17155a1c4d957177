package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/drivefocus/internal/domain"
)

func newScreenCmd(app *app) *cobra.Command {
	var (
		caller string
		atMS   int64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Decide whether an incoming call rings through",
		Long: "Evaluates the call policy for one incoming call and prints the decision, then the outcome of " +
			"the apology and history effects on a second line. With --json each line is one verdict object. " +
			"The exit status does not depend on the decision.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			now := app.now()
			if cmd.Flags().Changed("at") {
				now = time.UnixMilli(atMS)
			}

			// The decision goes out before any side effect runs.
			verdict := app.screener.Decide(cmd.Context(), caller, now)
			if err := writeVerdict(cmd, verdict, asJSON, formatDecision); err != nil {
				return err
			}

			verdict = app.screener.Apply(cmd.Context(), verdict)
			if len(verdict.Effects) == 0 {
				return nil
			}
			return writeVerdict(cmd, verdict, asJSON, formatEffects)
		},
	}

	cmd.Flags().StringVar(&caller, "caller", "", "Caller identifier, usually a phone number (empty for withheld numbers)")
	cmd.Flags().Int64Var(&atMS, "at", 0, "Call time in Unix milliseconds (default now)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the decision and the applied verdict as JSON lines")

	return cmd
}

func writeVerdict(cmd *cobra.Command, verdict domain.Verdict, asJSON bool, format func(domain.Verdict) string) error {
	if asJSON {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(verdict)
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), format(verdict))
	return err
}

func formatDecision(verdict domain.Verdict) string {
	caller := verdict.CallerID
	if caller == "" {
		caller = "(withheld)"
	}

	return fmt.Sprintf("%s %s (%s)", verdict.Decision, caller, verdict.Reason)
}

func formatEffects(verdict domain.Verdict) string {
	parts := make([]string, 0, len(verdict.Effects))
	for _, effect := range verdict.Effects {
		if effect.Applied {
			parts = append(parts, fmt.Sprintf("%s: ok", effect.Kind))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: failed (%s)", effect.Kind, effect.Error))
	}

	return strings.Join(parts, "; ")
}
