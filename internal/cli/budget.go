package cli

import (
	"fmt"
	"io"

	"github.com/ryderdavid/agentsmd/internal/engine"
	"github.com/spf13/cobra"
)

func newBudgetCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var agentId string

	cmd := &cobra.Command{
		Use:   "budget <pack-id>...",
		Short: "Show the character budget of a composition",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			var maxChars *int
			if agentId != "" {
				profile, ok := a.Registry().Agent(agentId)
				if !ok {
					return &ExitError{Code: 2, Message: fmt.Sprintf("agent not found: %s", agentId)}
				}
				agentId = profile.Id
				maxChars = profile.MaxChars
			}

			snap := a.Snapshot()
			comp, err := engine.Compose(snap, args)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}

			budget := engine.ComputeBudget(snap, comp.Order, maxChars)

			for _, item := range budget.Breakdown {
				fmt.Fprintf(outW, "  %-24s %8d chars  %6d words  %3d%%\n",
					item.PackId, item.Chars, item.Words, item.PercentageOfTotal)
			}
			fmt.Fprintf(outW, "Total: %d chars, %d words\n", budget.TotalChars, budget.TotalWords)

			if budget.MaxChars != nil {
				fmt.Fprintf(outW, "Limit (%s): %d chars, %d%% used\n", agentId, *budget.MaxChars, *budget.Percentage)
				if !budget.WithinLimit {
					return &ExitError{Code: 1, Message: fmt.Sprintf(
						"Composition exceeds %s character limit: %d / %d (%d%%)",
						agentId, budget.TotalChars, *budget.MaxChars, *budget.Percentage)}
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "Evaluate against this agent's character limit.")
	return cmd
}
