package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/ryderdavid/agentsmd/internal/config"
	"github.com/ryderdavid/agentsmd/internal/engine"
	"github.com/spf13/cobra"
)

func newValidateCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var agentId string
	var watch bool

	cmd := &cobra.Command{
		Use:   "validate <pack-id>...",
		Short: "Validate a composition, optionally against an agent's limit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			var profile *config.Agent
			if agentId != "" {
				p, ok := a.Registry().Agent(agentId)
				if !ok {
					return &ExitError{Code: 2, Message: fmt.Sprintf("agent not found: %s", agentId)}
				}
				profile = p
			}

			runOnce := func(ctx context.Context) error {
				report := engine.Validate(a.Snapshot(), args, profile)
				for _, msg := range report.Errors {
					fmt.Fprintf(outW, "error: %s\n", msg)
				}
				for _, msg := range report.Warnings {
					fmt.Fprintf(outW, "warning: %s\n", msg)
				}
				if !report.Valid {
					return &ExitError{Code: 1, Message: fmt.Sprintf("validation failed with %d error(s)", len(report.Errors))}
				}
				fmt.Fprintln(outW, "Composition is valid.")
				return nil
			}

			if watch {
				return a.Watch(cmd.Context(), runOnce)
			}
			return runOnce(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&agentId, "agent", "a", "", "Evaluate the budget against this agent's character limit.")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Re-validate whenever the pack directory changes.")
	return cmd
}
