package cli

import (
	"fmt"
	"io"

	"github.com/ryderdavid/agentsmd/internal/deploy"
	"github.com/spf13/cobra"
)

func newRollbackCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var deploymentId string

	cmd := &cobra.Command{
		Use:   "rollback <agent-id>",
		Short: "Restore the content an agent's config held before a deployment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			store, err := deploy.OpenStore(flags.resolvedDataDir())
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			defer store.Close()

			deployer, err := deploy.NewDeployer(a.Registry(), store)
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}

			rec, err := deployer.Rollback(a.Context(cmd.Context()), args[0], deploymentId)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}

			fmt.Fprintf(outW, "Rolled back %s to the state before deployment %s (%s).\n",
				rec.AgentId, rec.Id, rec.OutputPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&deploymentId, "deployment", "", "Roll back this specific deployment id instead of the latest.")
	return cmd
}
