package cli

import (
	"fmt"
	"io"

	"github.com/ryderdavid/agentsmd/internal/deploy"
	"github.com/spf13/cobra"
)

func newDeployCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var agentIds []string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "deploy <pack-id>...",
		Short: "Compose the requested packs and write them to agent config paths",
		Args:  cobra.MinimumNArgs(1),
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

			targets := agentIds
			if len(targets) == 0 {
				targets = a.Registry().Ids()
			}

			results := deployer.Deploy(a.Context(cmd.Context()), a.Snapshot(), args, targets,
				deploy.Options{DryRun: dryRun, Workers: flags.workers})

			failed := 0
			for _, res := range results {
				if res.Err != nil {
					failed++
					fmt.Fprintf(outW, "%-12s FAILED  %s\n", res.AgentId, res.Err)
					continue
				}
				status := "deployed"
				if dryRun {
					status = "dry-run "
				}
				fmt.Fprintf(outW, "%-12s %s %s\n", res.AgentId, status, res.OutputPath)
			}

			if failed > 0 {
				return &ExitError{Code: 1, Message: fmt.Sprintf("%d of %d deployments failed", failed, len(results))}
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&agentIds, "agent", "a", nil, "Target agents (repeatable, default all known agents).")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Render and validate without writing or recording anything.")
	return cmd
}
