package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func newListCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var showAgents bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog packs and known agents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			snap := a.Snapshot()
			fmt.Fprintf(outW, "Rule packs (%d):\n", snap.Len())
			for _, id := range snap.Ids() {
				unit, _ := snap.Unit(id)
				fmt.Fprintf(outW, "  %-24s v%-8s %6d chars  %s\n",
					unit.Pack.Id, unit.Pack.Version, unit.Metrics.Chars, unit.Pack.Description)
			}

			if showAgents {
				fmt.Fprintln(outW)
				fmt.Fprintln(outW, "Agents:")
				for _, id := range a.Registry().Ids() {
					agent, _ := a.Registry().Agent(id)
					limit := "unlimited"
					if agent.MaxChars != nil {
						limit = fmt.Sprintf("%d chars", *agent.MaxChars)
					}
					fmt.Fprintf(outW, "  %-12s %-20s %s\n", agent.Id, agent.Name, limit)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&showAgents, "agents", false, "Also list known agents and their limits.")
	return cmd
}
