package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ryderdavid/agentsmd/internal/engine"
	"github.com/spf13/cobra"
)

func newResolveCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <pack-id>",
		Short: "Resolve a pack's dependency closure into load order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			res := engine.Resolve(a.Snapshot(), args[0])
			if !res.Success {
				if len(res.Cycle) > 0 {
					fmt.Fprintf(outW, "Cycle: %s\n", strings.Join(res.Cycle, " -> "))
				}
				return &ExitError{Code: 1, Message: res.Err}
			}

			for i, id := range res.Order {
				fmt.Fprintf(outW, "%d. %s\n", i+1, id)
			}
			return nil
		},
	}
}
