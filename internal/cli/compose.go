package cli

import (
	"fmt"
	"io"

	"github.com/ryderdavid/agentsmd/internal/engine"
	"github.com/spf13/cobra"
)

func newComposeCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	var showOrder bool

	cmd := &cobra.Command{
		Use:   "compose <pack-id>...",
		Short: "Compose the requested packs into a single document",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			comp, err := engine.Compose(a.Snapshot(), args)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}

			if showOrder {
				for i, id := range comp.Order {
					fmt.Fprintf(outW, "%d. %s\n", i+1, id)
				}
				return nil
			}

			fmt.Fprint(outW, comp.Content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showOrder, "order", false, "Print the merged load order instead of the content.")
	return cmd
}
