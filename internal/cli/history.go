package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/ryderdavid/agentsmd/internal/deploy"
	"github.com/spf13/cobra"
)

func newHistoryCommand(flags *rootFlags, outW, errW io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "history <agent-id>",
		Short: "Show recorded deployments for an agent, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := flags.newApp(cmd.Context(), errW)
			if err != nil {
				return err
			}

			profile, ok := a.Registry().Agent(args[0])
			if !ok {
				return &ExitError{Code: 2, Message: fmt.Sprintf("agent not found: %s", args[0])}
			}

			store, err := deploy.OpenStore(flags.resolvedDataDir())
			if err != nil {
				return &ExitError{Code: 2, Message: err.Error()}
			}
			defer store.Close()

			records, err := store.History(profile.Id)
			if err != nil {
				return &ExitError{Code: 1, Message: err.Error()}
			}
			if len(records) == 0 {
				fmt.Fprintf(outW, "No deployments recorded for %s.\n", profile.Id)
				return nil
			}

			for _, rec := range records {
				fmt.Fprintf(outW, "%s  %s  %7d chars  %s\n",
					rec.Id, rec.CreatedAt.Format(time.RFC3339), rec.TotalChars,
					strings.Join(rec.PackIds, ", "))
			}
			return nil
		},
	}
}
