package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/ryderdavid/agentsmd/internal/app"
	"github.com/ryderdavid/agentsmd/internal/hcl"
	"github.com/spf13/cobra"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// rootFlags holds the persistent flag values shared by every subcommand.
type rootFlags struct {
	packsPath  string
	agentsFile string
	dataDir    string
	logFormat  string
	logLevel   string
	workers    int
	healthPort int
}

// resolvedDataDir returns the deployment state directory, defaulting to
// ~/.agentsmd when the flag is unset.
func (f *rootFlags) resolvedDataDir() string {
	if f.dataDir != "" {
		return f.dataDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".agentsmd"
	}
	return filepath.Join(home, ".agentsmd")
}

// newApp builds a fully wired App from the persistent flags. Logs write
// to logW, which commands pass stderr so stdout stays machine-consumable.
func (f *rootFlags) newApp(ctx context.Context, logW io.Writer) (*app.App, error) {
	cfg, err := app.NewConfig(app.Config{
		PacksPath:       f.packsPath,
		AgentsFile:      f.agentsFile,
		DataDir:         f.resolvedDataDir(),
		LogFormat:       f.logFormat,
		LogLevel:        f.logLevel,
		WorkerCount:     f.workers,
		HealthcheckPort: f.healthPort,
	})
	if err != nil {
		return nil, &ExitError{Code: 2, Message: err.Error()}
	}

	return app.New(ctx, logW, cfg, hcl.NewLoader())
}

// NewRootCommand builds the agentsmd command tree. Logs go to errW so
// command output on outW stays machine-consumable.
func NewRootCommand(outW, errW io.Writer) *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:   "agentsmd",
		Short: "Compose and deploy rule packs for AI coding assistants",
		Long: `agentsmd maintains a catalog of composable rule packs, resolves their
dependencies into a safe load order, checks the composed output against
each assistant's character budget, and deploys it into the assistant's
configuration location.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&flags.packsPath, "packs", "p", "rule-packs", "Path to the rule pack directory.")
	root.PersistentFlags().StringVar(&flags.agentsFile, "agents-file", "", "Optional agents.yaml registry overlay.")
	root.PersistentFlags().StringVar(&flags.dataDir, "data-dir", "", "Deployment state directory (default ~/.agentsmd).")
	root.PersistentFlags().StringVar(&flags.logFormat, "log-format", "text", "Log output format. Options: 'text' or 'json'.")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "warn", "Log level. Options: 'debug', 'info', 'warn', 'error'.")
	root.PersistentFlags().IntVar(&flags.workers, "workers", 4, "Concurrent workers for multi-agent deployment.")
	root.PersistentFlags().IntVar(&flags.healthPort, "healthcheck-port", 0, "Serve a /health endpoint on this port during watch mode (0 disables).")

	root.AddCommand(
		newListCommand(flags, outW, errW),
		newResolveCommand(flags, outW, errW),
		newComposeCommand(flags, outW, errW),
		newBudgetCommand(flags, outW, errW),
		newValidateCommand(flags, outW, errW),
		newDeployCommand(flags, outW, errW),
		newHistoryCommand(flags, outW, errW),
		newRollbackCommand(flags, outW, errW),
	)

	return root
}
