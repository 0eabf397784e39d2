package config

import (
	"context"
	"fmt"
	"io"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/ariel-frischer/contracts/internal/health"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Check configuration and contract definitions (doc)",
	Long: `Run health checks on the contracts setup.

This command checks that:
  - the configuration loads and passes validation
  - every configured contract root exists
  - every contract definition loads
  - every glob and regular expression in a contract compiles

Each check will display a checkmark if passed or an X with an error message if failed.`,
	Example: `  # Check the current directory
  contracts doctor

  # Run before validating in CI
  contracts doctor && contracts validate --strict`,
	Args: shared.UsageArgs(cobra.NoArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("path")
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return runDoctor(ctx, cmd.OutOrStdout(), configPath(cmd), path)
	},
}

func init() {
	doctorCmd.GroupID = shared.GroupConfiguration
	doctorCmd.Flags().StringP("path", "p", ".", "Directory to discover contracts in")
}

func runDoctor(ctx context.Context, out io.Writer, cfgPath, searchRoot string) error {
	report := health.RunHealthChecks(ctx, health.Options{
		ConfigPath: cfgPath,
		SearchRoot: searchRoot,
	})

	fmt.Fprint(out, health.FormatReport(report))

	// Exit with non-zero status if any checks failed
	if !report.Passed {
		return shared.NewExitError(shared.ExitValidationFailed)
	}
	return nil
}
