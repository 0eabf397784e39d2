package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/ariel-frischer/contracts/internal/config"
	"github.com/ariel-frischer/contracts/internal/contract"
	clierrors "github.com/ariel-frischer/contracts/internal/errors"
	"github.com/ariel-frischer/contracts/internal/progress"
	"github.com/ariel-frischer/contracts/internal/report"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List discovered contracts",
	Long: `List the contracts discovered from contract_roots and the given directory.

Contracts in later roots override earlier ones with the same file name, so the
listing shows exactly the contracts validate would use.`,
	Example: `  # List contracts under the current directory
  contracts list

  # Show rules in a table
  contracts list --format table --verbose

  # Machine-readable listing
  contracts list --format yaml`,
	Args: shared.UsageArgs(cobra.NoArgs),
	RunE: runList,
}

func init() {
	listCmd.GroupID = shared.GroupValidation
	listCmd.Flags().StringP("path", "p", ".", "Directory to discover contracts in")
	listCmd.Flags().StringP("format", "f", string(report.FormatCompact), "Output format: compact, table, yaml")
	listCmd.Flags().BoolP("verbose", "v", false, "Show the rules of each contract")
	listCmd.Flags().StringSlice("roots", nil, "Contract roots, lowest priority first (replaces contract_roots)")
	rootCmd.AddCommand(listCmd)
}

// listOptions holds the resolved flags of one list invocation.
type listOptions struct {
	ConfigPath string
	Path       string
	Format     string
	Verbose    bool
	Roots      []string
	RootsSet   bool
}

func runList(cmd *cobra.Command, args []string) error {
	opts := listOptions{}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Path, _ = cmd.Flags().GetString("path")
	opts.Format, _ = cmd.Flags().GetString("format")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")
	opts.Roots, _ = cmd.Flags().GetStringSlice("roots")
	opts.RootsSet = cmd.Flags().Changed("roots")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return executeList(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

func executeList(ctx context.Context, out, errOut io.Writer, opts listOptions) error {
	format, err := report.ParseFormat(opts.Format)
	if err != nil {
		return shared.NewUsageError(err)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		clierrors.FprintError(errOut, clierrors.ConfigParseError(opts.ConfigPath, err))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}
	if opts.RootsSet {
		cfg.ContractRoots = opts.Roots
	}

	dir := opts.Path
	if dir == "" {
		dir = "."
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(errOut, "%s: %s\n", color.RedString("Directory not found"), dir)
		return shared.NewExitError(shared.ExitInvalidArguments)
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}

	discoverer := contract.NewDiscoverer(
		contract.WithSuffix(cfg.ContractSuffix),
		contract.WithLogger(slog.Default()),
	)
	roots := append(append([]string{}, cfg.ContractRoots...), dir)

	var found *contract.Discovery
	stage := progress.StageInfo{Name: "discover", Number: 1, TotalStages: 1}
	err = runStage(newProgress(cfg, errOut), stage, func() (string, error) {
		var err error
		found, err = discoverer.DiscoverAndMerge(ctx, roots)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d contracts", len(found.Contracts)), nil
	})
	if err != nil {
		return reportFailure(errOut, runFailure("discovering contracts", err))
	}

	if len(found.Contracts) == 0 {
		clierrors.FprintError(errOut, clierrors.NoContractsFound(roots, discoverer.Suffix()))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}

	// yaml output stays parseable
	if format != report.FormatYAML {
		fmt.Fprintf(out, "%s\n\n", color.GreenString("Found %d contract(s)", len(found.Contracts)))
	}
	return report.WriteContracts(out, found.Contracts, format, opts.Verbose)
}
