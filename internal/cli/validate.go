package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/ariel-frischer/contracts/internal/config"
	"github.com/ariel-frischer/contracts/internal/contract"
	clierrors "github.com/ariel-frischer/contracts/internal/errors"
	"github.com/ariel-frischer/contracts/internal/matcher"
	"github.com/ariel-frischer/contracts/internal/progress"
	"github.com/ariel-frischer/contracts/internal/report"
	"github.com/ariel-frischer/contracts/internal/validation"
	"github.com/ariel-frischer/contracts/internal/watch"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:     "validate",
	Aliases: []string{"check"},
	Short:   "Validate documents against their contracts",
	Long: `Validate documents against the contracts that govern them.

Contracts are discovered from contract_roots (lowest priority first) and then
from the target directory; when --path is a file, from the working directory.
Every file selected by a contract's target patterns is checked for naming,
required sections and required fields.

Exit codes:
  0  no errors (warnings allowed unless --strict)
  1  errors found, or warnings with --strict
  2  usage error (bad path, no contracts, unknown contract)`,
	Example: `  # Validate the current directory
  contracts validate

  # Validate one directory against one contract
  contracts validate --path docs/agents --contract agent

  # Treat warnings as failures
  contracts validate --strict

  # Keep validating as files change
  contracts validate --watch`,
	Args: shared.UsageArgs(cobra.NoArgs),
	RunE: runValidate,
}

func init() {
	validateCmd.GroupID = shared.GroupValidation
	validateCmd.Flags().StringP("path", "p", ".", "File or directory to validate (must be inside the working directory)")
	validateCmd.Flags().String("contract", "", "Only use the named contract (with or without suffix)")
	validateCmd.Flags().Bool("strict", false, "Fail when warnings are reported")
	validateCmd.Flags().BoolP("watch", "w", false, "Re-validate whenever files or contracts change")
	validateCmd.Flags().StringSlice("roots", nil, "Contract roots, lowest priority first (replaces contract_roots)")
	validateCmd.Flags().BoolP("verbose", "v", false, "Also list files without violations")
	rootCmd.AddCommand(validateCmd)
}

// validateOptions holds the resolved flags of one validate invocation.
type validateOptions struct {
	ConfigPath string
	Path       string
	Contract   string
	Strict     bool
	Watch      bool
	Roots      []string
	RootsSet   bool
	Verbose    bool
}

func runValidate(cmd *cobra.Command, args []string) error {
	opts := validateOptions{}
	opts.ConfigPath, _ = cmd.Flags().GetString("config")
	opts.Path, _ = cmd.Flags().GetString("path")
	opts.Contract, _ = cmd.Flags().GetString("contract")
	opts.Strict, _ = cmd.Flags().GetBool("strict")
	opts.Watch, _ = cmd.Flags().GetBool("watch")
	opts.Roots, _ = cmd.Flags().GetStringSlice("roots")
	opts.RootsSet = cmd.Flags().Changed("roots")
	opts.Verbose, _ = cmd.Flags().GetBool("verbose")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return executeValidate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
}

// executeValidate runs one validation, or a watch loop with opts.Watch.
func executeValidate(ctx context.Context, out, errOut io.Writer, opts validateOptions) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		clierrors.FprintError(errOut, clierrors.ConfigParseError(opts.ConfigPath, err))
		return shared.NewExitError(shared.ExitInvalidArguments)
	}
	if opts.Strict {
		cfg.Strict = true
	}
	if opts.RootsSet {
		cfg.ContractRoots = opts.Roots
	}

	tgt, err := resolveTarget(opts.Path)
	if err != nil {
		return reportFailure(errOut, err)
	}

	run := &validateRun{
		cfg:      cfg,
		opts:     opts,
		target:   tgt,
		out:      out,
		errOut:   errOut,
		logger:   slog.Default(),
		progress: newProgress(cfg, errOut),
	}

	if opts.Watch {
		return run.watch(ctx)
	}
	return run.once(ctx)
}

// reportFailure prints a CLIError and converts it to an exit error:
// runtime failures exit 1, everything else is a usage error. Other errors
// are returned for Execute to print.
func reportFailure(errOut io.Writer, err error) error {
	cliErr := clierrors.AsCLIError(err)
	if cliErr == nil {
		return err
	}
	clierrors.FprintError(errOut, cliErr)
	if cliErr.Category == clierrors.Runtime {
		return shared.NewExitError(shared.ExitValidationFailed)
	}
	return shared.NewExitError(shared.ExitInvalidArguments)
}

// runFailure marks err as a failed step. Cancellation passes through
// unchanged so callers can tell an interrupt from a failure.
func runFailure(step string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return clierrors.RunFailed(step, err)
}

// validateRun carries everything one validation pass needs.
type validateRun struct {
	cfg      *config.Configuration
	opts     validateOptions
	target   target
	out      io.Writer
	errOut   io.Writer
	logger   *slog.Logger
	progress *progress.ProgressDisplay
}

// roots returns the discovery roots, lowest priority first.
func (r *validateRun) roots() []string {
	roots := make([]string, 0, len(r.cfg.ContractRoots)+1)
	roots = append(roots, r.cfg.ContractRoots...)
	return append(roots, r.target.SearchRoot())
}

// once discovers contracts, validates the selected files and prints the
// report. A failing run returns an already reported exit error.
func (r *validateRun) once(ctx context.Context) error {
	contracts, err := r.contracts(ctx)
	if err != nil {
		return reportFailure(r.errOut, err)
	}

	files, err := r.files(ctx, contracts)
	if err != nil {
		return reportFailure(r.errOut, err)
	}
	if len(files) == 0 {
		fmt.Fprintf(r.out, "No files matched the selected contracts in %s.\n", r.target.SearchRoot())
		return nil
	}

	var results []*validation.Result
	err = runStage(r.progress, progress.StageInfo{Name: "validate", Number: 2, TotalStages: 2}, func() (string, error) {
		service := validation.NewService(
			validation.WithConcurrency(r.cfg.Concurrency),
			validation.WithMatchTimeout(r.cfg.RegexTimeout()),
			validation.WithServiceLogger(r.logger),
		)
		var err error
		results, err = service.ValidateFiles(ctx, files, contracts, r.target.SearchRoot())
		return fmt.Sprintf("%d files", len(files)), err
	})
	if err != nil {
		return reportFailure(r.errOut, runFailure("validating files", err))
	}

	report.WriteResults(r.out, results, report.ResultOptions{
		Root:    r.target.Workspace,
		Verbose: r.opts.Verbose,
	})
	summary := validation.Summarize(results)
	report.WriteSummary(r.out, summary, r.cfg.Strict)
	if r.cfg.Strict {
		fmt.Fprintln(r.out, "Strict mode: warnings will fail the build.")
	}

	if summary.Failed(r.cfg.Strict) {
		return shared.NewExitError(shared.ExitValidationFailed)
	}
	return nil
}

// contracts discovers and filters the contracts for this run.
func (r *validateRun) contracts(ctx context.Context) ([]*contract.Contract, error) {
	discoverer := contract.NewDiscoverer(
		contract.WithSuffix(r.cfg.ContractSuffix),
		contract.WithLogger(r.logger),
	)

	roots := r.roots()
	var found *contract.Discovery
	err := runStage(r.progress, progress.StageInfo{Name: "discover", Number: 1, TotalStages: 2}, func() (string, error) {
		var err error
		found, err = discoverer.DiscoverAndMerge(ctx, roots)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d contracts", len(found.Contracts)), nil
	})
	if err != nil {
		return nil, runFailure("discovering contracts", err)
	}
	if len(found.Contracts) == 0 {
		return nil, clierrors.NoContractsFound(roots, discoverer.Suffix())
	}

	if r.opts.Contract == "" {
		return found.Contracts, nil
	}
	selected := contract.Filter(found.Contracts, r.opts.Contract)
	if len(selected) == 0 {
		names := make([]string, 0, len(found.Contracts))
		for _, c := range found.Contracts {
			names = append(names, c.Name())
		}
		return nil, clierrors.UnknownContract(r.opts.Contract, names)
	}
	return selected, nil
}

// files returns the documents to validate: the target itself, or every
// file under the target directory that a contract selects.
func (r *validateRun) files(ctx context.Context, contracts []*contract.Contract) ([]string, error) {
	if r.target.IsFile {
		return []string{r.target.Path}, nil
	}
	files, err := matcher.MatchFiles(ctx, r.target.Path, contracts)
	if err != nil {
		return nil, runFailure("matching files", err)
	}
	return files, nil
}

// watch validates once, then again after every batch of changes under the
// contract roots and search root, until interrupted.
func (r *validateRun) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := watch.New(watch.Config{Roots: r.roots(), Logger: r.logger})
	if err != nil {
		return reportFailure(r.errOut, runFailure("starting file watcher", err))
	}
	defer w.Close()

	r.reportPass(r.once(ctx))
	fmt.Fprintln(r.errOut, "Watching for changes (Ctrl+C to stop)...")

	return w.Run(ctx, func(ctx context.Context, batch watch.Batch) error {
		r.logger.Debug("change batch",
			slog.Int("changed", len(batch.Changed)),
			slog.Int("removed", len(batch.Removed)))
		fmt.Fprintf(r.out, "\n%d path(s) changed, re-validating...\n", len(batch.Changed)+len(batch.Removed))
		r.reportPass(r.once(ctx))
		return nil
	})
}

// reportPass prints a watch pass error that once has not already shown.
// Failed passes never end the watch loop.
func (r *validateRun) reportPass(err error) {
	if err == nil || shared.Reported(err) || errors.Is(err, context.Canceled) {
		return
	}
	fmt.Fprintf(r.errOut, "Error: %v\n", err)
}

// newProgress returns a display on errOut, or nil when show_progress is off.
func newProgress(cfg *config.Configuration, errOut io.Writer) *progress.ProgressDisplay {
	if !cfg.ShowProgress {
		return nil
	}
	return progress.NewProgressDisplayTo(progress.DetectTerminalCapabilities(), errOut)
}

// runStage wraps fn in a progress stage. fn returns the completion detail.
func runStage(display *progress.ProgressDisplay, stage progress.StageInfo, fn func() (string, error)) error {
	if display == nil {
		_, err := fn()
		return err
	}

	if err := display.StartStage(stage); err != nil {
		return err
	}
	detail, err := fn()
	if err != nil {
		_ = display.FailStage(stage, err)
		return err
	}
	stage.Detail = detail
	return display.CompleteStage(stage)
}
