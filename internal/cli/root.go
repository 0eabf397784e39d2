// Package cli provides Cobra-based CLI commands for the contracts tool.
// It defines the user-facing commands: validation (validate, list),
// configuration management (init, config) and utilities (version).
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ariel-frischer/contracts/internal/cli/config"
	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/ariel-frischer/contracts/internal/cli/util"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output (re-exported from shared)
const (
	GroupValidation    = shared.GroupValidation
	GroupConfiguration = shared.GroupConfiguration
)

var rootCmd = &cobra.Command{
	Use:   "contracts",
	Short: "Validate documents against declarative contracts",
	Long: `contracts validates Markdown documents against declarative contracts.

A contract (*.metadata YAML) selects files with glob patterns and declares
naming rules and required sections. Contracts are discovered from the
configured contract_roots and the target directory; later roots override
earlier ones by file name.`,
	Example: `  # Validate every governed file under the current directory
  contracts validate

  # Validate one file, failing on warnings
  contracts validate --path docs/agents/reviewer.md --strict

  # Re-validate on every change
  contracts validate --watch

  # List discovered contracts
  contracts list --format table`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setupGlobals,
}

// Execute runs the root command. Errors not already shown to the user are
// printed to stderr; use ExitCode to map the result to a process status.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !shared.Reported(err) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
	}
	return err
}

func init() {
	// Define command groups in display order
	rootCmd.AddGroup(&cobra.Group{ID: GroupValidation, Title: "Validation:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"})

	// Assign built-in help and completion to configuration group
	rootCmd.SetHelpCommandGroupID(GroupConfiguration)
	rootCmd.SetCompletionCommandGroupID(GroupConfiguration)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return shared.NewUsageError(err)
	})

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".contracts/config.json", "Path to project config file")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	// Register commands from subpackages
	config.Register(rootCmd)
	util.Register(rootCmd)
}

// setupGlobals applies --debug and --no-color before any command runs.
func setupGlobals(cmd *cobra.Command, args []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	noColor, _ := cmd.Flags().GetBool("no-color")

	if noColor {
		color.NoColor = true
	}
	slog.SetDefault(newLogger(debug))
	return nil
}

// newLogger returns a text logger on stderr: Debug level with --debug,
// Warn otherwise so skipped contracts still surface.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
