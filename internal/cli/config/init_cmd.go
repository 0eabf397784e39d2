package config

import (
	"fmt"
	"io"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/contracts/internal/config"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// Color helper functions for init command output
var (
	cGreen  = color.New(color.FgGreen).SprintFunc()
	cYellow = color.New(color.FgYellow).SprintFunc()
	cDim    = color.New(color.Faint).SprintFunc()
	cBold   = color.New(color.Bold).SprintFunc()
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a contracts configuration file",
	Long: `Create a configuration file populated with the built-in defaults.

By default the project config (.contracts/config.json) is created.
Use --global to create the user-level config (~/.contracts/config.json).
If the file already exists, it is left unchanged (use --force to overwrite).

Configuration precedence (highest to lowest):
  1. Environment variables (CONTRACTS_*)
  2. Project config (.contracts/config.json)
  3. User config (~/.contracts/config.json)
  4. Built-in defaults`,
	Example: `  # Create project config
  contracts init

  # Create user-level config
  contracts init --global

  # Overwrite existing config with defaults
  contracts init --force`,
	Args: shared.UsageArgs(cobra.NoArgs),
	RunE: runInit,
}

func init() {
	initCmd.GroupID = shared.GroupConfiguration
	initCmd.Flags().BoolP("global", "g", false, "Create user-level config (~/.contracts/config.json)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")
}

func runInit(cmd *cobra.Command, args []string) error {
	global, _ := cmd.Flags().GetBool("global")
	force, _ := cmd.Flags().GetBool("force")

	path := configPath(cmd)
	if global {
		var err error
		if path, err = cfgpkg.GlobalConfigPath(); err != nil {
			return fmt.Errorf("getting user config path: %w", err)
		}
	}
	return initializeConfig(cmd.OutOrStdout(), path, force)
}

func initializeConfig(out io.Writer, path string, force bool) error {
	wrote, err := cfgpkg.WriteDefaultConfig(path, force)
	if err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	if !wrote {
		fmt.Fprintf(out, "%s %s: already exists at %s %s\n",
			cYellow("!"), cBold("Config"), cDim(path), cDim("(use --force to overwrite)"))
		return nil
	}
	fmt.Fprintf(out, "%s %s: created at %s\n", cGreen("✓"), cBold("Config"), path)
	return nil
}
