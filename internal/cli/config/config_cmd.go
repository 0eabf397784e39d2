package config

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	cfgpkg "github.com/ariel-frischer/contracts/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage contracts configuration",
	Long: `Manage contracts configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Environment variables (CONTRACTS_*)
  2. Project config (.contracts/config.json)
  3. User config (~/.contracts/config.json)
  4. Built-in defaults`,
	Example: `  # Show current configuration
  contracts config show

  # Show configuration as JSON
  contracts config show --json

  # Initialize configuration
  contracts init`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current effective configuration",
	Long: `Display the current effective configuration values.

Shows the merged result of defaults, user config, project config, and
environment variables. Use --json to print JSON instead of YAML.`,
	Example: `  # Show configuration in YAML format (default)
  contracts config show

  # Show configuration in JSON format
  contracts config show --json`,
	Args: shared.UsageArgs(cobra.NoArgs),
	RunE: runConfigShow,
}

func init() {
	configCmd.GroupID = shared.GroupConfiguration
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().Bool("json", false, "Output in JSON format")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	useJSON, _ := cmd.Flags().GetBool("json")
	return showConfig(cmd.OutOrStdout(), configPath(cmd), useJSON)
}

func showConfig(out io.Writer, localPath string, useJSON bool) error {
	cfg, err := cfgpkg.Load(localPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	roots := cfg.ContractRoots
	if roots == nil {
		roots = []string{}
	}
	configMap := map[string]interface{}{
		"contract_roots":   roots,
		"contract_suffix":  cfg.ContractSuffix,
		"strict":           cfg.Strict,
		"concurrency":      cfg.Concurrency,
		"regex_timeout_ms": cfg.RegexTimeoutMS,
		"show_progress":    cfg.ShowProgress,
	}

	userPath, _ := cfgpkg.GlobalConfigPath()

	fmt.Fprintf(out, "# Configuration Sources\n")
	fmt.Fprintf(out, "# User config:    %s\n", userPath)
	fmt.Fprintf(out, "# Project config: %s\n", localPath)
	fmt.Fprintf(out, "\n")

	if useJSON {
		data, err := json.MarshalIndent(configMap, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to serialize config: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	data, err := yaml.Marshal(configMap)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}
	fmt.Fprint(out, string(data))
	return nil
}
