// Package config provides CLI commands for contracts configuration management.
// Includes: init, config show, doctor
package config

import (
	cfgpkg "github.com/ariel-frischer/contracts/internal/config"
	"github.com/spf13/cobra"
)

// Register adds all configuration commands to the root command.
// This function is called from the root CLI package during initialization.
func Register(rootCmd *cobra.Command) {
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}

// configPath returns the --config value inherited from the root command.
func configPath(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil || path == "" {
		return cfgpkg.LocalConfigPath
	}
	return path
}
