// Package config tests CLI configuration commands for contracts.
// Related: internal/cli/config/register.go
// Tags: config, cli, commands, registration

package config

import (
	"testing"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	// Cannot run in parallel - Register modifies global command state

	rootCmd := &cobra.Command{
		Use:   "test",
		Short: "Test root command",
	}

	require.NotPanics(t, func() {
		Register(rootCmd)
	})

	commandNames := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		commandNames[cmd.Name()] = true
		assert.Equal(t, shared.GroupConfiguration, cmd.GroupID)
	}

	assert.True(t, commandNames["init"], "Should have 'init' command")
	assert.True(t, commandNames["config"], "Should have 'config' command")
	assert.True(t, commandNames["doctor"], "Should have 'doctor' command")
	assert.Len(t, rootCmd.Commands(), 3)
}

func TestCommandFlags(t *testing.T) {
	tests := map[string]struct {
		cmd      *cobra.Command
		flagName string
	}{
		"init global":      {cmd: initCmd, flagName: "global"},
		"init force":       {cmd: initCmd, flagName: "force"},
		"config show json": {cmd: configShowCmd, flagName: "json"},
		"doctor path":      {cmd: doctorCmd, flagName: "path"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, tt.cmd.Flags().Lookup(tt.flagName), "Flag %s should exist", tt.flagName)
		})
	}
}

func TestConfigCmd_HasShowSubcommand(t *testing.T) {
	names := make(map[string]bool)
	for _, cmd := range configCmd.Commands() {
		names[cmd.Name()] = true
	}
	assert.True(t, names["show"])
}

func TestConfigPath(t *testing.T) {
	tests := map[string]struct {
		setup func(cmd *cobra.Command)
		want  string
	}{
		"no flag falls back to project config": {
			setup: func(cmd *cobra.Command) {},
			want:  ".contracts/config.json",
		},
		"flag value": {
			setup: func(cmd *cobra.Command) {
				cmd.Flags().String("config", "", "")
				require.NoError(t, cmd.Flags().Set("config", "custom.json"))
			},
			want: "custom.json",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "x"}
			tt.setup(cmd)
			assert.Equal(t, tt.want, configPath(cmd))
		})
	}
}
