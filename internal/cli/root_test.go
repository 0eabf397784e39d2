package cli

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Commands(t *testing.T) {
	tests := map[string]struct {
		args      []string
		wantName  string
		wantGroup string
	}{
		"validate":       {args: []string{"validate"}, wantName: "validate", wantGroup: shared.GroupValidation},
		"validate alias": {args: []string{"check"}, wantName: "validate", wantGroup: shared.GroupValidation},
		"list":           {args: []string{"list"}, wantName: "list", wantGroup: shared.GroupValidation},
		"list alias":     {args: []string{"ls"}, wantName: "list", wantGroup: shared.GroupValidation},
		"init":           {args: []string{"init"}, wantName: "init", wantGroup: shared.GroupConfiguration},
		"config":         {args: []string{"config"}, wantName: "config", wantGroup: shared.GroupConfiguration},
		"version":        {args: []string{"version"}, wantName: "version", wantGroup: shared.GroupConfiguration},
		"doctor":         {args: []string{"doctor"}, wantName: "doctor", wantGroup: shared.GroupConfiguration},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find(tc.args)
			require.NoError(t, err)
			assert.Equal(t, tc.wantName, cmd.Name())
			assert.Equal(t, tc.wantGroup, cmd.GroupID)
		})
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"config", "debug", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), name)
	}
	assert.Equal(t, ".contracts/config.json", rootCmd.PersistentFlags().Lookup("config").DefValue)
}

func TestValidateCmd_Flags(t *testing.T) {
	tests := map[string]struct {
		flag      string
		shorthand string
		def       string
	}{
		"path":     {flag: "path", shorthand: "p", def: "."},
		"contract": {flag: "contract", def: ""},
		"strict":   {flag: "strict", def: "false"},
		"watch":    {flag: "watch", shorthand: "w", def: "false"},
		"roots":    {flag: "roots", def: "[]"},
		"verbose":  {flag: "verbose", shorthand: "v", def: "false"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			f := validateCmd.Flags().Lookup(tc.flag)
			require.NotNil(t, f)
			assert.Equal(t, tc.shorthand, f.Shorthand)
			assert.Equal(t, tc.def, f.DefValue)
		})
	}
}

func TestExecute_UsageErrors(t *testing.T) {
	tests := map[string][]string{
		"unknown flag":         {"validate", "--nope"},
		"unexpected argument":  {"validate", "extra"},
		"list unexpected args": {"list", "extra"},
	}

	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			var out, errOut bytes.Buffer
			rootCmd.SetArgs(args)
			rootCmd.SetOut(&out)
			rootCmd.SetErr(&errOut)
			t.Cleanup(func() {
				rootCmd.SetArgs(nil)
				rootCmd.SetOut(nil)
				rootCmd.SetErr(nil)
			})

			err := Execute()
			require.Error(t, err)
			assert.Equal(t, ExitInvalidArguments, ExitCode(err))
			assert.Contains(t, errOut.String(), "Error: ")
		})
	}
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		debug     bool
		wantDebug bool
		wantWarn  bool
	}{
		"default": {debug: false, wantDebug: false, wantWarn: true},
		"debug":   {debug: true, wantDebug: true, wantWarn: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			handler := newLogger(tc.debug).Handler()
			assert.Equal(t, tc.wantDebug, handler.Enabled(t.Context(), slog.LevelDebug))
			assert.Equal(t, tc.wantWarn, handler.Enabled(t.Context(), slog.LevelWarn))
		})
	}
}
