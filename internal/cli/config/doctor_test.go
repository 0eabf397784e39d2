package config

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/contracts/internal/cli/shared"
	"github.com/ariel-frischer/contracts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunDoctor(t *testing.T) {
	tests := map[string]struct {
		setup    func(t *testing.T, dir string)
		wantCode int
		wantOut  []string
	}{
		"healthy setup": {
			setup: func(t *testing.T, dir string) {
				testutil.CreateTempContract(t, dir, "Task.metadata", testutil.WithSection("Details", 2))
			},
			wantCode: shared.ExitSuccess,
			wantOut:  []string{"✓ Configuration", "✓ Contracts: 1 contract(s) loaded", "✓ Contract Task"},
		},
		"no contracts": {
			setup:    func(t *testing.T, dir string) {},
			wantCode: shared.ExitValidationFailed,
			wantOut:  []string{"✗ Contracts: no contracts"},
		},
		"invalid naming regex": {
			setup: func(t *testing.T, dir string) {
				testutil.CreateTempContract(t, dir, "Task.metadata", testutil.WithNaming("([a-z]", ""))
			},
			wantCode: shared.ExitValidationFailed,
			wantOut:  []string{"✗ Contract Task: invalid regular expression"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			isolateHome(t)
			dir := t.TempDir()
			tt.setup(t, dir)

			var out bytes.Buffer
			err := runDoctor(context.Background(), &out, filepath.Join(dir, "config.json"), dir)
			assert.Equal(t, tt.wantCode, shared.ExitCode(err))
			for _, want := range tt.wantOut {
				assert.Contains(t, out.String(), want)
			}
			if err != nil {
				require.True(t, shared.Reported(err))
			}
		})
	}
}
