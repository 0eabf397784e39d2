package config

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolateHome points HOME at a temp dir so the user config never leaks in.
func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestInitializeConfig(t *testing.T) {
	isolateHome(t)
	color.NoColor = true
	path := filepath.Join(t.TempDir(), ".contracts", "config.json")

	var out bytes.Buffer
	require.NoError(t, initializeConfig(&out, path, false))
	assert.Contains(t, out.String(), "✓ Config: created at "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contract_suffix": ".metadata"`)

	out.Reset()
	require.NoError(t, initializeConfig(&out, path, false))
	assert.Contains(t, out.String(), "already exists")

	out.Reset()
	require.NoError(t, initializeConfig(&out, path, true))
	assert.Contains(t, out.String(), "created at")
}

func TestShowConfig(t *testing.T) {
	isolateHome(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"strict": true, "contract_roots": ["/shared"]}`), 0o644))

	tests := map[string]struct {
		useJSON bool
		decode  func(body []byte, v interface{}) error
	}{
		"yaml": {useJSON: false, decode: yaml.Unmarshal},
		"json": {useJSON: true, decode: json.Unmarshal},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			require.NoError(t, showConfig(&out, path, tt.useJSON))

			text := out.String()
			assert.Contains(t, text, "# Project config: "+path)

			body := text[strings.Index(text, "\n\n")+2:]
			var got map[string]interface{}
			require.NoError(t, tt.decode([]byte(body), &got))
			assert.Equal(t, true, got["strict"])
			assert.Equal(t, ".metadata", got["contract_suffix"])
			assert.Equal(t, []interface{}{"/shared"}, got["contract_roots"])
		})
	}
}

func TestShowConfig_InvalidConfig(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"concurrency": 0}`), 0o644))

	var out bytes.Buffer
	err := showConfig(&out, path, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}
