package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ariel-frischer/contracts/internal/contract"
)

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"contract_roots":   []string{},
		"contract_suffix":  contract.DefaultSuffix,
		"strict":           false,
		"concurrency":      4,
		"regex_timeout_ms": 1000,
		"show_progress":    true,
	}
}

// GetDefaultConfigTemplate returns the defaults as indented JSON, the
// content written by `contracts init`.
func GetDefaultConfigTemplate() ([]byte, error) {
	data, err := json.MarshalIndent(GetDefaults(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding defaults: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteDefaultConfig writes the default template to path. An existing
// file is left alone unless force is set. It reports whether it wrote.
func WriteDefaultConfig(path string, force bool) (bool, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return false, nil
		}
	}

	data, err := GetDefaultConfigTemplate()
	if err != nil {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, fmt.Errorf("writing config: %w", err)
	}
	return true, nil
}
