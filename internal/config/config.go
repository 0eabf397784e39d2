package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables that override config keys.
const EnvPrefix = "CONTRACTS_"

// LocalConfigPath is the project config file, relative to the workspace root.
var LocalConfigPath = filepath.Join(".contracts", "config.json")

// Configuration represents the contracts CLI configuration
type Configuration struct {
	ContractRoots  []string `koanf:"contract_roots" validate:"dive,required"`
	ContractSuffix string   `koanf:"contract_suffix" validate:"required,startswith=."`
	Strict         bool     `koanf:"strict"`
	Concurrency    int      `koanf:"concurrency" validate:"min=1,max=64"`
	RegexTimeoutMS int      `koanf:"regex_timeout_ms" validate:"min=1,max=60000"`
	ShowProgress   bool     `koanf:"show_progress"` // Show spinners while discovering and validating
}

// RegexTimeout returns the per-match regex timeout.
func (c *Configuration) RegexTimeout() time.Duration {
	return time.Duration(c.RegexTimeoutMS) * time.Millisecond
}

// GlobalConfigPath returns ~/.contracts/config.json.
func GlobalConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".contracts", "config.json"), nil
}

// Load loads configuration from global, local, and environment sources
// Priority: Environment variables > Local config > Global config > Defaults
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	// Apply defaults first
	for key, value := range GetDefaults() {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("failed to set default %s: %w", key, err)
		}
	}

	// Load global config if it exists
	if globalPath, err := GlobalConfigPath(); err == nil {
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	// Load local config if it exists
	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	// Override with environment variables (highest priority)
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, localConfigPath); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Expand home directory in paths
	for i, root := range cfg.ContractRoots {
		cfg.ContractRoots[i] = expandHomePath(root)
	}

	return &cfg, nil
}

// envTransform converts environment variable names to config keys
// Example: CONTRACTS_REGEX_TIMEOUT_MS -> regex_timeout_ms
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// expandHomePath expands ~ to the user's home directory
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
