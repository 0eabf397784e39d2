// Package testutil provides test utilities and helpers for contracts tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// CreateTempContract writes a contract definition named fileName into dir
// and returns its path. With no options the contract only targets
// "**/*.task".
func CreateTempContract(t *testing.T, dir, fileName string, opts ...ContractOption) string {
	t.Helper()

	cfg := &contractConfig{
		patterns: []string{"**/*.task"},
	}
	for _, opt := range opts {
		opt(cfg)
	}

	path := filepath.Join(dir, fileName)
	WriteFile(t, path, cfg.render())
	return path
}

// contractConfig holds configuration for CreateTempContract
type contractConfig struct {
	patterns      []string
	exclude       []string
	namingPattern string
	namingDesc    string
	archiveDir    string
	archivePat    string
	sections      []sectionSpec
	fieldGroups   []fieldGroupSpec
	description   string
}

type sectionSpec struct {
	name  string
	level int
}

type fieldGroupSpec struct {
	section string
	fields  [][2]string
}

// ContractOption is a functional option for CreateTempContract
type ContractOption func(*contractConfig)

// WithPatterns replaces the target include patterns
func WithPatterns(patterns ...string) ContractOption {
	return func(c *contractConfig) {
		c.patterns = patterns
	}
}

// WithExclude sets the target exclude patterns
func WithExclude(patterns ...string) ContractOption {
	return func(c *contractConfig) {
		c.exclude = patterns
	}
}

// WithNaming sets the naming pattern and description
func WithNaming(pattern, description string) ContractOption {
	return func(c *contractConfig) {
		c.namingPattern = pattern
		c.namingDesc = description
	}
}

// WithArchiving sets the archiving directory and pattern
func WithArchiving(directory, pattern string) ContractOption {
	return func(c *contractConfig) {
		c.archiveDir = directory
		c.archivePat = pattern
	}
}

// WithSection adds a required section
func WithSection(name string, level int) ContractOption {
	return func(c *contractConfig) {
		c.sections = append(c.sections, sectionSpec{name: name, level: level})
	}
}

// WithField adds a required field to the group for section
func WithField(section, name, pattern string) ContractOption {
	return func(c *contractConfig) {
		for i := range c.fieldGroups {
			if c.fieldGroups[i].section == section {
				c.fieldGroups[i].fields = append(c.fieldGroups[i].fields, [2]string{name, pattern})
				return
			}
		}
		c.fieldGroups = append(c.fieldGroups, fieldGroupSpec{
			section: section,
			fields:  [][2]string{{name, pattern}},
		})
	}
}

// WithDescription sets meta.description
func WithDescription(description string) ContractOption {
	return func(c *contractConfig) {
		c.description = description
	}
}

// render produces the YAML for the configured contract. Patterns are
// emitted as single-quoted scalars so regex backslashes survive.
func (c *contractConfig) render() string {
	var sb strings.Builder

	sb.WriteString("target:\n  patterns:\n")
	for _, p := range c.patterns {
		fmt.Fprintf(&sb, "    - %s\n", quote(p))
	}
	if len(c.exclude) > 0 {
		sb.WriteString("  exclude:\n")
		for _, p := range c.exclude {
			fmt.Fprintf(&sb, "    - %s\n", quote(p))
		}
	}

	if len(c.sections) > 0 || len(c.fieldGroups) > 0 {
		sb.WriteString("schema:\n")
		if len(c.sections) > 0 {
			sb.WriteString("  requiredSections:\n")
			for _, s := range c.sections {
				fmt.Fprintf(&sb, "    - name: %s\n      level: %d\n", quote(s.name), s.level)
			}
		}
		if len(c.fieldGroups) > 0 {
			sb.WriteString("  requiredFields:\n")
			for _, g := range c.fieldGroups {
				fmt.Fprintf(&sb, "    - section: %s\n      fields:\n", quote(g.section))
				for _, f := range g.fields {
					fmt.Fprintf(&sb, "        - name: %s\n          pattern: %s\n", quote(f[0]), quote(f[1]))
				}
			}
		}
	}

	if c.namingPattern != "" {
		fmt.Fprintf(&sb, "naming:\n  pattern: %s\n", quote(c.namingPattern))
		if c.namingDesc != "" {
			fmt.Fprintf(&sb, "  description: %s\n", quote(c.namingDesc))
		}
	}

	if c.archiveDir != "" {
		fmt.Fprintf(&sb, "archiving:\n  directory: %s\n  pattern: %s\n", quote(c.archiveDir), quote(c.archivePat))
	}

	if c.description != "" {
		fmt.Fprintf(&sb, "meta:\n  description: %s\n", quote(c.description))
	}

	return sb.String()
}

// quote wraps s in YAML single quotes.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// CreateTempDocument writes a document at dir/rel and returns its path.
func CreateTempDocument(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	WriteFile(t, path, content)
	return path
}

// WriteFile writes content to a file, creating parent directories if needed.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write file %s: %v", path, err)
	}
}

// FileExists checks if a file exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadFile reads file content, failing the test on error.
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read file %s: %v", path, err)
	}

	return string(content)
}

// Chdir switches the working directory for the duration of the test.
// Tests using it must not run in parallel.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to chdir to %s: %v", dir, err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(orig)
	})
}
