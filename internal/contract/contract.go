// Package contract defines the contract model and loads contract definitions
// from disk. A contract is a declarative rule set describing which files it
// governs (target globs) and what those files must look like (naming,
// archiving, and heading-structure rules).
package contract

import (
	"path/filepath"
	"strings"
)

// DefaultSuffix is the file suffix that marks a contract definition.
const DefaultSuffix = ".metadata"

// Contract is a single contract definition loaded from a .metadata file.
// Contracts are treated as immutable once loaded.
type Contract struct {
	Target       Target        `yaml:"target"`
	Schema       *Schema       `yaml:"schema,omitempty" validate:"omitempty"`
	Naming       *Naming       `yaml:"naming,omitempty" validate:"omitempty"`
	Archiving    *Archiving    `yaml:"archiving,omitempty" validate:"omitempty"`
	RelatedFiles []RelatedFile `yaml:"relatedFiles,omitempty" validate:"omitempty,dive"`
	Validation   *RuleSet      `yaml:"validation,omitempty" validate:"omitempty"`
	Meta         *Meta         `yaml:"meta,omitempty"`

	// SourcePath is the absolute path the contract was loaded from.
	// It is stamped by the loader and never read from YAML.
	SourcePath string `yaml:"-"`
}

// Target selects the files a contract applies to.
type Target struct {
	Patterns []string `yaml:"patterns" validate:"required,min=1,dive,required"`
	Exclude  []string `yaml:"exclude,omitempty" validate:"omitempty,dive,required"`
}

// Schema lists the heading structure a document must have.
type Schema struct {
	RequiredSections []RequiredSection    `yaml:"requiredSections,omitempty" validate:"omitempty,dive"`
	RequiredFields   []RequiredFieldGroup `yaml:"requiredFields,omitempty" validate:"omitempty,dive"`
}

// RequiredSection is a heading that must appear at a specific level.
type RequiredSection struct {
	Name        string `yaml:"name" validate:"required"`
	Level       int    `yaml:"level" validate:"min=1"`
	Description string `yaml:"description,omitempty"`
}

// RequiredFieldGroup lists line patterns that must appear inside a section.
type RequiredFieldGroup struct {
	Section string          `yaml:"section" validate:"required"`
	Fields  []RequiredField `yaml:"fields" validate:"required,min=1,dive"`
}

// RequiredField is a line-matching regular expression.
type RequiredField struct {
	Name        string `yaml:"name" validate:"required"`
	Pattern     string `yaml:"pattern" validate:"required"`
	Description string `yaml:"description,omitempty"`
}

// Naming is the file name convention for matching files.
type Naming struct {
	Pattern     string   `yaml:"pattern" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Examples    []string `yaml:"examples,omitempty"`
}

// Archiving describes where completed files live and how they are named.
type Archiving struct {
	Directory   string   `yaml:"directory" validate:"required"`
	Pattern     string   `yaml:"pattern" validate:"required"`
	Description string   `yaml:"description,omitempty"`
	Examples    []string `yaml:"examples,omitempty"`
}

// RelatedFile describes a companion file. Not evaluated by the validators.
type RelatedFile struct {
	Pattern     string `yaml:"pattern" validate:"required"`
	Description string `yaml:"description,omitempty"`
	Required    bool   `yaml:"required,omitempty"`
	Validation  string `yaml:"validation,omitempty"`
}

// RuleSet holds informational custom rule descriptions.
type RuleSet struct {
	Rules []Rule `yaml:"rules,omitempty" validate:"omitempty,dive"`
}

// Rule is a named, informational validation rule.
type Rule struct {
	Name        string `yaml:"name" validate:"required"`
	Description string `yaml:"description,omitempty"`
}

// Meta is informational metadata about the contract itself.
type Meta struct {
	Version     string `yaml:"version,omitempty"`
	Author      string `yaml:"author,omitempty"`
	Description string `yaml:"description,omitempty"`
	LastUpdated string `yaml:"lastUpdated,omitempty"`
}

// Identity returns the merge key for the contract: the base name of its
// source file. Contracts from different roots with the same identity
// replace each other during a merge.
func (c *Contract) Identity() string {
	if c == nil || c.SourcePath == "" {
		return ""
	}
	return filepath.Base(c.SourcePath)
}

// Name returns the identity without the definition suffix.
// "Task.template.metadata" becomes "Task.template".
func (c *Contract) Name() string {
	id := c.Identity()
	if ext := filepath.Ext(id); ext != "" {
		return strings.TrimSuffix(id, ext)
	}
	return id
}

// MatchesName reports whether requested names this contract, either by
// Name or by Identity, ignoring case.
func (c *Contract) MatchesName(requested string) bool {
	requested = strings.TrimSpace(requested)
	if requested == "" {
		return false
	}
	return strings.EqualFold(c.Name(), requested) || strings.EqualFold(c.Identity(), requested)
}

// HasRules reports whether the contract carries any rule the validators
// evaluate. A contract without rules only selects files.
func (c *Contract) HasRules() bool {
	return c.Schema != nil || c.Naming != nil || c.Archiving != nil
}

// Filter returns the contracts matching requested. An empty request
// returns the input unchanged.
func Filter(contracts []*Contract, requested string) []*Contract {
	if strings.TrimSpace(requested) == "" {
		return contracts
	}
	var filtered []*Contract
	for _, c := range contracts {
		if c.MatchesName(requested) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
