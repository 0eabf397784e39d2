package contract

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml    string
		wantErr string
		check   func(t *testing.T, c *Contract)
	}{
		"full contract": {
			yaml: `
target:
  patterns:
    - '**/*.task'
  exclude:
    - '**/templates/**'
schema:
  requiredSections:
    - name: 'Task Details'
      level: 2
      description: 'Status block'
  requiredFields:
    - section: 'Task Details'
      fields:
        - name: Status
          pattern: '^Status:'
naming:
  pattern: '^[A-Z].*\.task$'
  examples: ['Refactor.task']
archiving:
  directory: archive
  pattern: '^.*\.\d{4}-\d{2}-\d{2}\.task$'
relatedFiles:
  - pattern: '*.report'
    required: true
validation:
  rules:
    - name: single-owner
meta:
  version: '1.0'
  author: framework
  lastUpdated: '2024-12-24'
`,
			check: func(t *testing.T, c *Contract) {
				assert.Equal(t, []string{"**/*.task"}, c.Target.Patterns)
				assert.Equal(t, []string{"**/templates/**"}, c.Target.Exclude)
				require.NotNil(t, c.Schema)
				require.Len(t, c.Schema.RequiredSections, 1)
				assert.Equal(t, 2, c.Schema.RequiredSections[0].Level)
				require.Len(t, c.Schema.RequiredFields, 1)
				assert.Equal(t, "^Status:", c.Schema.RequiredFields[0].Fields[0].Pattern)
				require.NotNil(t, c.Naming)
				assert.Equal(t, `^[A-Z].*\.task$`, c.Naming.Pattern)
				require.NotNil(t, c.Archiving)
				assert.Equal(t, "archive", c.Archiving.Directory)
				require.Len(t, c.RelatedFiles, 1)
				assert.True(t, c.RelatedFiles[0].Required)
				require.NotNil(t, c.Validation)
				assert.Equal(t, "single-owner", c.Validation.Rules[0].Name)
				require.NotNil(t, c.Meta)
				assert.Equal(t, "2024-12-24", c.Meta.LastUpdated)
				assert.Equal(t, "/contracts/Task.template.metadata", c.SourcePath)
			},
		},
		"target only": {
			yaml: "target:\n  patterns: ['**/*.md']\n",
			check: func(t *testing.T, c *Contract) {
				assert.Nil(t, c.Schema)
				assert.Nil(t, c.Naming)
				assert.Nil(t, c.Archiving)
				assert.False(t, c.HasRules())
			},
		},
		"unknown keys ignored": {
			yaml: "target:\n  patterns: ['**/*.md']\nfutureKey: true\n",
			check: func(t *testing.T, c *Contract) {
				assert.Equal(t, []string{"**/*.md"}, c.Target.Patterns)
			},
		},
		"missing target": {
			yaml:    "naming:\n  pattern: '^x$'\n",
			wantErr: "target.patterns is required",
		},
		"empty patterns": {
			yaml:    "target:\n  patterns: []\n",
			wantErr: "target.patterns",
		},
		"naming without pattern": {
			yaml:    "target:\n  patterns: ['*.task']\nnaming:\n  description: nope\n",
			wantErr: "naming.pattern is required",
		},
		"section level zero": {
			yaml:    "target:\n  patterns: ['*.task']\nschema:\n  requiredSections:\n    - name: A\n",
			wantErr: "level must be at least 1",
		},
		"malformed yaml": {
			yaml:    "target: [unclosed\n",
			wantErr: "parsing YAML",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			c, err := Parse([]byte(tc.yaml), "/contracts/Task.template.metadata")
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, c)
		})
	}
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "   \n\t\n"} {
		_, err := Parse([]byte(in), "x.metadata")
		assert.ErrorIs(t, err, ErrEmptyContract)
	}
}

func TestContractNames(t *testing.T) {
	t.Parallel()

	c := &Contract{SourcePath: filepath.Join("/", "fw", "Task.template.metadata")}

	assert.Equal(t, "Task.template.metadata", c.Identity())
	assert.Equal(t, "Task.template", c.Name())
	assert.True(t, c.MatchesName("task.template"))
	assert.True(t, c.MatchesName("TASK.TEMPLATE.METADATA"))
	assert.False(t, c.MatchesName("Task"))
	assert.False(t, c.MatchesName("  "))

	var nilContract *Contract
	assert.Empty(t, nilContract.Identity())
}

func TestFilter(t *testing.T) {
	t.Parallel()

	task := &Contract{SourcePath: "/c/Task.template.metadata"}
	report := &Contract{SourcePath: "/c/Report.template.metadata"}
	all := []*Contract{task, report}

	assert.Equal(t, all, Filter(all, ""))
	assert.Equal(t, []*Contract{report}, Filter(all, "report.template"))
	assert.Empty(t, Filter(all, "Proposal"))
}
