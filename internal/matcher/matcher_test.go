package matcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/contracts/internal/contract"
	"github.com/ariel-frischer/contracts/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContract(id string, include []string, exclude ...string) *contract.Contract {
	return &contract.Contract{
		Target:     contract.Target{Patterns: include, Exclude: exclude},
		SourcePath: "/contracts/" + id,
	}
}

func TestMatcher_Match(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		include []string
		exclude []string
		path    string
		want    bool
	}{
		"double star matches root file":      {include: []string{"**/*.task"}, path: "a.task", want: true},
		"double star matches nested file":    {include: []string{"**/*.task"}, path: "x/y/z/a.task", want: true},
		"single star stays in segment":       {include: []string{"*.task"}, path: "x/a.task", want: false},
		"single star root file":              {include: []string{"*.task"}, path: "a.task", want: true},
		"case insensitive extension":         {include: []string{"**/*.task"}, path: "Docs/A.TASK", want: true},
		"case insensitive directory":         {include: []string{"Planning/**/*.md"}, path: "planning/q1/plan.md", want: true},
		"exclude wins":                       {include: []string{"**/*.task"}, exclude: []string{"**/templates/**"}, path: "templates/a.task", want: false},
		"exclude case insensitive":           {include: []string{"**/*.task"}, exclude: []string{"**/TEMPLATES/**"}, path: "x/templates/a.task", want: false},
		"exclude does not affect others":     {include: []string{"**/*.task"}, exclude: []string{"**/templates/**"}, path: "work/a.task", want: true},
		"no include match":                   {include: []string{"**/*.task"}, path: "a.report", want: false},
		"windows separators normalised":      {include: []string{"**/*.task"}, path: `work\nested\a.task`, want: true},
		"leading dot slash in pattern":       {include: []string{"./work/*.task"}, path: "work/a.task", want: true},
		"brace alternatives":                 {include: []string{"**/*.{task,report}"}, path: "x/r.report", want: true},
		"invalid pattern never matches":      {include: []string{"[unclosed"}, path: "[unclosed", want: false},
		"empty include list matches nothing": {include: nil, path: "a.task", want: false},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			m := New(newContract("T.metadata", tc.include, tc.exclude...))
			assert.Equal(t, tc.want, m.Match(tc.path))
		})
	}
}

func TestMatcher_Validate(t *testing.T) {
	t.Parallel()

	assert.NoError(t, New(newContract("a", []string{"**/*.task"}, "tmp/**")).Validate())
	assert.Error(t, New(newContract("b", []string{"[abc"})).Validate())
}

func TestRelativePath(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "ws")
	cwd, err := os.Getwd()
	require.NoError(t, err)

	tests := map[string]struct {
		file string
		root string
		want string
	}{
		"inside root":            {file: filepath.Join(root, "a", "b.task"), root: root, want: "a/b.task"},
		"outside root":           {file: filepath.Join(string(filepath.Separator), "other", "b.task"), root: root, want: "other/b.task"},
		"no root":                {file: filepath.Join(string(filepath.Separator), "x", "b.task"), root: "", want: "x/b.task"},
		"dotdot-named":           {file: filepath.Join(root, "..hidden", "b.task"), root: root, want: "..hidden/b.task"},
		"relative without root":  {file: filepath.Join("tasks", "Foo.task"), root: "", want: "tasks/Foo.task"},
		"dot-relative no root":   {file: "./tasks/Foo.task", root: "", want: "tasks/Foo.task"},
		"relative with abs root": {file: filepath.Join("tasks", "Foo.task"), root: cwd, want: "tasks/Foo.task"},
		"absolute with dot root": {file: filepath.Join(cwd, "tasks", "Foo.task"), root: ".", want: "tasks/Foo.task"},
		"relative with dot root": {file: filepath.Join("tasks", "Foo.task"), root: ".", want: "tasks/Foo.task"},
		"file equal to root":     {file: root, root: root, want: "."},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, RelativePath(tc.file, tc.root))
		})
	}
}

func TestFindContract(t *testing.T) {
	t.Parallel()

	root := filepath.Join(string(filepath.Separator), "ws")
	tasks := newContract("Task.metadata", []string{"**/*.task"})
	catchAll := newContract("All.metadata", []string{"**/*"})
	archived := newContract("Archived.metadata", []string{"archive/**/*.task"})

	tests := map[string]struct {
		contracts []*contract.Contract
		file      string
		want      *contract.Contract
	}{
		"first match wins": {
			contracts: []*contract.Contract{tasks, catchAll},
			file:      filepath.Join(root, "a.task"),
			want:      tasks,
		},
		"iteration order decides": {
			contracts: []*contract.Contract{catchAll, tasks},
			file:      filepath.Join(root, "a.task"),
			want:      catchAll,
		},
		"more specific later contract loses": {
			contracts: []*contract.Contract{tasks, archived},
			file:      filepath.Join(root, "archive", "a.task"),
			want:      tasks,
		},
		"no match": {
			contracts: []*contract.Contract{tasks, archived},
			file:      filepath.Join(root, "a.report"),
			want:      nil,
		},
		"empty set": {
			contracts: nil,
			file:      filepath.Join(root, "a.task"),
			want:      nil,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			got := FindContract(tc.file, tc.contracts, root)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Same(t, tc.want, got)
		})
	}
}

func TestMatchFiles(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.CreateTempDocument(t, root, "b.task", "")
	testutil.CreateTempDocument(t, root, "A.task", "")
	testutil.CreateTempDocument(t, root, "nested/c.TASK", "")
	testutil.CreateTempDocument(t, root, "templates/skip.task", "")
	testutil.CreateTempDocument(t, root, "reports/r.report", "")
	testutil.CreateTempDocument(t, root, "reports/templates/keep.report", "")
	testutil.CreateTempDocument(t, root, "notes.md", "")
	testutil.CreateTempDocument(t, root, ".git/objects/x.task", "")

	contracts := []*contract.Contract{
		newContract("Task.metadata", []string{"**/*.task"}, "templates/**"),
		newContract("Report.metadata", []string{"reports/**/*.report"}),
	}

	got, err := MatchFiles(context.Background(), root, contracts)
	require.NoError(t, err)

	rel := make([]string, 0, len(got))
	for _, f := range got {
		assert.True(t, filepath.IsAbs(f))
		rel = append(rel, RelativePath(f, root))
	}
	assert.Equal(t, []string{
		"A.task",
		"b.task",
		"nested/c.TASK",
		"reports/r.report",
		"reports/templates/keep.report",
	}, rel)
}

func TestMatchFiles_NoContracts(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.CreateTempDocument(t, root, "a.task", "")

	got, err := MatchFiles(context.Background(), root, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestMatchFiles_Cancelled(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	testutil.CreateTempDocument(t, root, "a.task", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := MatchFiles(ctx, root, []*contract.Contract{newContract("T", []string{"**/*"})})
	assert.ErrorIs(t, err, context.Canceled)
}
