package pattern

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		expr    string
		wantErr bool
	}{
		"simple anchor":       {expr: `^Valid.*\.task$`},
		"quantified digits":   {expr: `^\w+\.\d{4}-\d{2}-\d{2}\.task$`},
		"lookahead":           {expr: `^(?!Draft).*\.task$`},
		"backreference":       {expr: `^(\w)\1`},
		"unbalanced group":    {expr: `^(abc`, wantErr: true},
		"dangling quantifier": {expr: `*abc`, wantErr: true},
		"empty":               {expr: ``, wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			re, err := Compile(tc.expr, 0)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expr, re.String())
		})
	}
}

func TestMatchString(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		expr  string
		input string
		want  bool
	}{
		"prefix match":          {expr: `^Valid.*\.task$`, input: "Valid.task", want: true},
		"prefix mismatch":       {expr: `^Valid.*\.task$`, input: "Invalid.task", want: false},
		"unanchored substring":  {expr: `Role:`, input: "## Role: Engineer", want: true},
		"negative lookahead ok": {expr: `^(?!Draft).*\.task$`, input: "Final.task", want: true},
		"negative lookahead no": {expr: `^(?!Draft).*\.task$`, input: "Draft.task", want: false},
		"archived date":         {expr: `^Valid.*\.\d{4}-\d{2}-\d{2}\.task$`, input: "Valid.2024-12-24.task", want: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			re, err := Compile(tc.expr, time.Second)
			require.NoError(t, err)
			got, err := re.MatchString(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestMatchString_Timeout(t *testing.T) {
	t.Parallel()

	re, err := Compile(`^(a+)+$`, time.Millisecond)
	require.NoError(t, err)

	got, err := re.MatchString(strings.Repeat("a", 40) + "b")
	require.Error(t, err)
	assert.False(t, got)
}
