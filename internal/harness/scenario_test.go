package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/exp_basics.yaml")
	require.NoError(t, err)

	assert.Equal(t, "exp_basics", s.Name)
	assert.Equal(t, "exp", s.Fn)
	require.Len(t, s.Cases, 13)

	assert.Equal(t, "zero", s.Cases[0].Name)
	assert.Equal(t, yaml.ScalarNode, s.Cases[0].Input.Kind)
	assert.Equal(t, "no arguments", s.Cases[10].Name)
	assert.Equal(t, yaml.SequenceNode, s.Cases[10].Args.Kind)
	assert.Equal(t, "ARITY", s.Cases[10].Error)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: a\ndescription: d\nfn: exp\ncase: []\n",
			wantErr: "field case not found",
		},
		{
			name:    "missing name",
			yaml:    "description: d\nfn: exp\ncases: [{name: c, input: 0, expect: 1}]\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			yaml:    "name: a\nfn: exp\ncases: [{name: c, input: 0, expect: 1}]\n",
			wantErr: "description is required",
		},
		{
			name:    "unknown fn",
			yaml:    "name: a\ndescription: d\nfn: sqrt\ncases: [{name: c, input: 0, expect: 1}]\n",
			wantErr: `unknown fn "sqrt"`,
		},
		{
			name:    "no cases",
			yaml:    "name: a\ndescription: d\nfn: exp\n",
			wantErr: "cases list is required",
		},
		{
			name:    "input and args",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, input: 0, args: [0], expect: 1}]\n",
			wantErr: "exactly one of input and args",
		},
		{
			name:    "neither input nor args",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, expect: 1}]\n",
			wantErr: "exactly one of input and args",
		},
		{
			name:    "args not a list",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, args: 1, expect: 1}]\n",
			wantErr: "args must be a list",
		},
		{
			name:    "expect and error",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, input: 0, expect: 1, error: ARITY}]\n",
			wantErr: "exactly one of expect and error",
		},
		{
			name:    "message without error",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, input: 0, expect: 1, message: m}]\n",
			wantErr: "message requires error",
		},
		{
			name:    "duplicate case",
			yaml:    "name: a\ndescription: d\nfn: exp\ncases: [{name: c, input: 0, expect: 1}, {name: c, input: 1, expect: 1}]\n",
			wantErr: `duplicate name "c"`,
		},
		{
			name:    "negative tolerance",
			yaml:    "name: a\ndescription: d\nfn: exp\ntolerance: -1\ncases: [{name: c, input: 0, expect: 1}]\n",
			wantErr: "tolerance must not be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParseScenario_NullInput(t *testing.T) {
	s, err := ParseScenario([]byte("name: a\ndescription: d\nfn: exp\ncases: [{name: c, input: null, error: UNSUPPORTED_TYPE}]\n"))
	require.NoError(t, err)
	assert.True(t, s.Cases[0].hasInput())
}
