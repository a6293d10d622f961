package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/pgql"
)

func writeScopeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScope_Vars(t *testing.T) {
	scope, err := LoadScope("", []string{"n:vertex", " e : edge", "x:scalar", "n:node"})
	require.NoError(t, err)

	assert.Equal(t, pgql.NewScope(ir.NewVertex("n"), ir.NewEdge("e"), ir.NewScalar("x")), scope)
}

func TestLoadScope_YAML(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml"} {
		t.Run(ext, func(t *testing.T) {
			path := writeScopeFile(t, "scope"+ext, "vars:\n  n: vertex\n  e: edge\n  p: path\n")

			scope, err := LoadScope(path, []string{"m:vertex"})
			require.NoError(t, err)
			assert.Equal(t, []string{"e", "m", "n", "p"}, scope.Names())

			v, ok := scope.Lookup("p")
			require.True(t, ok)
			assert.Equal(t, ir.NewPath("p"), v)
		})
	}
}

func TestLoadScope_CUE(t *testing.T) {
	path := writeScopeFile(t, "scope.cue", `
vars: {
	n: "vertex"
	e: "edge"
}
`)

	scope, err := LoadScope(path, nil)
	require.NoError(t, err)
	assert.Equal(t, pgql.NewScope(ir.NewVertex("n"), ir.NewEdge("e")), scope)
}

func TestLoadScope_EmptyFiles(t *testing.T) {
	for _, name := range []string{"empty.yaml", "empty.cue"} {
		t.Run(name, func(t *testing.T) {
			scope, err := LoadScope(writeScopeFile(t, name, ""), nil)
			require.NoError(t, err)
			assert.Empty(t, scope.Names())
		})
	}
}

func TestLoadScope_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string // name of the scope file, "" for none
		content string
		vars    []string
		wantErr string
	}{
		{
			name:    "var without type",
			vars:    []string{"n"},
			wantErr: `invalid --var "n": want name:type`,
		},
		{
			name:    "var without name",
			vars:    []string{":vertex"},
			wantErr: `invalid --var ":vertex": want name:type`,
		},
		{
			name:    "unknown var type",
			vars:    []string{"n:blob"},
			wantErr: `unknown variable type "blob"`,
		},
		{
			name:    "conflicting declarations",
			file:    "scope.yaml",
			content: "vars:\n  n: vertex\n",
			vars:    []string{"n:edge"},
			wantErr: `variable "n" already declared as vertex`,
		},
		{
			name:    "unknown type in file",
			file:    "scope.yaml",
			content: "vars:\n  n: blob\n",
			wantErr: `unknown variable type "blob"`,
		},
		{
			name:    "malformed yaml",
			file:    "scope.yaml",
			content: "vars: [",
			wantErr: "scope.yaml",
		},
		{
			name:    "cue type not a string",
			file:    "scope.cue",
			content: "vars: n: 1\n",
			wantErr: "vars.n: type must be a string",
		},
		{
			name:    "malformed cue",
			file:    "scope.cue",
			content: "vars: {",
			wantErr: "building CUE value",
		},
		{
			name:    "unsupported extension",
			file:    "scope.json",
			content: "{}",
			wantErr: `unsupported scope file extension ".json"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.file != "" {
				path = writeScopeFile(t, tt.file, tt.content)
			}

			_, err := LoadScope(path, tt.vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)

			var loadErr *LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, ErrCodeScope, loadErr.Code)
		})
	}
}

func TestLoadScope_MissingFile(t *testing.T) {
	_, err := LoadScope(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading scope file")
}

func TestScopeFileFlag(t *testing.T) {
	path := writeScopeFile(t, "scope.yaml", "vars:\n  n: vertex\n")

	out, _, err := execute(t, "--scope", path, "print", "n.age >= 21")
	require.NoError(t, err)
	assert.Equal(t, "(n.age >= 21)\n", out)
}
