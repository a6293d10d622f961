package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"
	"gopkg.in/yaml.v3"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/pgql"
)

// LoadError represents an error that occurred while building a scope.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// scopeFile is the document shape of YAML and CUE scope files:
//
//	vars:
//	  n: vertex
//	  e: edge
type scopeFile struct {
	Vars map[string]string `yaml:"vars"`
}

// LoadScope builds the parser scope from a scope file (if path is not empty)
// followed by --var declarations. A name declared twice must agree on its
// type.
func LoadScope(path string, vars []string) (pgql.Scope, error) {
	scope := pgql.NewScope()

	if path != "" {
		declared, err := loadScopeFile(path)
		if err != nil {
			return nil, err
		}
		// Sorted so that conflicts are reported deterministically.
		names := make([]string, 0, len(declared))
		for name := range declared {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := declare(scope, name, declared[name]); err != nil {
				return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("%s: %v", path, err)}
			}
		}
	}

	for _, decl := range vars {
		name, typ, ok := strings.Cut(decl, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("invalid --var %q: want name:type", decl)}
		}
		if err := declare(scope, strings.TrimSpace(name), typ); err != nil {
			return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("invalid --var %q: %v", decl, err)}
		}
	}
	return scope, nil
}

func declare(scope pgql.Scope, name, typ string) error {
	t, err := ir.ParseVarType(typ)
	if err != nil {
		return err
	}
	return scope.Declare(ir.QueryVariable{Name: name, Type: t})
}

// loadScopeFile reads the name to type mapping of a scope file, picking the
// decoder by extension.
func loadScopeFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("reading scope file: %v", err)}
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return decodeYAMLScope(path, data)
	case ".cue":
		return decodeCUEScope(path, data)
	default:
		return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("unsupported scope file extension %q: must be .yaml, .yml or .cue", ext)}
	}
}

func decodeYAMLScope(path string, data []byte) (map[string]string, error) {
	var doc scopeFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("%s: %v", path, err)}
	}
	if doc.Vars == nil {
		return map[string]string{}, nil
	}
	return doc.Vars, nil
}

func decodeCUEScope(path string, data []byte) (map[string]string, error) {
	ctx := cuecontext.New()
	value := ctx.CompileBytes(data, cue.Filename(path))
	if err := value.Err(); err != nil {
		return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("building CUE value: %v", err)}
	}

	vars := map[string]string{}
	varsVal := value.LookupPath(cue.ParsePath("vars"))
	if !varsVal.Exists() {
		return vars, nil
	}
	iter, err := varsVal.Fields()
	if err != nil {
		return nil, &LoadError{Code: ErrCodeScope, Message: fmt.Sprintf("iterating vars: %v", err), Pos: varsVal.Pos()}
	}
	for iter.Next() {
		typ, err := iter.Value().String()
		if err != nil {
			return nil, &LoadError{
				Code:    ErrCodeScope,
				Message: fmt.Sprintf("vars.%s: type must be a string", iter.Label()),
				Pos:     iter.Value().Pos(),
			}
		}
		vars[iter.Label()] = typ
	}
	return vars, nil
}
