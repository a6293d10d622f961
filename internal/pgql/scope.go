package pgql

import (
	"fmt"
	"sort"

	"github.com/roach88/pgqlir/internal/ir"
)

// Scope maps the variable names visible to an expression to their resolved
// declarations. The parser looks identifiers up here; it never invents
// variables.
type Scope map[string]ir.QueryVariable

// NewScope returns a scope declaring vars. It panics if a variable is not
// resolved or a name is declared twice with different types; use Declare to
// get an error instead.
func NewScope(vars ...ir.QueryVariable) Scope {
	s := Scope{}
	for _, v := range vars {
		if err := s.Declare(v); err != nil {
			panic(err)
		}
	}
	return s
}

// Declare adds v to the scope. Redeclaring a name with the same type is a
// no-op.
func (s Scope) Declare(v ir.QueryVariable) error {
	if !v.Resolved() {
		return fmt.Errorf("cannot declare variable %q with type %s", v.Name, v.Type)
	}
	if prev, ok := s[v.Name]; ok && prev != v {
		return fmt.Errorf("variable %q already declared as %s", v.Name, prev.Type)
	}
	s[v.Name] = v
	return nil
}

// Lookup returns the variable declared under name.
func (s Scope) Lookup(name string) (ir.QueryVariable, bool) {
	v, ok := s[name]
	return v, ok
}

// Names returns the declared names in sorted order.
func (s Scope) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
