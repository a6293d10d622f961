package ir

import (
	"fmt"
	"strings"
)

// VarType is the declared semantic type of a query variable.
type VarType uint8

const (
	VarTypeUnknown VarType = iota
	VarTypeVertex
	VarTypeEdge
	VarTypePath
	VarTypeScalar
)

var varTypeNames = map[VarType]string{
	VarTypeUnknown: "unknown",
	VarTypeVertex:  "vertex",
	VarTypeEdge:    "edge",
	VarTypePath:    "path",
	VarTypeScalar:  "scalar",
}

func (t VarType) String() string {
	if name, ok := varTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("VarType(%d)", uint8(t))
}

// ParseVarType accepts the lower-case names used in scope files and flags.
func ParseVarType(s string) (VarType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vertex", "node":
		return VarTypeVertex, nil
	case "edge":
		return VarTypeEdge, nil
	case "path":
		return VarTypePath, nil
	case "scalar", "exp", "expression":
		return VarTypeScalar, nil
	default:
		return VarTypeUnknown, fmt.Errorf("unknown variable type %q: must be one of vertex, edge, path, scalar", s)
	}
}

// QueryVariable is a resolved reference to a variable declared in a graph
// pattern or parameter list. It is a plain value: expressions copy it, they
// never point back at the declaration.
type QueryVariable struct {
	Name string
	Type VarType
}

// NewVertex returns a resolved vertex variable.
func NewVertex(name string) QueryVariable {
	return QueryVariable{Name: name, Type: VarTypeVertex}
}

// NewEdge returns a resolved edge variable.
func NewEdge(name string) QueryVariable {
	return QueryVariable{Name: name, Type: VarTypeEdge}
}

// NewPath returns a resolved path variable.
func NewPath(name string) QueryVariable {
	return QueryVariable{Name: name, Type: VarTypePath}
}

// NewScalar returns a resolved scalar (expression) variable.
func NewScalar(name string) QueryVariable {
	return QueryVariable{Name: name, Type: VarTypeScalar}
}

// Resolved reports whether the binder completed this reference.
func (v QueryVariable) Resolved() bool {
	return v.Name != "" && v.Type != VarTypeUnknown
}

func (v QueryVariable) String() string {
	return v.Name + ":" + v.Type.String()
}
