package queryir

import (
	"unicode/utf8"

	"github.com/roach88/pgqlir/internal/ir"
)

// VarRef refers to a query variable declared elsewhere in the query.
// It holds a copy of the resolved variable, not its declaration.
type VarRef struct {
	leaf
	variable ir.QueryVariable
}

// NewVarRef returns a reference to v. It panics with ErrUnresolvedVariable
// if v has no name or no declared type and with ErrInvalidPayloadType if the
// name is not valid UTF-8.
func NewVarRef(v ir.QueryVariable) *VarRef {
	if err := checkVariable(ir.KindVarRef, v); err != nil {
		panic(err)
	}
	return &VarRef{leaf: makeLeaf(ir.KindVarRef, v), variable: v}
}

// Variable returns the referenced variable.
func (r *VarRef) Variable() ir.QueryVariable { return r.variable }

func (*VarRef) Kind() ir.Kind { return ir.KindVarRef }

func (r *VarRef) Accept(v Visitor) { v.VisitVarRef(r) }

func (r *VarRef) payload() any { return r.variable }

// BindVariable is a positional parameter `?`, bound at execution time.
type BindVariable struct {
	leaf
	index int
}

// NewBindVariable returns the parameter at the zero-based position index.
// It panics with ErrInvalidPayloadType on a negative index.
func NewBindVariable(index int) *BindVariable {
	if index < 0 {
		panic(payloadError(ir.KindBindVariable, "parameter index %d is negative", index))
	}
	return &BindVariable{leaf: makeLeaf(ir.KindBindVariable, index), index: index}
}

// ParameterIndex returns the zero-based position of the parameter.
func (b *BindVariable) ParameterIndex() int { return b.index }

func (*BindVariable) Kind() ir.Kind { return ir.KindBindVariable }

func (b *BindVariable) Accept(v Visitor) { v.VisitBindVariable(b) }

func (b *BindVariable) payload() any { return b.index }

// PropertyRef is the payload of a property access: a resolved variable and
// a property name.
type PropertyRef struct {
	Var  ir.QueryVariable
	Name string
}

// PropertyAccess reads property Name of a vertex or edge variable, `n.name`.
type PropertyAccess struct {
	leaf
	ref PropertyRef
}

// NewPropertyAccess returns `v.name`. It panics with ErrUnresolvedVariable
// if v is not resolved and with ErrInvalidPayloadType if name is empty or
// either name is not valid UTF-8.
func NewPropertyAccess(v ir.QueryVariable, name string) *PropertyAccess {
	ref := PropertyRef{Var: v, Name: name}
	if err := checkPropertyRef(ref); err != nil {
		panic(err)
	}
	return &PropertyAccess{leaf: makeLeaf(ir.KindPropAccess, ref), ref: ref}
}

// checkVariable rejects variables a printed reference could not name again.
func checkVariable(kind ir.Kind, v ir.QueryVariable) error {
	if !v.Resolved() {
		return unresolvedError(kind, v)
	}
	if !utf8.ValidString(v.Name) {
		return payloadError(kind, "variable name %q is not valid UTF-8", v.Name)
	}
	return nil
}

func checkPropertyRef(ref PropertyRef) error {
	if err := checkVariable(ir.KindPropAccess, ref.Var); err != nil {
		return err
	}
	if ref.Name == "" {
		return payloadError(ir.KindPropAccess, "property name is empty")
	}
	if !utf8.ValidString(ref.Name) {
		return payloadError(ir.KindPropAccess, "property name is not valid UTF-8")
	}
	return nil
}

// Variable returns the variable whose property is read.
func (p *PropertyAccess) Variable() ir.QueryVariable { return p.ref.Var }

// PropertyName returns the property name.
func (p *PropertyAccess) PropertyName() string { return p.ref.Name }

func (*PropertyAccess) Kind() ir.Kind { return ir.KindPropAccess }

func (p *PropertyAccess) Accept(v Visitor) { v.VisitPropertyAccess(p) }

func (p *PropertyAccess) payload() any { return p.ref }

// Star is the wildcard `*`, as in COUNT(*). All instances are equal.
type Star struct {
	leaf
}

// NewStar returns the wildcard.
func NewStar() *Star {
	return &Star{leaf: makeLeaf(ir.KindStar, nil)}
}

func (*Star) Kind() ir.Kind { return ir.KindStar }

func (s *Star) Accept(v Visitor) { v.VisitStar(s) }
