package queryir

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"go.uber.org/multierr"

	"github.com/roach88/pgqlir/internal/ir"
)

// ValidationResult contains the semantic and portability analysis of an
// expression.
//
// The portable fragment is the subset of expressions that the SQL backend
// (package querysql) can lower. Non-portable expressions are still valid IR;
// the warnings tell the user what a backend cannot run.
type ValidationResult struct {
	// IsPortable indicates the expression lowers to SQL. Deprecated
	// functions and sparse bind parameters produce warnings without
	// making an expression non-portable.
	IsPortable bool

	// Warnings lists every finding in traversal order.
	Warnings []string
}

// Err returns the warnings combined into one error, or nil when there are
// none.
func (r ValidationResult) Err() error {
	var err error
	for _, w := range r.Warnings {
		err = multierr.Append(err, errors.New(w))
	}
	return err
}

// Validate checks an expression against rules the node model cannot enforce
// by construction:
//  1. No aggregate inside the argument of another aggregate
//  2. The wildcard only appears as the direct argument of COUNT
//  3. has() and hasLabel() are deprecated
//  4. Graph functions take a variable of the right type (label() an edge;
//     labels(), indegree(), outdegree() a vertex; id() a vertex or edge)
//  5. Bind parameters are numbered densely from 0
//  6. Only vertex and edge variables, cast targets with a SQLite type,
//     property names usable in a JSON path and no GET_LATITUDE/GET_LONGITUDE
//     can be lowered to SQL
//
// Rules 3 and 5 are advisory. Every other finding makes the expression
// non-portable.
//
// Validate is a pure function with no side effects.
func Validate(e Expr) ValidationResult {
	v := &validator{
		warnings: []string{},
		binds:    map[int]bool{},
	}
	if e == nil {
		v.block("nil expression - nothing to validate")
	} else {
		v.visit(e, ir.KindInvalid)
		v.checkBinds()
	}

	return ValidationResult{
		IsPortable: !v.blocked,
		Warnings:   v.warnings,
	}
}

// validator accumulates warnings during traversal. It recurses on its own so
// that it can track the enclosing aggregate and the parent kind.
type validator struct {
	warnings []string
	blocked  bool
	parent   ir.Kind
	aggDepth int
	binds    map[int]bool
}

var _ Visitor = (*validator)(nil)

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// block records a finding that prevents lowering to SQL.
func (v *validator) block(format string, args ...any) {
	v.blocked = true
	v.addWarning(format, args...)
}

func (v *validator) visit(e Expr, parent ir.Kind) {
	saved := v.parent
	v.parent = parent
	e.Accept(v)
	v.parent = saved
}

func (v *validator) descend(e Expr) {
	for _, c := range e.Children() {
		v.visit(c, e.Kind())
	}
}

func (v *validator) aggregate(e Expr) {
	if v.aggDepth > 0 {
		v.block("%s nested inside another aggregate", e.Kind())
	}
	v.aggDepth++
	v.descend(e)
	v.aggDepth--
}

// graphFunction checks that the operand of a graph built-in, its first
// child, is a variable of one of the allowed types. The variable itself is
// not visited again.
func (v *validator) graphFunction(e Expr, name string, allowed ...ir.VarType) {
	children := e.Children()
	ref, ok := children[0].(*VarRef)
	if !ok {
		v.block("%s expects a variable operand, got %s", name, children[0].Kind())
		v.descend(e)
		return
	}
	if !slices.Contains(allowed, ref.Variable().Type) {
		v.block("%s is not defined for %s variable %q", name, ref.Variable().Type, ref.Variable().Name)
	}
	for _, c := range children[1:] {
		v.visit(c, e.Kind())
	}
}

func (v *validator) deprecated(name, replacement string) {
	v.addWarning("%s is deprecated, use %s instead", name, replacement)
}

func (v *validator) checkBinds() {
	if len(v.binds) == 0 {
		return
	}
	indexes := make([]int, 0, len(v.binds))
	for i := range v.binds {
		indexes = append(indexes, i)
	}
	sort.Ints(indexes)
	for want, got := range indexes {
		if want != got {
			v.addWarning("bind parameter %d is missing, parameters must be numbered from 0 without gaps", want)
			return
		}
	}
}

// Constants are always portable.

func (v *validator) VisitConstInteger(*ConstInteger)                             {}
func (v *validator) VisitConstDecimal(*ConstDecimal)                             {}
func (v *validator) VisitConstString(*ConstString)                               {}
func (v *validator) VisitConstBoolean(*ConstBoolean)                             {}
func (v *validator) VisitConstDate(*ConstDate)                                   {}
func (v *validator) VisitConstTime(*ConstTime)                                   {}
func (v *validator) VisitConstTimestamp(*ConstTimestamp)                         {}
func (v *validator) VisitConstTimeWithTimezone(*ConstTimeWithTimezone)           {}
func (v *validator) VisitConstTimestampWithTimezone(*ConstTimestampWithTimezone) {}
func (v *validator) VisitConstNull(*ConstNull)                                   {}

func (v *validator) VisitSub(e *Sub)   { v.descend(e) }
func (v *validator) VisitAdd(e *Add)   { v.descend(e) }
func (v *validator) VisitMul(e *Mul)   { v.descend(e) }
func (v *validator) VisitDiv(e *Div)   { v.descend(e) }
func (v *validator) VisitMod(e *Mod)   { v.descend(e) }
func (v *validator) VisitUMin(e *UMin) { v.descend(e) }

func (v *validator) VisitAnd(e *And) { v.descend(e) }
func (v *validator) VisitOr(e *Or)   { v.descend(e) }
func (v *validator) VisitNot(e *Not) { v.descend(e) }

func (v *validator) VisitEqual(e *Equal)               { v.descend(e) }
func (v *validator) VisitNotEqual(e *NotEqual)         { v.descend(e) }
func (v *validator) VisitGreater(e *Greater)           { v.descend(e) }
func (v *validator) VisitGreaterEqual(e *GreaterEqual) { v.descend(e) }
func (v *validator) VisitLess(e *Less)                 { v.descend(e) }
func (v *validator) VisitLessEqual(e *LessEqual)       { v.descend(e) }

func (v *validator) VisitAggrCount(e *AggrCount) { v.aggregate(e) }
func (v *validator) VisitAggrMin(e *AggrMin)     { v.aggregate(e) }
func (v *validator) VisitAggrMax(e *AggrMax)     { v.aggregate(e) }
func (v *validator) VisitAggrSum(e *AggrSum)     { v.aggregate(e) }
func (v *validator) VisitAggrAvg(e *AggrAvg)     { v.aggregate(e) }

func (v *validator) VisitVarRef(e *VarRef) {
	switch t := e.Variable().Type; t {
	case ir.VarTypeVertex, ir.VarTypeEdge:
	default:
		v.block("%s variable %q cannot be lowered to SQL", t, e.Variable().Name)
	}
}

func (v *validator) VisitBindVariable(e *BindVariable) {
	v.binds[e.ParameterIndex()] = true
}

func (v *validator) VisitStar(*Star) {
	if v.parent != ir.KindAggrCount {
		v.block("wildcard * is only allowed as the argument of COUNT")
	}
}

func (v *validator) VisitPropertyAccess(e *PropertyAccess) {
	switch t := e.Variable().Type; t {
	case ir.VarTypeVertex, ir.VarTypeEdge:
	default:
		v.block("property %q accessed on %s variable %q", e.PropertyName(), t, e.Variable().Name)
		return
	}
	if !SQLPropertyName(e.PropertyName()) {
		v.block("property name %q cannot be lowered to SQL", e.PropertyName())
	}
}

func (v *validator) VisitRegex(e *Regex) { v.descend(e) }

func (v *validator) VisitID(e *ID) {
	v.graphFunction(e, "id()", ir.VarTypeVertex, ir.VarTypeEdge)
}

func (v *validator) VisitHasProp(e *HasProp) {
	v.deprecated("has()", "a property access compared with IS NOT NULL")
	v.graphFunction(e, "has()", ir.VarTypeVertex, ir.VarTypeEdge)
	if c, ok := e.Y().(*ConstString); ok && !SQLPropertyName(c.Value()) {
		v.block("property name %q cannot be lowered to SQL", c.Value())
	}
}

func (v *validator) VisitHasLabel(e *HasLabel) {
	v.deprecated("hasLabel()", "a label expression in the pattern")
	v.graphFunction(e, "hasLabel()", ir.VarTypeVertex, ir.VarTypeEdge)
}

func (v *validator) VisitVertexLabels(e *VertexLabels) {
	v.graphFunction(e, "labels()", ir.VarTypeVertex)
}

func (v *validator) VisitInDegree(e *InDegree) {
	v.graphFunction(e, "indegree()", ir.VarTypeVertex)
}

func (v *validator) VisitOutDegree(e *OutDegree) {
	v.graphFunction(e, "outdegree()", ir.VarTypeVertex)
}

func (v *validator) VisitEdgeLabel(e *EdgeLabel) {
	v.graphFunction(e, "label()", ir.VarTypeEdge)
}

func (v *validator) VisitCast(e *Cast) {
	if _, ok := SQLCastType(e.TargetTypeName()); !ok {
		v.block("CAST to %s cannot be lowered to SQL", e.TargetTypeName())
	}
	v.descend(e)
}

func (v *validator) VisitAllDifferent(e *AllDifferent) { v.descend(e) }

func (v *validator) VisitGetLatitude(e *GetLatitude) {
	v.block("GET_LATITUDE cannot be lowered to SQL")
	v.descend(e)
}

func (v *validator) VisitGetLongitude(e *GetLongitude) {
	v.block("GET_LONGITUDE cannot be lowered to SQL")
	v.descend(e)
}
