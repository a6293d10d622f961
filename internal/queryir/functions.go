package queryir

import (
	"strings"
	"unicode"

	"github.com/roach88/pgqlir/internal/ir"
)

// Built-in functions of the graph query language.

// Regex matches a string against a pattern, `x =~ y`.
type Regex struct {
	pair
}

// NewRegex returns `x =~ pattern`.
func NewRegex(x, pattern Expr) *Regex {
	return &Regex{pair: mustBinary(ir.KindRegex, x, pattern)}
}

func (*Regex) Kind() ir.Kind { return ir.KindRegex }

func (e *Regex) Accept(v Visitor) { v.VisitRegex(e) }

// ID is the identifier of a vertex or edge, `x.id()`.
type ID struct {
	unary
}

// NewID returns `x.id()`; x is expected to be a vertex or edge.
func NewID(x Expr) *ID {
	return &ID{unary: mustUnary(ir.KindID, x)}
}

func (*ID) Kind() ir.Kind { return ir.KindID }

func (e *ID) Accept(v Visitor) { v.VisitID(e) }

// HasProp tests whether a vertex or edge has a property, `x.has(name)`.
// Deprecated in the surface language; Validate warns about it.
type HasProp struct {
	pair
}

// NewHasProp returns `x.has(name)`.
func NewHasProp(x, name Expr) *HasProp {
	return &HasProp{pair: mustBinary(ir.KindHasProp, x, name)}
}

func (*HasProp) Kind() ir.Kind { return ir.KindHasProp }

func (e *HasProp) Accept(v Visitor) { v.VisitHasProp(e) }

// HasLabel tests whether an element carries a label, `x.hasLabel(label)`.
// Deprecated in the surface language; Validate warns about it.
type HasLabel struct {
	pair
}

// NewHasLabel returns `x.hasLabel(label)`.
func NewHasLabel(x, label Expr) *HasLabel {
	return &HasLabel{pair: mustBinary(ir.KindHasLabel, x, label)}
}

func (*HasLabel) Kind() ir.Kind { return ir.KindHasLabel }

func (e *HasLabel) Accept(v Visitor) { v.VisitHasLabel(e) }

// VertexLabels is the label set of a vertex, `x.labels()`.
type VertexLabels struct {
	unary
}

func NewVertexLabels(x Expr) *VertexLabels {
	return &VertexLabels{unary: mustUnary(ir.KindVertexLabels, x)}
}

func (*VertexLabels) Kind() ir.Kind { return ir.KindVertexLabels }

func (e *VertexLabels) Accept(v Visitor) { v.VisitVertexLabels(e) }

// InDegree is the number of incoming edges of a vertex, `x.indegree()`.
type InDegree struct {
	unary
}

func NewInDegree(x Expr) *InDegree {
	return &InDegree{unary: mustUnary(ir.KindInDegree, x)}
}

func (*InDegree) Kind() ir.Kind { return ir.KindInDegree }

func (e *InDegree) Accept(v Visitor) { v.VisitInDegree(e) }

// OutDegree is the number of outgoing edges of a vertex, `x.outdegree()`.
type OutDegree struct {
	unary
}

func NewOutDegree(x Expr) *OutDegree {
	return &OutDegree{unary: mustUnary(ir.KindOutDegree, x)}
}

func (*OutDegree) Kind() ir.Kind { return ir.KindOutDegree }

func (e *OutDegree) Accept(v Visitor) { v.VisitOutDegree(e) }

// EdgeLabel is the label of an edge, `x.label()`.
type EdgeLabel struct {
	unary
}

func NewEdgeLabel(x Expr) *EdgeLabel {
	return &EdgeLabel{unary: mustUnary(ir.KindEdgeLabel, x)}
}

func (*EdgeLabel) Kind() ir.Kind { return ir.KindEdgeLabel }

func (e *EdgeLabel) Accept(v Visitor) { v.VisitEdgeLabel(e) }

// Cast converts its operand to a named type, `CAST(x AS target)`.
// The target type name is payload, not a child.
type Cast struct {
	unary
	target string
}

// NewCast returns `CAST(x AS target)`. The target is one or more words of
// letters, digits and underscores, such as "INTEGER" or "TIME WITH TIME ZONE";
// it is stored upper-cased with single spaces. NewCast panics with
// ErrInvalidPayloadType on any other target.
func NewCast(x Expr, target string) *Cast {
	c, err := makeCast(x, target)
	if err != nil {
		panic(err)
	}
	return c
}

func makeCast(x Expr, target string) (*Cast, error) {
	words := strings.Fields(strings.ToUpper(target))
	if len(words) == 0 {
		return nil, payloadError(ir.KindCast, "target type name is empty")
	}
	for _, w := range words {
		if !isTypeWord(w) {
			return nil, payloadError(ir.KindCast, "invalid target type name %q", target)
		}
	}
	target = strings.Join(words, " ")
	u, err := makeUnary(ir.KindCast, target, x)
	if err != nil {
		return nil, err
	}
	return &Cast{unary: u, target: target}, nil
}

func isTypeWord(w string) bool {
	for i, r := range w {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// TargetTypeName returns the upper-cased target type.
func (c *Cast) TargetTypeName() string { return c.target }

func (*Cast) Kind() ir.Kind { return ir.KindCast }

func (c *Cast) Accept(v Visitor) { v.VisitCast(c) }

func (c *Cast) payload() any { return c.target }

// AllDifferent holds when no two operands are equal,
// `ALL_DIFFERENT(a, b, ...)`. It is the only variadic kind.
type AllDifferent struct {
	variadic
}

// NewAllDifferent returns `ALL_DIFFERENT(xs...)`. It panics with
// ErrInvalidArity if xs is empty or holds a nil operand. The slice is copied.
func NewAllDifferent(xs ...Expr) *AllDifferent {
	vs, err := makeVariadic(ir.KindAllDifferent, xs)
	if err != nil {
		panic(err)
	}
	return &AllDifferent{variadic: vs}
}

func (*AllDifferent) Kind() ir.Kind { return ir.KindAllDifferent }

func (e *AllDifferent) Accept(v Visitor) { v.VisitAllDifferent(e) }

// GetLatitude extracts the latitude of a point value, `GET_LATITUDE(x)`.
type GetLatitude struct {
	unary
}

func NewGetLatitude(x Expr) *GetLatitude {
	return &GetLatitude{unary: mustUnary(ir.KindGetLatitude, x)}
}

func (*GetLatitude) Kind() ir.Kind { return ir.KindGetLatitude }

func (e *GetLatitude) Accept(v Visitor) { v.VisitGetLatitude(e) }

// GetLongitude extracts the longitude of a point value, `GET_LONGITUDE(x)`.
type GetLongitude struct {
	unary
}

func NewGetLongitude(x Expr) *GetLongitude {
	return &GetLongitude{unary: mustUnary(ir.KindGetLongitude, x)}
}

func (*GetLongitude) Kind() ir.Kind { return ir.KindGetLongitude }

func (e *GetLongitude) Accept(v Visitor) { v.VisitGetLongitude(e) }
