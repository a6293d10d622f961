package queryir

import (
	"fmt"

	"github.com/roach88/pgqlir/internal/ir"
)

// Build constructs a node of the given kind from generic parts and reports
// shape mismatches as errors instead of panicking. It is the entry point for
// producers that choose the kind at run time, such as the parser.
//
// The payload type is fixed per kind and never coerced:
//
//	INTEGER                  int64
//	DECIMAL                  float64 (finite)
//	STRING                   string
//	BOOLEAN                  bool
//	DATE .. TIMESTAMP_WITH_TIMEZONE  the matching ir temporal type
//	VARREF                   ir.QueryVariable (resolved)
//	PROP_ACCESS              PropertyRef (resolved variable, non-empty name)
//	BIND_VARIABLE            int (>= 0)
//	CAST                     string (target type name)
//
// All other kinds take a nil payload. A failed Build returns a *BuildError
// wrapping ErrInvalidArity, ErrInvalidPayloadType or ErrUnresolvedVariable.
func Build(kind ir.Kind, children []Expr, payload any) (Expr, error) {
	if !kind.Valid() {
		return nil, payloadError(kind, "unknown kind %d", uint8(kind))
	}
	if err := checkArity(kind, children); err != nil {
		return nil, err
	}
	if kind.Arity() == ir.ArityLeaf {
		return buildLeaf(kind, payload)
	}
	if kind == ir.KindCast {
		target, ok := payload.(string)
		if !ok {
			return nil, payloadTypeError(kind, "string", payload)
		}
		c, err := makeCast(children[0], target)
		if err != nil {
			return nil, err
		}
		return c, nil
	}
	if payload != nil {
		return nil, payloadTypeError(kind, "nil", payload)
	}

	// Arity is checked above, so the typed constructors cannot panic here.
	switch kind.Arity() {
	case ir.ArityUnary:
		return buildUnary(kind, children[0]), nil
	case ir.ArityBinary:
		return buildBinary(kind, children[0], children[1]), nil
	case ir.ArityVariadic:
		return NewAllDifferent(children...), nil
	}
	return nil, arityError(kind, "no constructor for arity %d", kind.Arity())
}

func checkArity(kind ir.Kind, children []Expr) error {
	want := kind.Arity()
	if want == ir.ArityVariadic {
		if len(children) == 0 {
			return arityError(kind, "want at least 1 child, got 0")
		}
	} else if len(children) != int(want) {
		return arityError(kind, "want %d children, got %d", want, len(children))
	}
	for i, c := range children {
		if c == nil {
			return arityError(kind, "child %d is nil", i)
		}
	}
	return nil
}

func payloadTypeError(kind ir.Kind, want string, got any) *BuildError {
	return payloadError(kind, "want %s payload, got %T", want, got)
}

// buildLeaf converts construction panics of the typed constructors into
// errors after the payload type has been checked.
func buildLeaf(kind ir.Kind, payload any) (e Expr, err error) {
	defer func() {
		if r := recover(); r != nil {
			be, ok := r.(*BuildError)
			if !ok {
				panic(r)
			}
			e, err = nil, be
		}
	}()

	switch kind {
	case ir.KindInteger:
		if v, ok := payload.(int64); ok {
			return NewConstInteger(v), nil
		}
		return nil, payloadTypeError(kind, "int64", payload)
	case ir.KindDecimal:
		if v, ok := payload.(float64); ok {
			return NewConstDecimal(v), nil
		}
		return nil, payloadTypeError(kind, "float64", payload)
	case ir.KindString:
		if v, ok := payload.(string); ok {
			return NewConstString(v), nil
		}
		return nil, payloadTypeError(kind, "string", payload)
	case ir.KindBoolean:
		if v, ok := payload.(bool); ok {
			return NewConstBoolean(v), nil
		}
		return nil, payloadTypeError(kind, "bool", payload)
	case ir.KindDate:
		if v, ok := payload.(ir.Date); ok {
			return NewConstDate(v), nil
		}
		return nil, payloadTypeError(kind, "ir.Date", payload)
	case ir.KindTime:
		if v, ok := payload.(ir.Time); ok {
			return NewConstTime(v), nil
		}
		return nil, payloadTypeError(kind, "ir.Time", payload)
	case ir.KindTimestamp:
		if v, ok := payload.(ir.Timestamp); ok {
			return NewConstTimestamp(v), nil
		}
		return nil, payloadTypeError(kind, "ir.Timestamp", payload)
	case ir.KindTimeWithTimezone:
		if v, ok := payload.(ir.TimeWithZone); ok {
			return NewConstTimeWithTimezone(v), nil
		}
		return nil, payloadTypeError(kind, "ir.TimeWithZone", payload)
	case ir.KindTimestampWithTimezone:
		if v, ok := payload.(ir.TimestampWithZone); ok {
			return NewConstTimestampWithTimezone(v), nil
		}
		return nil, payloadTypeError(kind, "ir.TimestampWithZone", payload)
	case ir.KindNull:
		if payload != nil {
			return nil, payloadTypeError(kind, "nil", payload)
		}
		return NewConstNull(), nil
	case ir.KindVarRef:
		if v, ok := payload.(ir.QueryVariable); ok {
			return NewVarRef(v), nil
		}
		return nil, payloadTypeError(kind, "ir.QueryVariable", payload)
	case ir.KindBindVariable:
		if v, ok := payload.(int); ok {
			return NewBindVariable(v), nil
		}
		return nil, payloadTypeError(kind, "int", payload)
	case ir.KindPropAccess:
		if v, ok := payload.(PropertyRef); ok {
			return NewPropertyAccess(v.Var, v.Name), nil
		}
		return nil, payloadTypeError(kind, "queryir.PropertyRef", payload)
	case ir.KindStar:
		if payload != nil {
			return nil, payloadTypeError(kind, "nil", payload)
		}
		return NewStar(), nil
	}
	return nil, arityError(kind, "kind is not a leaf")
}

func buildUnary(kind ir.Kind, x Expr) Expr {
	switch kind {
	case ir.KindUMin:
		return NewUMin(x)
	case ir.KindNot:
		return NewNot(x)
	case ir.KindAggrCount:
		return NewAggrCount(x)
	case ir.KindAggrMin:
		return NewAggrMin(x)
	case ir.KindAggrMax:
		return NewAggrMax(x)
	case ir.KindAggrSum:
		return NewAggrSum(x)
	case ir.KindAggrAvg:
		return NewAggrAvg(x)
	case ir.KindID:
		return NewID(x)
	case ir.KindVertexLabels:
		return NewVertexLabels(x)
	case ir.KindInDegree:
		return NewInDegree(x)
	case ir.KindOutDegree:
		return NewOutDegree(x)
	case ir.KindEdgeLabel:
		return NewEdgeLabel(x)
	case ir.KindGetLatitude:
		return NewGetLatitude(x)
	case ir.KindGetLongitude:
		return NewGetLongitude(x)
	}
	panic(fmt.Sprintf("queryir: %s is not a unary kind", kind))
}

func buildBinary(kind ir.Kind, x, y Expr) Expr {
	switch kind {
	case ir.KindSub:
		return NewSub(x, y)
	case ir.KindAdd:
		return NewAdd(x, y)
	case ir.KindMul:
		return NewMul(x, y)
	case ir.KindDiv:
		return NewDiv(x, y)
	case ir.KindMod:
		return NewMod(x, y)
	case ir.KindAnd:
		return NewAnd(x, y)
	case ir.KindOr:
		return NewOr(x, y)
	case ir.KindEqual:
		return NewEqual(x, y)
	case ir.KindNotEqual:
		return NewNotEqual(x, y)
	case ir.KindGreater:
		return NewGreater(x, y)
	case ir.KindGreaterEqual:
		return NewGreaterEqual(x, y)
	case ir.KindLess:
		return NewLess(x, y)
	case ir.KindLessEqual:
		return NewLessEqual(x, y)
	case ir.KindRegex:
		return NewRegex(x, y)
	case ir.KindHasProp:
		return NewHasProp(x, y)
	case ir.KindHasLabel:
		return NewHasLabel(x, y)
	}
	panic(fmt.Sprintf("queryir: %s is not a binary kind", kind))
}
