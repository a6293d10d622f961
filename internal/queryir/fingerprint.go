package queryir

import (
	"fmt"
	"strconv"

	"github.com/roach88/pgqlir/internal/ir"
)

// Fingerprint returns a content hash of e that is stable across processes
// and releases: SHA-256 over the RFC 8785 canonical JSON form of the tree,
// domain-separated with ir.DomainExpression.
//
// Unlike Hash, which is only meaningful within one process, a fingerprint
// can be persisted and compared later.
//
// Fingerprints identify trees modulo Unicode normalization: string payloads,
// variable and property names are NFC normalized before hashing, so trees
// that differ only in the composition of their text (precomposed "\u00e9"
// versus "e\u0301") share a fingerprint while DeepEqual and Hash tell them
// apart.
func Fingerprint(e Expr) (string, error) {
	if e == nil {
		return "", fmt.Errorf("fingerprint: nil expression")
	}
	return ir.ContentHash(ir.DomainExpression, toDocument(e))
}

// toDocument converts e to {"kind", "value"?, "children"} objects.
// Decimals are encoded as their shortest round-tripping decimal string since
// canonical JSON carries no floats.
func toDocument(e Expr) ir.IRValue {
	children := e.Children()
	docs := make(ir.IRArray, len(children))
	for i, c := range children {
		docs[i] = toDocument(c)
	}
	obj := ir.IRObject{
		"kind":     ir.IRString(e.Kind().String()),
		"children": docs,
	}
	if v := payloadDocument(e); v != nil {
		obj["value"] = v
	}
	return obj
}

func payloadDocument(e Expr) ir.IRValue {
	switch n := e.(type) {
	case *ConstInteger:
		return ir.IRInt(n.Value())
	case *ConstDecimal:
		return ir.IRString(strconv.FormatFloat(n.Value(), 'g', -1, 64))
	case *ConstString:
		return ir.IRString(n.Value())
	case *ConstBoolean:
		return ir.IRBool(n.Value())
	case *ConstDate:
		return ir.IRString(n.Value().String())
	case *ConstTime:
		return ir.IRString(n.Value().String())
	case *ConstTimestamp:
		return ir.IRString(n.Value().String())
	case *ConstTimeWithTimezone:
		return ir.IRString(n.Value().String())
	case *ConstTimestampWithTimezone:
		return ir.IRString(n.Value().String())
	case *VarRef:
		return variableDocument(n.Variable())
	case *BindVariable:
		return ir.IRInt(n.ParameterIndex())
	case *PropertyAccess:
		return ir.IRObject{
			"var":      variableDocument(n.Variable()),
			"property": ir.IRString(n.PropertyName()),
		}
	case *Cast:
		return ir.IRString(n.TargetTypeName())
	}
	return nil
}

func variableDocument(v ir.QueryVariable) ir.IRValue {
	return ir.IRObject{
		"name": ir.IRString(v.Name),
		"type": ir.IRString(v.Type.String()),
	}
}
