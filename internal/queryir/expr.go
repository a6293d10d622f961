package queryir

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"

	"github.com/roach88/pgqlir/internal/ir"
)

// Expr is a node of an expression tree.
//
// This is a sealed interface - only types in this package implement it.
// Nodes are created by the New* constructors or Build and are immutable
// afterwards, so a tree may be shared by any number of goroutines.
type Expr interface {
	// Kind returns the fixed variant tag of the node.
	Kind() ir.Kind

	// Children returns the direct children in operand order. The slice is a
	// fresh copy; leaves return an empty slice.
	Children() []Expr

	// Hash returns the structural hash computed when the node was built.
	// Structurally equal trees have equal hashes.
	Hash() uint64

	// Accept invokes the Visitor method matching the node's kind.
	// It does not recurse into children.
	Accept(v Visitor)

	// payload returns the node's non-child data in comparable form, or nil.
	payload() any
}

// node is embedded by every expression type.
type node struct {
	hash uint64
}

func (n *node) Hash() uint64 { return n.hash }

func (*node) payload() any { return nil }

// leaf is the shape of nodes without children.
type leaf struct {
	node
}

func (*leaf) Children() []Expr { return []Expr{} }

func makeLeaf(kind ir.Kind, payload any) leaf {
	return leaf{node{hash: hashNode(kind, payload, nil)}}
}

// unary is the shape of nodes with one operand.
type unary struct {
	node
	x Expr
}

// X returns the operand.
func (u *unary) X() Expr { return u.x }

func (u *unary) Children() []Expr { return []Expr{u.x} }

func makeUnary(kind ir.Kind, payload any, x Expr) (unary, error) {
	if x == nil {
		return unary{}, arityError(kind, "operand is nil")
	}
	return unary{node: node{hash: hashNode(kind, payload, []Expr{x})}, x: x}, nil
}

func mustUnary(kind ir.Kind, x Expr) unary {
	u, err := makeUnary(kind, nil, x)
	if err != nil {
		panic(err)
	}
	return u
}

// pair is the shape of nodes with two ordered operands.
type pair struct {
	node
	x, y Expr
}

// X returns the first operand.
func (b *pair) X() Expr { return b.x }

// Y returns the second operand.
func (b *pair) Y() Expr { return b.y }

func (b *pair) Children() []Expr { return []Expr{b.x, b.y} }

func makeBinary(kind ir.Kind, x, y Expr) (pair, error) {
	if x == nil || y == nil {
		return pair{}, arityError(kind, "binary expression requires two non-nil operands")
	}
	return pair{node: node{hash: hashNode(kind, nil, []Expr{x, y})}, x: x, y: y}, nil
}

func mustBinary(kind ir.Kind, x, y Expr) pair {
	b, err := makeBinary(kind, x, y)
	if err != nil {
		panic(err)
	}
	return b
}

// variadic is the shape of nodes with a list of operands.
type variadic struct {
	node
	xs []Expr
}

// Len returns the number of operands.
func (v *variadic) Len() int { return len(v.xs) }

// At returns the i-th operand.
func (v *variadic) At(i int) Expr { return v.xs[i] }

func (v *variadic) Children() []Expr {
	out := make([]Expr, len(v.xs))
	copy(out, v.xs)
	return out
}

func makeVariadic(kind ir.Kind, xs []Expr) (variadic, error) {
	if len(xs) == 0 {
		return variadic{}, arityError(kind, "at least one operand is required")
	}
	owned := make([]Expr, len(xs))
	for i, x := range xs {
		if x == nil {
			return variadic{}, arityError(kind, "operand %d is nil", i)
		}
		owned[i] = x
	}
	return variadic{node: node{hash: hashNode(kind, nil, owned)}, xs: owned}, nil
}

// hashNode combines kind, payload and child hashes. Children already carry
// their own hash, so building a tree hashes each node exactly once.
func hashNode(kind ir.Kind, payload any, children []Expr) uint64 {
	d := xxhash.New()
	var buf [8]byte

	buf[0] = byte(kind)
	d.Write(buf[:1])
	writePayload(d, payload)

	binary.LittleEndian.PutUint64(buf[:], uint64(len(children)))
	d.Write(buf[:])
	for _, c := range children {
		binary.LittleEndian.PutUint64(buf[:], c.Hash())
		d.Write(buf[:])
	}
	return d.Sum64()
}

func writePayload(d *xxhash.Digest, p any) {
	var buf [8]byte
	putInt := func(n int64) {
		binary.LittleEndian.PutUint64(buf[:], uint64(n))
		d.Write(buf[:])
	}
	putString := func(s string) {
		putInt(int64(len(s)))
		d.WriteString(s)
	}

	switch v := p.(type) {
	case nil:
	case int64:
		putInt(v)
	case uint64: // decimal bit pattern
		putInt(int64(v))
	case string:
		putString(v)
	case bool:
		if v {
			putInt(1)
		} else {
			putInt(0)
		}
	case int:
		putInt(int64(v))
	case ir.Date:
		putDate(putInt, v)
	case ir.Time:
		putTime(putInt, v)
	case ir.Timestamp:
		putDate(putInt, v.Date)
		putTime(putInt, v.Time)
	case ir.TimeWithZone:
		putTime(putInt, v.Time)
		putInt(int64(v.Offset))
	case ir.TimestampWithZone:
		putDate(putInt, v.Timestamp.Date)
		putTime(putInt, v.Timestamp.Time)
		putInt(int64(v.Offset))
	case ir.QueryVariable:
		putString(v.Name)
		putInt(int64(v.Type))
	case PropertyRef:
		putString(v.Var.Name)
		putInt(int64(v.Var.Type))
		putString(v.Name)
	default:
		panic("queryir: unhashable payload")
	}
}

func putDate(putInt func(int64), d ir.Date) {
	putInt(int64(d.Year))
	putInt(int64(d.Month))
	putInt(int64(d.Day))
}

func putTime(putInt func(int64), t ir.Time) {
	putInt(int64(t.Hour))
	putInt(int64(t.Minute))
	putInt(int64(t.Second))
	putInt(int64(t.Nanosecond))
}

// decimalBits is the comparable payload of a decimal constant.
func decimalBits(f float64) uint64 {
	return math.Float64bits(f)
}
