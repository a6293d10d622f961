package queryir

import "github.com/roach88/pgqlir/internal/ir"

// Arithmetic expressions.

// Sub is a subtraction `x - y`.
type Sub struct {
	pair
}

// NewSub returns a subtraction `x - y`.
func NewSub(x, y Expr) *Sub {
	return &Sub{pair: mustBinary(ir.KindSub, x, y)}
}

func (*Sub) Kind() ir.Kind { return ir.KindSub }

func (e *Sub) Accept(v Visitor) { v.VisitSub(e) }

// Add is an addition `x + y`.
type Add struct {
	pair
}

// NewAdd returns an addition `x + y`.
func NewAdd(x, y Expr) *Add {
	return &Add{pair: mustBinary(ir.KindAdd, x, y)}
}

func (*Add) Kind() ir.Kind { return ir.KindAdd }

func (e *Add) Accept(v Visitor) { v.VisitAdd(e) }

// Mul is a multiplication `x * y`.
type Mul struct {
	pair
}

// NewMul returns a multiplication `x * y`.
func NewMul(x, y Expr) *Mul {
	return &Mul{pair: mustBinary(ir.KindMul, x, y)}
}

func (*Mul) Kind() ir.Kind { return ir.KindMul }

func (e *Mul) Accept(v Visitor) { v.VisitMul(e) }

// Div is a division `x / y`.
type Div struct {
	pair
}

// NewDiv returns a division `x / y`.
func NewDiv(x, y Expr) *Div {
	return &Div{pair: mustBinary(ir.KindDiv, x, y)}
}

func (*Div) Kind() ir.Kind { return ir.KindDiv }

func (e *Div) Accept(v Visitor) { v.VisitDiv(e) }

// Mod is a remainder `x % y`.
type Mod struct {
	pair
}

// NewMod returns a remainder `x % y`.
func NewMod(x, y Expr) *Mod {
	return &Mod{pair: mustBinary(ir.KindMod, x, y)}
}

func (*Mod) Kind() ir.Kind { return ir.KindMod }

func (e *Mod) Accept(v Visitor) { v.VisitMod(e) }

// UMin is an arithmetic negation `-x`.
type UMin struct {
	unary
}

// NewUMin returns an arithmetic negation `-x`.
func NewUMin(x Expr) *UMin {
	return &UMin{unary: mustUnary(ir.KindUMin, x)}
}

func (*UMin) Kind() ir.Kind { return ir.KindUMin }

func (e *UMin) Accept(v Visitor) { v.VisitUMin(e) }

// Logical expressions.

// And is a conjunction `x AND y`.
type And struct {
	pair
}

// NewAnd returns a conjunction `x AND y`.
func NewAnd(x, y Expr) *And {
	return &And{pair: mustBinary(ir.KindAnd, x, y)}
}

func (*And) Kind() ir.Kind { return ir.KindAnd }

func (e *And) Accept(v Visitor) { v.VisitAnd(e) }

// Or is a disjunction `x OR y`.
type Or struct {
	pair
}

// NewOr returns a disjunction `x OR y`.
func NewOr(x, y Expr) *Or {
	return &Or{pair: mustBinary(ir.KindOr, x, y)}
}

func (*Or) Kind() ir.Kind { return ir.KindOr }

func (e *Or) Accept(v Visitor) { v.VisitOr(e) }

// Not is a logical negation `NOT x`.
type Not struct {
	unary
}

// NewNot returns a logical negation `NOT x`.
func NewNot(x Expr) *Not {
	return &Not{unary: mustUnary(ir.KindNot, x)}
}

func (*Not) Kind() ir.Kind { return ir.KindNot }

func (e *Not) Accept(v Visitor) { v.VisitNot(e) }

// Relational expressions.

// Equal is the comparison `x = y`.
type Equal struct {
	pair
}

// NewEqual returns the comparison `x = y`.
func NewEqual(x, y Expr) *Equal {
	return &Equal{pair: mustBinary(ir.KindEqual, x, y)}
}

func (*Equal) Kind() ir.Kind { return ir.KindEqual }

func (e *Equal) Accept(v Visitor) { v.VisitEqual(e) }

// NotEqual is the comparison `x != y`.
type NotEqual struct {
	pair
}

// NewNotEqual returns the comparison `x != y`.
func NewNotEqual(x, y Expr) *NotEqual {
	return &NotEqual{pair: mustBinary(ir.KindNotEqual, x, y)}
}

func (*NotEqual) Kind() ir.Kind { return ir.KindNotEqual }

func (e *NotEqual) Accept(v Visitor) { v.VisitNotEqual(e) }

// Greater is the comparison `x > y`.
type Greater struct {
	pair
}

// NewGreater returns the comparison `x > y`.
func NewGreater(x, y Expr) *Greater {
	return &Greater{pair: mustBinary(ir.KindGreater, x, y)}
}

func (*Greater) Kind() ir.Kind { return ir.KindGreater }

func (e *Greater) Accept(v Visitor) { v.VisitGreater(e) }

// GreaterEqual is the comparison `x >= y`.
type GreaterEqual struct {
	pair
}

// NewGreaterEqual returns the comparison `x >= y`.
func NewGreaterEqual(x, y Expr) *GreaterEqual {
	return &GreaterEqual{pair: mustBinary(ir.KindGreaterEqual, x, y)}
}

func (*GreaterEqual) Kind() ir.Kind { return ir.KindGreaterEqual }

func (e *GreaterEqual) Accept(v Visitor) { v.VisitGreaterEqual(e) }

// Less is the comparison `x < y`.
type Less struct {
	pair
}

// NewLess returns the comparison `x < y`.
func NewLess(x, y Expr) *Less {
	return &Less{pair: mustBinary(ir.KindLess, x, y)}
}

func (*Less) Kind() ir.Kind { return ir.KindLess }

func (e *Less) Accept(v Visitor) { v.VisitLess(e) }

// LessEqual is the comparison `x <= y`.
type LessEqual struct {
	pair
}

// NewLessEqual returns the comparison `x <= y`.
func NewLessEqual(x, y Expr) *LessEqual {
	return &LessEqual{pair: mustBinary(ir.KindLessEqual, x, y)}
}

func (*LessEqual) Kind() ir.Kind { return ir.KindLessEqual }

func (e *LessEqual) Accept(v Visitor) { v.VisitLessEqual(e) }

// Aggregates. The operand may be Star only under COUNT; Validate reports
// other placements.

// AggrCount is the aggregate COUNT(x).
type AggrCount struct {
	unary
}

// NewAggrCount returns the aggregate COUNT(x).
func NewAggrCount(x Expr) *AggrCount {
	return &AggrCount{unary: mustUnary(ir.KindAggrCount, x)}
}

func (*AggrCount) Kind() ir.Kind { return ir.KindAggrCount }

func (e *AggrCount) Accept(v Visitor) { v.VisitAggrCount(e) }

// AggrMin is the aggregate MIN(x).
type AggrMin struct {
	unary
}

// NewAggrMin returns the aggregate MIN(x).
func NewAggrMin(x Expr) *AggrMin {
	return &AggrMin{unary: mustUnary(ir.KindAggrMin, x)}
}

func (*AggrMin) Kind() ir.Kind { return ir.KindAggrMin }

func (e *AggrMin) Accept(v Visitor) { v.VisitAggrMin(e) }

// AggrMax is the aggregate MAX(x).
type AggrMax struct {
	unary
}

// NewAggrMax returns the aggregate MAX(x).
func NewAggrMax(x Expr) *AggrMax {
	return &AggrMax{unary: mustUnary(ir.KindAggrMax, x)}
}

func (*AggrMax) Kind() ir.Kind { return ir.KindAggrMax }

func (e *AggrMax) Accept(v Visitor) { v.VisitAggrMax(e) }

// AggrSum is the aggregate SUM(x).
type AggrSum struct {
	unary
}

// NewAggrSum returns the aggregate SUM(x).
func NewAggrSum(x Expr) *AggrSum {
	return &AggrSum{unary: mustUnary(ir.KindAggrSum, x)}
}

func (*AggrSum) Kind() ir.Kind { return ir.KindAggrSum }

func (e *AggrSum) Accept(v Visitor) { v.VisitAggrSum(e) }

// AggrAvg is the aggregate AVG(x).
type AggrAvg struct {
	unary
}

// NewAggrAvg returns the aggregate AVG(x).
func NewAggrAvg(x Expr) *AggrAvg {
	return &AggrAvg{unary: mustUnary(ir.KindAggrAvg, x)}
}

func (*AggrAvg) Kind() ir.Kind { return ir.KindAggrAvg }

func (e *AggrAvg) Accept(v Visitor) { v.VisitAggrAvg(e) }
