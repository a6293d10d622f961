package pgql

import (
	"strconv"
	"strings"

	"github.com/roach88/pgqlir/internal/queryir"
)

// Print renders e in canonical PGQL syntax. Every binary operator is
// parenthesized, so the output does not depend on operator precedence, and
// ParseExpr of the output yields a tree equal to e as long as e's bind
// parameters are numbered 0, 1, 2, ... in printing order.
//
// Print never fails for a tree built through package queryir.
func Print(e queryir.Expr) string {
	if e == nil {
		return ""
	}
	p := &printer{}
	e.Accept(p)
	return p.buf.String()
}

// printer is a queryir.Visitor writing into buf. It recurses explicitly.
type printer struct {
	buf strings.Builder
}

var _ queryir.Visitor = (*printer)(nil)

func (p *printer) print(e queryir.Expr) { e.Accept(p) }

func (p *printer) infix(x queryir.Expr, op string, y queryir.Expr) {
	p.buf.WriteByte('(')
	p.print(x)
	p.buf.WriteString(" ")
	p.buf.WriteString(op)
	p.buf.WriteString(" ")
	p.print(y)
	p.buf.WriteByte(')')
}

func (p *printer) prefix(op string, x queryir.Expr) {
	p.buf.WriteString(op)
	p.buf.WriteByte('(')
	p.print(x)
	p.buf.WriteByte(')')
}

func (p *printer) call(name string, args ...queryir.Expr) {
	p.buf.WriteString(name)
	p.buf.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.print(a)
	}
	p.buf.WriteByte(')')
}

// method writes `recv.name(args)`. Receivers that start with a sign are
// wrapped in parentheses, otherwise the call would bind to their operand.
func (p *printer) method(recv queryir.Expr, name string, args ...queryir.Expr) {
	if needsParens(recv) {
		p.buf.WriteByte('(')
		p.print(recv)
		p.buf.WriteByte(')')
	} else {
		p.print(recv)
	}
	p.buf.WriteByte('.')
	p.call(name, args...)
}

func needsParens(e queryir.Expr) bool {
	switch n := e.(type) {
	case *queryir.UMin, *queryir.Not:
		return true
	case *queryir.ConstInteger:
		return n.Value() < 0
	case *queryir.ConstDecimal:
		return strings.HasPrefix(formatDecimal(n.Value()), "-")
	}
	return false
}

// formatDecimal returns the shortest representation that parses back to v
// and always reads as a decimal: it contains a '.' or an exponent.
func formatDecimal(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func (p *printer) typed(keyword, value string) {
	p.buf.WriteString(keyword)
	p.buf.WriteByte(' ')
	p.buf.WriteString(QuoteString(value))
}

func (p *printer) VisitConstInteger(e *queryir.ConstInteger) {
	p.buf.WriteString(strconv.FormatInt(e.Value(), 10))
}

func (p *printer) VisitConstDecimal(e *queryir.ConstDecimal) {
	p.buf.WriteString(formatDecimal(e.Value()))
}

func (p *printer) VisitConstString(e *queryir.ConstString) {
	p.buf.WriteString(QuoteString(e.Value()))
}

func (p *printer) VisitConstBoolean(e *queryir.ConstBoolean) {
	p.buf.WriteString(strconv.FormatBool(e.Value()))
}

func (p *printer) VisitConstDate(e *queryir.ConstDate) { p.typed("DATE", e.Value().String()) }
func (p *printer) VisitConstTime(e *queryir.ConstTime) { p.typed("TIME", e.Value().String()) }

func (p *printer) VisitConstTimestamp(e *queryir.ConstTimestamp) {
	p.typed("TIMESTAMP", e.Value().String())
}

// Zoned literals share the keyword of their local counterpart; the offset
// suffix tells them apart.

func (p *printer) VisitConstTimeWithTimezone(e *queryir.ConstTimeWithTimezone) {
	p.typed("TIME", e.Value().String())
}

func (p *printer) VisitConstTimestampWithTimezone(e *queryir.ConstTimestampWithTimezone) {
	p.typed("TIMESTAMP", e.Value().String())
}

func (p *printer) VisitConstNull(*queryir.ConstNull) { p.buf.WriteString("NULL") }

func (p *printer) VisitSub(e *queryir.Sub)   { p.infix(e.X(), "-", e.Y()) }
func (p *printer) VisitAdd(e *queryir.Add)   { p.infix(e.X(), "+", e.Y()) }
func (p *printer) VisitMul(e *queryir.Mul)   { p.infix(e.X(), "*", e.Y()) }
func (p *printer) VisitDiv(e *queryir.Div)   { p.infix(e.X(), "/", e.Y()) }
func (p *printer) VisitMod(e *queryir.Mod)   { p.infix(e.X(), "%", e.Y()) }
func (p *printer) VisitUMin(e *queryir.UMin) { p.prefix("-", e.X()) }

func (p *printer) VisitAnd(e *queryir.And) { p.infix(e.X(), "AND", e.Y()) }
func (p *printer) VisitOr(e *queryir.Or)   { p.infix(e.X(), "OR", e.Y()) }
func (p *printer) VisitNot(e *queryir.Not) { p.prefix("!", e.X()) }

func (p *printer) VisitEqual(e *queryir.Equal)               { p.infix(e.X(), "=", e.Y()) }
func (p *printer) VisitNotEqual(e *queryir.NotEqual)         { p.infix(e.X(), "!=", e.Y()) }
func (p *printer) VisitGreater(e *queryir.Greater)           { p.infix(e.X(), ">", e.Y()) }
func (p *printer) VisitGreaterEqual(e *queryir.GreaterEqual) { p.infix(e.X(), ">=", e.Y()) }
func (p *printer) VisitLess(e *queryir.Less)                 { p.infix(e.X(), "<", e.Y()) }
func (p *printer) VisitLessEqual(e *queryir.LessEqual)       { p.infix(e.X(), "<=", e.Y()) }

func (p *printer) VisitAggrCount(e *queryir.AggrCount) { p.call("COUNT", e.X()) }
func (p *printer) VisitAggrMin(e *queryir.AggrMin)     { p.call("MIN", e.X()) }
func (p *printer) VisitAggrMax(e *queryir.AggrMax)     { p.call("MAX", e.X()) }
func (p *printer) VisitAggrSum(e *queryir.AggrSum)     { p.call("SUM", e.X()) }
func (p *printer) VisitAggrAvg(e *queryir.AggrAvg)     { p.call("AVG", e.X()) }

func (p *printer) VisitVarRef(e *queryir.VarRef) {
	p.buf.WriteString(QuoteIdentifier(e.Variable().Name))
}

func (p *printer) VisitBindVariable(*queryir.BindVariable) { p.buf.WriteByte('?') }
func (p *printer) VisitStar(*queryir.Star)                 { p.buf.WriteByte('*') }

func (p *printer) VisitPropertyAccess(e *queryir.PropertyAccess) {
	p.buf.WriteString(QuoteIdentifier(e.Variable().Name))
	p.buf.WriteByte('.')
	p.buf.WriteString(QuoteIdentifier(e.PropertyName()))
}

func (p *printer) VisitRegex(e *queryir.Regex) { p.infix(e.X(), "=~", e.Y()) }

func (p *printer) VisitID(e *queryir.ID)                     { p.method(e.X(), "id") }
func (p *printer) VisitHasProp(e *queryir.HasProp)           { p.method(e.X(), "has", e.Y()) }
func (p *printer) VisitHasLabel(e *queryir.HasLabel)         { p.method(e.X(), "hasLabel", e.Y()) }
func (p *printer) VisitVertexLabels(e *queryir.VertexLabels) { p.method(e.X(), "labels") }
func (p *printer) VisitInDegree(e *queryir.InDegree)         { p.method(e.X(), "indegree") }
func (p *printer) VisitOutDegree(e *queryir.OutDegree)       { p.method(e.X(), "outdegree") }
func (p *printer) VisitEdgeLabel(e *queryir.EdgeLabel)       { p.method(e.X(), "label") }

func (p *printer) VisitCast(e *queryir.Cast) {
	p.buf.WriteString("CAST(")
	p.print(e.X())
	p.buf.WriteString(" AS ")
	p.buf.WriteString(e.TargetTypeName())
	p.buf.WriteByte(')')
}

func (p *printer) VisitAllDifferent(e *queryir.AllDifferent) {
	p.call("ALL_DIFFERENT", e.Children()...)
}

func (p *printer) VisitGetLatitude(e *queryir.GetLatitude)   { p.call("GET_LATITUDE", e.X()) }
func (p *printer) VisitGetLongitude(e *queryir.GetLongitude) { p.call("GET_LONGITUDE", e.X()) }
