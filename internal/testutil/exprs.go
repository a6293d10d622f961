// Package testutil holds fixtures shared by the tests of several packages.
package testutil

import (
	"time"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
)

// Variables of the fixture graph pattern
// (n:Person)-[e:knows]->(m:Person), path p, and parameter x.
var (
	N = ir.NewVertex("n")
	M = ir.NewVertex("m")
	E = ir.NewEdge("e")
	P = ir.NewPath("p")
	X = ir.NewScalar("x")
)

// Vars returns the fixture variables keyed by name.
func Vars() map[string]ir.QueryVariable {
	return map[string]ir.QueryVariable{
		N.Name: N,
		M.Name: M,
		E.Name: E,
		P.Name: P,
		X.Name: X,
	}
}

// OnePerKind returns one expression per kind, in ir.Kinds order. The root of
// the i-th expression has kind ir.Kinds()[i]; operands are small literals,
// variable references or property accesses.
func OnePerKind() []queryir.Expr {
	age := func() queryir.Expr { return queryir.NewPropertyAccess(N, "age") }
	name := func() queryir.Expr { return queryir.NewPropertyAccess(N, "name") }
	loc := func() queryir.Expr { return queryir.NewPropertyAccess(N, "location") }
	i := func(v int64) queryir.Expr { return queryir.NewConstInteger(v) }
	s := func(v string) queryir.Expr { return queryir.NewConstString(v) }
	b := func(v bool) queryir.Expr { return queryir.NewConstBoolean(v) }
	n := func() queryir.Expr { return queryir.NewVarRef(N) }

	date := ir.Date{Year: 2024, Month: time.February, Day: 29}
	return []queryir.Expr{
		queryir.NewConstInteger(42),
		queryir.NewConstDecimal(3.5),
		queryir.NewConstString("it's"),
		queryir.NewConstBoolean(true),
		queryir.NewConstDate(date),
		queryir.NewConstTime(ir.Time{Hour: 13, Minute: 45, Second: 30, Nanosecond: 250_000_000}),
		queryir.NewConstTimestamp(ir.Timestamp{Date: date, Time: ir.Time{Hour: 13, Minute: 45, Second: 30}}),
		queryir.NewConstTimeWithTimezone(ir.TimeWithZone{Time: ir.Time{Hour: 8}, Offset: 2 * 3600}),
		queryir.NewConstTimestampWithTimezone(ir.TimestampWithZone{
			Timestamp: ir.Timestamp{Date: date, Time: ir.Time{Hour: 8}},
			Offset:    -(5*3600 + 30*60),
		}),
		queryir.NewConstNull(),

		queryir.NewSub(age(), i(1)),
		queryir.NewAdd(i(1), i(2)),
		queryir.NewMul(i(2), i(3)),
		queryir.NewDiv(i(10), i(4)),
		queryir.NewMod(i(10), i(3)),
		queryir.NewUMin(age()),

		queryir.NewAnd(b(true), b(false)),
		queryir.NewOr(b(true), b(false)),
		queryir.NewNot(b(true)),

		queryir.NewEqual(name(), s("Alice")),
		queryir.NewNotEqual(n(), queryir.NewVarRef(M)),
		queryir.NewGreater(age(), i(18)),
		queryir.NewGreaterEqual(age(), i(18)),
		queryir.NewLess(age(), i(65)),
		queryir.NewLessEqual(age(), i(65)),

		queryir.NewAggrCount(queryir.NewStar()),
		queryir.NewAggrMin(age()),
		queryir.NewAggrMax(age()),
		queryir.NewAggrSum(age()),
		queryir.NewAggrAvg(age()),

		n(),
		queryir.NewBindVariable(0),
		queryir.NewStar(),

		queryir.NewRegex(name(), s("A.*")),
		queryir.NewID(n()),
		name(),
		queryir.NewHasProp(n(), s("name")),
		queryir.NewHasLabel(n(), s("Person")),
		queryir.NewVertexLabels(n()),
		queryir.NewInDegree(n()),
		queryir.NewOutDegree(n()),
		queryir.NewEdgeLabel(queryir.NewVarRef(E)),
		queryir.NewCast(age(), "STRING"),
		queryir.NewAllDifferent(n(), queryir.NewVarRef(M)),
		queryir.NewGetLatitude(loc()),
		queryir.NewGetLongitude(loc()),
	}
}

// Sample returns `((n.age > 18) AND (n.name =~ 'A.*'))`, a portable filter
// used wherever a test needs one ordinary expression.
func Sample() queryir.Expr {
	return queryir.NewAnd(
		queryir.NewGreater(queryir.NewPropertyAccess(N, "age"), queryir.NewConstInteger(18)),
		queryir.NewRegex(queryir.NewPropertyAccess(N, "name"), queryir.NewConstString("A.*")),
	)
}
