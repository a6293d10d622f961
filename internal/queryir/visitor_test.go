package queryir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
	"github.com/roach88/pgqlir/internal/testutil"
)

// visit is one recorded handler invocation.
type visit struct {
	handler ir.Kind
	node    queryir.Expr
}

// recorder notes which handler ran for which node. Each handler records the
// kind it is responsible for, not the kind reported by the node.
type recorder struct {
	visits []visit
}

var _ queryir.Visitor = (*recorder)(nil)

func (r *recorder) record(k ir.Kind, e queryir.Expr) {
	r.visits = append(r.visits, visit{handler: k, node: e})
}

func (r *recorder) VisitConstInteger(e *queryir.ConstInteger)                             { r.record(ir.KindInteger, e) }
func (r *recorder) VisitConstDecimal(e *queryir.ConstDecimal)                             { r.record(ir.KindDecimal, e) }
func (r *recorder) VisitConstString(e *queryir.ConstString)                               { r.record(ir.KindString, e) }
func (r *recorder) VisitConstBoolean(e *queryir.ConstBoolean)                             { r.record(ir.KindBoolean, e) }
func (r *recorder) VisitConstDate(e *queryir.ConstDate)                                   { r.record(ir.KindDate, e) }
func (r *recorder) VisitConstTime(e *queryir.ConstTime)                                   { r.record(ir.KindTime, e) }
func (r *recorder) VisitConstTimestamp(e *queryir.ConstTimestamp)                         { r.record(ir.KindTimestamp, e) }
func (r *recorder) VisitConstTimeWithTimezone(e *queryir.ConstTimeWithTimezone)           { r.record(ir.KindTimeWithTimezone, e) }
func (r *recorder) VisitConstTimestampWithTimezone(e *queryir.ConstTimestampWithTimezone) { r.record(ir.KindTimestampWithTimezone, e) }
func (r *recorder) VisitConstNull(e *queryir.ConstNull)                                   { r.record(ir.KindNull, e) }
func (r *recorder) VisitSub(e *queryir.Sub)                                               { r.record(ir.KindSub, e) }
func (r *recorder) VisitAdd(e *queryir.Add)                                               { r.record(ir.KindAdd, e) }
func (r *recorder) VisitMul(e *queryir.Mul)                                               { r.record(ir.KindMul, e) }
func (r *recorder) VisitDiv(e *queryir.Div)                                               { r.record(ir.KindDiv, e) }
func (r *recorder) VisitMod(e *queryir.Mod)                                               { r.record(ir.KindMod, e) }
func (r *recorder) VisitUMin(e *queryir.UMin)                                             { r.record(ir.KindUMin, e) }
func (r *recorder) VisitAnd(e *queryir.And)                                               { r.record(ir.KindAnd, e) }
func (r *recorder) VisitOr(e *queryir.Or)                                                 { r.record(ir.KindOr, e) }
func (r *recorder) VisitNot(e *queryir.Not)                                               { r.record(ir.KindNot, e) }
func (r *recorder) VisitEqual(e *queryir.Equal)                                           { r.record(ir.KindEqual, e) }
func (r *recorder) VisitNotEqual(e *queryir.NotEqual)                                     { r.record(ir.KindNotEqual, e) }
func (r *recorder) VisitGreater(e *queryir.Greater)                                       { r.record(ir.KindGreater, e) }
func (r *recorder) VisitGreaterEqual(e *queryir.GreaterEqual)                             { r.record(ir.KindGreaterEqual, e) }
func (r *recorder) VisitLess(e *queryir.Less)                                             { r.record(ir.KindLess, e) }
func (r *recorder) VisitLessEqual(e *queryir.LessEqual)                                   { r.record(ir.KindLessEqual, e) }
func (r *recorder) VisitAggrCount(e *queryir.AggrCount)                                   { r.record(ir.KindAggrCount, e) }
func (r *recorder) VisitAggrMin(e *queryir.AggrMin)                                       { r.record(ir.KindAggrMin, e) }
func (r *recorder) VisitAggrMax(e *queryir.AggrMax)                                       { r.record(ir.KindAggrMax, e) }
func (r *recorder) VisitAggrSum(e *queryir.AggrSum)                                       { r.record(ir.KindAggrSum, e) }
func (r *recorder) VisitAggrAvg(e *queryir.AggrAvg)                                       { r.record(ir.KindAggrAvg, e) }
func (r *recorder) VisitVarRef(e *queryir.VarRef)                                         { r.record(ir.KindVarRef, e) }
func (r *recorder) VisitBindVariable(e *queryir.BindVariable)                             { r.record(ir.KindBindVariable, e) }
func (r *recorder) VisitStar(e *queryir.Star)                                             { r.record(ir.KindStar, e) }
func (r *recorder) VisitRegex(e *queryir.Regex)                                           { r.record(ir.KindRegex, e) }
func (r *recorder) VisitID(e *queryir.ID)                                                 { r.record(ir.KindID, e) }
func (r *recorder) VisitPropertyAccess(e *queryir.PropertyAccess)                         { r.record(ir.KindPropAccess, e) }
func (r *recorder) VisitHasProp(e *queryir.HasProp)                                       { r.record(ir.KindHasProp, e) }
func (r *recorder) VisitHasLabel(e *queryir.HasLabel)                                     { r.record(ir.KindHasLabel, e) }
func (r *recorder) VisitVertexLabels(e *queryir.VertexLabels)                             { r.record(ir.KindVertexLabels, e) }
func (r *recorder) VisitInDegree(e *queryir.InDegree)                                     { r.record(ir.KindInDegree, e) }
func (r *recorder) VisitOutDegree(e *queryir.OutDegree)                                   { r.record(ir.KindOutDegree, e) }
func (r *recorder) VisitEdgeLabel(e *queryir.EdgeLabel)                                   { r.record(ir.KindEdgeLabel, e) }
func (r *recorder) VisitCast(e *queryir.Cast)                                             { r.record(ir.KindCast, e) }
func (r *recorder) VisitAllDifferent(e *queryir.AllDifferent)                             { r.record(ir.KindAllDifferent, e) }
func (r *recorder) VisitGetLatitude(e *queryir.GetLatitude)                               { r.record(ir.KindGetLatitude, e) }
func (r *recorder) VisitGetLongitude(e *queryir.GetLongitude)                             { r.record(ir.KindGetLongitude, e) }

func TestAccept_DispatchesExactlyOnce(t *testing.T) {
	exprs := testutil.OnePerKind()
	kinds := ir.Kinds()
	require.Len(t, exprs, len(kinds), "fixture must cover every kind")

	r := &recorder{}
	for _, e := range exprs {
		e.Accept(r)
	}

	require.Len(t, r.visits, len(exprs), "Accept must not recurse")
	for i, v := range r.visits {
		assert.Equal(t, kinds[i], v.handler, "expression %d", i)
		assert.Equal(t, kinds[i], v.node.Kind())
		assert.Same(t, exprs[i], v.node, "handler must receive the node itself")
	}
}

func TestWalk_PreOrder(t *testing.T) {
	// (1 + (2 * 3))
	e := queryir.NewAdd(
		queryir.NewConstInteger(1),
		queryir.NewMul(queryir.NewConstInteger(2), queryir.NewConstInteger(3)),
	)

	r := &recorder{}
	queryir.Walk(r, e)

	var got []ir.Kind
	for _, v := range r.visits {
		got = append(got, v.handler)
	}
	assert.Equal(t, []ir.Kind{
		ir.KindAdd, ir.KindInteger, ir.KindMul, ir.KindInteger, ir.KindInteger,
	}, got)
}

func TestWalk_EveryKind(t *testing.T) {
	r := &recorder{}
	for _, e := range testutil.OnePerKind() {
		queryir.Walk(r, e)
	}

	seen := map[ir.Kind]int{}
	for _, v := range r.visits {
		assert.Equal(t, v.handler, v.node.Kind())
		seen[v.handler]++
	}
	for _, k := range ir.Kinds() {
		assert.Positive(t, seen[k], "kind %s never visited", k)
	}
}

func TestInspect_SkipsChildren(t *testing.T) {
	e := testutil.Sample()

	var kinds []ir.Kind
	queryir.Inspect(e, func(n queryir.Expr) bool {
		kinds = append(kinds, n.Kind())
		return n.Kind() != ir.KindRegex
	})

	assert.Equal(t, []ir.Kind{
		ir.KindAnd, ir.KindGreater, ir.KindPropAccess, ir.KindInteger, ir.KindRegex,
	}, kinds)
}

func TestCountAndDepth(t *testing.T) {
	e := testutil.Sample()
	assert.Equal(t, 7, queryir.Count(e))
	assert.Equal(t, 3, queryir.Depth(e))
	assert.Equal(t, 1, queryir.Depth(queryir.NewStar()))
	assert.Equal(t, 0, queryir.Depth(nil))
}
