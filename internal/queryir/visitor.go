package queryir

// Visitor has one method per expression kind. Expr.Accept calls exactly the
// method matching the node and passes the node itself; it never descends into
// children. A visitor that wants a full traversal recurses on its own, which
// lets it choose pre-order, post-order or partial walks.
//
// Adding a kind adds a method here, so every implementation stops compiling
// until it handles the new kind.
type Visitor interface {
	// Constants.
	VisitConstInteger(e *ConstInteger)
	VisitConstDecimal(e *ConstDecimal)
	VisitConstString(e *ConstString)
	VisitConstBoolean(e *ConstBoolean)
	VisitConstDate(e *ConstDate)
	VisitConstTime(e *ConstTime)
	VisitConstTimestamp(e *ConstTimestamp)
	VisitConstTimeWithTimezone(e *ConstTimeWithTimezone)
	VisitConstTimestampWithTimezone(e *ConstTimestampWithTimezone)
	VisitConstNull(e *ConstNull)

	// Arithmetic.
	VisitSub(e *Sub)
	VisitAdd(e *Add)
	VisitMul(e *Mul)
	VisitDiv(e *Div)
	VisitMod(e *Mod)
	VisitUMin(e *UMin)

	// Logical.
	VisitAnd(e *And)
	VisitOr(e *Or)
	VisitNot(e *Not)

	// Relational.
	VisitEqual(e *Equal)
	VisitNotEqual(e *NotEqual)
	VisitGreater(e *Greater)
	VisitGreaterEqual(e *GreaterEqual)
	VisitLess(e *Less)
	VisitLessEqual(e *LessEqual)

	// Aggregates.
	VisitAggrCount(e *AggrCount)
	VisitAggrMin(e *AggrMin)
	VisitAggrMax(e *AggrMax)
	VisitAggrSum(e *AggrSum)
	VisitAggrAvg(e *AggrAvg)

	// References.
	VisitVarRef(e *VarRef)
	VisitBindVariable(e *BindVariable)
	VisitStar(e *Star)
	VisitPropertyAccess(e *PropertyAccess)

	// Built-in functions.
	VisitRegex(e *Regex)
	VisitID(e *ID)
	VisitHasProp(e *HasProp)
	VisitHasLabel(e *HasLabel)
	VisitVertexLabels(e *VertexLabels)
	VisitInDegree(e *InDegree)
	VisitOutDegree(e *OutDegree)
	VisitEdgeLabel(e *EdgeLabel)
	VisitCast(e *Cast)
	VisitAllDifferent(e *AllDifferent)
	VisitGetLatitude(e *GetLatitude)
	VisitGetLongitude(e *GetLongitude)
}
