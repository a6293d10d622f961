package querysql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
)

// ErrNotLowerable is returned for expressions that have no SQL equivalent
// over the property graph tables.
var ErrNotLowerable = errors.New("cannot be lowered to SQL")

// SQLCompiler lowers expression trees to parameterized SQLite expressions
// over the property graph layout:
//
//	vertices(id TEXT, label TEXT, props JSON)
//	edges(id TEXT, src TEXT, dst TEXT, label TEXT, props JSON)
//
// A vertex or edge variable names a row aliased by the variable name.
// Properties are read from props with json_extract.
//
// CRITICAL: Values are NEVER interpolated. Literals and bind values are
// passed as ? parameters in the order they appear in the SQL text.
type SQLCompiler struct {
	// BindValues holds the values of bind parameters, indexed by
	// ParameterIndex. Must be set before compiling an expression with
	// bind parameters.
	BindValues []any
}

// NewSQLCompiler creates a new SQLCompiler with the given bind values.
func NewSQLCompiler(binds ...any) *SQLCompiler {
	return &SQLCompiler{BindValues: binds}
}

// Compile converts an expression to a SQL fragment.
// Returns (sql, params, error) tuple.
func (c *SQLCompiler) Compile(e queryir.Expr) (string, []any, error) {
	if e == nil {
		return "", nil, fmt.Errorf("cannot compile nil expression")
	}
	f, err := c.fragment(e)
	if err != nil {
		return "", nil, err
	}
	return f.sql, f.params, nil
}

// CompileMatch builds the query selecting every vertex or edge bound to v
// that satisfies filter. A nil filter matches all rows. The filter may only
// reference v and must not contain aggregates.
//
// MANDATORY: The query is ordered by id so results are deterministic.
func (c *SQLCompiler) CompileMatch(v ir.QueryVariable, filter queryir.Expr) (string, []any, error) {
	var columns, table string
	switch v.Type {
	case ir.VarTypeVertex:
		columns, table = "id, label, props", "vertices"
	case ir.VarTypeEdge:
		columns, table = "id, src, dst, label, props", "edges"
	default:
		return "", nil, fmt.Errorf("%s variable %q: %w", v.Type, v.Name, ErrNotLowerable)
	}
	alias := quoteIdent(v.Name)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, col := range strings.Split(columns, ", ") {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(alias + "." + col)
	}
	fmt.Fprintf(&sb, " FROM %s AS %s", table, alias)

	var params []any
	if filter != nil {
		if err := checkFilter(v, filter); err != nil {
			return "", nil, err
		}
		where, whereParams, err := c.Compile(filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		sb.WriteString(" WHERE " + where)
		params = whereParams
	}

	sb.WriteString(" ORDER BY " + alias + ".id ASC COLLATE BINARY")
	return sb.String(), params, nil
}

// checkFilter rejects filters that reference other variables or aggregate.
func checkFilter(v ir.QueryVariable, filter queryir.Expr) error {
	var err error
	queryir.Inspect(filter, func(e queryir.Expr) bool {
		if err != nil {
			return false
		}
		if e.Kind().Category() == ir.CategoryAggregate {
			err = fmt.Errorf("aggregate %s is not allowed in a filter", e.Kind())
			return false
		}
		var ref ir.QueryVariable
		switch n := e.(type) {
		case *queryir.VarRef:
			ref = n.Variable()
		case *queryir.PropertyAccess:
			ref = n.Variable()
		default:
			return true
		}
		if ref != v {
			err = fmt.Errorf("variable %q is not bound by the match on %q", ref.Name, v.Name)
		}
		return true
	})
	return err
}

// frag is a compiled SQL fragment and its parameters, in placeholder order.
type frag struct {
	sql    string
	params []any
}

func (c *SQLCompiler) fragment(e queryir.Expr) (frag, error) {
	l := &lowering{compiler: c}
	e.Accept(l)
	return l.out, l.err
}

// lowering is the Visitor that compiles one node. Children are compiled with
// fresh lowerings through sub, so out always holds the fragment of the node
// passed to Accept.
type lowering struct {
	compiler *SQLCompiler
	out      frag
	err      error
}

var _ queryir.Visitor = (*lowering)(nil)

func (l *lowering) sub(e queryir.Expr) frag {
	if l.err != nil {
		return frag{}
	}
	f, err := l.compiler.fragment(e)
	if err != nil {
		l.err = err
	}
	return f
}

func (l *lowering) fail(kind ir.Kind, format string, args ...any) {
	l.err = fmt.Errorf("%s: %s: %w", kind, fmt.Sprintf(format, args...), ErrNotLowerable)
}

// emit sets the output to format with each %s replaced by the SQL of the
// matching operand. Parameters are concatenated in operand order.
func (l *lowering) emit(format string, operands ...queryir.Expr) {
	args := make([]any, len(operands))
	var params []any
	for i, o := range operands {
		f := l.sub(o)
		args[i] = f.sql
		params = append(params, f.params...)
	}
	if l.err != nil {
		return
	}
	l.out = frag{sql: fmt.Sprintf(format, args...), params: params}
}

func (l *lowering) param(v any) {
	l.out = frag{sql: "?", params: []any{v}}
}

func (l *lowering) raw(sql string) {
	l.out = frag{sql: sql}
}

// variable returns the alias of the row bound to a vertex or edge variable.
func (l *lowering) variable(kind ir.Kind, v ir.QueryVariable) (string, bool) {
	switch v.Type {
	case ir.VarTypeVertex, ir.VarTypeEdge:
		return quoteIdent(v.Name), true
	}
	l.fail(kind, "%s variable %q has no row", v.Type, v.Name)
	return "", false
}

// row returns the alias of the variable operand of a graph function.
func (l *lowering) row(kind ir.Kind, x queryir.Expr, allowed ...ir.VarType) (string, bool) {
	ref, ok := x.(*queryir.VarRef)
	if !ok {
		l.fail(kind, "operand must be a variable, got %s", x.Kind())
		return "", false
	}
	for _, t := range allowed {
		if ref.Variable().Type == t {
			return l.variable(kind, ref.Variable())
		}
	}
	l.fail(kind, "not defined for %s variable %q", ref.Variable().Type, ref.Variable().Name)
	return "", false
}

func (l *lowering) VisitConstInteger(e *queryir.ConstInteger) { l.param(e.Value()) }
func (l *lowering) VisitConstDecimal(e *queryir.ConstDecimal) { l.param(e.Value()) }
func (l *lowering) VisitConstString(e *queryir.ConstString)   { l.param(e.Value()) }
func (l *lowering) VisitConstBoolean(e *queryir.ConstBoolean) { l.param(e.Value()) }

// Temporal values are compared as text, which orders correctly for the
// fixed-width formats.

func (l *lowering) VisitConstDate(e *queryir.ConstDate)           { l.param(e.Value().String()) }
func (l *lowering) VisitConstTime(e *queryir.ConstTime)           { l.param(e.Value().String()) }
func (l *lowering) VisitConstTimestamp(e *queryir.ConstTimestamp) { l.param(e.Value().String()) }

func (l *lowering) VisitConstTimeWithTimezone(e *queryir.ConstTimeWithTimezone) {
	l.param(e.Value().String())
}

func (l *lowering) VisitConstTimestampWithTimezone(e *queryir.ConstTimestampWithTimezone) {
	l.param(e.Value().String())
}

func (l *lowering) VisitConstNull(*queryir.ConstNull) { l.raw("NULL") }

func (l *lowering) VisitSub(e *queryir.Sub)   { l.emit("(%s - %s)", e.X(), e.Y()) }
func (l *lowering) VisitAdd(e *queryir.Add)   { l.emit("(%s + %s)", e.X(), e.Y()) }
func (l *lowering) VisitMul(e *queryir.Mul)   { l.emit("(%s * %s)", e.X(), e.Y()) }
func (l *lowering) VisitDiv(e *queryir.Div)   { l.emit("(%s / %s)", e.X(), e.Y()) }
func (l *lowering) VisitMod(e *queryir.Mod)   { l.emit("(%s %% %s)", e.X(), e.Y()) }
func (l *lowering) VisitUMin(e *queryir.UMin) { l.emit("(-%s)", e.X()) }

func (l *lowering) VisitAnd(e *queryir.And) { l.emit("(%s AND %s)", e.X(), e.Y()) }
func (l *lowering) VisitOr(e *queryir.Or)   { l.emit("(%s OR %s)", e.X(), e.Y()) }
func (l *lowering) VisitNot(e *queryir.Not) { l.emit("(NOT %s)", e.X()) }

func (l *lowering) VisitEqual(e *queryir.Equal)               { l.emit("(%s = %s)", e.X(), e.Y()) }
func (l *lowering) VisitNotEqual(e *queryir.NotEqual)         { l.emit("(%s <> %s)", e.X(), e.Y()) }
func (l *lowering) VisitGreater(e *queryir.Greater)           { l.emit("(%s > %s)", e.X(), e.Y()) }
func (l *lowering) VisitGreaterEqual(e *queryir.GreaterEqual) { l.emit("(%s >= %s)", e.X(), e.Y()) }
func (l *lowering) VisitLess(e *queryir.Less)                 { l.emit("(%s < %s)", e.X(), e.Y()) }
func (l *lowering) VisitLessEqual(e *queryir.LessEqual)       { l.emit("(%s <= %s)", e.X(), e.Y()) }

// aggregate emits fn over the single operand of an aggregate. SQLite has no
// meaning for an aggregate inside another one's argument.
func (l *lowering) aggregate(e queryir.Expr, fn string) {
	x := e.Children()[0]
	nested := false
	queryir.Inspect(x, func(n queryir.Expr) bool {
		nested = nested || n.Kind().Category() == ir.CategoryAggregate
		return !nested
	})
	if nested {
		l.fail(e.Kind(), "aggregate nested inside another aggregate")
		return
	}
	l.emit(fn+"(%s)", x)
}

func (l *lowering) VisitAggrCount(e *queryir.AggrCount) {
	if _, ok := e.X().(*queryir.Star); ok {
		l.raw("COUNT(*)")
		return
	}
	l.aggregate(e, "COUNT")
}

func (l *lowering) VisitAggrMin(e *queryir.AggrMin) { l.aggregate(e, "MIN") }
func (l *lowering) VisitAggrMax(e *queryir.AggrMax) { l.aggregate(e, "MAX") }
func (l *lowering) VisitAggrSum(e *queryir.AggrSum) { l.aggregate(e, "SUM") }
func (l *lowering) VisitAggrAvg(e *queryir.AggrAvg) { l.aggregate(e, "AVG") }

// A variable used as a value stands for the identity of its row.
func (l *lowering) VisitVarRef(e *queryir.VarRef) {
	if alias, ok := l.variable(e.Kind(), e.Variable()); ok {
		l.raw(alias + ".id")
	}
}

func (l *lowering) VisitBindVariable(e *queryir.BindVariable) {
	i := e.ParameterIndex()
	if i >= len(l.compiler.BindValues) {
		l.err = fmt.Errorf("no value for bind parameter %d: %d values given", i, len(l.compiler.BindValues))
		return
	}
	l.param(l.compiler.BindValues[i])
}

func (l *lowering) VisitStar(e *queryir.Star) {
	l.fail(e.Kind(), "wildcard outside COUNT")
}

func (l *lowering) VisitPropertyAccess(e *queryir.PropertyAccess) {
	alias, ok := l.variable(e.Kind(), e.Variable())
	if !ok {
		return
	}
	path, err := jsonPath(e.PropertyName())
	if err != nil {
		l.err = err
		return
	}
	l.out = frag{sql: "json_extract(" + alias + ".props, ?)", params: []any{path}}
}

// REGEXP is provided by the store's SQLite driver.
func (l *lowering) VisitRegex(e *queryir.Regex) { l.emit("(%s REGEXP %s)", e.X(), e.Y()) }

func (l *lowering) VisitID(e *queryir.ID) {
	if alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex, ir.VarTypeEdge); ok {
		l.raw(alias + ".id")
	}
}

func (l *lowering) VisitHasProp(e *queryir.HasProp) {
	alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex, ir.VarTypeEdge)
	if !ok {
		return
	}
	if c, ok := e.Y().(*queryir.ConstString); ok && !queryir.SQLPropertyName(c.Value()) {
		l.fail(e.Kind(), "property name %q cannot appear in a JSON path", c.Value())
		return
	}
	name := l.sub(e.Y())
	if l.err != nil {
		return
	}
	l.out = frag{
		sql:    "(json_type(" + alias + `.props, '$."' || ` + name.sql + ` || '"') IS NOT NULL)`,
		params: name.params,
	}
}

func (l *lowering) VisitHasLabel(e *queryir.HasLabel) {
	alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex, ir.VarTypeEdge)
	if !ok {
		return
	}
	label := l.sub(e.Y())
	if l.err != nil {
		return
	}
	l.out = frag{sql: "(" + alias + ".label = " + label.sql + ")", params: label.params}
}

// Rows carry a single label, so labels() is a one-element JSON array.
func (l *lowering) VisitVertexLabels(e *queryir.VertexLabels) {
	if alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex); ok {
		l.raw("json_array(" + alias + ".label)")
	}
}

func (l *lowering) VisitInDegree(e *queryir.InDegree) {
	if alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex); ok {
		l.raw("(SELECT COUNT(*) FROM edges WHERE edges.dst = " + alias + ".id)")
	}
}

func (l *lowering) VisitOutDegree(e *queryir.OutDegree) {
	if alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeVertex); ok {
		l.raw("(SELECT COUNT(*) FROM edges WHERE edges.src = " + alias + ".id)")
	}
}

func (l *lowering) VisitEdgeLabel(e *queryir.EdgeLabel) {
	if alias, ok := l.row(e.Kind(), e.X(), ir.VarTypeEdge); ok {
		l.raw(alias + ".label")
	}
}

func (l *lowering) VisitCast(e *queryir.Cast) {
	target, ok := queryir.SQLCastType(e.TargetTypeName())
	if !ok {
		l.fail(e.Kind(), "no SQLite type for %s", e.TargetTypeName())
		return
	}
	l.emit("CAST(%s AS "+target+")", e.X())
}

// AllDifferent compares every pair of operands.
func (l *lowering) VisitAllDifferent(e *queryir.AllDifferent) {
	operands := make([]frag, e.Len())
	for i := range operands {
		operands[i] = l.sub(e.At(i))
	}
	if l.err != nil {
		return
	}
	if len(operands) < 2 {
		l.raw("1")
		return
	}

	var parts []string
	var params []any
	for i := 0; i < len(operands); i++ {
		for j := i + 1; j < len(operands); j++ {
			parts = append(parts, operands[i].sql+" <> "+operands[j].sql)
			params = append(params, operands[i].params...)
			params = append(params, operands[j].params...)
		}
	}
	l.out = frag{sql: "(" + strings.Join(parts, " AND ") + ")", params: params}
}

func (l *lowering) VisitGetLatitude(e *queryir.GetLatitude) {
	l.fail(e.Kind(), "spatial functions are not available")
}

func (l *lowering) VisitGetLongitude(e *queryir.GetLongitude) {
	l.fail(e.Kind(), "spatial functions are not available")
}

// jsonPath returns the SQLite JSON path selecting the top-level key name.
func jsonPath(name string) (string, error) {
	if !queryir.SQLPropertyName(name) {
		return "", fmt.Errorf("property name %q: %w", name, ErrNotLowerable)
	}
	return `$."` + name + `"`, nil
}

// quoteIdent returns name as a double-quoted SQL identifier.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
