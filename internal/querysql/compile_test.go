package querysql

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlir/internal/ir"
	"github.com/roach88/pgqlir/internal/queryir"
	"github.com/roach88/pgqlir/internal/testutil"
)

func TestCompile_Sample(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(testutil.Sample())
	require.NoError(t, err)

	assert.Equal(t,
		`((json_extract("n".props, ?) > ?) AND (json_extract("n".props, ?) REGEXP ?))`,
		sql)
	assert.Equal(t, []any{`$."age"`, int64(18), `$."name"`, "A.*"}, params)
}

func TestCompile_ValuesNeverInterpolated(t *testing.T) {
	compiler := NewSQLCompiler()

	e := queryir.NewEqual(
		queryir.NewPropertyAccess(testutil.N, "name"),
		queryir.NewConstString("Robert'); DROP TABLE vertices;--"),
	)
	sql, params, err := compiler.Compile(e)
	require.NoError(t, err)

	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, `(json_extract("n".props, ?) = ?)`, sql)
	assert.Equal(t, "Robert'); DROP TABLE vertices;--", params[1])
}

func TestCompile_Operators(t *testing.T) {
	age := func() queryir.Expr { return queryir.NewPropertyAccess(testutil.N, "age") }
	one := func() queryir.Expr { return queryir.NewConstInteger(1) }

	tests := []struct {
		name   string
		expr   queryir.Expr
		sql    string
		params []any
	}{
		{
			name:   "sub",
			expr:   queryir.NewSub(age(), one()),
			sql:    `(json_extract("n".props, ?) - ?)`,
			params: []any{`$."age"`, int64(1)},
		},
		{
			name:   "mod",
			expr:   queryir.NewMod(queryir.NewConstInteger(10), queryir.NewConstInteger(3)),
			sql:    "(? % ?)",
			params: []any{int64(10), int64(3)},
		},
		{
			name:   "unary minus",
			expr:   queryir.NewUMin(queryir.NewConstDecimal(2.5)),
			sql:    "(-?)",
			params: []any{2.5},
		},
		{
			name:   "not",
			expr:   queryir.NewNot(queryir.NewConstBoolean(true)),
			sql:    "(NOT ?)",
			params: []any{true},
		},
		{
			name:   "or",
			expr:   queryir.NewOr(queryir.NewConstBoolean(true), queryir.NewConstNull()),
			sql:    "(? OR NULL)",
			params: []any{true},
		},
		{
			name:   "not equal",
			expr:   queryir.NewNotEqual(queryir.NewVarRef(testutil.N), queryir.NewVarRef(testutil.M)),
			sql:    `("n".id <> "m".id)`,
			params: nil,
		},
		{
			name:   "less equal",
			expr:   queryir.NewLessEqual(age(), queryir.NewConstInteger(65)),
			sql:    `(json_extract("n".props, ?) <= ?)`,
			params: []any{`$."age"`, int64(65)},
		},
		{
			name:   "date",
			expr:   queryir.NewGreater(queryir.NewPropertyAccess(testutil.N, "born"), queryir.NewConstDate(ir.Date{Year: 2000, Month: 1, Day: 2})),
			sql:    `(json_extract("n".props, ?) > ?)`,
			params: []any{`$."born"`, "2000-01-02"},
		},
		{
			name:   "count star",
			expr:   queryir.NewAggrCount(queryir.NewStar()),
			sql:    "COUNT(*)",
			params: nil,
		},
		{
			name:   "avg",
			expr:   queryir.NewAggrAvg(age()),
			sql:    `AVG(json_extract("n".props, ?))`,
			params: []any{`$."age"`},
		},
		{
			name:   "cast",
			expr:   queryir.NewCast(age(), "string"),
			sql:    `CAST(json_extract("n".props, ?) AS TEXT)`,
			params: []any{`$."age"`},
		},
		{
			name:   "cast double precision",
			expr:   queryir.NewCast(age(), "double precision"),
			sql:    `CAST(json_extract("n".props, ?) AS REAL)`,
			params: []any{`$."age"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params, err := NewSQLCompiler().Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestCompile_GraphFunctions(t *testing.T) {
	n := func() queryir.Expr { return queryir.NewVarRef(testutil.N) }
	e := func() queryir.Expr { return queryir.NewVarRef(testutil.E) }

	tests := []struct {
		name   string
		expr   queryir.Expr
		sql    string
		params []any
	}{
		{"id", queryir.NewID(e()), `"e".id`, nil},
		{"label", queryir.NewEdgeLabel(e()), `"e".label`, nil},
		{"labels", queryir.NewVertexLabels(n()), `json_array("n".label)`, nil},
		{"indegree", queryir.NewInDegree(n()), `(SELECT COUNT(*) FROM edges WHERE edges.dst = "n".id)`, nil},
		{"outdegree", queryir.NewOutDegree(n()), `(SELECT COUNT(*) FROM edges WHERE edges.src = "n".id)`, nil},
		{
			"has label",
			queryir.NewHasLabel(n(), queryir.NewConstString("Person")),
			`("n".label = ?)`,
			[]any{"Person"},
		},
		{
			"has prop",
			queryir.NewHasProp(n(), queryir.NewConstString("age")),
			`(json_type("n".props, '$."' || ? || '"') IS NOT NULL)`,
			[]any{"age"},
		},
		{
			"all different",
			queryir.NewAllDifferent(n(), queryir.NewVarRef(testutil.M), queryir.NewBindVariable(0)),
			`("n".id <> "m".id AND "n".id <> ? AND "m".id <> ?)`,
			[]any{"v9", "v9"},
		},
		{"all different single", queryir.NewAllDifferent(n()), "1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, params, err := NewSQLCompiler("v9").Compile(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.sql, sql)
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestCompile_BindValues(t *testing.T) {
	e := queryir.NewAdd(queryir.NewBindVariable(1), queryir.NewBindVariable(0))

	sql, params, err := NewSQLCompiler("a", "b").Compile(e)
	require.NoError(t, err)
	assert.Equal(t, "(? + ?)", sql)
	assert.Equal(t, []any{"b", "a"}, params)

	_, _, err = NewSQLCompiler("a").Compile(e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no value for bind parameter 1")
}

func TestCompile_NotLowerable(t *testing.T) {
	loc := queryir.NewPropertyAccess(testutil.N, "location")
	tests := []struct {
		name string
		expr queryir.Expr
		msg  string
	}{
		{"latitude", queryir.NewGetLatitude(loc), "GET_LATITUDE: spatial functions are not available: cannot be lowered to SQL"},
		{"longitude", queryir.NewGetLongitude(loc), "GET_LONGITUDE: spatial functions are not available: cannot be lowered to SQL"},
		{"path variable", queryir.NewVarRef(testutil.P), `VARREF: path variable "p" has no row: cannot be lowered to SQL`},
		{"scalar variable", queryir.NewVarRef(testutil.X), `VARREF: scalar variable "x" has no row: cannot be lowered to SQL`},
		{"bare star", queryir.NewStar(), "STAR: wildcard outside COUNT: cannot be lowered to SQL"},
		{"label on vertex", queryir.NewEdgeLabel(queryir.NewVarRef(testutil.N)), `EDGE_LABEL: not defined for vertex variable "n": cannot be lowered to SQL`},
		{"id of property", queryir.NewID(loc), "ID: operand must be a variable, got PROP_ACCESS: cannot be lowered to SQL"},
		{"unknown cast", queryir.NewCast(loc, "point"), "CAST: no SQLite type for POINT: cannot be lowered to SQL"},
		{
			"nested aggregate",
			queryir.NewAggrSum(queryir.NewAggrCount(queryir.NewStar())),
			"AGGR_SUM: aggregate nested inside another aggregate: cannot be lowered to SQL",
		},
		{
			"has() name with quote",
			queryir.NewHasProp(queryir.NewVarRef(testutil.N), queryir.NewConstString(`a"b`)),
			`HAS_PROP: property name "a\"b" cannot appear in a JSON path: cannot be lowered to SQL`,
		},
		{
			"nested in operator",
			queryir.NewAnd(queryir.NewConstBoolean(true), queryir.NewGreater(queryir.NewGetLatitude(loc), queryir.NewConstInteger(0))),
			"GET_LATITUDE: spatial functions are not available: cannot be lowered to SQL",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := NewSQLCompiler().Compile(tt.expr)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotLowerable))
			assert.Equal(t, tt.msg, err.Error())
		})
	}
}

func TestCompile_Nil(t *testing.T) {
	_, _, err := NewSQLCompiler().Compile(nil)
	assert.Error(t, err)
}

func TestCompile_AgreesWithValidate(t *testing.T) {
	n := func() queryir.Expr { return queryir.NewVarRef(testutil.N) }
	age := func() queryir.Expr { return queryir.NewPropertyAccess(testutil.N, "age") }

	exprs := testutil.OnePerKind()
	exprs = append(exprs,
		queryir.NewVarRef(testutil.X),
		queryir.NewEqual(queryir.NewVarRef(testutil.X), queryir.NewConstInteger(1)),
		queryir.NewAllDifferent(n(), queryir.NewVarRef(testutil.X)),
		queryir.NewCast(age(), "TIME WITH TIME ZONE"),
		queryir.NewCast(age(), "double precision"),
		queryir.NewPropertyAccess(testutil.N, `a"b`),
		queryir.NewPropertyAccess(testutil.E, `a\b`),
		queryir.NewHasProp(n(), queryir.NewConstString(`a"b`)),
		queryir.NewHasProp(n(), queryir.NewPropertyAccess(testutil.N, `a"b`)),
		queryir.NewAggrSum(queryir.NewAggrCount(queryir.NewStar())),
		queryir.NewAggrMax(queryir.NewAdd(queryir.NewAggrMin(age()), queryir.NewConstInteger(1))),
		queryir.NewAggrCount(queryir.NewAdd(queryir.NewStar(), queryir.NewConstInteger(1))),
		queryir.NewEqual(queryir.NewBindVariable(0), queryir.NewBindVariable(2)),
		queryir.NewID(queryir.NewVarRef(testutil.X)),
		queryir.NewID(age()),
		queryir.NewPropertyAccess(testutil.P, "len"),
	)

	for _, e := range exprs {
		t.Run(e.Kind().String(), func(t *testing.T) {
			result := queryir.Validate(e)
			_, _, err := NewSQLCompiler(int64(1), int64(2), int64(3)).Compile(e)
			assert.Equal(t, result.IsPortable, err == nil, "warnings %v, compile error %v", result.Warnings, err)
		})
	}
}

func TestCompileMatch_Vertex(t *testing.T) {
	sql, params, err := NewSQLCompiler().CompileMatch(testutil.N, testutil.Sample())
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "n".id, "n".label, "n".props FROM vertices AS "n"`+
			` WHERE ((json_extract("n".props, ?) > ?) AND (json_extract("n".props, ?) REGEXP ?))`+
			` ORDER BY "n".id ASC COLLATE BINARY`,
		sql)
	assert.Equal(t, []any{`$."age"`, int64(18), `$."name"`, "A.*"}, params)
}

func TestCompileMatch_EdgeWithoutFilter(t *testing.T) {
	sql, params, err := NewSQLCompiler().CompileMatch(testutil.E, nil)
	require.NoError(t, err)

	assert.Equal(t,
		`SELECT "e".id, "e".src, "e".dst, "e".label, "e".props FROM edges AS "e" ORDER BY "e".id ASC COLLATE BINARY`,
		sql)
	assert.Empty(t, params)
}

func TestCompileMatch_OrderByMandatory(t *testing.T) {
	for _, v := range []ir.QueryVariable{testutil.N, testutil.E} {
		sql, _, err := NewSQLCompiler().CompileMatch(v, nil)
		require.NoError(t, err)
		assert.Contains(t, sql, "ORDER BY")
		assert.Contains(t, sql, "COLLATE BINARY")
	}
}

func TestCompileMatch_Rejects(t *testing.T) {
	_, _, err := NewSQLCompiler().CompileMatch(testutil.P, nil)
	assert.True(t, errors.Is(err, ErrNotLowerable))

	_, _, err = NewSQLCompiler().CompileMatch(testutil.N,
		queryir.NewEqual(queryir.NewPropertyAccess(testutil.M, "age"), queryir.NewConstInteger(1)))
	require.Error(t, err)
	assert.Equal(t, `variable "m" is not bound by the match on "n"`, err.Error())

	_, _, err = NewSQLCompiler().CompileMatch(testutil.N,
		queryir.NewGreater(queryir.NewAggrCount(queryir.NewStar()), queryir.NewConstInteger(1)))
	require.Error(t, err)
	assert.Equal(t, "aggregate AGGR_COUNT is not allowed in a filter", err.Error())
}

func TestQuoteIdent(t *testing.T) {
	assert.Equal(t, `"n"`, quoteIdent("n"))
	assert.Equal(t, `"a""b"`, quoteIdent(`a"b`))
}

func TestJSONPath(t *testing.T) {
	path, err := jsonPath("first name")
	require.NoError(t, err)
	assert.Equal(t, `$."first name"`, path)

	_, err = jsonPath(`a"b`)
	assert.True(t, errors.Is(err, ErrNotLowerable))
}
