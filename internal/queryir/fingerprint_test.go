package queryir

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/pgqlir/internal/ir"
)

var hexSHA256 = regexp.MustCompile(`^[0-9a-f]{64}$`)

func TestFingerprint_Deterministic(t *testing.T) {
	build := func() Expr {
		return NewAnd(
			NewGreater(NewPropertyAccess(vN, "age"), NewConstDecimal(18.5)),
			NewEqual(NewCast(NewVarRef(vN), "string"), NewBindVariable(0)),
		)
	}

	a, err := Fingerprint(build())
	require.NoError(t, err)
	b, err := Fingerprint(build())
	require.NoError(t, err)

	assert.Regexp(t, hexSHA256, a)
	assert.Equal(t, a, b)
}

func TestFingerprint_Distinguishes(t *testing.T) {
	exprs := []Expr{
		intc(1),
		NewConstString("1"),
		NewConstDecimal(1),
		NewBindVariable(1),
		NewUMin(intc(1)),
		NewSub(intc(1), intc(2)),
		NewSub(intc(2), intc(1)),
		NewVarRef(vN),
		NewVarRef(ir.NewEdge("n")),
		NewPropertyAccess(vN, "age"),
		NewConstNull(),
		NewStar(),
	}

	seen := map[string]int{}
	for i, e := range exprs {
		fp, err := Fingerprint(e)
		require.NoError(t, err)
		if prev, ok := seen[fp]; ok {
			t.Errorf("expressions %d and %d share fingerprint %s", prev, i, fp)
		}
		seen[fp] = i
	}
}

func TestFingerprint_ModuloNFC(t *testing.T) {
	composed := NewEqual(NewPropertyAccess(vN, "name"), NewConstString("caf\u00e9"))
	decomposed := NewEqual(NewPropertyAccess(vN, "name"), NewConstString("cafe\u0301"))

	require.False(t, DeepEqual(composed, decomposed))
	assert.NotEqual(t, composed.Hash(), decomposed.Hash())

	a, err := Fingerprint(composed)
	require.NoError(t, err)
	b, err := Fingerprint(decomposed)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFingerprint_Nil(t *testing.T) {
	_, err := Fingerprint(nil)
	assert.Error(t, err)
}

func TestTree(t *testing.T) {
	e := NewAnd(
		NewGreater(NewPropertyAccess(vN, "age"), intc(18)),
		NewNot(NewConstString("x")),
	)

	out := Tree(e)

	for _, want := range []string{"AND", "GREATER", "PROP_ACCESS n:vertex.age", "INTEGER 18", "NOT", `STRING "x"`} {
		assert.Contains(t, out, want)
	}
	assert.Empty(t, Tree(nil))
}
