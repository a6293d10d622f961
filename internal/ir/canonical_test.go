package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalCanonical_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		input    IRValue
		expected string
	}{
		{"string", IRString("hello"), `"hello"`},
		{"empty string", IRString(""), `""`},
		{"int", IRInt(42), "42"},
		{"negative int", IRInt(-100), "-100"},
		{"max int64", IRInt(9223372036854775807), "9223372036854775807"},
		{"min int64", IRInt(-9223372036854775808), "-9223372036854775808"},
		{"bool", IRBool(false), "false"},
		{"empty array", IRArray{}, "[]"},
		{"empty object", IRObject{}, "{}"},
		{"array", IRArray{IRInt(1), IRString("two"), IRBool(true)}, `[1,"two",true]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonical_SortsKeysAtEveryLevel(t *testing.T) {
	obj := IRObject{
		"zebra": IRObject{"b": IRInt(1), "a": IRInt(2)},
		"alpha": IRArray{IRObject{"y": IRInt(1), "x": IRInt(2)}},
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, `{"alpha":[{"x":2,"y":1}],"zebra":{"a":2,"b":1}}`, string(result))
}

func TestMarshalCanonical_UTF16KeyOrder(t *testing.T) {
	// U+10000 encodes as the surrogate pair D800 DC00, which sorts before
	// U+E000 in UTF-16 even though its UTF-8 bytes sort after.
	obj := IRObject{
		"\ue000":     IRInt(1),
		"\U00010000": IRInt(2),
	}

	result, err := MarshalCanonical(obj)
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\ue000\":1}", string(result))
}

func TestMarshalCanonical_NoHTMLEscaping(t *testing.T) {
	result, err := MarshalCanonical(IRObject{"q": IRString("n.name =~ '<a & b>'")})
	require.NoError(t, err)
	assert.Equal(t, `{"q":"n.name =~ '<a & b>'"}`, string(result))
}

func TestMarshalCanonical_Escapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"newline", "a\nb", `"a\nb"`},
		{"tab", "a\tb", `"a\tb"`},
		{"quote", `a"b`, `"a\"b"`},
		{"backslash", `a\b`, `"a\\b"`},
		{"line separator stays literal", "a\u2028b", "\"a\u2028b\""},
		{"paragraph separator stays literal", "a\u2029b", "\"a\u2029b\""},
		{"escaped backslash before u2028 text", `see \u2028`, `"see \\u2028"`},
		{"mixed", "lit \\u2029 and real \u2029", "\"lit \\\\u2029 and real \u2029\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MarshalCanonical(IRString(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(result))
		})
	}
}

func TestMarshalCanonical_NFC(t *testing.T) {
	composed := "caf\u00e9"
	decomposed := "cafe\u0301"

	a, err := MarshalCanonical(IRObject{composed: IRString(decomposed)})
	require.NoError(t, err)
	b, err := MarshalCanonical(IRObject{decomposed: IRString(composed)})
	require.NoError(t, err)

	assert.Equal(t, a, b, "keys and values are NFC normalized")
	assert.Equal(t, "{\"caf\u00e9\":\"caf\u00e9\"}", string(a))
}

func TestMarshalCanonical_RejectsNull(t *testing.T) {
	for _, v := range []IRValue{nil, IRNull{}, IRArray{IRNull{}}, IRObject{"k": IRNull{}}} {
		_, err := MarshalCanonical(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "null is forbidden")
	}

	_, err := MarshalCanonical(IRObject{"k": IRArray{IRInt(1), IRNull{}}})
	assert.EqualError(t, err, `value for key "k": array[1]: null is forbidden in canonical JSON`)
}

func TestContentHash(t *testing.T) {
	doc := IRObject{"value": IRString("42"), "kind": IRString("INTEGER")}

	got, err := ContentHash(DomainExpression, doc)
	require.NoError(t, err)
	assert.Equal(t, "3fc03b7bbe025b69658cdcc89c29873eb5472b1b2b5c3c2900dee4c3fc63386d", got)

	again, err := ContentHash(DomainExpression, IRObject{"kind": IRString("INTEGER"), "value": IRString("42")})
	require.NoError(t, err)
	assert.Equal(t, got, again, "key insertion order must not matter")
}

func TestContentHash_DomainSeparation(t *testing.T) {
	a, err := ContentHash(DomainExpression, IRArray{})
	require.NoError(t, err)
	b, err := ContentHash("other/v1", IRArray{})
	require.NoError(t, err)

	assert.Equal(t, "8f461b893388967bae8139b45766111c90201fd8c63b27a0c89eb4c00698bf2d", a)
	assert.Equal(t, "3c3d141745ab6caeb4dcfeabe49dacf84f5644b41954ca84fc6baeebaa322c4e", b)
}

func TestContentHash_Error(t *testing.T) {
	_, err := ContentHash(DomainExpression, IRNull{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ContentHash")
}
