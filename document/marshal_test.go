package document

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalYAMLSortsKeys(t *testing.T) {
	v, err := Parse([]byte("zebra: 1\napple: 2\nmango: 3\n"))
	require.NoError(t, err)

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	text := string(out)
	apple := strings.Index(text, "apple")
	mango := strings.Index(text, "mango")
	zebra := strings.Index(text, "zebra")
	require.NotEqual(t, -1, apple)
	assert.Less(t, apple, mango)
	assert.Less(t, mango, zebra)
}

func TestMarshalYAMLSortsNestedKeys(t *testing.T) {
	v, err := Parse([]byte("outer:\n  b: 1\n  a: 2\n"))
	require.NoError(t, err)

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "a:"), strings.Index(text, "b:"))
}

func TestMarshalYAMLPreservesSequenceOrder(t *testing.T) {
	v, err := Parse([]byte("items:\n  - zebra\n  - apple\n"))
	require.NoError(t, err)

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	text := string(out)
	assert.Less(t, strings.Index(text, "zebra"), strings.Index(text, "apple"))
}

func TestMarshalYAMLRoundTrip(t *testing.T) {
	input := `
info:
  title: Test API
  version: 1.0.0
count: 42
ratio: 1.50
enabled: true
nothing: null
tags:
  - a
  - b
`
	v, err := Parse([]byte(input))
	require.NoError(t, err)

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	reparsed, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, v.Equal(reparsed), "round trip changed the document:\n%s", out)

	// Scalar literals survive untouched.
	assert.Contains(t, string(out), "1.50")
}

func TestMarshalYAMLQuotesAmbiguousStrings(t *testing.T) {
	v := Mapping().Set("answer", String("true")).Set("version", String("1.0"))

	out, err := MarshalYAML(v)
	require.NoError(t, err)

	reparsed, err := Parse(out)
	require.NoError(t, err)

	answer, ok := reparsed.Get("answer")
	require.True(t, ok)
	assert.Equal(t, KindString, answer.Kind())

	version, ok := reparsed.Get("version")
	require.True(t, ok)
	assert.Equal(t, KindString, version.Kind())
}

func TestMarshalJSONSortsKeys(t *testing.T) {
	v, err := Parse([]byte("b: 1\na: 2\n"))
	require.NoError(t, err)

	out, err := MarshalJSON(v)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2,"b":1}`, string(out))
}

func TestMarshalJSONScalars(t *testing.T) {
	tests := []struct {
		name string
		v    *Value
		want string
	}{
		{"null", Null(), "null"},
		{"bool", Bool(true), "true"},
		{"integer", Int(42), "42"},
		{"float literal", Number("1.50"), "1.50"},
		{"hex integer reformatted", Number("0x1f"), "31"},
		{"string escaping", String(`say "hi"`), `"say \"hi\""`},
		{"sequence", Sequence(Int(1), Int(2)), "[1,2]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := MarshalJSON(tt.v)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalJSONRejectsNonFiniteFloats(t *testing.T) {
	_, err := MarshalJSON(Number(".inf"))
	require.Error(t, err)
}

func TestMarshalJSONIndent(t *testing.T) {
	v, err := Parse([]byte("a: 1\n"))
	require.NoError(t, err)

	out, err := MarshalJSONIndent(v, "", "  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(out))
}
