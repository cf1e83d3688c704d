package document

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mihaelamj/stitcher/stitcherrors"
)

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name  string
		input string
		kind  Kind
	}{
		{"null literal", "null", KindNull},
		{"tilde null", "~", KindNull},
		{"bool true", "true", KindBool},
		{"bool false", "false", KindBool},
		{"integer", "42", KindNumber},
		{"negative integer", "-7", KindNumber},
		{"float", "3.14", KindNumber},
		{"string", "hello", KindString},
		{"quoted number-like string", `"42"`, KindString},
		{"date-like string", "2021-01-01", KindString},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, v.Kind())
		})
	}
}

func TestParsePreservesNumberLiterals(t *testing.T) {
	v, err := Parse([]byte("price: 1.50"))
	require.NoError(t, err)

	price, ok := v.Get("price")
	require.True(t, ok)
	lit, ok := price.NumberLiteral()
	require.True(t, ok)
	assert.Equal(t, "1.50", lit)
}

func TestParseMapping(t *testing.T) {
	v, err := Parse([]byte("name: Pet\ncount: 3\ntags:\n  - a\n  - b\n"))
	require.NoError(t, err)
	require.Equal(t, KindMapping, v.Kind())
	assert.Equal(t, 3, v.Len())

	tags, ok := v.Get("tags")
	require.True(t, ok)
	require.Equal(t, KindSequence, tags.Kind())
	assert.Equal(t, 2, tags.Len())
}

func TestParseJSONInput(t *testing.T) {
	v, err := Parse([]byte(`{"a": [1, 2], "b": {"c": true}}`))
	require.NoError(t, err)
	require.Equal(t, KindMapping, v.Kind())

	a, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, KindSequence, a.Kind())
}

func TestParseEmptyInput(t *testing.T) {
	v, err := Parse(nil)
	require.NoError(t, err)
	assert.True(t, v.IsNull())
}

func TestParseMalformedInput(t *testing.T) {
	_, err := Parse([]byte("key: [unclosed"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrParse))

	var pe *stitcherrors.ParseError
	require.True(t, errors.As(err, &pe))
}

func TestParseRejectsDuplicateKeys(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrParse))
}

func TestParseRejectsNonScalarKeys(t *testing.T) {
	_, err := Parse([]byte("? [1, 2]\n: value\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrParse))
}

func TestParseRejectsMergeKeys(t *testing.T) {
	input := `
base: &base
  a: 1
derived:
  <<: *base
  b: 2
`
	_, err := Parse([]byte(input))
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrParse))
}

func TestParseRejectsCustomTags(t *testing.T) {
	_, err := Parse([]byte("value: !!binary SGVsbG8=\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, stitcherrors.ErrParse))
}

func TestParseExpandsAnchors(t *testing.T) {
	input := `
shared: &shared
  type: string
a: *shared
`
	v, err := Parse([]byte(input))
	require.NoError(t, err)

	a, ok := v.Get("a")
	require.True(t, ok)
	typ, ok := a.Get("type")
	require.True(t, ok)
	s, _ := typ.StringValue()
	assert.Equal(t, "string", s)
}

func TestParseErrorCarriesPosition(t *testing.T) {
	_, err := Parse([]byte("a: 1\na: 2\n"))
	var pe *stitcherrors.ParseError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, 2, pe.Line)
}
