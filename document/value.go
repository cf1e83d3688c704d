// Package document provides the generic value model that stitcher operates
// on, along with parsing from YAML/JSON text and canonical serialization.
//
// A Value is a closed tagged variant: Null, Bool, Number, String, Sequence,
// or Mapping. Every recursion site in the library handles all six kinds
// exhaustively; source shapes that do not map onto one of them are rejected
// at the parser boundary rather than carried along as opaque data.
//
// Scalars retain their source literal, so numbers round-trip without being
// reformatted by an intermediate float conversion.
package document

import (
	"slices"
	"strconv"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindNull is the null value.
	KindNull Kind = iota
	// KindBool is a boolean scalar.
	KindBool
	// KindNumber is a numeric scalar (integer or float).
	KindNumber
	// KindString is a string scalar.
	KindString
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMapping is a collection of unique string keys mapped to values.
	KindMapping
)

// String returns the kind name for error messages and logging.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is one node of a document tree. The zero value is Null.
type Value struct {
	kind   Kind
	scalar string            // literal text for Bool, Number, and String
	seq    []*Value          // items for Sequence
	fields map[string]*Value // entries for Mapping
}

// Null returns the null value.
func Null() *Value {
	return &Value{kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{kind: KindBool, scalar: strconv.FormatBool(b)}
}

// Number returns a numeric value holding the given literal.
// The literal is emitted verbatim where the output format permits it.
func Number(literal string) *Value {
	return &Value{kind: KindNumber, scalar: literal}
}

// Int returns a numeric value for an integer.
func Int(i int64) *Value {
	return Number(strconv.FormatInt(i, 10))
}

// Float returns a numeric value for a float, formatted with the shortest
// representation that round-trips.
func Float(f float64) *Value {
	return Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// String returns a string value.
func String(s string) *Value {
	return &Value{kind: KindString, scalar: s}
}

// Sequence returns a sequence value holding the given items in order.
func Sequence(items ...*Value) *Value {
	return &Value{kind: KindSequence, seq: items}
}

// Mapping returns an empty mapping value.
func Mapping() *Value {
	return &Value{kind: KindMapping, fields: make(map[string]*Value)}
}

// Kind returns the variant held by v.
func (v *Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is the null value.
func (v *Value) IsNull() bool {
	return v.kind == KindNull
}

// IsMapping reports whether v is a mapping.
func (v *Value) IsMapping() bool {
	return v.kind == KindMapping
}

// IsSequence reports whether v is a sequence.
func (v *Value) IsSequence() bool {
	return v.kind == KindSequence
}

// BoolValue returns the boolean held by v. The second result is false when
// v is not a Bool.
func (v *Value) BoolValue() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.scalar == "true", true
}

// NumberLiteral returns the numeric literal held by v. The second result is
// false when v is not a Number.
func (v *Value) NumberLiteral() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.scalar, true
}

// Float64 returns the numeric value held by v as a float64. The second
// result is false when v is not a Number or the literal does not parse.
func (v *Value) Float64() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.scalar, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Int64 returns the numeric value held by v as an int64. The second result
// is false when v is not a Number holding an integer literal.
func (v *Value) Int64() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	i, err := strconv.ParseInt(v.scalar, 10, 64)
	if err != nil {
		return 0, false
	}
	return i, true
}

// StringValue returns the string held by v. The second result is false when
// v is not a String.
func (v *Value) StringValue() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.scalar, true
}

// Items returns the elements of a sequence in order. The second result is
// false when v is not a Sequence.
func (v *Value) Items() ([]*Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// Get returns the value stored under key. The second result is false when
// v is not a Mapping or the key is absent.
func (v *Value) Get(key string) (*Value, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	val, ok := v.fields[key]
	return val, ok
}

// Has reports whether v is a mapping containing key.
func (v *Value) Has(key string) bool {
	_, ok := v.Get(key)
	return ok
}

// Set stores val under key. It panics if v is not a Mapping; mappings are
// only ever built through Mapping() or the parser, so a misuse is a
// programming error rather than input-dependent.
func (v *Value) Set(key string, val *Value) *Value {
	if v.kind != KindMapping {
		panic("document: Set called on " + v.kind.String() + " value")
	}
	v.fields[key] = val
	return v
}

// Append adds items to the end of a sequence. It panics if v is not a
// Sequence.
func (v *Value) Append(items ...*Value) *Value {
	if v.kind != KindSequence {
		panic("document: Append called on " + v.kind.String() + " value")
	}
	v.seq = append(v.seq, items...)
	return v
}

// Keys returns the mapping's keys sorted lexicographically by code point.
// It returns nil when v is not a Mapping.
func (v *Value) Keys() []string {
	if v.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Len returns the number of sequence elements or mapping entries, and 0 for
// scalars.
func (v *Value) Len() int {
	switch v.kind {
	case KindSequence:
		return len(v.seq)
	case KindMapping:
		return len(v.fields)
	default:
		return 0
	}
}

// Clone returns a deep copy of v. Sub-values are copied recursively, so the
// clone can be mutated without affecting the original.
func (v *Value) Clone() *Value {
	switch v.kind {
	case KindSequence:
		items := make([]*Value, len(v.seq))
		for i, item := range v.seq {
			items[i] = item.Clone()
		}
		return &Value{kind: KindSequence, seq: items}
	case KindMapping:
		fields := make(map[string]*Value, len(v.fields))
		for k, val := range v.fields {
			fields[k] = val.Clone()
		}
		return &Value{kind: KindMapping, fields: fields}
	default:
		clone := *v
		return &clone
	}
}

// Equal reports whether v and other hold structurally equal trees.
// Scalars compare by kind and literal; sequences by order; mappings by key
// set and per-key equality.
func (v *Value) Equal(other *Value) bool {
	if v == nil || other == nil {
		return v == other
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool, KindNumber, KindString:
		return v.scalar == other.scalar
	case KindSequence:
		if len(v.seq) != len(other.seq) {
			return false
		}
		for i, item := range v.seq {
			if !item.Equal(other.seq[i]) {
				return false
			}
		}
		return true
	case KindMapping:
		if len(v.fields) != len(other.fields) {
			return false
		}
		for k, val := range v.fields {
			o, ok := other.fields[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
