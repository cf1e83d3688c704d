package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"go.yaml.in/yaml/v4"
)

// MarshalYAML serializes v to canonical YAML: mapping keys are sorted
// lexicographically by code point at every nesting level and sequence order
// is preserved. Scalar literals are emitted as parsed, so numeric formatting
// survives a round trip.
func MarshalYAML(v *Value) ([]byte, error) {
	node, err := buildYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// MarshalJSON serializes v to canonical JSON with the same sorted-key rule
// as MarshalYAML. Numeric literals that are not valid JSON (hex integers,
// underscore separators) are reformatted; non-finite floats cannot be
// represented and fail.
func MarshalJSON(v *Value) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSONValue(&buf, v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalJSONIndent serializes v like MarshalJSON with the given prefix and
// indent applied.
func MarshalJSONIndent(v *Value, prefix, indent string) ([]byte, error) {
	data, err := MarshalJSON(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, prefix, indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildYAMLNode converts a Value into a yaml.Node tree with explicit tags.
// The emitter quotes scalars whose plain form would resolve to a different
// tag, so a String holding "true" stays a string on the way out.
func buildYAMLNode(v *Value) (*yaml.Node, error) {
	switch v.kind {
	case KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case KindBool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: v.scalar}, nil
	case KindNumber:
		tag := "!!float"
		if isIntegerLiteral(v.scalar) {
			tag = "!!int"
		}
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: v.scalar}, nil
	case KindString:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v.scalar}, nil
	case KindSequence:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range v.seq {
			child, err := buildYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case KindMapping:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range v.Keys() {
			child, err := buildYAMLNode(v.fields[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child,
			)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("document: cannot marshal kind %s", v.kind)
	}
}

// writeJSONValue writes v to buf as compact JSON with sorted mapping keys.
func writeJSONValue(buf *bytes.Buffer, v *Value) error {
	switch v.kind {
	case KindNull:
		buf.WriteString("null")
		return nil
	case KindBool:
		buf.WriteString(v.scalar)
		return nil
	case KindNumber:
		lit, err := jsonNumberLiteral(v.scalar)
		if err != nil {
			return err
		}
		buf.WriteString(lit)
		return nil
	case KindString:
		data, err := json.Marshal(v.scalar)
		if err != nil {
			return err
		}
		buf.Write(data)
		return nil
	case KindSequence:
		buf.WriteByte('[')
		for i, item := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONValue(buf, item); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case KindMapping:
		buf.WriteByte('{')
		for i, key := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			keyJSON, err := json.Marshal(key)
			if err != nil {
				return err
			}
			buf.Write(keyJSON)
			buf.WriteByte(':')
			if err := writeJSONValue(buf, v.fields[key]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("document: cannot marshal kind %s", v.kind)
	}
}

// jsonNumberLiteral returns a literal usable as a JSON number. YAML literals
// that are already valid JSON pass through verbatim; other forms (0x1f,
// 1_000) are reparsed and reformatted.
func jsonNumberLiteral(lit string) (string, error) {
	if json.Valid([]byte(lit)) {
		return lit, nil
	}
	if i, err := strconv.ParseInt(lit, 0, 64); err == nil {
		return strconv.FormatInt(i, 10), nil
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return "", fmt.Errorf("document: cannot represent %q as a JSON number", lit)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", fmt.Errorf("document: cannot represent %q as a JSON number", lit)
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

// isIntegerLiteral reports whether lit is an integer in any base YAML
// accepts for the !!int tag.
func isIntegerLiteral(lit string) bool {
	_, err := strconv.ParseInt(lit, 0, 64)
	return err == nil
}
