package document

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/mihaelamj/stitcher/stitcherrors"
)

// Parse decodes YAML or JSON text into a Value tree. JSON is a subset of
// YAML, so a single decode path covers both formats.
//
// Any node shape that does not map onto the closed Value variant — custom
// tags, non-scalar mapping keys, duplicate keys, binary payloads — fails
// with a *stitcherrors.ParseError rather than being passed through.
func Parse(data []byte) (*Value, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &stitcherrors.ParseError{
			Message: "malformed document",
			Cause:   err,
		}
	}
	// A fully empty input produces a zero node with no content.
	if node.Kind == 0 {
		return Null(), nil
	}
	return decodeNode(&node, make(map[*yaml.Node]bool))
}

// decodeNode converts one yaml.Node into a Value. expanding tracks alias
// targets currently being expanded so a self-referential anchor cannot
// recurse forever.
func decodeNode(n *yaml.Node, expanding map[*yaml.Node]bool) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return Null(), nil
		}
		return decodeNode(n.Content[0], expanding)

	case yaml.AliasNode:
		if n.Alias == nil {
			return nil, parseErrorAt(n, "alias with no anchor target")
		}
		if expanding[n.Alias] {
			return nil, parseErrorAt(n, "anchor expansion is self-referential")
		}
		expanding[n.Alias] = true
		v, err := decodeNode(n.Alias, expanding)
		delete(expanding, n.Alias)
		return v, err

	case yaml.ScalarNode:
		return decodeScalar(n)

	case yaml.SequenceNode:
		items := make([]*Value, 0, len(n.Content))
		for _, child := range n.Content {
			item, err := decodeNode(child, expanding)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return Sequence(items...), nil

	case yaml.MappingNode:
		m := Mapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			if keyNode.Kind != yaml.ScalarNode {
				return nil, parseErrorAt(keyNode, "mapping key is not a scalar")
			}
			if keyNode.Tag == "!!merge" {
				return nil, parseErrorAt(keyNode, "merge keys (<<) are not supported")
			}
			key := keyNode.Value
			if m.Has(key) {
				return nil, parseErrorAt(keyNode, fmt.Sprintf("duplicate mapping key %q", key))
			}
			val, err := decodeNode(n.Content[i+1], expanding)
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		return m, nil

	default:
		return nil, parseErrorAt(n, fmt.Sprintf("unsupported node kind %d", n.Kind))
	}
}

// decodeScalar converts a resolved scalar node into the matching Value
// variant based on its YAML tag.
func decodeScalar(n *yaml.Node) (*Value, error) {
	switch n.Tag {
	case "!!null":
		return Null(), nil
	case "!!bool":
		return Bool(strings.EqualFold(n.Value, "true")), nil
	case "!!int", "!!float":
		return Number(n.Value), nil
	case "!!str":
		return String(n.Value), nil
	case "!!timestamp":
		// Date-like scalars are kept as strings; the model has no
		// separate timestamp variant and JSON has none either.
		return String(n.Value), nil
	default:
		return nil, parseErrorAt(n, fmt.Sprintf("unsupported scalar tag %s", n.Tag))
	}
}

func parseErrorAt(n *yaml.Node, msg string) error {
	return &stitcherrors.ParseError{
		Line:    n.Line,
		Column:  n.Column,
		Message: msg,
	}
}
