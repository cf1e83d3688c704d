// Package pointer evaluates JSON Pointer (RFC 6901) paths against document
// values.
package pointer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mihaelamj/stitcher/document"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

// Navigate resolves a JSON Pointer against doc and returns the addressed
// value. A leading "#" and a leading "/" are each stripped once; the empty
// remainder addresses doc itself.
//
// It fails with *stitcherrors.ReferenceNotFoundError when a token names a
// missing mapping key, an out-of-range or non-numeric sequence index, or
// descends into a scalar.
func Navigate(doc *document.Value, ptr string) (*document.Value, error) {
	rest := strings.TrimPrefix(ptr, "#")
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return doc, nil
	}

	tokens := strings.Split(rest, "/")
	current := doc
	for i, token := range tokens {
		token = unescapeToken(token)

		switch current.Kind() {
		case document.KindMapping:
			next, ok := current.Get(token)
			if !ok {
				return nil, notFound(ptr, tokens[:i+1], fmt.Sprintf("missing key %q", token))
			}
			current = next

		case document.KindSequence:
			index, err := strconv.Atoi(token)
			if err != nil {
				return nil, notFound(ptr, tokens[:i+1], fmt.Sprintf("invalid sequence index %q", token))
			}
			if index < 0 || index >= current.Len() {
				return nil, notFound(ptr, tokens[:i+1], fmt.Sprintf("sequence index %d out of bounds (length %d)", index, current.Len()))
			}
			items, _ := current.Items()
			current = items[index]

		default:
			return nil, notFound(ptr, tokens[:i], fmt.Sprintf("cannot descend into %s value", current.Kind()))
		}
	}

	return current, nil
}

// unescapeToken decodes RFC 6901 escapes. ~1 must be replaced before ~0,
// otherwise a literal "~1" in a key would be corrupted.
func unescapeToken(token string) string {
	token = strings.ReplaceAll(token, "~1", "/")
	token = strings.ReplaceAll(token, "~0", "~")
	return token
}

func notFound(ptr string, consumed []string, msg string) error {
	return &stitcherrors.ReferenceNotFoundError{
		Pointer: ptr,
		Message: fmt.Sprintf("at /%s: %s", strings.Join(consumed, "/"), msg),
	}
}
