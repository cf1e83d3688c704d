package resolver

import "strings"

// RefKey is the reserved mapping key whose string value names another
// document and/or a path within it.
const RefKey = "$ref"

// Reference is a parsed $ref string, split on the first "#" into the
// target document spec and an optional JSON Pointer.
type Reference struct {
	// Target names the referenced document. Empty for internal references.
	Target string
	// Pointer is the fragment after "#", without the "#" itself.
	Pointer string
	// HasPointer distinguishes "doc.yaml#" (present, empty) from
	// "doc.yaml" (absent).
	HasPointer bool
}

// ParseRef splits a $ref string into its target spec and pointer parts.
func ParseRef(s string) Reference {
	target, ptr, found := strings.Cut(s, "#")
	return Reference{Target: target, Pointer: ptr, HasPointer: found}
}

// IsExternal reports whether the reference names another document. An empty
// target means the reference is internal to its containing document and is
// left untouched by resolution.
func (r Reference) IsExternal() bool {
	return r.Target != ""
}
