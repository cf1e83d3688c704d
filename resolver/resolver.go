// Package resolver implements external $ref resolution for multi-file
// API-description documents.
//
// A Resolver walks a parsed document tree depth-first, inlining every
// external $ref it finds. Referenced documents are fetched through a
// ContentSource, parsed, resolved recursively relative to their own
// location, and cached per canonical location so a document shared by
// several references is fetched exactly once. A cycle tracker scoped to the
// active recursion stack rejects reference chains that close on themselves.
//
// Internal references (#/...) are deliberately left untouched: consumers of
// the stitched document still see them at their original tree paths.
package resolver

import (
	"context"
	"sync"

	"github.com/mihaelamj/stitcher/document"
	"github.com/mihaelamj/stitcher/pointer"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

// DefaultMaxDepth is the maximum recursion depth for nested $ref
// resolution. This prevents stack exhaustion from deeply nested (but
// non-circular) reference chains.
const DefaultMaxDepth = 100

// Resolver resolves external $ref pointers in document trees.
//
// The zero value is not usable; create instances with New. The document
// cache belongs to one Resolver instance and persists across calls until
// ClearCache; sharing a Resolver is the explicit opt-in for sharing its
// cache. A Resolver is safe for concurrent use: the cache is guarded by a
// mutex and cycle tracking is scoped to each call's own recursion stack,
// so concurrent resolutions never observe each other's in-flight work.
// Configuration fields must not be modified while calls are in flight.
type Resolver struct {
	// Source retrieves raw document text. Defaults to NewSource().
	Source ContentSource
	// Logger receives debug output. If nil, logging is disabled.
	Logger Logger
	// MaxDepth caps recursion depth. Zero means DefaultMaxDepth.
	MaxDepth int

	// mu guards cache.
	mu sync.Mutex
	// cache maps canonical location to the fully resolved document,
	// inserted only after that document's own resolution succeeded.
	cache map[string]*document.Value
}

// New creates a Resolver using the given content source.
// A nil source selects the default file/HTTP source.
func New(source ContentSource) *Resolver {
	if source == nil {
		source = NewSource()
	}
	return &Resolver{
		Source: source,
		cache:  make(map[string]*document.Value),
	}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *Resolver) log() Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return NopLogger{}
}

// Resolve parses raw document text and resolves every external $ref in it,
// treating base as the location of the document for relative references.
// Any error aborts the whole call; no partial output is produced.
func (r *Resolver) Resolve(ctx context.Context, raw []byte, base Location) (*document.Value, error) {
	doc, err := document.Parse(raw)
	if err != nil {
		return nil, locateParseError(err, base)
	}
	return r.ResolveDocument(ctx, doc, base)
}

// ResolveDocument resolves every external $ref in an already parsed tree.
func (r *Resolver) ResolveDocument(ctx context.Context, doc *document.Value, base Location) (*document.Value, error) {
	return r.walk(ctx, doc, base, 0, make(map[string]bool))
}

// ClearCache resets the document cache.
func (r *Resolver) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*document.Value)
}

// walk applies the resolution rules depth-first. Scalars pass through
// unchanged; sequences and mappings are rebuilt with resolved children;
// mappings carrying an external $ref are replaced by their target. stack
// holds the canonical locations currently being resolved on this call's
// recursion path; it is owned by one call and never shared.
func (r *Resolver) walk(ctx context.Context, v *document.Value, base Location, depth int, stack map[string]bool) (*document.Value, error) {
	maxDepth := r.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	if depth > maxDepth {
		return nil, &stitcherrors.ResourceLimitError{
			ResourceType: "ref_depth",
			Limit:        int64(maxDepth),
			Actual:       int64(depth),
			Message:      "references nested too deeply",
		}
	}

	switch v.Kind() {
	case document.KindNull, document.KindBool, document.KindNumber, document.KindString:
		return v, nil

	case document.KindSequence:
		items, _ := v.Items()
		result := document.Sequence()
		for _, item := range items {
			walked, err := r.walk(ctx, item, base, depth+1, stack)
			if err != nil {
				return nil, err
			}
			result.Append(walked)
		}
		return result, nil

	case document.KindMapping:
		if refVal, ok := v.Get(RefKey); ok {
			if refStr, isStr := refVal.StringValue(); isStr {
				ref := ParseRef(refStr)
				if !ref.IsExternal() {
					// Internal references are preserved as-is,
					// siblings included.
					return v, nil
				}
				return r.resolveExternalRef(ctx, refStr, ref, base, v, depth, stack)
			}
		}
		result := document.Mapping()
		for _, key := range v.Keys() {
			val, _ := v.Get(key)
			walked, err := r.walk(ctx, val, base, depth+1, stack)
			if err != nil {
				return nil, err
			}
			result.Set(key, walked)
		}
		return result, nil

	default:
		// The parser only produces the six kinds above.
		return nil, &stitcherrors.ParseError{
			Location: base.String(),
			Message:  "unknown value kind " + v.Kind().String(),
		}
	}
}

// resolveExternalRef inlines one external reference: it canonicalizes the
// target location, resolves the target document (through the cache when
// possible), extracts the pointer, and merges sibling properties into
// mapping results.
func (r *Resolver) resolveExternalRef(ctx context.Context, refStr string, ref Reference, base Location, siblings *document.Value, depth int, stack map[string]bool) (*document.Value, error) {
	target, err := base.ResolveReference(ref.Target)
	if err != nil {
		return nil, &stitcherrors.FetchError{
			Location: ref.Target,
			Message:  "cannot resolve reference location",
			Cause:    err,
		}
	}

	resolved, err := r.resolveLocation(ctx, refStr, target, depth, stack)
	if err != nil {
		return nil, err
	}

	candidate := resolved
	if ref.HasPointer && ref.Pointer != "" && ref.Pointer != "/" {
		candidate, err = pointer.Navigate(resolved, ref.Pointer)
		if err != nil {
			return nil, locateNotFoundError(err, target)
		}
	}

	if !candidate.IsMapping() {
		// Sibling properties only apply to mapping results.
		return candidate, nil
	}

	// Logical copy: the merged mapping is new, sub-values are shared with
	// the cached tree and treated as immutable.
	merged := document.Mapping()
	for _, key := range candidate.Keys() {
		val, _ := candidate.Get(key)
		merged.Set(key, val)
	}
	for _, key := range siblings.Keys() {
		if key == RefKey || merged.Has(key) {
			// The resolved target always wins over a sibling default.
			continue
		}
		val, _ := siblings.Get(key)
		merged.Set(key, val)
	}
	return merged, nil
}

// resolveLocation returns the fully resolved document at target, fetching
// and recursing on a cache miss. The stack entry for the canonical key
// brackets exactly one in-flight resolution on this call's recursion path
// and is released on every exit path. Two concurrent cache misses for the
// same location both fetch; the duplicate insert is benign since both
// resolve to equal trees.
func (r *Resolver) resolveLocation(ctx context.Context, refStr string, target Location, depth int, stack map[string]bool) (*document.Value, error) {
	key := target.String()

	if stack[key] {
		return nil, &stitcherrors.CircularReferenceError{Ref: refStr, Location: key}
	}

	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		r.log().Debug("cache hit", "location", key)
		return cached, nil
	}
	r.mu.Unlock()

	stack[key] = true
	defer delete(stack, key)

	r.log().Debug("fetching document", "location", key, "ref", refStr)
	raw, err := r.Source.Fetch(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return nil, locateParseError(err, target)
	}

	// Nested relative references resolve against the fetched document's
	// own location, not the original root.
	resolved, err := r.walk(ctx, doc, target, depth+1, stack)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.cache[key] = resolved
	r.mu.Unlock()
	return resolved, nil
}

// locateParseError stamps the source location onto a ParseError that does
// not carry one yet.
func locateParseError(err error, loc Location) error {
	if pe, ok := err.(*stitcherrors.ParseError); ok && pe.Location == "" {
		pe.Location = loc.String()
	}
	return err
}

// locateNotFoundError stamps the target document onto a
// ReferenceNotFoundError that does not carry one yet.
func locateNotFoundError(err error, loc Location) error {
	if nf, ok := err.(*stitcherrors.ReferenceNotFoundError); ok && nf.Location == "" {
		nf.Location = loc.String()
	}
	return err
}
