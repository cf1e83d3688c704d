// Package stitcher resolves external $ref pointers scattered across a
// multi-file API-description document into one self-contained document.
//
// A tree of fragment files (YAML or JSON) is walked recursively: every
// external reference is fetched, parsed, resolved relative to its own
// location, and inlined, producing a single canonical document with
// deterministic (sorted) mapping-key order. Internal references (#/...)
// are preserved untouched for the consumer.
//
// # Packages
//
//   - stitch: the public stitching API with functional options
//   - resolver: the reference resolution engine (walk, cache, cycles)
//   - document: the generic value model, parsing, and canonical output
//   - pointer: JSON Pointer (RFC 6901) navigation
//   - stitcherrors: structured error types for errors.Is/errors.As
//
// # Quick Start
//
// Stitch a multi-file document rooted at a file:
//
//	import "github.com/mihaelamj/stitcher/stitch"
//
//	result, err := stitch.StitchWithOptions(
//	    stitch.WithFilePath("openapi.yaml"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Output))
//
// Stitch raw text against an explicit base location:
//
//	result, err := stitch.StitchWithOptions(
//	    stitch.WithBytes(data),
//	    stitch.WithBaseLocation("specs/root.yaml"),
//	)
//
// Reuse one Stitcher to share its document cache across calls:
//
//	s := stitch.New()
//	out1, _ := s.Stitch("a/openapi.yaml")
//	out2, _ := s.Stitch("b/openapi.yaml")
//	s.ClearCache()
//
// # Error Handling
//
// All failures are structured errors from the stitcherrors package:
//
//	result, err := stitch.StitchWithOptions(stitch.WithFilePath("api.yaml"))
//	if errors.Is(err, stitcherrors.ErrCircularReference) {
//	    // the reference chain closed a cycle
//	}
package stitcher
