// Package stitch provides the public API for resolving a multi-file
// API-description document into one self-contained document.
//
// The entry points mirror the rest of the module's style: a reusable
// Stitcher instance with exported configuration fields, plus
// StitchWithOptions for one-shot calls with functional options.
package stitch

import (
	"context"
	"net/http"
	"sync"

	"github.com/mihaelamj/stitcher/document"
	"github.com/mihaelamj/stitcher/internal/httputil"
	"github.com/mihaelamj/stitcher/resolver"
)

// bytesSourceName is the synthetic source path used for raw text input.
// Relative references in such input resolve against the current working
// directory unless a base location is given.
const bytesSourceName = "StitchBytes.yaml"

// Stitcher resolves and serializes documents. One instance owns one
// resolution cache: reusing a Stitcher across calls shares fetched
// documents, and ClearCache drops them.
//
// Configuration fields are read when the first stitch call creates the
// underlying engine. A configured Stitcher is safe for concurrent use;
// configuration fields must not be modified while calls are in flight.
type Stitcher struct {
	// OutputFormat selects the serialization of Result.Output.
	// Empty means match the detected format of the input document.
	OutputFormat OutputFormat
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default).
	Logger resolver.Logger
	// MaxDepth caps $ref recursion depth. Zero means the engine default.
	MaxDepth int
	// MaxFileSize caps fetched document size in bytes.
	// Zero means the source default.
	MaxFileSize int64
	// UserAgent is sent when fetching URLs. Defaults to the stitcher agent.
	UserAgent string
	// HTTPClient is used for URL fetches. If nil, a default client with a
	// 30-second timeout is created. When set, InsecureSkipVerify is
	// ignored (configure TLS on your client's transport).
	HTTPClient *http.Client
	// InsecureSkipVerify disables TLS certificate verification for URL
	// fetches. Use with caution.
	InsecureSkipVerify bool
	// Source overrides the content source entirely. When set, the
	// HTTP/file settings above are not used.
	Source resolver.ContentSource

	// mu guards lazy creation of engine.
	mu     sync.Mutex
	engine *resolver.Resolver
}

// New creates a Stitcher with default settings.
func New() *Stitcher {
	return &Stitcher{}
}

// Result is the outcome of one stitch call.
type Result struct {
	// Document is the fully resolved tree.
	Document *document.Value
	// Output is the canonically serialized document.
	Output []byte
	// Source identifies the input: a canonical location, or
	// "StitchBytes.yaml" for raw text input.
	Source string
	// SourceFormat is the detected format of the input document.
	SourceFormat SourceFormat
	// Format is the serialization format of Output.
	Format OutputFormat
	// FetchCount is the number of content fetches this call performed,
	// including the root document when it was fetched by location.
	// Cache hits do not fetch.
	FetchCount int
}

// Stitch fetches the document at location (a file path or HTTP(S) URL),
// resolves every external $ref in it, and serializes the result.
func (s *Stitcher) Stitch(location string) (*Result, error) {
	return s.StitchContext(context.Background(), location)
}

// StitchContext is Stitch with a caller-supplied context. Cancelling the
// context aborts in-flight fetches; the walk itself does not block.
func (s *Stitcher) StitchContext(ctx context.Context, location string) (*Result, error) {
	loc, err := resolver.Parse(location)
	if err != nil {
		return nil, err
	}

	eng := s.ensureEngine()
	ctx, fetches := withFetchCount(ctx)

	raw, err := eng.Source.Fetch(ctx, loc)
	if err != nil {
		return nil, err
	}

	doc, err := eng.Resolve(ctx, raw, loc)
	if err != nil {
		return nil, err
	}

	sourceFormat := detectFormatFromPath(location)
	if sourceFormat == SourceFormatUnknown {
		sourceFormat = detectFormatFromContent(raw)
	}

	return s.finish(doc, loc.String(), sourceFormat, int(fetches.Load()))
}

// StitchBytes resolves raw document text directly. An empty baseLocation
// resolves relative references against the current working directory.
func (s *Stitcher) StitchBytes(raw []byte, baseLocation string) (*Result, error) {
	return s.StitchBytesContext(context.Background(), raw, baseLocation)
}

// StitchBytesContext is StitchBytes with a caller-supplied context.
func (s *Stitcher) StitchBytesContext(ctx context.Context, raw []byte, baseLocation string) (*Result, error) {
	if baseLocation == "" {
		baseLocation = bytesSourceName
	}
	base, err := resolver.Parse(baseLocation)
	if err != nil {
		return nil, err
	}

	eng := s.ensureEngine()
	ctx, fetches := withFetchCount(ctx)

	doc, err := eng.Resolve(ctx, raw, base)
	if err != nil {
		return nil, err
	}

	return s.finish(doc, bytesSourceName, detectFormatFromContent(raw), int(fetches.Load()))
}

// ClearCache resets the resolution cache.
func (s *Stitcher) ClearCache() {
	s.mu.Lock()
	eng := s.engine
	s.mu.Unlock()
	if eng != nil {
		eng.ClearCache()
	}
}

// finish serializes the resolved tree in the selected output format.
func (s *Stitcher) finish(doc *document.Value, source string, sourceFormat SourceFormat, fetches int) (*Result, error) {
	format := s.OutputFormat
	if format == "" {
		if sourceFormat == SourceFormatJSON {
			format = FormatJSON
		} else {
			format = FormatYAML
		}
	}

	var output []byte
	var err error
	switch format {
	case FormatJSON:
		output, err = document.MarshalJSONIndent(doc, "", "  ")
	default:
		output, err = document.MarshalYAML(doc)
	}
	if err != nil {
		return nil, err
	}

	return &Result{
		Document:     doc,
		Output:       output,
		Source:       source,
		SourceFormat: sourceFormat,
		Format:       format,
		FetchCount:   fetches,
	}, nil
}

// ensureEngine creates the resolution engine on first use, applying the
// configuration fields as they stand at that moment.
func (s *Stitcher) ensureEngine() *resolver.Resolver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.engine == nil {
		src := s.Source
		if src == nil {
			client := s.HTTPClient
			if client == nil {
				client = httputil.NewClient(s.InsecureSkipVerify)
			}
			src = &resolver.Source{
				HTTPClient:  client,
				UserAgent:   s.UserAgent,
				MaxFileSize: s.MaxFileSize,
			}
		}
		eng := resolver.New(&countingSource{inner: src})
		eng.Logger = s.Logger
		eng.MaxDepth = s.MaxDepth
		s.engine = eng
	}
	return s.engine
}
