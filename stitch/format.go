package stitch

import (
	"bytes"
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/mihaelamj/stitcher/resolver"
)

// OutputFormat selects the serialization of stitched output.
type OutputFormat string

const (
	// FormatYAML serializes output as canonical YAML.
	FormatYAML OutputFormat = "yaml"
	// FormatJSON serializes output as canonical indented JSON.
	FormatJSON OutputFormat = "json"
)

// SourceFormat represents the detected format of an input document.
type SourceFormat string

const (
	// SourceFormatYAML indicates the input was in YAML format.
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the input was in JSON format.
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the format could not be determined.
	SourceFormatUnknown SourceFormat = "unknown"
)

// detectFormatFromPath detects the source format from a path or URL by its
// extension.
func detectFormatFromPath(path string) SourceFormat {
	switch filepath.Ext(path) {
	case ".json":
		return SourceFormatJSON
	case ".yaml", ".yml":
		return SourceFormatYAML
	default:
		return SourceFormatUnknown
	}
}

// detectFormatFromContent attempts to detect the format from the content
// bytes. JSON documents start with '{' or '['; YAML does not.
func detectFormatFromContent(data []byte) SourceFormat {
	trimmed := bytes.TrimLeft(data, " \t\n\r")
	if len(trimmed) == 0 {
		return SourceFormatUnknown
	}
	if trimmed[0] == '{' || trimmed[0] == '[' {
		return SourceFormatJSON
	}
	return SourceFormatYAML
}

// fetchCountKey carries the per-call fetch counter through the context, so
// concurrent calls on one Stitcher each count only their own fetches.
type fetchCountKey struct{}

// withFetchCount returns a context carrying a fresh fetch counter, and the
// counter itself.
func withFetchCount(ctx context.Context) (context.Context, *atomic.Int64) {
	n := new(atomic.Int64)
	return context.WithValue(ctx, fetchCountKey{}, n), n
}

// countingSource wraps a ContentSource and counts successful fetch calls
// into the counter carried by the context, feeding Result.FetchCount.
type countingSource struct {
	inner resolver.ContentSource
}

func (c *countingSource) Fetch(ctx context.Context, loc resolver.Location) ([]byte, error) {
	data, err := c.inner.Fetch(ctx, loc)
	if err == nil {
		if n, ok := ctx.Value(fetchCountKey{}).(*atomic.Int64); ok {
			n.Add(1)
		}
	}
	return data, err
}
