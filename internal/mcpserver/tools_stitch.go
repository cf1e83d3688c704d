package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mihaelamj/stitcher/document"
	"github.com/mihaelamj/stitcher/stitch"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a document file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// validate checks that exactly one input field is set.
func (d docInput) validate() error {
	count := 0
	if d.File != "" {
		count++
	}
	if d.URL != "" {
		count++
	}
	if d.Content != "" {
		count++
	}
	if count != 1 {
		return &stitcherrors.ConfigError{
			Option:  "doc",
			Message: "exactly one of file, url, or content must be set",
		}
	}
	return nil
}

// stitchResult runs one stitch call for the input on the session Stitcher.
// The shared instance is never mutated here; tool calls run concurrently.
func (d docInput) stitchResult(ctx context.Context) (*stitch.Result, error) {
	if err := d.validate(); err != nil {
		return nil, err
	}

	s := sessionStitcher()
	switch {
	case d.File != "":
		return s.StitchContext(ctx, d.File)
	case d.URL != "":
		return s.StitchContext(ctx, d.URL)
	default:
		return s.StitchBytesContext(ctx, []byte(d.Content), "")
	}
}

type stitchInput struct {
	Doc    docInput `json:"doc"              jsonschema:"The root document to stitch"`
	Format string   `json:"format,omitempty" jsonschema:"Output format: yaml or json (default: match input)"`
}

type stitchOutput struct {
	Document   string `json:"document"`
	Format     string `json:"format"`
	FetchCount int    `json:"fetch_count"`
}

func handleStitch(ctx context.Context, _ *mcp.CallToolRequest, input stitchInput) (*mcp.CallToolResult, stitchOutput, error) {
	if input.Format != "" && input.Format != "yaml" && input.Format != "json" {
		return errResult(&stitcherrors.ConfigError{
			Option: "format", Value: input.Format, Message: "must be yaml or json",
		}), stitchOutput{}, nil
	}

	result, err := input.Doc.stitchResult(ctx)
	if err != nil {
		return errResult(err), stitchOutput{}, nil
	}

	out := stitchOutput{
		Document:   string(result.Output),
		Format:     string(result.Format),
		FetchCount: result.FetchCount,
	}

	// A per-call format request reserializes the resolved tree instead of
	// touching the session default.
	if input.Format != "" && input.Format != string(result.Format) {
		data, err := serializeAs(result.Document, input.Format)
		if err != nil {
			return errResult(err), stitchOutput{}, nil
		}
		out.Document = string(data)
		out.Format = input.Format
	}

	return nil, out, nil
}

// serializeAs renders a resolved tree in the given output format.
func serializeAs(doc *document.Value, format string) ([]byte, error) {
	if format == "json" {
		return document.MarshalJSONIndent(doc, "", "  ")
	}
	return document.MarshalYAML(doc)
}

type clearCacheOutput struct {
	Cleared bool `json:"cleared"`
}

func handleClearCache(_ context.Context, _ *mcp.CallToolRequest, _ struct{}) (*mcp.CallToolResult, clearCacheOutput, error) {
	sessionStitcher().ClearCache()
	return nil, clearCacheOutput{Cleared: true}, nil
}
