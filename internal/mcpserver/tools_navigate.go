package mcpserver

import (
	"context"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mihaelamj/stitcher/document"
	"github.com/mihaelamj/stitcher/pointer"
	"github.com/mihaelamj/stitcher/resolver"
	"github.com/mihaelamj/stitcher/stitcherrors"
)

type navigateInput struct {
	Doc     docInput `json:"doc"     jsonschema:"The document to navigate within"`
	Pointer string   `json:"pointer" jsonschema:"JSON Pointer to evaluate, e.g. #/components/schemas/Pet"`
}

type navigateOutput struct {
	Value string `json:"value"`
	Kind  string `json:"kind"`
}

func handleNavigate(ctx context.Context, _ *mcp.CallToolRequest, input navigateInput) (*mcp.CallToolResult, navigateOutput, error) {
	if err := input.Doc.validate(); err != nil {
		return errResult(err), navigateOutput{}, nil
	}

	raw, err := loadDocBytes(ctx, input.Doc)
	if err != nil {
		return errResult(err), navigateOutput{}, nil
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return errResult(err), navigateOutput{}, nil
	}

	value, err := pointer.Navigate(doc, input.Pointer)
	if err != nil {
		return errResult(err), navigateOutput{}, nil
	}

	out, err := document.MarshalYAML(value)
	if err != nil {
		return errResult(err), navigateOutput{}, nil
	}

	return nil, navigateOutput{
		Value: string(out),
		Kind:  value.Kind().String(),
	}, nil
}

// loadDocBytes fetches the raw text of a docInput without resolving it.
func loadDocBytes(ctx context.Context, d docInput) ([]byte, error) {
	switch {
	case d.Content != "":
		return []byte(d.Content), nil
	case d.File != "":
		data, err := os.ReadFile(d.File)
		if err != nil {
			return nil, &stitcherrors.FetchError{Location: d.File, Cause: err}
		}
		return data, nil
	default:
		loc, err := resolver.FromURL(d.URL)
		if err != nil {
			return nil, err
		}
		src := resolver.NewSource()
		return src.Fetch(ctx, loc)
	}
}
