// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes stitcher capabilities as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/mihaelamj/stitcher"
	"github.com/mihaelamj/stitcher/stitch"
)

const serverInstructions = `stitcher MCP server — resolves external $ref pointers across multi-file API descriptions into one self-contained document.

Configuration: defaults are configurable via STITCHER_* environment variables set in your MCP client config.

Key settings:
- STITCHER_MAX_DEPTH (default: engine default, 100) — recursion depth cap
- STITCHER_MAX_FILE_SIZE (default: 10MB) — fetched document size cap in bytes
- STITCHER_INSECURE_TLS (default: false) — disable TLS certificate verification
- STITCHER_OUTPUT_FORMAT (default: match input) — "yaml" or "json"

Caching: resolved external documents are cached for the session, so repeated stitch calls over the same dependency graph fetch each document once. Use clear_cache to drop the cache after editing fragment files.`

// session holds the server-lifetime Stitcher so the resolution cache spans
// tool calls.
var session = struct {
	mu       sync.Mutex
	stitcher *stitch.Stitcher
}{}

// sessionStitcher returns the shared Stitcher, creating it on first use.
func sessionStitcher() *stitch.Stitcher {
	session.mu.Lock()
	defer session.mu.Unlock()
	if session.stitcher == nil {
		s := stitch.New()
		s.MaxDepth = cfg.MaxDepth
		s.MaxFileSize = cfg.MaxFileSize
		s.InsecureSkipVerify = cfg.InsecureTLS
		s.OutputFormat = stitch.OutputFormat(cfg.OutputFormat)
		session.stitcher = s
	}
	return session.stitcher
}

// Run starts the MCP server over stdio and blocks until the client
// disconnects or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "stitcher", Version: stitcher.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "stitch",
		Description: "Resolve every external $ref in a multi-file API description and return one self-contained document with deterministic (sorted) key order. Input is a file path, a URL, or inline content. Internal refs (#/...) are preserved. Resolved external documents are cached per session.",
	}, handleStitch)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "navigate",
		Description: "Evaluate a JSON Pointer (RFC 6901) against a document and return the addressed value. Input is a file path, a URL, or inline content, plus a pointer such as #/components/schemas/Pet.",
	}, handleNavigate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "clear_cache",
		Description: "Drop the session's resolved-document cache. Use after editing fragment files so subsequent stitch calls refetch them.",
	}, handleClearCache)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
