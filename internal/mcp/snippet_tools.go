// ABOUTME: MCP tool implementations for snippet operations.
// ABOUTME: Registers search_snippets, seed_store, and list_snippets.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/snipsearch/internal/embeddings"
	"github.com/2389-research/snipsearch/internal/snippets"
	"github.com/2389-research/snipsearch/internal/storage"
)

// searchSnippetsSchema matches the arguments decoded by handleSearchSnippets.
const searchSnippetsSchema = `{
	"type": "object",
	"properties": {
		"query": {"type": "string", "description": "Search query text"},
		"limit": {"type": "integer", "description": "Maximum number of results (default 5)"}
	},
	"required": ["query"]
}`

func (s *Server) registerSnippetTools() {
	s.mcp.AddTool(&gomcp.Tool{
		Name:        "search_snippets",
		Description: "Search stored code snippets by similarity to a text query. Returns the best matches with their repository, file, and score.",
		InputSchema: json.RawMessage(searchSnippetsSchema),
	}, s.handleSearchSnippets)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "seed_store",
		Description: "Replace the snippet store with the built-in demonstration snippets.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleSeedStore)

	s.mcp.AddTool(&gomcp.Tool{
		Name:        "list_snippets",
		Description: "List every stored snippet with its id, repository, and file.",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListSnippets)
}

func (s *Server) handleSearchSnippets(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	var args struct {
		Query any `json:"query"`
		Limit int `json:"limit"`
	}
	if err := json.Unmarshal(req.Params.Arguments, &args); err != nil {
		return toolError("invalid arguments: %v", err), nil
	}

	if args.Query == nil {
		return toolError("query is required"), nil
	}
	query, err := embeddings.TextFromValue(args.Query)
	if err != nil {
		return toolError("%v", err), nil
	}
	if args.Limit <= 0 {
		args.Limit = s.topK
	}

	results, err := s.service.Query(query, args.Limit)
	if err != nil {
		return storeError(err), nil
	}

	if len(results) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No documents found."}},
		}, nil
	}

	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: snippets.FormatResults(results)}},
	}, nil
}

func (s *Server) handleSeedStore(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	n, err := s.service.Seed()
	if err != nil {
		return storeError(err), nil
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{
			Text: fmt.Sprintf("Seeded %d documents into %s", n, s.service.Store().Path()),
		}},
	}, nil
}

func (s *Server) handleListSnippets(ctx context.Context, req *gomcp.CallToolRequest) (*gomcp.CallToolResult, error) {
	docs, err := s.service.List()
	if err != nil {
		return storeError(err), nil
	}
	if len(docs) == 0 {
		return &gomcp.CallToolResult{
			Content: []gomcp.Content{&gomcp.TextContent{Text: "No documents found."}},
		}, nil
	}

	var sb strings.Builder
	for _, d := range docs {
		sb.WriteString("- ")
		sb.WriteString(snippets.FormatDocument(d))
		sb.WriteString("\n")
	}
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: sb.String()}},
	}, nil
}

// storeError turns a service error into a tool error with a hint when the
// store has not been seeded yet.
func storeError(err error) *gomcp.CallToolResult {
	if errors.Is(err, storage.ErrStoreUnavailable) {
		return toolError("%v (call seed_store first)", err)
	}
	return toolError("%v", err)
}

// toolError creates an error result for MCP tool responses.
func toolError(format string, args ...interface{}) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: fmt.Sprintf(format, args...)}},
		IsError: true,
	}
}
