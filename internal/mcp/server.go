// ABOUTME: MCP server initialization and configuration for snipsearch.
// ABOUTME: Sets up server with snippet search tools for AI agent access.
package mcp

import (
	"context"
	"fmt"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/2389-research/snipsearch/internal/embeddings"
	"github.com/2389-research/snipsearch/internal/snippets"
)

// Version is reported to MCP clients.
const Version = "1.0.0"

// Server wraps the MCP server with the snippet service.
type Server struct {
	mcp     *gomcp.Server
	service *snippets.Service
	topK    int
}

// ServerOption configures optional Server settings.
type ServerOption func(*Server)

// WithDefaultLimit sets the result count used when a search omits limit.
func WithDefaultLimit(k int) ServerOption {
	return func(s *Server) {
		if k > 0 {
			s.topK = k
		}
	}
}

// NewServer creates an MCP server exposing seed, search, and list tools.
func NewServer(service *snippets.Service, opts ...ServerOption) (*Server, error) {
	if service == nil {
		return nil, fmt.Errorf("snippet service is required")
	}

	mcpServer := gomcp.NewServer(
		&gomcp.Implementation{
			Name:    "snipsearch",
			Version: Version,
		},
		nil,
	)

	s := &Server{
		mcp:     mcpServer,
		service: service,
		topK:    embeddings.DefaultTopK,
	}

	for _, opt := range opts {
		opt(s)
	}

	s.registerSnippetTools()

	return s, nil
}

// Serve starts the MCP server in stdio mode.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcp.Run(ctx, &gomcp.StdioTransport{})
}
