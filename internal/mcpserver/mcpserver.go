// Package mcpserver exposes sonde analysis as MCP tools over stdio, for
// dashboard and agent integrations.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server and registers the sonde analysis tools.
type Server struct {
	server *mcp.Server
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(version string) *Server {
	if version == "" {
		version = "dev"
	}
	server := mcp.NewServer(
		&mcp.Implementation{
			Name:    "sonde",
			Version: version,
		},
		nil,
	)

	s := &Server{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server over stdio transport.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_metrics",
		Description: "Analyze a source tree and return per-file code-quality metrics " +
			"(size, structure, cyclomatic complexity, Halstead measures) plus folder totals.",
	}, handleAnalyzeMetrics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_file",
		Description: "Analyze a single JavaScript/TypeScript file and return its full " +
			"metrics record.",
	}, handleAnalyzeFile)
}
