// Package mcp exposes the diagram engine to assistant clients over the
// Model Context Protocol.
package mcp

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"

	"github.com/iishyfishyy/sketchflow/pkg/pipeline"
)

// Server wraps an MCP server with diagram tool handlers.
type Server struct {
	runner    *pipeline.Runner
	logger    *log.Logger
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server with the diagram tools registered.
func NewServer(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		runner: runner,
		logger: logger,
	}

	mcpSrv := server.NewMCPServer(
		"sketchflow",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithRecovery(),
		server.WithInstructions("Sketchflow renders declarative flow and sequence diagrams as hand-drawn SVGs. Use diagram.generate to produce an SVG (optionally a PNG file), and diagram.validate to check a definition against the schema without rendering."),
	)

	mcpSrv.AddTools(s.tools()...)
	s.mcpServer = mcpSrv
	return s
}

// Serve starts the stdio transport and blocks until ctx is cancelled or
// stdin closes.
func (s *Server) Serve(ctx context.Context) error {
	stdio := server.NewStdioServer(s.mcpServer)
	return stdio.Listen(ctx, os.Stdin, os.Stdout)
}

// MCPServer returns the underlying MCPServer for testing or custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// tools returns the registered MCP tools as ServerTool entries.
func (s *Server) tools() []server.ServerTool {
	return []server.ServerTool{
		{Tool: generateTool(), Handler: s.handleGenerate},
		{Tool: validateTool(), Handler: s.handleValidate},
	}
}
