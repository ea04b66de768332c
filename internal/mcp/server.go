package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gitmesh/docs-hub/internal/content"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the documentation registry to AI
// agents.
type Server struct {
	reg *content.Registry
	log *slog.Logger
	mcp *server.MCPServer
}

// NewServer creates a new MCP server over reg.
func NewServer(reg *content.Registry, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		reg: reg,
		log: log,
	}

	s.mcp = server.NewMCPServer(
		"meshdocs",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listSectionsTool, s.handleListSections)
	s.mcp.AddTool(readSectionTool, s.handleReadSection)
	s.mcp.AddTool(findSnippetsTool, s.handleFindSnippets)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
