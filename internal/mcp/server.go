// ABOUTME: MCP server implementation for the journal
// ABOUTME: Exposes the store to AI assistants as tools, resources, and a prompt
package mcp

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harper/journal/internal/db"
)

// Version is reported to MCP clients during initialization.
const Version = "0.1.0"

// Server wraps the MCP server with journal-specific functionality.
type Server struct {
	mcpServer *mcp.Server
	store     *db.Store
	log       *log.Logger
}

// NewServer creates a journal MCP server backed by store. The caller keeps
// ownership of store and closes it after Run returns.
func NewServer(store *db.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	impl := &mcp.Implementation{
		Name:    "journal",
		Version: Version,
	}

	server := &Server{
		mcpServer: mcp.NewServer(impl, nil),
		store:     store,
		log:       logger,
	}

	// Register components
	server.registerPrompts()
	server.registerTools()
	server.registerResources()

	return server
}

// Run starts the MCP server with stdio transport.
func (s *Server) Run(ctx context.Context) error {
	s.log.Info("mcp server starting", "transport", "stdio")
	transport := &mcp.StdioTransport{}
	return s.mcpServer.Run(ctx, transport)
}

// MCPServer exposes the underlying server so other transports can connect.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcpServer
}
