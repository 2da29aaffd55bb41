package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/nlp"
	"github.com/COS301-SE-2025/Fire-Fighter-sub001/internal/tickets"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the break-glass query pipeline
// as agent tools.
type Server struct {
	svc     *nlp.Service
	tickets *tickets.Store
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(svc *nlp.Service, ticketStore *tickets.Store) *Server {
	s := &Server{
		svc:     svc,
		tickets: ticketStore,
	}

	s.mcp = server.NewMCPServer(
		"firefighter",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(processQueryTool, s.handleProcessQuery)
	s.mcp.AddTool(getCapabilitiesTool, s.handleGetCapabilities)
	s.mcp.AddTool(getSuggestionsTool, s.handleGetSuggestions)
	s.mcp.AddTool(getTicketTool, s.handleGetTicket)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
