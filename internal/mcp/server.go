// ABOUTME: MCP server exposing the notepad form to AI agents.
// ABOUTME: Provides tools, resources, and prompts backed by a single notebook.

package mcp

import (
	"context"

	"github.com/harper/notepad/internal/notebook"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server  *mcp.Server
	nb      *notebook.Notebook
	version string
}

func NewServer(nb *notebook.Notebook, version string) *Server {
	s := &Server{nb: nb, version: version}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notepad",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
