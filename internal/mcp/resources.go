// ABOUTME: MCP resources for exposing notes and their media.
// ABOUTME: Notes read as markdown; recordings and picked images read as blobs.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/harper/notepad/internal/blob"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	noteURIPrefix     = "notepad://note/"
	artifactURIPrefix = "notepad://artifact/"
)

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: noteURIPrefix + "{id}",
			Name:        "Note",
			Description: "Access individual notes by ID or short ID",
			MIMEType:    "text/markdown",
		},
		s.handleReadNote,
	)

	s.server.AddResourceTemplate(
		&mcp.ResourceTemplate{
			URITemplate: artifactURIPrefix + "{id}",
			Name:        "Artifact",
			Description: "Raw bytes of an attached image file or voice recording",
		},
		s.handleReadArtifact,
	)
}

func (s *Server) handleReadNote(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	ref, ok := strings.CutPrefix(req.Params.URI, noteURIPrefix)
	if !ok || ref == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	note, err := s.nb.Lookup(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	content := fmt.Sprintf("# %s\n\n", note.Heading())
	if note.Image != "" {
		content += fmt.Sprintf("![image](%s)\n\n", mediaLink(note.Image))
	}
	if note.Audio != "" {
		content += fmt.Sprintf("**Voice note:** %s\n\n", mediaLink(note.Audio))
	}
	content += note.Body

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: "text/markdown",
				Text:     content,
			},
		},
	}, nil
}

func (s *Server) handleReadArtifact(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	id, ok := strings.CutPrefix(req.Params.URI, artifactURIPrefix)
	if !ok || id == "" {
		return nil, fmt.Errorf("invalid resource URI: %s", req.Params.URI)
	}

	b, err := s.nb.Artifact(blob.Scheme + id)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      req.Params.URI,
				MIMEType: b.MimeType,
				Blob:     b.Data,
			},
		},
	}, nil
}

// mediaLink rewrites local artifact references to readable resource URIs.
// URLs pass through untouched.
func mediaLink(ref string) string {
	if id, ok := strings.CutPrefix(ref, blob.Scheme); ok && blob.IsRef(ref) {
		return artifactURIPrefix + id
	}
	return ref
}
