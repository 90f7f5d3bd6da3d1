// ABOUTME: MCP prompts for common note-taking workflows.
// ABOUTME: Walks agents through the form tools instead of raw CRUD.

package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerPrompts() {
	// Register individual prompts - SDK will automatically handle listing
	s.server.AddPrompt(&mcp.Prompt{
		Name:        "compose-note",
		Description: "Write a note about a topic, optionally with a voice recording",
		Arguments: []*mcp.PromptArgument{
			{
				Name:        "topic",
				Description: "What the note is about",
				Required:    true,
			},
			{
				Name:        "voice",
				Description: "Set to yes to record a voice note as well",
				Required:    false,
			},
		},
	}, s.getComposeNotePrompt)

	s.server.AddPrompt(&mcp.Prompt{
		Name:        "summarize-notes",
		Description: "Summarize every note taken in this session",
	}, s.getSummarizeNotesPrompt)
}

func (s *Server) getComposeNotePrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic, ok := req.Params.Arguments["topic"]
	if !ok || topic == "" {
		topic = "today"
	}

	var steps strings.Builder
	steps.WriteString("1. Call set_draft with a short title and a markdown body.\n")
	if strings.EqualFold(req.Params.Arguments["voice"], "yes") {
		steps.WriteString("2. Call start_recording, tell the user to speak, then call stop_recording.\n")
		steps.WriteString("   If the microphone is unavailable, carry on without audio.\n")
		steps.WriteString("3. Call submit_note.\n")
	} else {
		steps.WriteString("2. Call submit_note.\n")
	}

	template := fmt.Sprintf(`Write a note about: %s

Both a title and a body are required; the note is not saved otherwise.

%s
If submit_note reports an error, fix the draft with set_draft and submit again.`, topic, steps.String())

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: template,
				},
			},
		},
	}, nil
}

func (s *Server) getSummarizeNotesPrompt(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	notes := s.nb.Notes()

	var sb strings.Builder
	if len(notes) == 0 {
		sb.WriteString("There are no notes in this session yet. Say so briefly.")
	} else {
		sb.WriteString(fmt.Sprintf("Summarize these %d notes in a few bullet points. Mention which ones carry an image or a voice recording.\n\n", len(notes)))
		for _, n := range notes {
			sb.WriteString(fmt.Sprintf("## %s (%s)\n", n.Heading(), n.ShortID()))
			if n.Image != "" {
				sb.WriteString("[has image]\n")
			}
			if n.Audio != "" {
				sb.WriteString("[has voice recording]\n")
			}
			sb.WriteString(n.Body)
			sb.WriteString("\n\n")
		}
	}

	return &mcp.GetPromptResult{
		Messages: []*mcp.PromptMessage{
			{
				Role: "user",
				Content: &mcp.TextContent{
					Text: sb.String(),
				},
			},
		},
	}, nil
}
