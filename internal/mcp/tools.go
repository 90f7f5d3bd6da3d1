// ABOUTME: MCP tools for the note form: draft editing, recording and CRUD.
// ABOUTME: Maps each form event to a notebook operation.

package mcp

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notepad/internal/capture"
	"github.com/harper/notepad/internal/models"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerTools() {
	// set_draft
	s.server.AddTool(&mcp.Tool{
		Name:        "set_draft",
		Description: "Fill in the note form. Omitted fields keep their current value",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"title": {"type": "string", "description": "Note title"},
				"body": {"type": "string", "description": "Note body"},
				"image_url": {"type": "string", "description": "Image URL, used when no image file is attached"}
			}
		}`),
	}, s.handleSetDraft)

	// attach_image
	s.server.AddTool(&mcp.Tool{
		Name:        "attach_image",
		Description: "Attach an image file to the draft. Takes precedence over image_url",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"filename": {"type": "string", "description": "Filename, used to guess the MIME type"},
				"data": {"type": "string", "description": "Base64 encoded image"}
			},
			"required": ["filename", "data"]
		}`),
	}, s.handleAttachImage)

	// start_recording
	s.server.AddTool(&mcp.Tool{
		Name:        "start_recording",
		Description: "Start recording a voice note from the microphone",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStartRecording)

	// stop_recording
	s.server.AddTool(&mcp.Tool{
		Name:        "stop_recording",
		Description: "Stop recording and attach the audio to the draft",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleStopRecording)

	// submit_note
	s.server.AddTool(&mcp.Tool{
		Name:        "submit_note",
		Description: "Save the draft: adds a new note, or updates the note being edited",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleSubmitNote)

	// edit_note
	s.server.AddTool(&mcp.Tool{
		Name:        "edit_note",
		Description: "Load a note into the draft for editing",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or short ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleEditNote)

	// cancel_edit
	s.server.AddTool(&mcp.Tool{
		Name:        "cancel_edit",
		Description: "Discard the draft and stop editing",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleCancelEdit)

	// delete_note
	s.server.AddTool(&mcp.Tool{
		Name:        "delete_note",
		Description: "Delete a note",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or short ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleDeleteNote)

	// list_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "list_notes",
		Description: "List notes in the order they were added",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleListNotes)

	// search_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "search_notes",
		Description: "Find notes whose title or body contains the query, ignoring case",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"query": {"type": "string", "description": "Text to look for"},
				"limit": {"type": "integer", "description": "Max results", "default": 10}
			},
			"required": ["query"]
		}`),
	}, s.handleSearchNotes)

	// get_note
	s.server.AddTool(&mcp.Tool{
		Name:        "get_note",
		Description: "Get a note by ID or short ID",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"id": {"type": "string", "description": "Note ID or short ID"}
			},
			"required": ["id"]
		}`),
	}, s.handleGetNote)

	// show_draft
	s.server.AddTool(&mcp.Tool{
		Name:        "show_draft",
		Description: "Show the form: draft fields, edit target and recording state",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleShowDraft)

	// export_notes
	s.server.AddTool(&mcp.Tool{
		Name:        "export_notes",
		Description: "Export all notes as markdown with YAML frontmatter",
		InputSchema: json.RawMessage(`{"type": "object", "properties": {}}`),
	}, s.handleExportNotes)
}

// Tool handlers.
func (s *Server) handleSetDraft(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		ImageURL *string `json:"image_url"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	if params.Title != nil {
		s.nb.SetTitle(*params.Title)
	}
	if params.Body != nil {
		s.nb.SetBody(*params.Body)
	}
	if params.ImageURL != nil {
		s.nb.SetImageURL(*params.ImageURL)
	}

	return s.draftResult()
}

func (s *Server) handleAttachImage(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Filename string `json:"filename"`
		Data     string `json:"data"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	data, err := base64.StdEncoding.DecodeString(params.Data)
	if err != nil {
		return toolError("invalid base64 data: %v", err), nil
	}

	ref, err := s.nb.PickImage(params.Filename, data)
	if err != nil {
		return toolError("failed to attach image: %v", err), nil
	}
	return toolText("Attached image %s", ref), nil
}

func (s *Server) handleStartRecording(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.nb.StartRecording(ctx); err != nil {
		if errors.Is(err, capture.ErrAlreadyRecording) {
			return toolError("already recording"), nil
		}
		return toolError("microphone unavailable: %v", err), nil
	}
	return toolText("Recording started"), nil
}

func (s *Server) handleStopRecording(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := s.nb.StopRecording()
	if err != nil {
		return toolError("failed to stop recording: %v", err), nil
	}
	return toolText("Recording attached as %s", ref), nil
}

func (s *Server) handleSubmitNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, outcome, err := s.nb.Submit()
	if err != nil {
		return toolError("note not saved: %v", err), nil
	}
	return toolText("Note %s %s", note.ID.String(), outcome), nil
}

func (s *Server) handleEditNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, result := s.lookup(req)
	if result != nil {
		return result, nil
	}
	if err := s.nb.BeginEdit(note.ID); err != nil {
		return toolError("failed to edit note: %v", err), nil
	}
	return s.draftResult()
}

func (s *Server) handleCancelEdit(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.nb.CancelEdit()
	return toolText("Draft cleared"), nil
}

func (s *Server) handleDeleteNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}

	// A full ID that is already gone is fine: delete is idempotent.
	if id, parseErr := uuid.Parse(params.ID); parseErr == nil {
		if s.nb.Delete(id) {
			return toolText("Deleted note %s", id.String()), nil
		}
		return toolText("Note %s was already gone", id.String()), nil
	}

	note, result := s.lookup(req)
	if result != nil {
		return result, nil
	}
	s.nb.Delete(note.ID)
	return toolText("Deleted note %s", note.ID.String()), nil
}

func (s *Server) handleListNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	data, _ := json.MarshalIndent(s.nb.Notes(), "", "  ")
	return toolText("%s", data), nil
}

func (s *Server) handleSearchNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params struct {
		Query string `json:"query"`
		Limit int    `json:"limit"`
	}
	params.Limit = 10 // default
	if err := decodeArgs(req, &params); err != nil {
		return nil, err
	}
	if strings.TrimSpace(params.Query) == "" {
		return toolError("query is required"), nil
	}

	notes := s.nb.Search(params.Query, params.Limit)
	if len(notes) == 0 {
		return toolText("No notes match %q", params.Query), nil
	}
	data, _ := json.MarshalIndent(notes, "", "  ")
	return toolText("%s", data), nil
}

func (s *Server) handleGetNote(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	note, result := s.lookup(req)
	if result != nil {
		return result, nil
	}
	data, _ := json.MarshalIndent(note, "", "  ")
	return toolText("%s", data), nil
}

func (s *Server) handleShowDraft(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.draftResult()
}

func (s *Server) handleExportNotes(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var buf bytes.Buffer
	if err := s.nb.Export(&buf); err != nil {
		return toolError("failed to export notes: %v", err), nil
	}
	if buf.Len() == 0 {
		return toolText("No notes to export."), nil
	}
	return toolText("%s", buf.String()), nil
}

type formState struct {
	Draft         models.Draft `json:"draft"`
	Editing       string       `json:"editing,omitempty"`
	Recording     bool         `json:"recording"`
	LastRecording string       `json:"last_recording,omitempty"`
	Artifacts     int          `json:"artifacts"`
}

func (s *Server) draftResult() (*mcp.CallToolResult, error) {
	state := formState{
		Draft:         s.nb.Draft(),
		Recording:     s.nb.Recording(),
		LastRecording: s.nb.LastRecording(),
	}
	if id, ok := s.nb.Editing(); ok {
		state.Editing = id.String()
	}
	n, err := s.nb.ArtifactCount()
	if err != nil {
		return toolError("failed to count artifacts: %v", err), nil
	}
	state.Artifacts = n
	data, _ := json.MarshalIndent(state, "", "  ")
	return toolText("%s", data), nil
}

// lookup resolves the "id" argument. A non-nil result is the error to return.
func (s *Server) lookup(req *mcp.CallToolRequest) (*models.Note, *mcp.CallToolResult) {
	var params struct {
		ID string `json:"id"`
	}
	if err := decodeArgs(req, &params); err != nil {
		return nil, toolError("invalid arguments: %v", err)
	}
	note, err := s.nb.Lookup(params.ID)
	if err != nil {
		return nil, toolError("failed to find note: %v", err)
	}
	return note, nil
}

func decodeArgs(req *mcp.CallToolRequest, v any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, v)
}

func toolText(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

func toolError(format string, args ...any) *mcp.CallToolResult {
	res := toolText(format, args...)
	res.IsError = true
	return res
}
