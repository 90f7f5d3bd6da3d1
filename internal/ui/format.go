// ABOUTME: Terminal UI formatting for notepad output.
// ABOUTME: Uses glamour for markdown and fatih/color for styling.

package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/harper/notepad/internal/models"
)

var (
	faint = color.New(color.Faint).SprintFunc()
	bold  = color.New(color.Bold).SprintFunc()
	cyan  = color.New(color.FgCyan).SprintFunc()
	red   = color.New(color.FgRed).SprintFunc()
)

const DefaultWordWrap = 80

func FormatNoteListItem(note *models.Note) string {
	var sb strings.Builder

	// Short ID and title
	sb.WriteString(fmt.Sprintf("  %s  %s\n", faint(note.ShortID()), bold(note.Heading())))

	// Media line if present
	if media := mediaSummary(note.Image, note.Audio); media != "" {
		sb.WriteString(fmt.Sprintf("            %s\n", cyan(media)))
	}

	sb.WriteString(fmt.Sprintf("            %s %s\n",
		faint("Updated:"),
		faint(note.UpdatedAt.Format("2006-01-02 15:04"))))

	return sb.String()
}

func FormatNoteList(notes []*models.Note) string {
	if len(notes) == 0 {
		return "No notes yet.\n"
	}
	var sb strings.Builder
	for _, n := range notes {
		sb.WriteString(FormatNoteListItem(n))
	}
	return sb.String()
}

func FormatNoteContent(content string, wordWrap int) (string, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		// Fallback to raw content if renderer fails
		return content, nil //nolint:nilerr // Intentional fallback
	}

	out, err := renderer.Render(content)
	if err != nil {
		// Fallback to raw content if rendering fails
		return content, nil //nolint:nilerr // Intentional fallback
	}
	return out, nil
}

func FormatNoteHeader(note *models.Note) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", bold(note.Heading())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("ID:"), faint(note.ID.String())))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Created:"), faint(note.CreatedAt.Format("2006-01-02 15:04"))))
	sb.WriteString(fmt.Sprintf("%s %s\n", faint("Updated:"), faint(note.UpdatedAt.Format("2006-01-02 15:04"))))
	if note.Image != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Image:"), cyan(note.Image)))
	}
	if note.Audio != "" {
		sb.WriteString(fmt.Sprintf("%s %s\n", faint("Audio:"), cyan(note.Audio)))
	}

	sb.WriteString(Separator())
	return sb.String()
}

// FormFrame describes the form as the user currently sees it.
type FormFrame struct {
	Draft     models.Draft
	Editing   string
	Recording bool
}

func FormatForm(f FormFrame) string {
	var sb strings.Builder

	mode := "New note"
	if f.Editing != "" {
		mode = fmt.Sprintf("Editing %s", f.Editing)
	}
	sb.WriteString(fmt.Sprintf("%s\n", bold(mode)))
	sb.WriteString(fmt.Sprintf("  %s %s\n", faint("Title:"), placeholder(f.Draft.Title)))
	sb.WriteString(fmt.Sprintf("  %s %s\n", faint("Body: "), placeholder(firstLine(f.Draft.Body))))

	if f.Draft.ImageFile != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n", faint("Image:"), cyan(f.Draft.ImageFile)))
	} else if f.Draft.ImageURL != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n", faint("Image:"), cyan(f.Draft.ImageURL)))
	}
	if f.Draft.Audio != "" {
		sb.WriteString(fmt.Sprintf("  %s %s\n", faint("Audio:"), cyan(f.Draft.Audio)))
	}
	if f.Recording {
		sb.WriteString(fmt.Sprintf("  %s\n", red("● recording")))
	}

	action := "add"
	if f.Editing != "" {
		action = "update"
	}
	sb.WriteString(faint(fmt.Sprintf("  submit to %s\n", action)))
	return sb.String()
}

func Separator() string {
	return faint(strings.Repeat("─", 50)) + "\n"
}

func Success(msg string) string {
	return color.New(color.FgGreen).Sprint("✓ ") + msg
}

func Error(msg string) string {
	return color.New(color.FgRed).Sprint("✗ ") + msg
}

func Notice(msg string) string {
	return faint(msg)
}

func mediaSummary(image, audio string) string {
	var parts []string
	if image != "" {
		parts = append(parts, "image")
	}
	if audio != "" {
		parts = append(parts, "voice")
	}
	return strings.Join(parts, " + ")
}

func placeholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return faint("(empty)")
	}
	return s
}

func firstLine(s string) string {
	line, rest, found := strings.Cut(s, "\n")
	if found && strings.TrimSpace(rest) != "" {
		return line + " …"
	}
	return line
}
