// ABOUTME: Markdown export of the notes in the current session.
// ABOUTME: Each note gets YAML frontmatter followed by its body.

package notebook

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/harper/notepad/internal/models"
	"gopkg.in/yaml.v3"
)

type exportFrontmatter struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Image   string    `yaml:"image,omitempty"`
	Audio   string    `yaml:"audio,omitempty"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

// Export writes every note as a markdown document, in store order.
func (nb *Notebook) Export(w io.Writer) error {
	for i, note := range nb.Notes() {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := writeMarkdown(w, note); err != nil {
			return fmt.Errorf("export note %s: %w", note.ShortID(), err)
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, note *models.Note) error {
	fm, err := yaml.Marshal(exportFrontmatter{
		ID:      note.ID.String(),
		Title:   note.Title,
		Image:   note.Image,
		Audio:   note.Audio,
		Created: note.CreatedAt,
		Updated: note.UpdatedAt,
	})
	if err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("---\n")
	sb.Write(fm)
	sb.WriteString("---\n\n")
	sb.WriteString(fmt.Sprintf("# %s\n\n", note.Heading()))
	sb.WriteString(note.Body)
	if !strings.HasSuffix(note.Body, "\n") {
		sb.WriteString("\n")
	}

	_, err = io.WriteString(w, sb.String())
	return err
}
