// ABOUTME: Shell command: an interactive note form on the terminal.
// ABOUTME: Each input line is one form event (type a field, pick an image, record, submit).

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notepad/internal/capture"
	"github.com/harper/notepad/internal/models"
	"github.com/harper/notepad/internal/notebook"
	"github.com/harper/notepad/internal/store"
	"github.com/harper/notepad/internal/ui"
	"github.com/spf13/cobra"
)

const shellHelp = `Form:
  title <text>        set the title
  body [text]         set the body; without text, read lines until a lone "."
  image <path>        attach an image file (wins over image-url)
  image-url <url>     use an image URL
  image-clear         drop both image sources
  record              start or stop a voice recording
  submit              add the note, or update the one being edited
  cancel              clear the form and stop editing
  draft               show the form
Notes:
  list                list notes
  search <text>       list notes whose title or body contains text
  show <id>           show a note
  edit <id>           load a note into the form
  rm <id>             delete a note
  export [path]       write notes as markdown (stdout by default)
  help, quit
`

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive note form",
	Long:  `Open an interactive form for writing, editing and deleting notes. Notes are lost when the shell exits.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		nb, err := openNotebook()
		if err != nil {
			return err
		}
		defer func() { _ = nb.Close() }()

		sh := newShell(nb, cmd.InOrStdin(), cmd.OutOrStdout(), cfg.Render.WordWrap)
		return sh.run(cmd.Context())
	},
}

type shell struct {
	nb       *notebook.Notebook
	lines    chan string
	out      io.Writer
	wordWrap int
	readErr  error
}

func newShell(nb *notebook.Notebook, in io.Reader, out io.Writer, wordWrap int) *shell {
	sh := &shell{
		nb:       nb,
		lines:    make(chan string),
		out:      out,
		wordWrap: wordWrap,
	}
	go sh.scan(in)
	return sh
}

// scan feeds input lines to the shell so a pending read never blocks
// cancellation.
func (sh *shell) scan(in io.Reader) {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		sh.lines <- scanner.Text()
	}
	sh.readErr = scanner.Err()
	close(sh.lines)
}

func (sh *shell) readLine(ctx context.Context) (string, bool) {
	select {
	case <-ctx.Done():
		return "", false
	case line, ok := <-sh.lines:
		return line, ok
	}
}

func (sh *shell) run(ctx context.Context) error {
	sh.printf("%s", ui.Notice("Type \"help\" for commands.\n"))
	for {
		sh.printf("> ")
		line, ok := sh.readLine(ctx)
		if !ok {
			sh.printf("\n")
			if ctx.Err() != nil {
				return nil
			}
			return sh.readErr
		}
		if quit := sh.exec(ctx, line); quit {
			return nil
		}
	}
}

// exec handles one line and reports whether the shell should exit.
//
//nolint:funlen,gocyclo // One case per form event
func (sh *shell) exec(ctx context.Context, line string) bool {
	verb, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(verb) {
	case "":
	case "help", "?":
		sh.printf("%s", shellHelp)
	case "quit", "exit", "q":
		return true

	case "title":
		sh.nb.SetTitle(arg)
	case "body":
		if arg == "" {
			arg = sh.readBody(ctx)
		}
		sh.nb.SetBody(arg)
	case "image":
		if arg == "" {
			sh.println(ui.Error("usage: image <path>"))
			break
		}
		ref, err := sh.nb.PickImageFile(arg)
		if err != nil {
			sh.println(ui.Error(err.Error()))
			break
		}
		sh.println(ui.Success("Attached " + ref))
	case "image-url":
		sh.nb.SetImageURL(arg)
	case "image-clear":
		sh.nb.ClearImage()
	case "record":
		sh.toggleRecording(ctx)
	case "submit":
		sh.submit()
	case "cancel":
		sh.nb.CancelEdit()
	case "draft":
		sh.showForm()

	case "list", "ls":
		sh.printf("%s", ui.FormatNoteList(sh.nb.Notes()))
	case "search", "find":
		sh.search(arg)
	case "show":
		sh.show(arg)
	case "edit":
		sh.edit(arg)
	case "rm", "delete":
		sh.remove(arg)
	case "export":
		sh.export(arg)

	default:
		sh.println(ui.Error(fmt.Sprintf("unknown command %q, try \"help\"", verb)))
	}
	return false
}

func (sh *shell) readBody(ctx context.Context) string {
	sh.printf("%s", ui.Notice("Enter body, end with a line containing only \".\"\n"))
	var lines []string
	for {
		line, ok := sh.readLine(ctx)
		if !ok || line == "." {
			break
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

func (sh *shell) toggleRecording(ctx context.Context) {
	wasRecording := sh.nb.Recording()
	recording, err := sh.nb.ToggleRecording(ctx)
	switch {
	case errors.Is(err, capture.ErrAccessDenied):
		sh.println(ui.Error("Microphone unavailable. Check the recorder in your config and try again."))
	case err != nil:
		sh.println(ui.Error(err.Error()))
	case recording:
		sh.println(ui.Notice("Recording... type \"record\" again to stop."))
	case wasRecording:
		sh.println(ui.Success("Recording attached " + sh.nb.Draft().Audio))
	}
}

func (sh *shell) submit() {
	note, outcome, err := sh.nb.Submit()
	switch {
	case errors.Is(err, store.ErrEmptyTitle), errors.Is(err, store.ErrEmptyBody):
		sh.println(ui.Notice("A note needs a title and a body."))
	case errors.Is(err, store.ErrNoteNotFound):
		// rm already ends an edit of the note it removes.
		sh.println(ui.Notice("That note was deleted; the form has been cleared."))
	case err != nil:
		sh.println(ui.Error(err.Error()))
	default:
		verb := "Created"
		if outcome == notebook.Updated {
			verb = "Updated"
		}
		sh.println(ui.Success(fmt.Sprintf("%s note %s", verb, note.ShortID())))
	}
}

func (sh *shell) showForm() {
	frame := ui.FormFrame{
		Draft:     sh.nb.Draft(),
		Recording: sh.nb.Recording(),
	}
	if id, ok := sh.nb.Editing(); ok {
		if note, err := sh.nb.Get(id); err == nil {
			frame.Editing = note.ShortID()
		}
	}
	sh.printf("%s", ui.FormatForm(frame))
}

func (sh *shell) show(ref string) {
	note, err := sh.nb.Lookup(ref)
	if err != nil {
		sh.println(ui.Error(fmt.Sprintf("failed to get note: %v", err)))
		return
	}
	sh.printf("%s", ui.FormatNoteHeader(note))
	content, _ := ui.FormatNoteContent(note.Body, sh.wordWrap)
	sh.printf("%s", content)
}

func (sh *shell) edit(ref string) {
	note, err := sh.nb.Lookup(ref)
	if err != nil {
		sh.println(ui.Error(fmt.Sprintf("failed to get note: %v", err)))
		return
	}
	if err := sh.nb.BeginEdit(note.ID); err != nil {
		sh.println(ui.Error(err.Error()))
		return
	}
	sh.showForm()
}

func (sh *shell) search(query string) {
	if query == "" {
		sh.println(ui.Error("usage: search <text>"))
		return
	}
	notes := sh.nb.Search(query, 0)
	if len(notes) == 0 {
		sh.println(ui.Notice(fmt.Sprintf("No notes match %q.", query)))
		return
	}
	sh.printf("%s", ui.FormatNoteList(notes))
}

func (sh *shell) remove(ref string) {
	// A full ID is deleted as given; removing it twice is harmless.
	if id, err := uuid.Parse(ref); err == nil {
		sh.reportDelete(models.ShortID(id), sh.nb.Delete(id))
		return
	}

	note, err := sh.nb.Lookup(ref)
	if err != nil {
		sh.println(ui.Error(fmt.Sprintf("failed to get note: %v", err)))
		return
	}
	sh.reportDelete(note.ShortID(), sh.nb.Delete(note.ID))
}

func (sh *shell) reportDelete(shortID string, removed bool) {
	if !removed {
		sh.println(ui.Notice(fmt.Sprintf("Note %s was already gone.", shortID)))
		return
	}
	sh.println(ui.Success(fmt.Sprintf("Deleted note %s", shortID)))
}

func (sh *shell) export(path string) {
	if path == "" {
		if err := sh.nb.Export(sh.out); err != nil {
			sh.println(ui.Error(err.Error()))
		}
		return
	}

	f, err := os.Create(path) //nolint:gosec // User-specified output path is expected CLI behavior
	if err != nil {
		sh.println(ui.Error(fmt.Sprintf("failed to create file: %v", err)))
		return
	}
	err = sh.nb.Export(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		sh.println(ui.Error(err.Error()))
		return
	}
	sh.println(ui.Success(fmt.Sprintf("Exported %d notes to %s", sh.nb.Len(), path)))
}

func (sh *shell) printf(format string, args ...any) {
	fmt.Fprintf(sh.out, format, args...)
}

func (sh *shell) println(s string) {
	fmt.Fprintln(sh.out, s)
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
