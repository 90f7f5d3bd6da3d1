// ABOUTME: Notebook owns the note store, the single draft and the capture session.
// ABOUTME: Every form event from the shell or MCP server goes through here.

package notebook

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/harper/notepad/internal/blob"
	"github.com/harper/notepad/internal/capture"
	"github.com/harper/notepad/internal/media"
	"github.com/harper/notepad/internal/models"
	"github.com/harper/notepad/internal/store"
	"github.com/rs/zerolog"
)

type Outcome int

const (
	Added Outcome = iota + 1
	Updated
)

func (o Outcome) String() string {
	switch o {
	case Added:
		return "added"
	case Updated:
		return "updated"
	default:
		return "none"
	}
}

// Notebook is safe for concurrent use; all state sits behind one lock.
type Notebook struct {
	mu      sync.Mutex
	store   *store.Store
	draft   models.Draft
	editing uuid.UUID
	capture *capture.Session
	blobs   *blob.Store
	logger  zerolog.Logger
}

// Open creates an empty notebook recording from device.
func Open(device capture.Device, logger zerolog.Logger) (*Notebook, error) {
	blobs, err := blob.Open(logger)
	if err != nil {
		return nil, err
	}
	return &Notebook{
		store:   store.New(),
		capture: capture.NewSession(device, blobs, logger),
		blobs:   blobs,
		logger:  logger.With().Str("component", "notebook").Logger(),
	}, nil
}

// Close drops any recording in progress and frees the artifacts.
func (nb *Notebook) Close() error {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return errors.Join(nb.capture.Abort(), nb.blobs.Close())
}

func (nb *Notebook) SetTitle(title string) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.draft.Title = title
}

func (nb *Notebook) SetBody(body string) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.draft.Body = body
}

func (nb *Notebook) SetImageURL(url string) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.draft.ImageURL = media.NormalizeURL(url)
}

// PickImage stores picked image bytes and stages the reference.
func (nb *Notebook) PickImage(name string, data []byte) (string, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	ref, err := media.Pick(nb.blobs, name, data)
	if err != nil {
		return "", err
	}
	nb.draft.ImageFile = ref
	return ref, nil
}

func (nb *Notebook) PickImageFile(path string) (string, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	ref, err := media.PickFile(nb.blobs, path)
	if err != nil {
		return "", err
	}
	nb.draft.ImageFile = ref
	return ref, nil
}

func (nb *Notebook) ClearImage() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.draft.ImageFile = ""
	nb.draft.ImageURL = ""
}

// Submit commits the draft: add when composing, update when editing.
// On success the draft is cleared and editing ends. On rejection nothing
// changes and the error says why.
func (nb *Notebook) Submit() (*models.Note, Outcome, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	fields := nb.draft.Fields()

	if nb.editing == uuid.Nil {
		note, err := nb.store.Add(fields)
		if err != nil {
			nb.logger.Debug().Err(err).Msg("add rejected")
			return nil, 0, err
		}
		nb.draft.Clear()
		nb.logger.Info().Str("note", note.ID.String()).Msg("note added")
		return note, Added, nil
	}

	note, err := nb.store.Update(nb.editing, fields)
	if err != nil {
		nb.logger.Debug().Err(err).Str("note", nb.editing.String()).Msg("update rejected")
		// Delete ends an edit of the note it removes, so this only fires if
		// the store lost the note some other way.
		if errors.Is(err, store.ErrNoteNotFound) {
			nb.resetLocked()
		}
		return nil, 0, err
	}
	nb.resetLocked()
	nb.logger.Info().Str("note", note.ID.String()).Msg("note updated")
	return note, Updated, nil
}

// BeginEdit loads a note into the draft. An unknown id changes nothing.
func (nb *Notebook) BeginEdit(id uuid.UUID) error {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	note, err := nb.store.Get(id)
	if err != nil {
		return err
	}
	nb.draft.Load(note.Fields())
	nb.editing = id
	return nil
}

func (nb *Notebook) CancelEdit() {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.resetLocked()
}

// Delete removes a note. Deleting the note being edited also ends the edit.
func (nb *Notebook) Delete(id uuid.UUID) bool {
	nb.mu.Lock()
	defer nb.mu.Unlock()

	removed := nb.store.Remove(id)
	if removed {
		nb.logger.Info().Str("note", id.String()).Msg("note deleted")
	}
	if id == nb.editing {
		nb.resetLocked()
	}
	return removed
}

// StartRecording asks for the microphone. Denial leaves everything as it was
// and is returned for the caller to show or ignore. The session has its own
// lock; the draft stays editable while the device is opening.
func (nb *Notebook) StartRecording(ctx context.Context) error {
	return nb.capture.Start(ctx)
}

// StopRecording finishes the recording and stages it as the draft's audio.
func (nb *Notebook) StopRecording() (string, error) {
	ref, err := nb.capture.Stop()
	if err != nil {
		return "", err
	}

	nb.mu.Lock()
	defer nb.mu.Unlock()
	nb.draft.Audio = ref
	return ref, nil
}

// ToggleRecording is the form's single record/stop button. It reports
// whether a recording is running afterwards.
func (nb *Notebook) ToggleRecording(ctx context.Context) (bool, error) {
	if nb.Recording() {
		_, err := nb.StopRecording()
		return nb.Recording(), err
	}
	err := nb.StartRecording(ctx)
	return nb.Recording(), err
}

func (nb *Notebook) Recording() bool {
	return nb.capture.Recording()
}

func (nb *Notebook) Draft() models.Draft {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.draft
}

// Editing returns the identity being edited, if any.
func (nb *Notebook) Editing() (uuid.UUID, bool) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.editing, nb.editing != uuid.Nil
}

func (nb *Notebook) Notes() []*models.Note {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.store.List()
}

func (nb *Notebook) Len() int {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.store.Len()
}

func (nb *Notebook) Get(id uuid.UUID) (*models.Note, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.store.Get(id)
}

// Lookup resolves a full id, prefix or short id.
func (nb *Notebook) Lookup(ref string) (*models.Note, error) {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.store.Lookup(ref)
}

// Search finds notes whose title or body contains query, in store order.
func (nb *Notebook) Search(query string, limit int) []*models.Note {
	nb.mu.Lock()
	defer nb.mu.Unlock()
	return nb.store.Search(query, limit)
}

// LastRecording is the reference of the most recent finished recording,
// which may already have been submitted with a note.
func (nb *Notebook) LastRecording() string {
	return nb.capture.Artifact()
}

// ArtifactCount is the number of images and recordings held this session.
func (nb *Notebook) ArtifactCount() (int, error) {
	return nb.blobs.Count()
}

// Artifact returns the bytes behind a local media reference.
func (nb *Notebook) Artifact(ref string) (*blob.Blob, error) {
	b, err := nb.blobs.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("artifact %s: %w", ref, err)
	}
	return b, nil
}

func (nb *Notebook) resetLocked() {
	nb.draft.Clear()
	nb.editing = uuid.Nil
}
