// ABOUTME: In-memory note store for a single session.
// ABOUTME: Ordered by insertion; update replaces by identity, remove is idempotent.

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/notepad/internal/models"
)

var ErrEmptyTitle = errors.New("note title cannot be empty")
var ErrEmptyBody = errors.New("note body cannot be empty")
var ErrNoteNotFound = errors.New("note not found")
var ErrRefTooShort = errors.New("note reference must be at least 6 characters")
var ErrAmbiguousRef = errors.New("reference matches multiple notes")

const minRefLen = 6

// Store exclusively owns its notes. Everything handed out is a copy.
// It is not safe for concurrent use; the notebook serializes access.
type Store struct {
	notes []*models.Note
}

func New() *Store {
	return &Store{}
}

func validate(f models.Fields) error {
	if strings.TrimSpace(f.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(f.Body) == "" {
		return ErrEmptyBody
	}
	return nil
}

// Add appends a new note with a fresh identity.
func (s *Store) Add(f models.Fields) (*models.Note, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	note := models.NewNote(f)
	s.notes = append(s.notes, note)
	return clone(note), nil
}

// Update replaces the mutable fields of the note with the given identity,
// keeping its position.
func (s *Store) Update(id uuid.UUID, f models.Fields) (*models.Note, error) {
	if err := validate(f); err != nil {
		return nil, err
	}
	i := s.index(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	s.notes[i].Apply(f)
	return clone(s.notes[i]), nil
}

// Remove deletes the note if present and reports whether it did.
func (s *Store) Remove(id uuid.UUID) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return true
}

func (s *Store) Get(id uuid.UUID) (*models.Note, error) {
	i := s.index(id)
	if i < 0 {
		return nil, ErrNoteNotFound
	}
	return clone(s.notes[i]), nil
}

// Lookup resolves a full UUID, a prefix, or a short ID suffix as shown in
// listings.
func (s *Store) Lookup(ref string) (*models.Note, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if id, err := uuid.Parse(ref); err == nil {
		return s.Get(id)
	}
	if len(ref) < minRefLen {
		return nil, ErrRefTooShort
	}

	var matches []*models.Note
	for _, n := range s.notes {
		idStr := n.ID.String()
		if strings.HasPrefix(idStr, ref) || strings.HasSuffix(idStr, ref) {
			matches = append(matches, n)
		}
	}

	if len(matches) == 0 {
		return nil, ErrNoteNotFound
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%w: %d matches", ErrAmbiguousRef, len(matches))
	}
	return clone(matches[0]), nil
}

// Search returns copies of the notes whose title or body contains query,
// ignoring case, in insertion order. A limit of zero or less means no limit
// and an empty query matches every note.
func (s *Store) Search(query string, limit int) []*models.Note {
	query = strings.ToLower(strings.TrimSpace(query))

	var out []*models.Note
	for _, n := range s.notes {
		if limit > 0 && len(out) >= limit {
			break
		}
		if strings.Contains(strings.ToLower(n.Title), query) ||
			strings.Contains(strings.ToLower(n.Body), query) {
			out = append(out, clone(n))
		}
	}
	return out
}

// List returns copies of all notes in insertion order.
func (s *Store) List() []*models.Note {
	out := make([]*models.Note, len(s.notes))
	for i, n := range s.notes {
		out[i] = clone(n)
	}
	return out
}

func (s *Store) Len() int {
	return len(s.notes)
}

func (s *Store) index(id uuid.UUID) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func clone(n *models.Note) *models.Note {
	c := *n
	return &c
}
