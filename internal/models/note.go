// ABOUTME: Note model representing a note with optional image and voice recording.
// ABOUTME: Provides constructor and methods for note lifecycle.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type Note struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Image     string    `json:"image,omitempty"`
	Audio     string    `json:"audio,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewNote builds a note from fields. IDs are UUIDv7, so they sort in
// creation order within a session.
func NewNote(f Fields) *Note {
	now := time.Now()
	return &Note{
		ID:        newID(),
		Title:     f.Title,
		Body:      f.Body,
		Image:     f.Image,
		Audio:     f.Audio,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (n *Note) Touch() {
	n.UpdatedAt = time.Now()
}

// Apply replaces every mutable field. There is no partial patch.
func (n *Note) Apply(f Fields) {
	n.Title = f.Title
	n.Body = f.Body
	n.Image = f.Image
	n.Audio = f.Audio
	n.Touch()
}

func (n *Note) Fields() Fields {
	return Fields{
		Title: n.Title,
		Body:  n.Body,
		Image: n.Image,
		Audio: n.Audio,
	}
}

func newID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// ShortIDLen is the length of the handle shown in listings. The tail of a
// UUIDv7 is random; the head is a timestamp shared by every note in a session.
const ShortIDLen = 8

func (n *Note) ShortID() string {
	return ShortID(n.ID)
}

// ShortID returns the listing handle for any note identity.
func ShortID(id uuid.UUID) string {
	s := id.String()
	return s[len(s)-ShortIDLen:]
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Heading is the title folded onto one line, for markdown headings and
// list rows.
func (n *Note) Heading() string {
	return lineBreaks.Replace(n.Title)
}
