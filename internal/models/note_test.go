// ABOUTME: Tests for Note model constructor and methods.
// ABOUTME: Validates ID generation, field replacement and timestamps.

package models

import (
	"testing"
	"time"
)

func TestNewNote(t *testing.T) {
	f := Fields{Title: "Test Note", Body: "This is test content", Image: "https://example.com/a.png"}

	note := NewNote(f)

	if note.ID.Version() != 7 {
		t.Errorf("expected UUIDv7, got version %d", note.ID.Version())
	}
	if note.Title != f.Title {
		t.Errorf("expected title %q, got %q", f.Title, note.Title)
	}
	if note.Body != f.Body {
		t.Errorf("expected body %q, got %q", f.Body, note.Body)
	}
	if note.Image != f.Image {
		t.Errorf("expected image %q, got %q", f.Image, note.Image)
	}
	if note.Audio != "" {
		t.Errorf("expected no audio, got %q", note.Audio)
	}
	if note.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
	if note.UpdatedAt.IsZero() {
		t.Error("expected UpdatedAt to be set")
	}
}

func TestNewNoteIDsIncrease(t *testing.T) {
	a := NewNote(Fields{Title: "a", Body: "a"})
	b := NewNote(Fields{Title: "b", Body: "b"})

	if a.ID == b.ID {
		t.Fatal("expected distinct IDs")
	}
	if a.ID.String() >= b.ID.String() {
		t.Errorf("expected %s to sort before %s", a.ID, b.ID)
	}
}

func TestNoteTouch(t *testing.T) {
	note := NewNote(Fields{Title: "Test", Body: "Content"})
	originalUpdated := note.UpdatedAt

	time.Sleep(time.Millisecond)
	note.Touch()

	if !note.UpdatedAt.After(originalUpdated) {
		t.Error("expected UpdatedAt to be updated")
	}
}

func TestNoteApplyReplacesEverything(t *testing.T) {
	note := NewNote(Fields{Title: "Old", Body: "Old body", Image: "img", Audio: "blob:1"})

	note.Apply(Fields{Title: "New", Body: "New body"})

	if got := note.Fields(); got != (Fields{Title: "New", Body: "New body"}) {
		t.Errorf("unexpected fields after apply: %+v", got)
	}
}

func TestNoteShortID(t *testing.T) {
	note := NewNote(Fields{Title: "t", Body: "b"})
	full := note.ID.String()

	if got := note.ShortID(); got != full[len(full)-ShortIDLen:] {
		t.Errorf("expected tail of %s, got %q", full, got)
	}
}

func TestNoteHeadingFoldsLineBreaks(t *testing.T) {
	note := NewNote(Fields{Title: "Shopping\nlist\r\nfor\rMonday", Body: "b"})

	if got := note.Heading(); got != "Shopping list for Monday" {
		t.Errorf("unexpected heading %q", got)
	}
	if note.Title != "Shopping\nlist\r\nfor\rMonday" {
		t.Errorf("title was modified: %q", note.Title)
	}
}
