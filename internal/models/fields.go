// ABOUTME: Fields is the mutable value set copied into a note on submit.
// ABOUTME: Draft is the single staging area bound to the input form.

package models

import "strings"

// Fields holds the values a submit copies into a note.
type Fields struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	Image string `json:"image,omitempty"`
	Audio string `json:"audio,omitempty"`
}

// Complete reports whether both title and body carry text.
func (f Fields) Complete() bool {
	return strings.TrimSpace(f.Title) != "" && strings.TrimSpace(f.Body) != ""
}

// Draft is the form being filled in. It may hold both image sources at once.
type Draft struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	ImageFile string `json:"image_file,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	Audio     string `json:"audio,omitempty"`
}

// Fields resolves the draft into the values a submit would store.
// A picked file wins over a typed URL.
func (d Draft) Fields() Fields {
	image := d.ImageURL
	if d.ImageFile != "" {
		image = d.ImageFile
	}
	return Fields{
		Title: d.Title,
		Body:  d.Body,
		Image: image,
		Audio: d.Audio,
	}
}

// Load replaces the draft with the values of an existing note.
func (d *Draft) Load(f Fields) {
	*d = Draft{
		Title:    f.Title,
		Body:     f.Body,
		ImageURL: f.Image,
		Audio:    f.Audio,
	}
}

// Clear resets every field.
func (d *Draft) Clear() {
	*d = Draft{}
}

// Empty reports whether nothing has been entered.
func (d Draft) Empty() bool {
	return d == Draft{}
}
