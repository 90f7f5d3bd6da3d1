// ABOUTME: Tests for Fields validation and Draft staging.
// ABOUTME: Covers image precedence and load/clear round trips.

package models

import "testing"

func TestFieldsComplete(t *testing.T) {
	cases := []struct {
		name string
		f    Fields
		want bool
	}{
		{"both", Fields{Title: "t", Body: "b"}, true},
		{"no title", Fields{Body: "b"}, false},
		{"no body", Fields{Title: "t"}, false},
		{"whitespace title", Fields{Title: "  ", Body: "b"}, false},
		{"media only", Fields{Image: "x", Audio: "y"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.f.Complete(); got != tc.want {
				t.Errorf("Complete() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDraftFieldsPrefersPickedFile(t *testing.T) {
	d := Draft{Title: "t", Body: "b", ImageFile: "blob:abc", ImageURL: "https://example.com/x.png"}

	if got := d.Fields().Image; got != "blob:abc" {
		t.Errorf("expected picked file to win, got %q", got)
	}

	d.ImageFile = ""
	if got := d.Fields().Image; got != "https://example.com/x.png" {
		t.Errorf("expected typed URL, got %q", got)
	}
}

func TestDraftLoadRoundTrip(t *testing.T) {
	f := Fields{Title: "t", Body: "b", Image: "blob:img", Audio: "blob:aud"}

	var d Draft
	d.ImageFile = "stale"
	d.Load(f)

	if d.ImageFile != "" {
		t.Errorf("expected picked file cleared, got %q", d.ImageFile)
	}
	if got := d.Fields(); got != f {
		t.Errorf("expected %+v, got %+v", f, got)
	}
}

func TestDraftClear(t *testing.T) {
	d := Draft{Title: "t", Body: "b", ImageURL: "u", Audio: "a"}
	d.Clear()

	if !d.Empty() {
		t.Errorf("expected empty draft, got %+v", d)
	}
}
