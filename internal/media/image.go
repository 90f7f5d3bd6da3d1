// ABOUTME: Image attachment sources: picked local files and typed URLs.
// ABOUTME: Picked files become ephemeral artifacts; URLs are used verbatim.

package media

import (
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
)

const fallbackMIMEType = "application/octet-stream"

// Putter stores bytes and hands back a reference.
type Putter interface {
	Put(mimeType string, data []byte) (string, error)
}

// DetectMIMEType guesses from the file extension only.
func DetectMIMEType(name string) string {
	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(name)))
	if mimeType == "" {
		return fallbackMIMEType
	}
	return mimeType
}

// Pick stores picked image bytes and returns the local reference.
// Content is not inspected.
func Pick(p Putter, name string, data []byte) (string, error) {
	ref, err := p.Put(DetectMIMEType(name), data)
	if err != nil {
		return "", fmt.Errorf("store image %s: %w", filepath.Base(name), err)
	}
	return ref, nil
}

func PickFile(p Putter, path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-picked file path is expected behavior
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	return Pick(p, path, data)
}

// NormalizeURL trims what a text field tends to collect. No reachability or
// format check is made.
func NormalizeURL(raw string) string {
	return strings.TrimSpace(raw)
}
