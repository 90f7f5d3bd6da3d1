// ABOUTME: Tests for the in-memory artifact store.
// ABOUTME: Validates put/get round trips, counting and reference parsing.

package blob

import (
	"testing"

	"github.com/harper/notepad/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPutGet(t *testing.T) {
	s := openTestStore(t)

	ref, err := s.Put("audio/wav", []byte("RIFF...."))
	require.NoError(t, err)
	assert.True(t, IsRef(ref))

	b, err := s.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, ref, b.Ref)
	assert.Equal(t, "audio/wav", b.MimeType)
	assert.Equal(t, []byte("RIFF...."), b.Data)
}

func TestPutReturnsDistinctRefs(t *testing.T) {
	s := openTestStore(t)

	a, err := s.Put("image/png", []byte("a"))
	require.NoError(t, err)
	b, err := s.Put("image/png", []byte("a"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	n, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get("blob:6f1c2a52-8d1e-4a8e-9d7f-0c1b2a3d4e5f")
	assert.ErrorIs(t, err, ErrBlobNotFound)

	_, err = s.Get("https://example.com/cat.png")
	assert.ErrorIs(t, err, ErrInvalidRef)
}

func TestIsRef(t *testing.T) {
	assert.False(t, IsRef(""))
	assert.False(t, IsRef("blob:not-a-uuid"))
	assert.False(t, IsRef("https://example.com/a.png"))
	assert.True(t, IsRef("blob:6f1c2a52-8d1e-4a8e-9d7f-0c1b2a3d4e5f"))
}
