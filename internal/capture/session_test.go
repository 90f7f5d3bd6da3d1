// ABOUTME: Tests for the capture session state machine.
// ABOUTME: Uses a fake device to exercise denial, stop/start cycles and handle release.

package capture

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/harper/notepad/internal/blob"
	"github.com/harper/notepad/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	deny     error
	data     []byte
	closeErr error
	opened   int
	closed   int
}

func (d *fakeDevice) Open(ctx context.Context, w io.Writer) (Handle, error) {
	if d.deny != nil {
		return nil, d.deny
	}
	d.opened++
	if _, err := w.Write(d.data); err != nil {
		return nil, err
	}
	return &fakeHandle{d: d}, nil
}

func (d *fakeDevice) MIMEType() string { return "audio/webm" }

type fakeHandle struct{ d *fakeDevice }

func (h *fakeHandle) Close() error {
	h.d.closed++
	return h.d.closeErr
}

type fakeSink struct {
	puts map[string][]byte
	err  error
}

func (s *fakeSink) Put(mimeType string, data []byte) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	if s.puts == nil {
		s.puts = make(map[string][]byte)
	}
	ref := fmt.Sprintf("blob:%d", len(s.puts)+1)
	s.puts[ref] = data
	return ref, nil
}

func TestStartStopProducesArtifact(t *testing.T) {
	dev := &fakeDevice{data: []byte("audio")}
	sink := &fakeSink{}
	s := NewSession(dev, sink, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Recording())

	ref, err := s.Stop()
	require.NoError(t, err)
	assert.False(t, s.Recording())
	assert.Equal(t, ref, s.Artifact())
	assert.Equal(t, []byte("audio"), sink.puts[ref])
	assert.Equal(t, 1, dev.closed)
}

func TestStartWhileRecording(t *testing.T) {
	dev := &fakeDevice{}
	s := NewSession(dev, &fakeSink{}, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRecording)
	assert.Equal(t, 1, dev.opened)
}

func TestStopWhileIdle(t *testing.T) {
	dev := &fakeDevice{}
	s := NewSession(dev, &fakeSink{}, logging.Nop())

	_, err := s.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
	assert.Equal(t, 0, dev.closed)
	assert.Empty(t, s.Artifact())
}

func TestDeniedStaysIdle(t *testing.T) {
	dev := &fakeDevice{deny: fmt.Errorf("%w: user said no", ErrAccessDenied)}
	s := NewSession(dev, &fakeSink{}, logging.Nop())

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, s.Recording())
	assert.Empty(t, s.Artifact())
}

func TestOpenFailureIsDenial(t *testing.T) {
	dev := &fakeDevice{deny: errors.New("no such device")}
	s := NewSession(dev, &fakeSink{}, logging.Nop())

	err := s.Start(context.Background())
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.False(t, s.Recording())
}

func TestRestartLeavesSingleCurrentArtifact(t *testing.T) {
	dev := &fakeDevice{data: []byte("take")}
	sink := &fakeSink{}
	s := NewSession(dev, sink, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	first, err := s.Stop()
	require.NoError(t, err)

	require.NoError(t, s.Start(context.Background()))
	second, err := s.Stop()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.Equal(t, second, s.Artifact())
	assert.Equal(t, 2, dev.opened)
	assert.Equal(t, 2, dev.closed)
	assert.False(t, s.Recording())
}

func TestReleaseFailureStillReturnsToIdle(t *testing.T) {
	dev := &fakeDevice{closeErr: errors.New("device busy")}
	s := NewSession(dev, &fakeSink{}, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Stop()
	require.Error(t, err)
	assert.False(t, s.Recording())

	_, err = s.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)
	assert.Equal(t, 1, dev.closed)
}

func TestSinkFailureReleasesHandle(t *testing.T) {
	dev := &fakeDevice{}
	s := NewSession(dev, &fakeSink{err: errors.New("full")}, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	_, err := s.Stop()
	require.Error(t, err)
	assert.False(t, s.Recording())
	assert.Equal(t, 1, dev.closed)
	assert.Empty(t, s.Artifact())
}

func TestAbortDiscardsAudio(t *testing.T) {
	dev := &fakeDevice{data: []byte("x")}
	sink := &fakeSink{}
	s := NewSession(dev, sink, logging.Nop())

	require.NoError(t, s.Abort())
	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Abort())

	assert.False(t, s.Recording())
	assert.Empty(t, sink.puts)
	assert.Equal(t, 1, dev.closed)
}

func TestStopStoresInArtifactStore(t *testing.T) {
	blobs, err := blob.Open(logging.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = blobs.Close() })

	s := NewSession(&fakeDevice{data: []byte("pcm")}, blobs, logging.Nop())
	require.NoError(t, s.Start(context.Background()))
	ref, err := s.Stop()
	require.NoError(t, err)

	b, err := blobs.Get(ref)
	require.NoError(t, err)
	assert.Equal(t, "audio/webm", b.MimeType)
	assert.Equal(t, []byte("pcm"), b.Data)
}

// gatedDevice blocks in Open until released, like a recorder waiting on a
// permission prompt.
type gatedDevice struct {
	entered chan struct{}
	release chan struct{}
	closed  atomic.Int32
	once    sync.Once
}

func newGatedDevice() *gatedDevice {
	return &gatedDevice{entered: make(chan struct{}), release: make(chan struct{})}
}

func (d *gatedDevice) Open(ctx context.Context, w io.Writer) (Handle, error) {
	d.once.Do(func() { close(d.entered) })
	<-d.release
	return gatedHandle{d}, nil
}

func (d *gatedDevice) MIMEType() string { return "audio/wav" }

type gatedHandle struct{ d *gatedDevice }

func (h gatedHandle) Close() error {
	h.d.closed.Add(1)
	return nil
}

func startPending(t *testing.T, s *Session, dev *gatedDevice) <-chan error {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- s.Start(context.Background()) }()

	select {
	case <-dev.entered:
	case <-time.After(5 * time.Second):
		t.Fatal("device was never opened")
	}
	return errc
}

func TestSessionAnswersWhileDeviceOpens(t *testing.T) {
	dev := newGatedDevice()
	s := NewSession(dev, &fakeSink{}, logging.Nop())
	errc := startPending(t, s, dev)

	assert.False(t, s.Recording())
	assert.ErrorIs(t, s.Start(context.Background()), ErrAlreadyRecording)
	_, err := s.Stop()
	assert.ErrorIs(t, err, ErrNotRecording)

	close(dev.release)
	require.NoError(t, <-errc)
	assert.True(t, s.Recording())

	_, err = s.Stop()
	require.NoError(t, err)
	assert.Equal(t, int32(1), dev.closed.Load())
}

func TestAbortWhileDeviceOpens(t *testing.T) {
	dev := newGatedDevice()
	sink := &fakeSink{}
	s := NewSession(dev, sink, logging.Nop())
	errc := startPending(t, s, dev)

	require.NoError(t, s.Abort())
	close(dev.release)

	assert.ErrorIs(t, <-errc, ErrAborted)
	assert.False(t, s.Recording())
	assert.Equal(t, int32(1), dev.closed.Load())
	assert.Empty(t, sink.puts)

	// The session is usable again.
	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.Recording())
}
