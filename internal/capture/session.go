// ABOUTME: Audio capture session: a two-state machine (idle, recording).
// ABOUTME: Owns the device handle while recording and turns the buffer into an artifact on stop.

package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"
)

var ErrAccessDenied = errors.New("audio input access denied")
var ErrAlreadyRecording = errors.New("already recording")
var ErrAborted = errors.New("recording aborted while starting")
var ErrNotRecording = errors.New("not recording")

// Device is an audio input. Open starts capturing into w and returns a
// handle that stops it. After Handle.Close returns nothing more is written
// to w. Open should wrap a refusal in ErrAccessDenied.
type Device interface {
	Open(ctx context.Context, w io.Writer) (Handle, error)
	MIMEType() string
}

type Handle interface {
	Close() error
}

// Sink receives finished recordings and returns a reference to them.
type Sink interface {
	Put(mimeType string, data []byte) (string, error)
}

type Session struct {
	device Device
	sink   Sink
	logger zerolog.Logger

	mu       sync.Mutex
	starting bool
	aborted  bool
	handle   Handle
	buf      *lockedBuffer
	artifact string
}

func NewSession(device Device, sink Sink, logger zerolog.Logger) *Session {
	return &Session{
		device: device,
		sink:   sink,
		logger: logger.With().Str("component", "capture").Logger(),
	}
}

// Start asks the device for access and begins buffering. A denial leaves the
// session idle. The device is opened without holding the session lock, so
// other calls answer immediately while access is pending; a second Start in
// that window gets ErrAlreadyRecording.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.handle != nil || s.starting {
		s.mu.Unlock()
		return ErrAlreadyRecording
	}
	s.starting, s.aborted = true, false
	s.mu.Unlock()

	buf := &lockedBuffer{}
	h, err := s.device.Open(ctx, buf)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.starting = false

	if err != nil {
		s.logger.Warn().Err(err).Msg("audio input unavailable")
		if errors.Is(err, ErrAccessDenied) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}

	if s.aborted {
		s.aborted = false
		return errors.Join(ErrAborted, h.Close())
	}

	s.handle = h
	s.buf = buf
	s.logger.Debug().Msg("recording started")
	return nil
}

// Stop releases the device and stores what was captured. The handle is
// released exactly once even if closing or storing fails.
func (s *Session) Stop() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handle == nil {
		return "", ErrNotRecording
	}

	h, buf := s.handle, s.buf
	s.handle, s.buf = nil, nil

	if err := h.Close(); err != nil {
		s.logger.Error().Err(err).Msg("release audio input")
		return "", fmt.Errorf("release audio input: %w", err)
	}

	ref, err := s.sink.Put(s.device.MIMEType(), buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("store recording: %w", err)
	}
	s.artifact = ref
	s.logger.Debug().Str("artifact", ref).Int("bytes", buf.Len()).Msg("recording stopped")
	return ref, nil
}

func (s *Session) Recording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Artifact is the reference produced by the most recent stop, or "".
func (s *Session) Artifact() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact
}

// Abort releases an active recording without keeping its audio. A start
// still waiting on the device is cancelled once the device answers.
func (s *Session) Abort() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.starting {
		s.aborted = true
		return nil
	}
	if s.handle == nil {
		return nil
	}
	h := s.handle
	s.handle, s.buf = nil, nil
	return h.Close()
}

// lockedBuffer lets a device write from its own goroutine.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), b.buf.Bytes()...)
}

func (b *lockedBuffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Len()
}
