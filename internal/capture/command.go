// ABOUTME: Device backed by an external recorder process writing audio to stdout.
// ABOUTME: A missing binary or an early exit is reported as denied access.

package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"
)

// DefaultRecorder records 16-bit stereo WAV from the default ALSA device.
var DefaultRecorder = []string{"arecord", "-q", "-f", "cd", "-t", "wav", "-"}

const (
	DefaultMIMEType = "audio/wav"

	// startGrace is how long a recorder must stay up before we trust it.
	// Recorders refused by the OS usually exit well inside this window.
	startGrace  = 250 * time.Millisecond
	stopTimeout = 3 * time.Second
)

type CommandDevice struct {
	Argv     []string
	MimeType string
}

func NewCommandDevice(argv []string, mimeType string) *CommandDevice {
	if len(argv) == 0 {
		argv = DefaultRecorder
	}
	if mimeType == "" {
		mimeType = DefaultMIMEType
	}
	return &CommandDevice{Argv: argv, MimeType: mimeType}
}

func (d *CommandDevice) MIMEType() string {
	return d.MimeType
}

func (d *CommandDevice) Open(ctx context.Context, w io.Writer) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var stderr bytes.Buffer
	cmd := exec.Command(d.Argv[0], d.Argv[1:]...) //nolint:gosec // Recorder command comes from user config
	cmd.Stdout = w
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAccessDenied, err)
	}

	h := &commandHandle{cmd: cmd, done: make(chan struct{})}
	go func() {
		h.waitErr = cmd.Wait()
		close(h.done)
	}()

	select {
	case <-h.done:
		msg := strings.TrimSpace(stderr.String())
		if msg == "" && h.waitErr != nil {
			msg = h.waitErr.Error()
		}
		return nil, fmt.Errorf("%w: recorder exited: %s", ErrAccessDenied, msg)
	case <-time.After(startGrace):
		return h, nil
	}
}

type commandHandle struct {
	cmd     *exec.Cmd
	done    chan struct{}
	waitErr error
	once    sync.Once
	err     error
}

// Close interrupts the recorder so it can finish the file, and kills it if
// it does not exit in time. Wait has returned by the time Close does, so
// all output has been copied.
func (h *commandHandle) Close() error {
	h.once.Do(func() {
		select {
		case <-h.done:
		default:
			h.interrupt()
		}

		// Exiting on our signal is the normal way out.
		var exitErr *exec.ExitError
		if h.waitErr != nil && !errors.As(h.waitErr, &exitErr) {
			h.err = h.waitErr
		}
	})
	return h.err
}

func (h *commandHandle) interrupt() {
	if err := h.cmd.Process.Signal(os.Interrupt); err != nil && !errors.Is(err, os.ErrProcessDone) {
		_ = h.cmd.Process.Kill()
	}

	select {
	case <-h.done:
	case <-time.After(stopTimeout):
		_ = h.cmd.Process.Kill()
		<-h.done
	}
}
