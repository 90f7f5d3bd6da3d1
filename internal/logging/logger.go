// ABOUTME: Structured logger construction for notepad.
// ABOUTME: Wraps zerolog and adapts it for libraries that want printf loggers.

package logging

import (
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// New returns a timestamped logger writing JSON lines to w.
// Unknown level names fall back to info.
func New(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.SyncWriter(w)).Level(lvl).With().Timestamp().Logger()
}

// Nop discards everything. Used by tests and as a zero value.
func Nop() zerolog.Logger {
	return zerolog.Nop()
}

// Printf adapts a zerolog logger to the Errorf/Warningf/Infof/Debugf
// interface badger expects.
type Printf struct {
	L zerolog.Logger
}

func (p Printf) Errorf(format string, args ...interface{}) {
	p.L.Error().Msg(trim(format, args))
}

func (p Printf) Warningf(format string, args ...interface{}) {
	p.L.Warn().Msg(trim(format, args))
}

func (p Printf) Infof(format string, args ...interface{}) {
	p.L.Info().Msg(trim(format, args))
}

func (p Printf) Debugf(format string, args ...interface{}) {
	p.L.Debug().Msg(trim(format, args))
}

func trim(format string, args []interface{}) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}
