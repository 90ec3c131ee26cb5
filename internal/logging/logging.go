// Package logging builds the zerolog loggers used by the CLI, TUI and server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Format selects the log encoding.
type Format int

const (
	// Console is the human-readable writer for interactive commands.
	Console Format = iota
	// JSON writes one object per line, for payplan serve.
	JSON
)

// ParseLevel maps a --log-level flag value to a zerolog level.
// An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("parsing log level %q: %w", s, err)
	}
	return lvl, nil
}

// New returns a logger writing to w in the given format.
func New(w io.Writer, format Format, level zerolog.Level) zerolog.Logger {
	if format == Console {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen, NoColor: !isTerminal(w)}
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

// NewFile opens (or creates) a log file for the TUI, where stderr belongs to
// the alt screen. The caller closes the returned file.
func NewFile(path string, level zerolog.Level) (zerolog.Logger, *os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
