// Package logging sets up the file-backed zerolog logger. The TUI owns
// stdout and stderr, so all diagnostics go to a log file under the config
// directory.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Open creates the log file and returns a logger plus a close func.
// Unknown level names fall back to info.
func Open(path, level string) (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zerolog.Nop(), func() {}, fmt.Errorf("opening log file: %w", err)
	}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(f).Level(lvl).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

// Discard returns a logger that drops everything, for tests and wiring
// paths where no file is wanted.
func Discard() zerolog.Logger {
	return zerolog.New(io.Discard)
}
