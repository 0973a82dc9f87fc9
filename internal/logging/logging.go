// Package logging initializes the global zerolog logger for lumen.
//
// The TUI owns the terminal, so interactive sessions log to a file under
// the configured log directory rather than stderr. One-shot commands that
// never draw a screen may log to stderr directly.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Init configures the global logger. LUMEN_LOG_LEVEL controls the level:
// debug, info, warn, error (default: info).
func Init(w io.Writer) {
	switch os.Getenv("LUMEN_LOG_LEVEL") {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
}

// InitConsole routes the global logger to stderr with human-readable
// output, for commands that do not take over the terminal.
func InitConsole() {
	Init(os.Stderr)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// OpenLogFile creates the log directory and opens the log file for
// appending. The caller owns closing the returned file.
func OpenLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return file, nil
}
