// Package logging provides structured logging for the gastroflow system
// built on zerolog. A package-level default logger serves the common case;
// context helpers attach per-run fields (run ID, source, operation) so that
// every record written during a reconciliation run can be traced.
package logging

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	defaultLogger zerolog.Logger
	mu            sync.RWMutex
)

func init() {
	defaultLogger = createDefaultLogger()
}

// createDefaultLogger builds the initial logger: console output on a
// terminal, JSON otherwise.
func createDefaultLogger() zerolog.Logger {
	var w io.Writer = os.Stderr
	if fileInfo, err := os.Stderr.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		w = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
		}
	}
	return zerolog.New(w).Level(zerolog.InfoLevel).With().Timestamp().Logger()
}

// Default returns the default logger.
func Default() *zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &defaultLogger
}

// SetDefault replaces the default logger.
func SetDefault(logger zerolog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

// New creates a JSON logger writing to w.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).With().Timestamp().Logger()
}

// NewConsole creates a human-readable console logger writing to stderr.
func NewConsole() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.Kitchen,
	}).With().Timestamp().Logger()
}

// Debug starts a debug-level event on the default logger.
func Debug() *zerolog.Event { return Default().Debug() }

// Info starts an info-level event on the default logger.
func Info() *zerolog.Event { return Default().Info() }

// Warn starts a warn-level event on the default logger.
func Warn() *zerolog.Event { return Default().Warn() }

// Error starts an error-level event on the default logger.
func Error() *zerolog.Event { return Default().Error() }
