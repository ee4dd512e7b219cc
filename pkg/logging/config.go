package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config controls how the process-wide logger writes.
type Config struct {
	// Level is the minimum level that gets through.
	Level string

	// Format selects json or console output. "auto" picks console when
	// the output is a terminal and json everywhere else.
	Format string

	// Output is one of stderr, stdout or discard.
	Output string

	// TimeFormat applies to console output only.
	TimeFormat string

	// NoColor disables color in console output.
	NoColor bool
}

// Configure replaces the default logger according to cfg.
func Configure(cfg *Config) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := zerolog.New(newWriter(cfg)).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Logger()
	SetDefault(logger)
}

func newWriter(cfg *Config) io.Writer {
	var out *os.File
	switch strings.ToLower(cfg.Output) {
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		return io.Discard
	default:
		out = os.Stderr
	}

	format := strings.ToLower(cfg.Format)
	if format == "" || format == "auto" {
		if info, _ := out.Stat(); info != nil && info.Mode()&os.ModeCharDevice != 0 {
			format = "console"
		} else {
			format = "json"
		}
	}
	if format == "console" {
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: consoleTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	}
	return out
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "disabled", "none", "off":
		return zerolog.Disabled
	}
	if l, err := zerolog.ParseLevel(strings.ToLower(level)); err == nil && level != "" {
		return l
	}
	return zerolog.InfoLevel
}

func consoleTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	default:
		return format
	}
}
