// Package logging configures the zerolog global logger used for diagnostics.
// Diagnostics always go to stderr so that stdout carries only command output.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLogLevel overrides the configured level when set.
const EnvLogLevel = "READMANIFEST_LOG_LEVEL"

// Options controls Configure.
type Options struct {
	// Level is a zerolog level name; empty selects warn.
	Level string

	// Verbose forces the debug level.
	Verbose bool

	// NoColor disables ANSI colors in the console writer.
	NoColor bool

	// Out is the destination; nil selects os.Stderr.
	Out io.Writer
}

// Configure installs a console logger as the global zerolog logger and
// returns it.
func Configure(opts Options) zerolog.Logger {
	out := opts.Out
	if out == nil {
		out = os.Stderr
	}

	level := parseLevel(opts.Level, zerolog.WarnLevel)
	if v, ok := os.LookupEnv(EnvLogLevel); ok {
		level = parseLevel(v, level)
	}
	if opts.Verbose {
		level = zerolog.DebugLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    opts.NoColor,
		TimeFormat: time.RFC3339,
	}
	logger := zerolog.New(output).Level(level).With().Timestamp().Str("app", "readmanifest").Logger()
	log.Logger = logger
	return logger
}

// Discard returns a logger that drops everything, for tests and library use.
func Discard() zerolog.Logger {
	return zerolog.Nop()
}

func parseLevel(s string, fallback zerolog.Level) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fallback
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil {
		return fallback
	}
	return lvl
}
