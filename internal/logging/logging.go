// Package logging builds the zerolog loggers used by the binaries.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Format selects how records are rendered.
type Format int

const (
	// Console is human-readable output for terminals.
	Console Format = iota
	// JSON is one JSON object per line.
	JSON
)

// Options configures New.
type Options struct {
	Level  string    // trace|debug|info|warn|error; empty means info
	Format Format    // Console or JSON
	Output io.Writer // defaults to os.Stderr
}

// ParseLevel maps a level name to a zerolog level. Unknown names fall back to
// info and report ok=false.
func ParseLevel(s string) (zerolog.Level, bool) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return zerolog.InfoLevel, true
	}
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel, false
	}
	return lvl, true
}

// New returns a logger with a timestamp on every record.
func New(opts Options) zerolog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if opts.Format == Console {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly}
	}
	lvl, ok := ParseLevel(opts.Level)
	log := zerolog.New(out).Level(lvl).With().Timestamp().Logger()
	if !ok {
		log.Warn().Str("level", opts.Level).Msg("unknown log level, using info")
	}
	return log
}
