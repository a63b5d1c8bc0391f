// Package logger builds the zerolog logger used for diagnostics.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// Format selects how log lines are rendered.
type Format string

const (
	// FormatConsole renders human readable lines.
	FormatConsole Format = "console"
	// FormatJSON renders one JSON object per line.
	FormatJSON Format = "json"
)

// ParseFormat validates a --log-format value. Empty selects FormatConsole.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatConsole:
		return FormatConsole, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown log format %q (want console or json)", s)
	}
}

// Options configures New.
type Options struct {
	Writer  io.Writer // defaults to os.Stderr
	Format  Format    // defaults to FormatConsole
	Verbose bool      // enables debug level
	Quiet   bool      // errors only; wins over Verbose
	NoColor bool      // forces plain console output
}

// New returns a logger for opts.
func New(opts Options) zerolog.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	if opts.Format != FormatJSON {
		w = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: time.TimeOnly,
			NoColor:    opts.NoColor || !colorEnabled(w),
		}
	}

	return zerolog.New(w).Level(Level(opts.Verbose, opts.Quiet)).With().Timestamp().Logger()
}

// Level maps the verbosity flags to a zerolog level.
func Level(verbose, quiet bool) zerolog.Level {
	switch {
	case quiet:
		return zerolog.ErrorLevel
	case verbose:
		return zerolog.DebugLevel
	default:
		return zerolog.InfoLevel
	}
}

// colorEnabled reports whether w is a terminal and NO_COLOR is unset.
func colorEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
