// Package cliutil holds the output helpers shared by the oaslimbs commands.
package cliutil

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erraggy/oaslimbs/parser"
)

// Writef is fmt.Fprintf for diagnostics. A failed write is reported on
// stderr instead of being returned.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Diagnostics returns the writer for progress messages: w, or io.Discard
// when quiet is set.
func Diagnostics(w io.Writer, quiet bool) io.Writer {
	if quiet {
		return io.Discard
	}
	return w
}

// NewLogger returns a text logger on w. Verbose output includes debug
// records; otherwise only warnings and errors are written.
func NewLogger(w io.Writer, verbose bool) parser.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return parser.NewSlogAdapter(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}
