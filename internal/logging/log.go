// Package logging provides the process-wide logger.
package logging

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the global logger instance.
var Logger *log.Logger

func init() {
	Logger = New(os.Stderr, false)
}

// New creates a logger writing to w. Verbose loggers emit debug messages
// with timestamps and caller information.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "buildmeta",
		ReportTimestamp: verbose,
		ReportCaller:    verbose,
	})
}

// Setup replaces the global logger based on verbosity.
func Setup(verbose bool) {
	Logger = New(os.Stderr, verbose)
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
