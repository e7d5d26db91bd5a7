// Package logging provides the Logger used by the cbor command to report
// progress and diagnostics. The codec packages never log.
package logging

import (
	"io"
	"log"
)

// Classification is the severity of a log entry.
type Classification string

const (
	Warn  Classification = "WARN"
	Info  Classification = "INFO"
	Debug Classification = "DEBUG"
)

// Logger is an interface for logging entries at certain classifications.
type Logger interface {
	// Logf is expected to support the standard fmt package "verbs".
	Logf(level Classification, format string, v ...interface{})
}

// Noop is a Logger implementation that simply does not perform any logging.
type Noop struct{}

func (n Noop) Logf(Classification, string, ...interface{}) {}

// StandardLogger is a Logger implementation that wraps the standard library logger, and delegates logging to it's
// Printf method.
type StandardLogger struct {
	Logger *log.Logger
}

// Logf logs the given classification and message to the underlying logger.
func (s StandardLogger) Logf(classification Classification, format string, v ...interface{}) {
	if len(classification) != 0 {
		format = string(classification) + " " + format
	}

	s.Logger.Printf(format, v...)
}

// NewStandardLogger returns a new StandardLogger writing entries prefixed with
// "cbor " and no timestamp.
func NewStandardLogger(writer io.Writer) *StandardLogger {
	return &StandardLogger{
		Logger: log.New(writer, "cbor ", 0),
	}
}

// Filter is a Logger that drops entries whose classification is not listed
// in Allow before passing the rest to Logger.
type Filter struct {
	Logger Logger
	Allow  []Classification
}

// Logf logs the entry through the wrapped Logger if its classification is
// allowed.
func (f Filter) Logf(classification Classification, format string, v ...interface{}) {
	for _, c := range f.Allow {
		if c == classification {
			f.Logger.Logf(classification, format, v...)
			return
		}
	}
}
