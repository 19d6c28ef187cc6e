// Package siqslog is a thin structured-logging wrapper around zerolog.
// It generalizes the teacher's hand-rolled level-tagged logger
// (ERROR/WARN/INFO/DBG...) into zerolog's structured levels while keeping
// the same verbosity knob shape: a single numeric/symbolic level that
// gates what gets written.
package siqslog

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level mirrors the teacher logger's level constants, ordered from least
// to most verbose.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

func (l Level) zerolog() zerolog.Level {
	switch l {
	case LevelError:
		return zerolog.ErrorLevel
	case LevelWarn:
		return zerolog.WarnLevel
	case LevelInfo:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New builds a console-friendly zerolog.Logger writing to w at the given
// verbosity level. The CLI passes stderr, so the progress lines (spec §6)
// written through this logger stay out of the factor pair and elapsed
// time it prints to stdout.
func New(w io.Writer, level Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level.zerolog()).With().Timestamp().Logger()
}
