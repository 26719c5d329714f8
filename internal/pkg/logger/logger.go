// Package logger adapts zerolog to the ports.Logger interface.
package logger

import (
	"os"

	"github.com/rs/zerolog"
)

// ZeroLogger writes structured, human-readable lines to stderr.
type ZeroLogger struct {
	log zerolog.Logger
}

// New creates a ZeroLogger. Verbose lowers the level floor from warn to
// debug; diagnostics stay off the stdout command channel either way.
func New(verbose bool) *ZeroLogger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	zl := zerolog.New(writer).Level(level).With().Timestamp().Logger()
	return &ZeroLogger{log: zl}
}

// NewNop creates a logger that discards everything.
func NewNop() *ZeroLogger {
	return &ZeroLogger{log: zerolog.Nop()}
}

func (l *ZeroLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Warn().Fields(fields).Msg(msg)
}

func (l *ZeroLogger) Error(msg string, err error, fields map[string]interface{}) {
	l.log.Error().Err(err).Fields(fields).Msg(msg)
}
