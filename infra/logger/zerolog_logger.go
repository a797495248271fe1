package logger

import (
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// zerologAdapter bridges rs/zerolog to the core Logger interface.
type zerologAdapter struct {
	log zerolog.Logger
}

// NewZerologLogger returns a Logger writing JSON lines to stdout, or
// human-readable console output when APP_ENV=dev. Every line carries a
// component field so interleaved engine, runner and sink logs stay
// filterable.
func NewZerologLogger(component string) Logger {
	z := zerolog.New(output()).With().
		Timestamp().
		Str("component", component).
		Logger()
	return &zerologAdapter{log: z}
}

func output() io.Writer {
	if strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		return zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	}
	return os.Stdout
}

func (l *zerologAdapter) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *zerologAdapter) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *zerologAdapter) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *zerologAdapter) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

func (l *zerologAdapter) Debugw(msg string, fields map[string]any) {
	emit(l.log.Debug(), msg, fields)
}

func (l *zerologAdapter) Infow(msg string, fields map[string]any) {
	emit(l.log.Info(), msg, fields)
}

// emit attaches fields in sorted key order so the same event always
// encodes to the same line.
func emit(ev *zerolog.Event, msg string, fields map[string]any) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		ev = ev.Interface(k, fields[k])
	}
	ev.Msg(msg)
}
