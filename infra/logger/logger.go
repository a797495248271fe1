package logger

import corelogger "github.com/gridpilot/bessim/core/logger"

// Logger re-exports the core interface so infra packages only import
// this one.
type Logger = corelogger.Logger

// NopLogger discards everything. Tests and the QA harness use it to
// keep output quiet.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Infow(string, map[string]any)  {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New builds the process-wide logger for a component. Output format
// follows APP_ENV, see NewZerologLogger.
func New(component string) Logger {
	return NewZerologLogger(component)
}
