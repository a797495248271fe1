// Package logger declares the logging interface shared by the engine,
// the runner and the infra adapters. Implementations live under
// infra/logger so core packages carry no logging dependency.
package logger

// Logger is the minimal surface the simulator logs through. The *f
// methods format like fmt.Printf, the *w methods attach structured
// fields to a fixed message.
type Logger interface {
	Debugf(format string, args ...any)
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Infow(msg string, fields map[string]any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
