package bms

import "errors"

// ConfigError reports an invalid engine configuration. New returns it and
// constructs nothing when any constraint fails.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string { return "bms: invalid config: " + e.Err.Error() }

func (e *ConfigError) Unwrap() error { return e.Err }

// Usage errors terminate the offending call; the episode state is left
// untouched and the caller is expected to Reset.
var (
	// ErrNotReset is returned by Step when Reset has never been called.
	ErrNotReset = errors.New("bms: step called before reset")
	// ErrTerminated is returned by Step once the episode has ended.
	ErrTerminated = errors.New("bms: episode terminated, reset required")
)
