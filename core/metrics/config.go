package metrics

import "github.com/gridpilot/bessim/core/factory"

// Config defines settings for metrics sinks. Each entry names a registered
// sink type with its raw settings; the step and episode records of a run are
// forwarded to every configured sink.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
}
