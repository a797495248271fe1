package config

import (
	"github.com/gridpilot/bessim/core/factory"
)

// MetricsConfig defines the telemetry sinks for a run. Sinks are built by
// name through the sink registry; each entry carries its own conf map.
type MetricsConfig struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`

	Sinks []factory.ModuleConfig `json:"sinks"`
}

// SetDefaults applies fallback values for optional fields.
func (c *MetricsConfig) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}
