// Package metrics defines the telemetry records of a simulation run and the
// Sink interface that recorders implement. Concrete exporters live in
// infra/metrics and register themselves in the sink registry; NewSink builds
// the configured set, fanning out through a MultiSink when there are
// several. NopSink discards everything for runs without observability.
package metrics
