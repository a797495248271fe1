// Package infra holds the outward-facing adapters of the simulator:
// series loaders, metric sinks, the MQTT publisher and the websocket
// hub. Code here implements interfaces declared in core and never the
// other way around, so the engine stays free of transport concerns.
package infra
