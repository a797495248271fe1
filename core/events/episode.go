package events

import "github.com/gridpilot/bessim/core/metrics"

// EpisodeEvent is published when an episode terminates or truncates.
type EpisodeEvent struct {
	Record metrics.EpisodeRecord
}
