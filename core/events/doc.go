// Package events defines the simulation events emitted on the event bus.
//
// Available event types:
//   - StepEvent: outcome of one engine step
//   - EpisodeEvent: summary of a finished episode
package events
