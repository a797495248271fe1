// Package exogenous supplies the load and PV generation signals the
// simulation cannot influence. Sources are sampled once per step with the
// simulated timestamp and must never block.
package exogenous

import (
	"time"

	"github.com/gridpilot/bessim/core/model"
)

// Source produces the exogenous sample for a simulation timestep.
type Source interface {
	// Sample returns the signals for t. ok is false when the source has no
	// data covering t, which ends a data-driven episode early.
	Sample(t time.Time) (sample model.ExogenousSample, ok bool)

	// Reset re-seeds any stochastic part of the source for a new episode.
	Reset(seed int64)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
