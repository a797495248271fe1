// Package policy provides built-in controllers for driving the simulator
// without an external learner: a do-nothing baseline, a seeded random
// explorer and a tariff-following heuristic.
package policy

import (
	"fmt"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/bms"
	"github.com/gridpilot/bessim/core/model"
)

// Policy decides the battery power request for each step.
type Policy interface {
	// Decide returns the requested power in kW for the observation at t.
	Decide(obs model.Observation, t time.Time) float64
	// Reset prepares the policy for a new episode.
	Reset(seed int64)
	Name() string
}

// FromConfig builds the policy named in the run configuration.
func FromConfig(cfg config.Config) (Policy, error) {
	switch cfg.Run.Policy {
	case "idle":
		return Idle{}, nil
	case "random":
		return NewRandom(cfg.Env.ActionMinKW, cfg.Env.ActionMaxKW), nil
	case "tariff":
		return NewTariffRule(bms.NewTariff(cfg.Env), cfg.Env.ActionMinKW, cfg.Env.ActionMaxKW), nil
	default:
		return nil, fmt.Errorf("policy: unknown policy %q", cfg.Run.Policy)
	}
}
