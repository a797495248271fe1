// Package scenarios runs YAML-defined acceptance scenarios against the
// engine: a scripted action sequence over scripted load and generation,
// checked against the expected episode outcome.
package scenarios

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gridpilot/bessim/config"
)

// EnvDef overrides engine parameters for one scenario. Nil fields keep the
// defaults.
type EnvDef struct {
	InitialSoC          *float64 `yaml:"initial_soc"`
	SoCMin              *float64 `yaml:"soc_min"`
	SoCMax              *float64 `yaml:"soc_max"`
	Efficiency          *float64 `yaml:"efficiency"`
	CapacityKWh         *float64 `yaml:"capacity_kwh"`
	ActionMinKW         *float64 `yaml:"action_min_kw"`
	ActionMaxKW         *float64 `yaml:"action_max_kw"`
	MaxSteps            *int     `yaml:"max_steps"`
	ActionPenaltyWeight *float64 `yaml:"action_penalty_weight"`
	SoCPenaltyWeight    *float64 `yaml:"soc_penalty_weight"`
}

// Apply overlays the set fields onto cfg.
func (d EnvDef) Apply(cfg *config.EnvConfig) {
	if d.InitialSoC != nil {
		cfg.InitialSoC = *d.InitialSoC
	}
	if d.SoCMin != nil {
		cfg.SoCMin = *d.SoCMin
	}
	if d.SoCMax != nil {
		cfg.SoCMax = *d.SoCMax
	}
	if d.Efficiency != nil {
		cfg.Efficiency = *d.Efficiency
	}
	if d.CapacityKWh != nil {
		cfg.CapacityKWh = *d.CapacityKWh
	}
	if d.ActionMinKW != nil {
		cfg.ActionMinKW = *d.ActionMinKW
	}
	if d.ActionMaxKW != nil {
		cfg.ActionMaxKW = *d.ActionMaxKW
	}
	if d.MaxSteps != nil {
		cfg.MaxSteps = *d.MaxSteps
	}
	if d.ActionPenaltyWeight != nil {
		cfg.ActionPenaltyWeight = *d.ActionPenaltyWeight
	}
	if d.SoCPenaltyWeight != nil {
		cfg.SoCPenaltyWeight = *d.SoCPenaltyWeight
	}
}

// Expected is the episode outcome the scenario asserts.
type Expected struct {
	Steps            int     `yaml:"steps"`
	Terminated       bool    `yaml:"terminated"`
	Truncated        bool    `yaml:"truncated"`
	FinalSoC         float64 `yaml:"final_soc"`
	TotalReward      float64 `yaml:"total_reward"`
	ActionViolations int     `yaml:"action_violations"`
	SoCViolations    int     `yaml:"soc_violations"`
}

// Scenario is one scripted episode. LoadKW and GenerationKW are per-step
// values; the shorter list is padded with its last value, and the episode
// truncates when both run out before max_steps.
type Scenario struct {
	Name         string    `yaml:"name"`
	Description  string    `yaml:"description,omitempty"`
	Env          EnvDef    `yaml:"env"`
	LoadKW       []float64 `yaml:"load_kw"`
	GenerationKW []float64 `yaml:"generation_kw"`
	Actions      []float64 `yaml:"actions"`
	Expected     Expected  `yaml:"expected"`
}

// Load reads and validates a scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("%s: scenario needs a name", path)
	}
	if len(sc.Actions) == 0 {
		return nil, fmt.Errorf("%s: scenario needs at least one action", path)
	}
	return &sc, nil
}
