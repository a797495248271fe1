package config

import (
	"fmt"
	"time"
)

// EnvConfig holds the physical and economic parameters of the simulated
// plant. All fields have working defaults; Load overlays file values on top
// of Default(), so a partial config file is enough to run.
//
// Sign convention for actions: positive kW charges the battery, negative
// discharges it. ActionMinKW is therefore the (negative) discharge limit and
// ActionMaxKW the charge limit.
type EnvConfig struct {
	InitialSoC float64 `json:"initial_soc"`
	SoCMin     float64 `json:"soc_min"`
	SoCMax     float64 `json:"soc_max"`

	LoadMinKW       float64 `json:"load_min_kw"`
	LoadMaxKW       float64 `json:"load_max_kw"`
	GenerationMinKW float64 `json:"generation_min_kw"`
	GenerationMaxKW float64 `json:"generation_max_kw"`

	// Tariff tiers, price per kWh.
	PriceLow  float64 `json:"price_low"`
	PriceMid  float64 `json:"price_mid"`
	PriceHigh float64 `json:"price_high"`

	ActionMinKW float64 `json:"action_min_kw"`
	ActionMaxKW float64 `json:"action_max_kw"`

	MaxSteps int `json:"max_steps"`

	// Penalty weights for the soft constraints: action envelope and SoC bounds.
	ActionPenaltyWeight float64 `json:"action_penalty_weight"`
	SoCPenaltyWeight    float64 `json:"soc_penalty_weight"`

	// Efficiency is the round-trip efficiency applied to every energy
	// transfer, in (0,1]. CapacityKWh is the usable battery capacity.
	Efficiency  float64 `json:"efficiency"`
	CapacityKWh float64 `json:"capacity_kwh"`

	// StepHours is the simulated duration of one step.
	StepHours float64 `json:"step_hours"`

	// EpisodeStart anchors the simulation clock, RFC 3339. Episodes are
	// reproducible because reset never consults the wall clock.
	EpisodeStart string `json:"episode_start"`
}

// DefaultEnvConfig returns the reference plant: a 10 kWh battery on a site
// with unit-scale load and PV, stepped hourly over one day.
func DefaultEnvConfig() EnvConfig {
	return EnvConfig{
		InitialSoC:          0.5,
		SoCMin:              0.1,
		SoCMax:              0.95,
		LoadMinKW:           0.0,
		LoadMaxKW:           1.0,
		GenerationMinKW:     0.0,
		GenerationMaxKW:     1.0,
		PriceLow:            0.1,
		PriceMid:            0.2,
		PriceHigh:           0.3,
		ActionMinKW:         -1.0,
		ActionMaxKW:         1.0,
		MaxSteps:            24,
		ActionPenaltyWeight: 10.0,
		SoCPenaltyWeight:    10.0,
		Efficiency:          0.9,
		CapacityKWh:         10.0,
		StepHours:           1.0,
		EpisodeStart:        "2024-01-01T00:00:00Z",
	}
}

// Validate checks the construction invariants. A config that fails here must
// not produce a partially constructed engine.
func (c EnvConfig) Validate() error {
	if c.SoCMin > c.SoCMax {
		return fmt.Errorf("soc_min %v > soc_max %v", c.SoCMin, c.SoCMax)
	}
	if c.SoCMin < 0 || c.SoCMax > 1 {
		return fmt.Errorf("soc bounds [%v,%v] must lie within [0,1]", c.SoCMin, c.SoCMax)
	}
	if c.InitialSoC < c.SoCMin || c.InitialSoC > c.SoCMax {
		return fmt.Errorf("initial_soc %v outside [%v,%v]", c.InitialSoC, c.SoCMin, c.SoCMax)
	}
	if c.LoadMinKW > c.LoadMaxKW {
		return fmt.Errorf("load_min_kw %v > load_max_kw %v", c.LoadMinKW, c.LoadMaxKW)
	}
	if c.LoadMinKW < 0 {
		return fmt.Errorf("load_min_kw must be >= 0")
	}
	if c.GenerationMinKW > c.GenerationMaxKW {
		return fmt.Errorf("generation_min_kw %v > generation_max_kw %v", c.GenerationMinKW, c.GenerationMaxKW)
	}
	if c.GenerationMinKW < 0 {
		return fmt.Errorf("generation_min_kw must be >= 0")
	}
	if c.ActionMinKW > c.ActionMaxKW {
		return fmt.Errorf("action_min_kw %v > action_max_kw %v", c.ActionMinKW, c.ActionMaxKW)
	}
	if c.Efficiency <= 0 || c.Efficiency > 1 {
		return fmt.Errorf("efficiency %v must be in (0,1]", c.Efficiency)
	}
	if c.CapacityKWh <= 0 {
		return fmt.Errorf("capacity_kwh must be > 0")
	}
	if c.StepHours <= 0 {
		return fmt.Errorf("step_hours must be > 0")
	}
	if c.MaxSteps <= 0 {
		return fmt.Errorf("max_steps must be > 0")
	}
	if c.ActionPenaltyWeight < 0 || c.SoCPenaltyWeight < 0 {
		return fmt.Errorf("penalty weights must be >= 0")
	}
	if _, err := c.Start(); err != nil {
		return fmt.Errorf("episode_start: %w", err)
	}
	return nil
}

// Start parses the configured episode start timestamp.
func (c EnvConfig) Start() (time.Time, error) {
	return time.Parse(time.RFC3339, c.EpisodeStart)
}

// StepDuration returns the step length as a time.Duration.
func (c EnvConfig) StepDuration() time.Duration {
	return time.Duration(c.StepHours * float64(time.Hour))
}
