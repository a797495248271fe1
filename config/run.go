package config

import "fmt"

// RunConfig controls how the CLI drives the engine: how many episodes to
// roll out, with which baseline policy, and from which seed.
type RunConfig struct {
	Episodes int    `json:"episodes"`
	Policy   string `json:"policy"`
	Seed     int64  `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *RunConfig) SetDefaults() {
	if c.Episodes <= 0 {
		c.Episodes = 1
	}
	if c.Policy == "" {
		c.Policy = "idle"
	}
}

// Validate checks mandatory fields.
func (c RunConfig) Validate() error {
	if c.Episodes <= 0 {
		return fmt.Errorf("episodes must be > 0")
	}
	switch c.Policy {
	case "idle", "random", "tariff":
	default:
		return fmt.Errorf("unknown policy %q", c.Policy)
	}
	return nil
}
