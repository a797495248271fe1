package config

import (
	"fmt"
	"time"
)

// Exogenous source modes.
const (
	SourceSynthetic = "synthetic" // sinusoidal PV and load shapes
	SourceAstro     = "astro"     // PV shape from computed sun altitude
	SourceSeries    = "series"    // aligned CSV series of PV and load
)

// SourceConfig selects and parameterises the exogenous signal source that
// feeds load and PV generation into the engine.
type SourceConfig struct {
	Mode string `json:"mode"`

	// NoiseStdDev adds seeded Gaussian jitter to both load and generation
	// before clamping. Zero keeps the shapes exactly deterministic.
	NoiseStdDev float64 `json:"noise_std_dev"`

	// Latitude and Longitude locate the plant for the astro mode.
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Series mode inputs: one CSV per series plus the alignment tolerance
	// used when merging the two time axes.
	GenerationCSV      string `json:"generation_csv"`
	LoadCSV            string `json:"load_csv"`
	AlignToleranceSecs int    `json:"align_tolerance_seconds"`
}

// SetDefaults applies fallback values for optional fields.
func (c *SourceConfig) SetDefaults() {
	if c.Mode == "" {
		c.Mode = SourceSynthetic
	}
	if c.AlignToleranceSecs <= 0 {
		c.AlignToleranceSecs = 60
	}
}

// Validate checks mode-specific requirements.
func (c SourceConfig) Validate() error {
	switch c.Mode {
	case SourceSynthetic:
	case SourceAstro:
		if c.Latitude < -90 || c.Latitude > 90 {
			return fmt.Errorf("latitude %v out of range", c.Latitude)
		}
		if c.Longitude < -180 || c.Longitude > 180 {
			return fmt.Errorf("longitude %v out of range", c.Longitude)
		}
	case SourceSeries:
		if c.GenerationCSV == "" || c.LoadCSV == "" {
			return fmt.Errorf("series mode requires generation_csv and load_csv")
		}
	default:
		return fmt.Errorf("unknown source mode %q", c.Mode)
	}
	if c.NoiseStdDev < 0 {
		return fmt.Errorf("noise_std_dev must be >= 0")
	}
	return nil
}

// AlignTolerance returns the series alignment tolerance as a duration.
func (c SourceConfig) AlignTolerance() time.Duration {
	return time.Duration(c.AlignToleranceSecs) * time.Second
}
