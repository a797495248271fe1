package model

import "time"

// ExogenousSample carries the uncontrolled inputs for one simulation step:
// the site load and the PV generation, both in kW and both non-negative.
// Samples are produced fresh each step and are not retained by the engine.
type ExogenousSample struct {
	LoadKW       float64
	GenerationKW float64
}

// NetLoadKW returns load minus generation. Positive means a deficit that
// must be met by the battery or the grid, negative means a PV surplus.
func (s ExogenousSample) NetLoadKW() float64 {
	return s.LoadKW - s.GenerationKW
}

// SeriesPoint is one timestamped entry of an aligned PV/load series.
type SeriesPoint struct {
	Timestamp    time.Time
	LoadKW       float64
	GenerationKW float64
}
