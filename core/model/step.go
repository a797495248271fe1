package model

import (
	"math"
	"time"
)

// ViolationKind distinguishes the two soft constraints the engine enforces.
type ViolationKind int

const (
	// ViolationAction marks a requested battery power outside the rated envelope.
	ViolationAction ViolationKind = iota
	// ViolationSoC marks a state-of-charge update that had to be clamped to its bounds.
	ViolationSoC
)

// String returns a human-readable representation of the violation kind.
func (k ViolationKind) String() string {
	switch k {
	case ViolationAction:
		return "action_bound"
	case ViolationSoC:
		return "soc_bound"
	default:
		return "unknown"
	}
}

// Violation records an out-of-bounds request that was corrected in place and
// penalised rather than rejected. Requested and Corrected are in the unit of
// the violated quantity (kW for actions, SoC fraction for state of charge).
type Violation struct {
	Kind      ViolationKind
	Requested float64
	Corrected float64
}

// Magnitude returns the absolute size of the correction.
func (v Violation) Magnitude() float64 {
	return math.Abs(v.Requested - v.Corrected)
}

// Observation is the state vector handed to the control policy after every
// reset and step. Hour and weekday are cyclically encoded so that midnight
// and Sunday/Monday wraparounds stay continuous.
type Observation struct {
	SoC          float64
	LoadKW       float64
	GenerationKW float64
	HourSin      float64
	HourCos      float64
	DaySin       float64
	DayCos       float64
}

// Vector returns the observation as a fixed-size feature array in the
// canonical order: SoC, load, generation, hour sin/cos, weekday sin/cos.
func (o Observation) Vector() [7]float64 {
	return [7]float64{o.SoC, o.LoadKW, o.GenerationKW, o.HourSin, o.HourCos, o.DaySin, o.DayCos}
}

// StepInfo carries the per-step diagnostics. Violation slices are always
// non-nil; a clean step reports empty slices and zero penalties.
type StepInfo struct {
	Timestamp    time.Time
	SoC          float64
	LoadKW       float64
	GenerationKW float64

	RequestedKW float64 // raw action from the policy
	CorrectedKW float64 // after the rated-power clamp
	ActualKW    float64 // physically realised battery power

	GridImportKW float64
	GridExportKW float64

	Tier  TariffTier
	Price float64

	Cost          float64
	Revenue       float64
	ActionPenalty float64
	SoCPenalty    float64

	ActionViolations []Violation
	SoCViolations    []Violation
}

// StepResult is the outcome of one Step call. The engine keeps no reference
// to it after returning.
type StepResult struct {
	Observation Observation
	Reward      float64
	Terminated  bool
	Truncated   bool
	Info        StepInfo
}
