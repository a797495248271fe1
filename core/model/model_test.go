package model

import (
	"math"
	"testing"
)

func TestTariffTierString(t *testing.T) {
	cases := map[TariffTier]string{
		TierLow:        "low",
		TierMid:        "mid",
		TierHigh:       "high",
		TariffTier(42): "unknown",
	}
	for tier, want := range cases {
		if got := tier.String(); got != want {
			t.Errorf("TariffTier(%d).String() = %q, want %q", tier, got, want)
		}
	}
}

func TestViolationMagnitude(t *testing.T) {
	v := Violation{Kind: ViolationAction, Requested: 1.5, Corrected: 1.0}
	if got := v.Magnitude(); got != 0.5 {
		t.Errorf("magnitude = %v, want 0.5", got)
	}
	v = Violation{Kind: ViolationSoC, Requested: 0.05, Corrected: 0.1}
	if got := v.Magnitude(); math.Abs(got-0.05) > 1e-12 {
		t.Errorf("magnitude = %v, want 0.05", got)
	}
}

func TestObservationVector(t *testing.T) {
	obs := Observation{SoC: 0.5, LoadKW: 0.8, GenerationKW: 0.2, HourSin: 1, HourCos: 0, DaySin: 0.1, DayCos: 0.9}
	vec := obs.Vector()
	want := [7]float64{0.5, 0.8, 0.2, 1, 0, 0.1, 0.9}
	if vec != want {
		t.Errorf("vector = %v, want %v", vec, want)
	}
}

func TestNetLoad(t *testing.T) {
	s := ExogenousSample{LoadKW: 0.7, GenerationKW: 0.2}
	if got := s.NetLoadKW(); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("net load = %v, want 0.5", got)
	}
}
