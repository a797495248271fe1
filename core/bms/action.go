package bms

import "github.com/gridpilot/bessim/core/model"

// actionCorrector clamps requested setpoints to the rated power envelope.
// Out-of-range requests are never rejected: they are corrected, priced at
// weight per kW of correction, and reported.
type actionCorrector struct {
	minKW  float64
	maxKW  float64
	weight float64
}

func (c actionCorrector) correct(requested float64) (corrected, penalty float64, v *model.Violation) {
	corrected = clamp(requested, c.minKW, c.maxKW)
	if corrected == requested {
		return corrected, 0, nil
	}
	v = &model.Violation{Kind: model.ViolationAction, Requested: requested, Corrected: corrected}
	return corrected, c.weight * v.Magnitude(), v
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
