package bms

import "github.com/gridpilot/bessim/core/model"

// battery holds the state of charge and is the single place where SoC bounds
// are enforced. Every transfer goes through apply: the proposed SoC is
// clamped to [socMin, socMax] and the clamp distance is priced at weight.
type battery struct {
	soc         float64
	socMin      float64
	socMax      float64
	efficiency  float64
	capacityKWh float64
	stepHours   float64
	weight      float64
}

// apply shifts the SoC by the efficiency-weighted energy of powerKW sustained
// over one step. A positive power charges, a negative one discharges. The
// returned violation is nil when the proposed SoC stayed within bounds.
func (b *battery) apply(powerKW float64) (penalty float64, v *model.Violation) {
	proposed := b.soc + b.efficiency*powerKW*b.stepHours/b.capacityKWh
	clamped := clamp(proposed, b.socMin, b.socMax)
	if clamped != proposed {
		v = &model.Violation{Kind: model.ViolationSoC, Requested: proposed, Corrected: clamped}
		penalty = b.weight * v.Magnitude()
	}
	b.soc = clamped
	return penalty, v
}
