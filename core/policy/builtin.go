package policy

import (
	"math/rand"
	"time"

	"github.com/gridpilot/bessim/core/bms"
	"github.com/gridpilot/bessim/core/model"
)

// Idle never moves the battery.
type Idle struct{}

func (Idle) Decide(model.Observation, time.Time) float64 { return 0 }

func (Idle) Reset(int64) {}

func (Idle) Name() string { return "idle" }

// Random samples uniformly from the rated envelope. Equal seeds replay the
// same action sequence.
type Random struct {
	minKW float64
	maxKW float64
	rng   *rand.Rand
}

func NewRandom(minKW, maxKW float64) *Random {
	return &Random{minKW: minKW, maxKW: maxKW, rng: rand.New(rand.NewSource(0))}
}

func (r *Random) Decide(model.Observation, time.Time) float64 {
	return r.minKW + r.rng.Float64()*(r.maxKW-r.minKW)
}

func (r *Random) Reset(seed int64) { r.rng = rand.New(rand.NewSource(seed)) }

func (r *Random) Name() string { return "random" }

// TariffRule charges through the cheap overnight hours and discharges into
// the peak, idling on the shoulders.
type TariffRule struct {
	tariff      bms.Tariff
	chargeKW    float64
	dischargeKW float64
}

func NewTariffRule(tariff bms.Tariff, minKW, maxKW float64) *TariffRule {
	return &TariffRule{tariff: tariff, chargeKW: maxKW, dischargeKW: minKW}
}

func (p *TariffRule) Decide(_ model.Observation, t time.Time) float64 {
	switch p.tariff.TierAt(t) {
	case model.TierLow:
		return p.chargeKW
	case model.TierHigh:
		return p.dischargeKW
	default:
		return 0
	}
}

func (p *TariffRule) Reset(int64) {}

func (p *TariffRule) Name() string { return "tariff" }
