package bms

import (
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/model"
)

// Tariff maps a timestamp to a time-of-use tier and its price. The schedule
// is fixed; only the per-tier prices come from configuration.
//
// Weekdays charge the high tier during business hours (08:00-19:00), the mid
// tier on the shoulders (07:00-08:00 and 19:00-23:00) and the low tier
// overnight. Saturday charges mid from 07:00 to 23:00 and low otherwise.
// Sunday is low all day.
type Tariff struct {
	Low  float64
	Mid  float64
	High float64
}

func NewTariff(cfg config.EnvConfig) Tariff {
	return Tariff{Low: cfg.PriceLow, Mid: cfg.PriceMid, High: cfg.PriceHigh}
}

// TierAt returns the tier in effect at t.
func (tf Tariff) TierAt(t time.Time) model.TariffTier {
	hour := t.Hour()
	switch t.Weekday() {
	case time.Saturday:
		if hour >= 7 && hour < 23 {
			return model.TierMid
		}
		return model.TierLow
	case time.Sunday:
		return model.TierLow
	default:
		switch {
		case hour >= 8 && hour < 19:
			return model.TierHigh
		case hour >= 7 && hour < 23:
			return model.TierMid
		default:
			return model.TierLow
		}
	}
}

// PriceAt returns the tier in effect at t together with its price.
func (tf Tariff) PriceAt(t time.Time) (model.TariffTier, float64) {
	tier := tf.TierAt(t)
	return tier, tf.Price(tier)
}

// Price returns the configured price for a tier.
func (tf Tariff) Price(tier model.TariffTier) float64 {
	switch tier {
	case model.TierHigh:
		return tf.High
	case model.TierMid:
		return tf.Mid
	default:
		return tf.Low
	}
}
