package model

// TariffTier identifies one of the three discrete grid price levels.
type TariffTier int

const (
	TierLow TariffTier = iota
	TierMid
	TierHigh
)

// String returns a human-readable representation of the tariff tier.
func (t TariffTier) String() string {
	switch t {
	case TierLow:
		return "low"
	case TierMid:
		return "mid"
	case TierHigh:
		return "high"
	default:
		return "unknown"
	}
}
