package bms

import "math"

// resolveBalance bounds a rated-envelope action by what the site can
// physically absorb or supply at this step. Discharge (negative) may only
// cover an actual deficit, never push energy beyond it; charge (positive)
// may only soak up actual PV surplus. netLoadKW is load minus generation.
func resolveBalance(correctedKW, netLoadKW float64) float64 {
	switch {
	case correctedKW < 0:
		deficit := math.Max(netLoadKW, 0)
		return -math.Min(-correctedKW, deficit)
	case correctedKW > 0:
		surplus := math.Max(-netLoadKW, 0)
		return math.Min(correctedKW, surplus)
	default:
		return 0
	}
}
