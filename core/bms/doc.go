// Package bms implements the battery energy storage simulation engine. An
// Env advances one fixed timestep per Step call: the requested charge or
// discharge power is clamped to the rated envelope, bounded by the site
// energy balance, applied to the state of charge under round-trip
// efficiency, and settled against the time-of-use tariff. Out-of-range
// requests are corrected and penalized, never rejected; Step only errors on
// misuse of the episode lifecycle.
package bms
