package bms

import "time"

// simClock tracks the simulated timestamp of the current step. It only ever
// moves forward, by one fixed step at a time.
type simClock struct {
	now  time.Time
	step time.Duration
}

func newSimClock(start time.Time, step time.Duration) simClock {
	return simClock{now: start, step: step}
}

func (c *simClock) Advance() { c.now = c.now.Add(c.step) }

func (c simClock) Now() time.Time { return c.now }

// HourOfDay returns the fractional hour in [0,24).
func (c simClock) HourOfDay() float64 {
	return float64(c.now.Hour()) + float64(c.now.Minute())/60.0
}

// WeekdayIndex returns the day of week with Monday as 0 and Sunday as 6,
// the convention the observation encoding is built on.
func (c simClock) WeekdayIndex() int {
	return (int(c.now.Weekday()) + 6) % 7
}
