package eco

import "time"

// Record aggregates the grid exchange of one site day.
type Record struct {
	Date        time.Time
	ExportedKWh float64
	ImportedKWh float64
}

// CO2AvoidedGrams returns the grams of CO2 avoided by the day's exports,
// using the grid emission factor in g/kWh.
func (r Record) CO2AvoidedGrams(factor float64) float64 {
	return r.ExportedKWh * factor
}

// ExchangeRatio returns the ratio of exported to imported energy.
func (r Record) ExchangeRatio() float64 {
	if r.ImportedKWh == 0 {
		if r.ExportedKWh == 0 {
			return 0
		}
		return r.ExportedKWh
	}
	return r.ExportedKWh / r.ImportedKWh
}
