// Package ecokpi recomputes the daily ecological KPIs from recorded step
// telemetry, for runs that were executed without the eco sink attached.
package ecokpi

import (
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/metrics/eco"
)

// Backfill folds recorded steps into the store, rebuilding the per-day grid
// exchange aggregates. stepHours converts the power readings into energy;
// zero or negative falls back to hourly steps.
func Backfill(store eco.Store, steps []coremetrics.StepRecord, stepHours float64) error {
	if stepHours <= 0 {
		stepHours = 1
	}
	for _, s := range steps {
		rec := eco.Record{
			Date:        eco.Day(s.Timestamp),
			ExportedKWh: s.GridExportKW * stepHours,
			ImportedKWh: s.GridImportKW * stepHours,
		}
		if err := store.Add(rec); err != nil {
			return err
		}
	}
	return nil
}
