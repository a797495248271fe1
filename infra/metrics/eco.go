package metrics

import (
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/metrics/eco"
	"github.com/prometheus/client_golang/prometheus"
)

// EcoSink folds the grid exchange of every step into daily ecological KPIs:
// energy imported and exported per day, their ratio, and the CO2 avoided by
// exported PV energy at the configured grid emission factor.
type EcoSink struct {
	store     eco.Store
	factorG   float64
	stepHours float64
	exported  *prometheus.GaugeVec
	imported  *prometheus.GaugeVec
	ratio     *prometheus.GaugeVec
	co2       *prometheus.GaugeVec
}

// NewEcoSink creates a sink with Prometheus gauges registered on reg. The
// emission factor is in grams of CO2 per kWh; stepHours converts the step
// power readings into energy.
func NewEcoSink(store eco.Store, factorG, stepHours float64, reg prometheus.Registerer) *EcoSink {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if stepHours <= 0 {
		stepHours = 1
	}
	exp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "site_exported_energy_kwh",
		Help: "Daily energy exported to the grid",
	}, []string{"day"})
	imp := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "site_imported_energy_kwh",
		Help: "Daily energy imported from the grid",
	}, []string{"day"})
	ratio := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "site_energy_exchange_ratio",
		Help: "Daily ratio of exported to imported energy",
	}, []string{"day"})
	co2 := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "site_co2_avoided_grams",
		Help: "Daily CO2 avoided by grid exports",
	}, []string{"day"})
	reg.MustRegister(exp, imp, ratio, co2)
	return &EcoSink{store: store, factorG: factorG, stepHours: stepHours, exported: exp, imported: imp, ratio: ratio, co2: co2}
}

// RecordStep folds one step's grid exchange into its day and refreshes the
// day's gauges.
func (s *EcoSink) RecordStep(rec coremetrics.StepRecord) error {
	r := eco.Record{
		Date:        rec.Timestamp,
		ExportedKWh: rec.GridExportKW * s.stepHours,
		ImportedKWh: rec.GridImportKW * s.stepHours,
	}
	if err := s.store.Add(r); err != nil {
		return err
	}
	dayStr := eco.Day(r.Date).Format("2006-01-02")
	records, _ := s.store.Query(r.Date, r.Date)
	if len(records) > 0 {
		rr := records[0]
		s.exported.WithLabelValues(dayStr).Set(rr.ExportedKWh)
		s.imported.WithLabelValues(dayStr).Set(rr.ImportedKWh)
		s.ratio.WithLabelValues(dayStr).Set(rr.ExchangeRatio())
		s.co2.WithLabelValues(dayStr).Set(rr.CO2AvoidedGrams(s.factorG))
	}
	return nil
}

// RecordEpisode is a no-op; the eco KPIs aggregate by day, not by episode.
func (s *EcoSink) RecordEpisode(coremetrics.EpisodeRecord) error { return nil }
