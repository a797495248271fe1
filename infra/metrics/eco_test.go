package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/metrics/eco"
)

func TestEcoSinkDailyAggregation(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewEcoSink(eco.NewMemoryStore(), 50, 1, reg)

	day1 := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	steps := []coremetrics.StepRecord{
		{Timestamp: day1, GridExportKW: 2},
		{Timestamp: day1.Add(4 * time.Hour), GridExportKW: 1, GridImportKW: 0.5},
		{Timestamp: day1.Add(26 * time.Hour), GridImportKW: 2},
	}
	for _, rec := range steps {
		if err := sink.RecordStep(rec); err != nil {
			t.Fatalf("record error: %v", err)
		}
	}

	if got := testutil.ToFloat64(sink.exported.WithLabelValues("2024-01-01")); got != 3 {
		t.Errorf("exported day 1 = %v, want 3", got)
	}
	if got := testutil.ToFloat64(sink.imported.WithLabelValues("2024-01-01")); got != 0.5 {
		t.Errorf("imported day 1 = %v, want 0.5", got)
	}
	if got := testutil.ToFloat64(sink.ratio.WithLabelValues("2024-01-01")); got != 6 {
		t.Errorf("ratio day 1 = %v, want 6", got)
	}
	if got := testutil.ToFloat64(sink.co2.WithLabelValues("2024-01-01")); got != 150 {
		t.Errorf("co2 day 1 = %v, want 150", got)
	}
	if got := testutil.ToFloat64(sink.imported.WithLabelValues("2024-01-02")); got != 2 {
		t.Errorf("imported day 2 = %v, want 2", got)
	}
}

func TestEcoSinkStepHours(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink := NewEcoSink(eco.NewMemoryStore(), 100, 0.25, reg)

	rec := coremetrics.StepRecord{
		Timestamp:    time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		GridExportKW: 4,
	}
	if err := sink.RecordStep(rec); err != nil {
		t.Fatalf("record error: %v", err)
	}

	if got := testutil.ToFloat64(sink.exported.WithLabelValues("2024-06-01")); got != 1 {
		t.Errorf("exported = %v, want 1 (4 kW over a quarter hour)", got)
	}
	if got := testutil.ToFloat64(sink.co2.WithLabelValues("2024-06-01")); got != 100 {
		t.Errorf("co2 = %v, want 100", got)
	}
}

func TestEcoSinkEpisodeNoOp(t *testing.T) {
	sink := NewEcoSink(eco.NewMemoryStore(), 50, 1, prometheus.NewRegistry())
	if err := sink.RecordEpisode(coremetrics.EpisodeRecord{}); err != nil {
		t.Fatalf("episode record should be a no-op, got %v", err)
	}
}
