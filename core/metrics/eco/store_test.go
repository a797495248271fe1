package eco

import (
	"testing"
	"time"
)

func TestMemoryStoreAggregation(t *testing.T) {
	s := NewMemoryStore()
	d := Day(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := s.Add(Record{Date: d, ExportedKWh: 2}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := s.Add(Record{Date: d.Add(2 * time.Hour), ExportedKWh: 1, ImportedKWh: 0.5}); err != nil {
		t.Fatalf("add same day: %v", err)
	}
	recs, err := s.Query(d, d)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("got %d daily records, want 1", len(recs))
	}
	if recs[0].ExportedKWh != 3 {
		t.Fatalf("exported %.2f kWh, want 3", recs[0].ExportedKWh)
	}
	if recs[0].ImportedKWh != 0.5 {
		t.Fatalf("imported %.2f kWh, want 0.5", recs[0].ImportedKWh)
	}
}

func TestMemoryStoreQueryRange(t *testing.T) {
	s := NewMemoryStore()
	d1 := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	d3 := time.Date(2024, 1, 3, 10, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{d3, d1, d2} {
		if err := s.Add(Record{Date: d, ImportedKWh: 1}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	recs, err := s.Query(d1, d2)
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("got %d records in range, want 2", len(recs))
	}
	if !recs[0].Date.Before(recs[1].Date) {
		t.Fatalf("records out of date order: %v", recs)
	}
}

func TestRecordDerivedValues(t *testing.T) {
	r := Record{ExportedKWh: 4, ImportedKWh: 2}
	if got := r.ExchangeRatio(); got != 2 {
		t.Fatalf("ratio %.2f, want 2", got)
	}
	if got := r.CO2AvoidedGrams(10); got != 40 {
		t.Fatalf("co2 %.2f g, want 40", got)
	}

	empty := Record{}
	if got := empty.ExchangeRatio(); got != 0 {
		t.Fatalf("empty ratio %.2f, want 0", got)
	}
	exportOnly := Record{ExportedKWh: 3}
	if got := exportOnly.ExchangeRatio(); got != 3 {
		t.Fatalf("export-only ratio %.2f, want 3", got)
	}
}
