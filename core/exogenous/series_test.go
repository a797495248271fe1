package exogenous

import (
	"testing"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/model"
)

func seriesPoints(start time.Time, n int) []model.SeriesPoint {
	pts := make([]model.SeriesPoint, n)
	for i := range pts {
		pts[i] = model.SeriesPoint{
			Timestamp:    start.Add(time.Duration(i) * time.Hour),
			LoadKW:       0.2 + float64(i)*0.1,
			GenerationKW: float64(i) * 0.05,
		}
	}
	return pts
}

func TestSeriesNearestMatch(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := config.DefaultEnvConfig()
	cfg.LoadMaxKW = 10
	cfg.GenerationMaxKW = 10
	s := NewSeries(seriesPoints(start, 3), time.Minute, cfg)

	got, ok := s.Sample(start.Add(30 * time.Second))
	if !ok || got.LoadKW != 0.2 {
		t.Fatalf("sample near first point = (%+v, %v)", got, ok)
	}
	got, ok = s.Sample(start.Add(2*time.Hour - 45*time.Second))
	if !ok || got.LoadKW != 0.4 {
		t.Fatalf("sample near third point = (%+v, %v)", got, ok)
	}
}

func TestSeriesToleranceExceeded(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	s := NewSeries(seriesPoints(start, 3), time.Minute, config.DefaultEnvConfig())
	if _, ok := s.Sample(start.Add(30 * time.Minute)); ok {
		t.Fatalf("sample between points should miss with a one-minute tolerance")
	}
	if _, ok := s.Sample(start.Add(3 * time.Hour)); ok {
		t.Fatalf("sample past the recording should miss")
	}
}

func TestSeriesSortsAndReportsStart(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pts := seriesPoints(start, 3)
	pts[0], pts[2] = pts[2], pts[0]
	s := NewSeries(pts, time.Minute, config.DefaultEnvConfig())
	first, ok := s.Start()
	if !ok || !first.Equal(start) {
		t.Fatalf("Start() = (%v, %v), want %v", first, ok, start)
	}
	if _, ok := NewSeries(nil, time.Minute, config.DefaultEnvConfig()).Start(); ok {
		t.Fatalf("empty series reported a start")
	}
}

func TestSeriesClampsToBounds(t *testing.T) {
	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	pts := []model.SeriesPoint{{Timestamp: start, LoadKW: 3, GenerationKW: -1}}
	s := NewSeries(pts, time.Minute, config.DefaultEnvConfig())
	got, ok := s.Sample(start)
	if !ok {
		t.Fatalf("sample at exact timestamp missed")
	}
	if got.LoadKW != 1 || got.GenerationKW != 0 {
		t.Errorf("sample = %+v, want clamped to [0,1]", got)
	}
}
