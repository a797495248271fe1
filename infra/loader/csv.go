// Package loader reads PV and load time series from CSV files and aligns
// them onto a single axis for replay through the engine.
package loader

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/model"
)

// Sample is one timestamped value of a single series.
type Sample struct {
	Timestamp time.Time
	Value     float64
}

// timestampLayouts are tried in order when parsing the datetime column.
// Day-first layouts cover the common European meter exports.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
}

// ReadSeries parses a CSV with a "datetime" column and the named value
// column. Column order is free; rows that fail to parse are skipped.
func ReadSeries(r io.Reader, valueColumn string) ([]Sample, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	timeIdx, valueIdx := -1, -1
	for i, col := range header {
		switch strings.TrimSpace(col) {
		case "datetime":
			timeIdx = i
		case valueColumn:
			valueIdx = i
		}
	}
	if timeIdx < 0 {
		return nil, fmt.Errorf("missing datetime column")
	}
	if valueIdx < 0 {
		return nil, fmt.Errorf("missing %s column", valueColumn)
	}

	var samples []Sample
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV: %w", err)
		}
		if len(record) <= timeIdx || len(record) <= valueIdx {
			continue
		}
		ts, err := parseTimestamp(strings.TrimSpace(record[timeIdx]))
		if err != nil {
			continue
		}
		value, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			continue
		}
		samples = append(samples, Sample{Timestamp: ts, Value: value})
	}
	sort.Slice(samples, func(i, j int) bool { return samples[i].Timestamp.Before(samples[j].Timestamp) })
	return samples, nil
}

// ReadSeriesFile opens path and parses it with ReadSeries.
func ReadSeriesFile(path, valueColumn string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	samples, err := ReadSeries(f, valueColumn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return samples, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// MergeNearest joins the generation and load series on the generation time
// axis. Each generation sample is paired with the closest load sample; pairs
// farther apart than tolerance are dropped.
func MergeNearest(gen, load []Sample, tolerance time.Duration) []model.SeriesPoint {
	if len(gen) == 0 || len(load) == 0 {
		return nil
	}
	sorted := make([]Sample, len(load))
	copy(sorted, load)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })

	var points []model.SeriesPoint
	for _, g := range gen {
		l, ok := nearest(sorted, g.Timestamp, tolerance)
		if !ok {
			continue
		}
		points = append(points, model.SeriesPoint{
			Timestamp:    g.Timestamp,
			LoadKW:       l.Value,
			GenerationKW: g.Value,
		})
	}
	return points
}

func nearest(sorted []Sample, t time.Time, tolerance time.Duration) (Sample, bool) {
	i := sort.Search(len(sorted), func(i int) bool { return !sorted[i].Timestamp.Before(t) })
	best := -1
	for _, j := range []int{i - 1, i} {
		if j < 0 || j >= len(sorted) {
			continue
		}
		if best < 0 || absDuration(sorted[j].Timestamp.Sub(t)) < absDuration(sorted[best].Timestamp.Sub(t)) {
			best = j
		}
	}
	if best < 0 || absDuration(sorted[best].Timestamp.Sub(t)) > tolerance {
		return Sample{}, false
	}
	return sorted[best], true
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

// Load reads and merges the two series named by the source config.
func Load(cfg config.SourceConfig) ([]model.SeriesPoint, error) {
	gen, err := ReadSeriesFile(cfg.GenerationCSV, "generation_kw")
	if err != nil {
		return nil, err
	}
	load, err := ReadSeriesFile(cfg.LoadCSV, "load_kw")
	if err != nil {
		return nil, err
	}
	points := MergeNearest(gen, load, cfg.AlignTolerance())
	if len(points) == 0 {
		return nil, fmt.Errorf("no overlapping samples within %s tolerance", cfg.AlignTolerance())
	}
	return points, nil
}
