package exogenous

import (
	"sort"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/model"
)

// SeriesSource replays recorded measurements. Sample resolves the point
// closest to the requested timestamp; when no point lies within the
// tolerance the series is considered exhausted at that instant.
type SeriesSource struct {
	points    []model.SeriesPoint
	tolerance time.Duration
	loadMin   float64
	loadMax   float64
	genMin    float64
	genMax    float64
}

func NewSeries(points []model.SeriesPoint, tolerance time.Duration, env config.EnvConfig) *SeriesSource {
	sorted := make([]model.SeriesPoint, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp.Before(sorted[j].Timestamp) })
	return &SeriesSource{
		points:    sorted,
		tolerance: tolerance,
		loadMin:   env.LoadMinKW,
		loadMax:   env.LoadMaxKW,
		genMin:    env.GenerationMinKW,
		genMax:    env.GenerationMaxKW,
	}
}

// Start returns the timestamp of the first point, so an episode can be
// aligned with the beginning of the recording.
func (s *SeriesSource) Start() (time.Time, bool) {
	if len(s.points) == 0 {
		return time.Time{}, false
	}
	return s.points[0].Timestamp, true
}

func (s *SeriesSource) Reset(int64) {}

func (s *SeriesSource) Sample(t time.Time) (model.ExogenousSample, bool) {
	i := sort.Search(len(s.points), func(i int) bool {
		return !s.points[i].Timestamp.Before(t)
	})
	best := -1
	var bestGap time.Duration
	for _, j := range [2]int{i - 1, i} {
		if j < 0 || j >= len(s.points) {
			continue
		}
		gap := t.Sub(s.points[j].Timestamp)
		if gap < 0 {
			gap = -gap
		}
		if best < 0 || gap < bestGap {
			best, bestGap = j, gap
		}
	}
	if best < 0 || bestGap > s.tolerance {
		return model.ExogenousSample{}, false
	}
	p := s.points[best]
	return model.ExogenousSample{
		LoadKW:       clamp(p.LoadKW, s.loadMin, s.loadMax),
		GenerationKW: clamp(p.GenerationKW, s.genMin, s.genMax),
	}, true
}
