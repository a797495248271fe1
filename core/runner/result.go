package runner

import (
	"gonum.org/v1/gonum/stat"

	"github.com/gridpilot/bessim/core/metrics"
)

// Result collects the episode records of one run.
type Result struct {
	RunID    string
	Episodes []metrics.EpisodeRecord
}

// Summary aggregates episode outcomes across a run.
type Summary struct {
	Episodes     int
	Steps        int
	MeanReward   float64
	RewardStdDev float64
	BestReward   float64
	WorstReward  float64
	TotalCost    float64
	TotalRevenue float64
	ImportKWh    float64
	ExportKWh    float64
	Violations   int
}

// Summary reduces the run to aggregate statistics over episode total
// rewards.
func (r Result) Summary() Summary {
	s := Summary{Episodes: len(r.Episodes)}
	if s.Episodes == 0 {
		return s
	}
	totals := make([]float64, 0, len(r.Episodes))
	s.BestReward = r.Episodes[0].TotalReward
	s.WorstReward = r.Episodes[0].TotalReward
	for _, ep := range r.Episodes {
		totals = append(totals, ep.TotalReward)
		s.Steps += ep.Steps
		s.TotalCost += ep.TotalCost
		s.TotalRevenue += ep.TotalRevenue
		s.ImportKWh += ep.ImportKWh
		s.ExportKWh += ep.ExportKWh
		s.Violations += ep.ActionViolations + ep.SoCViolations
		if ep.TotalReward > s.BestReward {
			s.BestReward = ep.TotalReward
		}
		if ep.TotalReward < s.WorstReward {
			s.WorstReward = ep.TotalReward
		}
	}
	s.MeanReward, s.RewardStdDev = rewardMoments(totals)
	return s
}

// rewardMoments returns mean and sample standard deviation, zero when there
// are too few samples for a spread.
func rewardMoments(xs []float64) (mean, stddev float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	mean = stat.Mean(xs, nil)
	if len(xs) > 1 {
		stddev = stat.StdDev(xs, nil)
	}
	return mean, stddev
}
