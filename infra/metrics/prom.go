package metrics

import (
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records run telemetry in Prometheus metrics.
type PromSink struct {
	steps      *prometheus.CounterVec
	cost       prometheus.Counter
	revenue    prometheus.Counter
	stepReward prometheus.Histogram
	episodes   *prometheus.CounterVec
	epReward   *prometheus.HistogramVec
	finalSoC   prometheus.Gauge
}

// NewPromSink registers run metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	steps := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "run_steps_total",
		Help: "Steps recorded per tariff tier",
	}, []string{"tier"})
	cost := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "run_cost_total",
		Help: "Cumulative grid import cost",
	})
	revenue := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "run_revenue_total",
		Help: "Cumulative grid export revenue",
	})
	stepReward := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "run_step_reward",
		Help:    "Distribution of per-step rewards",
		Buckets: prometheus.LinearBuckets(-10, 1, 21),
	})
	episodes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "run_episodes_total",
		Help: "Finished episodes by policy and outcome",
	}, []string{"policy", "outcome"})
	epReward := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "run_episode_reward",
		Help:    "Distribution of episode total rewards",
		Buckets: prometheus.LinearBuckets(-100, 10, 21),
	}, []string{"policy"})
	finalSoC := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "run_episode_final_soc",
		Help: "State of charge at the end of the last episode",
	})

	if err := reg.Register(steps); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			steps = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(cost); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			cost = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(revenue); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			revenue = are.ExistingCollector.(prometheus.Counter)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(stepReward); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			stepReward = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(episodes); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			episodes = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(epReward); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			epReward = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(finalSoC); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			finalSoC = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{
		steps:      steps,
		cost:       cost,
		revenue:    revenue,
		stepReward: stepReward,
		episodes:   episodes,
		epReward:   epReward,
		finalSoC:   finalSoC,
	}, nil
}

// RecordStep feeds one step outcome into the collectors.
func (s *PromSink) RecordStep(rec coremetrics.StepRecord) error {
	s.steps.WithLabelValues(rec.Tier).Inc()
	s.cost.Add(rec.Cost)
	s.revenue.Add(rec.Revenue)
	s.stepReward.Observe(rec.Reward)
	return nil
}

// RecordEpisode counts the episode and observes its aggregate reward.
func (s *PromSink) RecordEpisode(rec coremetrics.EpisodeRecord) error {
	outcome := "terminated"
	if rec.Truncated {
		outcome = "truncated"
	}
	s.episodes.WithLabelValues(rec.Policy, outcome).Inc()
	s.epReward.WithLabelValues(rec.Policy).Observe(rec.TotalReward)
	s.finalSoC.Set(rec.FinalSoC)
	return nil
}
