package bms

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	stepsTotal      prometheus.Counter
	episodesTotal   prometheus.Counter
	violationsTotal *prometheus.CounterVec
	gridExchange    *prometheus.CounterVec
	socGauge        prometheus.Gauge
	lastReward      prometheus.Gauge
)

// newCollectors creates new metric collectors.
func newCollectors() (prometheus.Counter, prometheus.Counter, *prometheus.CounterVec, *prometheus.CounterVec, prometheus.Gauge, prometheus.Gauge) {
	steps := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bms_steps_total",
			Help: "Number of simulation steps executed",
		},
	)
	episodes := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bms_episodes_total",
			Help: "Number of episode resets",
		},
	)
	viol := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bms_bound_violations_total",
			Help: "Number of corrected bound violations",
		},
		[]string{"kind"},
	)
	grid := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bms_grid_exchange_kwh_total",
			Help: "Cumulative energy exchanged with the grid",
		},
		[]string{"direction"},
	)
	soc := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bms_soc",
			Help: "State of charge after the last step",
		},
	)
	reward := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "bms_last_reward",
			Help: "Reward of the last step",
		},
	)
	return steps, episodes, viol, grid, soc, reward
}

func init() {
	stepsTotal, episodesTotal, violationsTotal, gridExchange, socGauge, lastReward = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers engine metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(stepsTotal, episodesTotal, violationsTotal, gridExchange, socGauge, lastReward)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	stepsTotal, episodesTotal, violationsTotal, gridExchange, socGauge, lastReward = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
