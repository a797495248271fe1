package metrics

import (
	"github.com/gridpilot/bessim/core/factory"
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/metrics/eco"
	"github.com/prometheus/client_golang/prometheus"
)

// init registers the built-in sinks.
func init() {
	_ = coremetrics.RegisterSink("nop", func(map[string]any) (coremetrics.Sink, error) {
		return coremetrics.NopSink{}, nil
	})

	_ = coremetrics.RegisterSink("prometheus", func(map[string]any) (coremetrics.Sink, error) {
		return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
	})

	_ = coremetrics.RegisterSink("influx", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			URL    string `json:"url"`
			Token  string `json:"token"`
			Org    string `json:"org"`
			Bucket string `json:"bucket"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewInfluxSinkWithFallback(c.URL, c.Token, c.Org, c.Bucket), nil
	})

	_ = coremetrics.RegisterSink("eco", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			EmissionFactorG float64 `json:"emission_factor_g"`
			StepHours       float64 `json:"step_hours"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewEcoSink(eco.NewMemoryStore(), c.EmissionFactorG, c.StepHours, prometheus.DefaultRegisterer), nil
	})

	_ = coremetrics.RegisterSink("csv", func(conf map[string]any) (coremetrics.Sink, error) {
		var c struct {
			StepsPath    string `json:"steps_path"`
			EpisodesPath string `json:"episodes_path"`
		}
		if err := factory.Decode(conf, &c); err != nil {
			return nil, err
		}
		return NewCSVSink(c.StepsPath, c.EpisodesPath)
	})
}
