package bms

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/gridpilot/bessim/config"
)

func TestEngineMetricsUpdate(t *testing.T) {
	ResetMetrics(nil)
	t.Cleanup(func() { ResetMetrics(nil) })
	reg := prometheus.NewRegistry()
	MustRegisterMetrics(reg)

	env := mustEnv(t, config.DefaultEnvConfig(), fixedSource{load: 0.5})
	env.Reset(1)
	if _, err := env.Step(2.0); err != nil {
		t.Fatalf("Step: %v", err)
	}

	if got := testutil.ToFloat64(stepsTotal); got != 1 {
		t.Errorf("stepsTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(episodesTotal); got != 1 {
		t.Errorf("episodesTotal = %v, want 1", got)
	}
	if got := testutil.ToFloat64(violationsTotal.WithLabelValues("action_bound")); got != 1 {
		t.Errorf("action violations = %v, want 1", got)
	}
	// SoC ends back at 0.5: charge rejected by the balance, residual undone.
	if got := testutil.ToFloat64(socGauge); got < 0.49 || got > 0.51 {
		t.Errorf("socGauge = %v", got)
	}
	if got := testutil.ToFloat64(gridExchange.WithLabelValues("import")); got != 0.5 {
		t.Errorf("grid import kWh = %v, want 0.5", got)
	}
}
