package scenarios

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/bms"
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/model"
	"github.com/gridpilot/bessim/core/runner"
)

const tolerance = 1e-9

// RunScenario rolls out one scripted episode and checks the recorded
// outcome against the scenario's expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	cfg := config.DefaultEnvConfig()
	sc.Env.Apply(&cfg)

	src, err := newScriptedSource(cfg, sc.LoadKW, sc.GenerationKW)
	if err != nil {
		t.Fatalf("source: %v", err)
	}
	env, err := bms.New(cfg, src)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	sink := coremetrics.NewMemorySink()
	run := runner.New(env, &scriptedPolicy{actions: sc.Actions}, sink, nil, nil)
	if _, err := run.Run(context.Background(), 1, 0); err != nil {
		t.Fatalf("run: %v", err)
	}

	eps := sink.Episodes()
	if len(eps) != 1 {
		t.Fatalf("expected one episode record, got %d", len(eps))
	}
	ep := eps[0]

	exp := sc.Expected
	if ep.Steps != exp.Steps {
		t.Errorf("steps = %d, want %d", ep.Steps, exp.Steps)
	}
	if ep.Terminated != exp.Terminated {
		t.Errorf("terminated = %v, want %v", ep.Terminated, exp.Terminated)
	}
	if ep.Truncated != exp.Truncated {
		t.Errorf("truncated = %v, want %v", ep.Truncated, exp.Truncated)
	}
	if math.Abs(ep.FinalSoC-exp.FinalSoC) > tolerance {
		t.Errorf("final soc = %v, want %v", ep.FinalSoC, exp.FinalSoC)
	}
	if math.Abs(ep.TotalReward-exp.TotalReward) > tolerance {
		t.Errorf("total reward = %v, want %v", ep.TotalReward, exp.TotalReward)
	}
	if ep.ActionViolations != exp.ActionViolations {
		t.Errorf("action violations = %d, want %d", ep.ActionViolations, exp.ActionViolations)
	}
	if ep.SoCViolations != exp.SoCViolations {
		t.Errorf("soc violations = %d, want %d", ep.SoCViolations, exp.SoCViolations)
	}
}

// scriptedPolicy replays a fixed action sequence, idling once it runs out.
type scriptedPolicy struct {
	actions []float64
	i       int
}

func (p *scriptedPolicy) Decide(model.Observation, time.Time) float64 {
	if p.i >= len(p.actions) {
		return 0
	}
	a := p.actions[p.i]
	p.i++
	return a
}

func (p *scriptedPolicy) Reset(int64) { p.i = 0 }

func (p *scriptedPolicy) Name() string { return "scripted" }

// scriptedSource serves per-step load and generation values keyed by the
// simulated timestamp. Indexes past the longer list report no data, which
// truncates the episode.
type scriptedSource struct {
	start     time.Time
	stepHours float64
	load      []float64
	gen       []float64
	steps     int
}

func newScriptedSource(cfg config.EnvConfig, load, gen []float64) (*scriptedSource, error) {
	start, err := cfg.Start()
	if err != nil {
		return nil, err
	}
	steps := len(load)
	if len(gen) > steps {
		steps = len(gen)
	}
	return &scriptedSource{start: start, stepHours: cfg.StepHours, load: load, gen: gen, steps: steps}, nil
}

func (s *scriptedSource) Sample(t time.Time) (model.ExogenousSample, bool) {
	idx := int(t.Sub(s.start).Hours() / s.stepHours)
	if idx < 0 || idx >= s.steps {
		return model.ExogenousSample{}, false
	}
	return model.ExogenousSample{LoadKW: at(s.load, idx), GenerationKW: at(s.gen, idx)}, true
}

func (s *scriptedSource) Reset(int64) {}

func at(xs []float64, i int) float64 {
	if len(xs) == 0 {
		return 0
	}
	if i >= len(xs) {
		i = len(xs) - 1
	}
	return xs[i]
}
