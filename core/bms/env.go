package bms

import (
	"math"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/exogenous"
	"github.com/gridpilot/bessim/core/model"
)

type envPhase int

const (
	phaseUninitialized envPhase = iota
	phaseReady
	phaseTerminated
)

// Env is a single-battery episode simulator. It is not safe for concurrent
// use; drive it from one goroutine.
//
// The lifecycle is Reset, then Step until the result reports Terminated or
// Truncated, then Reset again. Step before the first Reset returns
// ErrNotReset, Step on an ended episode returns ErrTerminated.
type Env struct {
	cfg       config.EnvConfig
	src       exogenous.Source
	tariff    Tariff
	corrector actionCorrector

	start time.Time
	clock simClock
	bat   battery
	steps int
	phase envPhase

	// sample holds the exogenous signals for the current clock time. It is
	// drawn on Reset and after every clock advance.
	sample model.ExogenousSample
}

// New validates cfg and builds an engine reading exogenous signals from src.
// A nil src falls back to the built-in synthetic generator with its
// defaults. The returned Env must be Reset before the first Step.
func New(cfg config.EnvConfig, src exogenous.Source) (*Env, error) {
	if err := cfg.Validate(); err != nil {
		return nil, &ConfigError{Err: err}
	}
	start, err := cfg.Start()
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	if src == nil {
		var sc config.SourceConfig
		sc.SetDefaults()
		src = exogenous.NewSynthetic(cfg, sc)
	}
	return &Env{
		cfg:    cfg,
		src:    src,
		tariff: NewTariff(cfg),
		corrector: actionCorrector{
			minKW:  cfg.ActionMinKW,
			maxKW:  cfg.ActionMaxKW,
			weight: cfg.ActionPenaltyWeight,
		},
		start: start,
		phase: phaseUninitialized,
	}, nil
}

// Reset starts a fresh episode: SoC back to the configured initial value,
// clock back to the episode start, step counter to zero. The seed fixes the
// stochastic parts of the signal source, so equal seeds replay identical
// episodes. Reset never fails and may be called at any point.
func (e *Env) Reset(seed int64) (model.Observation, model.StepInfo) {
	e.clock = newSimClock(e.start, e.cfg.StepDuration())
	e.bat = battery{
		soc:         e.cfg.InitialSoC,
		socMin:      e.cfg.SoCMin,
		socMax:      e.cfg.SoCMax,
		efficiency:  e.cfg.Efficiency,
		capacityKWh: e.cfg.CapacityKWh,
		stepHours:   e.cfg.StepHours,
		weight:      e.cfg.SoCPenaltyWeight,
	}
	e.steps = 0
	e.phase = phaseReady
	e.src.Reset(seed)
	e.sample, _ = e.src.Sample(e.clock.Now())

	episodesTotal.Inc()
	socGauge.Set(e.bat.soc)

	return e.observe(), e.snapshot()
}

// Step simulates one timestep under the requested battery power in kW,
// positive to charge and negative to discharge. The request is corrected in
// two stages before it touches the grid: first clamped to the rated
// envelope, then bounded by the site balance so discharge only covers an
// actual deficit and charge only soaks up actual PV surplus. Each correction
// and each SoC clamp is penalized and reported in the step info.
func (e *Env) Step(actionKW float64) (model.StepResult, error) {
	switch e.phase {
	case phaseUninitialized:
		return model.StepResult{}, ErrNotReset
	case phaseTerminated:
		return model.StepResult{}, ErrTerminated
	}

	stepTime := e.clock.Now()
	load := e.sample.LoadKW
	gen := e.sample.GenerationKW
	net := e.sample.NetLoadKW()

	corrected, actionPen, actionViol := e.corrector.correct(actionKW)
	socPen, socViol := e.bat.apply(corrected)

	actual := resolveBalance(corrected, net)
	resPen, resViol := e.bat.apply(actual - corrected)
	socPen += resPen

	netAfter := net + actual
	gridImport := math.Max(netAfter, 0)
	gridExport := math.Max(-netAfter, 0)

	tier, price := e.tariff.PriceAt(stepTime)
	cost, revenue, reward := settle(price, gridImport, gridExport, actionPen, socPen)

	info := model.StepInfo{
		Timestamp:        stepTime,
		SoC:              e.bat.soc,
		LoadKW:           load,
		GenerationKW:     gen,
		RequestedKW:      actionKW,
		CorrectedKW:      corrected,
		ActualKW:         actual,
		GridImportKW:     gridImport,
		GridExportKW:     gridExport,
		Tier:             tier,
		Price:            price,
		Cost:             cost,
		Revenue:          revenue,
		ActionPenalty:    actionPen,
		SoCPenalty:       socPen,
		ActionViolations: []model.Violation{},
		SoCViolations:    []model.Violation{},
	}
	if actionViol != nil {
		info.ActionViolations = append(info.ActionViolations, *actionViol)
		violationsTotal.WithLabelValues(actionViol.Kind.String()).Inc()
	}
	if socViol != nil {
		info.SoCViolations = append(info.SoCViolations, *socViol)
		violationsTotal.WithLabelValues(socViol.Kind.String()).Inc()
	}
	if resViol != nil {
		info.SoCViolations = append(info.SoCViolations, *resViol)
		violationsTotal.WithLabelValues(resViol.Kind.String()).Inc()
	}

	e.steps++
	e.clock.Advance()

	terminated := e.steps >= e.cfg.MaxSteps
	truncated := false
	if !terminated {
		// Keep the previous sample on exhaustion so the final observation
		// stays meaningful.
		if next, ok := e.src.Sample(e.clock.Now()); ok {
			e.sample = next
		} else {
			truncated = true
		}
	}
	if terminated || truncated {
		e.phase = phaseTerminated
	}

	stepsTotal.Inc()
	socGauge.Set(e.bat.soc)
	lastReward.Set(reward)
	gridExchange.WithLabelValues("import").Add(gridImport * e.cfg.StepHours)
	gridExchange.WithLabelValues("export").Add(gridExport * e.cfg.StepHours)

	return model.StepResult{
		Observation: e.observe(),
		Reward:      reward,
		Terminated:  terminated,
		Truncated:   truncated,
		Info:        info,
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Env) Config() config.EnvConfig { return e.cfg }

// SoC returns the current state of charge.
func (e *Env) SoC() float64 { return e.bat.soc }

// Now returns the simulated timestamp the next Step will run at.
func (e *Env) Now() time.Time { return e.clock.Now() }

// Steps returns the number of steps taken since the last Reset.
func (e *Env) Steps() int { return e.steps }

// Tariff returns the engine's tariff table.
func (e *Env) Tariff() Tariff { return e.tariff }

func (e *Env) observe() model.Observation {
	hour := e.clock.HourOfDay()
	day := float64(e.clock.WeekdayIndex())
	return model.Observation{
		SoC:          e.bat.soc,
		LoadKW:       e.sample.LoadKW,
		GenerationKW: e.sample.GenerationKW,
		HourSin:      math.Sin(2 * math.Pi * hour / 24),
		HourCos:      math.Cos(2 * math.Pi * hour / 24),
		DaySin:       math.Sin(2 * math.Pi * day / 7),
		DayCos:       math.Cos(2 * math.Pi * day / 7),
	}
}

// snapshot is the info payload of a Reset: state only, no monetary fields.
func (e *Env) snapshot() model.StepInfo {
	tier, price := e.tariff.PriceAt(e.clock.Now())
	return model.StepInfo{
		Timestamp:        e.clock.Now(),
		SoC:              e.bat.soc,
		LoadKW:           e.sample.LoadKW,
		GenerationKW:     e.sample.GenerationKW,
		Tier:             tier,
		Price:            price,
		ActionViolations: []model.Violation{},
		SoCViolations:    []model.Violation{},
	}
}
