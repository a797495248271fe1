package exogenous

import (
	"math"
	"math/rand"
	"time"

	"github.com/sixdouglas/suncalc"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/model"
)

// Synthetic generates smooth daily load and generation curves. Generation
// follows either a fixed sinusoidal bell peaking at noon or, in astro mode,
// the actual solar elevation at the configured coordinates. Optional
// Gaussian noise is drawn from a per-episode seeded generator, so two
// episodes reset with the same seed replay identically.
type Synthetic struct {
	loadMin  float64
	loadMax  float64
	genMin   float64
	genMax   float64
	noiseStd float64
	astro    bool
	lat      float64
	lon      float64
	rng      *rand.Rand
}

func NewSynthetic(env config.EnvConfig, src config.SourceConfig) *Synthetic {
	return &Synthetic{
		loadMin:  env.LoadMinKW,
		loadMax:  env.LoadMaxKW,
		genMin:   env.GenerationMinKW,
		genMax:   env.GenerationMaxKW,
		noiseStd: src.NoiseStdDev,
		astro:    src.Mode == config.SourceAstro,
		lat:      src.Latitude,
		lon:      src.Longitude,
		rng:      rand.New(rand.NewSource(0)),
	}
}

func (s *Synthetic) Reset(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Synthetic) Sample(t time.Time) (model.ExogenousSample, bool) {
	hour := float64(t.Hour()) + float64(t.Minute())/60.0
	load := 0.5 + 0.5*math.Sin(math.Pi*(hour-17)/12)
	gen := s.generationAt(t, hour)
	if s.noiseStd > 0 {
		load += s.rng.NormFloat64() * s.noiseStd
		gen += s.rng.NormFloat64() * s.noiseStd
	}
	return model.ExogenousSample{
		LoadKW:       clamp(load, s.loadMin, s.loadMax),
		GenerationKW: clamp(gen, s.genMin, s.genMax),
	}, true
}

// generationAt is the clear-sky production before noise and clamping. The
// sinusoidal shape rises at 06:00, peaks at noon and dies at 18:00. Astro
// mode replaces it with sin(solar altitude) scaled to the generation ceiling,
// which tracks season and latitude.
func (s *Synthetic) generationAt(t time.Time, hour float64) float64 {
	if s.astro {
		pos := suncalc.GetPosition(t, s.lat, s.lon)
		return s.genMax * math.Max(0, math.Sin(pos.Altitude))
	}
	return math.Max(0, math.Sin(math.Pi*(hour-6)/12))
}
