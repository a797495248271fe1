// Package runner drives complete simulation runs. It owns the episode loop:
// reset the engine, query the policy, step, then fan each outcome out to the
// metrics sink and the event bus.
package runner

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gridpilot/bessim/core/bms"
	"github.com/gridpilot/bessim/core/events"
	"github.com/gridpilot/bessim/core/logger"
	"github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/policy"
	"github.com/gridpilot/bessim/internal/eventbus"
)

// Runner rolls out episodes of one engine under one policy. Both sink and
// bus are optional; a nil logger silences the runner.
type Runner struct {
	env   *bms.Env
	pol   policy.Policy
	sink  metrics.Sink
	bus   eventbus.EventBus
	log   logger.Logger
	runID string
}

func New(env *bms.Env, pol policy.Policy, sink metrics.Sink, bus eventbus.EventBus, log logger.Logger) *Runner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	if log == nil {
		log = nopLogger{}
	}
	return &Runner{
		env:   env,
		pol:   pol,
		sink:  sink,
		bus:   bus,
		log:   log,
		runID: uuid.NewString(),
	}
}

// RunID identifies this runner's episodes across sinks and events.
func (r *Runner) RunID() string { return r.runID }

// Run rolls out the requested number of episodes. Episode e is seeded with
// baseSeed+e, so a whole run replays from a single seed. Sink errors are
// logged and do not interrupt the run; engine errors and context
// cancellation abort it.
func (r *Runner) Run(ctx context.Context, episodes int, baseSeed int64) (Result, error) {
	result := Result{RunID: r.runID}
	for e := 0; e < episodes; e++ {
		rec, err := r.episode(ctx, e, baseSeed+int64(e))
		if err != nil {
			return result, err
		}
		result.Episodes = append(result.Episodes, rec)
	}
	return result, nil
}

func (r *Runner) episode(ctx context.Context, episode int, seed int64) (metrics.EpisodeRecord, error) {
	episodeID := uuid.NewString()
	stepHours := r.env.Config().StepHours

	obs, _ := r.env.Reset(seed)
	r.pol.Reset(seed)

	rec := metrics.EpisodeRecord{
		RunID:     r.runID,
		EpisodeID: episodeID,
		Episode:   episode,
		Seed:      seed,
		Policy:    r.pol.Name(),
		FinalSoC:  r.env.SoC(),
		Start:     r.env.Now(),
	}
	var rewards []float64

	for {
		select {
		case <-ctx.Done():
			return rec, ctx.Err()
		default:
		}

		action := r.pol.Decide(obs, r.env.Now())
		res, err := r.env.Step(action)
		if err != nil {
			return rec, fmt.Errorf("runner: episode %d step %d: %w", episode, rec.Steps+1, err)
		}
		obs = res.Observation
		rec.Steps++
		rewards = append(rewards, res.Reward)
		rec.TotalReward += res.Reward
		rec.TotalCost += res.Info.Cost
		rec.TotalRevenue += res.Info.Revenue
		rec.ImportKWh += res.Info.GridImportKW * stepHours
		rec.ExportKWh += res.Info.GridExportKW * stepHours
		rec.ActionViolations += len(res.Info.ActionViolations)
		rec.SoCViolations += len(res.Info.SoCViolations)

		if err := r.sink.RecordStep(metrics.NewStepRecord(r.runID, episodeID, episode, rec.Steps, res.Info, res.Reward)); err != nil {
			r.log.Warnf("record step: %v", err)
		}
		if r.bus != nil {
			r.bus.Publish(events.StepEvent{
				RunID:       r.runID,
				EpisodeID:   episodeID,
				Episode:     episode,
				Step:        rec.Steps,
				Observation: res.Observation,
				Reward:      res.Reward,
				Terminated:  res.Terminated,
				Truncated:   res.Truncated,
				Info:        res.Info,
			})
		}

		if res.Terminated || res.Truncated {
			rec.Terminated = res.Terminated
			rec.Truncated = res.Truncated
			break
		}
	}

	rec.FinalSoC = r.env.SoC()
	rec.End = r.env.Now()
	rec.MeanReward, rec.RewardStdDev = rewardMoments(rewards)

	if err := r.sink.RecordEpisode(rec); err != nil {
		r.log.Warnf("record episode: %v", err)
	}
	if r.bus != nil {
		r.bus.Publish(events.EpisodeEvent{Record: rec})
	}
	r.log.Infow("episode finished", map[string]any{
		"episode":      episode,
		"seed":         seed,
		"steps":        rec.Steps,
		"total_reward": rec.TotalReward,
		"final_soc":    rec.FinalSoC,
		"violations":   rec.ActionViolations + rec.SoCViolations,
	})
	return rec, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Infow(string, map[string]any)  {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}
