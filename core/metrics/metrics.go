package metrics

import (
	"time"

	"github.com/gridpilot/bessim/core/model"
)

// StepRecord is the per-step telemetry record emitted by a simulation run.
type StepRecord struct {
	RunID        string
	EpisodeID    string
	Episode      int
	Step         int
	Timestamp    time.Time
	SoC          float64
	LoadKW       float64
	GenerationKW float64
	RequestedKW  float64
	CorrectedKW  float64
	ActualKW     float64
	GridImportKW float64
	GridExportKW float64
	Tier         string
	Price        float64
	Cost         float64
	Revenue      float64
	ActionPen    float64
	SoCPen       float64
	Reward       float64
	Violations   int
}

// NewStepRecord flattens a step outcome into a record.
func NewStepRecord(runID, episodeID string, episode, step int, info model.StepInfo, reward float64) StepRecord {
	return StepRecord{
		RunID:        runID,
		EpisodeID:    episodeID,
		Episode:      episode,
		Step:         step,
		Timestamp:    info.Timestamp,
		SoC:          info.SoC,
		LoadKW:       info.LoadKW,
		GenerationKW: info.GenerationKW,
		RequestedKW:  info.RequestedKW,
		CorrectedKW:  info.CorrectedKW,
		ActualKW:     info.ActualKW,
		GridImportKW: info.GridImportKW,
		GridExportKW: info.GridExportKW,
		Tier:         info.Tier.String(),
		Price:        info.Price,
		Cost:         info.Cost,
		Revenue:      info.Revenue,
		ActionPen:    info.ActionPenalty,
		SoCPen:       info.SoCPenalty,
		Reward:       reward,
		Violations:   len(info.ActionViolations) + len(info.SoCViolations),
	}
}

// StepRecorder records per-step telemetry.
type StepRecorder interface {
	RecordStep(rec StepRecord) error
}

// EpisodeRecord summarizes a finished episode.
type EpisodeRecord struct {
	RunID            string
	EpisodeID        string
	Episode          int
	Seed             int64
	Policy           string
	Steps            int
	Terminated       bool
	Truncated        bool
	TotalReward      float64
	MeanReward       float64
	RewardStdDev     float64
	TotalCost        float64
	TotalRevenue     float64
	ImportKWh        float64
	ExportKWh        float64
	ActionViolations int
	SoCViolations    int
	FinalSoC         float64
	Start            time.Time
	End              time.Time
}

// EpisodeRecorder records episode summaries.
type EpisodeRecorder interface {
	RecordEpisode(rec EpisodeRecord) error
}

// Sink records everything a simulation run emits.
type Sink interface {
	StepRecorder
	EpisodeRecorder
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordStep(StepRecord) error       { return nil }
func (NopSink) RecordEpisode(EpisodeRecord) error { return nil }
