package ws

import (
	"encoding/json"
	"time"

	"github.com/gridpilot/bessim/core/events"
	"github.com/gridpilot/bessim/core/metrics"
)

// Envelope wraps all websocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants. The feed is one-directional: the server streams
// run telemetry, clients only listen.
const (
	TypeRunHello       = "run:hello"
	TypeStepUpdate     = "step:update"
	TypeEpisodeSummary = "episode:summary"
)

// HelloPayload is sent once to every client right after the upgrade.
type HelloPayload struct {
	RunID    string `json:"run_id"`
	Policy   string `json:"policy"`
	Episodes int    `json:"episodes"`
}

// StepPayload carries one engine step.
type StepPayload struct {
	EpisodeID    string  `json:"episode_id"`
	Episode      int     `json:"episode"`
	Step         int     `json:"step"`
	Timestamp    string  `json:"timestamp"`
	SoC          float64 `json:"soc"`
	LoadKW       float64 `json:"load_kw"`
	GenerationKW float64 `json:"generation_kw"`
	ActualKW     float64 `json:"actual_kw"`
	GridImportKW float64 `json:"grid_import_kw"`
	GridExportKW float64 `json:"grid_export_kw"`
	Tier         string  `json:"tier"`
	Price        float64 `json:"price"`
	Reward       float64 `json:"reward"`
	Terminated   bool    `json:"terminated"`
	Truncated    bool    `json:"truncated"`
}

// EpisodeSummaryPayload carries the aggregates of one finished episode.
type EpisodeSummaryPayload struct {
	EpisodeID    string  `json:"episode_id"`
	Episode      int     `json:"episode"`
	Policy       string  `json:"policy"`
	Steps        int     `json:"steps"`
	Truncated    bool    `json:"truncated"`
	TotalReward  float64 `json:"total_reward"`
	MeanReward   float64 `json:"mean_reward"`
	TotalCost    float64 `json:"total_cost"`
	TotalRevenue float64 `json:"total_revenue"`
	ImportKWh    float64 `json:"import_kwh"`
	ExportKWh    float64 `json:"export_kwh"`
	FinalSoC     float64 `json:"final_soc"`
	Violations   int     `json:"violations"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// StepPayloadFromEvent flattens a step event into its wire form.
func StepPayloadFromEvent(ev events.StepEvent) StepPayload {
	return StepPayload{
		EpisodeID:    ev.EpisodeID,
		Episode:      ev.Episode,
		Step:         ev.Step,
		Timestamp:    ev.Info.Timestamp.Format(time.RFC3339),
		SoC:          ev.Info.SoC,
		LoadKW:       ev.Info.LoadKW,
		GenerationKW: ev.Info.GenerationKW,
		ActualKW:     ev.Info.ActualKW,
		GridImportKW: ev.Info.GridImportKW,
		GridExportKW: ev.Info.GridExportKW,
		Tier:         ev.Info.Tier.String(),
		Price:        ev.Info.Price,
		Reward:       ev.Reward,
		Terminated:   ev.Terminated,
		Truncated:    ev.Truncated,
	}
}

// SummaryFromRecord flattens an episode record into its wire form.
func SummaryFromRecord(rec metrics.EpisodeRecord) EpisodeSummaryPayload {
	return EpisodeSummaryPayload{
		EpisodeID:    rec.EpisodeID,
		Episode:      rec.Episode,
		Policy:       rec.Policy,
		Steps:        rec.Steps,
		Truncated:    rec.Truncated,
		TotalReward:  rec.TotalReward,
		MeanReward:   rec.MeanReward,
		TotalCost:    rec.TotalCost,
		TotalRevenue: rec.TotalRevenue,
		ImportKWh:    rec.ImportKWh,
		ExportKWh:    rec.ExportKWh,
		FinalSoC:     rec.FinalSoC,
		Violations:   rec.ActionViolations + rec.SoCViolations,
	}
}
