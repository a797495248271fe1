package mqtt

import (
	"context"
	"encoding/json"

	"github.com/gridpilot/bessim/core/events"
	"github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/infra/logger"
	"github.com/gridpilot/bessim/internal/eventbus"
)

// stepPayload is the wire format of one step on <topic>/step.
type stepPayload struct {
	RunID        string  `json:"run_id"`
	EpisodeID    string  `json:"episode_id"`
	Episode      int     `json:"episode"`
	Step         int     `json:"step"`
	Timestamp    int64   `json:"timestamp_ms"`
	SoC          float64 `json:"soc"`
	LoadKW       float64 `json:"load_kw"`
	GenerationKW float64 `json:"generation_kw"`
	RequestedKW  float64 `json:"requested_kw"`
	CorrectedKW  float64 `json:"corrected_kw"`
	ActualKW     float64 `json:"actual_kw"`
	GridImportKW float64 `json:"grid_import_kw"`
	GridExportKW float64 `json:"grid_export_kw"`
	Tier         string  `json:"tier"`
	Price        float64 `json:"price"`
	Reward       float64 `json:"reward"`
	Violations   int     `json:"violations"`
	Terminated   bool    `json:"terminated"`
	Truncated    bool    `json:"truncated"`
}

// episodePayload is the wire format of an episode summary on
// <topic>/episode.
type episodePayload struct {
	RunID       string  `json:"run_id"`
	EpisodeID   string  `json:"episode_id"`
	Episode     int     `json:"episode"`
	Seed        int64   `json:"seed"`
	Policy      string  `json:"policy"`
	Steps       int     `json:"steps"`
	Truncated   bool    `json:"truncated"`
	TotalReward float64 `json:"total_reward"`
	FinalSoC    float64 `json:"final_soc"`
	Violations  int     `json:"violations"`
}

// Publisher pushes run telemetry to an MQTT broker as JSON payloads.
type Publisher struct {
	cli   pahoClient
	topic string
	qos   byte
	log   logger.Logger
}

// NewPublisher connects to the broker described by cfg.
func NewPublisher(cfg Config) (*Publisher, error) {
	log := logger.New("mqtt-publisher")
	cli, err := connect(cfg, log)
	if err != nil {
		return nil, err
	}
	return &Publisher{cli: cli, topic: cfg.Topic, qos: cfg.QoS, log: log}, nil
}

// PublishStep sends one step payload. Publish errors are returned so the
// caller can decide whether to drop or log.
func (p *Publisher) PublishStep(ev events.StepEvent) error {
	payload := stepPayload{
		RunID:        ev.RunID,
		EpisodeID:    ev.EpisodeID,
		Episode:      ev.Episode,
		Step:         ev.Step,
		Timestamp:    ev.Info.Timestamp.UnixMilli(),
		SoC:          ev.Info.SoC,
		LoadKW:       ev.Info.LoadKW,
		GenerationKW: ev.Info.GenerationKW,
		RequestedKW:  ev.Info.RequestedKW,
		CorrectedKW:  ev.Info.CorrectedKW,
		ActualKW:     ev.Info.ActualKW,
		GridImportKW: ev.Info.GridImportKW,
		GridExportKW: ev.Info.GridExportKW,
		Tier:         ev.Info.Tier.String(),
		Price:        ev.Info.Price,
		Reward:       ev.Reward,
		Violations:   len(ev.Info.ActionViolations) + len(ev.Info.SoCViolations),
		Terminated:   ev.Terminated,
		Truncated:    ev.Truncated,
	}
	return p.publish(p.topic+"/step", payload)
}

// PublishEpisode sends an episode summary payload.
func (p *Publisher) PublishEpisode(rec metrics.EpisodeRecord) error {
	payload := episodePayload{
		RunID:       rec.RunID,
		EpisodeID:   rec.EpisodeID,
		Episode:     rec.Episode,
		Seed:        rec.Seed,
		Policy:      rec.Policy,
		Steps:       rec.Steps,
		Truncated:   rec.Truncated,
		TotalReward: rec.TotalReward,
		FinalSoC:    rec.FinalSoC,
		Violations:  rec.ActionViolations + rec.SoCViolations,
	}
	return p.publish(p.topic+"/episode", payload)
}

func (p *Publisher) publish(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	token := p.cli.Publish(topic, p.qos, false, data)
	token.Wait()
	return token.Error()
}

// Disconnect gracefully closes the MQTT connection.
func (p *Publisher) Disconnect() {
	if p.cli != nil && p.cli.IsConnected() {
		p.cli.Disconnect(250)
	}
}

// StartPublisher subscribes to the event bus and forwards simulation events
// to the broker until the context is canceled. Publish failures are logged
// and never stall the run.
func StartPublisher(ctx context.Context, bus eventbus.EventBus, pub *Publisher) {
	if bus == nil || pub == nil {
		return
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				switch e := ev.(type) {
				case events.StepEvent:
					if err := pub.PublishStep(e); err != nil {
						pub.log.Errorf("publish step: %v", err)
					}
				case events.EpisodeEvent:
					if err := pub.PublishEpisode(e.Record); err != nil {
						pub.log.Errorf("publish episode: %v", err)
					}
				}
			}
		}
	}()
}
