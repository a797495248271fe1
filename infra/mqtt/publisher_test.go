package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"

	"github.com/gridpilot/bessim/core/events"
	"github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/model"
	"github.com/gridpilot/bessim/internal/eventbus"
)

func newTestPublisher(t *testing.T) (*Publisher, *mockClient) {
	t.Helper()
	mc := &mockClient{}
	newMQTTClient = func(o *paho.ClientOptions) pahoClient { mc.opts = o; return mc }
	t.Cleanup(func() {
		newMQTTClient = func(opts *paho.ClientOptions) pahoClient { return paho.NewClient(opts) }
	})
	pub, err := NewPublisher(Config{Broker: "tcp://localhost:1883", ClientID: "test", Topic: "bessim", QoS: 1})
	if err != nil {
		t.Fatalf("publisher: %v", err)
	}
	return pub, mc
}

func sampleStepEvent() events.StepEvent {
	return events.StepEvent{
		RunID:     "run-1",
		EpisodeID: "ep-1",
		Episode:   0,
		Step:      3,
		Reward:    -0.25,
		Info: model.StepInfo{
			Timestamp:        time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC),
			SoC:              0.55,
			LoadKW:           0.4,
			GenerationKW:     0.1,
			RequestedKW:      1.2,
			CorrectedKW:      1.0,
			ActualKW:         0,
			GridImportKW:     0.3,
			Tier:             model.TierLow,
			Price:            0.1,
			ActionViolations: []model.Violation{{Kind: model.ViolationAction, Requested: 1.2, Corrected: 1.0}},
			SoCViolations:    []model.Violation{},
		},
	}
}

func TestPublishStep(t *testing.T) {
	pub, mc := newTestPublisher(t)
	if err := pub.PublishStep(sampleStepEvent()); err != nil {
		t.Fatalf("publish step: %v", err)
	}
	msgs := mc.messages()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].topic != "bessim/step" {
		t.Fatalf("topic = %q, want bessim/step", msgs[0].topic)
	}
	if msgs[0].qos != 1 {
		t.Fatalf("qos = %d, want 1", msgs[0].qos)
	}
	var got map[string]any
	if err := json.Unmarshal(msgs[0].payload, &got); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if got["run_id"] != "run-1" || got["episode_id"] != "ep-1" {
		t.Fatalf("run identifiers wrong: %v", got)
	}
	if got["soc"] != 0.55 || got["tier"] != "low" || got["price"] != 0.1 {
		t.Fatalf("step fields wrong: %v", got)
	}
	if got["violations"] != float64(1) {
		t.Fatalf("violations = %v, want 1", got["violations"])
	}
	wantTS := float64(time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC).UnixMilli())
	if got["timestamp_ms"] != wantTS {
		t.Fatalf("timestamp_ms = %v, want %v", got["timestamp_ms"], wantTS)
	}
}

func TestPublishEpisode(t *testing.T) {
	pub, mc := newTestPublisher(t)
	rec := metrics.EpisodeRecord{
		RunID:            "run-1",
		EpisodeID:        "ep-2",
		Episode:          2,
		Seed:             44,
		Policy:           "tariff",
		Steps:            24,
		Terminated:       true,
		TotalReward:      -3.5,
		FinalSoC:         0.62,
		ActionViolations: 2,
		SoCViolations:    1,
	}
	if err := pub.PublishEpisode(rec); err != nil {
		t.Fatalf("publish episode: %v", err)
	}
	msgs := mc.messages()
	if len(msgs) != 1 || msgs[0].topic != "bessim/episode" {
		t.Fatalf("episode not published on bessim/episode: %+v", msgs)
	}
	var got map[string]any
	if err := json.Unmarshal(msgs[0].payload, &got); err != nil {
		t.Fatalf("payload not json: %v", err)
	}
	if got["policy"] != "tariff" || got["steps"] != float64(24) {
		t.Fatalf("episode fields wrong: %v", got)
	}
	if got["total_reward"] != -3.5 || got["final_soc"] != 0.62 {
		t.Fatalf("reward fields wrong: %v", got)
	}
	if got["violations"] != float64(3) {
		t.Fatalf("violations = %v, want 3", got["violations"])
	}
}

func TestPublishStepBrokerError(t *testing.T) {
	pub, mc := newTestPublisher(t)
	mc.publishErrs = []error{fmt.Errorf("net fail")}
	if err := pub.PublishStep(sampleStepEvent()); err == nil {
		t.Fatalf("expected publish error")
	}
}

func TestDisconnect(t *testing.T) {
	pub, mc := newTestPublisher(t)
	pub.Disconnect()
	if !mc.isDisconnected() {
		t.Fatalf("client not disconnected")
	}
}

func TestStartPublisherForwardsEvents(t *testing.T) {
	pub, mc := newTestPublisher(t)
	bus := eventbus.New()
	defer bus.Close()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartPublisher(ctx, bus, pub)
	bus.Publish(sampleStepEvent())
	bus.Publish(events.EpisodeEvent{Record: metrics.EpisodeRecord{RunID: "run-1", EpisodeID: "ep-1", Policy: "idle"}})

	deadline := time.After(2 * time.Second)
	for len(mc.messages()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("events not forwarded, got %d messages", len(mc.messages()))
		case <-time.After(10 * time.Millisecond):
		}
	}
	msgs := mc.messages()
	if msgs[0].topic != "bessim/step" || msgs[1].topic != "bessim/episode" {
		t.Fatalf("unexpected topics: %q, %q", msgs[0].topic, msgs[1].topic)
	}
}
