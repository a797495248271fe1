package ws

import (
	"context"

	"github.com/gridpilot/bessim/core/events"
	"github.com/gridpilot/bessim/infra/logger"
	"github.com/gridpilot/bessim/internal/eventbus"
)

// StartBridge subscribes to the run event bus and broadcasts every step and
// episode to the hub until the context is canceled.
func StartBridge(ctx context.Context, bus eventbus.EventBus, hub *Hub) {
	if bus == nil || hub == nil {
		return
	}
	log := logger.New("ws-bridge")
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
					msg, err := NewEnvelope(TypeStepUpdate, StepPayloadFromEvent(e))
					if err != nil {
						log.Errorf("marshal step update: %v", err)
						continue
					}
					hub.Broadcast(msg)
				case events.EpisodeEvent:
					msg, err := NewEnvelope(TypeEpisodeSummary, SummaryFromRecord(e.Record))
					if err != nil {
						log.Errorf("marshal episode summary: %v", err)
						continue
					}
					hub.Broadcast(msg)
				}
			}
		}
	}()
}
