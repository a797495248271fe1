package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gridpilot/bessim/config"
	"github.com/gridpilot/bessim/core/bms"
	"github.com/gridpilot/bessim/core/exogenous"
	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/core/policy"
	"github.com/gridpilot/bessim/core/runner"
	"github.com/gridpilot/bessim/infra/loader"
	"github.com/gridpilot/bessim/infra/logger"
	"github.com/gridpilot/bessim/infra/metrics"
	"github.com/gridpilot/bessim/infra/mqtt"
	"github.com/gridpilot/bessim/infra/ws"
	"github.com/gridpilot/bessim/internal/eventbus"
)

// Service wires a configured engine, policy and sinks into a runnable
// simulation, plus whichever live outputs the configuration enables.
type Service struct {
	Runner *runner.Runner

	cfg *config.Config
	bus eventbus.EventBus
	log logger.Logger

	pub       *mqtt.Publisher
	hub       *ws.Hub
	wsHandler *ws.Handler
}

// New creates a Service from the configuration. Everything that can fail
// does so here, before any episode runs.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	src, err := buildSource(cfg)
	if err != nil {
		return nil, err
	}
	env, err := bms.New(cfg.Env, src)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	pol, err := policy.FromConfig(*cfg)
	if err != nil {
		return nil, err
	}
	sink, err := coremetrics.NewSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("sinks: %w", err)
	}

	bus := eventbus.New()
	run := runner.New(env, pol, sink, bus, logger.New("runner"))

	svc := &Service{Runner: run, cfg: cfg, bus: bus, log: log}

	if cfg.Telemetry.MQTTEnabled {
		pub, err := mqtt.NewPublisher(mqttConfig(cfg.Telemetry))
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.pub = pub
	}
	if cfg.Telemetry.WSEnabled {
		svc.hub = ws.NewHub()
		svc.wsHandler = ws.NewHandler(svc.hub, ws.RunInfo{
			RunID:    run.RunID(),
			Policy:   cfg.Run.Policy,
			Episodes: cfg.Run.Episodes,
		})
	}
	return svc, nil
}

// Run starts the enabled outputs and rolls out the configured episodes. It
// returns once the run finishes or the context is cancelled.
func (s *Service) Run(ctx context.Context) (runner.Result, error) {
	if s.cfg.Metrics.PrometheusEnabled {
		addr := s.cfg.Metrics.PrometheusPort
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
		go func() {
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.pub != nil {
		mqtt.StartPublisher(ctx, s.bus, s.pub)
	}
	if s.hub != nil {
		handler := s.wsHandler
		addr := s.cfg.Telemetry.WSAddr
		go func() {
			if err := ws.StartServer(ctx, addr, handler); err != nil {
				s.log.Errorf("ws server: %v", err)
			}
		}()
		ws.StartBridge(ctx, s.bus, s.hub)
	}

	return s.Runner.Run(ctx, s.cfg.Run.Episodes, s.cfg.Run.Seed)
}

// Close releases the live outputs.
func (s *Service) Close() error {
	if s.pub != nil {
		s.pub.Disconnect()
	}
	if s.hub != nil {
		s.hub.Close()
	}
	return nil
}

// buildSource constructs the exogenous source selected by the configuration.
// In series mode the episode clock is re-anchored to the first recorded
// sample, so a replay always starts where the recording starts.
func buildSource(cfg *config.Config) (exogenous.Source, error) {
	switch cfg.Source.Mode {
	case config.SourceSeries:
		points, err := loader.Load(cfg.Source)
		if err != nil {
			return nil, fmt.Errorf("series source: %w", err)
		}
		src := exogenous.NewSeries(points, cfg.Source.AlignTolerance(), cfg.Env)
		if start, ok := src.Start(); ok {
			cfg.Env.EpisodeStart = start.UTC().Format(time.RFC3339)
		}
		return src, nil
	default:
		return exogenous.NewSynthetic(cfg.Env, cfg.Source), nil
	}
}

func mqttConfig(t config.TelemetryConfig) mqtt.Config {
	return mqtt.Config{
		Broker:     t.MQTTBroker,
		ClientID:   t.MQTTClientID,
		Username:   t.MQTTUsername,
		Password:   t.MQTTPassword,
		Topic:      t.MQTTTopic,
		QoS:        t.MQTTQoS,
		UseTLS:     t.MQTTUseTLS,
		ClientCert: t.MQTTClientCert,
		ClientKey:  t.MQTTClientKey,
		CABundle:   t.MQTTCABundle,
	}
}
