package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/infra/logger"
)

// InfluxSink writes run telemetry to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB
// endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns
// a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.Sink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

// RecordStep writes the step as a measurement point on the simulated
// timeline.
func (s *InfluxSink) RecordStep(rec coremetrics.StepRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sim_step").
		AddTag("run_id", rec.RunID).
		AddTag("episode_id", rec.EpisodeID).
		AddTag("tier", rec.Tier).
		AddTag("component", "runner").
		AddField("episode", rec.Episode).
		AddField("step", rec.Step).
		AddField("soc", round3(rec.SoC)).
		AddField("load_kw", round3(rec.LoadKW)).
		AddField("generation_kw", round3(rec.GenerationKW)).
		AddField("requested_kw", round3(rec.RequestedKW)).
		AddField("corrected_kw", round3(rec.CorrectedKW)).
		AddField("actual_kw", round3(rec.ActualKW)).
		AddField("grid_import_kw", round3(rec.GridImportKW)).
		AddField("grid_export_kw", round3(rec.GridExportKW)).
		AddField("price", rec.Price).
		AddField("cost", round3(rec.Cost)).
		AddField("revenue", round3(rec.Revenue)).
		AddField("action_penalty", round3(rec.ActionPen)).
		AddField("soc_penalty", round3(rec.SoCPen)).
		AddField("reward", round3(rec.Reward)).
		AddField("violations", rec.Violations).
		SetTime(rec.Timestamp)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordEpisode writes the episode summary.
func (s *InfluxSink) RecordEpisode(rec coremetrics.EpisodeRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("sim_episode").
		AddTag("run_id", rec.RunID).
		AddTag("episode_id", rec.EpisodeID).
		AddTag("policy", rec.Policy).
		AddTag("truncated", strconv.FormatBool(rec.Truncated)).
		AddTag("component", "runner").
		AddField("episode", rec.Episode).
		AddField("seed", rec.Seed).
		AddField("steps", rec.Steps).
		AddField("total_reward", round3(rec.TotalReward)).
		AddField("mean_reward", round3(rec.MeanReward)).
		AddField("reward_stddev", round3(rec.RewardStdDev)).
		AddField("total_cost", round3(rec.TotalCost)).
		AddField("total_revenue", round3(rec.TotalRevenue)).
		AddField("import_kwh", round3(rec.ImportKWh)).
		AddField("export_kwh", round3(rec.ExportKWh)).
		AddField("action_violations", rec.ActionViolations).
		AddField("soc_violations", rec.SoCViolations).
		AddField("final_soc", round3(rec.FinalSoC)).
		SetTime(rec.End)
	return s.writeAPI.WritePoint(ctx, p)
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
