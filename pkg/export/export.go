// Package export renders run telemetry as CSV ledgers and JSON documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/gridpilot/bessim/core/metrics"
)

// StepHeader returns the column names of the step ledger.
func StepHeader() []string {
	return []string{
		"run_id", "episode_id", "episode", "step", "timestamp",
		"soc", "load_kw", "generation_kw",
		"requested_kw", "corrected_kw", "actual_kw",
		"grid_import_kw", "grid_export_kw",
		"tier", "price", "cost", "revenue",
		"action_penalty", "soc_penalty", "reward", "violations",
	}
}

// StepRow flattens one step record into CSV fields, in StepHeader order.
func StepRow(r metrics.StepRecord) []string {
	return []string{
		r.RunID,
		r.EpisodeID,
		strconv.Itoa(r.Episode),
		strconv.Itoa(r.Step),
		r.Timestamp.Format(time.RFC3339),
		fmtFloat(r.SoC),
		fmtFloat(r.LoadKW),
		fmtFloat(r.GenerationKW),
		fmtFloat(r.RequestedKW),
		fmtFloat(r.CorrectedKW),
		fmtFloat(r.ActualKW),
		fmtFloat(r.GridImportKW),
		fmtFloat(r.GridExportKW),
		r.Tier,
		fmtFloat(r.Price),
		fmtFloat(r.Cost),
		fmtFloat(r.Revenue),
		fmtFloat(r.ActionPen),
		fmtFloat(r.SoCPen),
		fmtFloat(r.Reward),
		strconv.Itoa(r.Violations),
	}
}

// EpisodeHeader returns the column names of the episode ledger.
func EpisodeHeader() []string {
	return []string{
		"run_id", "episode_id", "episode", "seed", "policy", "steps",
		"terminated", "truncated",
		"total_reward", "mean_reward", "reward_stddev",
		"total_cost", "total_revenue", "import_kwh", "export_kwh",
		"action_violations", "soc_violations", "final_soc",
		"start", "end",
	}
}

// EpisodeRow flattens one episode record into CSV fields, in EpisodeHeader
// order.
func EpisodeRow(r metrics.EpisodeRecord) []string {
	return []string{
		r.RunID,
		r.EpisodeID,
		strconv.Itoa(r.Episode),
		strconv.FormatInt(r.Seed, 10),
		r.Policy,
		strconv.Itoa(r.Steps),
		strconv.FormatBool(r.Terminated),
		strconv.FormatBool(r.Truncated),
		fmtFloat(r.TotalReward),
		fmtFloat(r.MeanReward),
		fmtFloat(r.RewardStdDev),
		fmtFloat(r.TotalCost),
		fmtFloat(r.TotalRevenue),
		fmtFloat(r.ImportKWh),
		fmtFloat(r.ExportKWh),
		strconv.Itoa(r.ActionViolations),
		strconv.Itoa(r.SoCViolations),
		fmtFloat(r.FinalSoC),
		r.Start.Format(time.RFC3339),
		r.End.Format(time.RFC3339),
	}
}

// WriteStepsCSV writes the step ledger to w.
func WriteStepsCSV(w io.Writer, recs []metrics.StepRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(StepHeader()); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(StepRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEpisodesCSV writes the episode ledger to w.
func WriteEpisodesCSV(w io.Writer, recs []metrics.EpisodeRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(EpisodeHeader()); err != nil {
		return err
	}
	for _, r := range recs {
		if err := cw.Write(EpisodeRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEpisodesJSON writes the episode records to w in JSON format.
func WriteEpisodesJSON(w io.Writer, recs []metrics.EpisodeRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(recs)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
