package metrics

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"

	coremetrics "github.com/gridpilot/bessim/core/metrics"
	"github.com/gridpilot/bessim/pkg/export"
)

// CSVSink appends step and episode ledgers to files as the records arrive.
// Every row is flushed immediately so an interrupted run still leaves a
// usable ledger behind.
type CSVSink struct {
	mu        sync.Mutex
	steps     *csv.Writer
	stepsF    *os.File
	episodes  *csv.Writer
	episodesF *os.File
}

// NewCSVSink creates the ledger files. Either path may be empty to skip
// that ledger, but at least one must be given.
func NewCSVSink(stepsPath, episodesPath string) (*CSVSink, error) {
	if stepsPath == "" && episodesPath == "" {
		return nil, fmt.Errorf("csv sink requires steps_path or episodes_path")
	}
	s := &CSVSink{}
	if stepsPath != "" {
		w, f, err := newLedger(stepsPath, export.StepHeader())
		if err != nil {
			return nil, err
		}
		s.steps, s.stepsF = w, f
	}
	if episodesPath != "" {
		w, f, err := newLedger(episodesPath, export.EpisodeHeader())
		if err != nil {
			s.Close()
			return nil, err
		}
		s.episodes, s.episodesF = w, f
	}
	return s, nil
}

func newLedger(path string, header []string) (*csv.Writer, *os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	return w, f, nil
}

func (s *CSVSink) RecordStep(rec coremetrics.StepRecord) error {
	if s.steps == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.steps.Write(export.StepRow(rec)); err != nil {
		return err
	}
	s.steps.Flush()
	return s.steps.Error()
}

func (s *CSVSink) RecordEpisode(rec coremetrics.EpisodeRecord) error {
	if s.episodes == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.episodes.Write(export.EpisodeRow(rec)); err != nil {
		return err
	}
	s.episodes.Flush()
	return s.episodes.Error()
}

// Close closes the ledger files.
func (s *CSVSink) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stepsF != nil {
		_ = s.stepsF.Close()
		s.steps, s.stepsF = nil, nil
	}
	if s.episodesF != nil {
		_ = s.episodesF.Close()
		s.episodes, s.episodesF = nil, nil
	}
}
