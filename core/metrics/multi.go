package metrics

// MultiSink fans run telemetry out to multiple sinks.
type MultiSink struct {
	Sinks []Sink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordStep forwards the record to all sinks, returning the first error
// encountered.
func (m *MultiSink) RecordStep(rec StepRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordStep(rec); err != nil {
			return err
		}
	}
	return nil
}

// RecordEpisode forwards the summary to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordEpisode(rec EpisodeRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordEpisode(rec); err != nil {
			return err
		}
	}
	return nil
}
