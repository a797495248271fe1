package metrics

import "sync"

// MemorySink buffers every record in memory. It backs file exports and the
// scenario harness, which inspect the whole run after the fact.
type MemorySink struct {
	mu       sync.Mutex
	steps    []StepRecord
	episodes []EpisodeRecord
}

// NewMemorySink returns an empty MemorySink.
func NewMemorySink() *MemorySink { return &MemorySink{} }

func (s *MemorySink) RecordStep(rec StepRecord) error {
	s.mu.Lock()
	s.steps = append(s.steps, rec)
	s.mu.Unlock()
	return nil
}

func (s *MemorySink) RecordEpisode(rec EpisodeRecord) error {
	s.mu.Lock()
	s.episodes = append(s.episodes, rec)
	s.mu.Unlock()
	return nil
}

// Steps returns a copy of the recorded step records in arrival order.
func (s *MemorySink) Steps() []StepRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StepRecord, len(s.steps))
	copy(out, s.steps)
	return out
}

// Episodes returns a copy of the recorded episode records in arrival order.
func (s *MemorySink) Episodes() []EpisodeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]EpisodeRecord, len(s.episodes))
	copy(out, s.episodes)
	return out
}
