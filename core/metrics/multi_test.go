package metrics

import (
	"errors"
	"testing"
)

type captureSink struct {
	steps    int
	episodes int
	err      error
}

func (c *captureSink) RecordStep(StepRecord) error {
	if c.err != nil {
		return c.err
	}
	c.steps++
	return nil
}

func (c *captureSink) RecordEpisode(EpisodeRecord) error {
	if c.err != nil {
		return c.err
	}
	c.episodes++
	return nil
}

func TestMultiSinkForwardsToAll(t *testing.T) {
	a := &captureSink{}
	b := &captureSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordStep(StepRecord{Step: 1}); err != nil {
		t.Fatalf("step: %v", err)
	}
	if err := m.RecordEpisode(EpisodeRecord{Episode: 1}); err != nil {
		t.Fatalf("episode: %v", err)
	}
	for _, s := range []*captureSink{a, b} {
		if s.steps != 1 || s.episodes != 1 {
			t.Fatalf("sink saw %d steps and %d episodes, want 1 and 1", s.steps, s.episodes)
		}
	}
}

func TestMultiSinkFirstErrorWins(t *testing.T) {
	boom := errors.New("boom")
	a := &captureSink{err: boom}
	b := &captureSink{}
	m := NewMultiSink(a, b)

	if err := m.RecordStep(StepRecord{}); !errors.Is(err, boom) {
		t.Fatalf("got %v, want the first sink's error", err)
	}
	if b.steps != 0 {
		t.Fatal("later sink reached after error")
	}
}
