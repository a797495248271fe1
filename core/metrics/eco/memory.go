package eco

import (
	"sort"
	"sync"
	"time"
)

// MemoryStore aggregates grid exchange per day in memory, which covers
// the lifetime of a simulation run.
type MemoryStore struct {
	mu   sync.Mutex
	days map[time.Time]Record
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{days: map[time.Time]Record{}}
}

// Add folds the record into the aggregate of its day.
func (s *MemoryStore) Add(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := Day(r.Date)
	agg := s.days[d]
	agg.Date = d
	agg.ExportedKWh += r.ExportedKWh
	agg.ImportedKWh += r.ImportedKWh
	s.days[d] = agg
	return nil
}

// Query returns the daily aggregates between start and end inclusive,
// in date order.
func (s *MemoryStore) Query(start, end time.Time) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	from, to := Day(start), Day(end)
	keys := make([]time.Time, 0, len(s.days))
	for d := range s.days {
		if !d.Before(from) && !d.After(to) {
			keys = append(keys, d)
		}
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Before(keys[j]) })
	res := make([]Record, 0, len(keys))
	for _, d := range keys {
		res = append(res, s.days[d])
	}
	return res, nil
}
