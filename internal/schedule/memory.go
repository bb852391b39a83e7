package schedule

import (
	"sync"

	"github.com/easycal/easycal/internal/planner"
)

// MemoryStore keeps the schedule in process memory. It backs sessions
// that run with persistence disabled.
type MemoryStore struct {
	mu    sync.Mutex
	items []planner.ScheduleItem
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() ([]planner.ScheduleItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]planner.ScheduleItem, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *MemoryStore) Save(items []planner.ScheduleItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]planner.ScheduleItem, len(items))
	copy(s.items, items)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
