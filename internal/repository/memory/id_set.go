package memory

import (
	"context"
	"sync"
)

// IDSet is an existence checker over a set of IDs
type IDSet struct {
	mu  sync.RWMutex
	ids map[int64]struct{}
}

// NewIDSet creates a set holding ids
func NewIDSet(ids ...int64) *IDSet {
	s := &IDSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *IDSet) Add(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[id] = struct{}{}
}

func (s *IDSet) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Exists reports whether id is in the set
func (s *IDSet) Exists(_ context.Context, id int64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.ids[id]
	return ok, nil
}
