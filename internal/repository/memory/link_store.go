// Package memory provides in-process stores with the same contracts as the
// SQL repositories, used by the service tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"childcare/internal/models"
	"childcare/internal/repository"
)

// LinkStore keeps links of one type keyed by pair. The check and insert in
// Insert happen under one lock, so concurrent inserts of a pair yield exactly
// one success.
type LinkStore[L models.Link[L]] struct {
	mu    sync.RWMutex
	links map[models.Pair]L
	now   func() time.Time
}

// NewLinkStore creates an empty store
func NewLinkStore[L models.Link[L]]() *LinkStore[L] {
	return &LinkStore[L]{
		links: make(map[models.Pair]L),
		now:   time.Now,
	}
}

func (s *LinkStore[L]) FindByPair(_ context.Context, pair models.Pair) (*L, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	link, ok := s.links[pair]
	if !ok {
		return nil, nil
	}
	return &link, nil
}

func (s *LinkStore[L]) ExistsByPair(_ context.Context, pair models.Pair) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.links[pair]
	return ok, nil
}

// ListByChild returns links for the child ordered by parent ID
func (s *LinkStore[L]) ListByChild(_ context.Context, childID int64) ([]L, error) {
	return s.collect(func(p models.Pair) bool { return p.ChildID == childID }), nil
}

// ListByParent returns links for the parent ordered by child ID
func (s *LinkStore[L]) ListByParent(_ context.Context, parentID int64) ([]L, error) {
	return s.collect(func(p models.Pair) bool { return p.ParentID == parentID }), nil
}

func (s *LinkStore[L]) collect(match func(models.Pair) bool) []L {
	s.mu.RLock()
	defer s.mu.RUnlock()

	links := []L{}
	for pair, link := range s.links {
		if match(pair) {
			links = append(links, link)
		}
	}
	sort.Slice(links, func(i, j int) bool {
		a, b := links[i].LinkPair(), links[j].LinkPair()
		if a.ParentID != b.ParentID {
			return a.ParentID < b.ParentID
		}
		return a.ChildID < b.ChildID
	})
	return links
}

func (s *LinkStore[L]) Insert(_ context.Context, link L) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := link.LinkPair()
	if _, ok := s.links[pair]; ok {
		return repository.ErrDuplicateLink
	}
	s.links[pair] = link.Touched(s.now())
	return nil
}

func (s *LinkStore[L]) Update(_ context.Context, link L) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pair := link.LinkPair()
	stored, ok := s.links[pair]
	if !ok {
		return repository.ErrNotFound
	}
	s.links[pair] = stored.WithMutableFieldsFrom(link).Touched(s.now())
	return nil
}

func (s *LinkStore[L]) DeleteByPair(_ context.Context, pair models.Pair) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.links[pair]; !ok {
		return repository.ErrNotFound
	}
	delete(s.links, pair)
	return nil
}

// Len returns the number of stored links
func (s *LinkStore[L]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.links)
}
