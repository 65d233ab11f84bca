package cache

import (
	"context"
	"sync"
)

// Memory is an in-memory implementation of Store[T]. It is concurrency-safe;
// its methods never return an error.
type Memory[T any] struct {
	mu      sync.RWMutex
	byID    map[string]T
	ids     []string
	waiters map[string][]chan struct{}
}

// NewMemory creates an empty memory store
func NewMemory[T any]() *Memory[T] {
	return &Memory[T]{
		byID:    make(map[string]T),
		waiters: make(map[string][]chan struct{}),
	}
}

func (s *Memory[T]) Set(_ context.Context, id string, value T) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.byID[id] = value
	for _, ch := range s.waiters[id] {
		close(ch)
	}
	delete(s.waiters, id)
	return nil
}

func (s *Memory[T]) Get(_ context.Context, id string) (T, bool, error) {
	if id == "" {
		var zero T
		return zero, false, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	value, ok := s.byID[id]
	return value, ok, nil
}

func (s *Memory[T]) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[id]; !ok {
		return nil
	}
	delete(s.byID, id)
	for i, candidate := range s.ids {
		if candidate == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Memory[T]) IDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ret := make([]string, len(s.ids))
	copy(ret, s.ids)
	return ret, nil
}

// Len returns number of live entries
func (s *Memory[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Wait blocks until id is set or ctx is done.
func (s *Memory[T]) Wait(ctx context.Context, id string) (T, error) {
	s.mu.Lock()
	if value, ok := s.byID[id]; ok {
		s.mu.Unlock()
		return value, nil
	}
	ch := make(chan struct{})
	s.waiters[id] = append(s.waiters[id], ch)
	s.mu.Unlock()

	select {
	case <-ch:
		value, _, _ := s.Get(ctx, id)
		return value, nil
	case <-ctx.Done():
		s.mu.Lock()
		s.dropWaiter(id, ch)
		s.mu.Unlock()
		var zero T
		return zero, ctx.Err()
	}
}

func (s *Memory[T]) dropWaiter(id string, ch chan struct{}) {
	waiters := s.waiters[id]
	for i, candidate := range waiters {
		if candidate == ch {
			waiters = append(waiters[:i], waiters[i+1:]...)
			break
		}
	}
	if len(waiters) == 0 {
		delete(s.waiters, id)
		return
	}
	s.waiters[id] = waiters
}

var _ Store[int] = (*Memory[int])(nil)
var _ Waiter[int] = (*Memory[int])(nil)
