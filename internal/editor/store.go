package editor

import (
	"sync"
	"sync/atomic"

	"questionnaire/internal/domain"
)

// Listener receives the snapshot produced by each dispatch.
type Listener func(domain.DocumentState)

// Store owns the current document snapshot. Dispatch calls are serialized;
// State may be called from any goroutine and never observes a partially
// applied transition.
type Store struct {
	reducer *Reducer

	mu    sync.Mutex // serializes Dispatch
	state atomic.Pointer[domain.DocumentState]

	subsMu    sync.RWMutex
	listeners map[int]Listener
	nextSub   int
}

// NewStore creates a store holding an empty document.
func NewStore(r *Reducer) *Store {
	if r == nil {
		r = NewReducer()
	}
	s := &Store{reducer: r, listeners: make(map[int]Listener)}
	s.state.Store(&domain.DocumentState{})
	return s
}

// Dispatch applies a to the current snapshot, publishes the result and
// notifies listeners in dispatch order. Listeners must not call Dispatch.
func (s *Store) Dispatch(a Action) domain.DocumentState {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.reducer.Reduce(*s.state.Load(), a)
	s.state.Store(&next)

	s.subsMu.RLock()
	for _, l := range s.listeners {
		l(next.Clone())
	}
	s.subsMu.RUnlock()
	return next.Clone()
}

// State returns a deep copy of the current snapshot.
func (s *Store) State() domain.DocumentState {
	return s.state.Load().Clone()
}

// Subscribe registers l and returns a function that removes it.
func (s *Store) Subscribe(l Listener) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = l
	s.subsMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.listeners, id)
			s.subsMu.Unlock()
		})
	}
}
