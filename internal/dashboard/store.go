package dashboard

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrLoadInProgress is returned when a refresh is requested while a cycle
// is still running.
var ErrLoadInProgress = errors.New("load cycle already in progress")

// ErrNotLoaded is returned when no cycle has produced a ready state.
var ErrNotLoaded = errors.New("dashboard data not loaded")

// StateLoader runs a single load cycle.
type StateLoader interface {
	Load(ctx context.Context) (*State, error)
}

// Store owns the current dashboard state and swaps it wholesale after each
// load cycle. At most one cycle runs at a time.
type Store struct {
	loader  StateLoader
	loading atomic.Bool

	mu      sync.RWMutex
	current *State
}

// NewStore creates an empty Store.
func NewStore(loader StateLoader) *Store {
	return &Store{loader: loader}
}

// Current returns the latest state, or an idle state before the first
// cycle has finished.
func (s *Store) Current() *State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		if s.loading.Load() {
			return emptyState(StatusLoading)
		}
		return IdleState()
	}
	return s.current
}

// Loading reports whether a cycle is running.
func (s *Store) Loading() bool {
	return s.loading.Load()
}

// Refresh runs a load cycle and publishes its state, including a failed
// one. It returns ErrLoadInProgress without loading when another cycle is
// running.
func (s *Store) Refresh(ctx context.Context) (*State, error) {
	if !s.loading.CompareAndSwap(false, true) {
		return nil, ErrLoadInProgress
	}
	defer s.loading.Store(false)

	st, err := s.loader.Load(ctx)
	if st != nil {
		s.mu.Lock()
		s.current = st
		s.mu.Unlock()
	}
	return st, err
}

// Loaded returns the latest state of a completed cycle. It returns
// ErrNotLoaded until a cycle has published a ready state.
func (s *Store) Loaded() (*State, error) {
	st := s.Current()
	if !st.Ready() {
		return st, ErrNotLoaded
	}
	return st, nil
}
