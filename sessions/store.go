// Package sessions holds per-interactor frame state between screens. State
// is tiny and flow-scoped, so it lives in process memory; losing it on
// restart only costs the user a fresh prompt.
package sessions

import (
	"sync"

	"github.com/dtechvision/mintframe/common/types"
)

// Store keeps FrameState per session key. Sessions are independent; state is
// never shared across interactors.
type Store interface {
	// Get returns the state for the key, or a fresh initial state.
	Get(key string) types.FrameState
	// Put stores the state for the key.
	Put(key string, state types.FrameState)
}

type memoryStore struct {
	mu     sync.RWMutex
	states map[string]types.FrameState
}

// NewMemoryStore creates an in-memory session store.
func NewMemoryStore() Store {
	return &memoryStore{states: make(map[string]types.FrameState)}
}

func (s *memoryStore) Get(key string) types.FrameState {
	s.mu.RLock()
	state, ok := s.states[key]
	s.mu.RUnlock()
	if !ok {
		return types.NewFrameState()
	}
	return state
}

func (s *memoryStore) Put(key string, state types.FrameState) {
	s.mu.Lock()
	s.states[key] = state
	s.mu.Unlock()
}
