package memory

import "sync"

// Sessions hands out one Store per session ID. Stores are never shared
// across sessions; the registry map itself is the only thing that needs a
// lock, since transports may serve different sessions concurrently.
type Sessions struct {
	mu     sync.Mutex
	stores map[string]*Store
}

func NewSessions() *Sessions {
	return &Sessions{stores: make(map[string]*Store)}
}

// Get returns the store for sessionID, creating it on first use.
func (s *Sessions) Get(sessionID string) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()

	store, ok := s.stores[sessionID]
	if !ok {
		store = NewStore()
		s.stores[sessionID] = store
	}
	return store
}
