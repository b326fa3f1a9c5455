package favorites

import "sync"

// Set is the signed-in user's favorite product ids for one page view. It is
// rebuilt from the backend on every render, so a toggle needs no local update.
type Set struct {
	ids map[int]struct{}
}

func NewSet(ids []int) *Set {
	s := &Set{ids: make(map[int]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s *Set) Has(id int) bool {
	if s == nil {
		return false
	}
	_, ok := s.ids[id]
	return ok
}

// Guard allows one toggle per key at a time. A second toggle arriving while
// the first is still waiting on the backend is refused.
type Guard struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewGuard() *Guard {
	return &Guard{pending: make(map[string]struct{})}
}

// Acquire claims key. It returns a release func and true, or false when key is busy.
func (g *Guard) Acquire(key string) (func(), bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.pending[key]; busy {
		return nil, false
	}
	g.pending[key] = struct{}{}
	return func() {
		g.mu.Lock()
		delete(g.pending, key)
		g.mu.Unlock()
	}, true
}
