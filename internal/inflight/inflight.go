// Package inflight cancels superseded list fetches. Each key (a session and
// a screen) has at most one live fetch; starting a new one cancels the
// previous fetch and marks its generation stale.
package inflight

import (
	"context"
	"sync"
)

type entry struct {
	gen    uint64
	cancel context.CancelFunc
}

type Group struct {
	mu      sync.Mutex
	entries map[string]entry
	next    uint64
}

func NewGroup() *Group {
	return &Group{entries: make(map[string]entry)}
}

// Ticket identifies one fetch started with Begin.
type Ticket struct {
	g   *Group
	key string
	gen uint64
}

// Begin starts a fetch for key, cancelling whichever fetch held key before.
// The caller must call Done on the ticket when the fetch is over.
func (g *Group) Begin(parent context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(parent)

	g.mu.Lock()
	if prev, ok := g.entries[key]; ok {
		prev.cancel()
	}
	g.next++
	gen := g.next
	g.entries[key] = entry{gen: gen, cancel: cancel}
	g.mu.Unlock()

	return ctx, Ticket{g: g, key: key, gen: gen}
}

// Current reports whether no newer fetch has started for the ticket's key.
func (t Ticket) Current() bool {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.entries[t.key]
	return ok && e.gen == t.gen
}

// Done releases the ticket's context and forgets the key if still owned.
func (t Ticket) Done() {
	t.g.mu.Lock()
	defer t.g.mu.Unlock()
	e, ok := t.g.entries[t.key]
	if !ok || e.gen != t.gen {
		return
	}
	e.cancel()
	delete(t.g.entries, t.key)
}

// Len is the number of keys with a live fetch.
func (g *Group) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}
