package lifecycle

import (
	"slices"
	"sync"
)

// Listeners is a registry of host event callbacks. Hosts embed one per event kind and hand
// out the remove functions Host requires. The zero value is ready to use.
type Listeners[F any] struct {
	mu   sync.Mutex
	next int
	fns  map[int]F
}

// Add registers fn and returns a function that removes it. Removing twice is a no-op.
//
// Parameters:
//   - fn: the callback
//
// Returns:
//   - func(): the remover
func (l *Listeners[F]) Add(fn F) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	l.next++
	id := l.next
	l.fns[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.fns, id)
		l.mu.Unlock()
	}
}

// Snapshot returns the registered callbacks in registration order. Callers invoke them
// without holding the registry lock so a callback may remove itself.
func (l *Listeners[F]) Snapshot() []F {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]int, 0, len(l.fns))
	for id := range l.fns {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]F, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.fns[id])
	}
	return fns
}

// Len returns the number of registered callbacks.
func (l *Listeners[F]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.fns)
}
