package resource

import (
	"sync"
)

type entry struct {
	kind Kind
	res  Disposable
}

// Tracker records every geometry, material and texture allocated for one mount session so
// they can be released together on teardown.
type Tracker struct {
	mu      sync.Mutex
	entries []entry
}

// NewTracker creates an empty Tracker.
//
// Returns:
//   - *Tracker: the new tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// Track registers res under kind and returns it unchanged, so allocation and tracking read as
// one expression. A nil tracker tracks nothing.
//
// Parameters:
//   - t: the tracker, may be nil
//   - kind: the resource classification
//   - res: the resource to track
//
// Returns:
//   - T: res
func Track[T Disposable](t *Tracker, kind Kind, res T) T {
	if t == nil {
		return res
	}
	t.mu.Lock()
	t.entries = append(t.entries, entry{kind: kind, res: res})
	t.mu.Unlock()
	return res
}

// Live returns how many tracked resources of kind are not yet disposed.
//
// Parameters:
//   - kind: the resource classification
//
// Returns:
//   - int: the live count
func (t *Tracker) Live(kind Kind) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, e := range t.entries {
		if e.kind == kind && !e.res.Disposed() {
			n++
		}
	}
	return n
}

// Counts returns the live count per kind.
func (t *Tracker) Counts() map[Kind]int {
	return map[Kind]int{
		KindGeometry: t.Live(KindGeometry),
		KindMaterial: t.Live(KindMaterial),
		KindTexture:  t.Live(KindTexture),
	}
}

// DisposeAll releases geometries, then materials, then textures, and forgets them.
// Calling it again is a no-op.
//
// Returns:
//   - int: the number of resources released by this call
func (t *Tracker) DisposeAll() int {
	t.mu.Lock()
	entries := t.entries
	t.entries = nil
	t.mu.Unlock()

	released := 0
	for _, kind := range []Kind{KindGeometry, KindMaterial, KindTexture} {
		for _, e := range entries {
			if e.kind != kind || e.res.Disposed() {
				continue
			}
			e.res.Dispose()
			released++
		}
	}
	return released
}
