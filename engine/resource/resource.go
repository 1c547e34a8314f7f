package resource

import (
	"sync"
)

// Kind classifies a disposable resource for accounting.
type Kind int

const (
	KindGeometry Kind = iota
	KindMaterial
	KindTexture
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindGeometry:
		return "geometry"
	case KindMaterial:
		return "material"
	case KindTexture:
		return "texture"
	default:
		return "unknown"
	}
}

// Handle is embedded by every resource that holds graphics memory. Renderers subscribe with
// OnDispose to release the GPU side when the owner disposes the CPU side.
type Handle struct {
	mu        sync.Mutex
	disposed  bool
	listeners []func()
}

// OnDispose registers fn to run once when the resource is disposed. If the resource is
// already disposed fn runs immediately.
//
// Parameters:
//   - fn: the release callback
func (h *Handle) OnDispose(fn func()) {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		fn()
		return
	}
	h.listeners = append(h.listeners, fn)
	h.mu.Unlock()
}

// Dispose marks the resource released and notifies listeners in registration order.
// Subsequent calls are no-ops.
func (h *Handle) Dispose() {
	h.mu.Lock()
	if h.disposed {
		h.mu.Unlock()
		return
	}
	h.disposed = true
	listeners := h.listeners
	h.listeners = nil
	h.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// Disposed reports whether Dispose has been called.
func (h *Handle) Disposed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.disposed
}

// Disposable is anything that can be explicitly released.
type Disposable interface {
	Dispose()
	Disposed() bool
}
