package lifecycle

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/input"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/Carmen-Shannon/oxy-card/engine/resize"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// Stats is a snapshot of the resources a session holds.
type Stats struct {
	Mounted    bool
	Geometries int
	Materials  int
	Textures   int
	Renderer   renderer.Info
}

// Session is everything one mount owns. Sessions share nothing; a remount builds a new one.
type Session struct {
	mu       *sync.Mutex
	host     Host
	renderer renderer.Renderer
	surface  renderer.Surface
	comp     *card.Composition
	tracker  *resource.Tracker
	loader   texture.Loader
	driver   animation.Driver
	input    input.Controller
	resize   resize.Controller
	flush    engine.FrameHandle
	removers []func()
	released bool
}

// Renderer returns the session's renderer.
func (s *Session) Renderer() renderer.Renderer {
	return s.renderer
}

// Composition returns the built scene.
func (s *Session) Composition() *card.Composition {
	return s.comp
}

// Driver returns the animation driver.
func (s *Session) Driver() animation.Driver {
	return s.driver
}

// Input returns the pointer controller.
func (s *Session) Input() input.Controller {
	return s.input
}

// Resize returns the resize controller.
func (s *Session) Resize() resize.Controller {
	return s.resize
}

// Focus returns the live focus values the driver eases the card toward.
func (s *Session) Focus() *animation.Focus {
	return s.driver.Focus()
}

// Stats returns live resource counts.
func (s *Session) Stats() Stats {
	s.mu.Lock()
	released := s.released
	s.mu.Unlock()

	counts := s.tracker.Counts()
	return Stats{
		Mounted:    !released,
		Geometries: counts[resource.KindGeometry],
		Materials:  counts[resource.KindMaterial],
		Textures:   counts[resource.KindTexture],
		Renderer:   s.renderer.Info(),
	}
}

// release tears the session down: stop the loop, remove listeners, stop texture decoding,
// dispose scene resources, dispose the renderer, then detach its surface if it is still
// attached. Safe to call more than once.
// handleResize forwards a host resize. A size dropped by the throttle is retried on later
// frames until it is applied.
func (s *Session) handleResize(w, h int) {
	if s.resize.HandleResize(w, h) || !s.resize.Pending() {
		return
	}
	s.scheduleFlush()
}

func (s *Session) scheduleFlush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released || s.flush != 0 {
		return
	}
	s.flush = s.host.Scheduler().RequestFrame(func(time.Duration) {
		s.mu.Lock()
		s.flush = 0
		s.mu.Unlock()
		if !s.resize.Flush() && s.resize.Pending() {
			s.scheduleFlush()
		}
	})
}

func (s *Session) release() {
	s.mu.Lock()
	if s.released {
		s.mu.Unlock()
		return
	}
	s.released = true
	removers := s.removers
	s.removers = nil
	s.mu.Unlock()

	if s.driver != nil {
		s.driver.Cancel()
	}
	s.mu.Lock()
	if s.flush != 0 {
		s.host.Scheduler().CancelFrame(s.flush)
		s.flush = 0
	}
	s.mu.Unlock()
	for _, remove := range removers {
		remove()
	}
	if s.loader != nil {
		s.loader.Close()
	}
	released := 0
	if s.tracker != nil {
		released = s.tracker.DisposeAll()
	}
	if s.renderer != nil {
		s.renderer.Dispose()
	}
	if s.surface != nil && s.host.HasSurface(s.surface) {
		s.host.DetachSurface(s.surface)
	}
	common.Logger().Info("scene unmounted", "resources", released)
}
