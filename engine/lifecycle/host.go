package lifecycle

import (
	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
)

// PointerMoveFunc receives a pointer position and the viewport rectangle it was measured in.
type PointerMoveFunc func(x, y float64, rect common.Viewport)

// ResizeFunc receives a new viewport size in logical pixels.
type ResizeFunc func(width, height int)

// Host is the container a scene mounts into: it owns the viewport, delivers pointer and resize
// events and provides the display-refresh scheduler. Event callbacks run on the host's event
// goroutine; every On* method returns a function that removes the listener.
type Host interface {
	// Size returns the viewport size in logical pixels.
	Size() (int, int)

	// DevicePixelRatio returns the physical pixels per logical pixel.
	DevicePixelRatio() float64

	// AttachSurface makes the renderer's drawable visible in the viewport.
	AttachSurface(s renderer.Surface)

	// DetachSurface removes a previously attached drawable.
	DetachSurface(s renderer.Surface)

	// HasSurface reports whether s is currently attached.
	HasSurface(s renderer.Surface) bool

	// Scheduler returns the display-refresh source.
	Scheduler() engine.FrameScheduler

	OnPointerMove(fn PointerMoveFunc) (remove func())
	OnPointerLeave(fn func()) (remove func())
	OnResize(fn ResizeFunc) (remove func())
}

// RendererFactory creates the renderer for a mount. It is called once per session.
type RendererFactory func(host Host) (renderer.Renderer, error)

// SoftwareRendererFactory creates CPU renderers sized to the host.
//
// Parameters:
//   - host: the host being mounted
//
// Returns:
//   - renderer.Renderer: the renderer
//   - error: a renderer creation error
func SoftwareRendererFactory(host Host) (renderer.Renderer, error) {
	w, h := host.Size()
	return renderer.NewRenderer(renderer.BackendTypeSoftware,
		renderer.WithSize(w, h),
		renderer.WithPixelRatio(host.DevicePixelRatio()),
	)
}
