package resize

import (
	"math"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/throttle"
)

// Framing constants.
const (
	// BaseHeight is the frustum height in world units, the card's logical height.
	BaseHeight = 2.5
	// ReferenceWidth and ReferenceHeight are the viewport size at which content is shown
	// at full scale.
	ReferenceWidth  = 900.0
	ReferenceHeight = 600.0
	// MaxPixelRatio caps the device pixel ratio handed to the renderer.
	MaxPixelRatio = 2.0
	// AuroraScale and ParticleScale enlarge the backdrop relative to the card.
	AuroraScale   = 1.1
	ParticleScale = 1.2
)

// DefaultThrottleWindow is the host resize throttle window used by the viewers.
const DefaultThrottleWindow = 100 * time.Millisecond

// Viewport is the part of a renderer the controller resizes.
type Viewport interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

// Targets are the groups the content scale applies to. Nil groups are skipped.
type Targets struct {
	Card      game_object.GameObject
	Aurora    game_object.GameObject
	Particles game_object.GameObject
}

// controller implements the Controller interface.
type controller struct {
	mu         *sync.Mutex
	camera     camera.Camera
	viewport   Viewport
	targets    Targets
	pixelRatio func() float64
	limiter    throttle.RateLimiter
	width      int
	height     int
	scale      float64
	pending    [2]int
	hasPending bool
}

// Controller keeps the camera frustum, drawing-buffer size and content scale in step with the
// viewport size.
type Controller interface {
	// Resize applies a viewport size immediately. Non-positive sizes are ignored.
	//
	// Parameters:
	//   - width: the viewport width in logical pixels
	//   - height: the viewport height in logical pixels
	//
	// Returns:
	//   - bool: true if the size was applied
	Resize(width, height int) bool

	// HandleResize applies a size reported by the host, subject to the optional throttle.
	// A throttled size is kept as pending until Flush or a later resize applies it.
	//
	// Parameters:
	//   - width: the viewport width in logical pixels
	//   - height: the viewport height in logical pixels
	//
	// Returns:
	//   - bool: true if the size was applied
	HandleResize(width, height int) bool

	// Flush applies the pending throttled size once the throttle admits it.
	//
	// Returns:
	//   - bool: true if a pending size was applied
	Flush() bool

	// Pending reports whether a throttled host size is still waiting to be applied.
	Pending() bool

	// Size returns the last applied viewport size.
	Size() (int, int)

	// Scale returns the last applied content scale.
	Scale() float64
}

var _ Controller = &controller{}

// NewController creates a Controller. Without WithThrottle every host resize is applied.
//
// Parameters:
//   - cam: the orthographic camera to reframe
//   - viewport: the renderer to resize, may be nil
//   - targets: the groups to scale
//   - options: functional options (pixel ratio source, throttle)
//
// Returns:
//   - Controller: the new controller
func NewController(cam camera.Camera, viewport Viewport, targets Targets, options ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:         &sync.Mutex{},
		camera:     cam,
		viewport:   viewport,
		targets:    targets,
		pixelRatio: func() float64 { return 1 },
		scale:      1,
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Frustum returns the orthographic bounds for a viewport: fixed height, width following
// the aspect ratio.
//
// Parameters:
//   - baseHeight: the frustum height in world units
//   - width, height: the viewport size, both positive
//
// Returns:
//   - common.OrthoFrustum: the bounds
func Frustum(baseHeight float64, width, height int) common.OrthoFrustum {
	aspect := float64(width) / float64(height)
	return common.SymmetricFrustum(float32(baseHeight), float32(aspect))
}

// ContentScale returns min(width/900, height/600, 1).
//
// Parameters:
//   - width, height: the viewport size
//
// Returns:
//   - float64: the content scale in (0, 1]
func ContentScale(width, height int) float64 {
	return min(float64(width)/ReferenceWidth, float64(height)/ReferenceHeight, 1)
}

// ClampPixelRatio returns ratio capped at MaxPixelRatio. Non-positive or NaN ratios become 1.
func ClampPixelRatio(ratio float64) float64 {
	if ratio <= 0 || math.IsNaN(ratio) {
		return 1
	}
	return min(ratio, MaxPixelRatio)
}

func (c *controller) Resize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	f := Frustum(BaseHeight, width, height)
	c.camera.SetBounds(f.Left, f.Right, f.Top, f.Bottom)
	c.camera.UpdateProjectionMatrix()

	if c.viewport != nil {
		c.viewport.SetPixelRatio(ClampPixelRatio(c.pixelRatio()))
		c.viewport.SetSize(width, height)
	}

	s := ContentScale(width, height)
	if g := c.targets.Card; g != nil {
		g.SetScale(float32(s), float32(s), 1)
	}
	if g := c.targets.Aurora; g != nil {
		a := float32(s * AuroraScale)
		g.SetScale(a, a, 1)
	}
	if g := c.targets.Particles; g != nil {
		g.SetUniformScale(float32(s * ParticleScale))
	}

	c.width, c.height, c.scale = width, height, s
	c.hasPending = false
	return true
}

func (c *controller) HandleResize(width, height int) bool {
	if width <= 0 || height <= 0 {
		return false
	}
	if c.limiter != nil && !c.limiter.Allow() {
		c.mu.Lock()
		c.pending = [2]int{width, height}
		c.hasPending = true
		c.mu.Unlock()
		return false
	}
	return c.Resize(width, height)
}

func (c *controller) Flush() bool {
	c.mu.Lock()
	size, ok := c.pending, c.hasPending
	c.mu.Unlock()
	if !ok {
		return false
	}
	if c.limiter != nil && !c.limiter.Allow() {
		return false
	}
	return c.Resize(size[0], size[1])
}

func (c *controller) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hasPending
}

func (c *controller) Size() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *controller) Scale() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scale
}
