package input

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/throttle"
)

// DefaultTiltFactor is the maximum tilt in radians, reached at the viewport edge.
const DefaultTiltFactor = 0.3

// DefaultThrottleWindow is the minimum spacing between admitted pointer samples.
const DefaultThrottleWindow = 16 * time.Millisecond

// TargetSetter receives the tilt target computed from the pointer.
type TargetSetter interface {
	SetTarget(t animation.Target)
}

// controller implements the Controller interface.
type controller struct {
	mu          *sync.Mutex
	target      TargetSetter
	limiter     throttle.RateLimiter
	clock       engine.Clock
	window      time.Duration
	tiltFactor  float64
	invertPitch bool
	dropped     int
}

// Controller converts pointer positions over the viewport into a tilt target.
type Controller interface {
	// HandlePointerMove computes a new target from a pointer position. Samples arriving
	// inside the throttle window are dropped.
	//
	// Parameters:
	//   - x, y: the pointer position in host coordinates
	//   - rect: the viewport rectangle in the same coordinates
	//
	// Returns:
	//   - bool: true if the sample was applied
	HandlePointerMove(x, y float64, rect common.Viewport) bool

	// HandlePointerLeave resets the target to level. It is never throttled.
	HandlePointerLeave()

	// Dropped returns how many pointer samples the throttle discarded.
	Dropped() int
}

var _ Controller = &controller{}

// NewController creates a Controller writing into target.
//
// Parameters:
//   - target: the receiver of computed targets
//   - options: functional options (tilt factor, rate limiter, clock, pitch inversion)
//
// Returns:
//   - Controller: the new controller
func NewController(target TargetSetter, options ...ControllerBuilderOption) Controller {
	c := &controller{
		mu:         &sync.Mutex{},
		target:     target,
		clock:      engine.SystemClock{},
		window:     DefaultThrottleWindow,
		tiltFactor: DefaultTiltFactor,
	}
	for _, opt := range options {
		opt(c)
	}
	if c.limiter == nil {
		c.limiter = throttle.NewRateLimiter(c.window, throttle.WithClock(c.clock))
	}
	return c
}

// Tilt maps a pointer position to a tilt target. The offset from the viewport center is
// normalized by the half extents, scaled by factor and clamped to ±factor. A pointer right of
// the center yields a positive yaw and a pointer below it a negative pitch; invertPitch flips
// the pitch.
//
// Parameters:
//   - x, y: the pointer position
//   - rect: the viewport rectangle
//   - factor: the maximum tilt in radians
//   - invertPitch: whether to flip the pitch sign
//
// Returns:
//   - animation.Target: the tilt target, level for an empty rect
func Tilt(x, y float64, rect common.Viewport, factor float64, invertPitch bool) animation.Target {
	if rect.Width <= 0 || rect.Height <= 0 {
		return animation.Target{}
	}
	cx, cy := rect.Center()
	rotX := (cy - y) / (rect.Height / 2) * factor
	rotY := (x - cx) / (rect.Width / 2) * factor
	if invertPitch {
		rotX = -rotX
	}
	return animation.Target{
		RotationX: common.Clamp(rotX, -factor, factor),
		RotationY: common.Clamp(rotY, -factor, factor),
	}
}

func (c *controller) HandlePointerMove(x, y float64, rect common.Viewport) bool {
	c.mu.Lock()
	if !c.limiter.Allow() {
		c.dropped++
		c.mu.Unlock()
		return false
	}
	t := Tilt(x, y, rect, c.tiltFactor, c.invertPitch)
	c.mu.Unlock()

	c.target.SetTarget(t)
	return true
}

func (c *controller) HandlePointerLeave() {
	c.target.SetTarget(animation.Target{})
}

func (c *controller) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}
