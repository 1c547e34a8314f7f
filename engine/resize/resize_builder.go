package resize

import (
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/throttle"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithPixelRatio sets the source of the host's device pixel ratio, read on every resize.
//
// Parameters:
//   - fn: returns the current device pixel ratio
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithPixelRatio(fn func() float64) ControllerBuilderOption {
	return func(c *controller) {
		if fn != nil {
			c.pixelRatio = fn
		}
	}
}

// WithThrottle drops host resizes arriving within window of the last applied one.
// Resize itself is never throttled.
//
// Parameters:
//   - window: the minimum spacing between applied host resizes
//   - clock: the time source, the system clock when nil
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithThrottle(window time.Duration, clock engine.Clock) ControllerBuilderOption {
	return func(c *controller) {
		var opts []throttle.RateLimiterBuilderOption
		if clock != nil {
			opts = append(opts, throttle.WithClock(clock))
		}
		c.limiter = throttle.NewRateLimiter(window, opts...)
	}
}
