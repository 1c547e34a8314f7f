package input

import (
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/throttle"
)

// ControllerBuilderOption is a functional option for configuring a Controller.
type ControllerBuilderOption func(*controller)

// WithTiltFactor sets the maximum tilt in radians (default 0.3). Non-positive values are ignored.
//
// Parameters:
//   - f: the tilt factor
//
// Returns:
//   - ControllerBuilderOption: option function to apply
func WithTiltFactor(f float64) ControllerBuilderOption {
	return func(c *controller) {
		if f > 0 {
			c.tiltFactor = f
		}
	}
}

// WithRateLimiter replaces the default 16ms pointer throttle.
func WithRateLimiter(l throttle.RateLimiter) ControllerBuilderOption {
	return func(c *controller) {
		c.limiter = l
	}
}

// WithThrottleWindow sets the window of the default pointer throttle. Zero admits every sample.
func WithThrottleWindow(window time.Duration) ControllerBuilderOption {
	return func(c *controller) {
		if window >= 0 {
			c.window = window
		}
	}
}

// WithClock sets the clock the default throttle measures with.
func WithClock(clock engine.Clock) ControllerBuilderOption {
	return func(c *controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithInvertPitch flips the pitch sign so a pointer below the center yields a positive pitch.
func WithInvertPitch(invert bool) ControllerBuilderOption {
	return func(c *controller) {
		c.invertPitch = invert
	}
}
