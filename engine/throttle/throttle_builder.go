package throttle

import "github.com/Carmen-Shannon/oxy-card/engine"

// RateLimiterBuilderOption is a functional option for configuring a RateLimiter.
type RateLimiterBuilderOption func(*rateLimiter)

// WithClock sets the time source the limiter measures windows with.
//
// Parameters:
//   - c: the clock to use
//
// Returns:
//   - RateLimiterBuilderOption: option function to apply
func WithClock(c engine.Clock) RateLimiterBuilderOption {
	return func(r *rateLimiter) {
		if c != nil {
			r.clock = c
		}
	}
}
