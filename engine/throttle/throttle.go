package throttle

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
)

// rateLimiter implements the RateLimiter interface.
type rateLimiter struct {
	mu     *sync.Mutex
	window time.Duration
	clock  engine.Clock
	last   time.Time
	primed bool
}

// RateLimiter admits at most one sample per window. Samples arriving inside an open window
// are dropped, never queued, so the consumer always sees the freshest admitted sample.
type RateLimiter interface {
	// Allow reports whether a sample arriving now may pass. The first sample of each window
	// opens the window and passes.
	//
	// Returns:
	//   - bool: true if the sample is admitted
	Allow() bool

	// Reset closes the current window so the next sample passes.
	Reset()

	// Window returns the admission window.
	//
	// Returns:
	//   - time.Duration: the window length
	Window() time.Duration
}

var _ RateLimiter = &rateLimiter{}

// NewRateLimiter creates a RateLimiter with the given window.
// A non-positive window admits every sample.
//
// Parameters:
//   - window: the minimum spacing between admitted samples
//   - options: functional options (clock)
//
// Returns:
//   - RateLimiter: the new limiter
func NewRateLimiter(window time.Duration, options ...RateLimiterBuilderOption) RateLimiter {
	r := &rateLimiter{
		mu:     &sync.Mutex{},
		window: window,
		clock:  engine.SystemClock{},
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func (r *rateLimiter) Allow() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock.Now()
	if r.primed && now.Sub(r.last) < r.window {
		return false
	}
	r.last = now
	r.primed = true
	return true
}

func (r *rateLimiter) Reset() {
	r.mu.Lock()
	r.primed = false
	r.mu.Unlock()
}

func (r *rateLimiter) Window() time.Duration {
	return r.window
}
