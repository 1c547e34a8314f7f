package engine

import (
	"time"
)

// LoopBuilderOption is a functional option for configuring a Loop.
// Use the With* functions to create options that are applied directly to the loop instance.
type LoopBuilderOption func(*loop)

// WithProfiling enables or disables performance profiling output.
//
// Parameters:
//   - enabled: if true, enables performance profiling
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithProfiling(enabled bool) LoopBuilderOption {
	return func(l *loop) {
		l.profilingEnabled.Store(enabled)
	}
}

// WithFrameRate sets the display refresh rate in frames per second.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target refreshes per second (default 60)
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithFrameRate(fps float64) LoopBuilderOption {
	return func(l *loop) {
		if fps <= 0 {
			fps = 60.0
		}
		l.frameInterval = time.Duration(float64(time.Second) / fps)
	}
}

// WithClock sets the time source used to stamp frame callbacks.
//
// Parameters:
//   - c: the clock to use
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithClock(c Clock) LoopBuilderOption {
	return func(l *loop) {
		if c != nil {
			l.clock = c
		}
	}
}

// WithTaskQueueSize sets how many posted host events may be buffered before Post blocks.
//
// Parameters:
//   - n: the queue capacity (default 256)
//
// Returns:
//   - LoopBuilderOption: option function to apply
func WithTaskQueueSize(n int) LoopBuilderOption {
	return func(l *loop) {
		if n > 0 {
			l.taskQueueSize = n
		}
	}
}
