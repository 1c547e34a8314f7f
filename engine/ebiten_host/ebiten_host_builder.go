package ebiten_host

import "github.com/Carmen-Shannon/oxy-card/engine"

// HostBuilderOption is a functional option for configuring a Host.
type HostBuilderOption func(*host)

// WithTitle sets the window title.
func WithTitle(title string) HostBuilderOption {
	return func(h *host) {
		h.title = title
	}
}

// WithSize sets the initial window size in logical pixels.
//
// Parameters:
//   - width: the window width
//   - height: the window height
//
// Returns:
//   - HostBuilderOption: option function to apply
func WithSize(width, height int) HostBuilderOption {
	return func(h *host) {
		if width > 0 && height > 0 {
			h.width, h.height = width, height
		}
	}
}

// WithTPS sets the ticks per second, which is also the frame rate. Values <= 0 are ignored.
func WithTPS(tps int) HostBuilderOption {
	return func(h *host) {
		if tps > 0 {
			h.tps = tps
		}
	}
}

// WithClock sets the time source frames are stamped with.
func WithClock(c engine.Clock) HostBuilderOption {
	return func(h *host) {
		if c != nil {
			h.clock = c
		}
	}
}
