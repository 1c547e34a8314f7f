package window

import (
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
)

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMinSize sets the smallest size the window can be resized to.
//
// Parameters:
//   - width: minimum width in screen coordinates
//   - height: minimum height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = width
		w.minHeight = height
	}
}

// WithSize sets the initial client area size.
//
// Parameters:
//   - width: initial width in screen coordinates
//   - height: initial height in screen coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		if width > 0 && height > 0 {
			w.width = width
			w.height = height
		}
	}
}

// WithFrameRate sets how often pending frame callbacks run. Values <= 0 are ignored.
func WithFrameRate(fps float64) WindowBuilderOption {
	return func(w *engineWindow) {
		if fps > 0 {
			w.frameInterval = time.Duration(float64(time.Second) / fps)
		}
	}
}

// WithClock sets the time source frames are stamped with.
func WithClock(c engine.Clock) WindowBuilderOption {
	return func(w *engineWindow) {
		if c != nil {
			w.clock = c
		}
	}
}
