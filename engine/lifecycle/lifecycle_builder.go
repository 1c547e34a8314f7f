package lifecycle

import (
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/input"
)

// ManagerBuilderOption is a functional option for configuring a Manager.
type ManagerBuilderOption func(*manager)

// WithRendererFactory sets how each session creates its renderer.
//
// Parameters:
//   - f: the factory
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithRendererFactory(f RendererFactory) ManagerBuilderOption {
	return func(m *manager) {
		if f != nil {
			m.factory = f
		}
	}
}

// WithSceneOptions passes options to every session's scene builder.
func WithSceneOptions(options ...card.SceneBuilderOption) ManagerBuilderOption {
	return func(m *manager) {
		m.sceneOptions = append(m.sceneOptions, options...)
	}
}

// WithInputOptions passes options to every session's pointer controller.
func WithInputOptions(options ...input.ControllerBuilderOption) ManagerBuilderOption {
	return func(m *manager) {
		m.inputOptions = append(m.inputOptions, options...)
	}
}

// WithAssetDir enables texture loading from dir. Each session runs its own loader.
//
// Parameters:
//   - dir: the directory holding the card and overlay images
//
// Returns:
//   - ManagerBuilderOption: option function to apply
func WithAssetDir(dir string) ManagerBuilderOption {
	return func(m *manager) {
		m.assetDir = dir
	}
}

// WithResizeThrottle drops host resizes arriving within window of the last applied one.
func WithResizeThrottle(window time.Duration) ManagerBuilderOption {
	return func(m *manager) {
		m.resizeThrottle = window
	}
}

// WithClock sets the time source of the pointer and resize throttles.
func WithClock(c engine.Clock) ManagerBuilderOption {
	return func(m *manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithFocus shares one Focus across sessions so focus survives a remount.
func WithFocus(f *animation.Focus) ManagerBuilderOption {
	return func(m *manager) {
		m.focus = f
	}
}
