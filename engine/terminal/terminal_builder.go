package terminal

import "github.com/Carmen-Shannon/oxy-card/engine"

// TerminalBuilderOption is a functional option for configuring a Terminal.
type TerminalBuilderOption func(*terminal)

// WithLoop sets the event loop frames and events run on. Defaults to a 30 fps loop.
//
// Parameters:
//   - l: the loop
//
// Returns:
//   - TerminalBuilderOption: option function to apply
func WithLoop(l engine.Loop) TerminalBuilderOption {
	return func(t *terminal) {
		if l != nil {
			t.loop = l
		}
	}
}
