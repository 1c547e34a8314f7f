package scene

import "github.com/Carmen-Shannon/oxy-card/common"

// SceneBuilderOption is a functional option for configuring a Scene.
type SceneBuilderOption func(*sceneImpl)

// WithBackground sets the clear color.
//
// Parameters:
//   - c: the linear RGB clear color
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithBackground(c common.Color) SceneBuilderOption {
	return func(s *sceneImpl) {
		s.background = c
	}
}
