package camera

import "github.com/Carmen-Shannon/oxy-card/common"

// CameraBuilderOption is a function that configures a camera during construction.
type CameraBuilderOption func(*cameraImpl)

// WithPosition sets the eye position.
//
// Parameters:
//   - x, y, z: the world-space eye position
//
// Returns:
//   - CameraBuilderOption: a function that applies the position option
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the look-at point.
//
// Parameters:
//   - x, y, z: the world-space target
//
// Returns:
//   - CameraBuilderOption: a function that applies the target option
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = [3]float32{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that applies the up option
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = [3]float32{x, y, z}
	}
}

// WithBounds sets the initial frustum bounds.
//
// Parameters:
//   - left, right, top, bottom: the view-space extent
//
// Returns:
//   - CameraBuilderOption: a function that applies the bounds option
func WithBounds(left, right, top, bottom float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.frustum = common.OrthoFrustum{Left: left, Right: right, Top: top, Bottom: bottom}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the near option
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that applies the far option
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}
