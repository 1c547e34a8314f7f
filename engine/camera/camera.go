package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
)

type cameraImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32
	up       [3]float32

	frustum common.OrthoFrustum
	near    float32
	far     float32

	// applied is the frustum the projection matrix was last built from.
	applied common.OrthoFrustum

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32
}

// Camera defines the interface for an orthographic camera.
//
// Frustum bounds are staged with SetBounds and take effect on the next
// UpdateProjectionMatrix, so a resize can set bounds and push the matrix as one step.
// Position and target changes rebuild the view matrix immediately.
type Camera interface {
	// Position returns the world-space eye position.
	//
	// Returns:
	//   - [3]float32: the eye position
	Position() [3]float32

	// Target returns the world-space point the camera looks at.
	//
	// Returns:
	//   - [3]float32: the look-at point
	Target() [3]float32

	// Bounds returns the staged frustum bounds.
	//
	// Returns:
	//   - common.OrthoFrustum: left, right, top, bottom in view space
	Bounds() common.OrthoFrustum

	// AppliedBounds returns the bounds the current projection matrix was built from.
	//
	// Returns:
	//   - common.OrthoFrustum: the applied bounds
	AppliedBounds() common.OrthoFrustum

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ViewMatrix returns the world-to-view matrix.
	//
	// Returns:
	//   - [16]float32: the column-major view matrix
	ViewMatrix() [16]float32

	// ProjectionMatrix returns the view-to-clip matrix.
	//
	// Returns:
	//   - [16]float32: the column-major projection matrix
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns ProjectionMatrix * ViewMatrix.
	//
	// Returns:
	//   - [16]float32: the column-major combined matrix
	ViewProjectionMatrix() [16]float32

	// SetPosition moves the eye and rebuilds the view matrix.
	SetPosition(x, y, z float32)

	// LookAt aims the camera at (x, y, z) and rebuilds the view matrix.
	LookAt(x, y, z float32)

	// SetBounds stages new frustum bounds. Call UpdateProjectionMatrix to apply them.
	//
	// Parameters:
	//   - left, right, top, bottom: the view-space extent
	SetBounds(left, right, top, bottom float32)

	// UpdateProjectionMatrix rebuilds the projection from the staged bounds.
	UpdateProjectionMatrix()

	// Project maps a world-space point to normalized device coordinates.
	//
	// Parameters:
	//   - p: the world-space point
	//
	// Returns:
	//   - [3]float32: x and y in [-1, 1] inside the view, z in [0, 1] between near and far
	Project(p [3]float32) [3]float32
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new orthographic Camera with the provided options.
// Defaults to a ±1 frustum, near 0.1, far 100, eye at (0, 0, 10) looking at the origin.
//
// Parameters:
//   - options: variadic list of CameraBuilderOption functions
//
// Returns:
//   - Camera: the new camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:       &sync.Mutex{},
		position: [3]float32{0, 0, 10},
		up:       [3]float32{0, 1, 0},
		frustum:  common.OrthoFrustum{Left: -1, Right: 1, Top: 1, Bottom: -1},
		near:     0.1,
		far:      100,
	}
	for _, opt := range options {
		opt(c)
	}
	c.mu.Lock()
	c.updateView()
	c.updateProjection()
	c.mu.Unlock()
	return c
}

func (c *cameraImpl) Position() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) Target() [3]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) Bounds() common.OrthoFrustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.frustum
}

func (c *cameraImpl) AppliedBounds() common.OrthoFrustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.applied
}

func (c *cameraImpl) Near() float32 {
	return c.near
}

func (c *cameraImpl) Far() float32 {
	return c.far
}

func (c *cameraImpl) ViewMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = [3]float32{x, y, z}
	c.updateView()
}

func (c *cameraImpl) SetBounds(left, right, top, bottom float32) {
	c.mu.Lock()
	c.frustum = common.OrthoFrustum{Left: left, Right: right, Top: top, Bottom: bottom}
	c.mu.Unlock()
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

func (c *cameraImpl) Project(p [3]float32) [3]float32 {
	c.mu.Lock()
	vp := c.viewProjectionMatrix
	c.mu.Unlock()
	clip := common.TransformPoint(vp[:], p)
	if clip[3] == 0 {
		return [3]float32{clip[0], clip[1], clip[2]}
	}
	return [3]float32{clip[0] / clip[3], clip[1] / clip[3], clip[2] / clip[3]}
}

// updateView recomputes the view matrix. Must be called with mu held.
func (c *cameraImpl) updateView() {
	common.LookAt(c.viewMatrix[:],
		c.position[0], c.position[1], c.position[2],
		c.target[0], c.target[1], c.target[2],
		c.up[0], c.up[1], c.up[2])
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}

// updateProjection recomputes the projection matrix from the staged bounds. Must be called with mu held.
func (c *cameraImpl) updateProjection() {
	f := c.frustum
	common.Ortho(c.projectionMatrix[:], f.Left, f.Right, f.Top, f.Bottom, c.near, c.far)
	c.applied = f
	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
