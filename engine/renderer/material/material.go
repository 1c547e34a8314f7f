package material

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// Type selects the shading model.
type Type int

const (
	// TypeBasic is unlit: the fragment is the base color (times the map) regardless of lights.
	TypeBasic Type = iota
	// TypeStandard is lit by the scene's ambient, directional and spot lights with a
	// metalness/roughness specular term.
	TypeStandard
)

// Side selects which triangle faces are drawn.
type Side int

const (
	SideFront Side = iota
	SideBack
	SideDouble
)

// Blending selects how fragments combine with the color already in the target.
type Blending int

const (
	// BlendingNormal is source-over alpha blending (or opaque replacement for opaque materials).
	BlendingNormal Blending = iota
	// BlendingAdditive adds the source color scaled by its alpha to the destination.
	BlendingAdditive
)

// material is the implementation of the Material interface.
type material struct {
	resource.Handle

	mu          *sync.Mutex
	name        string
	kind        Type
	color       common.Color
	opacity     float32
	transparent bool
	alphaTest   float32
	side        Side
	blending    Blending
	depthWrite  bool
	depthTest   bool
	metalness   float32
	roughness   float32
	colorMap    *texture.Texture
}

// Material defines the surface appearance of a mesh: shading model, base color, optional
// texture map and the blend state the renderer must use to draw it.
//
// Everything except opacity is fixed at construction. Opacity is animated per frame and
// may be read by a renderer on another goroutine, so it is guarded.
type Material interface {
	resource.Disposable

	// OnDispose registers fn to run when the material is disposed.
	//
	// Parameters:
	//   - fn: the release callback
	OnDispose(fn func())

	// Name retrieves the material identifier.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Type retrieves the shading model.
	//
	// Returns:
	//   - Type: TypeBasic or TypeStandard
	Type() Type

	// Color retrieves the base color.
	//
	// Returns:
	//   - common.Color: the linear RGB base color
	Color() common.Color

	// Opacity retrieves the alpha multiplier in [0, 1].
	//
	// Returns:
	//   - float32: the current opacity
	Opacity() float32

	// SetOpacity sets the alpha multiplier, clamped to [0, 1].
	//
	// Parameters:
	//   - opacity: the new opacity
	SetOpacity(opacity float32)

	// Transparent reports whether the material is drawn in the blended pass.
	//
	// Returns:
	//   - bool: true if blended
	Transparent() bool

	// AlphaTest retrieves the alpha cutoff; fragments with alpha below it are discarded.
	//
	// Returns:
	//   - float32: the cutoff, 0 disables the test
	AlphaTest() float32

	// Side retrieves which faces are drawn.
	//
	// Returns:
	//   - Side: the face selection
	Side() Side

	// Blending retrieves the blend mode.
	//
	// Returns:
	//   - Blending: the blend mode
	Blending() Blending

	// DepthWrite reports whether drawing writes the depth buffer.
	//
	// Returns:
	//   - bool: true if depth is written
	DepthWrite() bool

	// DepthTest reports whether drawing is occluded by the depth buffer.
	//
	// Returns:
	//   - bool: true if depth tested
	DepthTest() bool

	// Metalness retrieves the metalness factor (0 dielectric, 1 metal). Basic materials ignore it.
	//
	// Returns:
	//   - float32: the metalness
	Metalness() float32

	// Roughness retrieves the roughness factor (0 mirror, 1 matte). Basic materials ignore it.
	//
	// Returns:
	//   - float32: the roughness
	Roughness() float32

	// Map retrieves the color texture, or nil. A map that is still loading or failed to load
	// is treated as absent by renderers.
	//
	// Returns:
	//   - *texture.Texture: the color map, or nil
	Map() *texture.Texture
}

var _ Material = &material{}

// NewMaterial creates a new Material instance configured with the provided options.
// Defaults to an opaque white basic material drawn front-side with depth test and write.
//
// Parameters:
//   - options: variadic list of MaterialBuilderOption functions to configure the material
//
// Returns:
//   - Material: a new Material instance
func NewMaterial(options ...MaterialBuilderOption) Material {
	m := &material{
		mu:         &sync.Mutex{},
		kind:       TypeBasic,
		color:      common.White,
		opacity:    1,
		depthWrite: true,
		depthTest:  true,
		roughness:  1,
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Type() Type {
	return m.kind
}

func (m *material) Color() common.Color {
	return m.color
}

func (m *material) Opacity() float32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.opacity
}

func (m *material) SetOpacity(opacity float32) {
	m.mu.Lock()
	m.opacity = common.Clamp(opacity, 0, 1)
	m.mu.Unlock()
}

func (m *material) Transparent() bool {
	return m.transparent
}

func (m *material) AlphaTest() float32 {
	return m.alphaTest
}

func (m *material) Side() Side {
	return m.side
}

func (m *material) Blending() Blending {
	return m.blending
}

func (m *material) DepthWrite() bool {
	return m.depthWrite
}

func (m *material) DepthTest() bool {
	return m.depthTest
}

func (m *material) Metalness() float32 {
	return m.metalness
}

func (m *material) Roughness() float32 {
	return m.roughness
}

func (m *material) Map() *texture.Texture {
	return m.colorMap
}
