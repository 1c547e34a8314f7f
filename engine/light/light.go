package light

import (
	"math"
	"sync"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional represents a light with no position, only direction.
	// The direction runs from the light's position toward its target.
	LightTypeDirectional

	// LightTypeSpot represents a light that emits in a cone from a position toward a target.
	// The cone is softened over the outer penumbra fraction of its angle.
	LightTypeSpot
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu        *sync.Mutex
	lightType LightType
	position  [3]float32
	target    [3]float32
	color     [3]float32
	intensity float32
	angle     float32 // cone half-angle in radians
	penumbra  float32 // fraction of the cone that fades, [0, 1]
	enabled   bool
}

// Light defines the interface for a light source in the scene.
//
// All light types share this interface; type-specific properties (cone angle and penumbra
// for spot lights) are ignored by the others. Intensity is mutable at runtime so a frame
// callback may animate it.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (ambient, directional, or spot)
	Type() LightType

	// Position returns the world-space position of the light. Ignored for ambient lights.
	//
	// Returns:
	//   - [3]float32: position as (x, y, z)
	Position() [3]float32

	// Target returns the world-space point the light aims at.
	//
	// Returns:
	//   - [3]float32: target as (x, y, z)
	Target() [3]float32

	// Direction returns the normalized direction from position to target.
	//
	// Returns:
	//   - [3]float32: normalized direction as (x, y, z)
	Direction() [3]float32

	// Color returns the RGB color of the light.
	//
	// Returns:
	//   - [3]float32: color as (r, g, b)
	Color() [3]float32

	// Intensity returns the scalar intensity multiplier for the light.
	//
	// Returns:
	//   - float32: the intensity value
	Intensity() float32

	// Angle returns the spot cone half-angle in radians.
	//
	// Returns:
	//   - float32: the angle
	Angle() float32

	// Penumbra returns the fraction of the spot cone over which the light fades out.
	//
	// Returns:
	//   - float32: the penumbra in [0, 1]
	Penumbra() float32

	// InnerCone returns cos of the angle inside which a spot light is at full strength.
	//
	// Returns:
	//   - float32: the inner cone cosine
	InnerCone() float32

	// OuterCone returns cos of the angle outside which a spot light contributes nothing.
	//
	// Returns:
	//   - float32: the outer cone cosine
	OuterCone() float32

	// Enabled returns whether the light contributes to shading.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetPosition sets the world-space position of the light.
	SetPosition(x, y, z float32)

	// SetTarget sets the world-space point the light aims at.
	SetTarget(x, y, z float32)

	// SetColor sets the RGB color of the light.
	SetColor(r, g, b float32)

	// SetIntensity sets the scalar intensity multiplier.
	//
	// Parameters:
	//   - intensity: the new intensity, negative values clamp to 0
	SetIntensity(intensity float32)

	// SetEnabled toggles the light.
	SetEnabled(enabled bool)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the given type with the provided options.
// Defaults to white at intensity 1, positioned at the origin aiming down -Z.
//
// Parameters:
//   - lightType: the kind of light to create (ambient, directional, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:        &sync.Mutex{},
		lightType: lightType,
		target:    [3]float32{0, 0, -1},
		color:     [3]float32{1, 1, 1},
		intensity: 1.0,
		angle:     math.Pi / 3,
		enabled:   true,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.position
}

func (l *lightImpl) Target() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.target
}

func (l *lightImpl) Direction() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return normalize3(l.target[0]-l.position[0], l.target[1]-l.position[1], l.target[2]-l.position[2])
}

func (l *lightImpl) Color() [3]float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.intensity
}

func (l *lightImpl) Angle() float32 {
	return l.angle
}

func (l *lightImpl) Penumbra() float32 {
	return l.penumbra
}

func (l *lightImpl) InnerCone() float32 {
	return float32(math.Cos(float64(l.angle * (1 - l.penumbra))))
}

func (l *lightImpl) OuterCone() float32 {
	return float32(math.Cos(float64(l.angle)))
}

func (l *lightImpl) Enabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enabled
}

func (l *lightImpl) SetPosition(x, y, z float32) {
	l.mu.Lock()
	l.position = [3]float32{x, y, z}
	l.mu.Unlock()
}

func (l *lightImpl) SetTarget(x, y, z float32) {
	l.mu.Lock()
	l.target = [3]float32{x, y, z}
	l.mu.Unlock()
}

func (l *lightImpl) SetColor(r, g, b float32) {
	l.mu.Lock()
	l.color = [3]float32{r, g, b}
	l.mu.Unlock()
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.mu.Lock()
	l.intensity = max(intensity, 0)
	l.mu.Unlock()
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	l.enabled = enabled
	l.mu.Unlock()
}
