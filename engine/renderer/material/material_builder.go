package material

import (
	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithType is an option builder that sets the shading model.
//
// Parameters:
//   - t: TypeBasic or TypeStandard
//
// Returns:
//   - MaterialBuilderOption: a function that applies the type option to a material
func WithType(t Type) MaterialBuilderOption {
	return func(m *material) {
		m.kind = t
	}
}

// WithColor is an option builder that sets the base color of the material.
//
// Parameters:
//   - color: the linear RGB base color
//
// Returns:
//   - MaterialBuilderOption: a function that applies the color option to a material
func WithColor(color common.Color) MaterialBuilderOption {
	return func(m *material) {
		m.color = color
	}
}

// WithOpacity is an option builder that sets the initial opacity, clamped to [0, 1].
func WithOpacity(opacity float32) MaterialBuilderOption {
	return func(m *material) {
		m.opacity = common.Clamp(opacity, 0, 1)
	}
}

// WithTransparent is an option builder that moves the material to the blended pass.
func WithTransparent(transparent bool) MaterialBuilderOption {
	return func(m *material) {
		m.transparent = transparent
	}
}

// WithAlphaTest is an option builder that sets the alpha discard cutoff.
func WithAlphaTest(cutoff float32) MaterialBuilderOption {
	return func(m *material) {
		m.alphaTest = cutoff
	}
}

// WithSide is an option builder that selects which faces are drawn.
func WithSide(side Side) MaterialBuilderOption {
	return func(m *material) {
		m.side = side
	}
}

// WithBlending is an option builder that sets the blend mode. Additive blending implies a
// transparent material.
//
// Parameters:
//   - blending: the blend mode
//
// Returns:
//   - MaterialBuilderOption: a function that applies the blending option to a material
func WithBlending(blending Blending) MaterialBuilderOption {
	return func(m *material) {
		m.blending = blending
		if blending == BlendingAdditive {
			m.transparent = true
		}
	}
}

// WithDepthWrite is an option builder that toggles depth buffer writes.
func WithDepthWrite(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthWrite = enabled
	}
}

// WithDepthTest is an option builder that toggles depth testing.
func WithDepthTest(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.depthTest = enabled
	}
}

// WithMetalness is an option builder that sets the metalness factor of the material.
//
// Parameters:
//   - metalness: the metalness factor (0.0 = dielectric, 1.0 = metal)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the metalness option to a material
func WithMetalness(metalness float32) MaterialBuilderOption {
	return func(m *material) {
		m.metalness = metalness
	}
}

// WithRoughness is an option builder that sets the roughness factor of the material.
//
// Parameters:
//   - roughness: the roughness factor (0.0 = smooth, 1.0 = rough)
//
// Returns:
//   - MaterialBuilderOption: a function that applies the roughness option to a material
func WithRoughness(roughness float32) MaterialBuilderOption {
	return func(m *material) {
		m.roughness = roughness
	}
}

// WithMap is an option builder that sets the color texture.
//
// Parameters:
//   - tex: the texture, possibly still loading
//
// Returns:
//   - MaterialBuilderOption: a function that applies the map option to a material
func WithMap(tex *texture.Texture) MaterialBuilderOption {
	return func(m *material) {
		m.colorMap = tex
	}
}
