package renderer

import (
	"math"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
)

// Shade lights a surface point the same way the mesh shader does: ambient plus lambert
// diffuse from directional and spot lights, with a Blinn highlight scaled by smoothness.
// Basic materials are returned unlit.
//
// Parameters:
//   - base: the surface color before lighting
//   - m: the material (type, metalness, roughness)
//   - n: the unit surface normal facing the viewer
//   - p: the world-space point
//   - eye: the camera position
//   - lights: the scene lights
//
// Returns:
//   - common.Color: the lit color, not clamped
func Shade(base common.Color, m material.Material, n, p, eye [3]float32, lights []light.Light) common.Color {
	if m.Type() != material.TypeStandard {
		return base
	}
	metalness, roughness := m.Metalness(), m.Roughness()
	viewDir := common.Normalize3(sub3(eye, p))
	diffuseWeight := 1 - 0.5*metalness
	specWeight := (1 - roughness) * (0.04 + (1-0.04)*metalness)
	exp := float64(shininess(roughness))

	var diffuse, specular [3]float32
	for _, l := range lights {
		if l == nil || !l.Enabled() {
			continue
		}
		c, k := l.Color(), l.Intensity()
		radiance := [3]float32{c[0] * k, c[1] * k, c[2] * k}
		if l.Type() == light.LightTypeAmbient {
			diffuse = add3(diffuse, radiance)
			continue
		}
		d := l.Direction()
		toLight := [3]float32{-d[0], -d[1], -d[2]}
		cone := float32(1)
		if l.Type() == light.LightTypeSpot {
			toLight = common.Normalize3(sub3(l.Position(), p))
			cosTheta := -common.Dot3(toLight, d)
			cone = smoothstep(l.OuterCone(), l.InnerCone(), cosTheta)
		}
		nDotL := max(common.Dot3(n, toLight), 0)
		diffuse = add3(diffuse, scale3(radiance, nDotL*cone))
		h := common.Normalize3(add3(toLight, viewDir))
		spec := float32(math.Pow(float64(max(common.Dot3(n, h), 0)), exp))
		specular = add3(specular, scale3(radiance, spec*nDotL*cone))
	}
	var out common.Color
	for i := range 3 {
		out[i] = base[i]*diffuse[i]*diffuseWeight + specular[i]*specWeight
	}
	return out
}

func shininess(roughness float32) float32 {
	r4 := max(roughness*roughness*roughness*roughness, 0.001)
	return common.Clamp(2/r4-2, 1, 256)
}

func smoothstep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := common.Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

func add3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func sub3(a, b [3]float32) [3]float32 {
	return [3]float32{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scale3(a [3]float32, s float32) [3]float32 {
	return [3]float32{a[0] * s, a[1] * s, a[2] * s}
}
