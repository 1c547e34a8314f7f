package light

import "math"

// LightBuilderOption configures a Light at construction.
type LightBuilderOption func(*lightImpl)

// WithPosition places the light in world space. Ignored by ambient lights.
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithTarget sets the point spot and directional lights aim at. The direction is derived from
// position and target when the light is marshaled, so moving either keeps it aimed.
func WithTarget(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.target = [3]float32{x, y, z}
	}
}

// WithColor sets the linear RGB color.
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithHexColor sets the color from a 0xRRGGBB value, the form the scene palette uses.
func WithHexColor(hex uint32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{
			float32(hex>>16&0xff) / 255,
			float32(hex>>8&0xff) / 255,
			float32(hex&0xff) / 255,
		}
	}
}

// WithIntensity scales the color. Negative values clamp to 0.
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = max(intensity, 0)
	}
}

// WithSpotCone shapes a spot light.
//
// Parameters:
//   - angle: the cone half-angle in radians, clamped to (0, π/2]
//   - penumbra: the fraction of the cone that fades out, clamped to [0, 1]
//
// Returns:
//   - LightBuilderOption: option function to apply
func WithSpotCone(angle, penumbra float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.angle = min(max(angle, 1e-4), math.Pi/2)
		l.penumbra = min(max(penumbra, 0), 1)
	}
}

// WithEnabled toggles the light's contribution.
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

func normalize3(x, y, z float32) [3]float32 {
	length := float32(math.Sqrt(float64(x*x + y*y + z*z)))
	if length == 0 {
		return [3]float32{}
	}
	inv := 1 / length
	return [3]float32{x * inv, y * inv, z * inv}
}
