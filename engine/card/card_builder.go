package card

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// SceneBuilderOption is a functional option for configuring a SceneBuilder.
type SceneBuilderOption func(*sceneBuilder)

// WithRandom sets the random source the backdrop layout is drawn from. A seeded source makes
// Build reproducible.
//
// Parameters:
//   - rng: the random source
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithRandom(rng *rand.Rand) SceneBuilderOption {
	return func(b *sceneBuilder) {
		if rng != nil {
			b.rng = rng
		}
	}
}

// WithSeed is shorthand for WithRandom with a PCG source seeded by seed.
func WithSeed(seed uint64) SceneBuilderOption {
	return WithRandom(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)))
}

// WithTextureLoader sets the loader the card and overlay textures are requested from.
//
// Parameters:
//   - l: the texture loader
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithTextureLoader(l texture.Loader) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.loader = l
	}
}

// WithTracker sets the tracker built resources are registered with.
func WithTracker(t *resource.Tracker) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.tracker = t
	}
}

// WithCardTexture sets the card surface texture path. An empty path disables it.
func WithCardTexture(path string) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.cardTexture = path
	}
}

// WithOverlayTexture sets the text overlay texture path. An empty path disables it.
func WithOverlayTexture(path string) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.overlayTexture = path
	}
}

// WithAuroraCount sets the number of aurora streaks (default 6). Negative counts become 0.
func WithAuroraCount(n int) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.auroraCount = max(n, 0)
	}
}

// WithParticleCount sets the number of floating particles (default 12). Negative counts become 0.
func WithParticleCount(n int) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.particleCount = max(n, 0)
	}
}

// WithPalette sets the packed 0xRRGGBB colors streaks and particles pick from.
// An empty palette keeps the default.
//
// Parameters:
//   - colors: the palette
//
// Returns:
//   - SceneBuilderOption: option function to apply
func WithPalette(colors []uint32) SceneBuilderOption {
	return func(b *sceneBuilder) {
		if len(colors) > 0 {
			b.palette = colors
		}
	}
}

// WithBackground sets the scene clear color.
func WithBackground(c common.Color) SceneBuilderOption {
	return func(b *sceneBuilder) {
		b.background = c
	}
}
