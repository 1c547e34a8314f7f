package card

import (
	"math"
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/scene"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// Card and camera dimensions in world units.
const (
	CardWidth     = 4.0
	CardHeight    = 2.5
	CornerRadius  = 0.3
	CardScale     = 0.45
	CardDepth     = 0.05
	OverlayWidth  = 1.8
	OverlayHeight = 1.125
	OverlayDepth  = 0.08

	// CornerDivisions is the number of points each quadratic corner is sampled with.
	CornerDivisions = 12
)

// Default scene population and assets.
const (
	DefaultAuroraCount    = 6
	DefaultParticleCount  = 12
	DefaultCardTexture    = "brushed-metal.jpg"
	DefaultOverlayTexture = "text-overlay-1.png"
	DefaultBackground     = 0x18191c
)

// DefaultPalette is the aurora and particle color set.
var DefaultPalette = []uint32{0x60a5fa, 0xa78bfa, 0xf472b6, 0x34d399, 0xfbbf24, 0xec4899}

// AuroraStreak is one glowing tube of the backdrop. Phase is its index, which offsets its
// animation curves from the other streaks.
type AuroraStreak struct {
	Mesh  game_object.GameObject
	Phase int
}

// Particle is one floating disc of the backdrop.
type Particle struct {
	Mesh  game_object.GameObject
	Phase int
}

// Composition is the built scene together with handles to every node the animation, input
// and resize paths drive.
type Composition struct {
	scene  scene.Scene
	camera camera.Camera

	CardGroup     game_object.GameObject
	Card          game_object.GameObject
	Overlay       game_object.GameObject
	AuroraGroup   game_object.GameObject
	ParticleGroup game_object.GameObject
	Aurora        []AuroraStreak
	Particles     []Particle

	Spot        light.Light
	Ambient     light.Light
	Directional light.Light

	CardTexture    *texture.Texture
	OverlayTexture *texture.Texture

	tracker *resource.Tracker
}

// Scene returns the scene graph.
func (c *Composition) Scene() scene.Scene {
	return c.scene
}

// Camera returns the orthographic camera.
func (c *Composition) Camera() camera.Camera {
	return c.camera
}

// Group returns the card group the pointer tilts.
func (c *Composition) Group() game_object.GameObject {
	return c.CardGroup
}

// AuroraMeshes returns the streak meshes in phase order.
func (c *Composition) AuroraMeshes() []game_object.GameObject {
	out := make([]game_object.GameObject, len(c.Aurora))
	for i, a := range c.Aurora {
		out[i] = a.Mesh
	}
	return out
}

// ParticleMeshes returns the particle meshes in phase order.
func (c *Composition) ParticleMeshes() []game_object.GameObject {
	out := make([]game_object.GameObject, len(c.Particles))
	for i, p := range c.Particles {
		out[i] = p.Mesh
	}
	return out
}

// Tracker returns the tracker every resource of the composition is registered with.
func (c *Composition) Tracker() *resource.Tracker {
	return c.tracker
}

// Dispose releases every tracked geometry, material and texture. Safe to call twice.
//
// Returns:
//   - int: the number of resources released by this call
func (c *Composition) Dispose() int {
	return c.tracker.DisposeAll()
}

// sceneBuilder implements the SceneBuilder interface.
type sceneBuilder struct {
	rng            *rand.Rand
	loader         texture.Loader
	tracker        *resource.Tracker
	cardTexture    string
	overlayTexture string
	auroraCount    int
	particleCount  int
	palette        []uint32
	background     common.Color
}

// SceneBuilder assembles the business-card scene: camera, lights, the tiltable card group and
// the aurora and particle backdrop.
type SceneBuilder interface {
	// Build creates a new composition. Every call produces fresh resources registered with
	// the builder's tracker. Textures load asynchronously and never make Build fail.
	//
	// Returns:
	//   - *Composition: the built scene
	//   - error: always nil today, reserved for builders that validate their input
	Build() (*Composition, error)
}

var _ SceneBuilder = &sceneBuilder{}

// NewSceneBuilder creates a SceneBuilder. Without WithRandom the backdrop layout is seeded
// from the runtime's random source; without WithTextureLoader the card and overlay render
// with their base colors only.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - SceneBuilder: the new builder
func NewSceneBuilder(options ...SceneBuilderOption) SceneBuilder {
	b := &sceneBuilder{
		rng:            rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		cardTexture:    DefaultCardTexture,
		overlayTexture: DefaultOverlayTexture,
		auroraCount:    DefaultAuroraCount,
		particleCount:  DefaultParticleCount,
		palette:        DefaultPalette,
		background:     common.HexColor(DefaultBackground),
	}
	for _, opt := range options {
		opt(b)
	}
	if b.tracker == nil {
		b.tracker = resource.NewTracker()
	}
	return b
}

func (b *sceneBuilder) Build() (*Composition, error) {
	c := &Composition{
		scene:   scene.NewScene(scene.WithBackground(b.background)),
		tracker: b.tracker,
		camera: camera.NewCamera(
			camera.WithBounds(-CardWidth/2, CardWidth/2, CardHeight/2, -CardHeight/2),
			camera.WithNear(0.001),
			camera.WithFar(1000),
			camera.WithPosition(0, 0, 8),
			camera.WithTarget(0, 0, 0),
		),
	}

	b.buildCard(c)
	b.buildLights(c)
	b.buildAurora(c)
	b.buildParticles(c)
	c.scene.Add(c.CardGroup, c.AuroraGroup, c.ParticleGroup)
	return c, nil
}

func (b *sceneBuilder) buildCard(c *Composition) {
	cardGeo := geometry.NewShapeGeometry(geometry.RoundedRectangle(CardWidth, CardHeight, CornerRadius), CornerDivisions)
	cardGeo.Name = "card"
	cardGeo.RemapUVs()
	c.CardTexture = b.load(b.cardTexture)
	cardMat := material.NewMaterial(
		material.WithName("card"),
		material.WithType(material.TypeStandard),
		material.WithColor(common.White),
		material.WithMap(c.CardTexture),
		material.WithMetalness(0.7),
		material.WithRoughness(0.38),
	)
	c.Card = game_object.NewMesh("card",
		resource.Track(b.tracker, resource.KindGeometry, cardGeo),
		resource.Track(b.tracker, resource.KindMaterial, cardMat),
	)
	c.Card.SetScale(CardScale, CardScale, 1)
	c.Card.SetPosition(0, 0, CardDepth)

	overlayGeo := geometry.NewPlaneGeometry(OverlayWidth, OverlayHeight)
	overlayGeo.Name = "overlay"
	c.OverlayTexture = b.load(b.overlayTexture)
	overlayMat := material.NewMaterial(
		material.WithName("overlay"),
		material.WithType(material.TypeStandard),
		material.WithMap(c.OverlayTexture),
		material.WithTransparent(true),
		material.WithAlphaTest(0.1),
		material.WithSide(material.SideDouble),
		material.WithMetalness(1),
		material.WithRoughness(0),
	)
	c.Overlay = game_object.NewMesh("overlay",
		resource.Track(b.tracker, resource.KindGeometry, overlayGeo),
		resource.Track(b.tracker, resource.KindMaterial, overlayMat),
	)
	c.Overlay.SetPosition(0, 0, OverlayDepth)

	c.CardGroup = game_object.NewGroup("card-group")
	c.CardGroup.Add(c.Card)
	c.CardGroup.Add(c.Overlay)
}

// load schedules a texture decode, or returns nil when no loader is configured.
func (b *sceneBuilder) load(path string) *texture.Texture {
	if b.loader == nil || path == "" {
		return nil
	}
	return resource.Track(b.tracker, resource.KindTexture, b.loader.Load(path))
}

func (b *sceneBuilder) buildLights(c *Composition) {
	c.Spot = light.NewLight(light.LightTypeSpot,
		light.WithHexColor(0xffffff),
		light.WithIntensity(2.2),
		light.WithPosition(0, 0, 5),
		light.WithTarget(0, 0, 0),
		light.WithSpotCone(math.Pi/2, 0.4),
	)
	c.Ambient = light.NewLight(light.LightTypeAmbient,
		light.WithHexColor(0xffffff),
		light.WithIntensity(0.4),
	)
	c.Directional = light.NewLight(light.LightTypeDirectional,
		light.WithHexColor(0xffffff),
		light.WithIntensity(0.8),
		light.WithPosition(2, 1, 2),
		light.WithTarget(0, 0, 0),
	)
	c.scene.AddLight(c.Spot, c.Ambient, c.Directional)
}

func (b *sceneBuilder) buildAurora(c *Composition) {
	c.AuroraGroup = game_object.NewGroup("aurora")
	c.Aurora = make([]AuroraStreak, 0, b.auroraCount)
	for i := range b.auroraCount {
		fi := float64(i)
		w := 2.5 + b.rng.Float64()*2
		h := 0.4 + b.rng.Float64()*0.8
		curve := geometry.NewCubicBezier3(
			[3]float64{-w / 2, -h / 2, 0},
			[3]float64{-w / 4, h / 2, 0},
			[3]float64{w / 4, -h / 2, 0},
			[3]float64{w / 2, h / 2, 0},
		)
		geo := geometry.NewTubeGeometry(curve, 20, 0.1, 8, false)
		geo.Name = "aurora"
		mat := material.NewMaterial(
			material.WithName("aurora"),
			material.WithColor(b.color(i)),
			material.WithTransparent(true),
			material.WithOpacity(float32(0.15+b.rng.Float64()*0.1)),
			material.WithDepthWrite(false),
			material.WithBlending(material.BlendingAdditive),
		)
		mesh := game_object.NewMesh("aurora",
			resource.Track(b.tracker, resource.KindGeometry, geo),
			resource.Track(b.tracker, resource.KindMaterial, mat),
		)
		mesh.SetPosition(
			float32(-1.5+fi*0.6+b.rng.Float64()*0.4),
			float32(0.8-fi*0.3+b.rng.Float64()*0.6),
			float32(-2.5-fi*0.3-b.rng.Float64()*0.5),
		)
		rz := animation.AuroraTwist(i, b.auroraCount) + b.rng.Float64()*0.5
		rx := b.rng.Float64() * 0.3
		ry := b.rng.Float64() * 0.3
		mesh.SetRotation(float32(rx), float32(ry), float32(rz))

		c.AuroraGroup.Add(mesh)
		c.Aurora = append(c.Aurora, AuroraStreak{Mesh: mesh, Phase: i})
	}
}

func (b *sceneBuilder) buildParticles(c *Composition) {
	c.ParticleGroup = game_object.NewGroup("particles")
	c.Particles = make([]Particle, 0, b.particleCount)
	for i := range b.particleCount {
		geo := geometry.NewCircleGeometry(0.02+b.rng.Float64()*0.03, 32)
		geo.Name = "particle"
		mat := material.NewMaterial(
			material.WithName("particle"),
			material.WithColor(b.color(b.rng.IntN(len(b.palette)))),
			material.WithTransparent(true),
			material.WithOpacity(float32(0.3+b.rng.Float64()*0.4)),
			material.WithBlending(material.BlendingAdditive),
			material.WithSide(material.SideDouble),
		)
		mesh := game_object.NewMesh("particle",
			resource.Track(b.tracker, resource.KindGeometry, geo),
			resource.Track(b.tracker, resource.KindMaterial, mat),
		)
		mesh.SetPosition(
			float32(-2+b.rng.Float64()*4),
			float32(-1+b.rng.Float64()*2),
			float32(-3-b.rng.Float64()*2),
		)
		c.ParticleGroup.Add(mesh)
		c.Particles = append(c.Particles, Particle{Mesh: mesh, Phase: i})
	}
}

func (b *sceneBuilder) color(i int) common.Color {
	return common.HexColor(b.palette[i%len(b.palette)])
}
