package card

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

func TestBuildPopulatesScene(t *testing.T) {
	c, err := NewSceneBuilder(WithSeed(7)).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(c.Aurora) != DefaultAuroraCount || len(c.Particles) != DefaultParticleCount {
		t.Fatalf("aurora %d particles %d", len(c.Aurora), len(c.Particles))
	}
	if n := len(c.Scene().Meshes()); n != 2+DefaultAuroraCount+DefaultParticleCount {
		t.Errorf("mesh count = %d", n)
	}
	if n := len(c.Scene().Lights()); n != 3 {
		t.Errorf("light count = %d, want 3", n)
	}
	if c.Card.Parent() != c.CardGroup || c.Overlay.Parent() != c.CardGroup {
		t.Error("card and overlay are not siblings under the card group")
	}
	if s := c.Card.Scale(); s != [3]float32{CardScale, CardScale, 1} {
		t.Errorf("card scale = %v", s)
	}
	if p := c.Overlay.Position(); p[2] != OverlayDepth {
		t.Errorf("overlay z = %v", p[2])
	}
	b := c.Camera().Bounds()
	if b.Left != -2 || b.Right != 2 || b.Top != 1.25 || b.Bottom != -1.25 {
		t.Errorf("camera bounds = %+v", b)
	}
}

func TestCardUVsSpanUnitSquare(t *testing.T) {
	c, _ := NewSceneBuilder(WithSeed(1)).Build()
	geo := c.Card.Geometry()
	minU, minV, maxU, maxV := float32(1), float32(1), float32(0), float32(0)
	for _, v := range geo.Vertices {
		u, w := v.TexCoord[0], v.TexCoord[1]
		if u < 0 || u > 1 || w < 0 || w > 1 {
			t.Fatalf("uv %v outside [0,1]", v.TexCoord)
		}
		minU, maxU = min(minU, u), max(maxU, u)
		minV, maxV = min(minV, w), max(maxV, w)
	}
	if minU != 0 || minV != 0 || maxU != 1 || maxV != 1 {
		t.Errorf("uv range = [%v,%v]x[%v,%v], want [0,1]x[0,1]", minU, maxU, minV, maxV)
	}
}

func TestBackdropLayout(t *testing.T) {
	c, _ := NewSceneBuilder(WithSeed(42)).Build()
	for _, a := range c.Aurora {
		i := float32(a.Phase)
		p := a.Mesh.Position()
		if p[0] < -1.5+0.6*i || p[0] > -1.5+0.6*i+0.4 {
			t.Errorf("aurora %d x = %v", a.Phase, p[0])
		}
		if p[2] > -2.5-0.3*i || p[2] < -2.5-0.3*i-0.5 {
			t.Errorf("aurora %d z = %v", a.Phase, p[2])
		}
		m := a.Mesh.Material()
		if m.Blending() != material.BlendingAdditive || m.DepthWrite() {
			t.Errorf("aurora %d material blending %v depthWrite %v", a.Phase, m.Blending(), m.DepthWrite())
		}
		if o := m.Opacity(); o < 0.15 || o > 0.25 {
			t.Errorf("aurora %d opacity = %v", a.Phase, o)
		}
		if got, want := a.Mesh.Geometry().TriangleCount(), 20*8*2; got != want {
			t.Errorf("aurora %d triangles = %d, want %d", a.Phase, got, want)
		}
	}
	for _, p := range c.Particles {
		pos := p.Mesh.Position()
		if pos[0] < -2 || pos[0] > 2 || pos[1] < -1 || pos[1] > 1 || pos[2] > -3 || pos[2] < -5 {
			t.Errorf("particle %d position = %v", p.Phase, pos)
		}
		if p.Mesh.Material().Side() != material.SideDouble {
			t.Errorf("particle %d not double-sided", p.Phase)
		}
	}
}

func TestAuroraTwistFollowsStreakCount(t *testing.T) {
	for _, count := range []int{2, 5, 6, 9} {
		c, err := NewSceneBuilder(WithSeed(1), WithAuroraCount(count)).Build()
		if err != nil {
			t.Fatalf("Build(%d): %v", count, err)
		}
		built := make([]float64, len(c.Aurora))
		for i, a := range c.Aurora {
			built[i] = float64(a.Mesh.Rotation()[2])
			base := animation.AuroraTwist(i, count)
			if built[i] < base-1e-5 || built[i] > base+0.5+1e-5 {
				t.Errorf("count %d streak %d built roll = %v, base %v", count, i, built[i], base)
			}
		}

		sched := engine.NewManualScheduler()
		d := animation.NewDriver(c, sched)
		d.Start()
		sched.Step(16 * time.Millisecond)
		d.Cancel()

		for i, a := range c.Aurora {
			got := float64(a.Mesh.Rotation()[2])
			if base := animation.AuroraTwist(i, count); math.Abs(got-base) > 0.1+1e-5 {
				t.Errorf("count %d streak %d roll after first frame = %v, want within 0.1 of %v", count, i, got, base)
			}
			if math.Abs(got-built[i]) > 0.6+1e-5 {
				t.Errorf("count %d streak %d jumped from %v to %v", count, i, built[i], got)
			}
		}
	}
}

func TestSeedIsReproducible(t *testing.T) {
	a, _ := NewSceneBuilder(WithSeed(99)).Build()
	b, _ := NewSceneBuilder(WithSeed(99)).Build()
	for i := range a.Aurora {
		if a.Aurora[i].Mesh.Position() != b.Aurora[i].Mesh.Position() {
			t.Fatalf("aurora %d differs between builds with the same seed", i)
		}
	}
	for i := range a.Particles {
		if a.Particles[i].Mesh.Material().Color() != b.Particles[i].Mesh.Material().Color() {
			t.Fatalf("particle %d color differs between builds with the same seed", i)
		}
	}
}

func TestMissingTexturesDegrade(t *testing.T) {
	loader := texture.NewLoader(texture.WithBaseDir(t.TempDir()))
	defer loader.Close()

	c, err := NewSceneBuilder(WithSeed(3), WithTextureLoader(loader)).Build()
	if err != nil {
		t.Fatalf("Build with missing textures: %v", err)
	}
	loader.Wait()
	if c.CardTexture == nil || c.CardTexture.Ready() || c.CardTexture.Err() == nil {
		t.Errorf("card texture should have failed to load")
	}
	if c.Card.Material().Map() != c.CardTexture {
		t.Error("card material lost its texture reference")
	}
}

func TestDisposeReleasesTrackedResources(t *testing.T) {
	tracker := resource.NewTracker()
	c, _ := NewSceneBuilder(WithSeed(5), WithTracker(tracker), WithAuroraCount(2), WithParticleCount(3)).Build()

	counts := tracker.Counts()
	if counts[resource.KindGeometry] != 7 || counts[resource.KindMaterial] != 7 {
		t.Fatalf("tracked counts = %v, want 7 geometries and 7 materials", counts)
	}
	if n := c.Dispose(); n != 14 {
		t.Errorf("Dispose released %d, want 14", n)
	}
	if n := c.Dispose(); n != 0 {
		t.Errorf("second Dispose released %d, want 0", n)
	}
	if !c.Card.Geometry().Disposed() || !c.Card.Material().Disposed() {
		t.Error("card resources not disposed")
	}
}
