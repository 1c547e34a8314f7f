package renderer

import (
	"errors"
	"image"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/scene"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

func testCamera() camera.Camera {
	return camera.NewCamera(
		camera.WithBounds(-2, 2, 1.25, -1.25),
		camera.WithNear(0.001),
		camera.WithFar(1000),
		camera.WithPosition(0, 0, 8),
	)
}

func newSoftware(t *testing.T, w, h int) Renderer {
	t.Helper()
	r, err := NewRenderer(BackendTypeSoftware, WithSize(w, h))
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	t.Cleanup(r.Dispose)
	return r
}

func snapshot(t *testing.T, r Renderer) *image.RGBA {
	t.Helper()
	surface, ok := r.Surface().(ImageSurface)
	if !ok {
		t.Fatal("software surface is not an ImageSurface")
	}
	img := surface.Snapshot()
	if img == nil {
		t.Fatal("no snapshot after Render")
	}
	return img
}

func near8(got uint8, want float32) bool {
	return math.Abs(float64(got)-float64(want*255)) <= 2
}

func TestSoftwareRenderDrawsCardOverBackground(t *testing.T) {
	r := newSoftware(t, 80, 50)
	bg := common.HexColor(0x18191c)
	s := scene.NewScene(scene.WithBackground(bg))
	s.Add(game_object.NewMesh("card", geometry.NewPlaneGeometry(2, 1), material.NewMaterial(
		material.WithColor(common.Color{1, 0, 0}),
	)))

	if err := r.Render(s, testCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	img := snapshot(t, r)
	if img.Rect.Dx() != 80 || img.Rect.Dy() != 50 {
		t.Fatalf("snapshot size = %v", img.Rect.Size())
	}

	corner := img.RGBAAt(1, 1)
	if !near8(corner.R, bg[0]) || !near8(corner.G, bg[1]) || !near8(corner.B, bg[2]) {
		t.Errorf("corner pixel = %v, want background %v", corner, bg)
	}
	center := img.RGBAAt(40, 25)
	if center.R < 250 || center.G > 5 || center.B > 5 {
		t.Errorf("center pixel = %v, want red card", center)
	}
}

func TestSoftwareRenderCullsBackFaces(t *testing.T) {
	cases := []struct {
		name string
		side material.Side
		want bool
	}{
		{"front", material.SideFront, false},
		{"double", material.SideDouble, true},
		{"back", material.SideBack, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newSoftware(t, 40, 25)
			s := scene.NewScene(scene.WithBackground(common.Color{0, 0, 0}))
			card := game_object.NewMesh("card", geometry.NewPlaneGeometry(2, 1), material.NewMaterial(material.WithSide(tc.side)))
			card.SetRotation(0, math.Pi, 0)
			s.Add(card)

			if err := r.Render(s, testCamera()); err != nil {
				t.Fatalf("Render: %v", err)
			}
			drawn := snapshot(t, r).RGBAAt(20, 12).R > 128
			if drawn != tc.want {
				t.Errorf("flipped card drawn = %v, want %v", drawn, tc.want)
			}
		})
	}
}

func TestSoftwareRenderAdditiveBrightens(t *testing.T) {
	r := newSoftware(t, 40, 25)
	s := scene.NewScene(scene.WithBackground(common.Color{0.2, 0.2, 0.2}))
	glow := game_object.NewMesh("glow", geometry.NewPlaneGeometry(4, 4), material.NewMaterial(
		material.WithColor(common.Color{0, 0, 1}),
		material.WithBlending(material.BlendingAdditive),
		material.WithOpacity(0.5),
	))
	s.Add(glow)

	if err := r.Render(s, testCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	c := snapshot(t, r).RGBAAt(20, 12)
	if c.B <= 51+10 {
		t.Errorf("blue channel %d not brightened by additive glow", c.B)
	}
	if c.R < 45 {
		t.Errorf("red channel %d darkened by additive glow", c.R)
	}
}

func TestRenderTracksAndReleasesResources(t *testing.T) {
	r := newSoftware(t, 40, 25)
	tex := texture.FromImage("logo", image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	geo := geometry.NewPlaneGeometry(1, 1)
	mat := material.NewMaterial(material.WithMap(tex))
	s := scene.NewScene()
	s.Add(
		game_object.NewMesh("a", geo, mat),
		game_object.NewMesh("b", geo, material.NewMaterial()),
	)

	if err := r.Render(s, testCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	info := r.Info()
	if info.Geometries != 1 || info.Materials != 2 || info.Textures != 1 {
		t.Fatalf("Info = %+v, want 1 geometry, 2 materials, 1 texture", info)
	}
	if info.DrawCalls != 2 || info.Frames != 1 {
		t.Errorf("DrawCalls = %d Frames = %d", info.DrawCalls, info.Frames)
	}

	tex.Dispose()
	mat.Dispose()
	info = r.Info()
	if info.Materials != 1 || info.Textures != 0 {
		t.Errorf("after dispose Info = %+v, want 1 material, 0 textures", info)
	}

	if err := r.Render(s, testCamera()); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.Info().DrawCalls; got != 1 {
		t.Errorf("DrawCalls after disposing a material = %d, want 1", got)
	}
}

func TestRenderAfterDispose(t *testing.T) {
	r, err := NewRenderer(BackendTypeSoftware)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	r.Dispose()
	r.Dispose()
	if !r.Disposed() {
		t.Fatal("Disposed() = false")
	}
	if err := r.Render(scene.NewScene(), testCamera()); !errors.Is(err, ErrDisposed) {
		t.Errorf("Render after Dispose = %v, want ErrDisposed", err)
	}
}

func TestSizeAndPixelRatio(t *testing.T) {
	r := newSoftware(t, 100, 50)
	r.SetPixelRatio(2)
	if w, h := r.Surface().Size(); w != 200 || h != 100 {
		t.Errorf("buffer = %dx%d, want 200x100", w, h)
	}
	r.SetSize(0, 10)
	if w, h := r.Size(); w != 100 || h != 50 {
		t.Errorf("SetSize(0, 10) changed size to %dx%d", w, h)
	}
	r.SetPixelRatio(math.NaN())
	if r.PixelRatio() != 1 {
		t.Errorf("PixelRatio() = %v after NaN, want 1", r.PixelRatio())
	}
}

func TestWGPURequiresSurfaceSource(t *testing.T) {
	if _, err := NewRenderer(BackendTypeWGPU); err == nil {
		t.Error("NewRenderer(wgpu) without a surface source succeeded")
	}
}

func TestCollectFrameOrdering(t *testing.T) {
	s := scene.NewScene()
	front := game_object.NewMesh("front", geometry.NewPlaneGeometry(1, 1), material.NewMaterial())
	front.SetPosition(0, 0, 1)
	back := game_object.NewMesh("back", geometry.NewPlaneGeometry(1, 1), material.NewMaterial())
	back.SetPosition(0, 0, -1)
	glassNear := game_object.NewMesh("glass-near", geometry.NewPlaneGeometry(1, 1), material.NewMaterial(material.WithTransparent(true), material.WithOpacity(0.5)))
	glassNear.SetPosition(0, 0, 2)
	glassFar := game_object.NewMesh("glass-far", geometry.NewPlaneGeometry(1, 1), material.NewMaterial(material.WithTransparent(true), material.WithOpacity(0.5)))
	glassFar.SetPosition(0, 0, -2)
	gone := material.NewMaterial()
	gone.Dispose()
	s.Add(back, glassNear, front, glassFar, game_object.NewMesh("gone", geometry.NewPlaneGeometry(1, 1), gone))

	f := CollectFrame(s, testCamera(), 10, 10)
	names := func(items []DrawItem) []string {
		out := make([]string, len(items))
		for i, it := range items {
			out[i] = it.Object.Name()
		}
		return out
	}
	if got := names(f.Opaque); len(got) != 2 || got[0] != "front" || got[1] != "back" {
		t.Errorf("Opaque = %v, want [front back]", got)
	}
	if got := names(f.Transparent); len(got) != 2 || got[0] != "glass-far" || got[1] != "glass-near" {
		t.Errorf("Transparent = %v, want [glass-far glass-near]", got)
	}
	if n := len(f.Items()); n != 4 {
		t.Errorf("Items() = %d, want 4", n)
	}
}

func TestShade(t *testing.T) {
	base := common.Color{0.5, 0.5, 0.5}
	eye := [3]float32{0, 0, 8}
	n := [3]float32{0, 0, 1}
	ambient := light.NewLight(light.LightTypeAmbient, light.WithIntensity(0.5))

	if got := Shade(base, material.NewMaterial(), n, [3]float32{}, eye, []light.Light{ambient}); got != base {
		t.Errorf("basic material shaded to %v, want %v", got, base)
	}

	matte := material.NewMaterial(material.WithType(material.TypeStandard), material.WithRoughness(1))
	got := Shade(base, matte, n, [3]float32{}, eye, []light.Light{ambient})
	if math.Abs(float64(got[0]-0.25)) > 1e-5 {
		t.Errorf("ambient-only shade = %v, want 0.25", got[0])
	}

	spot := light.NewLight(light.LightTypeSpot,
		light.WithPosition(0, 0, 5), light.WithTarget(0, 0, 0), light.WithSpotCone(0.3, 0.2))
	inside := Shade(base, matte, n, [3]float32{}, eye, []light.Light{spot})
	outside := Shade(base, matte, n, [3]float32{4, 0, 0}, eye, []light.Light{spot})
	if inside[0] <= 0 || outside[0] != 0 {
		t.Errorf("spot inside = %v outside = %v", inside[0], outside[0])
	}

	spot.SetEnabled(false)
	if dark := Shade(base, matte, n, [3]float32{}, eye, []light.Light{spot, nil}); dark[0] != 0 {
		t.Errorf("disabled spot contributed %v", dark[0])
	}
}
