package renderer

import (
	"image"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
	"github.com/gogpu/gg"
)

// softwareRendererBackend rasterizes frames on the CPU with gg. Triangles are projected and
// painted in depth order with flat shading; additive meshes are composited through a screen
// blended layer. Textured materials contribute their average color.
type softwareRendererBackend struct {
	mu       *sync.Mutex
	dc       *gg.Context
	width    int
	height   int
	snapshot *image.RGBA
	released map[string]int
}

// projected is one screen-space triangle ready to paint.
type projected struct {
	pts   [3][2]float64
	depth float32
	color [4]float64
}

var _ RendererBackend = &softwareRendererBackend{}
var _ ImageSurface = &softwareRendererBackend{}

func newSoftwareRendererBackend() *softwareRendererBackend {
	return &softwareRendererBackend{
		mu:       &sync.Mutex{},
		released: make(map[string]int),
	}
}

func (b *softwareRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dc == nil {
		b.dc = gg.NewContext(width, height)
	} else if err := b.dc.Resize(width, height); err != nil {
		common.Logger().Warn("software surface resize failed", "err", err)
		return
	}
	b.width, b.height = width, height
}

func (b *softwareRendererBackend) DrawFrame(f *Frame) error {
	b.mu.Lock()
	dc := b.dc
	b.mu.Unlock()
	if dc == nil {
		return nil
	}

	bg := f.Background
	dc.ClearWithColor(gg.RGB(float64(bg[0]), float64(bg[1]), float64(bg[2])))

	// Opaque meshes back to front, so nearer meshes paint over farther ones.
	for i := len(f.Opaque) - 1; i >= 0; i-- {
		if err := b.paint(dc, b.triangles(f, f.Opaque[i])); err != nil {
			return err
		}
	}

	layered := false
	for _, item := range f.Transparent {
		additive := item.Material.Blending() == material.BlendingAdditive
		if additive != layered {
			if additive {
				dc.PushLayer(gg.BlendScreen, 1)
			} else {
				dc.PopLayer()
			}
			layered = additive
		}
		if err := b.paint(dc, b.triangles(f, item)); err != nil {
			if layered {
				dc.PopLayer()
			}
			return err
		}
	}
	if layered {
		dc.PopLayer()
	}

	img, _ := dc.Image().(*image.RGBA)
	b.mu.Lock()
	b.snapshot = img
	b.mu.Unlock()
	return nil
}

// triangles projects and shades the visible triangles of one item, farthest first.
func (b *softwareRendererBackend) triangles(f *Frame, item DrawItem) []projected {
	geo, mat := item.Geometry, item.Material
	opacity := mat.Opacity()
	if opacity < mat.AlphaTest() || opacity <= 0 {
		return nil
	}
	base := mat.Color()
	if tex := mat.Map(); tex != nil {
		avg := tex.Average()
		base = common.Color{base[0] * avg[0], base[1] * avg[1], base[2] * avg[2]}
	}

	var mvp [16]float32
	common.Mul4(mvp[:], f.ViewProj[:], item.World[:])
	w, h := float64(f.Width), float64(f.Height)

	out := make([]projected, 0, geo.TriangleCount())
	for t := 0; t+2 < len(geo.Indices); t += 3 {
		var tri [3]geometry.GPUVertex
		for k := range 3 {
			tri[k] = geo.Vertices[geo.Indices[t+k]]
		}
		var ndc [3][4]float32
		for k := range 3 {
			ndc[k] = common.TransformPoint(mvp[:], tri[k].Position)
		}
		area := (ndc[1][0]-ndc[0][0])*(ndc[2][1]-ndc[0][1]) - (ndc[2][0]-ndc[0][0])*(ndc[1][1]-ndc[0][1])
		front := area > 0
		switch mat.Side() {
		case material.SideFront:
			if !front {
				continue
			}
		case material.SideBack:
			if front {
				continue
			}
		}

		var p projected
		var centroid, normal [3]float32
		for k := range 3 {
			p.pts[k] = [2]float64{(float64(ndc[k][0]) + 1) / 2 * w, (1 - float64(ndc[k][1])) / 2 * h}
			p.depth += ndc[k][2] / 3
			for a := range 3 {
				centroid[a] += tri[k].Position[a] / 3
				normal[a] += tri[k].Normal[a]
			}
		}
		worldPos := common.TransformPoint(item.World[:], centroid)
		n := common.Normalize3(common.TransformDirection(item.World[:], normal))
		if !front {
			n = [3]float32{-n[0], -n[1], -n[2]}
		}
		c := Shade(base, mat, n, [3]float32{worldPos[0], worldPos[1], worldPos[2]}, f.CameraPosition, f.Lights)
		p.color = [4]float64{
			float64(common.Clamp(c[0], 0, 1)),
			float64(common.Clamp(c[1], 0, 1)),
			float64(common.Clamp(c[2], 0, 1)),
			float64(opacity),
		}
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].depth > out[j].depth })
	return out
}

// paint fills the triangles in order. Runs of triangles sharing a color are filled as one path
// so flat surfaces show no seams between triangles.
func (b *softwareRendererBackend) paint(dc *gg.Context, tris []projected) error {
	for i := 0; i < len(tris); {
		c := tris[i].color
		dc.SetRGBA(c[0], c[1], c[2], c[3])
		j := i
		for ; j < len(tris) && quantize(tris[j].color) == quantize(c); j++ {
			pts := tris[j].pts
			dc.MoveTo(pts[0][0], pts[0][1])
			dc.LineTo(pts[1][0], pts[1][1])
			dc.LineTo(pts[2][0], pts[2][1])
			dc.ClosePath()
		}
		if err := dc.Fill(); err != nil {
			return err
		}
		i = j
	}
	return nil
}

func quantize(c [4]float64) [4]uint8 {
	return [4]uint8{uint8(c[0] * 255), uint8(c[1] * 255), uint8(c[2] * 255), uint8(c[3] * 255)}
}

func (b *softwareRendererBackend) Surface() Surface {
	return b
}

func (b *softwareRendererBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *softwareRendererBackend) Snapshot() *image.RGBA {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot
}

func (b *softwareRendererBackend) ReleaseGeometry(g *geometry.Geometry) {
	b.count("geometry")
}

func (b *softwareRendererBackend) ReleaseMaterial(m material.Material) {
	b.count("material")
}

func (b *softwareRendererBackend) ReleaseTexture(t *texture.Texture) {
	b.count("texture")
}

func (b *softwareRendererBackend) count(kind string) {
	b.mu.Lock()
	b.released[kind]++
	b.mu.Unlock()
}

func (b *softwareRendererBackend) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.dc != nil {
		_ = b.dc.Close()
		b.dc = nil
	}
	common.Logger().Debug("software backend released",
		"geometries", b.released["geometry"], "materials", b.released["material"], "textures", b.released["texture"])
}
