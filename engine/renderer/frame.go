package renderer

import (
	"sort"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/scene"
)

// DrawItem is one mesh ready to draw.
type DrawItem struct {
	Object   game_object.GameObject
	Geometry *geometry.Geometry
	Material material.Material

	// World is the mesh's world matrix, column-major.
	World [16]float32

	// Depth is the clip-space depth of the mesh origin, 0 at the near plane and 1 at the far plane.
	Depth float32
}

// Frame is a snapshot of everything a backend needs to draw one image.
type Frame struct {
	Background     common.Color
	ViewProj       [16]float32
	CameraPosition [3]float32
	Lights         []light.Light

	// Opaque meshes sorted front to back.
	Opaque []DrawItem
	// Transparent meshes sorted back to front.
	Transparent []DrawItem

	// Width and Height are the drawing-buffer size in device pixels.
	Width, Height int
}

// Items returns every draw item in submission order: opaque first, then transparent.
//
// Returns:
//   - []DrawItem: the ordered items
func (f *Frame) Items() []DrawItem {
	out := make([]DrawItem, 0, len(f.Opaque)+len(f.Transparent))
	out = append(out, f.Opaque...)
	return append(out, f.Transparent...)
}

// CollectFrame gathers the enabled meshes of s as seen from c. Meshes whose geometry or
// material has been disposed are skipped.
//
// Parameters:
//   - s: the scene
//   - c: the camera
//   - width: the drawing-buffer width
//   - height: the drawing-buffer height
//
// Returns:
//   - *Frame: the collected frame
func CollectFrame(s scene.Scene, c camera.Camera, width, height int) *Frame {
	cam := camera.Uniform(c)
	f := &Frame{
		Background:     s.Background(),
		ViewProj:       cam.ViewProj,
		CameraPosition: cam.CameraPosition,
		Lights:         s.Lights(),
		Width:          width,
		Height:         height,
	}
	for _, obj := range s.Meshes() {
		geo, mat := obj.Geometry(), obj.Material()
		if geo == nil || mat == nil || geo.Disposed() || mat.Disposed() {
			continue
		}
		item := DrawItem{Object: obj, Geometry: geo, Material: mat}
		obj.WorldMatrix(item.World[:])
		item.Depth = c.Project([3]float32{item.World[12], item.World[13], item.World[14]})[2]
		if mat.Transparent() {
			f.Transparent = append(f.Transparent, item)
		} else {
			f.Opaque = append(f.Opaque, item)
		}
	}
	sort.SliceStable(f.Opaque, func(i, j int) bool { return f.Opaque[i].Depth < f.Opaque[j].Depth })
	sort.SliceStable(f.Transparent, func(i, j int) bool { return f.Transparent[i].Depth > f.Transparent[j].Depth })
	return f
}
