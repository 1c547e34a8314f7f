package geometry

import (
	"math"
)

// NewPlaneGeometry creates a single-quad rectangle centered on the origin in the XY plane, facing +Z.
//
// Parameters:
//   - width, height: the plane extent
//
// Returns:
//   - *Geometry: 4 vertices, 2 triangles
func NewPlaneGeometry(width, height float64) *Geometry {
	hw, hh := width/2, height/2
	g := &Geometry{
		Name: "plane",
		Vertices: []GPUVertex{
			vertex(-hw, hh, 0, 0, 0, 1, 0, 1),
			vertex(hw, hh, 0, 0, 0, 1, 1, 1),
			vertex(-hw, -hh, 0, 0, 0, 1, 0, 0),
			vertex(hw, -hh, 0, 0, 0, 1, 1, 0),
		},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}
	g.ComputeBoundingBox()
	return g
}

// NewCircleGeometry creates a filled disc as a triangle fan around a center vertex.
//
// Parameters:
//   - radius: the disc radius
//   - segments: the number of fan triangles (minimum 3)
//
// Returns:
//   - *Geometry: segments+2 vertices, segments triangles
func NewCircleGeometry(radius float64, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{Name: "circle"}
	g.Vertices = make([]GPUVertex, 0, segments+2)
	g.Vertices = append(g.Vertices, vertex(0, 0, 0, 0, 0, 1, 0.5, 0.5))
	for s := 0; s <= segments; s++ {
		theta := float64(s) / float64(segments) * 2 * math.Pi
		x, y := radius*math.Cos(theta), radius*math.Sin(theta)
		g.Vertices = append(g.Vertices, vertex(x, y, 0, 0, 0, 1, (x/radius+1)/2, (y/radius+1)/2))
	}
	g.Indices = make([]uint32, 0, segments*3)
	for i := 1; i <= segments; i++ {
		g.Indices = append(g.Indices, uint32(i), uint32(i+1), 0)
	}
	g.ComputeBoundingBox()
	return g
}
