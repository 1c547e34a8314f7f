package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-card/engine/resource"
)

// Geometry is an indexed triangle list in model space. Renderers upload it on first use and
// release their copy when the geometry is disposed.
type Geometry struct {
	resource.Handle

	// Name is the geometry identifier (for debugging).
	Name string

	// Vertices are the mesh vertices.
	Vertices []GPUVertex

	// Indices are the triangle indices, three per triangle, counter-clockwise front faces.
	Indices []uint32

	// BoundingMin is the minimum corner of the axis-aligned bounding box.
	BoundingMin [3]float32

	// BoundingMax is the maximum corner of the axis-aligned bounding box.
	BoundingMax [3]float32
}

// VertexCount returns the number of vertices.
func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

// TriangleCount returns the number of triangles.
func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

// ComputeBoundingBox recomputes BoundingMin and BoundingMax from the vertex positions.
func (g *Geometry) ComputeBoundingBox() {
	if len(g.Vertices) == 0 {
		g.BoundingMin = [3]float32{}
		g.BoundingMax = [3]float32{}
		return
	}
	lo := [3]float32{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32}
	hi := [3]float32{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32}
	for _, v := range g.Vertices {
		for k := range 3 {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	g.BoundingMin = lo
	g.BoundingMax = hi
}

// RemapUVs rewrites every texture coordinate from the vertex position's place inside the XY
// bounding box, so a texture spans the whole shape exactly once:
// u = (x-minX)/(maxX-minX), v = (y-minY)/(maxY-minY).
// A degenerate extent maps that coordinate to 0.
func (g *Geometry) RemapUVs() {
	g.ComputeBoundingBox()
	w := g.BoundingMax[0] - g.BoundingMin[0]
	h := g.BoundingMax[1] - g.BoundingMin[1]
	for i := range g.Vertices {
		p := g.Vertices[i].Position
		var u, v float32
		if w > 0 {
			u = (p[0] - g.BoundingMin[0]) / w
		}
		if h > 0 {
			v = (p[1] - g.BoundingMin[1]) / h
		}
		g.Vertices[i].TexCoord = [2]float32{u, v}
	}
}

// Area returns the summed area of all triangles.
func (g *Geometry) Area() float64 {
	total := 0.0
	for t := 0; t+2 < len(g.Indices); t += 3 {
		a := g.Vertices[g.Indices[t]].Position
		b := g.Vertices[g.Indices[t+1]].Position
		c := g.Vertices[g.Indices[t+2]].Position
		ab := [3]float64{float64(b[0] - a[0]), float64(b[1] - a[1]), float64(b[2] - a[2])}
		ac := [3]float64{float64(c[0] - a[0]), float64(c[1] - a[1]), float64(c[2] - a[2])}
		cx := ab[1]*ac[2] - ab[2]*ac[1]
		cy := ab[2]*ac[0] - ab[0]*ac[2]
		cz := ab[0]*ac[1] - ab[1]*ac[0]
		total += 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
	}
	return total
}

func vertex(x, y, z, nx, ny, nz, u, v float64) GPUVertex {
	return GPUVertex{
		Position: [3]float32{float32(x), float32(y), float32(z)},
		Normal:   [3]float32{float32(nx), float32(ny), float32(nz)},
		TexCoord: [2]float32{float32(u), float32(v)},
	}
}
