package geometry

import (
	"math"
)

// DefaultCurveDivisions is the number of line segments each curved path segment is flattened into.
const DefaultCurveDivisions = 12

type segmentKind int

const (
	segmentLine segmentKind = iota
	segmentQuadratic
)

type segment struct {
	kind    segmentKind
	from    [2]float64
	control [2]float64
	to      [2]float64
}

// Shape is a closed 2D outline built from straight and quadratic segments.
type Shape struct {
	start    [2]float64
	cursor   [2]float64
	segments []segment
}

// NewShape creates an empty Shape with the cursor at the origin.
func NewShape() *Shape {
	return &Shape{}
}

// MoveTo starts the outline at (x, y). Segments added before MoveTo are discarded.
//
// Parameters:
//   - x, y: the starting point
//
// Returns:
//   - *Shape: the shape, for chaining
func (s *Shape) MoveTo(x, y float64) *Shape {
	s.start = [2]float64{x, y}
	s.cursor = s.start
	s.segments = s.segments[:0]
	return s
}

// LineTo adds a straight segment from the cursor to (x, y).
func (s *Shape) LineTo(x, y float64) *Shape {
	to := [2]float64{x, y}
	s.segments = append(s.segments, segment{kind: segmentLine, from: s.cursor, to: to})
	s.cursor = to
	return s
}

// QuadraticCurveTo adds a quadratic Bezier segment from the cursor to (x, y) with control point (cx, cy).
func (s *Shape) QuadraticCurveTo(cx, cy, x, y float64) *Shape {
	to := [2]float64{x, y}
	s.segments = append(s.segments, segment{kind: segmentQuadratic, from: s.cursor, control: [2]float64{cx, cy}, to: to})
	s.cursor = to
	return s
}

// Points flattens the outline into a closed polygon. Straight segments contribute their end
// point, curved segments contribute divisions points. Consecutive duplicates and the closing
// duplicate of the start point are dropped.
//
// Parameters:
//   - divisions: points per curved segment (DefaultCurveDivisions if <= 0)
//
// Returns:
//   - [][2]float64: the polygon vertices in path order
func (s *Shape) Points(divisions int) [][2]float64 {
	if divisions <= 0 {
		divisions = DefaultCurveDivisions
	}
	points := [][2]float64{s.start}
	push := func(p [2]float64) {
		if samePoint(points[len(points)-1], p) {
			return
		}
		points = append(points, p)
	}

	for _, seg := range s.segments {
		switch seg.kind {
		case segmentLine:
			push(seg.to)
		case segmentQuadratic:
			for i := 1; i <= divisions; i++ {
				push(quadraticPoint(seg.from, seg.control, seg.to, float64(i)/float64(divisions)))
			}
		}
	}

	if len(points) > 1 && samePoint(points[0], points[len(points)-1]) {
		points = points[:len(points)-1]
	}
	return points
}

// RoundedRectangle returns a rectangle outline centered on the origin with quadratic corners.
// The path starts at the bottom edge and runs counter-clockwise.
//
// Parameters:
//   - width, height: the outer extent
//   - radius: the corner inset, clamped to half the smaller side
//
// Returns:
//   - *Shape: the outline
func RoundedRectangle(width, height, radius float64) *Shape {
	radius = max(0, min(radius, width/2, height/2))
	hw, hh := width/2, height/2
	s := NewShape()
	s.MoveTo(-hw+radius, -hh)
	s.LineTo(hw-radius, -hh)
	s.QuadraticCurveTo(hw, -hh, hw, -hh+radius)
	s.LineTo(hw, hh-radius)
	s.QuadraticCurveTo(hw, hh, hw-radius, hh)
	s.LineTo(-hw+radius, hh)
	s.QuadraticCurveTo(-hw, hh, -hw, hh-radius)
	s.LineTo(-hw, -hh+radius)
	s.QuadraticCurveTo(-hw, -hh, -hw+radius, -hh)
	return s
}

func quadraticPoint(p0, c, p1 [2]float64, t float64) [2]float64 {
	k := 1 - t
	return [2]float64{
		k*k*p0[0] + 2*k*t*c[0] + t*t*p1[0],
		k*k*p0[1] + 2*k*t*c[1] + t*t*p1[1],
	}
}

func samePoint(a, b [2]float64) bool {
	return math.Abs(a[0]-b[0]) < 1e-10 && math.Abs(a[1]-b[1]) < 1e-10
}

// SignedArea returns the shoelace area of a polygon; positive when counter-clockwise.
func SignedArea(points [][2]float64) float64 {
	area := 0.0
	n := len(points)
	for i := range n {
		a := points[i]
		b := points[(i+1)%n]
		area += a[0]*b[1] - b[0]*a[1]
	}
	return area / 2
}

// Triangulate splits a simple polygon into triangles by ear clipping. The returned indices
// refer to the input points and wind counter-clockwise regardless of the input winding.
//
// Parameters:
//   - points: the polygon vertices, without a closing duplicate
//
// Returns:
//   - []uint32: three indices per triangle, len(points)-2 triangles for a valid polygon
func Triangulate(points [][2]float64) []uint32 {
	n := len(points)
	if n < 3 {
		return nil
	}

	remaining := make([]int, n)
	for i := range remaining {
		remaining[i] = i
	}
	if SignedArea(points) < 0 {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			remaining[i], remaining[j] = remaining[j], remaining[i]
		}
	}

	indices := make([]uint32, 0, (n-2)*3)
	guard := 0
	for len(remaining) > 3 {
		m := len(remaining)
		clipped := false
		for i := range m {
			prev := remaining[(i+m-1)%m]
			cur := remaining[i]
			next := remaining[(i+1)%m]
			if !isEar(points, remaining, prev, cur, next) {
				continue
			}
			indices = append(indices, uint32(prev), uint32(cur), uint32(next))
			remaining = append(remaining[:i], remaining[i+1:]...)
			clipped = true
			break
		}
		if !clipped {
			// Degenerate input (collinear runs or self-touching); clip the first vertex so
			// the loop always terminates.
			guard++
			if guard > n {
				break
			}
			indices = append(indices, uint32(remaining[m-1]), uint32(remaining[0]), uint32(remaining[1]))
			remaining = remaining[1:]
		}
	}
	if len(remaining) == 3 {
		indices = append(indices, uint32(remaining[0]), uint32(remaining[1]), uint32(remaining[2]))
	}
	return indices
}

func isEar(points [][2]float64, remaining []int, prev, cur, next int) bool {
	a, b, c := points[prev], points[cur], points[next]
	if cross2(a, b, c) <= 1e-12 {
		return false
	}
	for _, idx := range remaining {
		if idx == prev || idx == cur || idx == next {
			continue
		}
		if pointInTriangle(points[idx], a, b, c) {
			return false
		}
	}
	return true
}

func cross2(a, b, c [2]float64) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func pointInTriangle(p, a, b, c [2]float64) bool {
	return cross2(a, b, p) >= 0 && cross2(b, c, p) >= 0 && cross2(c, a, p) >= 0
}

// NewShapeGeometry triangulates a shape into a flat geometry on the z = 0 plane facing +Z.
// Texture coordinates are the raw XY positions; call RemapUVs to normalize them to the bounds.
//
// Parameters:
//   - shape: the outline
//   - divisions: points per curved segment (DefaultCurveDivisions if <= 0)
//
// Returns:
//   - *Geometry: the triangulated geometry
func NewShapeGeometry(shape *Shape, divisions int) *Geometry {
	points := shape.Points(divisions)
	g := &Geometry{Name: "shape"}
	g.Vertices = make([]GPUVertex, len(points))
	for i, p := range points {
		g.Vertices[i] = vertex(p[0], p[1], 0, 0, 0, 1, p[0], p[1])
	}
	g.Indices = Triangulate(points)
	g.ComputeBoundingBox()
	return g
}
