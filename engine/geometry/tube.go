package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-card/common"
)

// Path3 is a parametric 3D curve sampled by arc-length fraction.
type Path3 interface {
	PointAt(u float64) [3]float64
	TangentAt(u float64) [3]float64
}

// FrenetFrames holds the tangent, normal and binormal of a curve at evenly spaced samples.
type FrenetFrames struct {
	Tangents  [][3]float64
	Normals   [][3]float64
	Binormals [][3]float64
}

// ComputeFrenetFrames builds rotation-minimizing frames along path. The first normal is picked
// perpendicular to the tangent's smallest component; each following normal is the previous one
// rotated by the angle between consecutive tangents, so the tube never twists.
//
// Parameters:
//   - path: the curve
//   - segments: the number of intervals (segments+1 frames are produced)
//   - closed: whether to distribute any residual twist so the last frame matches the first
//
// Returns:
//   - FrenetFrames: the frames
func ComputeFrenetFrames(path Path3, segments int, closed bool) FrenetFrames {
	f := FrenetFrames{
		Tangents:  make([][3]float64, segments+1),
		Normals:   make([][3]float64, segments+1),
		Binormals: make([][3]float64, segments+1),
	}
	for i := 0; i <= segments; i++ {
		f.Tangents[i] = path.TangentAt(float64(i) / float64(segments))
	}

	t0 := f.Tangents[0]
	axis := [3]float64{1, 0, 0}
	smallest := math.MaxFloat64
	if ax := math.Abs(t0[0]); ax <= smallest {
		smallest = ax
		axis = [3]float64{1, 0, 0}
	}
	if ay := math.Abs(t0[1]); ay <= smallest {
		smallest = ay
		axis = [3]float64{0, 1, 0}
	}
	if az := math.Abs(t0[2]); az <= smallest {
		axis = [3]float64{0, 0, 1}
	}
	vec := normalize(cross(t0, axis))
	f.Normals[0] = cross(t0, vec)
	f.Binormals[0] = cross(t0, f.Normals[0])

	for i := 1; i <= segments; i++ {
		f.Normals[i] = f.Normals[i-1]
		f.Binormals[i] = f.Binormals[i-1]
		v := cross(f.Tangents[i-1], f.Tangents[i])
		if math.Sqrt(dot(v, v)) > 1e-9 {
			v = normalize(v)
			theta := math.Acos(common.Clamp(dot(f.Tangents[i-1], f.Tangents[i]), -1, 1))
			f.Normals[i] = rotateAround(f.Normals[i], v, theta)
		}
		f.Binormals[i] = cross(f.Tangents[i], f.Normals[i])
	}

	if closed {
		theta := math.Acos(common.Clamp(dot(f.Normals[0], f.Normals[segments]), -1, 1)) / float64(segments)
		if dot(f.Tangents[0], cross(f.Normals[0], f.Normals[segments])) > 0 {
			theta = -theta
		}
		for i := 1; i <= segments; i++ {
			f.Normals[i] = rotateAround(f.Normals[i], f.Tangents[i], theta*float64(i))
			f.Binormals[i] = cross(f.Tangents[i], f.Normals[i])
		}
	}
	return f
}

// rotateAround rotates v about the unit axis k by angle (Rodrigues' formula).
func rotateAround(v, k [3]float64, angle float64) [3]float64 {
	c, s := math.Cos(angle), math.Sin(angle)
	kv := cross(k, v)
	kd := dot(k, v) * (1 - c)
	return [3]float64{
		v[0]*c + kv[0]*s + k[0]*kd,
		v[1]*c + kv[1]*s + k[1]*kd,
		v[2]*c + kv[2]*s + k[2]*kd,
	}
}

// NewTubeGeometry sweeps a circle of radius along path.
//
// Parameters:
//   - path: the spine curve
//   - tubularSegments: intervals along the curve
//   - radius: the tube radius
//   - radialSegments: intervals around the circumference
//   - closed: whether the spine is a closed loop (ends are never capped)
//
// Returns:
//   - *Geometry: (tubularSegments+1)*(radialSegments+1) vertices, tubularSegments*radialSegments*2 triangles
func NewTubeGeometry(path Path3, tubularSegments int, radius float64, radialSegments int, closed bool) *Geometry {
	tubularSegments = max(tubularSegments, 1)
	radialSegments = max(radialSegments, 3)
	frames := ComputeFrenetFrames(path, tubularSegments, closed)

	g := &Geometry{Name: "tube"}
	g.Vertices = make([]GPUVertex, 0, (tubularSegments+1)*(radialSegments+1))
	for i := 0; i <= tubularSegments; i++ {
		u := float64(i) / float64(tubularSegments)
		if closed && i == tubularSegments {
			u = 0
		}
		p := path.PointAt(u)
		n, b := frames.Normals[i], frames.Binormals[i]
		for j := 0; j <= radialSegments; j++ {
			v := float64(j) / float64(radialSegments) * 2 * math.Pi
			sin, cos := math.Sin(v), -math.Cos(v)
			normal := normalize([3]float64{
				cos*n[0] + sin*b[0],
				cos*n[1] + sin*b[1],
				cos*n[2] + sin*b[2],
			})
			g.Vertices = append(g.Vertices, vertex(
				p[0]+radius*normal[0], p[1]+radius*normal[1], p[2]+radius*normal[2],
				normal[0], normal[1], normal[2],
				float64(i)/float64(tubularSegments), float64(j)/float64(radialSegments),
			))
		}
	}

	stride := uint32(radialSegments + 1)
	g.Indices = make([]uint32, 0, tubularSegments*radialSegments*6)
	for j := uint32(1); j <= uint32(tubularSegments); j++ {
		for i := uint32(1); i <= uint32(radialSegments); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			g.Indices = append(g.Indices, a, b, d, b, c, d)
		}
	}
	g.ComputeBoundingBox()
	return g
}
