package geometry

import (
	"math"

	"github.com/Carmen-Shannon/oxy-card/common"
)

// arcLengthDivisions is the resolution of the arc-length lookup table.
const arcLengthDivisions = 200

// CubicBezier3 is a cubic Bezier curve in 3D with arc-length parameterized sampling.
type CubicBezier3 struct {
	P0, P1, P2, P3 [3]float64

	lengths []float64
}

// NewCubicBezier3 creates a curve from its start, two control points and end.
func NewCubicBezier3(p0, p1, p2, p3 [3]float64) *CubicBezier3 {
	return &CubicBezier3{P0: p0, P1: p1, P2: p2, P3: p3}
}

// Point evaluates the curve at parameter t in [0, 1].
func (c *CubicBezier3) Point(t float64) [3]float64 {
	k := 1 - t
	b0 := k * k * k
	b1 := 3 * k * k * t
	b2 := 3 * k * t * t
	b3 := t * t * t
	var out [3]float64
	for i := range 3 {
		out[i] = b0*c.P0[i] + b1*c.P1[i] + b2*c.P2[i] + b3*c.P3[i]
	}
	return out
}

// Derivative evaluates dP/dt at parameter t.
func (c *CubicBezier3) Derivative(t float64) [3]float64 {
	k := 1 - t
	var out [3]float64
	for i := range 3 {
		out[i] = 3*k*k*(c.P1[i]-c.P0[i]) + 6*k*t*(c.P2[i]-c.P1[i]) + 3*t*t*(c.P3[i]-c.P2[i])
	}
	return out
}

// Length returns the approximate arc length of the curve.
func (c *CubicBezier3) Length() float64 {
	l := c.arcLengths()
	return l[len(l)-1]
}

// PointAt evaluates the curve at fraction u of its arc length.
func (c *CubicBezier3) PointAt(u float64) [3]float64 {
	return c.Point(c.uToT(u))
}

// TangentAt returns the unit tangent at fraction u of the arc length.
func (c *CubicBezier3) TangentAt(u float64) [3]float64 {
	return normalize(c.Derivative(c.uToT(u)))
}

func (c *CubicBezier3) arcLengths() []float64 {
	if c.lengths != nil {
		return c.lengths
	}
	c.lengths = make([]float64, arcLengthDivisions+1)
	last := c.Point(0)
	sum := 0.0
	for i := 1; i <= arcLengthDivisions; i++ {
		p := c.Point(float64(i) / arcLengthDivisions)
		sum += math.Sqrt(sq(p[0]-last[0]) + sq(p[1]-last[1]) + sq(p[2]-last[2]))
		c.lengths[i] = sum
		last = p
	}
	return c.lengths
}

// uToT maps an arc-length fraction to the curve parameter by binary search over the lookup table.
func (c *CubicBezier3) uToT(u float64) float64 {
	u = common.Clamp(u, 0, 1)
	lengths := c.arcLengths()
	total := lengths[len(lengths)-1]
	if total == 0 {
		return u
	}
	target := u * total

	lo, hi := 0, len(lengths)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case lengths[mid] < target:
			lo = mid + 1
		case lengths[mid] > target:
			hi = mid - 1
		default:
			return float64(mid) / float64(len(lengths)-1)
		}
	}
	i := max(hi, 0)
	if i >= len(lengths)-1 {
		return 1
	}
	before := lengths[i]
	segment := lengths[i+1] - before
	frac := 0.0
	if segment > 0 {
		frac = (target - before) / segment
	}
	return (float64(i) + frac) / float64(len(lengths)-1)
}

func sq(v float64) float64 { return v * v }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{
		a[1]*b[2] - a[2]*b[1],
		a[2]*b[0] - a[0]*b[2],
		a[0]*b[1] - a[1]*b[0],
	}
}

func dot(a, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

func normalize(v [3]float64) [3]float64 {
	l := math.Sqrt(dot(v, v))
	if l == 0 {
		return v
	}
	return [3]float64{v[0] / l, v[1] / l, v[2] / l}
}
