package camera

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func newCardCamera() Camera {
	return NewCamera(
		WithBounds(-2, 2, 1.25, -1.25),
		WithNear(0.001),
		WithFar(1000),
		WithPosition(0, 0, 8),
		WithTarget(0, 0, 0),
	)
}

func TestProjectFrustumCorners(t *testing.T) {
	c := newCardCamera()
	tests := []struct {
		p    [3]float32
		want [2]float32
	}{
		{[3]float32{0, 0, 0}, [2]float32{0, 0}},
		{[3]float32{2, 1.25, 0}, [2]float32{1, 1}},
		{[3]float32{-2, -1.25, 0}, [2]float32{-1, -1}},
	}
	for _, tt := range tests {
		got := c.Project(tt.p)
		if !near(got[0], tt.want[0]) || !near(got[1], tt.want[1]) {
			t.Errorf("Project(%v) = %v, want %v", tt.p, got, tt.want)
		}
		if got[2] < 0 || got[2] > 1 {
			t.Errorf("Project(%v) depth %v outside [0,1]", tt.p, got[2])
		}
	}
}

func TestBoundsApplyOnUpdate(t *testing.T) {
	c := newCardCamera()
	c.SetBounds(-4, 4, 1.25, -1.25)
	if got := c.AppliedBounds().Right; got != 2 {
		t.Errorf("bounds applied before UpdateProjectionMatrix: right = %v", got)
	}
	c.UpdateProjectionMatrix()
	if got := c.AppliedBounds().Right; got != 4 {
		t.Errorf("applied right = %v, want 4", got)
	}
	if p := c.Project([3]float32{4, 0, 0}); !near(p[0], 1) {
		t.Errorf("Project right edge = %v, want x=1", p)
	}
}

func TestNearerPointsHaveSmallerDepth(t *testing.T) {
	c := newCardCamera()
	front := c.Project([3]float32{0, 0, 0.08})
	back := c.Project([3]float32{0, 0, -3})
	if !(front[2] < back[2]) {
		t.Errorf("depth front %v not less than back %v", front[2], back[2])
	}
}
