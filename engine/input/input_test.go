package input

import (
	"math"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
)

type recorder struct {
	last  animation.Target
	calls int
}

func (r *recorder) SetTarget(t animation.Target) {
	r.last = t
	r.calls++
}

var rect = common.Viewport{X: 100, Y: 50, Width: 800, Height: 400}

func TestTilt(t *testing.T) {
	tests := []struct {
		name   string
		x, y   float64
		invert bool
		want   animation.Target
	}{
		{"center", 500, 250, false, animation.Target{}},
		{"right edge", 900, 250, false, animation.Target{RotationY: 0.3}},
		{"left edge", 100, 250, false, animation.Target{RotationY: -0.3}},
		{"bottom edge", 500, 450, false, animation.Target{RotationX: -0.3}},
		{"bottom edge inverted", 500, 450, true, animation.Target{RotationX: 0.3}},
		{"outside clamps", 5000, -5000, false, animation.Target{RotationX: 0.3, RotationY: 0.3}},
		{"quarter", 700, 350, false, animation.Target{RotationX: -0.15, RotationY: 0.15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tilt(tt.x, tt.y, rect, DefaultTiltFactor, tt.invert)
			if math.Abs(got.RotationX-tt.want.RotationX) > 1e-12 || math.Abs(got.RotationY-tt.want.RotationY) > 1e-12 {
				t.Errorf("Tilt = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTiltBoundedInsideRect(t *testing.T) {
	for x := rect.X; x <= rect.X+rect.Width; x += 37 {
		for y := rect.Y; y <= rect.Y+rect.Height; y += 23 {
			got := Tilt(x, y, rect, DefaultTiltFactor, false)
			if math.Abs(got.RotationX) > 0.3 || math.Abs(got.RotationY) > 0.3 {
				t.Fatalf("Tilt(%v, %v) = %+v exceeds 0.3", x, y, got)
			}
		}
	}
}

func TestTiltEmptyRect(t *testing.T) {
	if got := Tilt(10, 10, common.Viewport{}, DefaultTiltFactor, false); got != (animation.Target{}) {
		t.Errorf("Tilt over empty rect = %+v", got)
	}
}

func TestPointerMoveThrottled(t *testing.T) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	rec := &recorder{}
	c := NewController(rec, WithClock(clock))

	if !c.HandlePointerMove(900, 250, rect) {
		t.Fatal("first sample dropped")
	}
	clock.Advance(5 * time.Millisecond)
	if c.HandlePointerMove(100, 250, rect) {
		t.Error("sample inside window applied")
	}
	if rec.last.RotationY != 0.3 || rec.calls != 1 || c.Dropped() != 1 {
		t.Errorf("target = %+v calls = %d dropped = %d", rec.last, rec.calls, c.Dropped())
	}

	clock.Advance(11 * time.Millisecond)
	if !c.HandlePointerMove(100, 250, rect) {
		t.Error("sample after window dropped")
	}
	if rec.last.RotationY != -0.3 {
		t.Errorf("target after window = %+v", rec.last)
	}
}

func TestPointerLeaveResetsImmediately(t *testing.T) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	rec := &recorder{}
	c := NewController(rec, WithClock(clock))

	c.HandlePointerMove(900, 450, rect)
	c.HandlePointerLeave()
	if rec.last != (animation.Target{}) || rec.calls != 2 {
		t.Errorf("after leave target = %+v calls = %d", rec.last, rec.calls)
	}
}

func TestTiltFactorOption(t *testing.T) {
	rec := &recorder{}
	c := NewController(rec, WithTiltFactor(0.5))
	c.HandlePointerMove(900, 250, rect)
	if rec.last.RotationY != 0.5 {
		t.Errorf("RotationY = %v, want 0.5", rec.last.RotationY)
	}
}
