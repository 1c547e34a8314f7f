package animation

import (
	"math"
	"time"
)

// TimeScale converts scheduler milliseconds into animation time.
const TimeScale = 0.0003

// Smoothing factors applied per frame.
const (
	TiltSmoothing  = 0.1
	FocusSmoothing = 0.04
)

// Pose is the animated transform and opacity of one backdrop mesh.
type Pose struct {
	Position [3]float64
	Rotation [3]float64
	Scale    float64
	Opacity  float64
}

// AnimationTime returns the animation time for a scheduler timestamp.
//
// Parameters:
//   - ts: time since the scheduler started
//
// Returns:
//   - float64: milliseconds times TimeScale
func AnimationTime(ts time.Duration) float64 {
	return float64(ts) / float64(time.Millisecond) * TimeScale
}

// AuroraPose returns the pose of streak i of n at animation time t. The streaks fan out
// around the middle of the set, so the twist depends on n.
//
// Parameters:
//   - i: the streak index
//   - n: the number of streaks
//   - t: the animation time
//
// Returns:
//   - Pose: the streak pose
func AuroraPose(i, n int, t float64) Pose {
	fi := float64(i)
	return Pose{
		Position: [3]float64{
			-1.5 + fi*0.6 + math.Sin(t+fi*0.8)*0.4,
			0.8 - fi*0.3 + math.Cos(t+fi*1.2)*0.3,
			-2.5 - fi*0.3 + math.Sin(t+fi*0.5)*0.2,
		},
		Rotation: [3]float64{
			math.Sin(t+fi*0.7) * 0.05,
			math.Cos(t+fi*0.9) * 0.05,
			AuroraTwist(i, n) + math.Sin(t+fi*1.8)*0.1,
		},
		Scale:   1 + 0.1*math.Sin(t+fi*2.1),
		Opacity: 0.12 + 0.1*math.Sin(t+fi*1.5),
	}
}

// AuroraTwist returns the base roll of streak i of n, before any random offset.
//
// Parameters:
//   - i: the streak index
//   - n: the number of streaks
//
// Returns:
//   - float64: the roll in radians
func AuroraTwist(i, n int) float64 {
	return math.Pi / 6 * (float64(i) - float64(n)/2)
}

// ParticlePose returns the pose of particle i at animation time t.
//
// Parameters:
//   - i: the particle index
//   - t: the animation time
//
// Returns:
//   - Pose: the particle pose
func ParticlePose(i int, t float64) Pose {
	fi := float64(i)
	return Pose{
		Position: [3]float64{
			-2 + math.Sin(t+fi*0.4)*2,
			-1 + math.Cos(t+fi*0.7)*1.5,
			-3 + math.Sin(t+fi*0.3),
		},
		Scale:   1 + 0.3*math.Sin(t+fi*1.3),
		Opacity: 0.2 + 0.3*math.Sin(t+fi*0.6),
	}
}

// Smooth moves current a fraction k of the way toward target.
//
// Parameters:
//   - current: the current value
//   - target: the value being approached
//   - k: the fraction in (0, 1]
//
// Returns:
//   - float64: current + (target-current)*k
func Smooth(current, target, k float64) float64 {
	return current + (target-current)*k
}

// StepsToConverge returns how many Smooth steps bring an initial error e0 below eps.
// The error after n steps is e0*(1-k)^n.
//
// Parameters:
//   - e0: the initial absolute error
//   - eps: the tolerance
//   - k: the smoothing factor in (0, 1]
//
// Returns:
//   - int: the smallest n with e0*(1-k)^n < eps, 0 if e0 is already below eps
func StepsToConverge(e0, eps, k float64) int {
	e0 = math.Abs(e0)
	if e0 < eps {
		return 0
	}
	if k >= 1 {
		return 1
	}
	if k <= 0 || eps <= 0 {
		return math.MaxInt
	}
	n := math.Floor(math.Log(eps/e0)/math.Log(1-k)) + 1
	return int(n)
}
