package throttle

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine"
)

func TestRateLimiterFirstSamplePerWindow(t *testing.T) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	r := NewRateLimiter(16*time.Millisecond, WithClock(clock))

	steps := []struct {
		advance time.Duration
		want    bool
	}{
		{0, true},
		{5 * time.Millisecond, false},
		{10 * time.Millisecond, false},
		{1 * time.Millisecond, true}, // 16ms after the first admission
		{15 * time.Millisecond, false},
		{40 * time.Millisecond, true},
	}
	for i, s := range steps {
		clock.Advance(s.advance)
		if got := r.Allow(); got != s.want {
			t.Errorf("step %d: Allow() = %v, want %v", i, got, s.want)
		}
	}
}

func TestRateLimiterBurstAdmitsOne(t *testing.T) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	r := NewRateLimiter(16*time.Millisecond, WithClock(clock))

	admitted := 0
	for range 10 {
		if r.Allow() {
			admitted++
		}
		clock.Advance(time.Millisecond)
	}
	if admitted != 1 {
		t.Errorf("admitted %d samples in a 10ms burst, want 1", admitted)
	}
}

func TestRateLimiterConfigurableWindow(t *testing.T) {
	clock := engine.NewMockClock(time.Unix(0, 0))
	r := NewRateLimiter(100*time.Millisecond, WithClock(clock))
	if r.Window() != 100*time.Millisecond {
		t.Fatalf("Window() = %v", r.Window())
	}
	r.Allow()
	clock.Advance(50 * time.Millisecond)
	if r.Allow() {
		t.Error("sample inside a 100ms window admitted")
	}
	r.Reset()
	if !r.Allow() {
		t.Error("sample after Reset dropped")
	}
}

func TestRateLimiterZeroWindowAdmitsAll(t *testing.T) {
	r := NewRateLimiter(0, WithClock(engine.NewMockClock(time.Unix(0, 0))))
	for i := range 3 {
		if !r.Allow() {
			t.Errorf("sample %d dropped with zero window", i)
		}
	}
}
