package engine

import (
	"sync"
	"testing"
	"time"
)

func TestManualSchedulerRunsInRequestOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []int
	for i := range 3 {
		s.RequestFrame(func(time.Duration) { order = append(order, i) })
	}

	if n := s.Step(16 * time.Millisecond); n != 3 {
		t.Fatalf("Step ran %d callbacks, want 3", n)
	}
	for i, v := range order {
		if v != i {
			t.Errorf("order[%d] = %d, want %d", i, v, i)
		}
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d after Step, want 0", s.Pending())
	}
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	h := s.RequestFrame(func(time.Duration) { ran = true })
	s.CancelFrame(h)
	s.CancelFrame(h)
	s.CancelFrame(FrameHandle(999))

	if n := s.Step(0); n != 0 {
		t.Errorf("Step ran %d callbacks after cancel, want 0", n)
	}
	if ran {
		t.Error("cancelled callback ran")
	}
}

func TestManualSchedulerRequeueLandsInNextStep(t *testing.T) {
	s := NewManualScheduler()
	count := 0
	var tick FrameCallback
	tick = func(time.Duration) {
		count++
		s.RequestFrame(tick)
	}
	s.RequestFrame(tick)

	s.Step(0)
	if count != 1 {
		t.Fatalf("count = %d after first Step, want 1", count)
	}
	s.Step(0)
	if count != 2 {
		t.Fatalf("count = %d after second Step, want 2", count)
	}
	if s.Frames() != 2 {
		t.Errorf("Frames() = %d, want 2", s.Frames())
	}
}

func TestManualSchedulerPassesTimestamp(t *testing.T) {
	s := NewManualScheduler()
	var got time.Duration
	s.RequestFrame(func(ts time.Duration) { got = ts })
	s.Step(1234 * time.Millisecond)
	if got != 1234*time.Millisecond {
		t.Errorf("timestamp = %v, want 1.234s", got)
	}
}

func TestMockClockAdvance(t *testing.T) {
	start := time.Unix(100, 0)
	c := NewMockClock(start)
	c.Advance(250 * time.Millisecond)
	if got := c.Now().Sub(start); got != 250*time.Millisecond {
		t.Errorf("elapsed = %v, want 250ms", got)
	}
	c.Set(start)
	if !c.Now().Equal(start) {
		t.Errorf("Set did not move the clock back")
	}
}

func TestLoopDispatchesFramesAndTasks(t *testing.T) {
	l := NewLoop(WithFrameRate(500))
	l.Start()
	defer func() {
		l.Quit()
		l.Wait()
	}()

	var wg sync.WaitGroup
	wg.Add(2)
	l.RequestFrame(func(time.Duration) { wg.Done() })
	if !l.Post(func() { wg.Done() }) {
		t.Fatal("Post rejected task on a running loop")
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("frame callback and task did not run")
	}
}

func TestLoopQuitIsIdempotent(t *testing.T) {
	l := NewLoop()
	l.Start()
	l.Quit()
	l.Quit()
	l.Wait()

	if l.Running() {
		t.Error("Running() = true after Quit")
	}
	if l.Post(func() {}) {
		t.Error("Post accepted a task after Quit")
	}
}

func TestLoopRecoversFromPanic(t *testing.T) {
	l := NewLoop(WithFrameRate(500))
	l.Start()
	l.Post(func() { panic("boom") })

	done := make(chan struct{})
	go func() {
		l.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not quit after a panicking task")
	}
}
