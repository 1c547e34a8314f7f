package profiler

import (
	"testing"
	"time"
)

func TestTickReportsAfterInterval(t *testing.T) {
	now := time.Unix(0, 0)
	p := NewProfiler(func() time.Time { return now })
	p.SetInterval(500 * time.Millisecond)

	for range 4 {
		p.RecordTask()
		now = now.Add(100 * time.Millisecond)
		if snap := p.Tick(2); snap != nil {
			t.Fatalf("snapshot before interval elapsed: %+v", snap)
		}
	}

	now = now.Add(100 * time.Millisecond)
	snap := p.Tick(2)
	if snap == nil {
		t.Fatal("expected snapshot after interval")
	}
	if snap.RefreshRate != 10 {
		t.Errorf("RefreshRate = %v, want 10", snap.RefreshRate)
	}
	if snap.CallbackRate != 20 {
		t.Errorf("CallbackRate = %v, want 20", snap.CallbackRate)
	}
	if snap.TaskRate != 8 {
		t.Errorf("TaskRate = %v, want 8", snap.TaskRate)
	}

	now = now.Add(100 * time.Millisecond)
	if p.Tick(1) != nil {
		t.Error("counters were not reset after a report")
	}
}

func TestSetIntervalIgnoresNonPositive(t *testing.T) {
	p := NewProfiler(nil)
	p.SetInterval(0)
	if p.updateInterval != time.Second {
		t.Errorf("updateInterval = %v, want 1s", p.updateInterval)
	}
}
