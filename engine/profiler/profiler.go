package profiler

import (
	"log"
	"runtime"
	"time"
)

// Profiler tracks refresh rate, frame callback load and memory statistics of the frame loop.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	refreshCount   int
	callbackCount  int
	taskCount      int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	now            func() time.Time
}

// Snapshot is the set of rates computed for one reporting interval.
type Snapshot struct {
	RefreshRate  float64 // display refreshes per second
	CallbackRate float64 // frame callbacks per second
	TaskRate     float64 // posted host events per second
	HeapMB       float64
	AllocRateMB  float64
	GCCount      uint32
}

// NewProfiler creates a new Profiler reporting once per second.
//
// Parameters:
//   - now: the time source, time.Now when nil
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(now func() time.Time) *Profiler {
	if now == nil {
		now = time.Now
	}
	return &Profiler{
		lastTime:       now(),
		updateInterval: time.Second,
		now:            now,
	}
}

// SetInterval changes the reporting interval. Non-positive values are ignored.
func (p *Profiler) SetInterval(d time.Duration) {
	if d > 0 {
		p.updateInterval = d
	}
}

// RecordTask counts one posted host event.
func (p *Profiler) RecordTask() {
	p.taskCount++
}

// Tick should be called once per display refresh with the number of frame callbacks that ran.
// Logs statistics when the update interval has elapsed.
//
// Parameters:
//   - callbacks: frame callbacks dispatched during this refresh
//
// Returns:
//   - *Snapshot: the logged statistics, or nil if the interval has not elapsed
func (p *Profiler) Tick(callbacks int) *Snapshot {
	p.refreshCount++
	p.callbackCount += callbacks

	current := p.now()
	elapsed := current.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return nil
	}

	runtime.ReadMemStats(&p.memStats)
	seconds := elapsed.Seconds()
	snap := &Snapshot{
		RefreshRate:  float64(p.refreshCount) / seconds,
		CallbackRate: float64(p.callbackCount) / seconds,
		TaskRate:     float64(p.taskCount) / seconds,
		HeapMB:       float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB:  float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / seconds,
		GCCount:      p.memStats.NumGC,
	}

	log.Printf("[Profiler] Refresh: %.2f/s | Frames: %.2f/s | Events: %.2f/s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d",
		snap.RefreshRate, snap.CallbackRate, snap.TaskRate, snap.HeapMB, snap.AllocRateMB, snap.GCCount)

	p.refreshCount = 0
	p.callbackCount = 0
	p.taskCount = 0
	p.lastTime = current
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return snap
}
