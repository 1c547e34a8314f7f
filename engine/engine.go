package engine

import (
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/oxy-card/engine/profiler"
)

// loop implements the Loop interface.
// A single dispatcher goroutine runs posted host events and frame callbacks one at a time.
type loop struct {
	mu *sync.Mutex

	frameRateChannel chan time.Duration
	tasks            chan func()

	running bool
	wg      sync.WaitGroup

	quitChannel chan struct{}
	quitOnce    sync.Once

	clock     Clock
	startTime time.Time
	frames    frameQueue

	profiler         *profiler.Profiler
	profilingEnabled atomic.Bool

	frameInterval time.Duration
	taskQueueSize int
}

// Loop is the single-threaded event loop that stands in for a host's display-refresh and
// event queue. Host events are posted as tasks, frame callbacks are dispatched on every
// refresh, and both run on the same goroutine so they never overlap.
type Loop interface {
	FrameScheduler

	// Post enqueues a task to run on the loop goroutine. Tasks posted after Quit are dropped.
	//
	// Parameters:
	//   - task: the function to run
	//
	// Returns:
	//   - bool: true if the task was accepted
	Post(task func()) bool

	// Clock returns the time source the loop stamps frames with.
	//
	// Returns:
	//   - Clock: the loop clock
	Clock() Clock

	// EnableProfiler enables periodic refresh-rate and memory output to the log.
	EnableProfiler()

	// DisableProfiler disables profiler output.
	DisableProfiler()

	// SetFrameRate sets the display refresh rate in frames per second.
	// If the loop is running, the change takes effect on the next tick.
	//
	// Parameters:
	//   - fps: target refreshes per second (defaults to 60 if <= 0)
	SetFrameRate(fps float64)

	// Start launches the dispatcher goroutine and returns immediately.
	// Calling Start on a running loop is a no-op.
	Start()

	// Wait blocks until the loop has quit and its goroutines have exited.
	Wait()

	// Run starts the loop and blocks until Quit is called.
	Run()

	// Quit signals the dispatcher to stop. Pending frame callbacks are dropped.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Running reports whether the dispatcher is active.
	//
	// Returns:
	//   - bool: true between Start and Quit
	Running() bool
}

var _ Loop = &loop{}

// NewLoop creates a new Loop with the provided options.
// Defaults to 60 refreshes per second on the system clock.
//
// Parameters:
//   - options: functional options for loop configuration (profiling, frame rate, clock)
//
// Returns:
//   - Loop: the newly created loop
func NewLoop(options ...LoopBuilderOption) Loop {
	l := &loop{
		mu:               &sync.Mutex{},
		frameRateChannel: make(chan time.Duration, 1),
		quitChannel:      make(chan struct{}),
		clock:            SystemClock{},
		frames:           newFrameQueue(),
		frameInterval:    time.Second / 60,
		taskQueueSize:    256,
	}

	for _, opt := range options {
		opt(l)
	}

	l.tasks = make(chan func(), l.taskQueueSize)
	l.profiler = profiler.NewProfiler(l.clock.Now)
	l.startTime = l.clock.Now()
	return l
}

func (l *loop) RequestFrame(cb FrameCallback) FrameHandle {
	return l.frames.request(cb)
}

func (l *loop) CancelFrame(h FrameHandle) {
	l.frames.cancel(h)
}

func (l *loop) Post(task func()) bool {
	select {
	case <-l.quitChannel:
		return false
	default:
	}
	select {
	case l.tasks <- task:
		return true
	case <-l.quitChannel:
		return false
	}
}

func (l *loop) Clock() Clock {
	return l.clock
}

func (l *loop) Start() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	select {
	case <-l.quitChannel:
		return
	default:
	}
	l.running = true
	l.wg.Add(2)
	go l.handleDispatch()
	go l.handleQuit()
}

func (l *loop) Wait() {
	l.wg.Wait()
}

func (l *loop) Run() {
	l.Start()
	l.Wait()
}

// Quit signals all loop goroutines to stop.
// Safe to call multiple times; subsequent calls are no-ops due to sync.Once.
func (l *loop) Quit() {
	l.signalQuit()
}

func (l *loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

// signalQuit closes the quit channel to signal all goroutines to exit.
func (l *loop) signalQuit() {
	l.quitOnce.Do(func() {
		l.mu.Lock()
		l.running = false
		l.mu.Unlock()
		close(l.quitChannel)
	})
}

// handleDispatch runs the refresh ticker and the task queue on one goroutine.
// Recovers from panics to avoid crashing the process and signals quit on recovery.
func (l *loop) handleDispatch() {
	defer l.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			log.Printf("frame loop recovered from panic: %v", r)
			l.signalQuit()
		}
	}()

	ticker := time.NewTicker(l.frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-l.quitChannel:
			return
		case task := <-l.tasks:
			task()
			if l.profilingEnabled.Load() {
				l.profiler.RecordTask()
			}
		case <-ticker.C:
			n := l.dispatchFrame()
			if l.profilingEnabled.Load() {
				l.profiler.Tick(n)
			}
		case newRate := <-l.frameRateChannel:
			ticker.Reset(newRate)
			l.frameInterval = newRate
		}
	}
}

// dispatchFrame runs every callback pending at the start of this refresh.
func (l *loop) dispatchFrame() int {
	batch := l.frames.take()
	if len(batch) == 0 {
		return 0
	}
	timestamp := l.clock.Now().Sub(l.startTime)
	for _, cb := range batch {
		select {
		case <-l.quitChannel:
			return 0
		default:
		}
		cb(timestamp)
	}
	return len(batch)
}

// handleQuit blocks until the quit channel is closed, then decrements the WaitGroup.
func (l *loop) handleQuit() {
	defer l.wg.Done()
	<-l.quitChannel
}

// EnableProfiler enables performance profiling output to the log.
func (l *loop) EnableProfiler() {
	l.profilingEnabled.Store(true)
}

// DisableProfiler disables performance profiling output.
func (l *loop) DisableProfiler() {
	l.profilingEnabled.Store(false)
}

// SetFrameRate sets the refresh rate in frames per second.
func (l *loop) SetFrameRate(fps float64) {
	if fps <= 0 {
		fps = 60
	}
	newRate := time.Duration(float64(time.Second) / fps)

	if l.Running() {
		// Non-blocking send; a pending update is replaced by the newer value.
		select {
		case l.frameRateChannel <- newRate:
		default:
			select {
			case <-l.frameRateChannel:
			default:
			}
			l.frameRateChannel <- newRate
		}
	} else {
		l.frameInterval = newRate
	}
}
