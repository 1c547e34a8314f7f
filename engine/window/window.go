package window

import (
	"fmt"
	"runtime"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/lifecycle"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a desktop window that hosts the card scene. It owns the glfw event loop and
// doubles as the display-refresh scheduler: pending frame callbacks run on the main thread
// between event polls, at the configured frame rate.
type Window interface {
	lifecycle.Host
	renderer.SurfaceSource

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the key code (see common.Key*)
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// RequestClose asks the message loop to exit after the current iteration.
	RequestClose()

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop and frame dispatch.
	// Blocks until the window is closed. Must be called from the thread that created the window.
	ProcessMessages()
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	mu *sync.Mutex

	// title is the window title displayed in the title bar.
	title string

	// minWidth and minHeight bound the window during resize.
	minWidth  int
	minHeight int

	// width and height are the client area in screen coordinates (logical pixels).
	width  int
	height int

	// contentScale is the framebuffer pixels per screen coordinate.
	contentScale float64

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// scheduler holds frame callbacks until the next refresh slot.
	scheduler     *engine.ManualScheduler
	clock         engine.Clock
	frameInterval time.Duration
	started       time.Time
	nextFrame     time.Time

	surfaces []renderer.Surface

	pointerMove  lifecycle.Listeners[lifecycle.PointerMoveFunc]
	pointerLeave lifecycle.Listeners[func()]
	resize       lifecycle.Listeners[lifecycle.ResizeFunc]

	onUpdate  func()
	onKeyDown func(keyCode uint32)
}

var _ Window = &engineWindow{}

// NewWindow creates and shows a new Window with the specified options.
// Applies default values first, then each option in order.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the spawned window
//   - error: a platform error if GLFW or the window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		mu:            &sync.Mutex{},
		title:         "oxy-card",
		minWidth:      320,
		minHeight:     200,
		width:         900,
		height:        600,
		contentScale:  1,
		scheduler:     engine.NewManualScheduler(),
		clock:         engine.SystemClock{},
		frameInterval: time.Second / 60,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("window: %w", err)
	}
	w.started = w.clock.Now()
	w.nextFrame = w.started
	return w, nil
}

func (w *engineWindow) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width, w.height
}

func (w *engineWindow) DevicePixelRatio() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.contentScale
}

// AttachSurface records s as presented by this window. The WebGPU swap chain is created from
// SurfaceDescriptor, so there is nothing else to bind.
func (w *engineWindow) AttachSurface(s renderer.Surface) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !slices.Contains(w.surfaces, s) {
		w.surfaces = append(w.surfaces, s)
	}
}

func (w *engineWindow) DetachSurface(s renderer.Surface) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.surfaces = slices.DeleteFunc(w.surfaces, func(a renderer.Surface) bool { return a == s })
}

func (w *engineWindow) HasSurface(s renderer.Surface) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.surfaces, s)
}

func (w *engineWindow) Scheduler() engine.FrameScheduler {
	return w.scheduler
}

func (w *engineWindow) OnPointerMove(fn lifecycle.PointerMoveFunc) func() {
	return w.pointerMove.Add(fn)
}

func (w *engineWindow) OnPointerLeave(fn func()) func() {
	return w.pointerLeave.Add(fn)
}

func (w *engineWindow) OnResize(fn lifecycle.ResizeFunc) func() {
	return w.resize.Add(fn)
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) RequestClose() {
	platformRequestClose(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		now := w.clock.Now()
		if !now.Before(w.nextFrame) {
			w.scheduler.Step(now.Sub(w.started))
			w.nextFrame = w.nextFrame.Add(w.frameInterval)
			// after a stall, realign instead of running a burst of catch-up frames
			if w.nextFrame.Before(now) {
				w.nextFrame = now.Add(w.frameInterval)
			}
		}

		runtime.Gosched()
	}
}

// emitPointerMove forwards a cursor position in screen coordinates.
func (w *engineWindow) emitPointerMove(x, y float64) {
	width, height := w.Size()
	rect := common.Viewport{Width: float64(width), Height: float64(height)}
	for _, fn := range w.pointerMove.Snapshot() {
		fn(x, y, rect)
	}
}

func (w *engineWindow) emitPointerLeave() {
	for _, fn := range w.pointerLeave.Snapshot() {
		fn()
	}
}

func (w *engineWindow) emitResize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	w.mu.Unlock()
	for _, fn := range w.resize.Snapshot() {
		fn(width, height)
	}
}
