package ebiten_host

import (
	"image"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/lifecycle"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keyCodes maps the ebiten keys the viewer reacts to onto common.Key* codes.
var keyCodes = map[ebiten.Key]uint32{
	ebiten.KeyF:      common.KeyF,
	ebiten.KeySpace:  common.KeySpace,
	ebiten.KeyR:      common.KeyR,
	ebiten.KeyP:      common.KeyP,
	ebiten.KeyS:      common.KeyS,
	ebiten.KeyEscape: common.KeyEsc,
}

// host implements the Host interface and ebiten.Game.
type host struct {
	mu    *sync.Mutex
	title string
	tps   int

	width, height int
	ratio         float64

	scheduler *engine.ManualScheduler
	clock     engine.Clock
	started   time.Time

	surfaces []renderer.Surface
	frame    *ebiten.Image

	pointerInside bool
	lastX, lastY  int

	pointerMove  lifecycle.Listeners[lifecycle.PointerMoveFunc]
	pointerLeave lifecycle.Listeners[func()]
	resize       lifecycle.Listeners[lifecycle.ResizeFunc]
	onKeyDown    func(keyCode uint32)

	closed bool
}

// Host shows software-rendered frames in an ebiten window. Frame callbacks run once per tick
// on ebiten's game goroutine, so events and frames never overlap. The cursor leaving the
// layout counts as the pointer leaving.
type Host interface {
	lifecycle.Host
	ebiten.Game

	// SetKeyDownCallback sets the callback for key presses, translated to common.Key* codes.
	SetKeyDownCallback(callback func(keyCode uint32))

	// Run opens the window and blocks until it closes.
	//
	// Returns:
	//   - error: an ebiten error, or nil on a normal close
	Run() error

	// Close ends Run after the current tick.
	Close()
}

var _ Host = &host{}

// NewHost creates an ebiten Host. The window opens on Run.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Host: the new host
func NewHost(options ...HostBuilderOption) Host {
	h := &host{
		mu:        &sync.Mutex{},
		title:     "oxy-card",
		tps:       60,
		width:     900,
		height:    600,
		ratio:     1,
		scheduler: engine.NewManualScheduler(),
		clock:     engine.SystemClock{},
	}
	for _, opt := range options {
		opt(h)
	}
	h.started = h.clock.Now()
	return h
}

func (h *host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *host) DevicePixelRatio() float64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.ratio
}

func (h *host) AttachSurface(s renderer.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !slices.Contains(h.surfaces, s) {
		h.surfaces = append(h.surfaces, s)
	}
}

func (h *host) DetachSurface(s renderer.Surface) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.surfaces = slices.DeleteFunc(h.surfaces, func(a renderer.Surface) bool { return a == s })
}

func (h *host) HasSurface(s renderer.Surface) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.surfaces, s)
}

func (h *host) Scheduler() engine.FrameScheduler {
	return h.scheduler
}

func (h *host) OnPointerMove(fn lifecycle.PointerMoveFunc) func() {
	return h.pointerMove.Add(fn)
}

func (h *host) OnPointerLeave(fn func()) func() {
	return h.pointerLeave.Add(fn)
}

func (h *host) OnResize(fn lifecycle.ResizeFunc) func() {
	return h.resize.Add(fn)
}

func (h *host) SetKeyDownCallback(callback func(keyCode uint32)) {
	h.onKeyDown = callback
}

func (h *host) Run() error {
	w, hh := h.Size()
	ebiten.SetWindowTitle(h.title)
	ebiten.SetWindowSize(w, hh)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(h.tps)
	return ebiten.RunGame(h)
}

func (h *host) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

// Update polls input, then runs pending frame callbacks.
func (h *host) Update() error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()
	if closed {
		return ebiten.Termination
	}

	for key, code := range keyCodes {
		if inpututil.IsKeyJustPressed(key) && h.onKeyDown != nil {
			h.onKeyDown(code)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	h.pollPointer()
	h.scheduler.Step(h.clock.Now().Sub(h.started))
	return nil
}

func (h *host) pollPointer() {
	x, y := ebiten.CursorPosition()
	w, hh := h.Size()
	inside := x >= 0 && y >= 0 && x < w && y < hh
	switch {
	case inside && (!h.pointerInside || x != h.lastX || y != h.lastY):
		rect := common.Viewport{Width: float64(w), Height: float64(hh)}
		for _, fn := range h.pointerMove.Snapshot() {
			fn(float64(x), float64(y), rect)
		}
	case !inside && h.pointerInside:
		for _, fn := range h.pointerLeave.Snapshot() {
			fn()
		}
	}
	h.pointerInside = inside
	h.lastX, h.lastY = x, y
}

// Draw uploads the latest presented frame and scales it to the logical layout.
func (h *host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	var img *image.RGBA
	for _, s := range h.surfaces {
		if is, ok := s.(renderer.ImageSurface); ok {
			img = is.Snapshot()
			break
		}
	}
	h.mu.Unlock()
	if img == nil {
		return
	}

	b := img.Bounds()
	if h.frame == nil || h.frame.Bounds().Dx() != b.Dx() || h.frame.Bounds().Dy() != b.Dy() {
		if h.frame != nil {
			h.frame.Deallocate()
		}
		h.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	h.frame.WritePixels(img.Pix)

	sw, sh := screen.Bounds().Dx(), screen.Bounds().Dy()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(sw)/float64(b.Dx()), float64(sh)/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(h.frame, op)
}

// Layout keeps the logical size in step with the window and reports changes as resizes.
func (h *host) Layout(outsideWidth, outsideHeight int) (int, int) {
	ratio := ebiten.Monitor().DeviceScaleFactor()
	h.mu.Lock()
	changed := outsideWidth != h.width || outsideHeight != h.height || ratio != h.ratio
	h.width, h.height, h.ratio = outsideWidth, outsideHeight, ratio
	h.mu.Unlock()

	if changed {
		for _, fn := range h.resize.Snapshot() {
			fn(outsideWidth, outsideHeight)
		}
	}
	return outsideWidth, outsideHeight
}
