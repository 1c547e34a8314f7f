package offscreen

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/lifecycle"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
)

// Output formats understood by Encode.
const (
	FormatWebP = "webp"
	FormatPNG  = "png"
)

// ErrNoFrame is returned when nothing has been presented yet.
var ErrNoFrame = errors.New("offscreen: no frame presented")

// host implements the Host interface.
type host struct {
	mu            *sync.Mutex
	width, height int
	supersample   float64
	scheduler     *engine.ManualScheduler
	elapsed       time.Duration
	surfaces      []renderer.Surface

	pointerMove  lifecycle.Listeners[lifecycle.PointerMoveFunc]
	pointerLeave lifecycle.Listeners[func()]
	resize       lifecycle.Listeners[lifecycle.ResizeFunc]
}

// Host is a headless viewport. Time only moves when Advance is called, and pointer and
// resize events are injected by the caller, so a session renders deterministically.
// Frames render at the supersample ratio and are scaled back to the logical size on export.
type Host interface {
	lifecycle.Host

	// Advance moves time forward by d and runs one refresh.
	//
	// Parameters:
	//   - d: the time step
	//
	// Returns:
	//   - int: the number of frame callbacks that ran
	Advance(d time.Duration) int

	// Elapsed returns the timestamp of the last refresh.
	Elapsed() time.Duration

	// MovePointer injects a pointer position in logical pixels.
	MovePointer(x, y float64)

	// LeavePointer injects the pointer leaving the viewport.
	LeavePointer()

	// Resize changes the viewport size and notifies listeners.
	Resize(width, height int)

	// Frame returns the latest presented frame at the logical size.
	//
	// Returns:
	//   - *image.RGBA: the frame
	//   - error: ErrNoFrame before the first render
	Frame() (*image.RGBA, error)

	// Encode writes the latest frame as WebP (lossless) or PNG.
	//
	// Parameters:
	//   - w: the destination
	//   - format: FormatWebP or FormatPNG
	//
	// Returns:
	//   - error: ErrNoFrame, an unknown format or an encoder error
	Encode(w io.Writer, format string) error

	// WriteFile encodes the latest frame into path.
	WriteFile(path, format string) error
}

var _ Host = &host{}

// NewHost creates a headless host of the given logical size.
//
// Parameters:
//   - width: logical width
//   - height: logical height
//   - options: functional options
//
// Returns:
//   - Host: the new host
func NewHost(width, height int, options ...HostBuilderOption) Host {
	h := &host{
		mu:          &sync.Mutex{},
		width:       width,
		height:      height,
		supersample: 1,
		scheduler:   engine.NewManualScheduler(),
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *host) Size() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *host) DevicePixelRatio() float64 {
	return h.supersample
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

func (h *host) Advance(d time.Duration) int {
	h.mu.Lock()
	h.elapsed += d
	ts := h.elapsed
	h.mu.Unlock()
	return h.scheduler.Step(ts)
}

func (h *host) Elapsed() time.Duration {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.elapsed
}

func (h *host) MovePointer(x, y float64) {
	w, hh := h.Size()
	rect := common.Viewport{Width: float64(w), Height: float64(hh)}
	for _, fn := range h.pointerMove.Snapshot() {
		fn(x, y, rect)
	}
}

func (h *host) LeavePointer() {
	for _, fn := range h.pointerLeave.Snapshot() {
		fn()
	}
}

func (h *host) Resize(width, height int) {
	h.mu.Lock()
	h.width, h.height = width, height
	h.mu.Unlock()
	for _, fn := range h.resize.Snapshot() {
		fn(width, height)
	}
}

func (h *host) Frame() (*image.RGBA, error) {
	h.mu.Lock()
	var img *image.RGBA
	for _, s := range h.surfaces {
		if is, ok := s.(renderer.ImageSurface); ok {
			img = is.Snapshot()
			break
		}
	}
	w, hh := h.width, h.height
	h.mu.Unlock()
	if img == nil {
		return nil, ErrNoFrame
	}
	return Downsample(img, w, hh), nil
}

func (h *host) Encode(w io.Writer, format string) error {
	img, err := h.Frame()
	if err != nil {
		return err
	}
	switch format {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("offscreen: webp encode: %w", err)
		}
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("offscreen: png encode: %w", err)
		}
	default:
		return fmt.Errorf("offscreen: unknown format %q", format)
	}
	return nil
}

func (h *host) WriteFile(path, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("offscreen: create %s: %w", path, err)
	}
	if err := h.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("offscreen: close %s: %w", path, err)
	}
	common.Logger().Info("snapshot written", "path", path, "format", format)
	return nil
}

// Downsample scales a supersampled frame to width × height with a Catmull-Rom filter.
// Frames already at that size are returned as is. Frames are opaque, so no alpha handling
// is needed.
//
// Parameters:
//   - img: the source frame
//   - width: target width
//   - height: target height
//
// Returns:
//   - *image.RGBA: the scaled frame
func Downsample(img *image.RGBA, width, height int) *image.RGBA {
	b := img.Bounds()
	if width <= 0 || height <= 0 || (b.Dx() == width && b.Dy() == height) {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
