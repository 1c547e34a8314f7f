package terminal

import (
	"fmt"
	"image"
	"slices"
	"sync"
	"time"
	"unicode"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/lifecycle"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
	"github.com/gdamore/tcell/v2"
)

// halfBlock paints the top pixel of a cell in the foreground and the bottom one in the background.
const halfBlock = '▀'

// terminal implements the Terminal interface.
type terminal struct {
	mu     *sync.Mutex
	screen tcell.Screen
	loop   engine.Loop
	sched  *presentingScheduler

	cols, rows int
	surfaces   []renderer.Surface

	pointerMove  lifecycle.Listeners[lifecycle.PointerMoveFunc]
	pointerLeave lifecycle.Listeners[func()]
	resize       lifecycle.Listeners[lifecycle.ResizeFunc]
	onKeyDown    func(keyCode uint32)

	closeOnce sync.Once
}

// Terminal hosts the card scene in a terminal. Each cell shows two vertically stacked pixels
// with a half-block glyph, so the viewport is cols × 2·rows pixels. Mouse motion drives the
// tilt, losing terminal focus counts as the pointer leaving, and presentation follows every
// rendered frame.
type Terminal interface {
	lifecycle.Host

	// Loop returns the event loop host events and frames run on.
	Loop() engine.Loop

	// SetKeyDownCallback sets the callback for key presses, translated to common.Key* codes.
	SetKeyDownCallback(callback func(keyCode uint32))

	// Run starts the loop and forwards terminal events to it until Close is called.
	// Blocks the calling goroutine.
	Run()

	// Close stops the loop and restores the terminal. Safe to call more than once.
	Close()
}

var _ Terminal = &terminal{}

// NewTerminal initializes screen and wraps it as a Host.
//
// Parameters:
//   - screen: the tcell screen, from tcell.NewScreen or tcell.NewSimulationScreen
//   - options: functional options
//
// Returns:
//   - Terminal: the host
//   - error: a wrapped screen initialization error
func NewTerminal(screen tcell.Screen, options ...TerminalBuilderOption) (Terminal, error) {
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("terminal: init screen: %w", err)
	}
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	t := &terminal{
		mu:     &sync.Mutex{},
		screen: screen,
	}
	for _, opt := range options {
		opt(t)
	}
	if t.loop == nil {
		t.loop = engine.NewLoop(engine.WithFrameRate(30))
	}
	t.sched = &presentingScheduler{inner: t.loop, present: t.present}
	t.cols, t.rows = screen.Size()
	return t, nil
}

func (t *terminal) Size() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols, t.rows * 2
}

// DevicePixelRatio is 1: one drawing-buffer pixel per half cell.
func (t *terminal) DevicePixelRatio() float64 {
	return 1
}

func (t *terminal) AttachSurface(s renderer.Surface) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !slices.Contains(t.surfaces, s) {
		t.surfaces = append(t.surfaces, s)
	}
}

func (t *terminal) DetachSurface(s renderer.Surface) {
	t.mu.Lock()
	t.surfaces = slices.DeleteFunc(t.surfaces, func(a renderer.Surface) bool { return a == s })
	t.mu.Unlock()
	t.screen.Clear()
	t.screen.Show()
}

func (t *terminal) HasSurface(s renderer.Surface) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Contains(t.surfaces, s)
}

func (t *terminal) Scheduler() engine.FrameScheduler {
	return t.sched
}

func (t *terminal) OnPointerMove(fn lifecycle.PointerMoveFunc) func() {
	return t.pointerMove.Add(fn)
}

func (t *terminal) OnPointerLeave(fn func()) func() {
	return t.pointerLeave.Add(fn)
}

func (t *terminal) OnResize(fn lifecycle.ResizeFunc) func() {
	return t.resize.Add(fn)
}

func (t *terminal) Loop() engine.Loop {
	return t.loop
}

func (t *terminal) SetKeyDownCallback(callback func(keyCode uint32)) {
	t.onKeyDown = callback
}

func (t *terminal) Run() {
	t.loop.Start()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		if !t.loop.Post(func() { t.handleEvent(ev) }) {
			return
		}
	}
}

func (t *terminal) Close() {
	t.closeOnce.Do(func() {
		t.loop.Quit()
		t.screen.Fini()
	})
}

// handleEvent dispatches one terminal event. Runs on the loop goroutine.
func (t *terminal) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		x, y := ev.Position()
		w, h := t.Size()
		rect := common.Viewport{Width: float64(w), Height: float64(h)}
		// cell centers in pixel space
		px, py := float64(x)+0.5, float64(y)*2+1
		for _, fn := range t.pointerMove.Snapshot() {
			fn(px, py, rect)
		}
	case *tcell.EventFocus:
		if !ev.Focused {
			for _, fn := range t.pointerLeave.Snapshot() {
				fn()
			}
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		t.mu.Lock()
		t.cols, t.rows = cols, rows
		t.mu.Unlock()
		t.screen.Sync()
		for _, fn := range t.resize.Snapshot() {
			fn(cols, rows*2)
		}
	case *tcell.EventKey:
		t.handleKey(ev)
	}
}

func (t *terminal) handleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		if t.onKeyDown != nil {
			t.onKeyDown(common.KeyEsc)
		}
		t.Close()
	case tcell.KeyRune:
		if t.onKeyDown != nil {
			t.onKeyDown(uint32(unicode.ToUpper(ev.Rune())))
		}
	}
}

// present draws the attached surface's latest frame as half-block cells.
func (t *terminal) present() {
	t.mu.Lock()
	var img *image.RGBA
	for _, s := range t.surfaces {
		if is, ok := s.(renderer.ImageSurface); ok {
			img = is.Snapshot()
			break
		}
	}
	cols, rows := t.cols, t.rows
	t.mu.Unlock()
	if img == nil {
		return
	}

	b := img.Bounds()
	for y := 0; y < rows; y++ {
		top, bottom := 2*y, 2*y+1
		if bottom >= b.Dy() {
			break
		}
		for x := 0; x < cols && x < b.Dx(); x++ {
			style := tcell.StyleDefault.
				Foreground(pixelColor(img, x, top)).
				Background(pixelColor(img, x, bottom))
			t.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	t.screen.Show()
}

func pixelColor(img *image.RGBA, x, y int) tcell.Color {
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return tcell.NewRGBColor(int32(img.Pix[i]), int32(img.Pix[i+1]), int32(img.Pix[i+2]))
}

// presentingScheduler runs the terminal's presentation after every frame callback so the
// screen always shows the frame that was just rendered.
type presentingScheduler struct {
	inner   engine.FrameScheduler
	present func()
}

func (p *presentingScheduler) RequestFrame(cb engine.FrameCallback) engine.FrameHandle {
	return p.inner.RequestFrame(func(ts time.Duration) {
		cb(ts)
		p.present()
	})
}

func (p *presentingScheduler) CancelFrame(h engine.FrameHandle) {
	p.inner.CancelFrame(h)
}
