package terminal

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/lifecycle"
	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T, cols, rows int) (*terminal, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	screen.SetSize(cols, rows)
	host, err := NewTerminal(screen, WithLoop(engine.NewLoop()))
	if err != nil {
		t.Fatalf("NewTerminal() = %v", err)
	}
	t.Cleanup(host.Close)
	return host.(*terminal), screen
}

func TestSizeIsTwoPixelsPerRow(t *testing.T) {
	term, _ := newSimTerminal(t, 80, 24)
	if w, h := term.Size(); w != 80 || h != 48 {
		t.Errorf("Size() = %dx%d, want 80x48", w, h)
	}
}

func TestMouseMovesPointer(t *testing.T) {
	term, _ := newSimTerminal(t, 80, 24)
	var gotX, gotY float64
	var gotRect common.Viewport
	remove := term.OnPointerMove(func(x, y float64, rect common.Viewport) {
		gotX, gotY, gotRect = x, y, rect
	})

	term.handleEvent(tcell.NewEventMouse(10, 3, tcell.ButtonNone, tcell.ModNone))
	if gotX != 10.5 || gotY != 7 {
		t.Errorf("pointer = (%v, %v), want (10.5, 7)", gotX, gotY)
	}
	if gotRect.Width != 80 || gotRect.Height != 48 {
		t.Errorf("rect = %+v, want 80x48", gotRect)
	}

	remove()
	term.handleEvent(tcell.NewEventMouse(0, 0, tcell.ButtonNone, tcell.ModNone))
	if gotX != 10.5 {
		t.Error("removed listener still called")
	}
}

func TestFocusLossLeavesPointer(t *testing.T) {
	term, _ := newSimTerminal(t, 80, 24)
	left := 0
	term.OnPointerLeave(func() { left++ })

	term.handleEvent(tcell.NewEventFocus(true))
	term.handleEvent(tcell.NewEventFocus(false))
	if left != 1 {
		t.Errorf("pointer leave fired %d times, want 1", left)
	}
}

func TestResizeReportsPixels(t *testing.T) {
	term, screen := newSimTerminal(t, 80, 24)
	var w, h int
	term.OnResize(func(width, height int) { w, h = width, height })

	screen.SetSize(40, 10)
	term.handleEvent(tcell.NewEventResize(40, 10))
	if w != 40 || h != 20 {
		t.Errorf("resize = %dx%d, want 40x20", w, h)
	}
}

func TestKeysTranslate(t *testing.T) {
	term, _ := newSimTerminal(t, 80, 24)
	var keys []uint32
	term.SetKeyDownCallback(func(k uint32) { keys = append(keys, k) })

	term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	term.handleEvent(tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone))
	term.handleEvent(tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone))
	want := []uint32{common.KeyF, common.KeySpace, common.KeyR}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("key %d = %d, want %d", i, keys[i], want[i])
		}
	}
}

func TestMountedSceneDrawsHalfBlocks(t *testing.T) {
	term, screen := newSimTerminal(t, 60, 20)
	loop := engine.NewManualScheduler()
	term.sched.inner = loop

	m := lifecycle.NewManager(lifecycle.WithSceneOptions(card.WithSeed(3)))
	if err := m.Mount(term); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	loop.Step(16 * time.Millisecond)

	mainc, _, style, _ := screen.GetContent(30, 10)
	if mainc != halfBlock {
		t.Fatalf("center cell = %q, want a half block", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fg == tcell.ColorDefault || bg == tcell.ColorDefault {
		t.Errorf("center cell colors = %v / %v, want RGB", fg, bg)
	}

	// pointer at the right edge tilts the card toward +Y
	term.handleEvent(tcell.NewEventMouse(59, 10, tcell.ButtonNone, tcell.ModNone))
	if got := m.Session().Driver().Target().RotationY; got <= 0 {
		t.Errorf("RotationY target = %v after a right-edge pointer", got)
	}

	m.Unmount()
	if loop.Pending() != 0 {
		t.Errorf("pending frames after unmount = %d", loop.Pending())
	}
	if mainc, _, _, _ := screen.GetContent(30, 10); mainc == halfBlock {
		t.Error("screen not cleared after detach")
	}
}
