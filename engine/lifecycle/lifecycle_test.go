package lifecycle

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer"
)

// fakeHost records attach, detach and listener events in order.
type fakeHost struct {
	mu        sync.Mutex
	width     int
	height    int
	ratio     float64
	scheduler *engine.ManualScheduler
	attached  []renderer.Surface
	events    []string
	moves     map[int]PointerMoveFunc
	leaves    map[int]func()
	resizes   map[int]ResizeFunc
	nextID    int
}

func newFakeHost(w, h int) *fakeHost {
	return &fakeHost{
		width:     w,
		height:    h,
		ratio:     1,
		scheduler: engine.NewManualScheduler(),
		moves:     map[int]PointerMoveFunc{},
		leaves:    map[int]func(){},
		resizes:   map[int]ResizeFunc{},
	}
}

func (h *fakeHost) record(e string) {
	h.mu.Lock()
	h.events = append(h.events, e)
	h.mu.Unlock()
}

func (h *fakeHost) Size() (int, int)                 { return h.width, h.height }
func (h *fakeHost) DevicePixelRatio() float64        { return h.ratio }
func (h *fakeHost) Scheduler() engine.FrameScheduler { return h.scheduler }

func (h *fakeHost) AttachSurface(s renderer.Surface) {
	h.mu.Lock()
	h.attached = append(h.attached, s)
	h.mu.Unlock()
	h.record("attach")
}

func (h *fakeHost) DetachSurface(s renderer.Surface) {
	h.mu.Lock()
	h.attached = slices.DeleteFunc(h.attached, func(a renderer.Surface) bool { return a == s })
	h.mu.Unlock()
	h.record("detach")
}

func (h *fakeHost) HasSurface(s renderer.Surface) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Contains(h.attached, s)
}

func (h *fakeHost) OnPointerMove(fn PointerMoveFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.moves[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.moves, id)
		h.mu.Unlock()
		h.record("remove")
	}
}

func (h *fakeHost) OnPointerLeave(fn func()) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.leaves[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.leaves, id)
		h.mu.Unlock()
		h.record("remove")
	}
}

func (h *fakeHost) OnResize(fn ResizeFunc) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.resizes[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.resizes, id)
		h.mu.Unlock()
		h.record("remove")
	}
}

func (h *fakeHost) listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.moves) + len(h.leaves) + len(h.resizes)
}

func (h *fakeHost) move(x, y float64) {
	h.mu.Lock()
	fns := make([]PointerMoveFunc, 0, len(h.moves))
	for _, fn := range h.moves {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(x, y, common.Viewport{Width: float64(h.width), Height: float64(h.height)})
	}
}

func (h *fakeHost) resize(w, hh int) {
	h.mu.Lock()
	h.width, h.height = w, hh
	fns := make([]ResizeFunc, 0, len(h.resizes))
	for _, fn := range h.resizes {
		fns = append(fns, fn)
	}
	h.mu.Unlock()
	for _, fn := range fns {
		fn(w, hh)
	}
}

// disposeRecorder logs renderer disposal into the host's events.
type disposeRecorder struct {
	renderer.Renderer
	host *fakeHost
}

func (d disposeRecorder) Dispose() {
	d.Renderer.Dispose()
	d.host.record("dispose")
}

func recordingFactory(host Host) (renderer.Renderer, error) {
	r, err := SoftwareRendererFactory(host)
	if err != nil {
		return nil, err
	}
	return disposeRecorder{Renderer: r, host: host.(*fakeHost)}, nil
}

func TestMountNilHostIsNoop(t *testing.T) {
	m := NewManager()
	if err := m.Mount(nil); err != nil {
		t.Fatalf("Mount(nil) = %v", err)
	}
	if m.Mounted() {
		t.Error("nil host produced a session")
	}
	m.Unmount()
}

func TestMountStartsScene(t *testing.T) {
	host := newFakeHost(900, 600)
	m := NewManager(WithSceneOptions(card.WithSeed(1)))
	if err := m.Mount(host); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	defer m.Unmount()

	if !m.Mounted() {
		t.Fatal("Mounted() = false after Mount")
	}
	if host.listeners() != 3 {
		t.Errorf("listeners = %d, want 3", host.listeners())
	}
	if len(host.attached) != 1 {
		t.Errorf("attached surfaces = %d, want 1", len(host.attached))
	}
	if host.scheduler.Pending() != 1 {
		t.Fatalf("pending frames = %d, want 1", host.scheduler.Pending())
	}

	host.scheduler.Step(16 * time.Millisecond)
	host.scheduler.Step(32 * time.Millisecond)
	stats := m.Stats()
	if stats.Renderer.Frames != 2 {
		t.Errorf("Frames = %d, want 2", stats.Renderer.Frames)
	}
	// card + overlay + default aurora and particle counts
	wantMeshes := 2 + card.DefaultAuroraCount + card.DefaultParticleCount
	if stats.Geometries != wantMeshes || stats.Materials != wantMeshes {
		t.Errorf("Stats = %+v, want %d geometries and materials", stats, wantMeshes)
	}
}

func TestUnmountReleasesInOrder(t *testing.T) {
	host := newFakeHost(400, 300)
	m := NewManager(WithRendererFactory(recordingFactory))
	if err := m.Mount(host); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	host.scheduler.Step(16 * time.Millisecond)
	m.Unmount()

	want := []string{"attach", "remove", "remove", "remove", "dispose", "detach"}
	if !slices.Equal(host.events, want) {
		t.Errorf("events = %v, want %v", host.events, want)
	}
	if host.scheduler.Pending() != 0 {
		t.Errorf("pending frames after unmount = %d", host.scheduler.Pending())
	}
	if host.listeners() != 0 {
		t.Errorf("listeners after unmount = %d", host.listeners())
	}
	if m.Mounted() {
		t.Error("Mounted() = true after Unmount")
	}
}

func TestDoubleUnmountIsSafe(t *testing.T) {
	host := newFakeHost(400, 300)
	m := NewManager(WithRendererFactory(recordingFactory))
	if err := m.Mount(host); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	s := m.Session()
	m.Unmount()
	m.Unmount()
	s.release()

	detaches := 0
	for _, e := range host.events {
		if e == "detach" {
			detaches++
		}
	}
	if detaches != 1 {
		t.Errorf("detach ran %d times, want 1", detaches)
	}
}

func TestDetachOnlyWhenAttached(t *testing.T) {
	host := newFakeHost(400, 300)
	m := NewManager(WithRendererFactory(recordingFactory))
	if err := m.Mount(host); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	// the host dropped the drawable on its own, e.g. the window was torn down first
	host.DetachSurface(m.Session().renderer.Surface())
	host.events = nil

	m.Unmount()
	if slices.Contains(host.events, "detach") {
		t.Errorf("events = %v, want no detach of an absent surface", host.events)
	}
}

func TestRemountHasNoNetGrowth(t *testing.T) {
	host := newFakeHost(640, 480)
	m := NewManager(WithSceneOptions(card.WithSeed(7)))

	var first Stats
	for i := range 5 {
		if err := m.Mount(host); err != nil {
			t.Fatalf("Mount() #%d = %v", i, err)
		}
		host.scheduler.Step(time.Duration(i+1) * 16 * time.Millisecond)
		s := m.Session()
		stats := m.Stats()
		if i == 0 {
			first = stats
		} else if stats.Geometries != first.Geometries || stats.Materials != first.Materials {
			t.Errorf("mount %d: %+v, first %+v", i, stats, first)
		}
		if host.listeners() != 3 || len(host.attached) != 1 {
			t.Errorf("mount %d: listeners %d, surfaces %d", i, host.listeners(), len(host.attached))
		}
		m.Unmount()
		live := 0
		for _, n := range s.Composition().Tracker().Counts() {
			live += n
		}
		if live != 0 {
			t.Errorf("mount %d: %d live resources after unmount", i, live)
		}
	}
	if host.listeners() != 0 || len(host.attached) != 0 || host.scheduler.Pending() != 0 {
		t.Errorf("leaked: listeners %d, surfaces %d, frames %d",
			host.listeners(), len(host.attached), host.scheduler.Pending())
	}
}

func TestMountWhileMountedReplacesSession(t *testing.T) {
	host := newFakeHost(400, 300)
	m := NewManager()
	if err := m.Mount(host); err != nil {
		t.Fatal(err)
	}
	first := m.Session()
	if err := m.Mount(host); err != nil {
		t.Fatal(err)
	}
	defer m.Unmount()
	if m.Session() == first {
		t.Fatal("remount kept the old session")
	}
	if first.Stats().Mounted {
		t.Error("previous session still mounted")
	}
	if host.listeners() != 3 || host.scheduler.Pending() != 1 {
		t.Errorf("listeners %d, frames %d after remount", host.listeners(), host.scheduler.Pending())
	}
}

func TestRendererFailureLeavesNothingMounted(t *testing.T) {
	host := newFakeHost(400, 300)
	boom := errors.New("no adapter")
	m := NewManager(WithRendererFactory(func(Host) (renderer.Renderer, error) { return nil, boom }))
	if err := m.Mount(host); !errors.Is(err, boom) {
		t.Fatalf("Mount() = %v, want %v", err, boom)
	}
	if m.Mounted() || host.listeners() != 0 || host.scheduler.Pending() != 0 {
		t.Error("failed mount left state behind")
	}
}

func TestHostEventsReachControllers(t *testing.T) {
	host := newFakeHost(900, 600)
	m := NewManager()
	if err := m.Mount(host); err != nil {
		t.Fatal(err)
	}
	defer m.Unmount()
	s := m.Session()

	host.move(900, 600)
	if tgt := s.Driver().Target(); tgt.RotationX >= 0 || tgt.RotationY <= 0 {
		t.Errorf("Target() = %+v after a bottom-right pointer", tgt)
	}

	host.resize(450, 300)
	if w, h := s.Resize().Size(); w != 450 || h != 300 {
		t.Errorf("Resize().Size() = %dx%d, want 450x300", w, h)
	}
	if w, _ := s.Renderer().Surface().Size(); w != 450 {
		t.Errorf("surface width = %d, want 450", w)
	}
}

func TestThrottledResizeAppliesLastSize(t *testing.T) {
	host := newFakeHost(900, 600)
	clock := engine.NewMockClock(time.Unix(0, 0))
	m := NewManager(WithResizeThrottle(100*time.Millisecond), WithClock(clock))
	if err := m.Mount(host); err != nil {
		t.Fatal(err)
	}
	defer m.Unmount()
	s := m.Session()

	host.resize(800, 600)
	clock.Advance(10 * time.Millisecond)
	host.resize(450, 300)
	if w, _ := s.Resize().Size(); w != 800 {
		t.Fatalf("width = %d inside the window, want 800", w)
	}
	if host.scheduler.Pending() != 2 {
		t.Fatalf("pending frames = %d, want driver frame plus one flush", host.scheduler.Pending())
	}

	host.scheduler.Step(16 * time.Millisecond)
	if w, _ := s.Resize().Size(); w != 800 {
		t.Errorf("flushed before the window closed")
	}

	clock.Advance(100 * time.Millisecond)
	host.scheduler.Step(32 * time.Millisecond)
	if w, h := s.Resize().Size(); w != 450 || h != 300 {
		t.Errorf("Resize().Size() = %dx%d, want the trailing 450x300", w, h)
	}
	if host.scheduler.Pending() != 1 {
		t.Errorf("pending frames = %d after flush, want 1", host.scheduler.Pending())
	}
}

func TestUnmountCancelsPendingResize(t *testing.T) {
	host := newFakeHost(900, 600)
	clock := engine.NewMockClock(time.Unix(0, 0))
	m := NewManager(WithResizeThrottle(100*time.Millisecond), WithClock(clock))
	if err := m.Mount(host); err != nil {
		t.Fatal(err)
	}
	host.resize(800, 600)
	host.resize(450, 300)
	m.Unmount()
	if host.scheduler.Pending() != 0 {
		t.Errorf("pending frames after unmount = %d", host.scheduler.Pending())
	}
}

func TestAssetDirLoadsTextures(t *testing.T) {
	dir := t.TempDir()
	// an unreadable card texture must not block the mount
	if err := os.WriteFile(filepath.Join(dir, card.DefaultCardTexture), []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	host := newFakeHost(400, 300)
	m := NewManager(WithAssetDir(dir))
	if err := m.Mount(host); err != nil {
		t.Fatalf("Mount() = %v", err)
	}
	if m.Stats().Textures != 2 {
		t.Errorf("Textures = %d, want 2", m.Stats().Textures)
	}
	host.scheduler.Step(16 * time.Millisecond)
	m.Unmount()
}

func TestListenersAddRemove(t *testing.T) {
	var l Listeners[func() int]
	removeA := l.Add(func() int { return 1 })
	l.Add(func() int { return 2 })
	if l.Len() != 2 {
		t.Fatalf("Len() = %d", l.Len())
	}
	removeA()
	removeA()
	fns := l.Snapshot()
	if len(fns) != 1 || fns[0]() != 2 {
		t.Errorf("Snapshot() after remove = %d callbacks", len(fns))
	}
}
