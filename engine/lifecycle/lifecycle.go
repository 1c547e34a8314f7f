package lifecycle

import (
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/animation"
	"github.com/Carmen-Shannon/oxy-card/engine/card"
	"github.com/Carmen-Shannon/oxy-card/engine/input"
	"github.com/Carmen-Shannon/oxy-card/engine/resize"
	"github.com/Carmen-Shannon/oxy-card/engine/resource"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// manager implements the Manager interface.
type manager struct {
	mu             *sync.Mutex
	factory        RendererFactory
	sceneOptions   []card.SceneBuilderOption
	inputOptions   []input.ControllerBuilderOption
	assetDir       string
	resizeThrottle time.Duration
	clock          engine.Clock
	focus          *animation.Focus
	session        *Session
}

// Manager mounts the business-card scene into a host and tears it down again. At most one
// session is live at a time.
type Manager interface {
	// Mount acquires a renderer, builds the scene, frames it for the host size, wires pointer
	// and resize listeners and starts the animation. A nil host is a no-op. Mounting while
	// mounted releases the previous session first.
	//
	// Parameters:
	//   - host: the container to mount into
	//
	// Returns:
	//   - error: a wrapped renderer or scene error; nothing stays mounted on error
	Mount(host Host) error

	// Unmount releases the live session. Idempotent.
	Unmount()

	// Session returns the live session, or nil.
	Session() *Session

	// Mounted reports whether a session is live.
	Mounted() bool

	// Stats returns the live session's resource counts, or a zero Stats when unmounted.
	Stats() Stats
}

var _ Manager = &manager{}

// NewManager creates a Manager. Defaults to the software renderer, no textures and an
// unthrottled resize path.
//
// Parameters:
//   - options: functional options
//
// Returns:
//   - Manager: the new manager
func NewManager(options ...ManagerBuilderOption) Manager {
	m := &manager{
		mu:      &sync.Mutex{},
		factory: SoftwareRendererFactory,
		clock:   engine.SystemClock{},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *manager) Mount(host Host) error {
	if host == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.session != nil {
		m.session.release()
		m.session = nil
	}

	s, err := m.acquire(host)
	if err != nil {
		return err
	}
	m.session = s
	return nil
}

func (m *manager) acquire(host Host) (*Session, error) {
	s := &Session{
		mu:      &sync.Mutex{},
		host:    host,
		tracker: resource.NewTracker(),
	}

	r, err := m.factory(host)
	if err != nil {
		return nil, fmt.Errorf("lifecycle: create renderer: %w", err)
	}
	s.renderer = r
	s.surface = r.Surface()
	host.AttachSurface(s.surface)

	sceneOptions := append([]card.SceneBuilderOption{card.WithTracker(s.tracker)}, m.sceneOptions...)
	if m.assetDir != "" {
		s.loader = texture.NewLoader(texture.WithBaseDir(m.assetDir))
		sceneOptions = append(sceneOptions, card.WithTextureLoader(s.loader))
	}
	comp, err := card.NewSceneBuilder(sceneOptions...).Build()
	if err != nil {
		s.release()
		return nil, fmt.Errorf("lifecycle: build scene: %w", err)
	}
	s.comp = comp

	resizeOptions := []resize.ControllerBuilderOption{resize.WithPixelRatio(host.DevicePixelRatio)}
	if m.resizeThrottle > 0 {
		resizeOptions = append(resizeOptions, resize.WithThrottle(m.resizeThrottle, m.clock))
	}
	s.resize = resize.NewController(comp.Camera(), r, resize.Targets{
		Card:      comp.CardGroup,
		Aurora:    comp.AuroraGroup,
		Particles: comp.ParticleGroup,
	}, resizeOptions...)
	s.resize.Resize(host.Size())

	driverOptions := []animation.DriverBuilderOption{animation.WithRenderer(r)}
	if m.focus != nil {
		driverOptions = append(driverOptions, animation.WithFocus(m.focus))
	}
	s.driver = animation.NewDriver(comp, host.Scheduler(), driverOptions...)

	inputOptions := append([]input.ControllerBuilderOption{input.WithClock(m.clock)}, m.inputOptions...)
	s.input = input.NewController(s.driver, inputOptions...)

	s.removers = []func(){
		host.OnPointerMove(func(x, y float64, rect common.Viewport) { s.input.HandlePointerMove(x, y, rect) }),
		host.OnPointerLeave(s.input.HandlePointerLeave),
		host.OnResize(s.handleResize),
	}

	s.driver.Start()
	w, h := host.Size()
	common.Logger().Info("scene mounted", "width", w, "height", h, "meshes", len(comp.Scene().Meshes()))
	return s, nil
}

func (m *manager) Unmount() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.session == nil {
		return
	}
	m.session.release()
	m.session = nil
}

func (m *manager) Session() *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.session
}

func (m *manager) Mounted() bool {
	return m.Session() != nil
}

func (m *manager) Stats() Stats {
	s := m.Session()
	if s == nil {
		return Stats{}
	}
	return s.Stats()
}
