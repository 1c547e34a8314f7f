package animation

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/scene"
)

// State is the lifecycle state of a Driver.
type State int

const (
	// StateIdle is a driver that has not been started.
	StateIdle State = iota
	// StateRunning is a driver with a frame pending.
	StateRunning
	// StateCancelled is terminal: no further frames run.
	StateCancelled
)

// String returns the lowercase state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Orientation is the card group's smoothed pose.
type Orientation struct {
	RotationX float64
	RotationY float64
	RotationZ float64
	OffsetY   float64
}

// Target is the pointer-driven tilt the card group eases toward.
type Target struct {
	RotationX float64
	RotationY float64
}

// Frameable is the scene content a Driver animates.
type Frameable interface {
	Scene() scene.Scene
	Camera() camera.Camera
	Group() game_object.GameObject
	AuroraMeshes() []game_object.GameObject
	ParticleMeshes() []game_object.GameObject
}

// Renderer draws one frame.
type Renderer interface {
	Render(s scene.Scene, c camera.Camera) error
}

// driver implements the Driver interface.
type driver struct {
	mu        *sync.Mutex
	comp      Frameable
	scheduler engine.FrameScheduler
	renderer  Renderer
	focus     *Focus

	state       State
	handle      engine.FrameHandle
	generation  uint64
	orientation Orientation
	target      Target
	frames      int
}

// Driver runs the per-frame animation: backdrop motion, card smoothing toward the pointer
// target and the focus values, then one render. Each frame schedules the next until Cancel.
type Driver interface {
	// Start schedules the first frame. Only an idle driver can start.
	Start()

	// Cancel stops the loop and revokes the pending frame. A frame callback that still fires
	// afterwards does nothing. Idempotent.
	Cancel()

	// State returns the lifecycle state.
	State() State

	// Orientation returns the card group's current smoothed pose.
	Orientation() Orientation

	// Target returns the current pointer target.
	Target() Target

	// SetTarget replaces the pointer target. The card eases toward it over the next frames.
	//
	// Parameters:
	//   - t: the new target
	SetTarget(t Target)

	// Focus returns the live focus values read every frame.
	Focus() *Focus

	// Frames returns how many frames have run.
	Frames() int
}

var _ Driver = &driver{}

// NewDriver creates an idle Driver.
//
// Parameters:
//   - comp: the animated scene content
//   - scheduler: the display-refresh source
//   - options: functional options (renderer, focus)
//
// Returns:
//   - Driver: the new driver
func NewDriver(comp Frameable, scheduler engine.FrameScheduler, options ...DriverBuilderOption) Driver {
	d := &driver{
		mu:        &sync.Mutex{},
		comp:      comp,
		scheduler: scheduler,
		focus:     NewFocus(),
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

func (d *driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != StateIdle {
		return
	}
	d.state = StateRunning
	d.schedule()
}

// schedule requests the next frame. Must be called with mu held.
func (d *driver) schedule() {
	gen := d.generation
	d.handle = d.scheduler.RequestFrame(func(ts time.Duration) {
		d.frame(gen, ts)
	})
}

func (d *driver) frame(gen uint64, ts time.Duration) {
	d.mu.Lock()
	if d.state != StateRunning || gen != d.generation {
		d.mu.Unlock()
		return
	}
	d.handle = 0
	t := AnimationTime(ts)
	d.animateBackdrop(t)
	d.smoothCard()
	d.frames++
	d.mu.Unlock()

	if d.renderer != nil {
		if err := d.renderer.Render(d.comp.Scene(), d.comp.Camera()); err != nil {
			common.Logger().Warn("frame render failed", "err", err)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateRunning && gen == d.generation {
		d.schedule()
	}
}

func (d *driver) animateBackdrop(t float64) {
	aurora := d.comp.AuroraMeshes()
	for i, mesh := range aurora {
		applyPose(mesh, AuroraPose(i, len(aurora), t))
	}
	for i, mesh := range d.comp.ParticleMeshes() {
		applyPose(mesh, ParticlePose(i, t))
	}
}

func applyPose(mesh game_object.GameObject, p Pose) {
	mesh.SetPosition(float32(p.Position[0]), float32(p.Position[1]), float32(p.Position[2]))
	mesh.SetRotation(float32(p.Rotation[0]), float32(p.Rotation[1]), float32(p.Rotation[2]))
	mesh.SetUniformScale(float32(p.Scale))
	if m := mesh.Material(); m != nil {
		m.SetOpacity(float32(p.Opacity))
	}
}

func (d *driver) smoothCard() {
	offsetY, rotZ := d.focus.Get()
	o := &d.orientation
	o.RotationX = Smooth(o.RotationX, d.target.RotationX, TiltSmoothing)
	o.RotationY = Smooth(o.RotationY, d.target.RotationY, TiltSmoothing)
	o.OffsetY = Smooth(o.OffsetY, offsetY, FocusSmoothing)
	o.RotationZ = Smooth(o.RotationZ, rotZ, FocusSmoothing)

	group := d.comp.Group()
	pos := group.Position()
	group.SetPosition(pos[0], float32(o.OffsetY), pos[2])
	group.SetRotation(float32(o.RotationX), float32(o.RotationY), float32(o.RotationZ))
}

func (d *driver) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state == StateCancelled {
		return
	}
	d.state = StateCancelled
	d.generation++
	if d.handle != 0 {
		d.scheduler.CancelFrame(d.handle)
		d.handle = 0
	}
}

func (d *driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *driver) Orientation() Orientation {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.orientation
}

func (d *driver) Target() Target {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.target
}

func (d *driver) SetTarget(t Target) {
	d.mu.Lock()
	d.target = t
	d.mu.Unlock()
}

func (d *driver) Focus() *Focus {
	return d.focus
}

func (d *driver) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}
