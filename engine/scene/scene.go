package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
)

type sceneImpl struct {
	mu         *sync.Mutex
	root       game_object.GameObject
	lights     []light.Light
	background common.Color
}

// Scene is the root of everything a renderer draws in one pass: a graph of game objects,
// the light rig that shades them and the clear color behind them.
type Scene interface {
	// Root returns the top-level group every object hangs from.
	//
	// Returns:
	//   - game_object.GameObject: the root group
	Root() game_object.GameObject

	// Add attaches objects directly under the root.
	//
	// Parameters:
	//   - objs: the objects to attach
	Add(objs ...game_object.GameObject)

	// AddLight appends lights to the rig.
	//
	// Parameters:
	//   - lights: the lights to add
	AddLight(lights ...light.Light)

	// Lights returns a snapshot of the light rig in insertion order.
	//
	// Returns:
	//   - []light.Light: the lights
	Lights() []light.Light

	// Background returns the clear color.
	//
	// Returns:
	//   - common.Color: the linear RGB clear color
	Background() common.Color

	// SetBackground sets the clear color.
	//
	// Parameters:
	//   - c: the linear RGB clear color
	SetBackground(c common.Color)

	// Traverse visits every enabled object depth first; disabled subtrees are skipped.
	//
	// Parameters:
	//   - fn: called with each object
	Traverse(fn func(obj game_object.GameObject))

	// Meshes returns every enabled drawable object in traversal order.
	//
	// Returns:
	//   - []game_object.GameObject: the meshes
	Meshes() []game_object.GameObject
}

var _ Scene = &sceneImpl{}

// NewScene creates an empty Scene with the given options.
//
// Parameters:
//   - options: functional options (background)
//
// Returns:
//   - Scene: the new scene
func NewScene(options ...SceneBuilderOption) Scene {
	s := &sceneImpl{
		mu:   &sync.Mutex{},
		root: game_object.NewGroup("scene"),
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *sceneImpl) Root() game_object.GameObject {
	return s.root
}

func (s *sceneImpl) Add(objs ...game_object.GameObject) {
	for _, o := range objs {
		s.root.Add(o)
	}
}

func (s *sceneImpl) AddLight(lights ...light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lights = append(s.lights, lights...)
}

func (s *sceneImpl) Lights() []light.Light {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *sceneImpl) Background() common.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.background
}

func (s *sceneImpl) SetBackground(c common.Color) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
}

func (s *sceneImpl) Traverse(fn func(obj game_object.GameObject)) {
	s.root.Traverse(func(obj game_object.GameObject) bool {
		if !obj.Enabled() {
			return false
		}
		fn(obj)
		return true
	})
}

func (s *sceneImpl) Meshes() []game_object.GameObject {
	var out []game_object.GameObject
	s.Traverse(func(obj game_object.GameObject) {
		if obj.IsMesh() {
			out = append(out, obj)
		}
	})
	return out
}
