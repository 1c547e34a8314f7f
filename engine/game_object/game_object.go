package game_object

import (
	"slices"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
)

var nextID atomic.Uint64

type gameObject struct {
	mu       *sync.Mutex
	id       uint64
	name     string
	enabled  atomic.Bool
	geometry *geometry.Geometry
	material material.Material

	position [3]float32
	rotation [3]float32
	scale    [3]float32

	parent   *gameObject
	children []*gameObject
}

// GameObject is a node in the scene graph. A node with geometry and material is a mesh; a node
// without is a group that only composes transforms for its children.
//
// Transforms are local to the parent: the world matrix is parent.World * T * Rx * Ry * Rz * S.
// A node exclusively owns its children; the parent link only feeds world matrix composition.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Name returns the debugging label of the object.
	//
	// Returns:
	//   - string: the name
	Name() string

	// Enabled returns whether this object and its subtree are drawn.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether this object and its subtree are drawn.
	//
	// Parameters:
	//   - enabled: true to draw
	SetEnabled(enabled bool)

	// Geometry returns the mesh geometry, or nil for groups.
	//
	// Returns:
	//   - *geometry.Geometry: the geometry or nil
	Geometry() *geometry.Geometry

	// Material returns the mesh material, or nil for groups.
	//
	// Returns:
	//   - material.Material: the material or nil
	Material() material.Material

	// IsMesh reports whether the object has both geometry and material.
	//
	// Returns:
	//   - bool: true for meshes
	IsMesh() bool

	// Position returns the local translation.
	//
	// Returns:
	//   - [3]float32: x, y, z
	Position() [3]float32

	// Rotation returns the local Euler rotation in radians, applied X then Y then Z.
	//
	// Returns:
	//   - [3]float32: rx, ry, rz
	Rotation() [3]float32

	// Scale returns the local scale.
	//
	// Returns:
	//   - [3]float32: sx, sy, sz
	Scale() [3]float32

	// SetPosition sets the local translation.
	SetPosition(x, y, z float32)

	// SetRotation sets the local Euler rotation in radians.
	SetRotation(rx, ry, rz float32)

	// SetScale sets the local scale.
	SetScale(sx, sy, sz float32)

	// SetUniformScale sets all three scale components to s.
	SetUniformScale(s float32)

	// Add attaches child under this object, detaching it from any previous parent.
	//
	// Parameters:
	//   - child: the object to attach
	Add(child GameObject)

	// Remove detaches child if it is a direct child of this object.
	//
	// Parameters:
	//   - child: the object to detach
	//
	// Returns:
	//   - bool: true if the child was attached here
	Remove(child GameObject) bool

	// Parent returns the parent object, or nil for roots.
	//
	// Returns:
	//   - GameObject: the parent or nil
	Parent() GameObject

	// Children returns a snapshot of the direct children in insertion order.
	//
	// Returns:
	//   - []GameObject: the children
	Children() []GameObject

	// LocalMatrix writes the column-major local transform into out.
	//
	// Parameters:
	//   - out: destination, at least 16 elements
	LocalMatrix(out []float32)

	// WorldMatrix writes the column-major model-to-world transform into out.
	//
	// Parameters:
	//   - out: destination, at least 16 elements
	WorldMatrix(out []float32)

	// Traverse calls fn for this object and every descendant, depth first, parents before
	// children. Returning false from fn skips that object's subtree.
	//
	// Parameters:
	//   - fn: the visitor
	Traverse(fn func(obj GameObject) bool)
}

var _ GameObject = &gameObject{}

// NewGameObject creates a new enabled GameObject at the origin with unit scale.
//
// Parameters:
//   - options: functional options (name, mesh, transform)
//
// Returns:
//   - GameObject: the new object
func NewGameObject(options ...GameObjectBuilderOption) GameObject {
	g := &gameObject{
		mu:    &sync.Mutex{},
		id:    nextID.Add(1),
		scale: [3]float32{1, 1, 1},
	}
	g.enabled.Store(true)
	for _, opt := range options {
		opt(g)
	}
	return g
}

// NewGroup creates a transform-only node.
//
// Parameters:
//   - name: the debugging label
//
// Returns:
//   - GameObject: the group
func NewGroup(name string) GameObject {
	return NewGameObject(WithName(name))
}

// NewMesh creates a drawable node.
//
// Parameters:
//   - name: the debugging label
//   - geo: the geometry
//   - mat: the material
//
// Returns:
//   - GameObject: the mesh
func NewMesh(name string, geo *geometry.Geometry, mat material.Material) GameObject {
	return NewGameObject(WithName(name), WithMesh(geo, mat))
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Name() string {
	return g.name
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Geometry() *geometry.Geometry {
	return g.geometry
}

func (g *gameObject) Material() material.Material {
	return g.material
}

func (g *gameObject) IsMesh() bool {
	return g.geometry != nil && g.material != nil
}

func (g *gameObject) Position() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.position
}

func (g *gameObject) Rotation() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rotation
}

func (g *gameObject) Scale() [3]float32 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.scale
}

func (g *gameObject) SetPosition(x, y, z float32) {
	g.mu.Lock()
	g.position = [3]float32{x, y, z}
	g.mu.Unlock()
}

func (g *gameObject) SetRotation(rx, ry, rz float32) {
	g.mu.Lock()
	g.rotation = [3]float32{rx, ry, rz}
	g.mu.Unlock()
}

func (g *gameObject) SetScale(sx, sy, sz float32) {
	g.mu.Lock()
	g.scale = [3]float32{sx, sy, sz}
	g.mu.Unlock()
}

func (g *gameObject) SetUniformScale(s float32) {
	g.SetScale(s, s, s)
}

func (g *gameObject) Add(child GameObject) {
	c, ok := child.(*gameObject)
	if !ok || c == nil || c == g {
		return
	}
	if p := c.parentNode(); p != nil {
		p.Remove(c)
	}
	g.mu.Lock()
	g.children = append(g.children, c)
	g.mu.Unlock()

	c.mu.Lock()
	c.parent = g
	c.mu.Unlock()
}

func (g *gameObject) Remove(child GameObject) bool {
	c, ok := child.(*gameObject)
	if !ok || c == nil {
		return false
	}
	g.mu.Lock()
	idx := slices.Index(g.children, c)
	if idx < 0 {
		g.mu.Unlock()
		return false
	}
	g.children = slices.Delete(g.children, idx, idx+1)
	g.mu.Unlock()

	c.mu.Lock()
	c.parent = nil
	c.mu.Unlock()
	return true
}

func (g *gameObject) parentNode() *gameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.parent
}

func (g *gameObject) Parent() GameObject {
	if p := g.parentNode(); p != nil {
		return p
	}
	return nil
}

func (g *gameObject) Children() []GameObject {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]GameObject, len(g.children))
	for i, c := range g.children {
		out[i] = c
	}
	return out
}

func (g *gameObject) LocalMatrix(out []float32) {
	g.mu.Lock()
	p, r, s := g.position, g.rotation, g.scale
	g.mu.Unlock()
	common.BuildModelMatrix(out, p[0], p[1], p[2], r[0], r[1], r[2], s[0], s[1], s[2])
}

func (g *gameObject) WorldMatrix(out []float32) {
	g.LocalMatrix(out)
	var parentWorld, local [16]float32
	for p := g.parentNode(); p != nil; p = p.parentNode() {
		copy(local[:], out[:16])
		p.LocalMatrix(parentWorld[:])
		common.Mul4(out, parentWorld[:], local[:])
	}
}

func (g *gameObject) Traverse(fn func(obj GameObject) bool) {
	if !fn(g) {
		return
	}
	for _, c := range g.Children() {
		c.Traverse(fn)
	}
}
