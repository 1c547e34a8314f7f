package renderer

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/scene"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
)

// ErrDisposed is returned by Render after Dispose.
var ErrDisposed = errors.New("renderer: disposed")

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	backendType RendererBackendType
	backend     RendererBackend

	width, height int
	pixelRatio    float64
	disposed      bool

	geometries map[*geometry.Geometry]struct{}
	materials  map[material.Material]struct{}
	textures   map[*texture.Texture]struct{}

	frames    uint64
	drawCalls int

	// Pre-creation config collected from builder options
	surfaceSource        SurfaceSource
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
}

// Info is a point-in-time summary of renderer state.
type Info struct {
	Backend    RendererBackendType
	Width      int
	Height     int
	PixelRatio float64

	// Frames is the number of frames rendered so far.
	Frames uint64
	// DrawCalls is the number of meshes drawn in the last frame.
	DrawCalls int

	// Geometries, Materials and Textures count resources the renderer currently mirrors.
	Geometries int
	Materials  int
	Textures   int
}

// Renderer draws a scene through a camera into its surface.
//
// Resources are uploaded lazily the first time a mesh using them is drawn. Disposing a
// geometry, material or texture releases the renderer's copy; Dispose releases the graphics
// context itself.
type Renderer interface {
	// Render draws one frame.
	//
	// Parameters:
	//   - s: the scene
	//   - c: the camera
	//
	// Returns:
	//   - error: ErrDisposed after Dispose, or a wrapped backend error
	Render(s scene.Scene, c camera.Camera) error

	// SetSize sets the viewport size in logical pixels. The drawing buffer is the logical
	// size times the pixel ratio.
	//
	// Parameters:
	//   - width: the logical width
	//   - height: the logical height
	SetSize(width, height int)

	// Size returns the logical viewport size.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)

	// SetPixelRatio sets the device pixel ratio applied to the drawing buffer.
	// Non-positive ratios are treated as 1.
	//
	// Parameters:
	//   - ratio: device pixels per logical pixel
	SetPixelRatio(ratio float64)

	// PixelRatio returns the current device pixel ratio.
	PixelRatio() float64

	// Surface returns the drawable the renderer presents into.
	//
	// Returns:
	//   - Surface: the drawable
	Surface() Surface

	// Info returns a snapshot of renderer state and resource counts.
	//
	// Returns:
	//   - Info: the snapshot
	Info() Info

	// Dispose releases every mirrored resource and the graphics context. Idempotent.
	Dispose()

	// Disposed reports whether Dispose has been called.
	Disposed() bool
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer with the given backend. The WebGPU backend needs a surface
// source (WithSurfaceSource) and panics when the GPU device cannot be created.
//
// Parameters:
//   - backendType: the backend to use
//   - options: functional options
//
// Returns:
//   - Renderer: the new renderer
//   - error: an error if the backend cannot be created
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		backendType: backendType,
		width:       1,
		height:      1,
		pixelRatio:  1,
		geometries:  make(map[*geometry.Geometry]struct{}),
		materials:   make(map[material.Material]struct{}),
		textures:    make(map[*texture.Texture]struct{}),
		presentMode: PresentModeVSync,
		msaa:        MSAA4x,
	}
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeSoftware:
		r.backend = newSoftwareRendererBackend()
	case BackendTypeWGPU:
		if r.surfaceSource == nil {
			return nil, errors.New("renderer: wgpu backend requires a surface source")
		}
		r.backend = newWGPURendererBackend(r.surfaceSource.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa, r.presentMode)
	default:
		return nil, fmt.Errorf("renderer: unknown backend %d", backendType)
	}

	r.backend.ConfigureSurface(r.bufferSize())
	common.Logger().Info("renderer created", "backend", backendType.String(), "width", r.width, "height", r.height)
	return r, nil
}

func (r *renderer) Render(s scene.Scene, c camera.Camera) error {
	r.mu.Lock()
	if r.disposed {
		r.mu.Unlock()
		return ErrDisposed
	}
	bw, bh := r.bufferSize()
	f := CollectFrame(s, c, bw, bh)
	subscribe := r.track(f)
	err := r.backend.DrawFrame(f)
	r.frames++
	r.drawCalls = len(f.Opaque) + len(f.Transparent)
	r.mu.Unlock()

	// OnDispose runs the callback inline for already-disposed resources, and release takes mu.
	for _, fn := range subscribe {
		fn()
	}
	if err != nil {
		return fmt.Errorf("renderer: render: %w", err)
	}
	return nil
}

// track records resources seen for the first time and returns the dispose subscriptions to
// register once mu is released. Must be called with mu held.
func (r *renderer) track(f *Frame) []func() {
	var subs []func()
	for _, item := range f.Items() {
		geo, mat := item.Geometry, item.Material
		if _, ok := r.geometries[geo]; !ok {
			r.geometries[geo] = struct{}{}
			subs = append(subs, func() { geo.OnDispose(func() { r.releaseGeometry(geo) }) })
		}
		if _, ok := r.materials[mat]; !ok {
			r.materials[mat] = struct{}{}
			subs = append(subs, func() { mat.OnDispose(func() { r.releaseMaterial(mat) }) })
		}
		if tex := mat.Map(); tex != nil {
			if _, ok := r.textures[tex]; !ok {
				r.textures[tex] = struct{}{}
				subs = append(subs, func() { tex.OnDispose(func() { r.releaseTexture(tex) }) })
			}
		}
	}
	return subs
}

func (r *renderer) releaseGeometry(g *geometry.Geometry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.geometries[g]; !ok || r.disposed {
		return
	}
	delete(r.geometries, g)
	r.backend.ReleaseGeometry(g)
}

func (r *renderer) releaseMaterial(m material.Material) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.materials[m]; !ok || r.disposed {
		return
	}
	delete(r.materials, m)
	r.backend.ReleaseMaterial(m)
}

func (r *renderer) releaseTexture(t *texture.Texture) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.textures[t]; !ok || r.disposed {
		return
	}
	delete(r.textures, t)
	r.backend.ReleaseTexture(t)
}

func (r *renderer) SetSize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.width, r.height = width, height
	if !r.disposed {
		r.backend.ConfigureSurface(r.bufferSize())
	}
}

func (r *renderer) Size() (int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.width, r.height
}

func (r *renderer) SetPixelRatio(ratio float64) {
	if ratio <= 0 || math.IsNaN(ratio) {
		ratio = 1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if ratio == r.pixelRatio {
		return
	}
	r.pixelRatio = ratio
	if !r.disposed {
		r.backend.ConfigureSurface(r.bufferSize())
	}
}

func (r *renderer) PixelRatio() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pixelRatio
}

// bufferSize returns the drawing-buffer size. Must be called with mu held.
func (r *renderer) bufferSize() (int, int) {
	w := max(1, int(math.Round(float64(r.width)*r.pixelRatio)))
	h := max(1, int(math.Round(float64(r.height)*r.pixelRatio)))
	return w, h
}

func (r *renderer) Surface() Surface {
	return r.backend.Surface()
}

func (r *renderer) Info() Info {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Info{
		Backend:    r.backendType,
		Width:      r.width,
		Height:     r.height,
		PixelRatio: r.pixelRatio,
		Frames:     r.frames,
		DrawCalls:  r.drawCalls,
		Geometries: len(r.geometries),
		Materials:  len(r.materials),
		Textures:   len(r.textures),
	}
}

func (r *renderer) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.disposed {
		return
	}
	for g := range r.geometries {
		r.backend.ReleaseGeometry(g)
	}
	for m := range r.materials {
		r.backend.ReleaseMaterial(m)
	}
	for t := range r.textures {
		r.backend.ReleaseTexture(t)
	}
	clear(r.geometries)
	clear(r.materials)
	clear(r.textures)
	r.backend.Dispose()
	r.disposed = true
	common.Logger().Info("renderer disposed", "backend", r.backendType.String(), "frames", r.frames)
}

func (r *renderer) Disposed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.disposed
}
