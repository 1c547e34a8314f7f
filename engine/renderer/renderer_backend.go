package renderer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// RendererBackendType identifies the backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU selects the WebGPU backend, presenting into a native window surface.
	BackendTypeWGPU RendererBackendType = iota

	// BackendTypeSoftware selects the CPU rasterizer, presenting into an in-memory image.
	BackendTypeSoftware
)

func (t RendererBackendType) String() string {
	switch t {
	case BackendTypeWGPU:
		return "wgpu"
	case BackendTypeSoftware:
		return "software"
	default:
		return "unknown"
	}
}

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	PresentModeUncapped
)

// MSAASampleCount controls the number of samples used for multisample anti-aliasing (MSAA).
// WebGPU guarantees support for 1 (off) and 4.
type MSAASampleCount uint32

const (
	// MSAAOff disables multisample anti-aliasing (sample count 1).
	MSAAOff MSAASampleCount = 1

	// MSAA4x enables 4× multisample anti-aliasing. This is the default.
	MSAA4x MSAASampleCount = 4
)

// Surface is the drawable a renderer presents into. Hosts attach it to their display.
type Surface interface {
	// Size returns the drawing-buffer size in device pixels.
	//
	// Returns:
	//   - int: width
	//   - int: height
	Size() (int, int)
}

// ImageSurface is a Surface whose presented frames are readable on the CPU.
type ImageSurface interface {
	Surface

	// Snapshot returns the most recently presented frame, or nil before the first frame.
	// The image is never written again; callers may keep it.
	//
	// Returns:
	//   - *image.RGBA: the frame pixels
	Snapshot() *image.RGBA
}

// SurfaceSource supplies the platform surface descriptor for the WebGPU backend.
// Typically implemented by a window.
type SurfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// RendererBackend draws collected frames and owns the backend-side copies of resources.
type RendererBackend interface {
	// ConfigureSurface resizes the drawing buffer.
	//
	// Parameters:
	//   - width: the new width in device pixels
	//   - height: the new height in device pixels
	ConfigureSurface(width, height int)

	// DrawFrame draws and presents one frame.
	//
	// Parameters:
	//   - f: the collected frame
	//
	// Returns:
	//   - error: an error if the frame could not be drawn
	DrawFrame(f *Frame) error

	// Surface returns the drawable frames are presented into.
	//
	// Returns:
	//   - Surface: the drawable
	Surface() Surface

	// ReleaseGeometry drops backend objects mirroring g.
	ReleaseGeometry(g *geometry.Geometry)

	// ReleaseMaterial drops backend objects mirroring m.
	ReleaseMaterial(m material.Material)

	// ReleaseTexture drops backend objects mirroring t.
	ReleaseTexture(t *texture.Texture)

	// Dispose releases the graphics context. The backend is unusable afterwards.
	Dispose()
}
