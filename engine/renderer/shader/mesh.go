package shader

import (
	_ "embed"

	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

//go:embed assets/mesh.wgsl
var meshSource string

// Bind group indices of the mesh shader.
const (
	// GroupFrame holds per-frame data shared by every draw: camera and lights.
	GroupFrame = 0
	// GroupObject holds per-mesh data: model matrix, material params, texture, sampler.
	GroupObject = 1
)

// Bindings inside GroupFrame.
const (
	BindingCamera = 0
	BindingLights = 1
)

// Bindings inside GroupObject.
const (
	BindingModel    = 0
	BindingMaterial = 1
	BindingTexture  = 2
	BindingSampler  = 3
)

// ModelUniformSize is the byte size of the per-mesh model uniform (one mat4x4<f32>).
const ModelUniformSize = 64

// FrameLayout returns the layout of GroupFrame for the given stage visibility.
//
// Parameters:
//   - visibility: the shader stages that read the group
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the frame group layout
func FrameLayout(visibility wgpu.ShaderStage) wgpu.BindGroupLayoutDescriptor {
	cam := camera.GPUCameraUniform{}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Frame Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(BindingCamera, visibility, uint64(cam.Size())),
			uniformEntry(BindingLights, visibility, light.GPULightBlockSize),
		},
	}
}

// ObjectLayout returns the layout of GroupObject for the given stage visibility.
//
// Parameters:
//   - visibility: the shader stages that read the group
//
// Returns:
//   - wgpu.BindGroupLayoutDescriptor: the object group layout
func ObjectLayout(visibility wgpu.ShaderStage) wgpu.BindGroupLayoutDescriptor {
	params := material.GPUMaterialParams{}
	return wgpu.BindGroupLayoutDescriptor{
		Label: "Object Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			uniformEntry(BindingModel, visibility, ModelUniformSize),
			uniformEntry(BindingMaterial, visibility, uint64(params.Size())),
			{
				Binding:    BindingTexture,
				Visibility: visibility,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeFloat,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    BindingSampler,
				Visibility: visibility,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeFiltering,
				},
			},
		},
	}
}

func uniformEntry(binding uint32, visibility wgpu.ShaderStage, size uint64) wgpu.BindGroupLayoutEntry {
	return wgpu.BindGroupLayoutEntry{
		Binding:    binding,
		Visibility: visibility,
		Buffer: wgpu.BufferBindingLayout{
			Type:           wgpu.BufferBindingTypeUniform,
			MinBindingSize: size,
		},
	}
}

// MeshVertexLayout describes geometry.GPUVertex: position, normal, uv.
//
// Returns:
//   - wgpu.VertexBufferLayout: the interleaved vertex layout
func MeshVertexLayout() wgpu.VertexBufferLayout {
	return wgpu.VertexBufferLayout{
		ArrayStride: geometry.GPUVertexSize,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
		},
	}
}

// MeshVertexShader returns the vertex stage of the mesh shader.
//
// Returns:
//   - Shader: the vertex shader
func MeshVertexShader() Shader {
	return NewShader("mesh.vs", ShaderTypeVertex, meshSource,
		WithEntryPoint("vs_main"),
		WithBindGroupLayout(GroupFrame, FrameLayout(wgpu.ShaderStageVertex)),
		WithBindGroupLayout(GroupObject, ObjectLayout(wgpu.ShaderStageVertex)),
		WithVertexLayouts(MeshVertexLayout()),
	)
}

// MeshFragmentShader returns the fragment stage of the mesh shader.
//
// Returns:
//   - Shader: the fragment shader
func MeshFragmentShader() Shader {
	return NewShader("mesh.fs", ShaderTypeFragment, meshSource,
		WithEntryPoint("fs_main"),
		WithBindGroupLayout(GroupFrame, FrameLayout(wgpu.ShaderStageFragment)),
		WithBindGroupLayout(GroupObject, ObjectLayout(wgpu.ShaderStageFragment)),
	)
}
