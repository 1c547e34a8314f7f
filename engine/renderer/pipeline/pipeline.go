package pipeline

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// pipeline is the implementation of the Pipeline interface.
type pipeline struct {
	pipelineKey string

	vertexShader, fragmentShader shader.Shader

	renderPipeline *wgpu.RenderPipeline

	depthTestEnabled  bool
	depthWriteEnabled bool
	blendEnabled      bool
	cullMode          wgpu.CullMode
	topology          wgpu.PrimitiveTopology
	frontFace         wgpu.FrontFace
	writeMask         wgpu.ColorWriteMask
	blendState        *wgpu.BlendState
}

// Pipeline is the fixed-function state of one render pipeline variant together with its
// shaders. Materials map onto a small set of variants (blending, side, depth state), so a
// renderer creates each variant once and shares it between meshes.
type Pipeline interface {
	// PipelineKey returns the unique key of this variant, used for caching and lookups.
	//
	// Returns:
	//   - string: the unique key for this pipeline
	PipelineKey() string

	// Shader retrieves the shader for the given stage, nil if not set.
	//
	// Parameters:
	//   - shaderType: the stage to retrieve
	//
	// Returns:
	//   - shader.Shader: the shader for the stage, or nil
	Shader(shaderType shader.ShaderType) shader.Shader

	// RenderPipeline returns the GPU pipeline, nil until a backend registers it.
	//
	// Returns:
	//   - *wgpu.RenderPipeline: the created pipeline
	RenderPipeline() *wgpu.RenderPipeline

	// DepthTestEnabled returns whether fragments are depth tested.
	DepthTestEnabled() bool

	// DepthWriteEnabled returns whether fragments write depth.
	DepthWriteEnabled() bool

	// BlendEnabled returns whether color blending is enabled.
	BlendEnabled() bool

	// CullMode returns the face culling mode.
	CullMode() wgpu.CullMode

	// Topology returns the primitive topology.
	Topology() wgpu.PrimitiveTopology

	// FrontFace returns the winding order that counts as front facing.
	FrontFace() wgpu.FrontFace

	// WriteMask returns the color write mask.
	WriteMask() wgpu.ColorWriteMask

	// BlendState returns the blend state used when blending is enabled.
	//
	// Returns:
	//   - *wgpu.BlendState: the blend state
	BlendState() *wgpu.BlendState

	// SetRenderPipeline stores the created GPU pipeline.
	//
	// Parameters:
	//   - p: the WebGPU render pipeline
	SetRenderPipeline(p *wgpu.RenderPipeline)

	// Release frees the GPU pipeline. The variant can be registered again afterwards.
	Release()
}

var _ Pipeline = &pipeline{}

// NewPipeline creates a render pipeline variant with depth test and write on, no blending,
// no culling, CCW front faces and triangle lists.
//
// Parameters:
//   - pipelineKey: the unique key for this pipeline
//   - opts: functional options
//
// Returns:
//   - Pipeline: the new pipeline
func NewPipeline(pipelineKey string, opts ...PipelineBuilderOption) Pipeline {
	p := &pipeline{
		pipelineKey:       pipelineKey,
		depthTestEnabled:  true,
		depthWriteEnabled: true,
		cullMode:          wgpu.CullModeNone,
		topology:          wgpu.PrimitiveTopologyTriangleList,
		frontFace:         wgpu.FrontFaceCCW,
		writeMask:         wgpu.ColorWriteMaskAll,
		blendState:        AlphaBlend(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// AlphaBlend is source-over blending for transparent materials.
//
// Returns:
//   - *wgpu.BlendState: src*srcAlpha + dst*(1-srcAlpha)
func AlphaBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorOne,
			DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// AdditiveBlend adds the source, weighted by its alpha, onto the destination.
//
// Returns:
//   - *wgpu.BlendState: src*srcAlpha + dst
func AdditiveBlend() *wgpu.BlendState {
	return &wgpu.BlendState{
		Color: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorSrcAlpha,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
		Alpha: wgpu.BlendComponent{
			SrcFactor: wgpu.BlendFactorZero,
			DstFactor: wgpu.BlendFactorOne,
			Operation: wgpu.BlendOperationAdd,
		},
	}
}

// KeyFor returns the variant key for a material's fixed-function state.
//
// Parameters:
//   - m: the material
//
// Returns:
//   - string: a key identical for every material sharing the same state
func KeyFor(m material.Material) string {
	return fmt.Sprintf("mesh/b%d/s%d/t%t/dw%t/dt%t",
		m.Blending(), m.Side(), m.Transparent(), m.DepthWrite(), m.DepthTest())
}

// FromMaterial builds the pipeline variant that draws meshes with m.
//
// Parameters:
//   - m: the material whose state selects the variant
//   - vs: the vertex shader
//   - fs: the fragment shader
//
// Returns:
//   - Pipeline: the variant, keyed by KeyFor(m)
func FromMaterial(m material.Material, vs, fs shader.Shader) Pipeline {
	opts := []PipelineBuilderOption{
		WithVertexShader(vs),
		WithFragmentShader(fs),
		WithDepthTestEnabled(m.DepthTest()),
		WithDepthWriteEnabled(m.DepthWrite()),
	}
	switch m.Side() {
	case material.SideFront:
		opts = append(opts, WithCullMode(wgpu.CullModeBack))
	case material.SideBack:
		opts = append(opts, WithCullMode(wgpu.CullModeFront))
	}
	switch {
	case m.Blending() == material.BlendingAdditive:
		opts = append(opts, WithBlendEnabled(true), WithBlendState(AdditiveBlend()))
	case m.Transparent():
		opts = append(opts, WithBlendEnabled(true), WithBlendState(AlphaBlend()))
	}
	return NewPipeline(KeyFor(m), opts...)
}

func (p *pipeline) PipelineKey() string {
	return p.pipelineKey
}

func (p *pipeline) Shader(shaderType shader.ShaderType) shader.Shader {
	switch shaderType {
	case shader.ShaderTypeVertex:
		return p.vertexShader
	case shader.ShaderTypeFragment:
		return p.fragmentShader
	default:
		return nil
	}
}

func (p *pipeline) RenderPipeline() *wgpu.RenderPipeline {
	return p.renderPipeline
}

func (p *pipeline) DepthTestEnabled() bool {
	return p.depthTestEnabled
}

func (p *pipeline) DepthWriteEnabled() bool {
	return p.depthWriteEnabled
}

func (p *pipeline) BlendEnabled() bool {
	return p.blendEnabled
}

func (p *pipeline) CullMode() wgpu.CullMode {
	return p.cullMode
}

func (p *pipeline) Topology() wgpu.PrimitiveTopology {
	return p.topology
}

func (p *pipeline) FrontFace() wgpu.FrontFace {
	return p.frontFace
}

func (p *pipeline) WriteMask() wgpu.ColorWriteMask {
	return p.writeMask
}

func (p *pipeline) BlendState() *wgpu.BlendState {
	return p.blendState
}

func (p *pipeline) SetRenderPipeline(rp *wgpu.RenderPipeline) {
	p.renderPipeline = rp
}

func (p *pipeline) Release() {
	if p.renderPipeline != nil {
		p.renderPipeline.Release()
		p.renderPipeline = nil
	}
}
