package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/camera"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-card/engine/texture"
	"github.com/cogentcore/webgpu/wgpu"
)

// wgpuRendererBackend draws frames with WebGPU into a window surface.
//
// Every mesh is drawn by the same WGSL program; pipelines differ only in blend, cull and depth
// state and are created lazily per material variant. GPU copies of geometries, textures and
// per-object uniforms are created on first use and released when the renderer says so.
type wgpuRendererBackend struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat        wgpu.TextureFormat
	msaaTexture          *wgpu.Texture
	msaaTextureView      *wgpu.TextureView
	depthTexture         *wgpu.Texture
	depthTextureView     *wgpu.TextureView
	renderPassDescriptor *wgpu.RenderPassDescriptor
	width, height        int

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	vertexShader   shader.Shader
	fragmentShader shader.Shader
	layouts        []*wgpu.BindGroupLayout
	pipelineLayout *wgpu.PipelineLayout
	pipelines      map[string]pipeline.Pipeline

	sampler  *wgpu.Sampler
	frame    bind_group_provider.BindGroupProvider
	white    bind_group_provider.BindGroupProvider
	meshes   map[*geometry.Geometry]bind_group_provider.BindGroupProvider
	textures map[*texture.Texture]bind_group_provider.BindGroupProvider
	objects  map[game_object.GameObject]*objectBinding
}

// objectBinding is the per-mesh bind group plus what it was built against.
type objectBinding struct {
	provider bind_group_provider.BindGroupProvider
	material material.Material
	texture  bind_group_provider.BindGroupProvider
}

var _ RendererBackend = &wgpuRendererBackend{}
var _ Surface = &wgpuRendererBackend{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, sampleCount MSAASampleCount, presentMode PresentMode) *wgpuRendererBackend {
	runtime.LockOSThread()
	if sampleCount != MSAAOff {
		sampleCount = MSAA4x
	}
	b := &wgpuRendererBackend{
		mu:             &sync.Mutex{},
		instance:       wgpu.CreateInstance(nil),
		presentMode:    wgpu.PresentModeFifo,
		sampleCount:    sampleCount,
		vertexShader:   shader.MeshVertexShader(),
		fragmentShader: shader.MeshFragmentShader(),
		pipelines:      make(map[string]pipeline.Pipeline),
		meshes:         make(map[*geometry.Geometry]bind_group_provider.BindGroupProvider),
		textures:       make(map[*texture.Texture]bind_group_provider.BindGroupProvider),
		objects:        make(map[game_object.GameObject]*objectBinding),
	}
	if presentMode == PresentModeUncapped {
		b.presentMode = wgpu.PresentModeImmediate
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		panic(err)
	}
	b.adapter = a

	limits := wgpu.DefaultLimits()
	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Card Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: limits,
		},
	})
	if err != nil {
		panic(err)
	}
	b.device = d
	b.queue = d.GetQueue()

	if err := b.initSharedResources(); err != nil {
		panic(err)
	}
	return b
}

// initSharedResources creates the bind group layouts, the pipeline layout, the sampler, the
// per-frame uniforms and the white placeholder texture.
func (b *wgpuRendererBackend) initSharedResources() error {
	merged := mergeBindGroupLayouts(b.vertexShader.BindGroupLayoutDescriptors(), b.fragmentShader.BindGroupLayoutDescriptors())
	maxGroup := -1
	for g := range merged {
		maxGroup = max(maxGroup, g)
	}
	b.layouts = make([]*wgpu.BindGroupLayout, maxGroup+1)
	for g, desc := range merged {
		layout, err := b.device.CreateBindGroupLayout(&desc)
		if err != nil {
			return fmt.Errorf("failed to create bind group layout for group %d: %w", g, err)
		}
		b.layouts[g] = layout
	}

	var err error
	b.pipelineLayout, err = b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "Mesh Pipeline Layout",
		BindGroupLayouts: b.layouts,
	})
	if err != nil {
		return err
	}

	b.sampler, err = b.device.CreateSampler(samplerDescriptor("Card Sampler", common.SamplerStagingData{
		AddressModeU: wgpu.AddressModeClampToEdge,
		AddressModeV: wgpu.AddressModeClampToEdge,
		AddressModeW: wgpu.AddressModeClampToEdge,
		MagFilter:    wgpu.FilterModeLinear,
		MinFilter:    wgpu.FilterModeLinear,
		MipmapFilter: wgpu.MipmapFilterModeLinear,
	}))
	if err != nil {
		return err
	}

	cam := camera.GPUCameraUniform{}
	camBuf, err := b.createUniform("Camera", uint64(cam.Size()))
	if err != nil {
		return err
	}
	lightBuf, err := b.createUniform("Lights", light.GPULightBlockSize)
	if err != nil {
		return err
	}
	b.frame = bind_group_provider.NewBindGroupProvider("Frame",
		bind_group_provider.WithBuffer(shader.BindingCamera, camBuf),
		bind_group_provider.WithBuffer(shader.BindingLights, lightBuf),
	)
	frameGroup, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Frame Bind Group",
		Layout: b.layouts[shader.GroupFrame],
		Entries: []wgpu.BindGroupEntry{
			{Binding: shader.BindingCamera, Buffer: camBuf, Offset: 0, Size: wgpu.WholeSize},
			{Binding: shader.BindingLights, Buffer: lightBuf, Offset: 0, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}
	b.frame.SetBindGroup(frameGroup)

	b.white = bind_group_provider.NewBindGroupProvider("White Texture")
	return b.uploadTexture(b.white, common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1})
}

func (b *wgpuRendererBackend) createUniform(label string, size uint64) (*wgpu.Buffer, error) {
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: label + " Uniform Buffer",
		Size:  size,
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = capabilities.Formats[0]
	b.width, b.height = width, height

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	msaaEnabled := count > 1

	if msaaEnabled {
		// the pass renders into the MSAA texture and resolves into the swapchain view
		b.msaaTexture, b.msaaTextureView = b.createTarget("MSAA Texture", b.surfaceFormat, width, height, count)
	}
	b.depthTexture, b.depthTextureView = b.createTarget("Depth Texture", wgpu.TextureFormatDepth24Plus, width, height, count)

	storeOp := wgpu.StoreOpStore
	if msaaEnabled {
		storeOp = wgpu.StoreOpDiscard
	}
	b.renderPassDescriptor = &wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			{
				View:    b.msaaTextureView, // nil when MSAA is off; set per frame
				LoadOp:  wgpu.LoadOpClear,
				StoreOp: storeOp,
			},
		},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	}
}

func (b *wgpuRendererBackend) createTarget(label string, format wgpu.TextureFormat, width, height int, samples uint32) (*wgpu.Texture, *wgpu.TextureView) {
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              uint32(width),
			Height:             uint32(height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   samples,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		panic(err)
	}
	return tex, view
}

func (b *wgpuRendererBackend) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTexture.Release()
		b.msaaTextureView, b.msaaTexture = nil, nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTexture.Release()
		b.depthTextureView, b.depthTexture = nil, nil
	}
}

func (b *wgpuRendererBackend) Surface() Surface {
	return b
}

func (b *wgpuRendererBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *wgpuRendererBackend) DrawFrame(f *Frame) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.renderPassDescriptor == nil {
		return errors.New("surface not configured")
	}

	uniform := camera.GPUCameraUniform{ViewProj: f.ViewProj, CameraPosition: f.CameraPosition}
	b.queue.WriteBuffer(b.frame.Buffer(shader.BindingCamera), 0, uniform.Marshal())
	b.queue.WriteBuffer(b.frame.Buffer(shader.BindingLights), 0, light.MarshalBlock(f.Lights))

	type draw struct {
		pipeline pipeline.Pipeline
		mesh     bind_group_provider.BindGroupProvider
		object   bind_group_provider.BindGroupProvider
	}
	items := f.Items()
	draws := make([]draw, 0, len(items))
	seen := make(map[game_object.GameObject]struct{}, len(items))
	for _, item := range items {
		p, err := b.pipelineFor(item.Material)
		if err != nil {
			return err
		}
		mesh, err := b.meshFor(item.Geometry)
		if err != nil {
			return err
		}
		obj, err := b.objectFor(item)
		if err != nil {
			return err
		}
		seen[item.Object] = struct{}{}
		draws = append(draws, draw{pipeline: p, mesh: mesh, object: obj})
	}
	b.pruneObjects(seen)

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()
	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	attachment := &b.renderPassDescriptor.ColorAttachments[0]
	if b.sampleCount > 1 {
		attachment.ResolveTarget = view
	} else {
		attachment.View = view
	}
	attachment.ClearValue = wgpu.Color{R: float64(f.Background[0]), G: float64(f.Background[1]), B: float64(f.Background[2]), A: 1}

	pass := encoder.BeginRenderPass(b.renderPassDescriptor)
	pass.SetBindGroup(shader.GroupFrame, b.frame.BindGroup(), nil)
	for _, d := range draws {
		pass.SetPipeline(d.pipeline.RenderPipeline())
		pass.SetBindGroup(shader.GroupObject, d.object.BindGroup(), nil)
		pass.SetVertexBuffer(0, d.mesh.VertexBuffer(), 0, wgpu.WholeSize)
		pass.SetIndexBuffer(d.mesh.IndexBuffer(), wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(uint32(d.mesh.IndexCount()), 1, 0, 0, 0)
	}
	pass.End()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()
	return nil
}

// pipelineFor returns the render pipeline for m's variant, creating it on first use.
func (b *wgpuRendererBackend) pipelineFor(m material.Material) (pipeline.Pipeline, error) {
	key := pipeline.KeyFor(m)
	if p, ok := b.pipelines[key]; ok {
		return p, nil
	}
	p := pipeline.FromMaterial(m, b.vertexShader, b.fragmentShader)
	if err := b.registerRenderPipeline(p); err != nil {
		return nil, fmt.Errorf("pipeline %s: %w", key, err)
	}
	b.pipelines[key] = p
	common.Logger().Debug("render pipeline created", "key", key)
	return p, nil
}

func (b *wgpuRendererBackend) registerRenderPipeline(p pipeline.Pipeline) error {
	vertexShader := p.Shader(shader.ShaderTypeVertex)
	fragmentShader := p.Shader(shader.ShaderTypeFragment)
	if vertexShader == nil || fragmentShader == nil {
		return errors.New("both vertex and fragment shaders must be set to create a render pipeline")
	}

	vs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          vertexShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: vertexShader.Source()},
	})
	if err != nil {
		return err
	}
	defer vs.Release()
	fs, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          fragmentShader.Key(),
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: fragmentShader.Source()},
	})
	if err != nil {
		return err
	}
	defer fs.Release()

	target := wgpu.ColorTargetState{
		Format:    b.surfaceFormat,
		WriteMask: p.WriteMask(),
	}
	if p.BlendEnabled() {
		target.Blend = p.BlendState()
	}
	depthCompare := wgpu.CompareFunctionLess
	if !p.DepthTestEnabled() {
		depthCompare = wgpu.CompareFunctionAlways
	}

	created, err := b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  p.PipelineKey() + " Render Pipeline",
		Layout: b.pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     vs,
			EntryPoint: vertexShader.EntryPoint(),
			Buffers:    vertexShader.VertexLayouts(),
		},
		Fragment: &wgpu.FragmentState{
			Module:     fs,
			EntryPoint: fragmentShader.EntryPoint(),
			Targets:    []wgpu.ColorTargetState{target},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  p.Topology(),
			FrontFace: p.FrontFace(),
			CullMode:  p.CullMode(),
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: p.DepthWriteEnabled(),
			DepthCompare:      depthCompare,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	if err != nil {
		return err
	}
	p.SetRenderPipeline(created)
	return nil
}

// meshFor returns the vertex and index buffers of g, uploading them on first use.
func (b *wgpuRendererBackend) meshFor(g *geometry.Geometry) (bind_group_provider.BindGroupProvider, error) {
	if p, ok := b.meshes[g]; ok {
		return p, nil
	}
	provider := bind_group_provider.NewBindGroupProvider(g.Name)
	vertexData := geometry.MarshalVertices(g.Vertices)
	indexData := geometry.MarshalIndices(g.Indices)

	vbuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Vertex Buffer",
		Size:  uint64(len(vertexData)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vbuf, 0, vertexData)

	ibuf, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: provider.Label() + " Index Buffer",
		Size:  uint64(len(indexData)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vbuf.Release()
		return nil, err
	}
	b.queue.WriteBuffer(ibuf, 0, indexData)

	provider.SetMesh(vbuf, ibuf, len(g.Indices))
	b.meshes[g] = provider
	return provider, nil
}

// textureFor returns the GPU copy of t, or the white placeholder while t has no pixels.
// A texture whose pixels changed since the last upload is uploaded again.
func (b *wgpuRendererBackend) textureFor(t *texture.Texture) (bind_group_provider.BindGroupProvider, bool, error) {
	if t == nil {
		return b.white, false, nil
	}
	img, version := t.Image()
	if img == nil {
		return b.white, false, nil
	}
	provider, ok := b.textures[t]
	if ok && provider.Version() == version {
		return provider, true, nil
	}
	if !ok {
		provider = bind_group_provider.NewBindGroupProvider(t.Name)
		b.textures[t] = provider
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	data := common.TextureStagingData{
		Pixels: make([]byte, 0, w*h*4),
		Width:  uint32(w),
		Height: uint32(h),
	}
	for y := range h {
		data.Pixels = append(data.Pixels, img.Pix[y*img.Stride:y*img.Stride+w*4]...)
	}
	if err := b.uploadTexture(provider, data); err != nil {
		return nil, false, err
	}
	provider.SetVersion(version)
	return provider, true, nil
}

func (b *wgpuRendererBackend) uploadTexture(provider bind_group_provider.BindGroupProvider, data common.TextureStagingData) error {
	extent := wgpu.Extent3D{
		Width:              data.Width,
		Height:             data.Height,
		DepthOrArrayLayers: 1,
	}
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         provider.Label() + " Texture",
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
		Dimension:     wgpu.TextureDimension2D,
		Size:          extent,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		MipLevelCount: 1,
		SampleCount:   1,
	})
	if err != nil {
		return err
	}

	b.queue.WriteTexture(
		&wgpu.ImageCopyTexture{
			Texture:  tex,
			MipLevel: 0,
			Origin:   wgpu.Origin3D{},
			Aspect:   wgpu.TextureAspectAll,
		},
		data.Pixels,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  data.Width * 4,
			RowsPerImage: data.Height,
		},
		&extent,
	)

	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return err
	}
	provider.SetTexture(tex, view)
	return nil
}

// objectFor writes the model and material uniforms of item and returns its bind group. The
// bind group is rebuilt when the bound texture changes.
func (b *wgpuRendererBackend) objectFor(item DrawItem) (bind_group_provider.BindGroupProvider, error) {
	tex, hasMap, err := b.textureFor(item.Material.Map())
	if err != nil {
		return nil, err
	}

	binding, ok := b.objects[item.Object]
	if ok && binding.material != item.Material {
		binding.provider.Release()
		delete(b.objects, item.Object)
		ok = false
	}
	if !ok {
		params := material.GPUMaterialParams{}
		modelBuf, err := b.createUniform(item.Object.Name()+" Model", shader.ModelUniformSize)
		if err != nil {
			return nil, err
		}
		materialBuf, err := b.createUniform(item.Object.Name()+" Material", uint64(params.Size()))
		if err != nil {
			modelBuf.Release()
			return nil, err
		}
		binding = &objectBinding{
			material: item.Material,
			provider: bind_group_provider.NewBindGroupProvider(item.Object.Name(),
				bind_group_provider.WithBuffer(shader.BindingModel, modelBuf),
				bind_group_provider.WithBuffer(shader.BindingMaterial, materialBuf),
			),
		}
		b.objects[item.Object] = binding
	}

	provider := binding.provider
	if binding.texture != tex || provider.Version() != tex.Version() || provider.BindGroup() == nil {
		bg, err := b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  provider.Label() + " Bind Group",
			Layout: b.layouts[shader.GroupObject],
			Entries: []wgpu.BindGroupEntry{
				{Binding: shader.BindingModel, Buffer: provider.Buffer(shader.BindingModel), Offset: 0, Size: wgpu.WholeSize},
				{Binding: shader.BindingMaterial, Buffer: provider.Buffer(shader.BindingMaterial), Offset: 0, Size: wgpu.WholeSize},
				{Binding: shader.BindingTexture, TextureView: tex.TextureView()},
				{Binding: shader.BindingSampler, Sampler: b.sampler},
			},
		})
		if err != nil {
			return nil, err
		}
		provider.SetBindGroup(bg)
		provider.SetVersion(tex.Version())
		binding.texture = tex
	}

	params := material.Params(item.Material, hasMap)
	b.queue.WriteBuffer(provider.Buffer(shader.BindingModel), 0, common.SliceToBytes(item.World[:]))
	b.queue.WriteBuffer(provider.Buffer(shader.BindingMaterial), 0, params.Marshal())
	return provider, nil
}

// pruneObjects releases bindings of meshes that were not drawn this frame.
func (b *wgpuRendererBackend) pruneObjects(seen map[game_object.GameObject]struct{}) {
	for obj, binding := range b.objects {
		if _, ok := seen[obj]; !ok {
			binding.provider.Release()
			delete(b.objects, obj)
		}
	}
}

func (b *wgpuRendererBackend) ReleaseGeometry(g *geometry.Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p, ok := b.meshes[g]; ok {
		p.Release()
		delete(b.meshes, g)
	}
}

func (b *wgpuRendererBackend) ReleaseMaterial(m material.Material) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for obj, binding := range b.objects {
		if binding.material == m {
			binding.provider.Release()
			delete(b.objects, obj)
		}
	}
}

func (b *wgpuRendererBackend) ReleaseTexture(t *texture.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, ok := b.textures[t]
	if !ok {
		return
	}
	// bind groups still referencing the view are rebuilt against the placeholder next frame
	for _, binding := range b.objects {
		if binding.texture == p {
			binding.texture = nil
		}
	}
	p.Release()
	delete(b.textures, t)
}

func (b *wgpuRendererBackend) Dispose() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, binding := range b.objects {
		binding.provider.Release()
	}
	for _, p := range b.meshes {
		p.Release()
	}
	for _, p := range b.textures {
		p.Release()
	}
	for _, p := range b.pipelines {
		p.Release()
	}
	b.objects, b.meshes, b.textures, b.pipelines = nil, nil, nil, nil

	b.white.Release()
	b.frame.Release()
	b.sampler.Release()
	b.pipelineLayout.Release()
	for _, l := range b.layouts {
		if l != nil {
			l.Release()
		}
	}
	b.releaseTargets()
	b.queue.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
	runtime.UnlockOSThread()
}

// mergeBindGroupLayouts combines the per-group layouts declared by the vertex and fragment
// stages into one descriptor per group. A binding declared by both stages keeps a single
// entry whose visibility covers both.
//
// Parameters:
//   - vertexLayouts: bind group layout descriptors from the vertex shader
//   - fragmentLayouts: bind group layout descriptors from the fragment shader
//
// Returns:
//   - map[int]wgpu.BindGroupLayoutDescriptor: the merged descriptors keyed by group index
func mergeBindGroupLayouts(
	vertexLayouts, fragmentLayouts map[int]wgpu.BindGroupLayoutDescriptor,
) map[int]wgpu.BindGroupLayoutDescriptor {
	merged := make(map[int]wgpu.BindGroupLayoutDescriptor)
	for g, desc := range vertexLayouts {
		merged[g] = desc
	}
	for g, fDesc := range fragmentLayouts {
		vDesc, ok := merged[g]
		if !ok {
			merged[g] = fDesc
			continue
		}

		entryMap := make(map[uint32]wgpu.BindGroupLayoutEntry)
		for _, e := range vDesc.Entries {
			entryMap[e.Binding] = e
		}
		for _, e := range fDesc.Entries {
			if existing, ok := entryMap[e.Binding]; ok {
				existing.Visibility |= e.Visibility
				entryMap[e.Binding] = existing
			} else {
				entryMap[e.Binding] = e
			}
		}

		entries := make([]wgpu.BindGroupLayoutEntry, 0, len(entryMap))
		for _, e := range entryMap {
			entries = append(entries, e)
		}
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].Binding < entries[j].Binding
		})
		merged[g] = wgpu.BindGroupLayoutDescriptor{
			Label:   vDesc.Label,
			Entries: entries,
		}
	}
	return merged
}

// samplerDescriptor converts staged sampler settings into a descriptor. A zero LOD clamp or
// anisotropy falls back to 32 and 1.
func samplerDescriptor(label string, data common.SamplerStagingData) *wgpu.SamplerDescriptor {
	desc := &wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  data.AddressModeU,
		AddressModeV:  data.AddressModeV,
		AddressModeW:  data.AddressModeW,
		MagFilter:     data.MagFilter,
		MinFilter:     data.MinFilter,
		MipmapFilter:  data.MipmapFilter,
		LodMinClamp:   data.LodMinClamp,
		LodMaxClamp:   data.LodMaxClamp,
		MaxAnisotropy: data.MaxAnisotropy,
	}
	if desc.LodMaxClamp == 0 {
		desc.LodMaxClamp = 32
	}
	if desc.MaxAnisotropy == 0 {
		desc.MaxAnisotropy = 1
	}
	return desc
}
