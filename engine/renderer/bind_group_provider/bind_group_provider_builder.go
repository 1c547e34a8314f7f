package bind_group_provider

import "github.com/cogentcore/webgpu/wgpu"

// BindGroupProviderOption configures a BindGroupProvider at construction.
type BindGroupProviderOption func(*bindGroupProvider)

// WithBuffer hands a uniform buffer to the provider at a binding index, e.g. the camera and
// light blocks of the frame group or the model and material blocks of a mesh. The provider
// releases it in Release.
func WithBuffer(binding int, buf *wgpu.Buffer) BindGroupProviderOption {
	return func(p *bindGroupProvider) {
		p.buffers[binding] = buf
	}
}
