package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
	"github.com/cogentcore/webgpu/wgpu"
)

func TestFromMaterialVariants(t *testing.T) {
	tests := []struct {
		name      string
		mat       material.Material
		blend     bool
		dstFactor wgpu.BlendFactor
		cull      wgpu.CullMode
		depthW    bool
	}{
		{"opaque front", material.NewMaterial(), false, 0, wgpu.CullModeBack, true},
		{"overlay", material.NewMaterial(material.WithTransparent(true), material.WithSide(material.SideDouble)),
			true, wgpu.BlendFactorOneMinusSrcAlpha, wgpu.CullModeNone, true},
		{"aurora", material.NewMaterial(material.WithBlending(material.BlendingAdditive), material.WithDepthWrite(false)),
			true, wgpu.BlendFactorOne, wgpu.CullModeBack, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := FromMaterial(tt.mat, nil, nil)
			if p.BlendEnabled() != tt.blend {
				t.Fatalf("BlendEnabled() = %v", p.BlendEnabled())
			}
			if tt.blend && p.BlendState().Color.DstFactor != tt.dstFactor {
				t.Errorf("dst factor = %v, want %v", p.BlendState().Color.DstFactor, tt.dstFactor)
			}
			if p.CullMode() != tt.cull {
				t.Errorf("CullMode() = %v, want %v", p.CullMode(), tt.cull)
			}
			if p.DepthWriteEnabled() != tt.depthW {
				t.Errorf("DepthWriteEnabled() = %v", p.DepthWriteEnabled())
			}
		})
	}
}

func TestKeyForSharesVariants(t *testing.T) {
	a := material.NewMaterial(material.WithBlending(material.BlendingAdditive), material.WithOpacity(0.2))
	b := material.NewMaterial(material.WithBlending(material.BlendingAdditive), material.WithOpacity(0.9))
	if KeyFor(a) != KeyFor(b) {
		t.Errorf("opacity changed the variant key: %s vs %s", KeyFor(a), KeyFor(b))
	}
	if KeyFor(a) == KeyFor(material.NewMaterial()) {
		t.Error("additive and opaque materials share a key")
	}
}
