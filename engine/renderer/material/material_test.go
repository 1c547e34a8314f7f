package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-card/common"
)

func TestAdditiveImpliesTransparent(t *testing.T) {
	m := NewMaterial(WithBlending(BlendingAdditive), WithDepthWrite(false))
	if !m.Transparent() {
		t.Error("additive material is not transparent")
	}
	if m.DepthWrite() {
		t.Error("DepthWrite() = true")
	}
}

func TestOpacityClamped(t *testing.T) {
	m := NewMaterial(WithOpacity(2))
	if m.Opacity() != 1 {
		t.Errorf("Opacity() = %v, want 1", m.Opacity())
	}
	m.SetOpacity(-0.5)
	if m.Opacity() != 0 {
		t.Errorf("Opacity() = %v, want 0", m.Opacity())
	}
}

func TestParams(t *testing.T) {
	m := NewMaterial(
		WithType(TypeStandard),
		WithColor(common.HexColor(0x60a5fa)),
		WithOpacity(0.5),
		WithMetalness(0.7),
		WithRoughness(0.38),
		WithSide(SideDouble),
	)
	p := Params(m, true)
	if p.Color[3] != 0.5 || p.Params[0] != 0.7 || p.Params[3] != 1 {
		t.Errorf("Params = %+v", p)
	}
	if p.Flags[0] != 1 || p.Flags[1] != uint32(SideDouble) {
		t.Errorf("Flags = %v", p.Flags)
	}
	if len(p.Marshal()) != p.Size() {
		t.Errorf("Marshal length %d != Size %d", len(p.Marshal()), p.Size())
	}
}

func TestDisposeNotifies(t *testing.T) {
	m := NewMaterial()
	called := 0
	m.OnDispose(func() { called++ })
	m.Dispose()
	m.Dispose()
	if called != 1 || !m.Disposed() {
		t.Errorf("called=%d disposed=%v", called, m.Disposed())
	}
}
