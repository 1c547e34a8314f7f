package light

import (
	"encoding/binary"
	"math"
	"testing"
)

func TestSpotDirectionAndCones(t *testing.T) {
	spot := NewLight(LightTypeSpot,
		WithPosition(0, 0, 5),
		WithTarget(0, 0, 0),
		WithIntensity(2.2),
		WithSpotCone(math.Pi/2, 0.4),
	)
	if d := spot.Direction(); d != [3]float32{0, 0, -1} {
		t.Errorf("Direction() = %v, want (0,0,-1)", d)
	}
	if spot.OuterCone() > 1e-6 {
		t.Errorf("OuterCone() = %v, want cos(π/2) = 0", spot.OuterCone())
	}
	if spot.InnerCone() <= spot.OuterCone() {
		t.Errorf("InnerCone %v must exceed OuterCone %v", spot.InnerCone(), spot.OuterCone())
	}
}

func TestSetIntensityClamps(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithIntensity(0.4))
	l.SetIntensity(-1)
	if l.Intensity() != 0 {
		t.Errorf("Intensity() = %v, want 0", l.Intensity())
	}
}

func TestMarshalBlockSkipsDisabled(t *testing.T) {
	lights := []Light{
		NewLight(LightTypeAmbient, WithIntensity(0.4)),
		NewLight(LightTypeDirectional, WithEnabled(false)),
		NewLight(LightTypeDirectional, WithPosition(2, 1, 2), WithIntensity(0.8)),
	}
	buf := MarshalBlock(lights)
	if len(buf) != GPULightBlockSize {
		t.Fatalf("len = %d, want %d", len(buf), GPULightBlockSize)
	}
	if n := binary.LittleEndian.Uint32(buf[0:4]); n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	second := buf[16+64:]
	if typ := binary.LittleEndian.Uint32(second[12:16]); typ != uint32(LightTypeDirectional) {
		t.Errorf("second slot type = %d, want directional", typ)
	}
	if g := (&GPULight{}); g.Size() != 64 {
		t.Errorf("GPULight size = %d, want 64", g.Size())
	}
}

func TestHexColor(t *testing.T) {
	l := NewLight(LightTypeAmbient, WithHexColor(0xff8000))
	if c := l.Color(); c != [3]float32{1, float32(0x80) / 255, 0} {
		t.Errorf("Color() = %v", c)
	}
}
