package common

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestOrthoMapsFrustumCornersToClipSpace(t *testing.T) {
	var m [16]float32
	Ortho(m[:], -2, 2, 1.25, -1.25, 0.001, 1000)

	cases := []struct {
		name string
		in   [3]float32
		want [3]float32
	}{
		{"left-bottom-near", [3]float32{-2, -1.25, -0.001}, [3]float32{-1, -1, 0}},
		{"right-top-far", [3]float32{2, 1.25, -1000}, [3]float32{1, 1, 1}},
		{"center", [3]float32{0, 0, -0.001}, [3]float32{0, 0, 0}},
	}
	for _, tc := range cases {
		got := TransformPoint(m[:], tc.in)
		for i := 0; i < 3; i++ {
			if !approx(got[i], tc.want[i]) {
				t.Errorf("%s: component %d = %v, want %v", tc.name, i, got[i], tc.want[i])
			}
		}
		if got[3] != 1 {
			t.Errorf("%s: w = %v, want 1", tc.name, got[3])
		}
	}
}

func TestOrthoDegenerateLeavesIdentity(t *testing.T) {
	var m [16]float32
	Ortho(m[:], 1, 1, 1, -1, 0.1, 10)
	var id [16]float32
	Identity(id[:])
	if m != id {
		t.Errorf("degenerate ortho = %v, want identity", m)
	}
}

func TestBuildModelMatrixAppliesZRotationFirst(t *testing.T) {
	var m [16]float32
	// Rotating +90 degrees around Z maps +X to +Y; a following +90 degrees around X maps +Y to +Z.
	BuildModelMatrix(m[:], 0, 0, 0, math.Pi/2, 0, math.Pi/2, 1, 1, 1)
	got := TransformPoint(m[:], [3]float32{1, 0, 0})
	if !approx(got[0], 0) || !approx(got[1], 0) || !approx(got[2], 1) {
		t.Errorf("rotated +X = %v, want (0, 0, 1)", got)
	}
}

func TestBuildModelMatrixScaleAndTranslate(t *testing.T) {
	var m [16]float32
	BuildModelMatrix(m[:], 1, 2, 3, 0, 0, 0, 0.45, 0.45, 1)
	got := TransformPoint(m[:], [3]float32{2, 1, 0})
	want := [3]float32{1.9, 2.45, 3}
	for i := range want {
		if !approx(got[i], want[i]) {
			t.Errorf("component %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestInvert4RoundTrip(t *testing.T) {
	var m, inv, prod, id [16]float32
	BuildModelMatrix(m[:], 0.5, -1, 2, 0.2, -0.3, 0.7, 1.1, 0.9, 1)
	if !Invert4(inv[:], m[:]) {
		t.Fatal("Invert4 reported a singular matrix")
	}
	Mul4(prod[:], m[:], inv[:])
	Identity(id[:])
	for i := range prod {
		if !approx(prod[i], id[i]) {
			t.Fatalf("m * inv(m)[%d] = %v, want %v", i, prod[i], id[i])
		}
	}
}

func TestInvert4Singular(t *testing.T) {
	var m, out [16]float32
	if Invert4(out[:], m[:]) {
		t.Error("zero matrix should be singular")
	}
}

func TestLookAtFromPositiveZ(t *testing.T) {
	var v [16]float32
	LookAt(v[:], 0, 0, 8, 0, 0, 0, 0, 1, 0)
	got := TransformPoint(v[:], [3]float32{0, 0, 0})
	if !approx(got[2], -8) {
		t.Errorf("origin in view space z = %v, want -8", got[2])
	}
}

func TestSymmetricFrustum(t *testing.T) {
	f := SymmetricFrustum(2.5, 3)
	if !approx(f.Width(), 7.5) || !approx(f.Height(), 2.5) {
		t.Errorf("frustum = %+v, want width 7.5 height 2.5", f)
	}
	if f.Left != -f.Right || f.Top != -f.Bottom {
		t.Errorf("frustum %+v is not symmetric", f)
	}
}

func TestHexColor(t *testing.T) {
	c := HexColor(0x60a5fa)
	if !approx(c[0], 0x60/255.0) || !approx(c[1], 0xa5/255.0) || !approx(c[2], 0xfa/255.0) {
		t.Errorf("HexColor(0x60a5fa) = %v", c)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(0.5, -0.3, 0.3); got != 0.3 {
		t.Errorf("Clamp(0.5) = %v, want 0.3", got)
	}
	if got := Clamp(-2, -1, 1); got != -1 {
		t.Errorf("Clamp(-2) = %v, want -1", got)
	}
}
