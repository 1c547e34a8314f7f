package shader

import (
	"strings"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
)

func TestMeshShadersDeclareMatchingGroups(t *testing.T) {
	vs, fs := MeshVertexShader(), MeshFragmentShader()
	for _, s := range []Shader{vs, fs} {
		if !strings.Contains(s.Source(), "fn "+s.EntryPoint()+"(") {
			t.Errorf("%s: entry point %q not found in source", s.Key(), s.EntryPoint())
		}
		layouts := s.BindGroupLayoutDescriptors()
		if len(layouts[GroupFrame].Entries) != 2 || len(layouts[GroupObject].Entries) != 4 {
			t.Errorf("%s: unexpected layout entry counts", s.Key())
		}
	}
	if len(vs.VertexLayouts()) != 1 || vs.VertexLayouts()[0].ArrayStride != 32 {
		t.Errorf("vertex layout = %+v", vs.VertexLayouts())
	}
	if fs.VertexLayouts() != nil {
		t.Error("fragment shader has vertex layouts")
	}
	if vs.BindGroupLayoutDescriptors()[GroupObject].Entries[0].Visibility != wgpu.ShaderStageVertex {
		t.Error("vertex shader layout has wrong visibility")
	}
}

func TestNewShaderPanicsWithoutSource(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("NewShader accepted empty source")
		}
	}()
	NewShader("empty", ShaderTypeVertex, "")
}
