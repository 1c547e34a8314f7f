package scene

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/game_object"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/light"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
)

func TestMeshesSkipDisabledSubtrees(t *testing.T) {
	s := NewScene(WithBackground(common.HexColor(0x18191c)))
	group := game_object.NewGroup("aurora")
	group.Add(game_object.NewMesh("streak", geometry.NewPlaneGeometry(1, 1), material.NewMaterial()))
	card := game_object.NewMesh("card", geometry.NewPlaneGeometry(1, 1), material.NewMaterial())
	s.Add(card, group)

	if n := len(s.Meshes()); n != 2 {
		t.Fatalf("Meshes() = %d, want 2", n)
	}
	group.SetEnabled(false)
	if n := len(s.Meshes()); n != 1 {
		t.Errorf("Meshes() with disabled group = %d, want 1", n)
	}
	if s.Background() != common.HexColor(0x18191c) {
		t.Errorf("Background() = %v", s.Background())
	}
}

func TestLightsSnapshot(t *testing.T) {
	s := NewScene()
	s.AddLight(light.NewLight(light.LightTypeAmbient))
	lights := s.Lights()
	lights[0] = nil
	if s.Lights()[0] == nil {
		t.Error("Lights() exposed internal slice")
	}
}
