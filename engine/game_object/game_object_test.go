package game_object

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-card/common"
	"github.com/Carmen-Shannon/oxy-card/engine/geometry"
	"github.com/Carmen-Shannon/oxy-card/engine/renderer/material"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-5
}

func TestWorldMatrixComposesParents(t *testing.T) {
	group := NewGroup("card-group")
	group.SetPosition(0, -1, 0)
	group.SetScale(0.5, 0.5, 1)

	card := NewMesh("card", geometry.NewPlaneGeometry(1, 1), material.NewMaterial())
	card.SetPosition(2, 0, 0.05)
	group.Add(card)

	var world [16]float32
	card.WorldMatrix(world[:])
	p := common.TransformPoint(world[:], [3]float32{0, 0, 0})
	if !near(p[0], 1) || !near(p[1], -1) || !near(p[2], 0.05) {
		t.Errorf("card origin in world = %v, want (1, -1, 0.05)", p)
	}
}

func TestAddReparents(t *testing.T) {
	a, b := NewGroup("a"), NewGroup("b")
	child := NewGroup("child")
	a.Add(child)
	b.Add(child)

	if len(a.Children()) != 0 {
		t.Errorf("old parent still has %d children", len(a.Children()))
	}
	if child.Parent() != b {
		t.Error("child parent not updated")
	}
	if !b.Remove(child) || child.Parent() != nil {
		t.Error("Remove did not detach the child")
	}
	if b.Remove(child) {
		t.Error("second Remove reported success")
	}
}

func TestTraverseSkipsSubtree(t *testing.T) {
	root := NewGroup("root")
	hidden := NewGroup("hidden")
	hidden.Add(NewGroup("inside"))
	root.Add(hidden)
	root.Add(NewGroup("visible"))

	var names []string
	root.Traverse(func(obj GameObject) bool {
		names = append(names, obj.Name())
		return obj.Name() != "hidden"
	})
	want := []string{"root", "hidden", "visible"}
	if len(names) != len(want) {
		t.Fatalf("visited %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("visit[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestIsMesh(t *testing.T) {
	if NewGroup("g").IsMesh() {
		t.Error("group reported as mesh")
	}
	if !NewMesh("m", geometry.NewPlaneGeometry(1, 1), material.NewMaterial()).IsMesh() {
		t.Error("mesh not reported as mesh")
	}
}
