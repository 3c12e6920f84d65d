package world

import (
	"testing"

	"github.com/chewxy/math32"
)

func TestNewSpawnsCrane(t *testing.T) {
	w, err := New(Crane())
	if err != nil {
		t.Fatal(err)
	}
	if len(w.Entities) != 5 {
		t.Fatalf("entities = %d, want 5", len(w.Entities))
	}
	if w.Shapes() != 4 {
		t.Errorf("Shapes() = %d, want 4", w.Shapes())
	}
	knuckle, ok := w.Entity("knuckle_boom")
	if !ok {
		t.Fatal("knuckle_boom missing")
	}
	// 45° about Z lifts the boom's +X end.
	if tip := knuckle.Transform.Rotation.Rotate(Vec3{1, 0, 0}); !vecNear(tip, Vec3{math32.Sqrt(2) / 2, math32.Sqrt(2) / 2, 0}) {
		t.Errorf("knuckle +X = %v", tip)
	}
	if _, ok := w.Entity("nope"); ok {
		t.Error("found an entity that does not exist")
	}
}

func TestNewCopiesLayout(t *testing.T) {
	l := Crane()
	w, err := New(l)
	if err != nil {
		t.Fatal(err)
	}
	l.Placements[0].Name = "changed"
	l.Placements[0].Mesh.Radius = 9
	if w.Entities[0].Name != "stander" || w.Entities[0].Mesh.Radius != 0.5 {
		t.Fatalf("entity follows layout edits: %+v", w.Entities[0])
	}
}

func TestNewRejectsInvalidLayout(t *testing.T) {
	l := Crane()
	l.Placements[1].Mesh.Kind = "torus"
	if _, err := New(l); err == nil {
		t.Fatal("expected an error")
	}
}

func TestSpinSystem(t *testing.T) {
	l := Crane()
	w, err := New(l)
	if err != nil {
		t.Fatal(err)
	}
	w.AddSystem(SpinSystem(l.Pivot, l.SpinRate))

	// pi seconds at 0.5 rad/s is a quarter turn.
	for i := 0; i < 100; i++ {
		w.Update(math32.Pi / 100)
	}
	if math32.Abs(w.Elapsed()-math32.Pi) > 1e-4 {
		t.Errorf("Elapsed() = %g", w.Elapsed())
	}

	boom, _ := w.Entity("main_boom")
	if !vecNear2(boom.Transform.Translation, Vec3{0, 4, -2.5}, 1e-3) {
		t.Errorf("main boom at %v, want [0 4 -2.5]", boom.Transform.Translation)
	}
	stander, _ := w.Entity("stander")
	if !vecNear(stander.Transform.Translation, Vec3{0, 1, 0}) {
		t.Errorf("stander moved to %v", stander.Transform.Translation)
	}
	ground, _ := w.Entity("ground")
	if ground.Transform.Rotation != QuatIdentity() || ground.Transform.Translation != (Vec3{}) {
		t.Errorf("ground moved: %+v", ground.Transform)
	}
}

func TestUpdateRunsSystemsInOrder(t *testing.T) {
	w, err := New(Crane())
	if err != nil {
		t.Fatal(err)
	}
	var order []int
	var gotDt []float32
	w.AddSystem(func(_ *World, dt float32) { order = append(order, 1); gotDt = append(gotDt, dt) })
	w.AddSystem(func(_ *World, dt float32) { order = append(order, 2) })
	w.Update(-1)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("order = %v", order)
	}
	if gotDt[0] != 0 {
		t.Errorf("negative dt passed through as %g", gotDt[0])
	}
	if w.Elapsed() != 0 {
		t.Errorf("Elapsed() = %g, want 0", w.Elapsed())
	}
}

func vecNear2(a, b Vec3, tol float32) bool {
	for i := range a {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
