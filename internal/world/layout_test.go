package world

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/chewxy/math32"
)

func TestCraneIsValid(t *testing.T) {
	if err := Crane().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLayoutRoundTrip(t *testing.T) {
	want := Crane()
	data, err := want.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	got, err := ParseLayout(data)
	if err != nil {
		t.Fatalf("ParseLayout: %v\n%s", err, data)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch\ngot  %+v\nwant %+v", got, want)
	}
}

func TestLoadLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.yaml")
	src := `pivot: [0, 0, 0]
spin_rate: 1
placements:
  - name: post
    mesh: {kind: cylinder, radius: 0.25, height: 3}
    material: {texture: uv_debug}
    position: [0, 1.5, 0]
    spin: true
light: {position: [1, 2, 3], intensity: 100, range: 10}
camera: {position: [0, 2, 5], target: [0, 0, 0], fovy: 60}
`
	if err := os.WriteFile(path, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	l, err := LoadLayout(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(l.Placements) != 1 || l.Placements[0].Mesh.Height != 3 || !l.Placements[0].Spin {
		t.Fatalf("unexpected placements: %+v", l.Placements)
	}
	if l.Camera.Fovy != 60 || l.Light.Position != (Vec3{1, 2, 3}) {
		t.Fatalf("unexpected light/camera: %+v %+v", l.Light, l.Camera)
	}
}

func TestLoadLayoutMissing(t *testing.T) {
	if _, err := LoadLayout(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err = %v, want ErrNotExist", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"unknown mesh", func(l *Layout) { l.Placements[0].Mesh.Kind = "torus" }},
		{"zero cylinder radius", func(l *Layout) { l.Placements[0].Mesh.Radius = 0 }},
		{"negative cuboid size", func(l *Layout) { l.Placements[1].Mesh.Size[1] = -1 }},
		{"flat plane", func(l *Layout) { l.Placements[4].Mesh.Size[2] = 0 }},
		{"unknown texture", func(l *Layout) { l.Placements[2].Material.Texture = "brick" }},
		{"bad color", func(l *Layout) { l.Placements[4].Material.Color = "silver" }},
		{"bad hex", func(l *Layout) { l.Placements[4].Material.Color = "#zzzzzz" }},
		{"duplicate name", func(l *Layout) { l.Placements[3].Name = "cabin" }},
		{"missing name", func(l *Layout) { l.Placements[3].Name = "" }},
		{"negative spin", func(l *Layout) { l.SpinRate = -1 }},
		{"negative light range", func(l *Layout) { l.Light.Range = -5 }},
		{"zero fovy", func(l *Layout) { l.Camera.Fovy = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Crane()
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestParseLayoutRejectsMalformedYAML(t *testing.T) {
	if _, err := ParseLayout([]byte("placements: [")); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
}

func TestMaterialRGB(t *testing.T) {
	r, g, b, err := MaterialDef{Color: "#c0a010"}.RGB()
	if err != nil {
		t.Fatal(err)
	}
	if r != 0xc0 || g != 0xa0 || b != 0x10 {
		t.Errorf("RGB = %d %d %d", r, g, b)
	}
	if r, g, b, _ := (MaterialDef{}).RGB(); r != 255 || g != 255 || b != 255 {
		t.Errorf("empty color = %d %d %d, want white", r, g, b)
	}
}

func TestMeshKey(t *testing.T) {
	a := MeshDef{Kind: MeshCuboid, Size: [3]float32{5, 0.75, 0.75}}
	b := MeshDef{Kind: MeshCuboid, Size: [3]float32{2.5, 0.75, 0.75}}
	if a.Key() == b.Key() {
		t.Fatalf("distinct cuboids share key %q", a.Key())
	}
	if got := (MeshDef{Kind: MeshCylinder, Radius: 0.5, Height: 2}).Key(); got != "cylinder:0.5x2" {
		t.Errorf("cylinder key = %q", got)
	}
}

func TestSampleSceneMatchesCrane(t *testing.T) {
	l, err := LoadLayout(filepath.Join("..", "..", "scenes", "crane.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(l, Crane()) {
		t.Fatalf("scenes/crane.yaml drifted from Crane()\ngot  %+v\nwant %+v", l, Crane())
	}
}

func TestValidateRejectsNonFinite(t *testing.T) {
	nan := math32.NaN()
	inf := math32.Inf(1)
	tests := []struct {
		name   string
		mutate func(l *Layout)
	}{
		{"nan fovy", func(l *Layout) { l.Camera.Fovy = nan }},
		{"nan spin", func(l *Layout) { l.SpinRate = nan }},
		{"inf spin", func(l *Layout) { l.SpinRate = inf }},
		{"nan pivot", func(l *Layout) { l.Pivot[1] = nan }},
		{"nan radius", func(l *Layout) { l.Placements[0].Mesh.Radius = nan }},
		{"nan cuboid size", func(l *Layout) { l.Placements[1].Mesh.Size[0] = nan }},
		{"nan plane height", func(l *Layout) { l.Placements[4].Mesh.Size[1] = nan }},
		{"inf position", func(l *Layout) { l.Placements[2].Position[0] = inf }},
		{"nan rotation", func(l *Layout) { l.Placements[3].Rotation[2] = nan }},
		{"nan light range", func(l *Layout) { l.Light.Range = nan }},
		{"inf light intensity", func(l *Layout) { l.Light.Intensity = inf }},
		{"nan camera target", func(l *Layout) { l.Camera.Target[0] = nan }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Crane()
			tt.mutate(&l)
			if err := l.Validate(); !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("err = %v, want ErrInvalidLayout", err)
			}
		})
	}
}

func TestParseLayoutRejectsYAMLNaN(t *testing.T) {
	data, err := Crane().Marshal()
	if err != nil {
		t.Fatal(err)
	}
	bad := strings.Replace(string(data), "fovy: 45", "fovy: .nan", 1)
	if bad == string(data) {
		t.Fatal("fovy not found in marshalled layout")
	}
	if _, err := ParseLayout([]byte(bad)); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
}

func TestApplyOverride(t *testing.T) {
	tests := []struct {
		name     string
		override Override
		want     float32
	}{
		{"zero keeps layout rate", Override{}, 0.5},
		{"positive replaces rate", Override{SpinRate: 2}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := Crane()
			if err := l.Apply(tt.override); err != nil {
				t.Fatal(err)
			}
			if l.SpinRate != tt.want {
				t.Errorf("spin rate = %g, want %g", l.SpinRate, tt.want)
			}
			if !reflect.DeepEqual(l.Placements, Crane().Placements) || l.Camera != Crane().Camera {
				t.Error("override touched fields it does not carry")
			}
		})
	}
}

func TestApplyOverrideRevalidates(t *testing.T) {
	l := Crane()
	if err := l.Apply(Override{SpinRate: -1}); !errors.Is(err, ErrInvalidLayout) {
		t.Fatalf("err = %v, want ErrInvalidLayout", err)
	}
}
