package primitives

import (
	"testing"

	"crane/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestNewRegistryUniformDefaults(t *testing.T) {
	r := NewRegistry()
	if r.scratch.ambient != defaultAmbient {
		t.Errorf("ambient = %v, want %v", r.scratch.ambient, defaultAmbient)
	}
	if r.scratch.lightColor != defaultLightColor {
		t.Errorf("lightColor = %v, want %v", r.scratch.lightColor, defaultLightColor)
	}
	if r.shadersLoaded {
		t.Error("shaders loaded before first draw")
	}
}

func TestSetLight(t *testing.T) {
	r := NewRegistry()
	r.SetLight(world.LightDef{Position: world.Vec3{8, 16, 8}, Intensity: referenceLumens, Range: 100})
	if r.lightPos != [3]float32{8, 16, 8} || r.lightRange != 100 {
		t.Errorf("light = %v range %g", r.lightPos, r.lightRange)
	}
	if r.lightIntensity != defaultLightIntensity {
		t.Errorf("intensity = %g, want %g", r.lightIntensity, defaultLightIntensity)
	}
	r.SetLight(world.LightDef{Intensity: 100 * referenceLumens})
	if want := 1.5 * defaultLightIntensity; r.lightIntensity != want {
		t.Errorf("clamped intensity = %g, want %g", r.lightIntensity, want)
	}
}

func TestReleaseMaterialWithoutMaps(t *testing.T) {
	var m rl.Material
	releaseMaterial(&m)
	if m.Maps != nil {
		t.Error("maps not cleared")
	}
}

func TestUnloadEmptyRegistry(t *testing.T) {
	r := NewRegistry()
	r.Unload()
	if len(r.cache) != 0 || r.shadersLoaded {
		t.Error("empty registry left state behind after Unload")
	}
}
