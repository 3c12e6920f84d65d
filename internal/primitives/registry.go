package primitives

import (
	"crane/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// cached holds a mesh with its two materials. flat is tinted by colDiffuse only; textured
// samples an albedo texture. Both share the registry's lit shaders.
type cached struct {
	mesh     rl.Mesh
	flat     rl.Material
	textured rl.Material
}

// Registry maps mesh definitions to GPU meshes. Meshes and shaders are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache         map[string]cached
	lit           rl.Shader
	litTextured   rl.Shader
	litLocs       litLocations
	texturedLocs  litLocations
	shadersLoaded bool
	scratch       uniformScratch

	viewPos        [3]float32
	lightPos       [3]float32
	lightRange     float32
	lightIntensity float32
}

// NewRegistry returns an empty registry with a light above the origin.
func NewRegistry() *Registry {
	return &Registry{
		cache:          make(map[string]cached),
		lightPos:       [3]float32{0, 10, 0},
		lightRange:     100,
		lightIntensity: defaultLightIntensity,
		scratch: uniformScratch{
			ambient:    defaultAmbient,
			lightColor: defaultLightColor,
		},
	}
}

// defaultCylinderSlices controls cylinder mesh resolution.
const defaultCylinderSlices = 32

// referenceLumens is the point light intensity that maps to defaultLightIntensity.
const referenceLumens = 10_000_000

// SetView sets camera position for specular highlights. Call once per frame before drawing.
func (r *Registry) SetView(viewPos world.Vec3) {
	r.viewPos = viewPos
}

// SetLight configures the point light from a layout light.
func (r *Registry) SetLight(l world.LightDef) {
	r.lightPos = l.Position
	r.lightRange = l.Range
	r.lightIntensity = min(l.Intensity/referenceLumens, 1.5) * defaultLightIntensity
}

func (r *Registry) ensureShaders() {
	if r.shadersLoaded {
		return
	}
	r.lit = rl.LoadShaderFromMemory(litVS, litFS)
	r.litTextured = rl.LoadShaderFromMemory(litVS, litTexturedFS)
	r.litLocs = resolveLitLocations(r.lit)
	r.texturedLocs = resolveLitLocations(r.litTextured)
	r.shadersLoaded = true
}

// genMesh builds the raylib mesh for def. Cuboids use full edge lengths, planes lie on XZ.
func genMesh(def world.MeshDef) rl.Mesh {
	switch def.Kind {
	case world.MeshCylinder:
		return rl.GenMeshCylinder(def.Radius, def.Height, defaultCylinderSlices)
	case world.MeshPlane:
		return rl.GenMeshPlane(def.Size[0], def.Size[2], 1, 1)
	default:
		return rl.GenMeshCube(def.Size[0], def.Size[1], def.Size[2])
	}
}

// ensure creates the mesh and materials for def if not yet cached.
func (r *Registry) ensure(def world.MeshDef) cached {
	key := def.Key()
	if c, ok := r.cache[key]; ok {
		return c
	}
	r.ensureShaders()
	c := cached{mesh: genMesh(def)}
	c.flat = rl.LoadMaterialDefault()
	if rl.IsShaderValid(r.lit) {
		c.flat.Shader = r.lit
	}
	c.textured = rl.LoadMaterialDefault()
	if albedo := c.textured.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if rl.IsShaderValid(r.litTextured) {
		c.textured.Shader = r.litTextured
	}
	r.cache[key] = c
	return c
}

// centerOffset moves a mesh so its origin is its centre. Raylib cylinders have the base at Y=0.
func centerOffset(def world.MeshDef) rl.Matrix {
	if def.Kind == world.MeshCylinder {
		return rl.MatrixTranslate(0, -def.Height/2, 0)
	}
	return rl.MatrixIdentity()
}

// Draw draws def with a flat tint at the given model matrix.
// Must be called between BeginMode3D and EndMode3D.
func (r *Registry) Draw(def world.MeshDef, model rl.Matrix, tint rl.Color) {
	c := r.ensure(def)
	if albedo := c.flat.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.flat.Shader, &r.litLocs)
	rl.DrawMesh(c.mesh, c.flat, rl.MatrixMultiply(centerOffset(def), model))
}

// DrawWithTexture draws def with tex as albedo. An invalid texture falls back to a white tint.
func (r *Registry) DrawWithTexture(def world.MeshDef, model rl.Matrix, tex rl.Texture2D) {
	if !rl.IsTextureValid(tex) {
		r.Draw(def, model, rl.White)
		return
	}
	c := r.ensure(def)
	rl.SetMaterialTexture(&c.textured, rl.MapAlbedo, tex)
	r.setLitShaderUniforms(c.textured.Shader, &r.texturedLocs)
	rl.DrawMesh(c.mesh, c.textured, rl.MatrixMultiply(centerOffset(def), model))
}

// releaseMaterial frees the maps array of a material built by LoadMaterialDefault.
// UnloadMaterial also unloads the shader and every map texture it references, so the shared
// lit shader and the caller-owned albedo texture are detached first. Id 0 is a no-op for GL.
func releaseMaterial(m *rl.Material) {
	if m.Maps == nil {
		return
	}
	m.Shader = rl.Shader{}
	rl.SetMaterialTexture(m, rl.MapAlbedo, rl.Texture2D{})
	rl.UnloadMaterial(*m)
	*m = rl.Material{}
}

// Unload frees every cached mesh and material, then the shaders. The albedo texture stays
// with its owner.
func (r *Registry) Unload() {
	for key, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		releaseMaterial(&c.flat)
		releaseMaterial(&c.textured)
		delete(r.cache, key)
	}
	if r.shadersLoaded {
		rl.UnloadShader(r.lit)
		rl.UnloadShader(r.litTextured)
		r.shadersLoaded = false
	}
}
