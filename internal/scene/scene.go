package scene

import (
	"crane/internal/logger"
	"crane/internal/primitives"
	"crane/internal/texture"
	"crane/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	gridExtent     = 25
	gridMinorStep  = 1
	gridMajorStep  = 5
	gridMinorAlpha = 50
	gridMajorAlpha = 120
	axisLineAlpha  = 220
	// gridLift keeps grid lines above the ground plane to avoid z-fighting.
	gridLift = 0.01
)

// Scene draws a world through a fixed 3D camera. Update advances the world by the frame
// time; Draw renders between BeginMode3D and EndMode3D.
type Scene struct {
	Camera      rl.Camera3D
	GridVisible bool

	world *world.World
	reg   *primitives.Registry
	log   *logger.Logger

	// The debug texture is generated up front; the GPU upload is deferred until the first
	// Draw, after the window/OpenGL context exists.
	debugImg     *texture.Image
	debugTex     rl.Texture2D
	debugPending bool
}

// New returns a scene viewing w from the world's camera, lit by the world's light.
func New(w *world.World, reg *primitives.Registry, log *logger.Logger) *Scene {
	s := &Scene{
		world:        w,
		reg:          reg,
		log:          log,
		debugImg:     texture.UVDebug(),
		debugPending: true,
	}
	cam := w.Camera
	s.Camera.Position = rl.NewVector3(cam.Position[0], cam.Position[1], cam.Position[2])
	s.Camera.Target = rl.NewVector3(cam.Target[0], cam.Target[1], cam.Target[2])
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = cam.Fovy
	s.Camera.Projection = rl.CameraPerspective
	reg.SetLight(w.Light)
	if w.Light.Shadows {
		log.Debug("shadow maps are not rendered; light is unshadowed")
	}
	return s
}

// SetGridVisible sets whether the editor grid is drawn.
func (s *Scene) SetGridVisible(visible bool) {
	s.GridVisible = visible
}

// Update runs the world's systems for one frame.
func (s *Scene) Update() {
	s.world.Update(rl.GetFrameTime())
}

// ensureDebugTexture uploads the UV debug texture with point filtering so texels stay sharp.
func (s *Scene) ensureDebugTexture() {
	if !s.debugPending {
		return
	}
	s.debugPending = false
	img := s.debugImg
	// raylib has no sRGB texture format; bytes are uploaded as-is and sampled as UNORM.
	rlImg := rl.NewImage(img.Pix, int32(img.Width), int32(img.Height), 1, rl.UncompressedR8g8b8a8)
	s.debugTex = rl.LoadTextureFromImage(rlImg)
	if !rl.IsTextureValid(s.debugTex) {
		s.log.Error("debug texture upload failed", "width", img.Width, "height", img.Height)
		return
	}
	rl.SetTextureFilter(s.debugTex, rl.FilterPoint)
	s.log.Info("debug texture uploaded", "width", img.Width, "height", img.Height, "format", img.Format)
}

// ModelMatrix converts a world transform to a raylib model matrix: rotate, then translate.
func ModelMatrix(t world.Transform) rl.Matrix {
	q := t.Rotation
	rot := rl.QuaternionToMatrix(rl.NewQuaternion(q.X, q.Y, q.Z, q.W))
	trans := rl.MatrixTranslate(t.Translation[0], t.Translation[1], t.Translation[2])
	return rl.MatrixMultiply(rot, trans)
}

// Draw renders every entity, then the grid when GridVisible is true.
// Call after ClearBackground and before any 2D overlay.
func (s *Scene) Draw() {
	s.ensureDebugTexture()
	p := s.Camera.Position
	s.reg.SetView(world.Vec3{p.X, p.Y, p.Z})

	rl.BeginMode3D(s.Camera)
	for i := range s.world.Entities {
		s.drawEntity(&s.world.Entities[i])
	}
	if s.GridVisible {
		drawEditorGrid()
	}
	rl.EndMode3D()
}

func (s *Scene) drawEntity(e *world.Entity) {
	model := ModelMatrix(e.Transform)
	if e.Material.Texture == world.TextureUVDebug {
		s.reg.DrawWithTexture(e.Mesh, model, s.debugTex)
		return
	}
	r, g, b, err := e.Material.RGB()
	if err != nil {
		// Layouts are validated before a world is built.
		r, g, b = 255, 0, 255
	}
	s.reg.Draw(e.Mesh, model, rl.NewColor(r, g, b, 255))
}

// Unload releases the debug texture and the registry's GPU resources.
func (s *Scene) Unload() {
	if rl.IsTextureValid(s.debugTex) {
		rl.UnloadTexture(s.debugTex)
	}
	s.reg.Unload()
}

// drawEditorGrid draws a grid on the XZ plane with major/minor lines and X/Z axis lines.
// Reuses start/end vectors to avoid per-frame allocations in the hot loop.
func drawEditorGrid() {
	minor := rl.NewColor(128, 128, 128, gridMinorAlpha)
	major := rl.NewColor(160, 160, 160, gridMajorAlpha)
	axisX := rl.NewColor(220, 80, 80, axisLineAlpha)
	axisZ := rl.NewColor(80, 80, 220, axisLineAlpha)

	var start, end rl.Vector3
	for i := -gridExtent; i <= gridExtent; i += gridMinorStep {
		c := major
		if i%gridMajorStep != 0 {
			c = minor
		}
		start.X, start.Y, start.Z = float32(i), gridLift, -gridExtent
		end.X, end.Y, end.Z = float32(i), gridLift, gridExtent
		rl.DrawLine3D(start, end, c)
		start.X, start.Y, start.Z = -gridExtent, gridLift, float32(i)
		end.X, end.Y, end.Z = gridExtent, gridLift, float32(i)
		rl.DrawLine3D(start, end, c)
	}

	start.X, start.Y, start.Z = -gridExtent, 2*gridLift, 0
	end.X, end.Y, end.Z = gridExtent, 2*gridLift, 0
	rl.DrawLine3D(start, end, axisX)
	start.X, start.Y, start.Z = 0, 2*gridLift, -gridExtent
	end.X, end.Y, end.Z = 0, 2*gridLift, gridExtent
	rl.DrawLine3D(start, end, axisZ)
}
