package debug

import (
	"fmt"
	"runtime"

	"crane/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	fontSize   = 20
	padding    = 12
	lineHeight = fontSize + 4
	// updateInterval: only refresh overlay text every N frames to reduce allocations.
	updateInterval = 30
)

// Overlay draws runtime counters in the top-right corner. All lines are off by default.
type Overlay struct {
	ShowFPS      bool
	ShowMemAlloc bool
	ShowShapes   bool

	world      *world.World
	frameCount uint32
	lines      [3]string
	memStats   runtime.MemStats
}

// New returns an overlay reporting on w. w may be nil, in which case ShowShapes draws nothing.
func New(w *world.World) *Overlay {
	return &Overlay{world: w}
}

func (o *Overlay) refresh() {
	o.lines = [3]string{}
	if o.ShowFPS {
		o.lines[0] = fmt.Sprintf("FPS: %d", rl.GetFPS())
	}
	if o.ShowMemAlloc {
		runtime.ReadMemStats(&o.memStats)
		o.lines[1] = fmt.Sprintf("Mem: %.2f MiB", float64(o.memStats.Alloc)/(1024*1024))
	}
	if o.ShowShapes && o.world != nil {
		o.lines[2] = fmt.Sprintf("Shapes: %d  t=%.1fs", o.world.Shapes(), o.world.Elapsed())
	}
}

// Draw renders the enabled lines. Call after the scene in the draw loop.
// Text is only recomputed every updateInterval frames.
func (o *Overlay) Draw() {
	if !o.ShowFPS && !o.ShowMemAlloc && !o.ShowShapes {
		return
	}
	if o.frameCount%updateInterval == 0 {
		o.refresh()
	}
	o.frameCount++

	screenW := int32(rl.GetScreenWidth())
	y := int32(padding)
	for _, text := range o.lines {
		if text == "" {
			continue
		}
		x := screenW - rl.MeasureText(text, fontSize) - padding
		rl.DrawText(text, x, y, fontSize, rl.Green)
		y += lineHeight
	}
}
