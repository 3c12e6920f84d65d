package graphics

import rl "github.com/gen2brain/raylib-go/raylib"

// Options configures the window.
type Options struct {
	Title      string
	Width      int32
	Height     int32
	Fullscreen bool
	TargetFPS  int32
}

// Run opens the window and drives the main loop until the window is closed. Each frame it
// calls update, then clears the screen and calls draw. setup runs once after the window and
// OpenGL context exist; cleanup runs before the window closes. Either may be nil.
func Run(opts Options, setup, update, draw, cleanup func()) {
	flags := uint32(rl.FlagMsaa4xHint | rl.FlagVsyncHint)
	if opts.Fullscreen {
		flags |= rl.FlagFullscreenMode
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(opts.Width, opts.Height, opts.Title)
	defer rl.CloseWindow()
	if opts.Fullscreen {
		rl.SetWindowSize(rl.GetMonitorWidth(rl.GetCurrentMonitor()), rl.GetMonitorHeight(rl.GetCurrentMonitor()))
	}
	rl.SetTargetFPS(opts.TargetFPS)

	if setup != nil {
		setup()
	}
	if cleanup != nil {
		defer cleanup()
	}
	for !rl.WindowShouldClose() {
		update()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(30, 30, 36, 255))
		draw()
		rl.EndDrawing()
	}
}
