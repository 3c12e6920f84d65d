package main

import (
	"fmt"
	"os"
	"path/filepath"

	"crane/internal/debug"
	"crane/internal/graphics"
	"crane/internal/primitives"
	"crane/internal/scene"
	"crane/internal/texture"
	"crane/internal/world"

	"github.com/alecthomas/kong"
)

// loadLayout returns the layout at override, else the one named by the prefs, else the
// built-in crane. A non-zero prefs spin rate replaces the layout's.
func loadLayout(a *app, override string) (world.Layout, error) {
	path := a.prefs.Scene
	if override != "" {
		path = override
	}
	l := world.Crane()
	if path != "" {
		var err error
		if l, err = world.LoadLayout(path); err != nil {
			return world.Layout{}, err
		}
		a.log.Info("layout loaded", "path", path, "placements", len(l.Placements))
	}
	if err := l.Apply(world.Override{SpinRate: a.prefs.SpinRate}); err != nil {
		return world.Layout{}, err
	}
	return l, nil
}

type RunCmd struct {
	Scene string `help:"Layout YAML to load instead of the built-in crane." type:"existingfile"`
}

func (c *RunCmd) Run(a *app) error {
	layout, err := loadLayout(a, c.Scene)
	if err != nil {
		return err
	}
	w, err := world.New(layout)
	if err != nil {
		return err
	}
	w.AddSystem(world.SpinSystem(layout.Pivot, layout.SpinRate))

	overlay := debug.New(w)
	overlay.ShowFPS = a.prefs.ShowFPS
	overlay.ShowMemAlloc = a.prefs.ShowMemAlloc
	overlay.ShowShapes = a.prefs.ShowShapes

	scn := scene.New(w, primitives.NewRegistry(), a.log)
	scn.SetGridVisible(a.prefs.GridVisible)

	opts := graphics.Options{
		Title:      "crane",
		Width:      a.prefs.Width,
		Height:     a.prefs.Height,
		Fullscreen: a.prefs.Fullscreen,
		TargetFPS:  a.prefs.TargetFPS,
	}
	a.log.Info("starting", "entities", len(w.Entities), "shapes", w.Shapes(), "spin_rate", layout.SpinRate)
	graphics.Run(opts, nil, scn.Update, func() {
		scn.Draw()
		overlay.Draw()
	}, scn.Unload)
	a.log.Info("window closed", "elapsed", w.Elapsed())
	return nil
}

type TextureCmd struct {
	Out   string `help:"Output image; .png or .bmp." default:"uv_debug.png" type:"path"`
	Scale int    `help:"Pixels per texel in the output." default:"32"`
}

func (c *TextureCmd) Validate(_ *kong.Context) error {
	if c.Scale < 1 {
		return fmt.Errorf("invalid scale: %d", c.Scale)
	}
	return nil
}

func (c *TextureCmd) Run(a *app) error {
	img := texture.UVDebug()
	if err := texture.Export(c.Out, img, c.Scale); err != nil {
		return err
	}
	a.log.Info("texture written", "path", c.Out, "width", img.Width*c.Scale, "height", img.Height*c.Scale)
	return nil
}

type LayoutCmd struct {
	Scene string `help:"Layout YAML to normalize instead of the built-in crane." type:"existingfile"`
	Out   string `help:"Write to this file instead of stdout." type:"path"`
}

func (c *LayoutCmd) Run(a *app) error {
	l, err := loadLayout(a, c.Scene)
	if err != nil {
		return err
	}
	data, err := l.Marshal()
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if c.Out == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(c.Out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(c.Out, data, 0644); err != nil {
		return err
	}
	a.log.Info("layout written", "path", c.Out)
	return nil
}
