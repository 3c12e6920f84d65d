package engineconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPath is the prefs file, relative to the process working directory.
const DefaultPath = "config/engine.json"

// Environment variables that override Prefs after loading.
const (
	EnvScene      = "CRANE_SCENE"
	EnvSpinRate   = "CRANE_SPIN_RATE"
	EnvFullscreen = "CRANE_FULLSCREEN"
	EnvShowFPS    = "CRANE_SHOW_FPS"
)

// Prefs holds window and overlay preferences. Persisted across runs.
// Scene is a layout YAML path; empty means the built-in crane. SpinRate of 0 keeps the
// layout's own rate.
type Prefs struct {
	ShowFPS      bool    `json:"show_fps"`
	ShowMemAlloc bool    `json:"show_memalloc"`
	ShowShapes   bool    `json:"show_shapes"`
	GridVisible  bool    `json:"grid_visible"`
	Fullscreen   bool    `json:"fullscreen"`
	Width        int32   `json:"width"`
	Height       int32   `json:"height"`
	TargetFPS    int32   `json:"target_fps"`
	Scene        string  `json:"scene,omitempty"`
	SpinRate     float32 `json:"spin_rate,omitempty"`
}

// Default returns windowed 1280×720 at 60 FPS, overlays off, grid off.
func Default() Prefs {
	return Prefs{
		Width:     1280,
		Height:    720,
		TargetFPS: 60,
	}
}

// Load reads prefs from path. A missing file yields Default() and no error. Fields absent
// from the file keep their default values.
func Load(path string) (Prefs, error) {
	p := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return p, fmt.Errorf("engineconfig: %w", err)
	}
	if err := json.Unmarshal(data, &p); err != nil {
		return Default(), fmt.Errorf("engineconfig: %s: %w", path, err)
	}
	p.sanitize()
	return p, nil
}

// Save writes prefs to path, creating the parent directory if needed.
func Save(path string, p Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides p from CRANE_* variables. Unparseable values are reported and skipped.
func ApplyEnv(p Prefs) (Prefs, error) {
	var firstErr error
	keep := func(err error) {
		if firstErr == nil {
			firstErr = err
		}
	}
	if v, ok := os.LookupEnv(EnvScene); ok {
		p.Scene = v
	}
	if v, ok := os.LookupEnv(EnvSpinRate); ok {
		if f, err := strconv.ParseFloat(v, 32); err != nil || f < 0 {
			keep(fmt.Errorf("engineconfig: %s=%q: want a non-negative number", EnvSpinRate, v))
		} else {
			p.SpinRate = float32(f)
		}
	}
	if v, ok := os.LookupEnv(EnvFullscreen); ok {
		if b, err := strconv.ParseBool(v); err != nil {
			keep(fmt.Errorf("engineconfig: %s=%q: %w", EnvFullscreen, v, err))
		} else {
			p.Fullscreen = b
		}
	}
	if v, ok := os.LookupEnv(EnvShowFPS); ok {
		if b, err := strconv.ParseBool(v); err != nil {
			keep(fmt.Errorf("engineconfig: %s=%q: %w", EnvShowFPS, v, err))
		} else {
			p.ShowFPS = b
		}
	}
	return p, firstErr
}

func (p *Prefs) sanitize() {
	d := Default()
	if p.Width <= 0 {
		p.Width = d.Width
	}
	if p.Height <= 0 {
		p.Height = d.Height
	}
	if p.TargetFPS <= 0 {
		p.TargetFPS = d.TargetFPS
	}
	if p.SpinRate < 0 {
		p.SpinRate = 0
	}
}
