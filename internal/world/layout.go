package world

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"github.com/jinzhu/copier"
	"gopkg.in/yaml.v3"
)

// ErrInvalidLayout wraps every error reported by Layout.Validate.
var ErrInvalidLayout = errors.New("invalid layout")

// MeshKind names a primitive mesh generator.
type MeshKind string

const (
	MeshCylinder MeshKind = "cylinder"
	MeshCuboid   MeshKind = "cuboid"
	MeshPlane    MeshKind = "plane"
)

// TextureUVDebug selects the generated UV debug texture as albedo.
const TextureUVDebug = "uv_debug"

// MeshDef describes a primitive mesh. Cylinders use Radius and Height, cuboids use Size as
// full edge lengths, planes use Size[0] × Size[2] on XZ.
type MeshDef struct {
	Kind   MeshKind   `yaml:"kind"`
	Radius float32    `yaml:"radius,omitempty"`
	Height float32    `yaml:"height,omitempty"`
	Size   [3]float32 `yaml:"size,omitempty,flow"`
}

// Key identifies meshes with identical geometry so they can share GPU buffers.
func (m MeshDef) Key() string {
	switch m.Kind {
	case MeshCylinder:
		return fmt.Sprintf("cylinder:%gx%g", m.Radius, m.Height)
	default:
		return fmt.Sprintf("%s:%gx%gx%g", m.Kind, m.Size[0], m.Size[1], m.Size[2])
	}
}

// MaterialDef is either a named texture or a flat "#rrggbb" color.
type MaterialDef struct {
	Texture string `yaml:"texture,omitempty"`
	Color   string `yaml:"color,omitempty"`
}

// RGB parses Color. An empty color is white.
func (m MaterialDef) RGB() (r, g, b uint8, err error) {
	if m.Color == "" {
		return 255, 255, 255, nil
	}
	s := strings.TrimPrefix(m.Color, "#")
	if len(s) != 6 || s == m.Color {
		return 0, 0, 0, fmt.Errorf("color %q: want #rrggbb", m.Color)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q: %w", m.Color, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// Placement is one object of the scene: what to draw, with which material, and where.
// Rotation is XYZ euler in degrees.
type Placement struct {
	Name     string      `yaml:"name"`
	Mesh     MeshDef     `yaml:"mesh"`
	Material MaterialDef `yaml:"material"`
	Position Vec3        `yaml:"position,flow"`
	Rotation Vec3        `yaml:"rotation,omitempty,flow"`
	Spin     bool        `yaml:"spin,omitempty"`
}

// LightDef is a point light.
type LightDef struct {
	Position  Vec3    `yaml:"position,flow"`
	Intensity float32 `yaml:"intensity"`
	Range     float32 `yaml:"range"`
	Shadows   bool    `yaml:"shadows,omitempty"`
}

// CameraDef is a perspective camera looking at Target with Y up. Fovy is in degrees.
type CameraDef struct {
	Position Vec3    `yaml:"position,flow"`
	Target   Vec3    `yaml:"target,flow"`
	Fovy     float32 `yaml:"fovy"`
}

// Layout is the whole scene: an ordered list of placements plus light and camera.
// Spinning placements orbit Pivot about +Y at SpinRate radians per second.
type Layout struct {
	Pivot      Vec3        `yaml:"pivot,flow"`
	SpinRate   float32     `yaml:"spin_rate"`
	Placements []Placement `yaml:"placements"`
	Light      LightDef    `yaml:"light"`
	Camera     CameraDef   `yaml:"camera"`
}

// Crane returns the built-in crane scene: a cylinder stander, a cabin and two booms wearing
// the UV debug texture, on a silver ground plane.
func Crane() Layout {
	debug := MaterialDef{Texture: TextureUVDebug}
	return Layout{
		Pivot:    Vec3{0, 1, 0},
		SpinRate: 0.5,
		Placements: []Placement{
			{
				Name:     "stander",
				Mesh:     MeshDef{Kind: MeshCylinder, Radius: 0.5, Height: 2},
				Material: debug,
				Position: Vec3{0, 1, 0},
				Spin:     true,
			},
			{
				Name:     "cabin",
				Mesh:     MeshDef{Kind: MeshCuboid, Size: [3]float32{1.5, 2, 1.5}},
				Material: debug,
				Position: Vec3{0, 3, 0},
				Spin:     true,
			},
			{
				Name:     "main_boom",
				Mesh:     MeshDef{Kind: MeshCuboid, Size: [3]float32{5, 0.75, 0.75}},
				Material: debug,
				Position: Vec3{2.5, 4, 0},
				Spin:     true,
			},
			{
				Name:     "knuckle_boom",
				Mesh:     MeshDef{Kind: MeshCuboid, Size: [3]float32{2.5, 0.75, 0.75}},
				Material: debug,
				Position: Vec3{4, 3, 0},
				Rotation: Vec3{0, 0, 45},
				Spin:     true,
			},
			{
				Name:     "ground",
				Mesh:     MeshDef{Kind: MeshPlane, Size: [3]float32{50, 0, 50}},
				Material: MaterialDef{Color: "#c0c0c0"},
			},
		},
		Light: LightDef{
			Position:  Vec3{8, 16, 8},
			Intensity: 10_000_000,
			Range:     100,
			Shadows:   true,
		},
		Camera: CameraDef{
			Position: Vec3{0, 6, 12},
			Target:   Vec3{0, 1, 0},
			Fovy:     45,
		},
	}
}

// ParseLayout decodes and validates a YAML layout.
func ParseLayout(data []byte) (Layout, error) {
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// LoadLayout reads a YAML layout from path.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("load layout: %w", err)
	}
	l, err := ParseLayout(data)
	if err != nil {
		return Layout{}, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Marshal encodes the layout as YAML.
func (l Layout) Marshal() ([]byte, error) {
	return yaml.Marshal(l)
}

// Validate reports the first problem found in l. NaN and infinite values are rejected everywhere.
func (l Layout) Validate() error {
	if !finite(l.SpinRate) || l.SpinRate < 0 {
		return fmt.Errorf("%w: spin_rate %g must be a non-negative number", ErrInvalidLayout, l.SpinRate)
	}
	if !finite(l.Pivot[:]...) {
		return fmt.Errorf("%w: pivot %v is not finite", ErrInvalidLayout, l.Pivot)
	}
	seen := make(map[string]bool, len(l.Placements))
	for i, p := range l.Placements {
		if p.Name == "" {
			return fmt.Errorf("%w: placement %d has no name", ErrInvalidLayout, i)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate placement %q", ErrInvalidLayout, p.Name)
		}
		seen[p.Name] = true
		if err := p.Mesh.validate(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, p.Name, err)
		}
		if !finite(p.Position[:]...) || !finite(p.Rotation[:]...) {
			return fmt.Errorf("%w: %s: position and rotation must be finite", ErrInvalidLayout, p.Name)
		}
		if p.Material.Texture != "" && p.Material.Texture != TextureUVDebug {
			return fmt.Errorf("%w: %s: unknown texture %q", ErrInvalidLayout, p.Name, p.Material.Texture)
		}
		if _, _, _, err := p.Material.RGB(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidLayout, p.Name, err)
		}
	}
	li := l.Light
	if !finite(li.Position[:]...) || !finite(li.Range, li.Intensity) || li.Range < 0 || li.Intensity < 0 {
		return fmt.Errorf("%w: light needs a finite position and non-negative range and intensity", ErrInvalidLayout)
	}
	c := l.Camera
	if !finite(c.Position[:]...) || !finite(c.Target[:]...) {
		return fmt.Errorf("%w: camera position and target must be finite", ErrInvalidLayout)
	}
	if !(c.Fovy > 0 && c.Fovy < 180) {
		return fmt.Errorf("%w: camera fovy %g out of range", ErrInvalidLayout, c.Fovy)
	}
	return nil
}

func (m MeshDef) validate() error {
	if !finite(m.Radius, m.Height) || !finite(m.Size[:]...) {
		return fmt.Errorf("mesh dimensions must be finite")
	}
	switch m.Kind {
	case MeshCylinder:
		if !(m.Radius > 0 && m.Height > 0) {
			return fmt.Errorf("cylinder needs positive radius and height")
		}
	case MeshCuboid:
		if !(m.Size[0] > 0 && m.Size[1] > 0 && m.Size[2] > 0) {
			return fmt.Errorf("cuboid needs positive size")
		}
	case MeshPlane:
		if !(m.Size[0] > 0 && m.Size[2] > 0) {
			return fmt.Errorf("plane needs positive size on X and Z")
		}
	default:
		return fmt.Errorf("unknown mesh kind %q", m.Kind)
	}
	return nil
}

func finite(vs ...float32) bool {
	for _, v := range vs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Override holds layout fields that preferences may replace. Zero fields keep the layout's value.
type Override struct {
	SpinRate float32
}

// Apply merges the non-zero fields of o onto l, then validates the result.
func (l *Layout) Apply(o Override) error {
	if err := copier.CopyWithOption(l, &o, copier.Option{IgnoreEmpty: true}); err != nil {
		return fmt.Errorf("apply override: %w", err)
	}
	return l.Validate()
}
