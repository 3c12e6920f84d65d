package world

// Entity is a spawned placement. Spinning entities are driven by SpinSystem.
type Entity struct {
	Name      string
	Mesh      MeshDef
	Material  MaterialDef
	Transform Transform
	Spinning  bool
}

// System runs once per Update with the frame delta in seconds.
type System func(w *World, dt float32)

// World owns the entities built from a Layout and the systems that animate them.
// It is not safe for concurrent use; the render loop drives it from one goroutine.
type World struct {
	Entities []Entity
	Light    LightDef
	Camera   CameraDef
	systems  []System
	elapsed  float32
}

// New spawns one entity per placement.
func New(l Layout) (*World, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}
	w := &World{
		Entities: make([]Entity, 0, len(l.Placements)),
		Light:    l.Light,
		Camera:   l.Camera,
	}
	for _, p := range l.Placements {
		w.Entities = append(w.Entities, Entity{
			Name:      p.Name,
			Mesh:      p.Mesh,
			Material:  p.Material,
			Transform: NewTransform(p.Position, QuatFromEuler(p.Rotation)),
			Spinning:  p.Spin,
		})
	}
	return w, nil
}

// AddSystem appends s; systems run in the order they were added.
func (w *World) AddSystem(s System) {
	w.systems = append(w.systems, s)
}

// Update advances the world by dt seconds. A negative dt is treated as zero.
func (w *World) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	for _, s := range w.systems {
		s(w, dt)
	}
	w.elapsed += dt
}

// Elapsed returns the total simulated time in seconds.
func (w *World) Elapsed() float32 {
	return w.elapsed
}

// Shapes returns the number of spinning entities.
func (w *World) Shapes() int {
	n := 0
	for i := range w.Entities {
		if w.Entities[i].Spinning {
			n++
		}
	}
	return n
}

// Entity returns the entity with the given name.
func (w *World) Entity(name string) (*Entity, bool) {
	for i := range w.Entities {
		if w.Entities[i].Name == name {
			return &w.Entities[i], true
		}
	}
	return nil, false
}

// SpinSystem turns every spinning entity about the vertical axis through pivot by rate·dt radians.
func SpinSystem(pivot Vec3, rate float32) System {
	return func(w *World, dt float32) {
		if dt == 0 || rate == 0 {
			return
		}
		q := QuatFromAxisAngle(AxisY, dt*rate)
		for i := range w.Entities {
			e := &w.Entities[i]
			if !e.Spinning {
				continue
			}
			e.Transform.RotateAround(pivot, q)
		}
	}
}
