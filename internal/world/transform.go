package world

import "github.com/chewxy/math32"

// Vec3 is a point or direction in world space (Y up).
type Vec3 [3]float32

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }

// Dot returns the dot product.
func (v Vec3) Dot(o Vec3) float32 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

// Cross returns v × o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Len returns the Euclidean length.
func (v Vec3) Len() float32 { return math32.Sqrt(v.Dot(v)) }

// Normalize returns v scaled to unit length; the zero vector is returned unchanged.
func (v Vec3) Normalize() Vec3 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return v.Scale(1 / l)
}

var (
	// AxisX, AxisY and AxisZ are the world basis vectors.
	AxisX = Vec3{1, 0, 0}
	AxisY = Vec3{0, 1, 0}
	AxisZ = Vec3{0, 0, 1}
)

// Quat is a rotation quaternion. The zero value is not a rotation; use QuatIdentity.
type Quat struct {
	X, Y, Z, W float32
}

// QuatIdentity returns the rotation that does nothing.
func QuatIdentity() Quat { return Quat{W: 1} }

// QuatFromAxisAngle returns a rotation of angle radians about axis (right-handed).
func QuatFromAxisAngle(axis Vec3, angle float32) Quat {
	a := axis.Normalize()
	s, c := math32.Sin(angle/2), math32.Cos(angle/2)
	return Quat{X: a[0] * s, Y: a[1] * s, Z: a[2] * s, W: c}
}

// QuatFromEuler builds a rotation from XYZ euler angles in degrees, applied X first, then Y, then Z.
func QuatFromEuler(deg Vec3) Quat {
	qx := QuatFromAxisAngle(AxisX, deg[0]*math32.Pi/180)
	qy := QuatFromAxisAngle(AxisY, deg[1]*math32.Pi/180)
	qz := QuatFromAxisAngle(AxisZ, deg[2]*math32.Pi/180)
	return qz.Mul(qy).Mul(qx)
}

// Mul returns q·r: the rotation r followed by q.
func (q Quat) Mul(r Quat) Quat {
	return Quat{
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
	}
}

// Normalize returns q with unit length. Repeated Mul drifts; callers renormalize per frame.
func (q Quat) Normalize() Quat {
	l := math32.Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
	if l == 0 {
		return QuatIdentity()
	}
	return Quat{X: q.X / l, Y: q.Y / l, Z: q.Z / l, W: q.W / l}
}

// Rotate applies q to v.
func (q Quat) Rotate(v Vec3) Vec3 {
	u := Vec3{q.X, q.Y, q.Z}
	t := u.Cross(v).Scale(2)
	return v.Add(t.Scale(q.W)).Add(u.Cross(t))
}

// Transform places an entity: rotate about its own origin, then translate.
type Transform struct {
	Translation Vec3
	Rotation    Quat
}

// NewTransform returns a transform at position with the given rotation.
func NewTransform(position Vec3, rotation Quat) Transform {
	return Transform{Translation: position, Rotation: rotation}
}

// RotateAround turns the transform by q about point: the translation orbits point and the
// orientation is rotated by the same amount.
func (t *Transform) RotateAround(point Vec3, q Quat) {
	t.Translation = point.Add(q.Rotate(t.Translation.Sub(point)))
	t.Rotation = q.Mul(t.Rotation).Normalize()
}
