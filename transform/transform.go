package transform

import "math"

// Vec3 is a 3D position or offset.
type Vec3 struct {
	X, Y, Z float64
}

// Quat is a rotation quaternion in (w, x, y, z) order.
type Quat struct {
	W, X, Y, Z float64
}

var Identity = Quat{W: 1}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// NormXY is the planar distance from the origin, ignoring height.
func (v Vec3) NormXY() float64 {
	return math.Hypot(v.X, v.Y)
}

func (q Quat) Norm() float64 {
	return math.Sqrt(q.W*q.W + q.X*q.X + q.Y*q.Y + q.Z*q.Z)
}

// Conj returns the conjugate, which equals the inverse for unit quaternions.
func (q Quat) Conj() Quat {
	return Quat{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Mul is the Hamilton product q*o.
func (q Quat) Mul(o Quat) Quat {
	return Quat{
		W: q.W*o.W - q.X*o.X - q.Y*o.Y - q.Z*o.Z,
		X: q.W*o.X + q.X*o.W + q.Y*o.Z - q.Z*o.Y,
		Y: q.W*o.Y - q.X*o.Z + q.Y*o.W + q.Z*o.X,
		Z: q.W*o.Z + q.X*o.Y - q.Y*o.X + q.Z*o.W,
	}
}

// Rotate applies the rotation q to the vector v.
func (q Quat) Rotate(v Vec3) Vec3 {
	p := q.Mul(Quat{X: v.X, Y: v.Y, Z: v.Z}).Mul(q.Conj())
	return Vec3{p.X, p.Y, p.Z}
}

// Inverse returns the inverse of the rigid transform (rot, pos).
func Inverse(rot Quat, pos Vec3) (Quat, Vec3) {
	invRot := rot.Conj()
	invPos := invRot.Rotate(pos).Scale(-1)
	return invRot, invPos
}

// Combine composes transform B expressed in A's frame, producing B's pose in
// A's parent frame: rot = rotA*rotB, pos = rotA*posB + posA.
func Combine(rotA Quat, posA Vec3, rotB Quat, posB Vec3) (Quat, Vec3) {
	return rotA.Mul(rotB), rotA.Rotate(posB).Add(posA)
}

// QuatFromEulerZ builds a rotation of angle radians about the vertical axis.
func QuatFromEulerZ(angle float64) Quat {
	half := angle / 2
	return Quat{W: math.Cos(half), Z: math.Sin(half)}
}

// EulerZ extracts the rotation about the vertical axis, in (-pi, pi].
func EulerZ(q Quat) float64 {
	return math.Atan2(2*(q.W*q.Z+q.X*q.Y), 1-2*(q.Y*q.Y+q.Z*q.Z))
}

// CombineBatch composes poses elementwise over the batch dimension. All
// slices must have the same length; entry i depends only on the inputs at i.
func CombineBatch(rotA []Quat, posA []Vec3, rotB []Quat, posB []Vec3) ([]Quat, []Vec3) {
	rot := make([]Quat, len(rotA))
	pos := make([]Vec3, len(rotA))
	for i := range rotA {
		rot[i], pos[i] = Combine(rotA[i], posA[i], rotB[i], posB[i])
	}
	return rot, pos
}
