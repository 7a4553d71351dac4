package math3d

import "math"

// Quaternion is a unit quaternion (w, x, y, z) used for rotating vectors via
// the sandwich product q*v*q^-1. Unlike a runtime-tagged representation, this
// is a plain 4-tuple with the standard Hamilton product.
type Quaternion struct {
	W, X, Y, Z float64
}

// NewQuaternion builds the unit quaternion representing a rotation of angle
// radians around axis (axis need not be pre-normalized).
func NewQuaternion(angle float64, axis Vec3) Quaternion {
	axis = axis.Normalize()
	half := angle / 2
	s := math.Sin(half)
	return Quaternion{
		W: math.Cos(half),
		X: s * axis.X,
		Y: s * axis.Y,
		Z: s * axis.Z,
	}
}

// FromVec3 builds a pure (zero real-part) quaternion from a vector, the form
// used as the "v" operand of the sandwich product.
func FromVec3(v Vec3) Quaternion {
	return Quaternion{W: 0, X: v.X, Y: v.Y, Z: v.Z}
}

// Vec3 returns the imaginary part (x, y, z) as a Vec3, discarding W.
func (q Quaternion) Vec3() Vec3 {
	return Vec3{q.X, q.Y, q.Z}
}

// Conjugate returns the conjugate (w, -x, -y, -z).
func (q Quaternion) Conjugate() Quaternion {
	return Quaternion{W: q.W, X: -q.X, Y: -q.Y, Z: -q.Z}
}

// Mul returns the Hamilton product q * r.
//
//nolint:st1016 // q*r naming convention is clearer for quaternion multiplication
func (q Quaternion) Mul(r Quaternion) Quaternion {
	return Quaternion{
		W: q.W*r.W - q.X*r.X - q.Y*r.Y - q.Z*r.Z,
		X: q.W*r.X + q.X*r.W + q.Y*r.Z - q.Z*r.Y,
		Y: q.W*r.Y - q.X*r.Z + q.Y*r.W + q.Z*r.X,
		Z: q.W*r.Z + q.X*r.Y - q.Y*r.X + q.Z*r.W,
	}
}

// Rotate applies the quaternion to v via the sandwich product q*v*q^-1,
// using the conjugate in place of the inverse (valid because q is unit).
func (q Quaternion) Rotate(v Vec3) Vec3 {
	return q.Mul(FromVec3(v)).Mul(q.Conjugate()).Vec3()
}

// QuaternionIdentity returns the identity quaternion (no rotation).
func QuaternionIdentity() Quaternion {
	return Quaternion{W: 1}
}
