// Package camera implements the orthonormal-basis camera described in §4.4:
// a position plus mutually orthogonal unit forward/up/right vectors, moved
// and rotated by small per-frame steps and re-orthogonalized after every
// rotation to recover from floating-point drift.
package camera

import (
	"math"

	"github.com/taigrr/rasty/pkg/math3d"
)

// Camera holds position, orthonormal basis (forward, up, right), and the
// per-call step size used by the translate/rotate operations.
type Camera struct {
	Pos   math3d.Vec3
	Dir   math3d.Vec3
	Up    math3d.Vec3
	Right math3d.Vec3
	Step  float64
}

// New constructs a Camera at the §4.4 default pose: p=(0,0,-1), d=(0,0,1),
// u=(0,1,0), r=(1,0,0), step=0.01.
func New() *Camera {
	return &Camera{
		Pos:   math3d.V3(0, 0, -1),
		Dir:   math3d.V3(0, 0, 1),
		Up:    math3d.V3(0, 1, 0),
		Right: math3d.V3(1, 0, 0),
		Step:  0.01,
	}
}

// SetStep takes |step|, caps it at 1, and sets it as the per-call
// movement/rotation increment. A step of 0 is stored as 0.
func (c *Camera) SetStep(step float64) {
	step = math.Abs(step)
	if step > 1 {
		step = 1
	}
	c.Step = step
}

// ZoomIn moves the camera forward along Dir by Step.
func (c *Camera) ZoomIn() { c.Pos = c.Pos.Add(c.Dir.Scale(c.Step)) }

// ZoomOut moves the camera backward along Dir by Step.
func (c *Camera) ZoomOut() { c.Pos = c.Pos.Sub(c.Dir.Scale(c.Step)) }

// Left moves the camera along -Right by Step.
func (c *Camera) Left() { c.Pos = c.Pos.Sub(c.Right.Scale(c.Step)) }

// RightMove moves the camera along +Right by Step.
func (c *Camera) RightMove() { c.Pos = c.Pos.Add(c.Right.Scale(c.Step)) }

// Raise moves the camera along +Up by Step (the input table's "raise").
func (c *Camera) Raise() { c.Pos = c.Pos.Add(c.Up.Scale(c.Step)) }

// Lower moves the camera along -Up by Step (the input table's "lower").
func (c *Camera) Lower() { c.Pos = c.Pos.Sub(c.Up.Scale(c.Step)) }

// rotate applies a Step-angle rotation to v around axis using a quaternion
// sandwich product, per camera.cpp's quaternion_mult helper.
func rotate(v, axis math3d.Vec3, angle float64) math3d.Vec3 {
	return math3d.NewQuaternion(angle, axis).Rotate(v)
}

// RotLeft rotates Dir and Right around Up by -Step.
func (c *Camera) RotLeft() {
	c.Dir = rotate(c.Dir, c.Up, -c.Step)
	c.Right = rotate(c.Right, c.Up, -c.Step)
	c.forceAlign()
}

// RotRight rotates Dir and Right around Up by +Step.
func (c *Camera) RotRight() {
	c.Dir = rotate(c.Dir, c.Up, c.Step)
	c.Right = rotate(c.Right, c.Up, c.Step)
	c.forceAlign()
}

// RotUp rotates Dir and Up around Right by -Step.
func (c *Camera) RotUp() {
	c.Dir = rotate(c.Dir, c.Right, -c.Step)
	c.Up = rotate(c.Up, c.Right, -c.Step)
	c.forceAlign()
}

// RotDown rotates Dir and Up around Right by +Step.
func (c *Camera) RotDown() {
	c.Dir = rotate(c.Dir, c.Right, c.Step)
	c.Up = rotate(c.Up, c.Right, c.Step)
	c.forceAlign()
}

// RollLeft rotates Up and Right around Dir by -Step.
func (c *Camera) RollLeft() {
	c.Right = rotate(c.Right, c.Dir, -c.Step)
	c.Up = rotate(c.Up, c.Dir, -c.Step)
	c.forceAlign()
}

// RollRight rotates Up and Right around Dir by +Step.
func (c *Camera) RollRight() {
	c.Right = rotate(c.Right, c.Dir, c.Step)
	c.Up = rotate(c.Up, c.Dir, c.Step)
	c.forceAlign()
}

// forceAlign re-orthogonalizes the basis whenever floating-point drift has
// left any pair of (Dir, Up, Right) non-perpendicular, per §4.4: project Up
// off Dir, then rebuild Right as Up x Dir. This is the sole recovery path
// from drift; it is not run unconditionally so that a perfectly orthogonal
// basis is left untouched.
func (c *Camera) forceAlign() {
	if c.Dir.Dot(c.Up) != 0 || c.Dir.Dot(c.Right) != 0 || c.Up.Dot(c.Right) != 0 {
		c.Up = c.Up.Sub(c.Dir.Scale(c.Up.Dot(c.Dir)))
		c.Right = c.Up.Cross(c.Dir)
	}
}

// ViewMatrix returns the camera's look-at rotation stacked with -p.axis in
// the fourth column, per §4.4 — used to transform vertex positions into
// view space.
func (c *Camera) ViewMatrix() math3d.Mat4 {
	r, u, d, p := c.Right, c.Up, c.Dir, c.Pos
	return math3d.Mat4{
		r.X, u.X, d.X, 0,
		r.Y, u.Y, d.Y, 0,
		r.Z, u.Z, d.Z, 0,
		-p.Dot(r), -p.Dot(u), -p.Dot(d), 1,
	}
}

// NormalMatrix returns the rotation-only view matrix (no translation
// column), used to transform normals into view space.
func (c *Camera) NormalMatrix() math3d.Mat4 {
	m := c.ViewMatrix()
	m[12], m[13], m[14] = 0, 0, 0
	return m
}
