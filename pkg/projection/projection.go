// Package projection implements the perspective ProjectionMatrix of §4.5.
package projection

import (
	"math"

	"github.com/taigrr/rasty/pkg/math3d"
)

// Matrix caches (fovRad, znear, zfar, aspect, f=1/tan(fov/2),
// q=zfar/(zfar-znear)) alongside the resulting 4x4 matrix, so individual
// setters can patch single cells without recomputing the whole thing.
type Matrix struct {
	fovRad float64
	znear  float64
	zfar   float64
	aspect float64
	f      float64
	q      float64

	m [16]float64
}

// New builds a ProjectionMatrix from (fov radians, znear, zfar, aspect).
func New(fovRad, znear, zfar, aspect float64) *Matrix {
	p := &Matrix{fovRad: fovRad, znear: znear, zfar: zfar, aspect: aspect}
	p.recompute()
	return p
}

// recompute rebuilds every cached derived value and every matrix cell from
// scratch, per §4.5: f = 1/tan(fov/2), q = zfar/(zfar-znear), matrix zero
// except [0][0]=aspect*f, [1][1]=f, [2][2]=q, [2][3]=-znear*q, [3][2]=1.
func (p *Matrix) recompute() {
	p.f = 1 / math.Tan(p.fovRad/2)
	p.q = p.zfar / (p.zfar - p.znear)

	p.m = [16]float64{}
	p.set(0, 0, p.aspect*p.f)
	p.set(1, 1, p.f)
	p.set(2, 2, p.q)
	p.set(2, 3, -p.znear*p.q)
	p.set(3, 2, 1)
}

// set writes row,col in row-major order, matching the §4.5 [row][col]
// notation directly.
func (p *Matrix) set(row, col int, v float64) {
	p.m[row*4+col] = v
}

func (p *Matrix) get(row, col int) float64 {
	return p.m[row*4+col]
}

// SetAspect patches the affected cell ([0][0]) only, per §4.5.
func (p *Matrix) SetAspect(aspect float64) {
	p.aspect = aspect
	p.set(0, 0, p.aspect*p.f)
}

// SetFOV recomputes f and patches every cell that depends on it:
// [0][0], [1][1].
func (p *Matrix) SetFOV(fovRad float64) {
	p.fovRad = fovRad
	p.f = 1 / math.Tan(p.fovRad/2)
	p.set(0, 0, p.aspect*p.f)
	p.set(1, 1, p.f)
}

// SetZBound recomputes q and patches [2][2] and [2][3].
func (p *Matrix) SetZBound(znear, zfar float64) {
	p.znear, p.zfar = znear, zfar
	p.q = p.zfar / (p.zfar - p.znear)
	p.set(2, 2, p.q)
	p.set(2, 3, -p.znear*p.q)
}

// FOV, ZNear, ZFar, Aspect expose the cached scalar parameters.
func (p *Matrix) FOV() float64    { return p.fovRad }
func (p *Matrix) ZNear() float64  { return p.znear }
func (p *Matrix) ZFar() float64   { return p.zfar }
func (p *Matrix) Aspect() float64 { return p.aspect }

// Apply transforms (x,y,z,1) by the projection matrix and returns the
// un-divided homogeneous result; callers perform the perspective divide.
func (p *Matrix) Apply(x, y, z float64) math3d.Vec4 {
	return math3d.Vec4{
		X: p.get(0, 0)*x + p.get(0, 1)*y + p.get(0, 2)*z + p.get(0, 3),
		Y: p.get(1, 0)*x + p.get(1, 1)*y + p.get(1, 2)*z + p.get(1, 3),
		Z: p.get(2, 0)*x + p.get(2, 1)*y + p.get(2, 2)*z + p.get(2, 3),
		W: p.get(3, 0)*x + p.get(3, 1)*y + p.get(3, 2)*z + p.get(3, 3),
	}
}
