package scene

import (
	"math"

	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/projection"
)

// plane is Ax+By+Cz+D=0 in view space, normal pointing toward the frustum
// interior (so distance >= 0 means "on the inside of this plane").
type plane struct {
	Normal math3d.Vec3
	D      float64
}

func (p plane) distance(q math3d.Vec3) float64 {
	return p.Normal.Dot(q) + p.D
}

// frustum is the six view-space bounding planes (left, right, bottom, top,
// near, far) derived directly from a Matrix's own cached scalars, rather
// than extracted from a combined view-projection matrix: view space is
// exactly where buildViewSpaceTriangles already leaves its triangles before
// the clip cascade runs, so this lets Draw reject a whole instance with no
// matrix round-trip at all.
func newFrustum(p *projection.Matrix) frustum {
	tanY := math.Tan(p.FOV() / 2)
	tanX := tanY / p.Aspect()
	znear, zfar := p.ZNear(), p.ZFar()

	var f frustum
	f.planes[0] = plane{math3d.V3(1, 0, tanX), 0}            // left:   x + z*tanX >= 0
	f.planes[1] = plane{math3d.V3(-1, 0, tanX), 0}            // right: -x + z*tanX >= 0
	f.planes[2] = plane{math3d.V3(0, 1, tanY), 0}             // bottom: y + z*tanY >= 0
	f.planes[3] = plane{math3d.V3(0, -1, tanY), 0}            // top:   -y + z*tanY >= 0
	f.planes[4] = plane{math3d.V3(0, 0, 1), -znear}           // near:   z - znear >= 0
	f.planes[5] = plane{math3d.V3(0, 0, -1), zfar}            // far:   -z + zfar  >= 0
	for i := range f.planes {
		f.planes[i].Normal = f.planes[i].Normal.Normalize()
	}
	return f
}

type frustum struct {
	planes [6]plane
}

// rejectsAABB reports whether box (in view space) lies entirely outside at
// least one frustum plane — a cheap broad-phase negative that lets Draw
// skip a whole instance's clip/rasterize work. It only ever answers "surely
// outside" or "maybe inside"; a "maybe inside" still goes through the full
// per-triangle clip cascade, so this can never hide a triangle that the
// exact clip would have kept.
func (f frustum) rejectsAABB(min, max math3d.Vec3) bool {
	for _, p := range f.planes {
		px := min.X
		if p.Normal.X >= 0 {
			px = max.X
		}
		py := min.Y
		if p.Normal.Y >= 0 {
			py = max.Y
		}
		pz := min.Z
		if p.Normal.Z >= 0 {
			pz = max.Z
		}
		if p.distance(math3d.V3(px, py, pz)) < 0 {
			return true
		}
	}
	return false
}

// transformAABB returns the AABB enclosing all 8 corners of (min,max) after
// applying m, used to move a model's local-space bounds into view space.
func transformAABB(min, max math3d.Vec3, m math3d.Mat4) (math3d.Vec3, math3d.Vec3) {
	return mapAABBCorners(min, max, m.MulVec3)
}

// rotateAABB returns the AABB enclosing all 8 corners of (min,max) after
// applying rotate, used to account for an instance's recorded rotation
// quaternions before its local-to-world matrix is applied — a plain
// matrix-only transform would under-account for a rotated instance's true
// world extent and risk a false broad-phase reject.
func rotateAABB(min, max math3d.Vec3, rotate func(math3d.Vec3) math3d.Vec3) (math3d.Vec3, math3d.Vec3) {
	return mapAABBCorners(min, max, rotate)
}

func mapAABBCorners(min, max math3d.Vec3, f func(math3d.Vec3) math3d.Vec3) (math3d.Vec3, math3d.Vec3) {
	corners := [8]math3d.Vec3{
		math3d.V3(min.X, min.Y, min.Z), math3d.V3(max.X, min.Y, min.Z),
		math3d.V3(min.X, max.Y, min.Z), math3d.V3(max.X, max.Y, min.Z),
		math3d.V3(min.X, min.Y, max.Z), math3d.V3(max.X, min.Y, max.Z),
		math3d.V3(min.X, max.Y, max.Z), math3d.V3(max.X, max.Y, max.Z),
	}
	newMin := f(corners[0])
	newMax := newMin
	for _, c := range corners[1:] {
		t := f(c)
		newMin = newMin.Min(t)
		newMax = newMax.Max(t)
	}
	return newMin, newMax
}
