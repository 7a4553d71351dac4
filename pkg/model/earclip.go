package model

import (
	"math"

	"github.com/taigrr/rasty/pkg/math3d"
)

// earClip triangulates a face of n>3 indices per §4.2: repeatedly find a
// convex "ear" relative to the face centroid and clip it off, until three
// indices remain.
func earClip(rf rawFace, verts []math3d.Vec3) []Face {
	ring := append(rawFace(nil), rf...)
	var out []Face

	for len(ring) > 3 {
		centroid := ringCentroid(ring, verts)
		earIdx := -1
		for i := range ring {
			if isEar(ring, i, centroid, verts) {
				earIdx = i
				break
			}
		}
		if earIdx == -1 {
			log.Error("model: ear clipping found no ear, abandoning remaining indices", "remaining", len(ring))
			return out
		}

		n := len(ring)
		a := ring[earIdx]
		b := ring[(earIdx-1+n)%n]
		c := ring[(earIdx+1)%n]
		out = append(out, Face{a, b, c})

		ring = append(ring[:earIdx], ring[earIdx+1:]...)
	}

	if len(ring) == 3 {
		out = append(out, Face{ring[0], ring[1], ring[2]})
	}
	return out
}

func ringCentroid(ring rawFace, verts []math3d.Vec3) math3d.Vec3 {
	sum := math3d.Zero3()
	for _, fv := range ring {
		sum = sum.Add(vertAt(verts, fv.Vert))
	}
	return sum.Div(float64(len(ring)))
}

// isEar implements the §4.2 convexity-relative-to-centroid test and the
// no-other-vertex-inside test.
func isEar(ring rawFace, i int, centroid math3d.Vec3, verts []math3d.Vec3) bool {
	n := len(ring)
	b := vertAt(verts, ring[(i-1+n)%n].Vert)
	a := vertAt(verts, ring[i].Vert)
	c := vertAt(verts, ring[(i+1)%n].Vert)

	toCentroid := centroid.Sub(a)
	toB := b.Sub(a)
	toC := c.Sub(a)

	thetaB := angleBetween(toCentroid, toB)
	thetaC := angleBetween(toCentroid, toC)
	const halfPi = math.Pi / 2
	if !(thetaB < halfPi-epsilon && thetaC < halfPi-epsilon) {
		return false
	}

	for j := range ring {
		if j == i || j == (i-1+n)%n || j == (i+1)%n {
			continue
		}
		p := vertAt(verts, ring[j].Vert)
		if pointInTriangle(p, a, b, c) {
			return false
		}
	}
	return true
}

func angleBetween(u, v math3d.Vec3) float64 {
	lu, lv := u.Len(), v.Len()
	if lu == 0 || lv == 0 {
		return 0
	}
	cos := u.Dot(v) / (lu * lv)
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// pointInTriangle tests whether p lies within triangle (a,b,c) using
// barycentric coordinates in the triangle's own plane, per §4.2. A point
// whose vector from a is not (nearly) perpendicular to the face normal is
// rejected as off-plane.
func pointInTriangle(p, a, b, c math3d.Vec3) bool {
	normal := b.Sub(a).Cross(c.Sub(a))
	if normal.LenSq() < epsilon {
		return false
	}
	normal = normal.Normalize()

	ap := p.Sub(a)
	if math.Abs(ap.Dot(normal)) > 1e-4 {
		return false
	}

	v0 := c.Sub(a)
	v1 := b.Sub(a)
	v2 := p.Sub(a)

	dot00 := v0.Dot(v0)
	dot01 := v0.Dot(v1)
	dot02 := v0.Dot(v2)
	dot11 := v1.Dot(v1)
	dot12 := v1.Dot(v2)

	denom := dot00*dot11 - dot01*dot01
	if math.Abs(denom) < epsilon {
		return false
	}
	invDenom := 1 / denom
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return u >= 0 && v >= 0 && u+v <= 1 && u+v >= 0
}
