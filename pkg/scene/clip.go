package scene

import "github.com/taigrr/rasty/pkg/math3d"

// Triangle is three parallel attribute values per corner, used both as the
// plain position triangle and as the vertex-normal / world-position
// triangles that must be interpolated by the same clip ratio. Keeping every
// clipped quantity the same type — rather than one clip routine per
// attribute count — collapses what would otherwise be duplicated
// near/far and screen-plane clip code into a single cascade.
type Triangle [3]math3d.Vec3

// ClipSet is every parallel triangle carried through one clip call: the
// position triangle used for the inside/outside test, plus zero or more
// attribute triangles (vertex normals, pre-projection world positions)
// interpolated by the same per-edge ratio.
type ClipSet struct {
	Pos   Triangle
	Attrs []Triangle
}

func newClipSet(attrCount int) ClipSet {
	return ClipSet{Attrs: make([]Triangle, attrCount)}
}

// ClipPlane holds a plane's point and unit normal; inside is (q-Point)*Normal >= 0.
type ClipPlane struct {
	Point  math3d.Vec3
	Normal math3d.Vec3
}

func NewClipPlane(point, normal math3d.Vec3) ClipPlane {
	return ClipPlane{Point: point, Normal: normal.Normalize()}
}

func (p ClipPlane) signedDistance(q math3d.Vec3) float64 {
	return q.Sub(p.Point).Dot(p.Normal)
}

// intersect returns the parametric point on segment (pin,pout) where it
// crosses the plane, per §4.7's line-plane intersection formula.
func (p ClipPlane) intersect(pin, pout math3d.Vec3) (point math3d.Vec3, t float64) {
	planeD := -p.Normal.Dot(p.Point)
	ad := pin.Dot(p.Normal)
	bd := pout.Dot(p.Normal)
	t = (-planeD - ad) / (bd - ad)
	return pin.Add(pout.Sub(pin).Scale(t)), t
}

// ClipAgainstPlane runs one Sutherland-Hodgman pass against a single plane,
// per §4.7. Every attribute triangle parallel to in.Pos is cut at the same
// ratio t as the position channel.
func ClipAgainstPlane(in ClipSet, plane ClipPlane) []ClipSet {
	var insideIdx []int
	for i, v := range in.Pos {
		if plane.signedDistance(v) >= 0 {
			insideIdx = append(insideIdx, i)
		}
	}

	switch len(insideIdx) {
	case 0:
		return nil
	case 3:
		return []ClipSet{in}
	case 2:
		outIdx := other(insideIdx)
		i1, i2 := insideIdx[0], insideIdx[1]
		o := outIdx[0]

		a, ta := cutPos(plane, in.Pos[i1], in.Pos[o])
		b, tb := cutPos(plane, in.Pos[i2], in.Pos[o])

		t1 := newClipSet(len(in.Attrs))
		t1.Pos = Triangle{a, in.Pos[i1], in.Pos[i2]}
		t2 := newClipSet(len(in.Attrs))
		t2.Pos = Triangle{a, in.Pos[i2], b}
		for k, attr := range in.Attrs {
			// Two-inside split: the attribute at each new vertex is pulled
			// from the outside corner towards the inside one by ta/tb. At
			// ta=0 this evaluates to the outside attribute rather than the
			// inside one it geometrically coincides with — a discontinuity
			// carried over unchanged from the reference clip routine.
			aAttr := lerpFromOutside(attr[i1], attr[o], ta)
			bAttr := lerpFromOutside(attr[i2], attr[o], tb)
			t1.Attrs[k] = Triangle{aAttr, attr[i1], attr[i2]}
			t2.Attrs[k] = Triangle{aAttr, attr[i2], bAttr}
		}
		return []ClipSet{t1, t2}
	case 1:
		outIdx := other(insideIdx)
		i := insideIdx[0]
		o1, o2 := outIdx[0], outIdx[1]

		a, ta := cutPos(plane, in.Pos[i], in.Pos[o1])
		b, tb := cutPos(plane, in.Pos[i], in.Pos[o2])

		out := newClipSet(len(in.Attrs))
		out.Pos = Triangle{in.Pos[i], a, b}
		for k, attr := range in.Attrs {
			// One-inside split: the attribute at each new vertex is pulled
			// from the inside corner towards each outside one by ta/tb,
			// which is continuous at both endpoints.
			aAttr := lerpAttr(attr[i], attr[o1], ta)
			bAttr := lerpAttr(attr[i], attr[o2], tb)
			out.Attrs[k] = Triangle{attr[i], aAttr, bAttr}
		}
		return []ClipSet{out}
	default:
		return nil
	}
}

func cutPos(plane ClipPlane, pin, pout math3d.Vec3) (math3d.Vec3, float64) {
	p, t := plane.intersect(pin, pout)
	return p, t
}

// lerpAttr interpolates an attribute value by the ratio t used to cut the
// position edge, measured from the inside endpoint: t=0 at attrIn, t=1 at
// attrOut.
func lerpAttr(attrIn, attrOut math3d.Vec3, t float64) math3d.Vec3 {
	return attrIn.Add(attrOut.Sub(attrIn).Scale(t))
}

// lerpFromOutside applies the same linear blend but expressed from the
// outside endpoint, matching the two-inside clip case's attribute formula.
func lerpFromOutside(attrIn, attrOut math3d.Vec3, t float64) math3d.Vec3 {
	return attrOut.Add(attrIn.Sub(attrOut).Scale(t))
}

func other(present []int) []int {
	all := map[int]bool{0: true, 1: true, 2: true}
	for _, i := range present {
		delete(all, i)
	}
	var out []int
	for i := 0; i < 3; i++ {
		if all[i] {
			out = append(out, i)
		}
	}
	return out
}

// ClipCascade runs every input ClipSet through each plane in sequence,
// recursively expanding the working set, per §4.7's cascade description.
func ClipCascade(in []ClipSet, planes []ClipPlane) []ClipSet {
	working := in
	for _, plane := range planes {
		var next []ClipSet
		for _, cs := range working {
			next = append(next, ClipAgainstPlane(cs, plane)...)
		}
		working = next
	}
	return working
}
