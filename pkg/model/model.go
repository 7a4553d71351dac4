// Package model implements the parsed-mesh representation (Model) that the
// scene pipeline draws: vertices, per-vertex and per-face normals, texture
// coordinates, and triangular faces, plus the post-parse invariant pipeline
// (normalize, triangulate, derive normals, renormalize, center) every loader
// funnels through.
package model

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
)

// FaceVertex is one corner of a face: indices into a Model's vertices,
// textures, and vert_normals lists. A value of -1 means "absent". Kept as
// its own small struct (rather than a reused Vec3i) so the vertex/texture/
// normal roles never get silently confused with coordinate components.
type FaceVertex struct {
	Vert, Tex, Norm int
}

// Face is a triangle: three ordered FaceVertex corners.
type Face [3]FaceVertex

// Model is an immutable parsed mesh, shared by value (Go's slices alias, but
// nothing here mutates post-construction) across any number of Scene entries.
type Model struct {
	Vertices     []math3d.Vec3
	Textures     []math3d.Vec3
	VertNormals  []math3d.Vec3
	FaceNormals  []math3d.Vec3
	Faces        []Face
	Color        color.Color
}

const epsilon = 1e-8

var log = slog.Default()

// ErrInvalidFaceToken is returned when a face token contains a slash
// delimiter but no leading vertex index, per §4.1's ParseError taxonomy.
var ErrInvalidFaceToken = fmt.Errorf("model: face token has a delimiter but no leading index")

// rawFace is a face exactly as parsed, before the drop/keep/triangulate step.
type rawFace []FaceVertex

// builder accumulates parsed directives before the Model invariants are
// applied. newBuilder/finish is deliberately unexported: callers go through a
// format-specific loader (obj.go, gltf.go) that feeds a builder and then
// calls finish to get the invariant-respecting Model.
type builder struct {
	vertices    []math3d.Vec3
	textures    []math3d.Vec3
	vertNormals []math3d.Vec3
	haveNormals bool
	raw         []rawFace
	color       color.Color
}

func newBuilder() *builder {
	return &builder{color: color.RGB(255, 255, 255)}
}

// finish runs the five-step post-parse pipeline from §4.1 over the builder's
// raw data and returns the resulting immutable Model.
func (b *builder) finish() *Model {
	verts := append([]math3d.Vec3(nil), b.vertices...)
	normalizeVertices(verts)

	faces := make([]Face, 0, len(b.raw))
	vertNormals := append([]math3d.Vec3(nil), b.vertNormals...)
	var faceNormals []math3d.Vec3

	for _, rf := range b.raw {
		tris := triangulate(rf, verts)
		faces = append(faces, tris...)
	}

	if !b.haveNormals {
		vertNormals = nil
		faces, faceNormals = deriveFaceNormals(faces, verts)
		// faceNormalsToVertNormals rewrites each face's Norm index to point
		// into a freshly built vertNormals list (§4.3: push once per
		// face-vertex).
		vertNormals = faceNormalsToVertNormals(faces, faceNormals)
	} else {
		faceNormals = make([]math3d.Vec3, len(faces))
		for i, f := range faces {
			sum := math3d.Zero3()
			for _, fv := range f {
				if fv.Norm >= 0 && fv.Norm < len(vertNormals) {
					sum = sum.Add(vertNormals[fv.Norm])
				}
			}
			faceNormals[i] = sum.Normalize()
		}
	}

	for i := range vertNormals {
		vertNormals[i] = vertNormals[i].Normalize()
	}
	for i := range faceNormals {
		faceNormals[i] = faceNormals[i].Normalize()
	}

	centroidShift(verts)

	return &Model{
		Vertices:    verts,
		Textures:    append([]math3d.Vec3(nil), b.textures...),
		VertNormals: vertNormals,
		FaceNormals: faceNormals,
		Faces:       faces,
		Color:       b.color,
	}
}

// normalizeVertices divides every vertex by M = max over all vertices of
// max(|x|,|y|,|z|), per §4.1 step 1.
func normalizeVertices(verts []math3d.Vec3) {
	m := 0.0
	for _, v := range verts {
		if c := v.MaxComponent(); c > m {
			m = c
		}
	}
	if m == 0 {
		return
	}
	for i := range verts {
		verts[i] = verts[i].Div(m)
	}
}

// centroidShift subtracts the vertex centroid from every vertex, per §4.1
// step 5.
func centroidShift(verts []math3d.Vec3) {
	if len(verts) == 0 {
		return
	}
	sum := math3d.Zero3()
	for _, v := range verts {
		sum = sum.Add(v)
	}
	centroid := sum.Div(float64(len(verts)))
	for i := range verts {
		verts[i] = verts[i].Sub(centroid)
	}
}

// faceNormalsToVertNormals pushes each face's derived normal once per
// face-vertex corner and rewrites that corner's Norm index to point at it,
// per §4.3's "push once per face-vertex into vert_normals".
func faceNormalsToVertNormals(faces []Face, faceNormals []math3d.Vec3) []math3d.Vec3 {
	var vertNormals []math3d.Vec3
	for fi := range faces {
		for k := range faces[fi] {
			idx := len(vertNormals)
			vertNormals = append(vertNormals, faceNormals[fi])
			faces[fi][k].Norm = idx
		}
	}
	return vertNormals
}

// deriveFaceNormals implements §4.3: for each triangle, compute the raw
// cross-product normal, then orient it away from the model centroid o.
func deriveFaceNormals(faces []Face, verts []math3d.Vec3) ([]Face, []math3d.Vec3) {
	o := math3d.Zero3()
	if len(verts) > 0 {
		sum := math3d.Zero3()
		for _, v := range verts {
			sum = sum.Add(v)
		}
		o = sum.Div(float64(len(verts)))
	}

	normals := make([]math3d.Vec3, len(faces))
	for i, f := range faces {
		a := vertAt(verts, f[0].Vert)
		b := vertAt(verts, f[1].Vert)
		c := vertAt(verts, f[2].Vert)

		n1 := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c).Div(3)
		fOut := centroid.Sub(o)

		n := n1
		if n1.Dot(fOut) < 0 {
			n = c.Sub(a).Cross(b.Sub(a))
		}
		normals[i] = n.Normalize()
	}
	return faces, normals
}

func vertAt(verts []math3d.Vec3, idx int) math3d.Vec3 {
	if idx < 0 || idx >= len(verts) {
		return math3d.Zero3()
	}
	return verts[idx]
}

// triangulate implements §4.1 step 2: faces with <3 indices are dropped,
// exactly 3 is kept as-is, more than 3 goes through ear clipping (§4.2).
func triangulate(rf rawFace, verts []math3d.Vec3) []Face {
	switch {
	case len(rf) < 3:
		log.Warn("model: dropping degenerate face", "indices", len(rf))
		return nil
	case len(rf) == 3:
		return []Face{{rf[0], rf[1], rf[2]}}
	default:
		return earClip(rf, verts)
	}
}

// VertexCount returns the number of vertices.
func (m *Model) VertexCount() int { return len(m.Vertices) }

// TriangleCount returns the number of triangular faces.
func (m *Model) TriangleCount() int { return len(m.Faces) }

// Centroid returns the mean of all vertex positions.
func (m *Model) Centroid() math3d.Vec3 {
	if len(m.Vertices) == 0 {
		return math3d.Zero3()
	}
	sum := math3d.Zero3()
	for _, v := range m.Vertices {
		sum = sum.Add(v)
	}
	return sum.Div(float64(len(m.Vertices)))
}

// Bounds returns the axis-aligned box enclosing every vertex, in the
// model's own local space. Used by the scene package's optional broad-phase
// frustum cull.
func (m *Model) Bounds() (min, max math3d.Vec3) {
	if len(m.Vertices) == 0 {
		return math3d.Zero3(), math3d.Zero3()
	}
	min, max = m.Vertices[0], m.Vertices[0]
	for _, v := range m.Vertices[1:] {
		min = min.Min(v)
		max = max.Max(v)
	}
	return min, max
}

// checkInvariants is used by tests to assert the §8 post-parse properties
// hold; it is not part of the construction path itself (construction always
// satisfies them by following §4.1 literally).
func (m *Model) checkInvariants() error {
	for _, v := range m.Vertices {
		if v.MaxComponent() > 1+1e-5 {
			return fmt.Errorf("model: vertex %v exceeds unit bound", v)
		}
	}
	if c := m.Centroid(); c.Len() > 1e-4 {
		return fmt.Errorf("model: centroid %v not at origin", c)
	}
	for _, n := range m.VertNormals {
		if math.Abs(n.Len()-1) > 1e-4 {
			return fmt.Errorf("model: vert normal %v not unit", n)
		}
	}
	for _, n := range m.FaceNormals {
		if math.Abs(n.Len()-1) > 1e-4 {
			return fmt.Errorf("model: face normal %v not unit", n)
		}
	}
	for _, f := range m.Faces {
		if len(f) != 3 {
			return fmt.Errorf("model: face with %d indices, want 3", len(f))
		}
	}
	return nil
}
