// Package scene orchestrates the render pipeline of §4.6: per-model local-to-
// world and camera transforms, z-plane and screen-plane clipping, back-face
// culling, projection, and the final line/fill dispatch into pkg/raster.
package scene

import (
	"log/slog"
	"math"

	"github.com/taigrr/rasty/pkg/camera"
	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/model"
	"github.com/taigrr/rasty/pkg/projection"
	"github.com/taigrr/rasty/pkg/raster"
)

var log = slog.Default()

// BackfaceCullThreshold is the source's `>= -0.9999` keep-test: it keeps
// almost every face and culls only near-perfect back-facers, rather than
// the conventional `> 0`. Exposed as a tunable per §9's design note.
var BackfaceCullThreshold = -0.9999

// Instance places one Model in the scene: position and uniform scale as
// recorded by the `model` config directive, plus an ordered list of
// rotation quaternions applied to every vertex and normal before the
// model's own local-to-world transform (mirroring Scene::rotate's
// per-axis Quaternion-in-recorded-order application).
type Instance struct {
	Model     *model.Model
	Position  math3d.Vec3
	Scale     float64
	Rotations []math3d.Quaternion
	Color     color.Color
}

// LocalToWorld builds L = scale * translate, in that order, per §4.6 step 1.
// Applied to a point, L translates it first and then scales the result, so
// for a non-unit scale the translation is scaled as well.
func (inst *Instance) LocalToWorld() math3d.Mat4 {
	s := math3d.ScaleUniform(inst.Scale)
	t := math3d.Translate(inst.Position)
	return s.Mul(t)
}

// rotate applies every recorded rotation quaternion to v in order, via the
// sandwich product, per Scene::rotate.
func (inst *Instance) rotate(v math3d.Vec3) math3d.Vec3 {
	for _, q := range inst.Rotations {
		v = q.Rotate(v)
	}
	return v
}

// Scene holds the camera, projection, lights, model instances, and render
// mode flags that together make draw() a pure function of state.
type Scene struct {
	Camera     *camera.Camera
	Projection *projection.Matrix
	Models     []*Instance
	Lights     []math3d.Vec3
	Wireframe  bool
	CamLight   bool

	// FrustumCull enables an optional broad-phase reject of whole model
	// instances whose view-space bounding box lies entirely outside the
	// view frustum, skipping their clip/rasterize cost entirely. Off by
	// default: the per-triangle clip cascade in clipZ/clipXY is already
	// exact, so this is a pure performance knob, not a correctness
	// requirement of the render pipeline.
	FrustumCull bool
}

// New constructs a Scene with a default camera and the given projection
// parameters.
func New(fovRad, znear, zfar, aspect float64) *Scene {
	return &Scene{
		Camera:     camera.New(),
		Projection: projection.New(fovRad, znear, zfar, aspect),
		Wireframe:  true,
		CamLight:   true,
	}
}

// AddModel appends a model instance and returns its index.
func (s *Scene) AddModel(m *model.Model, pos math3d.Vec3, scale float64, c color.Color) int {
	s.Models = append(s.Models, &Instance{Model: m, Position: pos, Scale: scale, Color: c})
	return len(s.Models) - 1
}

// AddLight appends a light position and returns its index.
func (s *Scene) AddLight(p math3d.Vec3) int {
	s.Lights = append(s.Lights, p)
	return len(s.Lights) - 1
}

// triSet is the working per-triangle bundle threaded through the pipeline:
// view-space position, view-space vertex normals, and the view-space face
// normal (carried unchanged through clipping since it isn't a per-vertex
// clipped attribute).
type triSet struct {
	pos      Triangle
	norm     Triangle
	faceNorm math3d.Vec3
}

// Draw runs every model instance through the full §4.6 pipeline and emits
// pixels into fb. Callers are responsible for fb.DrawLock()/DrawUnlock()
// around the call, per §5's per-frame draw-lock discipline.
func (s *Scene) Draw(fb *raster.Framebuffer) {
	viewMat := s.Camera.ViewMatrix()
	normMat := s.Camera.NormalMatrix()

	var fr frustum
	if s.FrustumCull {
		fr = newFrustum(s.Projection)
	}

	for _, inst := range s.Models {
		localToWorld := inst.LocalToWorld()

		if s.FrustumCull {
			lMin, lMax := inst.Model.Bounds()
			rMin, rMax := rotateAABB(lMin, lMax, inst.rotate)
			wMin, wMax := transformAABB(rMin, rMax, localToWorld)
			vMin, vMax := transformAABB(wMin, wMax, viewMat)
			if fr.rejectsAABB(vMin, vMax) {
				continue
			}
		}

		tris := buildViewSpaceTriangles(inst, localToWorld, viewMat, normMat)

		lights := make([]math3d.Vec3, len(s.Lights))
		for i, l := range s.Lights {
			lights[i] = viewMat.MulVec3(l)
		}
		if s.CamLight {
			lights = append(lights, math3d.Zero3())
		}

		tris = clipZ(tris, s.Projection.ZNear(), s.Projection.ZFar())
		tris = cull(tris)

		worldSpace := make([]Triangle, len(tris))
		for i, t := range tris {
			worldSpace[i] = t.pos
		}
		ndc := project(tris, s.Projection)

		ndc, worldSpace = clipXY(ndc, worldSpace)

		w, h := float64(fb.Width()), float64(fb.Height())
		for i, t := range ndc {
			s.triangleToScreen(fb, t.pos, t.norm, worldSpace[i], lights, inst.Color, w, h)
		}
	}
}

func buildViewSpaceTriangles(inst *Instance, localToWorld, viewMat, normMat math3d.Mat4) []triSet {
	m := inst.Model
	out := make([]triSet, 0, len(m.Faces))
	for faceIdx, face := range m.Faces {
		var t triSet
		for k, fv := range face {
			v := m.Vertices[fv.Vert]
			n := m.VertNormals[fv.Norm]

			v = inst.rotate(v)
			n = inst.rotate(n)

			v = localToWorld.MulVec3(v)

			v = viewMat.MulVec3(v)
			n = normMat.MulVec3Dir(n)

			t.pos[k] = v
			t.norm[k] = n
		}

		fn := inst.rotate(m.FaceNormals[faceIdx])
		t.faceNorm = normMat.MulVec3Dir(fn)

		out = append(out, t)
	}
	return out
}

// clipZ clips every triangle against the near plane (point (0,0,znear),
// normal +z) then cascades survivors through the far plane (point
// (0,0,zfar), normal -z), per §4.6 step 4 / Scene::clip_z. The face normal
// is carried unchanged into every triangle produced from the same parent.
func clipZ(tris []triSet, znear, zfar float64) []triSet {
	near := NewClipPlane(math3d.V3(0, 0, znear), math3d.V3(0, 0, 1))
	far := NewClipPlane(math3d.V3(0, 0, zfar), math3d.V3(0, 0, -1))

	var out []triSet
	for _, t := range tris {
		cs := ClipSet{Pos: t.pos, Attrs: []Triangle{t.norm}}
		nearOut := ClipAgainstPlane(cs, near)
		for _, n := range nearOut {
			for _, f := range ClipAgainstPlane(n, far) {
				out = append(out, triSet{pos: f.Pos, norm: f.Attrs[0], faceNorm: t.faceNorm})
			}
		}
	}
	return out
}

// cull drops triangles whose face points away from the camera by more than
// BackfaceCullThreshold allows (with the default, only faces pointing almost
// exactly away), per §4.6 step 5: view-space camera sits at the origin, so
// the vector from the face centroid to the camera is simply -centroid.
func cull(tris []triSet) []triSet {
	var out []triSet
	for _, t := range tris {
		centroid := t.pos[0].Add(t.pos[1]).Add(t.pos[2]).Scale(1.0 / 3.0)
		faceToCam := centroid.Negate()
		if faceToCam.Normalize().Dot(t.faceNorm.Normalize()) >= BackfaceCullThreshold {
			out = append(out, t)
		}
	}
	return out
}

// project applies the projection matrix to every triangle corner and
// divides through by w where nonzero, writing NDC in place, per §4.6 step
// 6. The input view-space positions are returned unmodified by the
// caller's separate worldSpace copy (taken before this call).
func project(tris []triSet, proj *projection.Matrix) []triSet {
	out := make([]triSet, len(tris))
	for i, t := range tris {
		var ndc Triangle
		for k, v := range t.pos {
			h := proj.Apply(v.X, v.Y, v.Z)
			if h.W != 0 {
				ndc[k] = math3d.V3(h.X/h.W, h.Y/h.W, h.Z/h.W)
			} else {
				ndc[k] = math3d.V3(h.X, h.Y, h.Z)
			}
		}
		out[i] = triSet{pos: ndc, norm: t.norm, faceNorm: t.faceNorm}
	}
	return out
}

// clipXY cascades NDC triangles through the four screen-bound planes
// x=+-0.9, y=+-0.9, carrying the vertex-normal and pre-projection
// world-space triangles alongside, per §4.6 step 7 / Scene::clip_xy.
func clipXY(tris []triSet, worldSpace []Triangle) ([]triSet, []Triangle) {
	x0 := NewClipPlane(math3d.V3(-0.9, 0, 0), math3d.V3(1, 0, 0))
	x1 := NewClipPlane(math3d.V3(0.9, 0, 0), math3d.V3(-1, 0, 0))
	y0 := NewClipPlane(math3d.V3(0, -0.9, 0), math3d.V3(0, 1, 0))
	y1 := NewClipPlane(math3d.V3(0, 0.9, 0), math3d.V3(0, -1, 0))

	var outTris []triSet
	var outWorld []Triangle
	for i, t := range tris {
		cs := ClipSet{Pos: t.pos, Attrs: []Triangle{t.norm, worldSpace[i]}}
		results := ClipCascade([]ClipSet{cs}, []ClipPlane{x0, x1, y0, y1})
		for _, r := range results {
			outTris = append(outTris, triSet{pos: r.Pos, norm: r.Attrs[0], faceNorm: t.faceNorm})
			outWorld = append(outWorld, r.Attrs[1])
		}
	}
	return outTris, outWorld
}

// triangleToScreen maps NDC to pixel coordinates and dispatches to the
// wireframe or Gouraud-filled raster routine, per §4.6 step 8.
func (s *Scene) triangleToScreen(fb *raster.Framebuffer, ndc, norm, world Triangle, lights []math3d.Vec3, modelColor color.Color, w, h float64) {
	var px, py [3]float64
	for k := 0; k < 3; k++ {
		px[k] = math.Trunc((ndc[k].X + 1) * w / 2)
		py[k] = math.Trunc((ndc[k].Y + 1) * h / 2)
	}

	if s.Wireframe {
		pts := [3]raster.Point{}
		for k := 0; k < 3; k++ {
			pts[k] = raster.Point{X: px[k], Y: py[k], Z: ndc[k].Z, Color: modelColor}
		}
		fb.DrawWireTriangle(pts[0], pts[1], pts[2], modelColor)
		return
	}

	var colors [3]color.Color
	for k := 0; k < 3; k++ {
		lit := 0.0
		for _, light := range lights {
			lightVec := light.Sub(world[k]).Normalize()
			dot := lightVec.Dot(norm[k].Normalize())
			if dot > 0 {
				lit += dot
			}
		}
		switch {
		case lit >= 1:
			colors[k] = modelColor
		case lit <= 0:
			colors[k] = color.Color{}
		default:
			colors[k] = modelColor.Scale(lit)
		}
	}

	fb.FillTriangle(
		raster.Point{X: px[0], Y: py[0], Z: ndc[0].Z, Color: colors[0]},
		raster.Point{X: px[1], Y: py[1], Z: ndc[1].Z, Color: colors[1]},
		raster.Point{X: px[2], Y: py[2], Z: ndc[2].Z, Color: colors[2]},
	)
}

// ProcessInput applies a latched camera operation by name, matching the
// §6 input surface table (rot_up/rot_down/rot_left/rot_right/zoom_in/
// zoom_out/left/right/roll_left/roll_right/raise/lower). Unknown names are
// logged and ignored.
func (s *Scene) ProcessInput(op string) {
	switch op {
	case "rot_up":
		s.Camera.RotUp()
	case "rot_down":
		s.Camera.RotDown()
	case "rot_left":
		s.Camera.RotLeft()
	case "rot_right":
		s.Camera.RotRight()
	case "zoom_in":
		s.Camera.ZoomIn()
	case "zoom_out":
		s.Camera.ZoomOut()
	case "left":
		s.Camera.Left()
	case "right":
		s.Camera.RightMove()
	case "roll_left":
		s.Camera.RollLeft()
	case "roll_right":
		s.Camera.RollRight()
	case "raise":
		s.Camera.Raise()
	case "lower":
		s.Camera.Lower()
	default:
		log.Warn("scene: unknown input operation", "op", op)
	}
}
