package scene

import (
	"math"
	"testing"

	"github.com/taigrr/rasty/pkg/math3d"
)

func TestClipConservationInside(t *testing.T) {
	plane := NewClipPlane(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1))
	tri := Triangle{math3d.V3(0, 0, 2), math3d.V3(1, 0, 2), math3d.V3(0, 1, 2)}
	out := ClipAgainstPlane(ClipSet{Pos: tri}, plane)
	if len(out) != 1 {
		t.Fatalf("expected 1 triangle unchanged, got %d", len(out))
	}
	if out[0].Pos != tri {
		t.Errorf("triangle wholly inside was modified: %v", out[0].Pos)
	}
}

func TestClipConservationOutside(t *testing.T) {
	plane := NewClipPlane(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1))
	tri := Triangle{math3d.V3(0, 0, 0), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)}
	out := ClipAgainstPlane(ClipSet{Pos: tri}, plane)
	if len(out) != 0 {
		t.Fatalf("expected 0 triangles, got %d", len(out))
	}
}

func TestClipInterpolationLawTwoOut(t *testing.T) {
	plane := NewClipPlane(math3d.V3(0, 0, 1), math3d.V3(0, 0, 1))
	// Vertex 0 inside (z=2), vertices 1,2 outside (z=0): a 1-in/2-out split.
	pos := Triangle{math3d.V3(0, 0, 2), math3d.V3(2, 0, 0), math3d.V3(0, 2, 0)}
	normals := Triangle{math3d.V3(1, 0, 0), math3d.V3(0, 1, 0), math3d.V3(0, 0, 1)}

	out := ClipAgainstPlane(ClipSet{Pos: pos, Attrs: []Triangle{normals}}, plane)
	if len(out) != 1 {
		t.Fatalf("expected 1 triangle for 1-in/2-out split, got %d", len(out))
	}
	cs := out[0]

	// The two new vertices (cs.Pos[1], cs.Pos[2]) must lie on the plane and
	// satisfy the interpolation law against their originating edge.
	for _, check := range []struct {
		newPt, pin, pout math3d.Vec3
		newAttr, ain, aout math3d.Vec3
	}{
		{cs.Pos[1], pos[0], pos[1], cs.Attrs[0][1], normals[0], normals[1]},
		{cs.Pos[2], pos[0], pos[2], cs.Attrs[0][2], normals[0], normals[2]},
	} {
		edge := check.pout.Sub(check.pin)
		var ratio float64
		if math.Abs(edge.X) > 1e-9 {
			ratio = (check.newPt.X - check.pin.X) / edge.X
		} else if math.Abs(edge.Y) > 1e-9 {
			ratio = (check.newPt.Y - check.pin.Y) / edge.Y
		} else {
			ratio = (check.newPt.Z - check.pin.Z) / edge.Z
		}
		if ratio < -1e-6 || ratio > 1+1e-6 {
			t.Errorf("t out of [0,1]: %v", ratio)
		}
		wantAttr := check.ain.Add(check.aout.Sub(check.ain).Scale(ratio))
		if wantAttr.Sub(check.newAttr).Len() > 1e-6 {
			t.Errorf("attribute interpolation mismatch: got %v want %v", check.newAttr, wantAttr)
		}
	}
}
