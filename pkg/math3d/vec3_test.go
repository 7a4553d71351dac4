package math3d

import (
	"math"
	"testing"
)

func TestVec3Basics(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(4, -1, 2)

	if got := a.Add(b); got != (Vec3{5, 1, 5}) {
		t.Errorf("Add = %v, want {5 1 5}", got)
	}
	if got := a.Sub(b); got != (Vec3{-3, 3, 1}) {
		t.Errorf("Sub = %v, want {-3 3 1}", got)
	}
	if got := a.Dot(b); got != 4-2+6 {
		t.Errorf("Dot = %v, want 8", got)
	}
	if got := a.Scale(2); got != (Vec3{2, 4, 6}) {
		t.Errorf("Scale = %v, want {2 4 6}", got)
	}
}

func TestVec3Cross(t *testing.T) {
	x := V3(1, 0, 0)
	y := V3(0, 1, 0)
	z := x.Cross(y)
	if math.Abs(z.Z-1) > 1e-9 || math.Abs(z.X) > 1e-9 || math.Abs(z.Y) > 1e-9 {
		t.Errorf("Cross(x,y) = %v, want {0 0 1}", z)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := V3(3, 0, 4).Normalize()
	if math.Abs(v.Len()-1) > 1e-9 {
		t.Errorf("Normalize length = %v, want 1", v.Len())
	}
	if zero := Zero3().Normalize(); zero != (Vec3{}) {
		t.Errorf("Normalize of zero vector = %v, want zero", zero)
	}
}

func TestVec3MaxComponent(t *testing.T) {
	v := V3(-5, 2, 3)
	if got := v.MaxComponent(); got != 5 {
		t.Errorf("MaxComponent = %v, want 5", got)
	}
}
