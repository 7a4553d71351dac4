package camera

import (
	"math"
	"testing"
)

func orthonormal(t *testing.T, c *Camera) {
	t.Helper()
	const tol = 1e-4
	if math.Abs(c.Dir.Dot(c.Up)) > tol {
		t.Errorf("dir.up = %v, want ~0", c.Dir.Dot(c.Up))
	}
	if math.Abs(c.Dir.Dot(c.Right)) > tol {
		t.Errorf("dir.right = %v, want ~0", c.Dir.Dot(c.Right))
	}
	if math.Abs(c.Up.Dot(c.Right)) > tol {
		t.Errorf("up.right = %v, want ~0", c.Up.Dot(c.Right))
	}
	for name, v := range map[string]float64{"dir": c.Dir.Len(), "up": c.Up.Len(), "right": c.Right.Len()} {
		if math.Abs(v-1) > tol {
			t.Errorf("%s length = %v, want 1", name, v)
		}
	}
}

func TestNewCameraOrthonormal(t *testing.T) {
	orthonormal(t, New())
}

func TestRotationsPreserveOrthonormality(t *testing.T) {
	c := New()
	for i := 0; i < 50; i++ {
		c.RotLeft()
		c.RotUp()
		c.RollRight()
	}
	orthonormal(t, c)
}

func TestZoomMovesAlongDir(t *testing.T) {
	c := New()
	before := c.Pos
	c.ZoomIn()
	after := c.Pos
	delta := after.Sub(before)
	if delta.Sub(c.Dir.Scale(c.Step)).Len() > 1e-9 {
		t.Errorf("zoom_in delta = %v, want %v", delta, c.Dir.Scale(c.Step))
	}
}

func TestViewMatrixRowsMatchBasis(t *testing.T) {
	c := New()
	m := c.ViewMatrix()
	if m.Get(0, 0) != c.Right.X || m.Get(1, 0) != c.Up.X || m.Get(2, 0) != c.Dir.X {
		t.Errorf("view matrix column 0 does not match basis vectors' x components")
	}
}
