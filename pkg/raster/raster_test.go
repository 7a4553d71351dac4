package raster

import (
	"testing"

	"github.com/taigrr/rasty/pkg/color"
)

func TestZTestStrictlyNearerWins(t *testing.T) {
	fb := New(4, 4)
	fb.DrawLock()
	defer fb.DrawUnlock()

	red := color.RGB(255, 0, 0)
	blue := color.RGB(0, 0, 255)

	if res := fb.SetPixel(1, 1, red, 0.5); res != Success {
		t.Fatalf("first write: %v", res)
	}
	if res := fb.SetPixel(1, 1, blue, 0.5); res != Depth {
		t.Fatalf("equal-depth rewrite should be rejected, got %v", res)
	}
	c, _, _ := fb.GetPixel(1, 1)
	if c != red {
		t.Errorf("equal-depth rewrite changed pixel, want it to keep the first write")
	}

	if res := fb.SetPixel(1, 1, blue, 0.2); res != Success {
		t.Fatalf("strictly-nearer write rejected: %v", res)
	}
	c, _, _ = fb.GetPixel(1, 1)
	if c != blue {
		t.Errorf("nearer write did not overwrite")
	}
}

func TestIdempotentLock(t *testing.T) {
	fb := New(2, 2)
	fb.DrawLock()
	fb.DrawLock()
	if !fb.DrawLocked() {
		t.Fatal("expected locked")
	}
	fb.DrawUnlock()
	if fb.DrawLocked() {
		t.Fatal("expected unlocked after single unlock")
	}
}

func TestDiagonalLine(t *testing.T) {
	fb := New(10, 10)
	fb.DrawLock()
	defer fb.DrawUnlock()

	white := color.RGB(255, 255, 255)
	fb.DrawLine(
		Point{X: 0, Y: 0, Z: 0.5, Color: white},
		Point{X: 9, Y: 9, Z: 0.5, Color: white},
	)
	for i := 0; i < 10; i++ {
		c, z, res := fb.GetPixel(i, i)
		if res != Success {
			t.Fatalf("pixel (%d,%d) read failed: %v", i, i, res)
		}
		if c != white {
			t.Errorf("pixel (%d,%d) = %v, want white", i, i, c)
		}
		if z != 0.5 {
			t.Errorf("pixel (%d,%d) depth = %v, want 0.5", i, i, z)
		}
	}
}

func TestFillTriangleBarycentricCover(t *testing.T) {
	fb := New(6, 6)
	fb.DrawLock()
	defer fb.DrawUnlock()

	red := color.RGB(255, 0, 0)
	a := Point{X: 0, Y: 0, Z: 0.5, Color: red}
	b := Point{X: 4, Y: 0, Z: 0.5, Color: red}
	c := Point{X: 0, Y: 4, Z: 0.5, Color: red}
	fb.FillTriangle(a, b, c)

	inside := 0
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			pc, _, _ := fb.GetPixel(x, y)
			if pc == red {
				inside++
			}
		}
	}
	if inside == 0 {
		t.Error("expected some pixels covered by the triangle")
	}
}

func TestGouraudCornerColors(t *testing.T) {
	fb := New(50, 50)
	fb.DrawLock()
	defer fb.DrawUnlock()

	red := color.RGB(255, 0, 0)
	green := color.RGB(0, 255, 0)
	blue := color.RGB(0, 0, 255)

	a := Point{X: 5, Y: 5, Z: 0.5, Color: red}
	b := Point{X: 45, Y: 5, Z: 0.5, Color: green}
	c := Point{X: 5, Y: 45, Z: 0.5, Color: blue}
	fb.FillTriangle(a, b, c)

	pc, _, _ := fb.GetPixel(5, 5)
	if diffAny(pc, red) > 10 {
		t.Errorf("corner A = %v, want near red", pc)
	}
	pc, _, _ = fb.GetPixel(45, 5)
	if diffAny(pc, green) > 10 {
		t.Errorf("corner B = %v, want near green", pc)
	}
	pc, _, _ = fb.GetPixel(5, 45)
	if diffAny(pc, blue) > 10 {
		t.Errorf("corner C = %v, want near blue", pc)
	}
}

func diffAny(a, b color.Color) int {
	d := func(x, y uint8) int {
		if x > y {
			return int(x - y)
		}
		return int(y - x)
	}
	return d(a.R, b.R) + d(a.G, b.G) + d(a.B, b.B)
}
