package scene

import (
	"math"
	"testing"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/projection"
	"github.com/taigrr/rasty/pkg/raster"
)

func TestFrustumRejectsBoxBehindCamera(t *testing.T) {
	p := projection.New(math.Pi/2, 1, 10, 1.0)
	f := newFrustum(p)

	if !f.rejectsAABB(math3d.V3(-1, -1, -5), math3d.V3(1, 1, -3)) {
		t.Error("expected box entirely behind the camera (negative z) to be rejected")
	}
}

func TestFrustumKeepsBoxAheadOnAxis(t *testing.T) {
	p := projection.New(math.Pi/2, 1, 10, 1.0)
	f := newFrustum(p)

	if f.rejectsAABB(math3d.V3(-0.1, -0.1, 3), math3d.V3(0.1, 0.1, 4)) {
		t.Error("expected a small box straight ahead within [znear,zfar] to be kept")
	}
}

func TestFrustumRejectsBoxBeyondFar(t *testing.T) {
	p := projection.New(math.Pi/2, 1, 10, 1.0)
	f := newFrustum(p)

	if !f.rejectsAABB(math3d.V3(-1, -1, 20), math3d.V3(1, 1, 30)) {
		t.Error("expected box entirely beyond zfar to be rejected")
	}
}

func TestSceneFrustumCullSkipsOffscreenInstance(t *testing.T) {
	cube := mustCube(t)
	s := New(math.Pi/2, 1, 10, 1.0)
	s.FrustumCull = true
	s.Wireframe = true
	// Placed far behind the camera's default forward direction: should be
	// broad-phase rejected and draw nothing, with no panic from the
	// skipped clip/rasterize path.
	s.AddModel(cube, math3d.V3(0, 0, -50), 1.0, color.RGB(255, 255, 255))

	fb := raster.New(64, 64)
	fb.DrawLock()
	s.Draw(fb)
	fb.DrawUnlock()
}
