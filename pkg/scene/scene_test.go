package scene

import (
	"math"
	"strings"
	"testing"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/model"
	"github.com/taigrr/rasty/pkg/raster"
)

const cubeOBJ = `
v -1 -1 -1
v  1 -1 -1
v  1  1 -1
v -1  1 -1
v -1 -1  1
v  1 -1  1
v  1  1  1
v -1  1  1
f 1 2 3 4
f 5 8 7 6
f 1 5 6 2
f 2 6 7 3
f 3 7 8 4
f 4 8 5 1
`

func mustCube(t *testing.T) *model.Model {
	t.Helper()
	m, err := model.ParseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	return m
}

func TestCubeWireframeDepthInRange(t *testing.T) {
	cube := mustCube(t)
	s := New(math.Pi/2, 1, 10, 1.0)
	s.Wireframe = true
	s.AddModel(cube, math3d.V3(0, 0, 3), 1.0, color.RGB(255, 255, 255))

	fb := raster.New(512, 512)
	fb.DrawLock()
	s.Draw(fb)
	fb.DrawUnlock()

	found := false
	for y := 0; y < 512; y++ {
		for x := 0; x < 512; x++ {
			_, z, res := fb.GetPixel(x, y)
			if res != raster.Success {
				continue
			}
			if z > 0 && z < 1 {
				found = true
			}
		}
	}
	if !found {
		t.Error("expected some pixels with depth in (0,1)")
	}
}

func TestBackfaceCullDropsAwayFacingTriangle(t *testing.T) {
	// Centroid at (0,0,3) puts face_to_cam exactly on -z, so its dot with
	// faceNorm (0,0,1) is exactly -1: safely past the near-perfect-only
	// BackfaceCullThreshold regardless of floating point slop. A centroid
	// offset from the z-axis (e.g. (-1,-1,3),(1,-1,3),(0,1,3)) only reaches
	// dot ~= -0.994, which this threshold does NOT cull.
	tris := []triSet{{
		pos:      Triangle{math3d.V3(-1, -1, 3), math3d.V3(1, -1, 3), math3d.V3(0, 2, 3)},
		norm:     Triangle{math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)},
		faceNorm: math3d.V3(0, 0, 1),
	}}
	out := cull(tris)
	if len(out) != 0 {
		t.Errorf("expected away-facing triangle culled, got %d survivors", len(out))
	}
}

func TestNearPlaneClipMinZ(t *testing.T) {
	tris := []triSet{{
		pos:  Triangle{math3d.V3(0, 0, 0.5), math3d.V3(-1, 0, 5), math3d.V3(1, 0, 5)},
		norm: Triangle{math3d.V3(0, 0, 1), math3d.V3(0, 0, 1), math3d.V3(0, 0, 1)},
	}}
	out := clipZ(tris, 1, 10)
	if len(out) == 0 {
		t.Fatal("expected at least one surviving triangle")
	}
	minZ := math.Inf(1)
	for _, t := range out {
		for _, v := range t.pos {
			if v.Z < minZ {
				minZ = v.Z
			}
		}
	}
	if math.Abs(minZ-1) > 1e-4 {
		t.Errorf("min z = %v, want ~1 (znear)", minZ)
	}
}

func TestConfigFileScenario(t *testing.T) {
	cfg := `fov_deg 90
z_bound 1 10
wireframe 1
light 0 0 -1
`
	s, err := ParseConfig(strings.NewReader(cfg), 512, 512)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !s.Wireframe {
		t.Error("wireframe should be true")
	}
	if len(s.Lights) != 1 {
		t.Errorf("expected 1 light, got %d", len(s.Lights))
	}
	if math.Abs(s.Projection.FOV()-math.Pi/2) > 1e-6 {
		t.Errorf("fov = %v, want pi/2", s.Projection.FOV())
	}
	if math.Abs(s.Projection.ZNear()-1) > 1e-9 || math.Abs(s.Projection.ZFar()-10) > 1e-9 {
		t.Errorf("z_bound not applied: znear=%v zfar=%v", s.Projection.ZNear(), s.Projection.ZFar())
	}
}
