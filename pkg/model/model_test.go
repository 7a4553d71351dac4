package model

import (
	"strings"
	"testing"
)

const cubeOBJ = `
# unit cube
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

func TestParseOBJCubeInvariants(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(cubeOBJ))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if err := m.checkInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
	if got := m.VertexCount(); got != 8 {
		t.Errorf("VertexCount = %d, want 8", got)
	}
	if got := m.TriangleCount(); got != 12 {
		t.Errorf("TriangleCount = %d, want 12 (6 quads x 2 triangles)", got)
	}
}

func TestParseOBJEmptyFile(t *testing.T) {
	m, err := ParseOBJ(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.VertexCount() != 0 || m.TriangleCount() != 0 {
		t.Errorf("empty file should yield empty model, got %d verts / %d faces", m.VertexCount(), m.TriangleCount())
	}
}

func TestParseOBJInvalidFaceToken(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf /1 2 3\n"
	_, err := ParseOBJ(strings.NewReader(src))
	if err == nil {
		t.Fatal("expected ParseError for face token with delimiter but no leading index")
	}
}

func TestParseOBJDropsDegenerateFace(t *testing.T) {
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2\n"
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if m.TriangleCount() != 0 {
		t.Errorf("TriangleCount = %d, want 0 (face with <3 indices dropped)", m.TriangleCount())
	}
}

func TestParseOBJPentagonTriangulates(t *testing.T) {
	// Regular pentagon in the XY plane.
	src := `
v 1.000 0.000 0
v 0.309 0.951 0
v -0.809 0.588 0
v -0.809 -0.588 0
v 0.309 -0.951 0
f 1 2 3 4 5
`
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if got := m.TriangleCount(); got != 3 {
		t.Errorf("TriangleCount = %d, want 3 for a pentagon", got)
	}
	if err := m.checkInvariants(); err != nil {
		t.Errorf("invariants: %v", err)
	}
}

func TestParseOBJThirdNormalComponentRead(t *testing.T) {
	// §9: the vn parser reads all three floats (the "should be fixed" open
	// question), not just the first two.
	src := "v 0 0 0\nv 1 0 0\nv 0 1 0\nvn 0 0 1\nf 1//1 2//1 3//1\n"
	m, err := ParseOBJ(strings.NewReader(src))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(m.VertNormals) != 1 {
		t.Fatalf("expected 1 vert normal, got %d", len(m.VertNormals))
	}
	n := m.VertNormals[0]
	if n.Z < 0.9 {
		t.Errorf("vn 0 0 1 normalized = %v, want z near 1", n)
	}
}
