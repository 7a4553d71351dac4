package model

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/rasty/pkg/math3d"
)

// LoadGLTF parses a GLTF/GLB mesh file. It is an alternate loader alongside
// the §4.1 wavefront parser (§1 places "the model file parsers" out of core
// scope at the interface only); triangles are fed through the same
// builder.finish() invariant pipeline OBJ meshes go through, so the
// resulting Model satisfies §3's normalize/triangulate/centroid/unit-normal
// invariants regardless of source format.
//
// GLTF texture coordinates carry no z; they are stored with z=0 in the
// Model's Textures list, matching §3's "textures: ordered list of Vec3 (uv
// only, z=0)".
func LoadGLTF(path string) (*Model, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("model: open gltf %q: %w", path, err)
	}

	b := newBuilder()

	for _, m := range doc.Meshes {
		if err := appendGLTFMesh(doc, m, b); err != nil {
			return nil, fmt.Errorf("model: mesh %q: %w", m.Name, err)
		}
	}

	b.haveNormals = true
	return b.finish(), nil
}

func appendGLTFMesh(doc *gltf.Document, m *gltf.Mesh, b *builder) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3Accessor(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = readVec3Accessor(doc, normIdx)
			if err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}
		if len(normals) != len(positions) {
			normals = computeFlatVertexNormals(positions)
		}

		var uvs [][2]float64
		if uvIdx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = readVec2Accessor(doc, uvIdx)
			if err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
		}

		baseVertex := len(b.vertices)
		for i, p := range positions {
			b.vertices = append(b.vertices, p)
			b.vertNormals = append(b.vertNormals, normals[i])
			if i < len(uvs) {
				b.textures = append(b.textures, math3d.V3(uvs[i][0], 1.0-uvs[i][1], 0))
			} else {
				b.textures = append(b.textures, math3d.Zero3())
			}
		}

		var indices []int
		if prim.Indices != nil {
			indices, err = readIndices(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
		} else {
			for i := range positions {
				indices = append(indices, i)
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a := baseVertex + indices[i]
			bb := baseVertex + indices[i+1]
			c := baseVertex + indices[i+2]
			b.raw = append(b.raw, rawFace{
				{Vert: a, Tex: a, Norm: a},
				{Vert: bb, Tex: bb, Norm: bb},
				{Vert: c, Tex: c, Norm: c},
			})
		}
	}
	return nil
}

func computeFlatVertexNormals(positions []math3d.Vec3) []math3d.Vec3 {
	normals := make([]math3d.Vec3, len(positions))
	for i := 0; i+2 < len(positions); i += 3 {
		a, bv, c := positions[i], positions[i+1], positions[i+2]
		n := bv.Sub(a).Cross(c.Sub(a)).Normalize()
		normals[i], normals[i+1], normals[i+2] = n, n, n
	}
	return normals
}

func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3, got %v", accessor.Type)
	}
	raw, err := readAccessorFloats(doc, accessor, 3)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, len(raw))
	for i, f := range raw {
		out[i] = math3d.V3(f[0], f[1], f[2])
	}
	return out, nil
}

func readVec2Accessor(doc *gltf.Document, accessorIdx int) ([][2]float64, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec2 {
		return nil, fmt.Errorf("expected VEC2, got %v", accessor.Type)
	}
	raw, err := readAccessorFloats(doc, accessor, 2)
	if err != nil {
		return nil, err
	}
	out := make([][2]float64, len(raw))
	for i, f := range raw {
		out[i] = [2]float64{f[0], f[1]}
	}
	return out, nil
}

// readAccessorFloats reads width-component float32 tuples from a GLTF
// accessor's backing buffer view, returned widened to float64.
func readAccessorFloats(doc *gltf.Document, accessor *gltf.Accessor, width int) ([][4]float64, error) {
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, fmt.Errorf("external buffers not supported")
	}

	stride := bv.ByteStride
	if stride == 0 {
		stride = width * 4
	}
	start := bv.ByteOffset + accessor.ByteOffset

	out := make([][4]float64, accessor.Count)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range width {
			out[i][j] = float64(readFloat32(buf.Data[offset+j*4:]))
		}
	}
	return out, nil
}

func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, fmt.Errorf("indices accessor has no buffer view")
	}
	bv := doc.BufferViews[*accessor.BufferView]
	buf := doc.Buffers[bv.Buffer]
	if buf.Data == nil {
		return nil, fmt.Errorf("external buffers not supported")
	}

	start := bv.ByteOffset + accessor.ByteOffset
	out := make([]int, accessor.Count)

	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		for i := range accessor.Count {
			out[i] = int(buf.Data[start+i])
		}
	case gltf.ComponentUshort:
		for i := range accessor.Count {
			o := start + i*2
			out[i] = int(buf.Data[o]) | int(buf.Data[o+1])<<8
		}
	case gltf.ComponentUint:
		for i := range accessor.Count {
			o := start + i*4
			out[i] = int(buf.Data[o]) | int(buf.Data[o+1])<<8 | int(buf.Data[o+2])<<16 | int(buf.Data[o+3])<<24
		}
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}
	return out, nil
}

func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
