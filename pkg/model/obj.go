package model

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/taigrr/rasty/pkg/math3d"
)

// LoadOBJ parses a Wavefront-OBJ-subset mesh file per §4.1/§6. A missing
// file is a soft error: the caller gets (nil, err) and is expected to fall
// back to a default model, per §7's MissingAsset handling.
func LoadOBJ(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		log.Warn("model: mesh file not found, caller should fall back to default", "path", path)
		return nil, fmt.Errorf("model: open %q: %w", path, err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

// ParseOBJ parses a Wavefront-OBJ-subset mesh stream. An empty stream yields
// an empty Model; a face token with a delimiter but no leading index is a
// fatal ParseError aborting construction, per §4.1.
func ParseOBJ(r io.Reader) (*Model, error) {
	b := newBuilder()

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "v":
			v, err := parseVec3(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("model: line %d: %w", lineNo, err)
			}
			b.vertices = append(b.vertices, v)
		case "vn":
			v, err := parseVec3(fields[1:], 3)
			if err != nil {
				return nil, fmt.Errorf("model: line %d: %w", lineNo, err)
			}
			b.vertNormals = append(b.vertNormals, v)
			b.haveNormals = true
		case "vt":
			v, err := parseVec3(fields[1:], 2)
			if err != nil {
				return nil, fmt.Errorf("model: line %d: %w", lineNo, err)
			}
			b.textures = append(b.textures, v)
		case "f":
			face, err := parseFace(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("model: line %d: %w", lineNo, err)
			}
			b.raw = append(b.raw, face)
		default:
			// unknown directive, ignored per §4.1.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("model: scan: %w", err)
	}

	return b.finish(), nil
}

// parseVec3 parses up to n (2 or 3) floats into a Vec3, defaulting the
// missing z component to zero (used for `vt`, which only carries u,v).
func parseVec3(fields []string, n int) (math3d.Vec3, error) {
	var v math3d.Vec3
	for i := 0; i < n && i < len(fields); i++ {
		f, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return v, fmt.Errorf("invalid float %q: %w", fields[i], err)
		}
		switch i {
		case 0:
			v.X = f
		case 1:
			v.Y = f
		case 2:
			v.Z = f
		}
	}
	return v, nil
}

// parseFace parses the `i[/j[/k]]` tuples of a face directive into a
// rawFace, converting the file's 1-based indices to 0-based and -1 for
// absent fields.
func parseFace(tokens []string) (rawFace, error) {
	face := make(rawFace, 0, len(tokens))
	for _, tok := range tokens {
		fv, err := parseFaceVertex(tok)
		if err != nil {
			return nil, err
		}
		face = append(face, fv)
	}
	return face, nil
}

func parseFaceVertex(tok string) (FaceVertex, error) {
	parts := strings.Split(tok, "/")
	fv := FaceVertex{Vert: -1, Tex: -1, Norm: -1}

	if parts[0] == "" {
		return fv, fmt.Errorf("%w: %q", ErrInvalidFaceToken, tok)
	}
	idx, err := parseOneBased(parts[0])
	if err != nil {
		return fv, fmt.Errorf("%w: %q", ErrInvalidFaceToken, tok)
	}
	fv.Vert = idx

	if len(parts) > 1 && parts[1] != "" {
		idx, err := parseOneBased(parts[1])
		if err != nil {
			return fv, fmt.Errorf("%w: %q", ErrInvalidFaceToken, tok)
		}
		fv.Tex = idx
	}
	if len(parts) > 2 && parts[2] != "" {
		idx, err := parseOneBased(parts[2])
		if err != nil {
			return fv, fmt.Errorf("%w: %q", ErrInvalidFaceToken, tok)
		}
		fv.Norm = idx
	}
	return fv, nil
}

func parseOneBased(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	return n - 1, nil
}
