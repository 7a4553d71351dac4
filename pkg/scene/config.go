package scene

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/model"
)

// ModelsDir is the directory `model <name> ...` directives resolve
// `<name>.obj` against, per §6.
var ModelsDir = "Models"

// LoadConfig reads a line-based scene config file per §6: fov_deg, z_bound,
// wireframe, cam_light, light, model, and comment/blank lines.
func LoadConfig(path string, width, height int) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open config %q: %w", path, err)
	}
	defer f.Close()
	return ParseConfig(f, width, height)
}

// ParseConfig builds a Scene from r's line-based directives. Unrecognized
// first tokens are ignored, matching §6's "anything else — ignored"
// leniency for the mesh format and mirrored here for the config format.
func ParseConfig(r io.Reader, width, height int) (*Scene, error) {
	s := New(math.Pi/2, 1, 10, float64(height)/float64(width))

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if err := applyDirective(s, fields); err != nil {
			return nil, fmt.Errorf("scene: line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scene: reading config: %w", err)
	}
	return s, nil
}

func applyDirective(s *Scene, fields []string) error {
	switch fields[0] {
	case "fov_deg":
		f, err := parseFloat(fields, 1)
		if err != nil {
			return err
		}
		s.Projection.SetFOV(f * math.Pi / 180)
	case "z_bound":
		znear, err := parseFloat(fields, 1)
		if err != nil {
			return err
		}
		zfar, err := parseFloat(fields, 2)
		if err != nil {
			return err
		}
		s.Projection.SetZBound(znear, zfar)
	case "wireframe":
		b, err := parseBool(fields, 1)
		if err != nil {
			return err
		}
		s.Wireframe = b
	case "cam_light":
		b, err := parseBool(fields, 1)
		if err != nil {
			return err
		}
		s.CamLight = b
	case "light":
		v, err := parseVec3(fields, 1)
		if err != nil {
			return err
		}
		s.AddLight(v)
	case "model":
		return applyModelDirective(s, fields)
	default:
		log.Warn("scene: ignoring unrecognized config directive", "token", fields[0])
	}
	return nil
}

func applyModelDirective(s *Scene, fields []string) error {
	if len(fields) < 7 {
		return fmt.Errorf("model directive needs 6 arguments, got %d", len(fields)-1)
	}
	name := fields[1]
	hexColor, err := strconv.ParseUint(strings.TrimPrefix(fields[2], "0x"), 16, 32)
	if err != nil {
		return fmt.Errorf("model color %q: %w", fields[2], err)
	}
	pos, err := parseVec3(fields, 3)
	if err != nil {
		return err
	}
	scale, err := parseFloat(fields, 6)
	if err != nil {
		return err
	}

	path := filepath.Join(ModelsDir, name+".obj")
	m, err := model.LoadOrDefault(path)
	if err != nil {
		return fmt.Errorf("loading model %q: %w", name, err)
	}
	s.AddModel(m, pos, scale, color.FromHex(uint32(hexColor)))
	return nil
}

func parseFloat(fields []string, idx int) (float64, error) {
	if idx >= len(fields) {
		return 0, fmt.Errorf("missing argument at position %d", idx)
	}
	return strconv.ParseFloat(fields[idx], 64)
}

func parseBool(fields []string, idx int) (bool, error) {
	f, err := parseFloat(fields, idx)
	if err != nil {
		return false, err
	}
	return f != 0, nil
}

func parseVec3(fields []string, idx int) (math3d.Vec3, error) {
	x, err := parseFloat(fields, idx)
	if err != nil {
		return math3d.Vec3{}, err
	}
	y, err := parseFloat(fields, idx+1)
	if err != nil {
		return math3d.Vec3{}, err
	}
	z, err := parseFloat(fields, idx+2)
	if err != nil {
		return math3d.Vec3{}, err
	}
	return math3d.V3(x, y, z), nil
}
