package scene

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/model"
)

// yamlConfig is an alternate, structured encoding of the same directives
// ParseConfig reads line-by-line — offered for scenes that are easier to
// author as data than as a directive script. The line-based grammar in
// §6 remains the required format; this is an additive convenience.
type yamlConfig struct {
	FOVDeg    float64       `yaml:"fov_deg"`
	ZNear     float64       `yaml:"z_near"`
	ZFar      float64       `yaml:"z_far"`
	Wireframe bool          `yaml:"wireframe"`
	CamLight  bool          `yaml:"cam_light"`
	Lights    [][3]float64  `yaml:"lights"`
	Models    []yamlModel   `yaml:"models"`
}

type yamlModel struct {
	Name  string     `yaml:"name"`
	Color string     `yaml:"color"`
	Pos   [3]float64 `yaml:"pos"`
	Scale float64    `yaml:"scale"`
}

// LoadConfigYAML reads a YAML scene description, per the same fields as the
// line-based grammar.
func LoadConfigYAML(path string, width, height int) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scene: read yaml config %q: %w", path, err)
	}

	var cfg yamlConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("scene: parse yaml config %q: %w", path, err)
	}

	fovRad := math.Pi / 2
	if cfg.FOVDeg != 0 {
		fovRad = cfg.FOVDeg * math.Pi / 180
	}
	znear, zfar := cfg.ZNear, cfg.ZFar
	if znear == 0 {
		znear = 1
	}
	if zfar == 0 {
		zfar = 10
	}

	s := New(fovRad, znear, zfar, float64(height)/float64(width))
	s.Wireframe = cfg.Wireframe
	s.CamLight = cfg.CamLight

	for _, l := range cfg.Lights {
		s.AddLight(math3d.V3(l[0], l[1], l[2]))
	}

	for _, mc := range cfg.Models {
		path := filepath.Join(ModelsDir, mc.Name+".obj")
		m, err := model.LoadOrDefault(path)
		if err != nil {
			return nil, fmt.Errorf("scene: loading model %q: %w", mc.Name, err)
		}
		var hex uint64 = 0xFFFFFF
		if mc.Color != "" {
			if _, err := fmt.Sscanf(mc.Color, "0x%x", &hex); err != nil {
				return nil, fmt.Errorf("scene: model %q color %q: %w", mc.Name, mc.Color, err)
			}
		}
		pos := math3d.V3(mc.Pos[0], mc.Pos[1], mc.Pos[2])
		scale := mc.Scale
		if scale == 0 {
			scale = 1
		}
		s.AddModel(m, pos, scale, color.FromHex(uint32(hex)))
	}

	return s, nil
}
