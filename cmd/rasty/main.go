// rasty - Terminal CPU software rasterizer
// View OBJ/GLTF models, or scripted multi-model scenes, in your terminal.
//
// Controls:
//
//	W/S/A/D     - Rotate/pan the camera
//	Q/E         - Roll left/right
//	R/F         - Raise/lower
//	+/-         - Zoom in/out
//	Scroll      - Zoom (smoothed)
//	Esc/Ctrl+C  - Quit
package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/taigrr/rasty/internal/term"
	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/math3d"
	"github.com/taigrr/rasty/pkg/model"
	"github.com/taigrr/rasty/pkg/raster"
	"github.com/taigrr/rasty/pkg/scene"
)

var (
	configPath = flag.String("scene", "", "Path to a line-based or YAML scene config")
	fps        = flag.Int("fps", 60, "Target FPS")
	wireframe  = flag.Bool("wireframe", false, "Start in wireframe mode")
	bgColor    = flag.String("bg", "10,10,16", "Background color (R,G,B)")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "rasty - Terminal CPU software rasterizer\n\n")
		fmt.Fprintf(os.Stderr, "Usage: rasty [options] <model.obj|model.gltf|model.glb>\n")
		fmt.Fprintf(os.Stderr, "       rasty -scene <scene.cfg|scene.yaml>\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *configPath == "" && flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	win, err := term.Open(*fps)
	if err != nil {
		return err
	}
	defer win.Close()

	fbWidth, fbHeight := win.FramebufferSize()
	fb := raster.New(fbWidth, fbHeight)

	s, err := loadScene(fbWidth, fbHeight)
	if err != nil {
		return fmt.Errorf("load scene: %w", err)
	}
	s.Wireframe = *wireframe

	var bgR, bgG, bgB uint8
	fmt.Sscanf(*bgColor, "%d,%d,%d", &bgR, &bgG, &bgB)
	bg := color.RGB(bgR, bgG, bgB)

	go func() {
		for ev := range win.Events() {
			win.HandleEvent(ev)
		}
	}()

	target := time.Second / time.Duration(*fps)
	last := time.Now()
	for win.Alive() {
		if win.ResizePending() {
			fbWidth, fbHeight = win.FramebufferSize()
			fb = raster.New(fbWidth, fbHeight)
			s.Projection.SetAspect(float64(fbHeight) / float64(fbWidth))
		}

		fb.DrawLock()
		fb.Clear(bg)
		win.ApplyLatches(s)
		s.Draw(fb)
		fb.DrawUnlock()

		win.Draw(fb)

		elapsed := time.Since(last)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
		last = time.Now()
	}
	return win.Err()
}

// loadScene builds a Scene either from -scene (line-based or YAML, by
// extension) or from a single model argument centered in front of the
// camera with a default camera light.
func loadScene(fbWidth, fbHeight int) (*scene.Scene, error) {
	if *configPath != "" {
		ext := strings.ToLower(filepath.Ext(*configPath))
		if ext == ".yaml" || ext == ".yml" {
			return scene.LoadConfigYAML(*configPath, fbWidth, fbHeight)
		}
		return scene.LoadConfig(*configPath, fbWidth, fbHeight)
	}

	modelPath := flag.Arg(0)
	m, err := model.Load(modelPath)
	if err != nil {
		return nil, err
	}

	aspect := float64(fbHeight) / float64(fbWidth)
	s := scene.New(math.Pi/2, 0.5, 100, aspect)
	s.CamLight = true
	s.AddModel(m, math3d.V3(0, 0, 3), 1.0, color.RGB(200, 200, 200))
	return s, nil
}
