// Package term adapts the scene/raster pipeline to an interactive terminal
// window: it implements the Framebuffer/Window host interface with
// charmbracelet/ultraviolet half-block cells, and smooths mouse-wheel zoom
// with a harmonica spring.
package term

import (
	"context"
	"fmt"
	imagecolor "image/color"
	"log/slog"
	"sync"

	"github.com/charmbracelet/harmonica"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/rasty/pkg/color"
	"github.com/taigrr/rasty/pkg/raster"
	"github.com/taigrr/rasty/pkg/scene"
)

var log = slog.Default()

// Latches mirrors the scene's twelve camera input ops as one boolean per op,
// set by the event-polling goroutine and read-and-cleared once per frame by
// the render loop, both under Window.mu. Per §5, losing a keypress to this
// race is an accepted tolerance, not a bug to engineer away.
type Latches struct {
	ZoomIn, ZoomOut      bool
	Left, RightMove      bool
	Raise, Lower         bool
	RotLeft, RotRight    bool
	RotUp, RotDown       bool
	RollLeft, RollRight  bool
}

func (l *Latches) ops() []string {
	var ops []string
	add := func(set bool, op string) {
		if set {
			ops = append(ops, op)
		}
	}
	add(l.ZoomIn, "zoom_in")
	add(l.ZoomOut, "zoom_out")
	add(l.Left, "left")
	add(l.RightMove, "right")
	add(l.Raise, "raise")
	add(l.Lower, "lower")
	add(l.RotLeft, "rot_left")
	add(l.RotRight, "rot_right")
	add(l.RotUp, "rot_up")
	add(l.RotDown, "rot_down")
	add(l.RollLeft, "roll_left")
	add(l.RollRight, "roll_right")
	return ops
}

func (l *Latches) clear() { *l = Latches{} }

// Window owns every piece of mutable state the original kept as process
// globals (alive, exit_error, resize_pending) per §9's "global mutable
// window state → owned struct" redesign: one value, passed explicitly to
// the render loop rather than read from package scope.
type Window struct {
	mu sync.Mutex

	term *uv.Terminal

	cols, rows int // terminal cells; framebuffer is 2x rows tall (half-block)

	latches       Latches
	alive         bool
	resizePending bool
	exitErr       error

	zoomSpring harmonica.Spring
	zoomVel    float64
	zoomAccel  float64
}

// Open starts the terminal in alt-screen/raw mode and sizes a Window to the
// current terminal dimensions, fps driving the zoom-smoothing spring.
func Open(fps int) (*Window, error) {
	t := uv.DefaultTerminal()
	cols, rows, err := t.GetSize()
	if err != nil {
		return nil, fmt.Errorf("term: get size: %w", err)
	}
	if err := t.Start(); err != nil {
		return nil, fmt.Errorf("term: start: %w", err)
	}
	t.EnterAltScreen()
	t.HideCursor()
	t.Resize(cols, rows)

	w := &Window{
		term:       t,
		cols:       cols,
		rows:       rows,
		alive:      true,
		zoomSpring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
	return w, nil
}

// Events exposes the terminal's raw event stream (key, mouse, resize);
// callers forward each event to HandleEvent.
func (w *Window) Events() <-chan uv.Event {
	return w.term.Events()
}

// FramebufferSize returns the pixel-grid dimensions a Framebuffer backing
// this Window should use: one column per terminal column, two rows per
// terminal row (the half-block ▀ technique renders two framebuffer pixels
// per terminal cell).
func (w *Window) FramebufferSize() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cols, w.rows * 2
}

// Alive reports whether the render loop should keep running.
func (w *Window) Alive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.alive
}

// Quit marks the window for shutdown, optionally recording the error that
// caused it (nil for a clean user-requested exit).
func (w *Window) Quit(err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.alive = false
	w.exitErr = err
}

// Err returns the error that ended the render loop, if any.
func (w *Window) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.exitErr
}

// ResizePending reports, and clears, whether a terminal resize arrived
// since the last check.
func (w *Window) ResizePending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	pending := w.resizePending
	w.resizePending = false
	return pending
}

// Latch records one key input. Safe to call from the event-polling
// goroutine concurrently with the render loop's ConsumeLatches.
func (w *Window) Latch(op string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	switch op {
	case "zoom_in":
		w.latches.ZoomIn = true
	case "zoom_out":
		w.latches.ZoomOut = true
	case "left":
		w.latches.Left = true
	case "right":
		w.latches.RightMove = true
	case "raise":
		w.latches.Raise = true
	case "lower":
		w.latches.Lower = true
	case "rot_left":
		w.latches.RotLeft = true
	case "rot_right":
		w.latches.RotRight = true
	case "rot_up":
		w.latches.RotUp = true
	case "rot_down":
		w.latches.RotDown = true
	case "roll_left":
		w.latches.RollLeft = true
	case "roll_right":
		w.latches.RollRight = true
	default:
		log.Warn("term: ignoring unknown input latch", "op", op)
	}
}

// ConsumeLatches returns every op latched since the last call and clears
// them, per §5's "read-and-cleared once per frame" contract.
func (w *Window) ConsumeLatches() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	ops := w.latches.ops()
	w.latches.clear()
	return ops
}

// ApplyZoomImpulse feeds one mouse-wheel tick into the zoom-smoothing
// spring; call ZoomVelocity once per frame afterward to read the decayed
// result.
func (w *Window) ApplyZoomImpulse(delta float64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.zoomVel += delta
}

// ZoomVelocity advances the spring by one frame and returns the current
// smoothed zoom velocity.
func (w *Window) ZoomVelocity() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.zoomVel, w.zoomAccel = w.zoomSpring.Update(w.zoomVel, w.zoomAccel, 0)
	return w.zoomVel
}

// HandleEvent applies one ultraviolet event to the window's owned state:
// resize tracking, or a key/mouse-wheel latch. Unrecognized events are
// ignored.
func (w *Window) HandleEvent(ev uv.Event) {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		w.mu.Lock()
		w.cols, w.rows = ev.Width, ev.Height
		w.resizePending = true
		w.mu.Unlock()
	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape"), ev.MatchString("ctrl+c"):
			w.Quit(nil)
		case ev.MatchString("a"), ev.MatchString("left"):
			w.Latch("left")
		case ev.MatchString("d"), ev.MatchString("right"):
			w.Latch("right")
		case ev.MatchString("w"), ev.MatchString("up"):
			w.Latch("rot_up")
		case ev.MatchString("s"), ev.MatchString("down"):
			w.Latch("rot_down")
		case ev.MatchString("q"):
			w.Latch("roll_left")
		case ev.MatchString("e"):
			w.Latch("roll_right")
		case ev.MatchString("j"):
			w.Latch("rot_left")
		case ev.MatchString("k"):
			w.Latch("rot_right")
		case ev.MatchString("r"):
			w.Latch("raise")
		case ev.MatchString("f"):
			w.Latch("lower")
		case ev.MatchString("+", "="):
			w.Latch("zoom_in")
		case ev.MatchString("-", "_"):
			w.Latch("zoom_out")
		}
	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			w.ApplyZoomImpulse(-0.5)
		case uv.MouseWheelDown:
			w.ApplyZoomImpulse(0.5)
		}
	}
}

// ApplyLatches runs every latched op against s's camera once, clearing the
// latches as it goes; the zoom spring's residual velocity (if any) is
// applied as extra zoom steps on top of any latched zoom_in/zoom_out.
func (w *Window) ApplyLatches(s *scene.Scene) {
	for _, op := range w.ConsumeLatches() {
		s.ProcessInput(op)
	}
	if v := w.ZoomVelocity(); v > 0.01 {
		s.ProcessInput("zoom_out")
	} else if v < -0.01 {
		s.ProcessInput("zoom_in")
	}
}

// Draw blits fb to the terminal using the upper-half-block (▀) technique:
// each terminal cell covers two framebuffer rows, foreground the top pixel
// and background the bottom one.
func (w *Window) Draw(fb *raster.Framebuffer) {
	w.mu.Lock()
	cols, rows := w.cols, w.rows
	w.mu.Unlock()

	for row := 0; row < rows; row++ {
		topY := row * 2
		botY := topY + 1
		for col := 0; col < cols && col < fb.Width(); col++ {
			top, _, _ := fb.GetPixel(col, topY)
			bot, _, _ := fb.GetPixel(col, botY)
			cell := &uv.Cell{
				Content: "▀",
				Width:   1,
				Style: uv.Style{
					Fg: toImageColor(top),
					Bg: toImageColor(bot),
				},
			}
			w.term.SetCell(col, row, cell)
		}
	}
	w.term.Display()
}

// toImageColor: a fully transparent pixel becomes a nil color.Color so the
// cell shows through rather than painting black.
func toImageColor(c color.Color) imagecolor.Color {
	if c.A == 0 {
		return nil
	}
	return imagecolor.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Close leaves alt-screen/raw mode and restores the terminal.
func (w *Window) Close() {
	w.term.ExitAltScreen()
	w.term.ShowCursor()
	w.term.Shutdown(context.Background())
}
