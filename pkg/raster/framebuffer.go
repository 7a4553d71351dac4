// Package raster implements the frame/depth buffer and the line, wire, and
// filled triangle rasterizers of §4.8-§4.10, plus the draw-lock discipline
// of §5.
package raster

import (
	"log/slog"
	"sync"

	"github.com/taigrr/rasty/pkg/color"
)

// PixelResult is the set_pixel/get_pixel result taxonomy of §4.10 and §7.
type PixelResult int

const (
	Success PixelResult = iota
	Bounds
	Depth
	LockMisuse
)

// Framebuffer holds the color and depth buffers plus the single mutex that
// guards all four fields (width, height, pixels, depth), per §5. drawLocked
// tracks recursive/double-lock intent from the render side: a second
// draw_lock while already locked is a no-op warning, not a deadlock.
type Framebuffer struct {
	mu sync.Mutex

	width, height int
	pixels        []color.Color
	depth         []float64

	drawLocked    bool
	ResizePending bool
}

// New allocates a framebuffer of the given dimensions, clearing the depth
// buffer to 1.0 per §4.10 ("the buffer is cleared to 1.0 so smaller z
// passes").
func New(width, height int) *Framebuffer {
	fb := &Framebuffer{width: width, height: height}
	fb.pixels = make([]color.Color, width*height)
	fb.depth = make([]float64, width*height)
	fb.clearDepthLocked()
	return fb
}

// Width and Height return the buffer dimensions. Safe to call while
// unlocked; the dimensions only change under DrawLock via Resize.
func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// DrawLock acquires the buffer mutex for the duration of a frame's draw
// call. A second DrawLock call while already held logs a warning and
// returns without blocking — the §5 LockMisuse contract. mu.Lock is
// non-reentrant, so the already-locked case must be detected with TryLock
// rather than blocking on Lock and checking drawLocked afterward.
func (fb *Framebuffer) DrawLock() {
	if !fb.mu.TryLock() {
		slog.Warn("raster: draw_lock called while already locked")
		return
	}
	fb.drawLocked = true
}

// DrawUnlock clears the lock flag and releases the mutex. Calling it while
// not locked logs a warning and leaves state unchanged.
func (fb *Framebuffer) DrawUnlock() {
	if !fb.drawLocked {
		slog.Warn("raster: draw_unlock called while not locked")
		return
	}
	fb.drawLocked = false
	fb.mu.Unlock()
}

// DrawLocked reports whether the draw lock is currently held.
func (fb *Framebuffer) DrawLocked() bool { return fb.drawLocked }

// Resize reallocates both buffers, refills the depth buffer to 1.0, and
// clears ResizePending. Callers must hold the draw lock.
func (fb *Framebuffer) Resize(width, height int) {
	fb.width, fb.height = width, height
	fb.pixels = make([]color.Color, width*height)
	fb.depth = make([]float64, width*height)
	fb.clearDepthLocked()
	fb.ResizePending = false
}

// Clear resets the color buffer to c and the depth buffer to 1.0. Callers
// must hold the draw lock (window_clear in §5's loop order).
func (fb *Framebuffer) Clear(c color.Color) {
	for i := range fb.pixels {
		fb.pixels[i] = c
	}
	fb.clearDepthLocked()
}

func (fb *Framebuffer) clearDepthLocked() {
	for i := range fb.depth {
		fb.depth[i] = 1.0
	}
}

// SetPixel implements the §4.10 contract. Out-of-bounds returns Bounds;
// depth outside [0,1] or not strictly nearer than the buffered depth
// returns Depth; otherwise both buffers are written and Success is
// returned. Ties are rejected (the pixel keeps its first writer) so that a
// triangle edge shared by two draws never flickers between them — see the
// §8 z-test property. Callers must hold the draw lock.
func (fb *Framebuffer) SetPixel(x, y int, c color.Color, depth float64) PixelResult {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return Bounds
	}
	idx := y*fb.width + x
	if depth < 0 || depth > 1 || depth >= fb.depth[idx] {
		return Depth
	}
	fb.pixels[idx] = c
	fb.depth[idx] = depth
	return Success
}

// GetPixel reads the color and depth at (x, y). Callers must hold the draw
// lock.
func (fb *Framebuffer) GetPixel(x, y int) (color.Color, float64, PixelResult) {
	if x < 0 || y < 0 || x >= fb.width || y >= fb.height {
		return color.Color{}, 0, Bounds
	}
	idx := y*fb.width + x
	return fb.pixels[idx], fb.depth[idx], Success
}
