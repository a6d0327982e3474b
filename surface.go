package playtime

import (
	"image"
	"strings"
)

// Surface is the immediate-mode drawing target the engine renders into. All
// coordinates are in the fixed logical resolution.
type Surface interface {
	// Size returns the logical width and height.
	Size() (w, h float64)
	// Clear erases the whole surface.
	Clear()
	FillRect(x, y, w, h float64, c Color)
	FillCircle(cx, cy, r float64, c Color)
	StrokeCircle(cx, cy, r, width float64, c Color)
	StrokeLine(x0, y0, x1, y1, width float64, c Color)
	// FillPath fills the polygon through points. Points must describe a shape
	// that is star-shaped around its first vertex.
	FillPath(points []Vec2, c Color)
	// DrawText draws s with its baseline box anchored at (x, y) per align.
	DrawText(s string, x, y, size float64, align TextAlign, c Color)
	// DrawImage blits img scaled into the w×h box at (x, y).
	DrawImage(img image.Image, x, y, w, h, alpha float64)
}

// DrawOp is one call captured by a Recorder.
type DrawOp struct {
	Kind          string // "rect", "circle", "ring", "line", "path", "text", "image"
	X, Y, W, H, R float64
	Text          string
	Color         Color
}

// Recorder is a Surface that records draw calls instead of rasterizing them.
// Clear starts a new frame. Used for headless runs and tests.
type Recorder struct {
	Width, Height float64
	ops           []DrawOp
	clears        int
}

// NewRecorder returns a Recorder with the given logical size.
func NewRecorder(w, h float64) *Recorder {
	return &Recorder{Width: w, Height: h}
}

func (r *Recorder) Size() (float64, float64) { return r.Width, r.Height }

func (r *Recorder) Clear() {
	r.ops = r.ops[:0]
	r.clears++
}

func (r *Recorder) FillRect(x, y, w, h float64, c Color) {
	r.ops = append(r.ops, DrawOp{Kind: "rect", X: x, Y: y, W: w, H: h, Color: c})
}

func (r *Recorder) FillCircle(cx, cy, rad float64, c Color) {
	r.ops = append(r.ops, DrawOp{Kind: "circle", X: cx, Y: cy, R: rad, Color: c})
}

func (r *Recorder) StrokeCircle(cx, cy, rad, width float64, c Color) {
	r.ops = append(r.ops, DrawOp{Kind: "ring", X: cx, Y: cy, R: rad, W: width, Color: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c Color) {
	r.ops = append(r.ops, DrawOp{Kind: "line", X: x0, Y: y0, W: x1 - x0, H: y1 - y0, R: width, Color: c})
}

func (r *Recorder) FillPath(points []Vec2, c Color) {
	op := DrawOp{Kind: "path", Color: c}
	if len(points) > 0 {
		op.X, op.Y = points[0].X, points[0].Y
	}
	r.ops = append(r.ops, op)
}

func (r *Recorder) DrawText(s string, x, y, size float64, _ TextAlign, c Color) {
	r.ops = append(r.ops, DrawOp{Kind: "text", X: x, Y: y, H: size, Text: s, Color: c})
}

func (r *Recorder) DrawImage(_ image.Image, x, y, w, h, alpha float64) {
	r.ops = append(r.ops, DrawOp{Kind: "image", X: x, Y: y, W: w, H: h, Color: Color{1, 1, 1, alpha}})
}

// Ops returns the calls recorded since the last Clear. The slice MUST NOT be
// mutated.
func (r *Recorder) Ops() []DrawOp { return r.ops }

// Clears returns how many frames have been started.
func (r *Recorder) Clears() int { return r.clears }

// Count returns how many recorded calls have the given kind.
func (r *Recorder) Count(kind string) int {
	n := 0
	for i := range r.ops {
		if r.ops[i].Kind == kind {
			n++
		}
	}
	return n
}

// HasText reports whether any recorded text call contains sub.
func (r *Recorder) HasText(sub string) bool {
	for i := range r.ops {
		if r.ops[i].Kind == "text" && strings.Contains(r.ops[i].Text, sub) {
			return true
		}
	}
	return false
}
