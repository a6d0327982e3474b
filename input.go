package playtime

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HitShape defines a custom hit testing region in logical coordinates.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// HitPolygon is a convex polygon hit area.
// Points must define a convex polygon in either winding order.
type HitPolygon struct {
	Points []Vec2
}

// Contains reports whether (x, y) lies inside a convex polygon using cross-product sign test.
func (p HitPolygon) Contains(x, y float64) bool {
	n := len(p.Points)
	if n < 3 {
		return false
	}

	// Check that the point is on the same side of every edge.
	var positive, negative bool
	for i := 0; i < n; i++ {
		x1 := p.Points[i].X
		y1 := p.Points[i].Y
		j := (i + 1) % n
		x2 := p.Points[j].X
		y2 := p.Points[j].Y

		cross := (x2-x1)*(y-y1) - (y2-y1)*(x-x1)
		if cross > 0 {
			positive = true
		} else if cross < 0 {
			negative = true
		}
		if positive && negative {
			return false
		}
	}
	return true
}

// pollInput forwards this tick's new presses to the screen manager. A press
// is delivered as a click immediately; toddlers rarely release where they
// pressed.
func (g *Game) pollInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		g.manager.HandleClick(float64(x), float64(y))
	}

	g.touchBuf = inpututil.AppendJustPressedTouchIDs(g.touchBuf[:0])
	for _, id := range g.touchBuf {
		x, y := ebiten.TouchPosition(id)
		g.manager.HandleClick(float64(x), float64(y))
	}

	g.keyBuf = inpututil.AppendJustPressedKeys(g.keyBuf[:0])
	for _, k := range g.keyBuf {
		if g.KeyHook != nil && g.KeyHook(k) {
			continue
		}
		if key, ok := keyFromEbiten(k); ok {
			g.manager.HandleKey(key)
		}
	}
}

// keyFromEbiten maps an ebiten key to a Key. Letters become lower case,
// digit and numpad digit keys the bare digit. Modifier keys are dropped.
func keyFromEbiten(k ebiten.Key) (Key, bool) {
	switch {
	case k >= ebiten.KeyA && k <= ebiten.KeyZ:
		return Key(rune('a' + (k - ebiten.KeyA))), true
	case k >= ebiten.KeyDigit0 && k <= ebiten.KeyDigit9:
		return Key(rune('0' + (k - ebiten.KeyDigit0))), true
	case k >= ebiten.KeyNumpad0 && k <= ebiten.KeyNumpad9:
		return Key(rune('0' + (k - ebiten.KeyNumpad0))), true
	case k == ebiten.KeyNumpadEnter:
		return KeyEnter, true
	}
	switch k {
	case ebiten.KeyShift, ebiten.KeyShiftLeft, ebiten.KeyShiftRight,
		ebiten.KeyControl, ebiten.KeyControlLeft, ebiten.KeyControlRight,
		ebiten.KeyAlt, ebiten.KeyAltLeft, ebiten.KeyAltRight,
		ebiten.KeyMeta, ebiten.KeyMetaLeft, ebiten.KeyMetaRight:
		return "", false
	}
	name := k.String()
	if name == "" || strings.HasPrefix(name, "Key(") {
		return "", false
	}
	return Key(name), true
}
