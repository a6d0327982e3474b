package playtime

import "math"

var (
	palette = []Color{
		RGB(0xff, 0x5a, 0x5f), RGB(0xff, 0xb4, 0x00), RGB(0x2e, 0xc4, 0xb6),
		RGB(0x3a, 0x86, 0xff), RGB(0x8a, 0x5c, 0xf6), RGB(0x6a, 0xd1, 0x4b),
	}
	flamePalette = []Color{
		RGB(0xff, 0xd1, 0x66), RGB(0xff, 0x9f, 0x1c), RGB(0xff, 0x6b, 0x35),
	}

	skyTop    = RGB(0xbd, 0xe0, 0xfe)
	skyBottom = RGB(0xe7, 0xf6, 0xff)
	grass     = RGB(0x9b, 0xe5, 0x64)
	glowColor = RGB(0xff, 0xe0, 0x4d)
	inkColor  = RGB(0x2b, 0x2d, 0x42)
	bodyColor = RGB(0xff, 0xa6, 0x9e)
)

func bob(t float64) float64 {
	return math.Sin(t*2.2) * 6
}

// lanternPos is where the mascot's lantern flame sits.
func (r *Round) lanternPos() (float64, float64) {
	m := r.mascot
	return m.X + 58*m.Scale, m.Y - 70*m.Scale + m.Bob
}

// Render draws the background, the activity, the mascot and particles, then
// the overlays for the current phase.
func (r *Round) Render(s Surface) {
	if r.ctx == nil {
		return
	}
	w, h := s.Size()
	s.FillRect(0, 0, w, h*0.5, skyTop)
	s.FillRect(0, h*0.5, w, h*0.3, skyBottom)
	s.FillRect(0, h*0.8, w, h*0.2, grass)

	r.activity.Draw(r, s)
	r.drawMascot(s)
	r.particles.Render(s)

	switch r.phases.Current() {
	case PhasePlay:
		r.drawHints(s)
	case PhaseCelebrate:
		if r.praise != "" && r.cheer > 0 {
			s.DrawText(r.praise, w/2, h*0.42, 96*r.cheer, TextAlignCenter, inkColor)
		}
	case PhaseComplete:
		drawStar(s, w/2, h*0.55, 90+10*math.Sin(r.total*4), glowColor)
	}
}

// TargetsVisible reports whether the current phase shows prompt targets.
func (r *Round) TargetsVisible() bool {
	switch r.phases.Current() {
	case PhasePrompt, PhasePlay, PhaseCelebrate:
		return true
	}
	return false
}

// DrawTarget paints t as a disc with its label, applying pop-in scale and miss
// wobble. Activities with their own art call it for the hit area outline or
// skip it entirely.
func DrawTarget(s Surface, t *Target, fontSize float64) {
	if t.Scale <= 0 {
		return
	}
	x := t.X + t.Shake()
	rad := t.Radius * t.Scale
	s.FillCircle(x, t.Y+4, rad, ColorBlack.WithAlpha(0.12))
	s.FillCircle(x, t.Y, rad, t.Color)
	if t.Picked {
		s.StrokeCircle(x, t.Y, rad+4, 6, ColorWhite)
	}
	if t.Label != "" && fontSize > 0 {
		s.DrawText(t.Label, x, t.Y+fontSize*0.35, fontSize*t.Scale, TextAlignCenter, ColorWhite)
	}
}

func (r *Round) drawHints(s Surface) {
	if r.glow {
		pulse := 0.5 + 0.5*math.Sin(r.pulse*6)
		for _, t := range r.prompt.Targets {
			if !t.Correct || t.Picked {
				continue
			}
			s.StrokeCircle(t.X, t.Y, t.Radius+10+pulse*8, 6, glowColor.WithAlpha(0.5+0.5*pulse))
		}
	}
	if r.pointer {
		if t := r.prompt.NextCorrect(); t != nil {
			drawPointer(s, r.mascot.X+40, r.mascot.Y-120+r.mascot.Bob, t.X, t.Y, t.Radius, r.pulse)
		}
	}
}

// drawPointer draws an arrow from (x0, y0) that stops short of the target
// circle, nudging toward it over time.
func drawPointer(s Surface, x0, y0, x1, y1, radius, t float64) {
	dx, dy := x1-x0, y1-y0
	d := math.Hypot(dx, dy)
	if d < radius+20 {
		return
	}
	ux, uy := dx/d, dy/d
	nudge := 10 * math.Sin(t*5)
	ex := x1 - ux*(radius+18+nudge)
	ey := y1 - uy*(radius+18+nudge)
	s.StrokeLine(x0, y0, ex, ey, 10, glowColor)
	px, py := -uy, ux
	head := []Vec2{
		{ex + ux*24, ey + uy*24},
		{ex + px*16, ey + py*16},
		{ex - px*16, ey - py*16},
	}
	s.FillPath(head, glowColor)
}

func (r *Round) drawMascot(s Surface) {
	m := r.mascot
	if m.Scale <= 0 {
		return
	}
	k := m.Scale
	x, y := m.X, m.Y+m.Bob
	s.FillCircle(x, y, 60*k, bodyColor)
	s.FillCircle(x-20*k, y-12*k, 7*k, inkColor)
	s.FillCircle(x+20*k, y-12*k, 7*k, inkColor)

	switch m.Pose {
	case PoseCheer:
		s.FillCircle(x, y+14*k, 16*k, inkColor)
		s.StrokeLine(x-50*k, y-10*k, x-80*k, y-70*k, 10*k, bodyColor)
		s.StrokeLine(x+50*k, y-10*k, x+80*k, y-70*k, 10*k, bodyColor)
	case PoseWave:
		s.StrokeLine(x-22*k, y+16*k, x+22*k, y+16*k, 5*k, inkColor)
		s.StrokeLine(x+50*k, y-10*k, x+85*k, y-60*k+math.Sin(r.total*12)*10*k, 10*k, bodyColor)
	case PoseThink:
		s.StrokeLine(x-12*k, y+18*k, x+12*k, y+18*k, 5*k, inkColor)
		s.FillCircle(x+70*k, y-70*k, 8*k, ColorWhite)
		s.FillCircle(x+88*k, y-92*k, 12*k, ColorWhite)
	default:
		s.StrokeLine(x-22*k, y+16*k, x+22*k, y+16*k, 5*k, inkColor)
	}

	lx, ly := r.lanternPos()
	s.StrokeLine(x+40*k, y-20*k, lx, ly+18*k, 4*k, inkColor)
	s.FillRect(lx-10*k, ly, 20*k, 22*k, inkColor)
}

func drawStar(s Surface, cx, cy, r float64, c Color) {
	pts := make([]Vec2, 0, 10)
	for i := 0; i < 10; i++ {
		rad := r
		if i%2 == 1 {
			rad = r * 0.45
		}
		a := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, Vec2{cx + math.Cos(a)*rad, cy + math.Sin(a)*rad})
	}
	s.FillPath(pts, c)
}
