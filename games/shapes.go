package games

import (
	"math"
	"math/rand/v2"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

var shapeColor = playtime.RGB(0x3a, 0x86, 0xff)

// Shape size names used by size prompts.
const (
	sizeBig   = "big"
	sizeSmall = "small"
)

// ShapeSize alternates shape recognition ("find the triangle") with size
// comparison ("find the big star").
type ShapeSize struct {
	tiered
	stage
	Prompts int
	kinds   map[*playtime.Target]string
}

// NewShapeSize returns the shape and size activity.
func NewShapeSize() *ShapeSize {
	return &ShapeSize{Prompts: 4, kinds: make(map[*playtime.Target]string)}
}

func (a *ShapeSize) Name() string     { return "shapes" }
func (a *ShapeSize) Title() string    { return gotext.Get("Shapes!") }
func (a *ShapeSize) PromptCount() int { return a.Prompts }

func (a *ShapeSize) NewPrompt(index int, rng *rand.Rand) playtime.Prompt {
	clear(a.kinds)
	pool := upTo(Shapes, a.Tier(), func(s ShapeInfo) int { return s.Tier })
	if index%2 == 1 {
		return a.sizePrompt(pool[rng.IntN(len(pool))], rng)
	}

	choices := pick(rng, pool, 3)
	want := choices[0]
	ts := make([]*playtime.Target, 0, len(choices))
	for i, sh := range choices {
		t := &playtime.Target{ID: sh.Name, Radius: 70, Color: shapeColor, Correct: i == 0}
		a.kinds[t] = sh.Name
		ts = append(ts, t)
	}
	a.lay(rng, ts, 0.525)
	for _, t := range ts {
		t.Hit = shapeHit(a.kinds[t], t.X, t.Y, t.Radius)
	}

	name := gotext.Get(want.Name)
	return playtime.Prompt{
		Concept: want.Name,
		Say:     gotext.Get("Find the %s!", name),
		Text:    gotext.Get("Find the %s!", name),
		Targets: ts,
	}
}

func (a *ShapeSize) sizePrompt(sh ShapeInfo, rng *rand.Rand) playtime.Prompt {
	want := sizeBig
	if rng.IntN(2) == 0 {
		want = sizeSmall
	}
	radii := []float64{40, 65, 95}
	ts := make([]*playtime.Target, 0, len(radii))
	for i, r := range radii {
		correct := (want == sizeSmall && i == 0) || (want == sizeBig && i == len(radii)-1)
		t := &playtime.Target{ID: sh.Name, Radius: r, Color: shapeColor, Correct: correct}
		a.kinds[t] = sh.Name
		ts = append(ts, t)
	}
	a.lay(rng, ts, 0.5375)
	for _, t := range ts {
		t.Hit = shapeHit(sh.Name, t.X, t.Y, t.Radius)
	}

	var say string
	if want == sizeBig {
		say = gotext.Get("Find the big %s!", gotext.Get(sh.Name))
	} else {
		say = gotext.Get("Find the small %s!", gotext.Get(sh.Name))
	}
	return playtime.Prompt{
		Concept: want + " " + sh.Name,
		Say:     say,
		Text:    say,
		Targets: ts,
	}
}

// Draw paints each target as its shape.
func (a *ShapeSize) Draw(r *playtime.Round, s playtime.Surface) {
	if !r.TargetsVisible() {
		return
	}
	for _, t := range r.Prompt().Targets {
		if t.Scale <= 0 {
			continue
		}
		x := t.X + t.Shake()
		rad := t.Radius * t.Scale
		c := t.Color
		if t.Picked {
			c = playtime.RGB(0x6a, 0xd1, 0x4b)
		}
		drawShape(s, a.kinds[t], x, t.Y, rad, c)
	}
}

func drawShape(s playtime.Surface, kind string, x, y, r float64, c playtime.Color) {
	switch kind {
	case "square":
		s.FillRect(x-r*0.85, y-r*0.85, r*1.7, r*1.7, c)
	case "triangle", "star", "diamond":
		s.FillPath(shapePoints(kind, x, y, r), c)
	default:
		s.FillCircle(x, y, r, c)
	}
}

// shapePoints returns the outline of a polygonal shape centered on (x, y).
func shapePoints(kind string, x, y, r float64) []playtime.Vec2 {
	switch kind {
	case "triangle":
		return regular(3, x, y+r*0.15, r*1.1, -math.Pi/2)
	case "diamond":
		return []playtime.Vec2{{X: x, Y: y - r}, {X: x + r*0.7, Y: y}, {X: x, Y: y + r}, {X: x - r*0.7, Y: y}}
	case "star":
		pts := make([]playtime.Vec2, 0, 10)
		for i := 0; i < 10; i++ {
			rad := r
			if i%2 == 1 {
				rad = r * 0.45
			}
			a := -math.Pi/2 + float64(i)*math.Pi/5
			pts = append(pts, playtime.Vec2{X: x + math.Cos(a)*rad, Y: y + math.Sin(a)*rad})
		}
		return pts
	}
	return nil
}

func regular(n int, x, y, r, start float64) []playtime.Vec2 {
	pts := make([]playtime.Vec2, n)
	for i := range pts {
		a := start + float64(i)*2*math.Pi/float64(n)
		pts[i] = playtime.Vec2{X: x + math.Cos(a)*r, Y: y + math.Sin(a)*r}
	}
	return pts
}

// shapeHit returns the hit area for a shape. Stars are not convex, so they
// use a circle through their inner corners widened a little.
func shapeHit(kind string, x, y, r float64) playtime.HitShape {
	switch kind {
	case "square":
		return playtime.HitRect{X: x - r*0.85, Y: y - r*0.85, Width: r * 1.7, Height: r * 1.7}
	case "triangle", "diamond":
		return playtime.HitPolygon{Points: shapePoints(kind, x, y, r)}
	case "star":
		return playtime.HitCircle{CenterX: x, CenterY: y, Radius: r * 0.75}
	default:
		return playtime.HitCircle{CenterX: x, CenterY: y, Radius: r}
	}
}
