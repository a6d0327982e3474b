package games

import (
	"math/rand/v2"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

// ColorMatch asks the player to find one crayon among several.
type ColorMatch struct {
	tiered
	stage
	Prompts int
}

// NewColorMatch returns the color activity.
func NewColorMatch() *ColorMatch {
	return &ColorMatch{Prompts: 4}
}

func (c *ColorMatch) Name() string     { return "colors" }
func (c *ColorMatch) Title() string    { return gotext.Get("Colors!") }
func (c *ColorMatch) PromptCount() int { return c.Prompts }

func (c *ColorMatch) NewPrompt(_ int, rng *rand.Rand) playtime.Prompt {
	pool := upTo(Colors, c.Tier(), func(ci ColorInfo) int { return ci.Tier })
	choices := pick(rng, pool, 2+c.Tier())
	want := choices[0]

	ts := make([]*playtime.Target, 0, len(choices))
	for i, ci := range choices {
		ts = append(ts, &playtime.Target{
			ID:      ci.Name,
			Radius:  60,
			Color:   ci.Color,
			Correct: i == 0,
		})
	}
	c.lay(rng, ts, 0.525)
	for _, t := range ts {
		t.Hit = playtime.HitRect{X: t.X - 40, Y: t.Y - 110, Width: 80, Height: 220}
	}

	name := gotext.Get(want.Name)
	return playtime.Prompt{
		Concept: want.Name,
		Say:     gotext.Get("Find %s!", name),
		Text:    gotext.Get("Find %s!", name),
		Targets: ts,
	}
}

// Draw paints each target as an upright crayon.
func (c *ColorMatch) Draw(r *playtime.Round, s playtime.Surface) {
	if !r.TargetsVisible() {
		return
	}
	for _, t := range r.Prompt().Targets {
		drawCrayon(s, t)
	}
}

func drawCrayon(s playtime.Surface, t *playtime.Target) {
	if t.Scale <= 0 {
		return
	}
	k := t.Scale
	x := t.X + t.Shake()
	w, h := 80*k, 180*k
	top := t.Y - h/2 + 20*k
	s.FillRect(x-w/2, top, w, h, t.Color)
	s.FillRect(x-w/2, top+h*0.25, w, 14*k, playtime.ColorBlack.WithAlpha(0.2))
	s.FillPath([]playtime.Vec2{
		{X: x, Y: top - 50*k},
		{X: x + w/2, Y: top},
		{X: x - w/2, Y: top},
	}, t.Color)
	if t.Picked {
		s.StrokeCircle(x, t.Y, 120*k, 6, playtime.ColorWhite)
	}
}
