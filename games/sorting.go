package games

import (
	"math/rand/v2"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

// PhaseDropping is the sorting game's extra phase: the ball travels into the
// chosen bucket before the next prompt.
const PhaseDropping playtime.Phase = "dropping"

// Sorting shows a colored ball and asks which bucket it belongs in.
type Sorting struct {
	tiered
	stage
	Prompts int
	// DropTime is the length of the dropping phase in seconds.
	DropTime float64

	ball     playtime.Color
	ballX    float64
	ballY    float64
	ballSize float64
}

// NewSorting returns the sorting activity.
func NewSorting() *Sorting {
	return &Sorting{Prompts: 4, DropTime: 0.9}
}

func (a *Sorting) Name() string     { return "sorting" }
func (a *Sorting) Title() string    { return gotext.Get("Sort the balls!") }
func (a *Sorting) PromptCount() int { return a.Prompts }

func (a *Sorting) NewPrompt(_ int, rng *rand.Rand) playtime.Prompt {
	pool := upTo(Colors, a.Tier(), func(ci ColorInfo) int { return ci.Tier })
	choices := pick(rng, pool, 2+min(a.Tier(), 2))
	want := choices[0]

	ts := make([]*playtime.Target, 0, len(choices))
	for i, ci := range choices {
		ts = append(ts, &playtime.Target{ID: ci.Name, Radius: 80, Color: ci.Color, Correct: i == 0})
	}
	a.lay(rng, ts, 0.7)
	for _, t := range ts {
		t.Hit = playtime.HitRect{X: t.X - 90, Y: t.Y - 80, Width: 180, Height: 170}
	}

	a.ball = want.Color
	w, h := a.size()
	a.ballX, a.ballY = w*0.5, h*0.275
	a.ballSize = 1

	name := gotext.Get(want.Name)
	return playtime.Prompt{
		Concept: want.Name,
		Say:     gotext.Get("Where does the %s ball go?", name),
		Text:    gotext.Get("Put the %s ball in its bucket", name),
		Targets: ts,
	}
}

// Interlude adds the dropping phase between celebrate and next.
func (a *Sorting) Interlude() (playtime.Phase, float64) {
	return PhaseDropping, a.DropTime
}

// EnterInterlude sends the ball into the correct bucket.
func (a *Sorting) EnterInterlude(r *playtime.Round) {
	var dst *playtime.Target
	for _, t := range r.Prompt().Targets {
		if t.Correct {
			dst = t
			break
		}
	}
	if dst == nil {
		return
	}
	d := a.DropTime * 0.8
	anim := r.Animator()
	anim.Field(&a.ballX, dst.X, d, playtime.EaseInOut)
	anim.Field(&a.ballY, dst.Y-20, d, playtime.EaseIn)
	anim.Add(playtime.TweenConfig{
		From:       1,
		To:         0.4,
		Duration:   d,
		Ease:       playtime.EaseIn,
		OnUpdate:   func(v float64) { a.ballSize = v },
		OnComplete: func() { r.Burst(dst.X, dst.Y-40, dst.Color) },
	})
	r.Sound(playtime.SoundPop)
}

// Draw paints buckets and the ball.
func (a *Sorting) Draw(r *playtime.Round, s playtime.Surface) {
	phase := r.Phase()
	if !r.TargetsVisible() && phase != PhaseDropping {
		return
	}
	for _, t := range r.Prompt().Targets {
		drawBucket(s, t)
	}
	if a.ballSize > 0 {
		s.FillCircle(a.ballX, a.ballY, 45*a.ballSize, a.ball)
		s.FillCircle(a.ballX-14*a.ballSize, a.ballY-14*a.ballSize, 10*a.ballSize, playtime.ColorWhite.WithAlpha(0.6))
	}
}

func drawBucket(s playtime.Surface, t *playtime.Target) {
	if t.Scale <= 0 {
		return
	}
	k := t.Scale
	x := t.X + t.Shake()
	s.FillPath([]playtime.Vec2{
		{X: x - 90*k, Y: t.Y - 70*k},
		{X: x + 90*k, Y: t.Y - 70*k},
		{X: x + 65*k, Y: t.Y + 85*k},
		{X: x - 65*k, Y: t.Y + 85*k},
	}, t.Color)
	s.StrokeLine(x-92*k, t.Y-70*k, x+92*k, t.Y-70*k, 10*k, playtime.ColorBlack.WithAlpha(0.25))
	if t.Picked {
		s.StrokeCircle(x, t.Y, 120*k, 6, playtime.ColorWhite)
	}
}
