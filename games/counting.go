package games

import (
	"fmt"
	"math/rand/v2"
	"strconv"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

var (
	ballColor  = playtime.RGB(0xff, 0x5a, 0x5f)
	decoyColor = playtime.RGB(0xb8, 0xc0, 0xcc)
)

// Counting asks for a number of balls. Every ball is correct and each tap
// counts aloud; grey pebbles are decoys.
type Counting struct {
	tiered
	stage
	// Prompts is the number of prompts per round.
	Prompts int
	// Decoys is the number of wrong targets per prompt.
	Decoys int
}

// NewCounting returns the counting activity with its default round length.
func NewCounting() *Counting {
	return &Counting{Prompts: 4, Decoys: 2}
}

func (c *Counting) Name() string     { return "counting" }
func (c *Counting) Title() string    { return gotext.Get("Let's count!") }
func (c *Counting) PromptCount() int { return c.Prompts }

// NewPrompt picks a count available at the current tier.
func (c *Counting) NewPrompt(_ int, rng *rand.Rand) playtime.Prompt {
	nums := upTo(Numbers, c.Tier(), func(n NumberInfo) int { return n.Tier })
	n := nums[rng.IntN(len(nums))].Value

	ts := make([]*playtime.Target, 0, n+c.Decoys)
	for i := 0; i < n; i++ {
		ts = append(ts, &playtime.Target{
			ID:      fmt.Sprintf("ball-%d", i),
			Radius:  52,
			Color:   ballColor,
			Correct: true,
		})
	}
	for i := 0; i < c.Decoys; i++ {
		ts = append(ts, &playtime.Target{
			ID:     fmt.Sprintf("pebble-%d", i),
			Radius: 40,
			Color:  decoyColor,
		})
	}
	c.lay(rng, ts, 0.5375)

	say := gotext.GetN("Tap %d ball!", "Tap all %d balls!", n, n)
	return playtime.Prompt{
		Concept: strconv.Itoa(n),
		Say:     say,
		Text:    say,
		Targets: ts,
		Needed:  n,
	}
}

// Picked numbers the ball and says the running count.
func (c *Counting) Picked(r *playtime.Round, t *playtime.Target, count int) {
	t.Label = strconv.Itoa(count)
	r.Say(t.Label)
}

// Draw paints the balls with their counted numbers.
func (c *Counting) Draw(r *playtime.Round, s playtime.Surface) {
	drawTargets(r, s, 48)
}
