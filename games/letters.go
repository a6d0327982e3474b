package games

import (
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

var tileColor = playtime.RGB(0x8a, 0x5c, 0xf6)

// LetterHunt asks for a letter tile. The answer can be tapped or typed.
type LetterHunt struct {
	tiered
	stage
	Prompts int
}

// NewLetterHunt returns the letter activity.
func NewLetterHunt() *LetterHunt {
	return &LetterHunt{Prompts: 4}
}

func (l *LetterHunt) Name() string     { return "letters" }
func (l *LetterHunt) Title() string    { return gotext.Get("Letters!") }
func (l *LetterHunt) PromptCount() int { return l.Prompts }

func (l *LetterHunt) NewPrompt(_ int, rng *rand.Rand) playtime.Prompt {
	pool := upTo(Letters, l.Tier(), func(li LetterInfo) int { return li.Tier })
	choices := pick(rng, pool, 3)
	want := choices[0]

	ts := make([]*playtime.Target, 0, len(choices))
	for i, li := range choices {
		ts = append(ts, &playtime.Target{
			ID:      li.Letter,
			Label:   strings.ToUpper(li.Letter),
			Radius:  70,
			Color:   tileColor,
			Correct: i == 0,
		})
	}
	l.lay(rng, ts, 0.525)
	for _, t := range ts {
		t.Hit = playtime.HitRect{X: t.X - 75, Y: t.Y - 75, Width: 150, Height: 150}
	}

	up := strings.ToUpper(want.Letter)
	return playtime.Prompt{
		Concept: want.Letter,
		Say:     gotext.Get("Find the letter %s, %s for %s!", up, up, gotext.Get(want.Word)),
		Text:    gotext.Get("Find the letter %s", up),
		Targets: ts,
		Key:     playtime.Key(want.Letter),
	}
}

// JudgeKey accepts the prompt's letter. Other letters are misses; digits and
// named keys are ignored so a toddler mashing the space bar is not punished.
func (l *LetterHunt) JudgeKey(p *playtime.Prompt, k playtime.Key) playtime.Verdict {
	if len(k) != 1 || !unicode.IsLetter(rune(k[0])) {
		return playtime.VerdictIgnore
	}
	if k == p.Key {
		return playtime.VerdictCorrect
	}
	return playtime.VerdictMiss
}

// Draw paints square letter tiles.
func (l *LetterHunt) Draw(r *playtime.Round, s playtime.Surface) {
	if !r.TargetsVisible() {
		return
	}
	for _, t := range r.Prompt().Targets {
		if t.Scale <= 0 {
			continue
		}
		x := t.X + t.Shake()
		half := 75 * t.Scale
		s.FillRect(x-half, t.Y-half+6, half*2, half*2, playtime.ColorBlack.WithAlpha(0.15))
		s.FillRect(x-half, t.Y-half, half*2, half*2, t.Color)
		if t.Picked {
			s.StrokeCircle(x, t.Y, half*1.3, 6, playtime.ColorWhite)
		}
		s.DrawText(t.Label, x, t.Y+36*t.Scale, 100*t.Scale, playtime.TextAlignCenter, playtime.ColorWhite)
	}
}
