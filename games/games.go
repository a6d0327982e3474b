// Package games holds the toddler activities built on playtime rounds, their
// content tables, the title and calm screens, and the playlist that rotates
// between them.
//
// Spoken and on-screen strings go through gotext; English source strings are
// the message ids, so an untranslated build speaks English.
package games

import (
	"math/rand/v2"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

// Screen names registered by Register.
const (
	ScreenTitle = "title"
)

// SetLanguage loads translations from dir/<lang>/LC_MESSAGES/default.po (or
// .mo). Missing catalogs leave the English source strings in place.
func SetLanguage(dir, lang string) {
	gotext.Configure(dir, lang, "default")
}

// Lines returns the round's stock phrases in the current language.
func Lines() playtime.RoundLines {
	return playtime.RoundLines{
		Praise: []string{
			gotext.Get("Great job!"),
			gotext.Get("You did it!"),
			gotext.Get("Hooray!"),
			gotext.Get("Wonderful!"),
		},
		Together: gotext.Get("Let's do it together!"),
		AllDone:  gotext.Get("All done!"),
	}
}

// Tiered is implemented by activities whose content scales with difficulty.
type Tiered interface {
	SetTier(tier int)
	Tier() int
}

// tiered is embedded by every activity.
type tiered struct {
	tier int
}

// SetTier clamps and stores the difficulty tier.
func (t *tiered) SetTier(tier int) {
	t.tier = min(max(tier, TierEasy), TierHard)
}

// Tier returns the difficulty tier, TierEasy until set.
func (t *tiered) Tier() int {
	if t.tier == 0 {
		return TierEasy
	}
	return t.tier
}

// stage is embedded by every activity and tracks the round's resolution.
type stage struct {
	w, h float64
}

// SetStage records the logical resolution prompts are laid out in.
func (s *stage) SetStage(width, height float64) {
	s.w, s.h = width, height
}

// size returns the stage size, the stock 1280x800 until set.
func (s *stage) size() (float64, float64) {
	if s.w <= 0 || s.h <= 0 {
		d := playtime.DefaultConfig()
		return d.Width, d.Height
	}
	return s.w, s.h
}

// lay shuffles ts onto one row at fraction fy of the stage height.
func (s *stage) lay(rng *rand.Rand, ts []*playtime.Target, fy float64) {
	w, h := s.size()
	shuffleTargets(rng, ts, w, h*fy)
}

// row returns n x centers spread evenly across width.
func row(n int, width float64) []float64 {
	xs := make([]float64, n)
	step := width / float64(n+1)
	for i := range xs {
		xs[i] = step * float64(i+1)
	}
	return xs
}

// pick returns n distinct items chosen by rng, in random order.
func pick[T any](rng *rand.Rand, items []T, n int) []T {
	n = min(n, len(items))
	out := make([]T, 0, n)
	for _, i := range rng.Perm(len(items))[:n] {
		out = append(out, items[i])
	}
	return out
}

// shuffleTargets randomizes target order, then lays them out on one row at y.
func shuffleTargets(rng *rand.Rand, ts []*playtime.Target, width, y float64) {
	rng.Shuffle(len(ts), func(i, j int) { ts[i], ts[j] = ts[j], ts[i] })
	for i, x := range row(len(ts), width) {
		ts[i].X = x
		ts[i].Y = y
	}
}

// drawTargets paints every target with the default disc art.
func drawTargets(r *playtime.Round, s playtime.Surface, labelSize float64) {
	if !r.TargetsVisible() {
		return
	}
	for _, t := range r.Prompt().Targets {
		playtime.DrawTarget(s, t, labelSize)
	}
}
