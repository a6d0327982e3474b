package games

import (
	"fmt"
	"os"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

// Calm is the quiet reset shown between activities: a slowly breathing
// circle and drifting bubbles. It moves on after Duration, or on a tap once
// MinStay has passed.
type Calm struct {
	Duration float64
	MinStay  float64
	// Breath is the length of one inhale or exhale in seconds.
	Breath float64

	playlist  *Playlist
	ctx       *playtime.Context
	anim      *playtime.Animator
	particles *playtime.ParticlePool
	radius    float64
	elapsed   float64
	leaving   bool
}

// NewCalm returns a calm screen that advances p.
func NewCalm(p *Playlist) *Calm {
	return &Calm{
		Duration: 6,
		MinStay:  2,
		Breath:   1.6,
		playlist: p,
		anim:     playtime.NewAnimator(),
	}
}

func (c *Calm) Enter(ctx *playtime.Context) {
	c.ctx = ctx
	c.elapsed = 0
	c.leaving = false
	c.anim.Clear()
	c.particles = playtime.NewParticlePool(ctx.Config.ParticleCapacity/4, ctx.SpawnRate)
	c.radius = 80
	c.inhale()
	ctx.Overlays.ShowSubtitle(gotext.Get("Breathe in... and out."))
	ctx.Speak(gotext.Get("Let's take a big breath."))
}

// inhale and exhale chain into each other for as long as the screen is up.
func (c *Calm) inhale() {
	c.anim.Add(playtime.TweenConfig{
		From: 80, To: 140, Duration: c.Breath, Ease: playtime.EaseInOut,
		OnUpdate:   func(v float64) { c.radius = v },
		OnComplete: c.exhale,
	})
}

func (c *Calm) exhale() {
	c.anim.Add(playtime.TweenConfig{
		From: 140, To: 80, Duration: c.Breath, Ease: playtime.EaseInOut,
		OnUpdate:   func(v float64) { c.radius = v },
		OnComplete: c.inhale,
	})
}

func (c *Calm) Exit() {
	c.anim.Clear()
	c.particles.Clear()
}

func (c *Calm) Update(dt float64) {
	c.elapsed += dt
	c.anim.Update(dt)
	c.particles.Update(dt)
	w, h := c.ctx.Config.Width, c.ctx.Config.Height
	c.particles.MaybeSpawn(3, dt, func() {
		c.particles.Flame(w*0.5, h*0.95, 1, calmStars, w*0.4)
	})
	if c.elapsed >= c.Duration {
		c.leave()
	}
}

func (c *Calm) Render(s playtime.Surface) {
	w, h := s.Size()
	s.FillRect(0, 0, w, h, calmSky)
	s.FillCircle(w*0.5, h*0.45, c.radius+24, calmGlow.WithAlpha(0.25))
	s.FillCircle(w*0.5, h*0.45, c.radius, calmGlow)
	c.particles.Render(s)
}

func (c *Calm) HandleClick(_, _ float64) {
	if c.elapsed >= c.MinStay {
		c.leave()
	}
}

func (c *Calm) HandleKey(_ playtime.Key) {
	if c.elapsed >= c.MinStay {
		c.leave()
	}
}

// Elapsed returns the seconds since Enter.
func (c *Calm) Elapsed() float64 { return c.elapsed }

func (c *Calm) leave() {
	if c.leaving {
		return
	}
	c.leaving = true
	if err := c.playlist.Next(); err != nil {
		warnf("calm: %v", err)
	}
}

func warnf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[playtime] games: "+format+"\n", args...)
}
