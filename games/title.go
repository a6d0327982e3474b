package games

import (
	"math"

	"github.com/leonelquinteros/gotext"

	"github.com/phanxgames/playtime"
)

var (
	titleSky  = playtime.RGB(0xff, 0xf3, 0xd6)
	titleInk  = playtime.RGB(0x2b, 0x2d, 0x42)
	titleSun  = playtime.RGB(0xff, 0xc8, 0x3d)
	sparkles  = []playtime.Color{titleSun, playtime.RGB(0xff, 0x8f, 0xa3), playtime.RGB(0x7f, 0xd3, 0xff)}
	calmSky   = playtime.RGB(0x1f, 0x2a, 0x44)
	calmGlow  = playtime.RGB(0x9d, 0xb4, 0xff)
	calmStars = []playtime.Color{playtime.ColorWhite, calmGlow}
)

// Title is the opening screen. Any tap or key starts the playlist.
type Title struct {
	playlist *Playlist

	ctx       *playtime.Context
	anim      *playtime.Animator
	particles *playtime.ParticlePool
	scale     float64
	t         float64
	started   bool
}

// NewTitle returns a title screen that starts p.
func NewTitle(p *Playlist) *Title {
	return &Title{playlist: p, anim: playtime.NewAnimator()}
}

func (s *Title) Enter(ctx *playtime.Context) {
	s.ctx = ctx
	s.t = 0
	s.started = false
	s.anim.Clear()
	s.particles = playtime.NewParticlePool(ctx.Config.ParticleCapacity/2, ctx.SpawnRate)
	s.scale = 0
	s.anim.Field(&s.scale, 1, 0.8, playtime.EaseOutBack)
	ctx.Overlays.ShowBanner(gotext.Get("Playtime!"))
	ctx.PlaySound(playtime.SoundChime)
}

func (s *Title) Exit() {
	s.anim.Clear()
	s.particles.Clear()
}

func (s *Title) Update(dt float64) {
	s.t += dt
	s.anim.Update(dt)
	s.particles.Update(dt)
	w, h := s.ctx.Config.Width, s.ctx.Config.Height
	s.particles.MaybeSpawn(8, dt, func() {
		s.particles.Flame(w*0.5, h*0.62, 3, sparkles, 40)
	})
}

func (s *Title) Render(surf playtime.Surface) {
	w, h := surf.Size()
	surf.FillRect(0, 0, w, h, titleSky)
	r := 120 * s.scale
	surf.FillCircle(w*0.5, h*0.5, r+8*math.Sin(s.t*2), titleSun)
	s.particles.Render(surf)
	if s.scale > 0 {
		surf.DrawText(gotext.Get("Tap to play"), w*0.5, h*0.82, 44*s.scale, playtime.TextAlignCenter, titleInk)
	}
}

func (s *Title) HandleClick(_, _ float64) { s.start() }
func (s *Title) HandleKey(_ playtime.Key) { s.start() }

func (s *Title) start() {
	if s.started || s.scale < 0.5 {
		return
	}
	s.started = true
	s.ctx.PlaySound(playtime.SoundPop)
	if err := s.playlist.Start(); err != nil {
		warnf("title: %v", err)
	}
}
