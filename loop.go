package playtime

import (
	"fmt"
	"strings"
	"time"
)

// Spawn rate tiers set by the Governor.
const (
	RateFull    = 1.0
	RateHalf    = 0.5
	RateQuarter = 0.25
)

// Governor measures achieved frame rate over fixed windows and sets the
// shared SpawnRate to one of three tiers. It is the SpawnRate's only writer.
type Governor struct {
	// Window is the measurement window in seconds.
	Window float64
	// HighFPS and LowFPS are the tier thresholds: at or above HighFPS the
	// rate is full, at or above LowFPS half, below that a quarter.
	HighFPS, LowFPS float64

	rate    *SpawnRate
	frames  int
	elapsed float64
	fps     float64
	windows int
}

// NewGovernor creates a governor writing to rate.
func NewGovernor(rate *SpawnRate, cfg Config) *Governor {
	g := &Governor{
		Window:  cfg.GovernorWindow,
		HighFPS: cfg.HighFPS,
		LowFPS:  cfg.LowFPS,
		rate:    rate,
	}
	if g.Window <= 0 {
		g.Window = 1
	}
	return g
}

// Sample records one frame that took dt seconds of real time. At the end of
// each window the multiplier is recomputed.
func (g *Governor) Sample(dt float64) {
	if dt < 0 {
		dt = 0
	}
	g.frames++
	g.elapsed += dt
	if g.elapsed < g.Window {
		return
	}
	g.fps = float64(g.frames) / g.elapsed
	g.frames = 0
	g.elapsed = 0
	g.windows++

	m := g.tier(g.fps)
	if m != g.rate.Multiplier() {
		debugf("governor %.1f fps, spawn rate %.2f", g.fps, m)
	}
	g.rate.Set(m)
}

func (g *Governor) tier(fps float64) float64 {
	switch {
	case fps >= g.HighFPS:
		return RateFull
	case fps >= g.LowFPS:
		return RateHalf
	default:
		return RateQuarter
	}
}

// FPS returns the frame rate measured over the last complete window, or 0
// before the first window completes.
func (g *Governor) FPS() float64 { return g.fps }

// Windows returns the number of completed windows.
func (g *Governor) Windows() int { return g.windows }

// Multiplier returns the current spawn rate multiplier.
func (g *Governor) Multiplier() float64 { return g.rate.Multiplier() }

// Loop is driven by an external per-frame callback. Each Tick computes a
// capped delta, feeds the governor, then clears the surface, updates and
// renders the screen manager, in that order.
type Loop struct {
	manager  *ScreenManager
	governor *Governor
	maxDT    float64

	last    time.Time
	started bool
	frames  uint64
	lastDT  float64
}

// NewLoop creates a loop for m. The governor writes to m's shared SpawnRate.
func NewLoop(m *ScreenManager, cfg Config) *Loop {
	maxDT := cfg.MaxFrameDT
	if maxDT <= 0 {
		maxDT = DefaultConfig().MaxFrameDT
	}
	return &Loop{
		manager:  m,
		governor: NewGovernor(m.Context().SpawnRate, cfg),
		maxDT:    maxDT,
	}
}

// Tick runs one frame at wall-clock time now and returns the dt passed to
// Update. The first tick's dt is 0; a clock that goes backwards yields 0.
func (l *Loop) Tick(now time.Time, s Surface) float64 {
	var raw float64
	if l.started {
		raw = now.Sub(l.last).Seconds()
	}
	l.last = now
	l.started = true
	if raw < 0 {
		raw = 0
	}
	dt := min(raw, l.maxDT)
	l.frames++
	l.lastDT = dt

	l.governor.Sample(raw)
	s.Clear()
	l.manager.Update(dt)
	l.manager.Render(s)
	return dt
}

// Governor returns the loop's governor.
func (l *Loop) Governor() *Governor { return l.governor }

// Frames returns the number of ticks run.
func (l *Loop) Frames() uint64 { return l.frames }

// Report returns a plain-text diagnostic summary.
func (l *Loop) Report() string {
	ctx := l.manager.Context()
	ses := ctx.Session
	var b strings.Builder
	fmt.Fprintf(&b, "frames: %d\n", l.frames)
	fmt.Fprintf(&b, "last dt: %.4f s (cap %.3f)\n", l.lastDT, l.maxDT)
	fmt.Fprintf(&b, "fps: %.1f\n", l.governor.FPS())
	fmt.Fprintf(&b, "spawn rate: %.2f\n", l.governor.Multiplier())
	fmt.Fprintf(&b, "screen: %s\n", l.manager.ActiveName())
	if r, ok := l.manager.Active().(*Round); ok {
		fmt.Fprintf(&b, "phase: %s (%.2f s)\n", r.Phase(), r.phases.Elapsed())
		fmt.Fprintf(&b, "hint: %s\n", r.Hints().Level())
		fmt.Fprintf(&b, "particles: %d/%d\n", r.Particles().Len(), r.Particles().Capacity())
	}
	fmt.Fprintf(&b, "session: turn %d, rounds %d, completed %d, solved %d, assisted %d, misses %d\n",
		ses.Turn, ses.Rounds, ses.ActivitiesCompleted, ses.Solved, ses.Assisted, ses.Misses)
	return b.String()
}
