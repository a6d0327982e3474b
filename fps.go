package playtime

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// FPSMeter is a small debug readout of the achieved frame rate, the spawn
// rate tier and ebiten's TPS. The text is refreshed every ~0.5 seconds.
type FPSMeter struct {
	X, Y float64

	governor *Governor
	since    float64
	label    string
	// tps reports ticks per second. It defaults to ebiten.ActualTPS.
	tps func() float64
}

// NewFPSMeter creates a meter reading from g.
func NewFPSMeter(g *Governor) *FPSMeter {
	return &FPSMeter{X: 8, Y: 8, governor: g, tps: ebiten.ActualTPS, since: 0.5}
}

// Update advances the refresh timer.
func (f *FPSMeter) Update(dt float64) {
	f.since += dt
	if f.since < 0.5 {
		return
	}
	f.since = 0
	f.label = fmt.Sprintf("FPS: %.1f  TPS: %.1f  x%.2f", f.governor.FPS(), f.tps(), f.governor.Multiplier())
}

// Label returns the current readout.
func (f *FPSMeter) Label() string { return f.label }

// Render draws the readout on a translucent panel.
func (f *FPSMeter) Render(s Surface) {
	if f.label == "" {
		return
	}
	s.FillRect(f.X, f.Y, 300, 28, ColorBlack.WithAlpha(0.5))
	s.DrawText(f.label, f.X+8, f.Y+20, 16, TextAlignLeft, ColorWhite)
}
