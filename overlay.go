package playtime

// Overlays are the transient text layers shown above the active screen. The
// ScreenManager hides all three on every screen switch.
type Overlays interface {
	ShowBanner(text string)
	HideBanner()
	ShowPrompt(text string)
	HidePrompt()
	ShowSubtitle(text string)
	HideSubtitle()
}

// overlayText is one fading text slot.
type overlayText struct {
	text    string
	visible bool
	alpha   float64
}

func (o *overlayText) show(text string) {
	o.text = text
	o.visible = true
}

func (o *overlayText) hide() {
	o.visible = false
}

// update fades alpha toward the visibility target.
func (o *overlayText) update(dt, fadeTime float64) {
	step := dt / fadeTime
	if o.visible {
		o.alpha = min(o.alpha+step, 1)
	} else {
		o.alpha = max(o.alpha-step, 0)
	}
}

// OverlayLayer is the default Overlays: a banner across the top, the prompt
// line near the bottom, and a subtitle strip beneath it, each fading in and
// out.
type OverlayLayer struct {
	Width, Height float64
	// FadeTime is the fade duration in seconds.
	FadeTime float64
	// TextColor and PanelColor style all three slots.
	TextColor  Color
	PanelColor Color

	banner, prompt, subtitle overlayText
}

// NewOverlayLayer returns an overlay layer for a w×h logical surface.
func NewOverlayLayer(w, h float64) *OverlayLayer {
	return &OverlayLayer{
		Width:      w,
		Height:     h,
		FadeTime:   0.25,
		TextColor:  ColorWhite,
		PanelColor: Color{0.1, 0.1, 0.2, 0.55},
	}
}

func (l *OverlayLayer) ShowBanner(text string)   { l.banner.show(text) }
func (l *OverlayLayer) HideBanner()              { l.banner.hide() }
func (l *OverlayLayer) ShowPrompt(text string)   { l.prompt.show(text) }
func (l *OverlayLayer) HidePrompt()              { l.prompt.hide() }
func (l *OverlayLayer) ShowSubtitle(text string) { l.subtitle.show(text) }
func (l *OverlayLayer) HideSubtitle()            { l.subtitle.hide() }

// Banner returns the banner text and whether it is currently shown.
func (l *OverlayLayer) Banner() (string, bool) { return l.banner.text, l.banner.visible }

// Prompt returns the prompt text and whether it is currently shown.
func (l *OverlayLayer) Prompt() (string, bool) { return l.prompt.text, l.prompt.visible }

// Subtitle returns the subtitle text and whether it is currently shown.
func (l *OverlayLayer) Subtitle() (string, bool) { return l.subtitle.text, l.subtitle.visible }

// Update advances the fades.
func (l *OverlayLayer) Update(dt float64) {
	fade := l.FadeTime
	if fade <= 0 {
		fade = 0.001
	}
	l.banner.update(dt, fade)
	l.prompt.update(dt, fade)
	l.subtitle.update(dt, fade)
}

// Render draws every slot with non-zero alpha.
func (l *OverlayLayer) Render(s Surface) {
	if a := l.banner.alpha; a > 0 {
		s.FillRect(0, l.Height*0.06, l.Width, 110, l.PanelColor.WithAlpha(a))
		s.DrawText(l.banner.text, l.Width/2, l.Height*0.06+78, 64, TextAlignCenter, l.TextColor.WithAlpha(a))
	}
	if a := l.prompt.alpha; a > 0 {
		s.FillRect(l.Width*0.15, l.Height-170, l.Width*0.7, 70, l.PanelColor.WithAlpha(a))
		s.DrawText(l.prompt.text, l.Width/2, l.Height-122, 44, TextAlignCenter, l.TextColor.WithAlpha(a))
	}
	if a := l.subtitle.alpha; a > 0 {
		s.DrawText(l.subtitle.text, l.Width/2, l.Height-40, 28, TextAlignCenter, l.TextColor.WithAlpha(a*0.9))
	}
}
