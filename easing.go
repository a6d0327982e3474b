package playtime

import "github.com/tanema/gween/ease"

// Easing maps linear progress t in [0, 1] to eased progress. Most curves stay
// within [0, 1]; EaseOutBack briefly overshoots 1.
type Easing func(t float64) float64

// FromGween adapts a gween easing function (t, begin, change, duration) to the
// normalized Easing form.
func FromGween(fn ease.TweenFunc) Easing {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

var (
	// Linear is constant-speed progress.
	Linear = FromGween(ease.Linear)
	// EaseIn starts slow and accelerates (quadratic).
	EaseIn = FromGween(ease.InQuad)
	// EaseOut starts fast and decelerates (quadratic).
	EaseOut = FromGween(ease.OutQuad)
	// EaseOutBack overshoots the target and settles back (s = 1.70158).
	EaseOutBack = FromGween(ease.OutBack)
)

// EaseInOut is smoothstep: slow at both ends, symmetric about t = 0.5.
func EaseInOut(t float64) float64 {
	return t * t * (3 - 2*t)
}
