package playtime

// TweenConfig describes one interpolation handed to Animator.Add.
type TweenConfig struct {
	// From and To are the start and end values.
	From, To float64
	// Duration is the length in seconds. Zero (or negative) completes on the
	// next Update regardless of dt.
	Duration float64
	// Delay holds the tween at From for this many seconds before it starts.
	// OnUpdate is not called while delayed.
	Delay float64
	// Ease shapes progress. Nil means Linear.
	Ease Easing
	// OnUpdate receives the interpolated value every Update, including the
	// final tick where it receives exactly To.
	OnUpdate func(v float64)
	// OnComplete fires once, after the final OnUpdate. It may add tweens.
	OnComplete func()
}

// Tween is a live interpolation owned by an Animator.
type Tween struct {
	from, to   float64
	duration   float64
	elapsed    float64
	value      float64
	ease       Easing
	onUpdate   func(float64)
	onComplete func()
	done       bool
}

// Done reports whether the tween has completed or been cancelled.
func (t *Tween) Done() bool { return t.done }

// Value returns the most recently computed value.
func (t *Tween) Value() float64 { return t.value }

// Cancel stops the tween without firing OnComplete. It is removed on the
// owning Animator's next Update.
func (t *Tween) Cancel() { t.done = true }

// advance moves the tween forward by dt and fires its callbacks.
func (t *Tween) advance(dt float64) {
	t.elapsed += dt
	if t.elapsed < 0 {
		return
	}
	p := 1.0
	if t.duration > 0 {
		p = min(t.elapsed/t.duration, 1)
	}
	if p >= 1 {
		t.value = t.to
	} else {
		t.value = lerp(t.from, t.to, t.ease(p))
	}
	if t.onUpdate != nil {
		t.onUpdate(t.value)
	}
	if p >= 1 {
		t.done = true
		if t.onComplete != nil {
			t.onComplete()
		}
	}
}

// Animator advances many independent tweens once per frame. There is no
// global animator: each Round owns one and calls Update itself.
type Animator struct {
	tweens []*Tween
	epoch  uint64 // bumped by Clear so an in-flight Update stops iterating
}

// NewAnimator returns an empty Animator.
func NewAnimator() *Animator {
	return &Animator{tweens: make([]*Tween, 0, 16)}
}

// Add schedules a tween and returns its handle. The tween is first advanced on
// the next Update call, even when added from inside a callback.
func (a *Animator) Add(cfg TweenConfig) *Tween {
	tw := &Tween{
		from:       cfg.From,
		to:         cfg.To,
		duration:   max(cfg.Duration, 0),
		elapsed:    -max(cfg.Delay, 0),
		value:      cfg.From,
		ease:       cfg.Ease,
		onUpdate:   cfg.OnUpdate,
		onComplete: cfg.OnComplete,
	}
	if tw.ease == nil {
		tw.ease = Linear
	}
	a.tweens = append(a.tweens, tw)
	return tw
}

// Field tweens the float64 at ptr from its current value to `to`.
func (a *Animator) Field(ptr *float64, to, duration float64, ease Easing) *Tween {
	return a.Add(TweenConfig{
		From:     *ptr,
		To:       to,
		Duration: duration,
		Ease:     ease,
		OnUpdate: func(v float64) { *ptr = v },
	})
}

// Update advances every live tween by dt seconds. Completed tweens are removed
// after the whole pass.
func (a *Animator) Update(dt float64) {
	epoch := a.epoch
	n := len(a.tweens)
	for i := 0; i < n; i++ {
		if a.epoch != epoch {
			return
		}
		tw := a.tweens[i]
		if tw.done {
			continue
		}
		tw.advance(dt)
	}
	if a.epoch != epoch {
		return
	}

	live := a.tweens[:0]
	for _, tw := range a.tweens {
		if !tw.done {
			live = append(live, tw)
		}
	}
	for i := len(live); i < len(a.tweens); i++ {
		a.tweens[i] = nil
	}
	a.tweens = live
}

// Clear discards all tweens without firing OnComplete.
func (a *Animator) Clear() {
	for i := range a.tweens {
		a.tweens[i] = nil
	}
	a.tweens = a.tweens[:0]
	a.epoch++
}

// Len returns the number of tweens still scheduled (including ones that
// finished during the current pass but have not been removed yet).
func (a *Animator) Len() int {
	return len(a.tweens)
}
