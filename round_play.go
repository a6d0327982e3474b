package playtime

// HandleClick judges a click against the current prompt's targets. Clicks
// outside the play phase, while settling after a miss, or after the prompt
// resolved are absorbed.
func (r *Round) HandleClick(x, y float64) {
	if !r.acceptingInput() {
		return
	}
	v, t := r.judgeClick(x, y)
	r.apply(v, t)
}

// HandleKey judges a key press. Activities implementing KeyJudge decide;
// otherwise a prompt with a Key accepts that key and treats any other
// single-character key as a miss.
func (r *Round) HandleKey(k Key) {
	if !r.acceptingInput() {
		return
	}
	var v Verdict
	if kj, ok := r.activity.(KeyJudge); ok {
		v = kj.JudgeKey(&r.prompt, k)
	} else {
		v = judgeKey(&r.prompt, k)
	}
	var t *Target
	if v == VerdictPartial || v == VerdictCorrect {
		t = r.prompt.NextCorrect()
	}
	r.apply(v, t)
}

func (r *Round) acceptingInput() bool {
	return r.active && r.phases.Accepting() && !r.locked && !r.resolved
}

func judgeKey(p *Prompt, k Key) Verdict {
	switch {
	case p.Key == "":
		return VerdictIgnore
	case k == p.Key:
		return VerdictCorrect
	case len(k) == 1:
		return VerdictMiss
	default:
		return VerdictIgnore
	}
}

// judgeClick finds the top-most target under (x, y). Targets are drawn in
// slice order, so the search runs back to front. Background clicks are
// ignored rather than counted as misses.
func (r *Round) judgeClick(x, y float64) (Verdict, *Target) {
	ts := r.prompt.Targets
	for i := len(ts) - 1; i >= 0; i-- {
		t := ts[i]
		if !t.Contains(x, y) {
			continue
		}
		switch {
		case t.Picked:
			return VerdictIgnore, t
		case !t.Correct:
			return VerdictMiss, t
		case r.picks+1 >= r.prompt.Needed:
			return VerdictCorrect, t
		default:
			return VerdictPartial, t
		}
	}
	return VerdictIgnore, nil
}

func (r *Round) apply(v Verdict, t *Target) {
	debugf("round %s input %s", r.activity.Name(), v)
	switch v {
	case VerdictPartial, VerdictCorrect:
		r.hints.OnProgress()
		r.pick(t, true)
		if r.picks >= r.prompt.Needed {
			r.resolve()
		}
	case VerdictMiss:
		r.miss(t)
	}
}

// pick records one correct pick. t may be nil for key answers with no
// matching target.
func (r *Round) pick(t *Target, feedback bool) {
	r.picks++
	if t != nil {
		t.Picked = true
		t.Wobble = 0
		tt := t
		r.anim.Add(TweenConfig{
			From:     1.3,
			To:       1,
			Duration: 0.25,
			Ease:     EaseOut,
			OnUpdate: func(v float64) { tt.Scale = v },
		})
		r.Burst(t.X, t.Y, t.Color)
	}
	if !feedback {
		return
	}
	r.Sound(SoundPop)
	if p, ok := r.activity.(Picker); ok && t != nil {
		p.Picked(r, t, r.picks)
	}
}

func (r *Round) miss(t *Target) {
	r.ctx.Session.Misses++
	r.Sound(SoundBoing)
	if t != nil {
		t.Wobble = 1
		r.anim.Field(&t.Wobble, 0, 0.5, EaseOut)
	}
	level := r.hints.OnMiss()
	if r.hints.AutoCompleted() {
		r.autoComplete()
		return
	}
	r.applyHint(level)
	r.locked = true
	r.Later(r.cfg.SettleDelay, func() { r.locked = false })
}

func (r *Round) updatePlay(dt float64) {
	if r.resolved {
		return
	}
	if r.hints.Update(dt) {
		r.applyHint(r.hints.Level())
	}
}

func (r *Round) applyHint(level HintLevel) {
	switch level {
	case HintRepeat:
		r.Sound(SoundHint)
		r.Say(r.prompt.Say)
	case HintGlow:
		r.glow = true
	case HintPoint:
		r.glow = true
		r.pointer = true
	case HintAutoComplete:
		r.autoComplete()
	}
}

// autoComplete resolves the prompt for the player by simulating the remaining
// correct picks. It is terminal for the prompt.
func (r *Round) autoComplete() {
	if r.resolved {
		return
	}
	r.assisted = true
	r.locked = false
	for r.picks < r.prompt.Needed {
		t := r.prompt.NextCorrect()
		r.pick(t, false)
		if t == nil && r.picks < r.prompt.Needed {
			r.picks = r.prompt.Needed
		}
	}
	r.Say(r.Lines.Together)
	r.resolve()
}

func (r *Round) resolve() {
	r.resolved = true
	r.glow = false
	r.pointer = false
	if r.assisted {
		r.ctx.Session.Assisted++
	} else {
		r.ctx.Session.Solved++
	}
	r.phases.Go(PhaseCelebrate)
}
