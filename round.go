package playtime

import (
	"math"
	"math/rand/v2"
)

// Verdict is an activity's judgement of one input against the current prompt.
type Verdict int

const (
	// VerdictIgnore absorbs the input without touching hints or feedback.
	VerdictIgnore Verdict = iota
	// VerdictMiss is a wrong answer.
	VerdictMiss
	// VerdictPartial is a correct pick that does not yet solve the prompt.
	VerdictPartial
	// VerdictCorrect solves the prompt.
	VerdictCorrect
)

func (v Verdict) String() string {
	switch v {
	case VerdictIgnore:
		return "ignore"
	case VerdictMiss:
		return "miss"
	case VerdictPartial:
		return "partial"
	case VerdictCorrect:
		return "correct"
	default:
		return "unknown"
	}
}

// Target is one tappable thing in a prompt: a ball to count, a crayon, a shape.
type Target struct {
	ID     string
	Label  string
	X, Y   float64
	Radius float64
	Color  Color
	// Correct marks targets that count toward Prompt.Needed.
	Correct bool
	Picked  bool
	// Scale and Wobble are animated by the round (pop-in, miss shake).
	Scale  float64
	Wobble float64
	// Hit overrides the default circular hit area. It is in logical
	// coordinates, not relative to X, Y.
	Hit HitShape
}

// Contains reports whether (x, y) lies on the target. Unpopped targets
// (Scale 0) still hit at full size so a fast tap during the pop-in counts.
func (t *Target) Contains(x, y float64) bool {
	if t.Hit != nil {
		return t.Hit.Contains(x, y)
	}
	return HitCircle{CenterX: t.X, CenterY: t.Y, Radius: t.Radius}.Contains(x, y)
}

// Shake is the horizontal offset of the miss wobble, for drawing.
func (t *Target) Shake() float64 {
	return math.Sin(t.Wobble*math.Pi*6) * 12 * t.Wobble
}

// Prompt is one question in a round.
type Prompt struct {
	// Concept names what is being asked ("3", "red", "circle"). It keys the
	// hint ladder and debug output.
	Concept string
	// Say is spoken on prompt entry and on the first hint.
	Say string
	// Text is shown in the prompt overlay.
	Text    string
	Targets []*Target
	// Needed is the number of correct picks that solve the prompt. Zero means
	// every correct target.
	Needed int
	// Key, when set, is the key that answers the prompt.
	Key Key
}

// NextCorrect returns the first unpicked correct target, or nil.
func (p *Prompt) NextCorrect() *Target {
	for _, t := range p.Targets {
		if t.Correct && !t.Picked {
			return t
		}
	}
	return nil
}

func (p *Prompt) correctCount() int {
	n := 0
	for _, t := range p.Targets {
		if t.Correct {
			n++
		}
	}
	return n
}

// Activity is the content half of a mini-game. The Round drives the shared
// choreography and asks the Activity for prompts and art.
type Activity interface {
	Name() string
	Title() string
	PromptCount() int
	// NewPrompt builds prompt index (0-based) using rng for any shuffling.
	NewPrompt(index int, rng *rand.Rand) Prompt
	// Draw paints the activity's background and targets. The round paints the
	// mascot, particles and phase overlays on top.
	Draw(r *Round, s Surface)
}

// Picker is implemented by activities that react to each correct pick, such
// as counting aloud.
type Picker interface {
	Picked(r *Round, t *Target, count int)
}

// KeyJudge is implemented by activities that judge key input themselves.
type KeyJudge interface {
	JudgeKey(p *Prompt, k Key) Verdict
}

// Interluder is implemented by activities with an extra timed phase between
// celebrate and next.
type Interluder interface {
	Interlude() (phase Phase, duration float64)
	EnterInterlude(r *Round)
}

// Stager is implemented by activities that lay out against the round's
// resolution. SetStage runs on Enter, before the first prompt.
type Stager interface {
	SetStage(width, height float64)
}

// RoundLines are the stock phrases a round speaks. Hosts replace them to
// translate.
type RoundLines struct {
	Praise   []string
	Together string
	AllDone  string
}

// DefaultLines returns the English stock phrases.
func DefaultLines() RoundLines {
	return RoundLines{
		Praise:   []string{"Great job!", "You did it!", "Hooray!", "Wonderful!"},
		Together: "Let's do it together!",
		AllDone:  "All done!",
	}
}

// Mascot is the persistent buddy drawn in every phase.
type Mascot struct {
	X, Y  float64
	Scale float64
	Bob   float64
	Pose  string
}

// Sound effect ids passed to Voice.PlaySound.
const (
	SoundPop    = "pop"
	SoundBoing  = "boing"
	SoundCheer  = "cheer"
	SoundEngage = "engage"
	SoundChime  = "chime"
	SoundHint   = "hint"
)

// Mascot poses.
const (
	PoseIdle  = "idle"
	PoseWave  = "wave"
	PoseCheer = "cheer"
	PoseThink = "think"
)

// Round runs one activity through the shared phase script. It owns its
// animator, particle pool, hint ladder and deferred tasks; Exit clears all of
// them so nothing fires after teardown.
type Round struct {
	// Lines are spoken at celebration, auto-complete and completion.
	Lines RoundLines

	activity Activity
	cfg      Config
	ctx      *Context

	phases    *PhaseMachine
	anim      *Animator
	particles *ParticlePool
	hints     *HintLadder
	tasks     *Scheduler
	rng       *rand.Rand
	seed      uint64
	seeded    bool

	active    bool
	total     float64
	index     int
	prompt    Prompt
	picks     int
	locked    bool
	resolved  bool
	assisted  bool
	signalled bool

	mascot  Mascot
	glow    bool
	pointer bool
	pulse   float64
	cheer   float64 // celebration text scale
	praise  string

	subtitle float64 // seconds until the current subtitle is hidden
}

// NewRound creates a round for a. A zero cfg uses the screen context's Config
// at Enter.
func NewRound(a Activity, cfg Config) *Round {
	r := &Round{
		Lines:     DefaultLines(),
		activity:  a,
		cfg:       cfg,
		phases:    NewPhaseMachine(),
		anim:      NewAnimator(),
		particles: NewParticlePool(cfg.ParticleCapacity, nil),
		tasks:     NewScheduler(),
		rng:       rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
	r.hints = NewHintLadder(r.hintConfig())
	return r
}

func (r *Round) hintConfig() HintConfig {
	if r.cfg == (Config{}) {
		return DefaultHintConfig()
	}
	return r.cfg.Hints()
}

// Seed makes prompt order and particle effects reproducible. It applies to the
// next Enter.
func (r *Round) Seed(seed uint64) {
	r.seed = seed
	r.seeded = true
}

func (r *Round) definePhases() {
	c := r.cfg
	m := r.phases
	m.Define(PhaseBanner, PhaseHandlers{
		Enter:    r.enterBanner,
		Duration: max(c.BannerDuration, minPhaseDuration),
		Next:     PhaseEngage,
	})
	m.Define(PhaseEngage, PhaseHandlers{
		Enter:    r.enterEngage,
		Duration: max(c.EngageDuration, minPhaseDuration),
		Next:     PhasePrompt,
	})
	m.Define(PhasePrompt, PhaseHandlers{
		Enter:    r.enterPrompt,
		Duration: max(c.PromptDuration, minPhaseDuration),
		Next:     PhasePlay,
	})
	m.Define(PhasePlay, PhaseHandlers{
		Update:  r.updatePlay,
		Accepts: true,
	})

	after := PhaseNext
	if il, ok := r.activity.(Interluder); ok {
		p, d := il.Interlude()
		m.Define(p, PhaseHandlers{
			Enter:    func() { il.EnterInterlude(r) },
			Duration: max(d, minPhaseDuration),
			Next:     PhaseNext,
		})
		after = p
	}
	m.Define(PhaseCelebrate, PhaseHandlers{
		Enter:    r.enterCelebrate,
		Duration: max(c.CelebrateDuration, minPhaseDuration),
		Next:     after,
	})
	m.Define(PhaseNext, PhaseHandlers{
		Enter:  func() { r.index++ },
		Update: r.updateNext,
	})
	m.Define(PhaseComplete, PhaseHandlers{
		Enter:  r.enterComplete,
		Update: r.updateComplete,
	})
}

// minPhaseDuration keeps a zero-length timed phase timed so it still ends.
const minPhaseDuration = 1e-6

// Enter resets all per-round state and starts the banner phase.
func (r *Round) Enter(ctx *Context) {
	ctx.fillDefaults()
	r.ctx = ctx
	if r.cfg == (Config{}) {
		r.cfg = ctx.Config
		r.hints = NewHintLadder(r.cfg.Hints())
	}
	r.particles = NewParticlePool(r.cfg.ParticleCapacity, ctx.SpawnRate)
	if r.seeded {
		r.rng = rand.New(rand.NewPCG(r.seed, r.seed>>1|1))
		r.particles.Seed(r.seed)
	}
	if st, ok := r.activity.(Stager); ok {
		st.SetStage(r.cfg.Width, r.cfg.Height)
	}
	r.phases = NewPhaseMachine()
	r.definePhases()

	r.anim.Clear()
	r.tasks.Clear()
	r.active = true
	r.total = 0
	r.index = 0
	r.prompt = Prompt{}
	r.picks = 0
	r.locked = false
	r.resolved = false
	r.assisted = false
	r.signalled = false
	r.glow = false
	r.pointer = false
	r.cheer = 0
	r.praise = ""
	r.subtitle = 0
	r.mascot = Mascot{X: r.cfg.Width * 0.12, Y: r.cfg.Height * 0.78, Pose: PoseIdle}

	ctx.Session.Rounds++
	debugf("round %s enter", r.activity.Name())
	r.phases.Start(PhaseBanner)
}

// Exit stops the round. Tweens, particles and deferred tasks are discarded;
// later Update and input calls are no-ops.
func (r *Round) Exit() {
	if !r.active {
		return
	}
	r.active = false
	r.phases.Stop()
	r.anim.Clear()
	r.tasks.Clear()
	r.particles.Clear()
	debugf("round %s exit", r.activity.Name())
}

// Update advances shared timers, tweens, particles and ambient emission, then
// dispatches to the current phase.
func (r *Round) Update(dt float64) {
	if !r.active {
		return
	}
	r.total += dt
	r.pulse += dt
	r.tasks.Update(dt, r.phases.Generation)
	if !r.active {
		return
	}
	r.anim.Update(dt)
	if !r.active {
		return
	}
	r.particles.Update(dt)
	r.particles.MaybeSpawn(r.cfg.AmbientRate, dt, r.emitAmbient)
	r.mascot.Bob = bob(r.total)
	if r.subtitle > 0 {
		r.subtitle -= dt
		if r.subtitle <= 0 {
			r.ctx.Overlays.HideSubtitle()
		}
	}
	r.phases.Update(dt)
}

func (r *Round) emitAmbient() {
	x, y := r.lanternPos()
	r.particles.Flame(x, y, 2, flamePalette, 10)
}

// Later runs fn after delay seconds if the round is still in the phase it was
// in when Later was called.
func (r *Round) Later(delay float64, fn func()) {
	r.tasks.After(delay, r.phases.Generation(), fn)
}

// Say speaks text and shows it as a subtitle for Config.SubtitleDuration.
func (r *Round) Say(text string) {
	if text == "" || r.ctx == nil {
		return
	}
	ctx := r.ctx
	ctx.Speak(text)
	ctx.Overlays.ShowSubtitle(text)
	r.subtitle = r.cfg.SubtitleDuration
}

// Sound plays a sound effect.
func (r *Round) Sound(id string) {
	if r.ctx == nil {
		return
	}
	r.ctx.PlaySound(id)
}

// Burst spawns a celebratory particle burst.
func (r *Round) Burst(x, y float64, c Color) {
	r.particles.Burst(x, y, 24, c, 320, 0.9)
}

func (r *Round) enterBanner() {
	title := r.activity.Title()
	r.ctx.Overlays.ShowBanner(title)
	r.Sound(SoundChime)
	r.ctx.Speak(title)
	r.mascot.Scale = 0
	r.anim.Field(&r.mascot.Scale, 1, 0.6, EaseOutBack)
}

func (r *Round) enterEngage() {
	r.ctx.Overlays.HideBanner()
	r.Sound(SoundEngage)
	r.mascot.Pose = PoseWave
	r.Burst(r.mascot.X, r.mascot.Y-60, palette[r.rng.IntN(len(palette))])
	r.Later(0.4, func() { r.mascot.Pose = PoseIdle })
}

func (r *Round) enterPrompt() {
	p := r.activity.NewPrompt(r.index, r.rng)
	if n := p.correctCount(); p.Needed <= 0 || p.Needed > n {
		p.Needed = n
	}
	if p.Needed == 0 && p.Key != "" {
		p.Needed = 1
	}
	r.prompt = p
	r.picks = 0
	r.locked = false
	r.resolved = false
	r.assisted = false
	r.glow = false
	r.pointer = false
	r.cheer = 0
	r.mascot.Pose = PoseThink

	for i, t := range p.Targets {
		t.Picked = false
		t.Wobble = 0
		t.Scale = 0
		tt := t
		r.anim.Add(TweenConfig{
			From:     0,
			To:       1,
			Duration: 0.35,
			Delay:    float64(i) * 0.08,
			Ease:     EaseOutBack,
			OnUpdate: func(v float64) { tt.Scale = v },
		})
	}

	r.ctx.Session.Turn++
	r.hints.StartPrompt(p.Concept)
	r.ctx.Overlays.ShowPrompt(p.Text)
	r.Say(p.Say)
	debugf("round %s prompt %d %q needs %d", r.activity.Name(), r.index, p.Concept, p.Needed)
}

func (r *Round) enterCelebrate() {
	r.ctx.Overlays.HidePrompt()
	r.Sound(SoundCheer)
	r.mascot.Pose = PoseCheer
	if len(r.Lines.Praise) > 0 {
		r.praise = r.Lines.Praise[r.rng.IntN(len(r.Lines.Praise))]
	}
	r.Say(r.praise)
	for _, t := range r.prompt.Targets {
		if t.Correct {
			r.Burst(t.X, t.Y, t.Color)
		}
	}
	r.Burst(r.cfg.Width/2, r.cfg.Height*0.4, palette[r.rng.IntN(len(palette))])
	r.cheer = 0
	r.anim.Field(&r.cheer, 1, 0.5, EaseOutBack)
	r.Later(1.2, func() { r.mascot.Pose = PoseIdle })
}

func (r *Round) updateNext(float64) {
	if r.index >= r.activity.PromptCount() {
		r.phases.Go(PhaseComplete)
		return
	}
	r.phases.Go(PhasePrompt)
}

func (r *Round) enterComplete() {
	r.ctx.Session.ActivitiesCompleted++
	r.ctx.Overlays.ShowBanner(r.Lines.AllDone)
	r.Say(r.Lines.AllDone)
	r.Sound(SoundCheer)
	r.mascot.Pose = PoseCheer
	w, h := r.cfg.Width, r.cfg.Height
	for i, x := range []float64{0.25, 0.5, 0.75} {
		r.Burst(w*x, h*0.35, palette[i%len(palette)])
	}
}

func (r *Round) updateComplete(float64) {
	if r.signalled || r.phases.Elapsed() < r.cfg.CompleteDuration {
		return
	}
	r.signalled = true
	r.finish()
}

// finish hands the completed round back to its host.
func (r *Round) finish() {
	name := r.activity.Name()
	debugf("round %s complete", name)
	if r.ctx.OnRoundComplete != nil {
		r.ctx.OnRoundComplete(name)
		return
	}
	m := r.ctx.Manager
	if m == nil {
		return
	}
	if err := m.GoTo(r.cfg.CalmScreen); err != nil {
		warnf("round %s: %v", name, err)
	}
}

// Activity returns the round's activity.
func (r *Round) Activity() Activity { return r.activity }

// Config returns the round's effective configuration.
func (r *Round) Config() Config { return r.cfg }

// Context returns the context passed to Enter, or nil before Enter.
func (r *Round) Context() *Context { return r.ctx }

// Active reports whether the round has been entered and not exited.
func (r *Round) Active() bool { return r.active }

// Phase returns the current phase.
func (r *Round) Phase() Phase { return r.phases.Current() }

// Phases returns the round's phase machine.
func (r *Round) Phases() *PhaseMachine { return r.phases }

// Index returns the 0-based index of the current prompt.
func (r *Round) Index() int { return r.index }

// Prompt returns the current prompt.
func (r *Round) Prompt() *Prompt { return &r.prompt }

// Picks returns the correct picks made on the current prompt.
func (r *Round) Picks() int { return r.picks }

// Locked reports whether input is held after a miss.
func (r *Round) Locked() bool { return r.locked }

// Resolved reports whether the current prompt has been solved or assisted.
func (r *Round) Resolved() bool { return r.resolved }

// Assisted reports whether the current prompt was auto-completed.
func (r *Round) Assisted() bool { return r.assisted }

// Hints returns the round's hint ladder.
func (r *Round) Hints() *HintLadder { return r.hints }

// Animator returns the round's animator.
func (r *Round) Animator() *Animator { return r.anim }

// Particles returns the round's particle pool.
func (r *Round) Particles() *ParticlePool { return r.particles }

// Tasks returns the round's deferred task queue.
func (r *Round) Tasks() *Scheduler { return r.tasks }

// Rand returns the round's random source.
func (r *Round) Rand() *rand.Rand { return r.rng }

// Mascot returns the mascot state.
func (r *Round) Mascot() *Mascot { return &r.mascot }

// Total returns seconds since Enter.
func (r *Round) Total() float64 { return r.total }

// Glowing reports whether the correct targets are highlighted (hint level 2+).
func (r *Round) Glowing() bool { return r.glow }

// Pointing reports whether the pointer hint is shown (hint level 3+).
func (r *Round) Pointing() bool { return r.pointer }
