package playtime

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

const step = 1.0 / 60

// fakeActivity asks the same question every prompt: one correct target on
// the left, one decoy on the right.
type fakeActivity struct {
	prompts int
	key     Key
	drawn   int
	picked  []int
}

func (a *fakeActivity) Name() string     { return "fake" }
func (a *fakeActivity) Title() string    { return "Fake game" }
func (a *fakeActivity) PromptCount() int { return a.prompts }

func (a *fakeActivity) NewPrompt(index int, _ *rand.Rand) Prompt {
	return Prompt{
		Concept: "left",
		Say:     "Tap the left ball",
		Text:    "Left!",
		Key:     a.key,
		Targets: []*Target{
			{ID: "left", X: 100, Y: 100, Radius: 50, Color: ColorWhite, Correct: true},
			{ID: "right", X: 400, Y: 100, Radius: 50, Color: ColorBlack},
		},
	}
}

func (a *fakeActivity) Draw(r *Round, s Surface) { a.drawn++ }

// pickerActivity records each correct pick.
type pickerActivity struct{ fakeActivity }

func (a *pickerActivity) Picked(_ *Round, _ *Target, count int) {
	a.picked = append(a.picked, count)
}

// interludeActivity adds a short extra phase after celebrate.
type interludeActivity struct {
	fakeActivity
	entered int
	length  float64
}

func (a *interludeActivity) Interlude() (Phase, float64) { return "drop", a.length }
func (a *interludeActivity) EnterInterlude(*Round)       { a.entered++ }

type fakeVoice struct {
	sounds []string
	lines  []string
}

func (v *fakeVoice) PlaySound(id string) { v.sounds = append(v.sounds, id) }
func (v *fakeVoice) Speak(text string)   { v.lines = append(v.lines, text) }

func (v *fakeVoice) said(sub string) bool {
	return slices.ContainsFunc(v.lines, func(l string) bool { return strings.Contains(l, sub) })
}

// stubScreen counts lifecycle calls.
type stubScreen struct {
	name    string
	log     *[]string
	entered int
	exited  int
	updates int
	clicks  int
	keys    []Key
	onEnter func(ctx *Context)
	onClick func()
}

func (s *stubScreen) Enter(ctx *Context) {
	s.entered++
	if s.log != nil {
		*s.log = append(*s.log, "enter "+s.name)
	}
	if s.onEnter != nil {
		s.onEnter(ctx)
	}
}

func (s *stubScreen) Exit() {
	s.exited++
	if s.log != nil {
		*s.log = append(*s.log, "exit "+s.name)
	}
}

func (s *stubScreen) Update(float64) { s.updates++ }
func (s *stubScreen) Render(Surface) {}

func (s *stubScreen) HandleClick(_, _ float64) {
	s.clicks++
	if s.onClick != nil {
		s.onClick()
	}
}

func (s *stubScreen) HandleKey(k Key) { s.keys = append(s.keys, k) }

type roundFixture struct {
	m     *ScreenManager
	r     *Round
	voice *fakeVoice
	calm  *stubScreen
}

func newRoundFixture(t *testing.T, a Activity) *roundFixture {
	t.Helper()
	f := &roundFixture{voice: &fakeVoice{}, calm: &stubScreen{name: "calm"}}
	f.m = NewScreenManager(Context{Voice: f.voice})
	f.r = NewRound(a, DefaultConfig())
	f.r.Seed(42)
	f.m.Register("fake", f.r)
	f.m.Register("calm", f.calm)
	if err := f.m.GoTo("fake"); err != nil {
		t.Fatal(err)
	}
	return f
}

func (f *roundFixture) runUntil(t *testing.T, limit float64, done func() bool) {
	t.Helper()
	for el := 0.0; el < limit; el += step {
		if done() {
			return
		}
		f.m.Update(step)
	}
	if !done() {
		t.Fatalf("condition not met within %.1fs (phase %q)", limit, f.r.Phase())
	}
}

func (f *roundFixture) run(seconds float64) {
	for el := 0.0; el < seconds; el += step {
		f.m.Update(step)
	}
}

func (f *roundFixture) toPhase(t *testing.T, p Phase) {
	t.Helper()
	f.runUntil(t, 30, func() bool { return f.r.Phase() == p })
}

func (f *roundFixture) session() *Session { return f.m.Context().Session }

func TestRoundFullFlow(t *testing.T) {
	a := &fakeActivity{prompts: 2}
	f := newRoundFixture(t, a)

	if f.r.Phase() != PhaseBanner {
		t.Fatalf("Phase = %q after Enter, want banner", f.r.Phase())
	}
	if !f.voice.said("Fake game") {
		t.Error("title not spoken on banner")
	}
	f.toPhase(t, PhaseEngage)
	f.toPhase(t, PhasePrompt)
	ov := f.m.Context().Overlays.(*OverlayLayer)
	if text, shown := ov.Prompt(); text != "Left!" || !shown {
		t.Errorf("prompt overlay = %q %v, want Left! shown", text, shown)
	}
	f.toPhase(t, PhasePlay)

	f.m.HandleClick(100, 100)
	if f.r.Phase() != PhaseCelebrate {
		t.Fatalf("Phase = %q after a correct tap, want celebrate", f.r.Phase())
	}
	if _, shown := ov.Prompt(); shown {
		t.Error("prompt overlay still shown during celebrate")
	}

	f.toPhase(t, PhasePlay)
	if f.r.Index() != 1 {
		t.Errorf("Index = %d on the second prompt, want 1", f.r.Index())
	}
	f.m.HandleClick(100, 100)

	f.runUntil(t, 30, func() bool { return f.m.ActiveName() == "calm" })
	if f.r.Active() {
		t.Error("round still active after moving to calm")
	}
	s := f.session()
	if s.Solved != 2 || s.Turn != 2 || s.ActivitiesCompleted != 1 || s.Rounds != 1 {
		t.Errorf("session = %+v", *s)
	}
	if !f.voice.said("All done!") {
		t.Error("completion line not spoken")
	}
}

func TestRoundInputAbsorbedOutsidePlay(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	for _, p := range []Phase{PhaseBanner, PhaseEngage, PhasePrompt} {
		f.toPhase(t, p)
		f.m.HandleClick(100, 100)
		f.m.HandleClick(400, 100)
		f.m.HandleKey("x")
	}
	if f.r.Picks() != 0 || f.session().Misses != 0 {
		t.Errorf("picks %d misses %d, want input absorbed", f.r.Picks(), f.session().Misses)
	}
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(100, 100)
	f.m.HandleClick(100, 100)
	if f.session().Solved != 1 {
		t.Errorf("Solved = %d, want 1", f.session().Solved)
	}
}

func TestRoundBackgroundTapIgnored(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(900, 700)
	if f.session().Misses != 0 || f.r.Locked() || f.r.Hints().Level() != HintNone {
		t.Error("background tap was treated as a miss")
	}
}

func TestRoundMissLocksThenSettles(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhasePlay)

	f.m.HandleClick(400, 100)
	if !f.r.Locked() {
		t.Fatal("not locked after a miss")
	}
	if f.r.Hints().Level() != HintRepeat {
		t.Errorf("hint level = %v, want repeat", f.r.Hints().Level())
	}
	if !slices.Contains(f.voice.sounds, SoundBoing) {
		t.Error("miss sound not played")
	}
	f.m.HandleClick(100, 100)
	if f.r.Picks() != 0 {
		t.Error("tap during settle was accepted")
	}
	f.runUntil(t, 2, func() bool { return !f.r.Locked() })
	f.m.HandleClick(400, 100)
	if !f.r.Glowing() {
		t.Error("second miss did not light the glow hint")
	}
	f.runUntil(t, 2, func() bool { return !f.r.Locked() })
	f.m.HandleClick(100, 100)
	if f.r.Phase() != PhaseCelebrate || f.r.Assisted() {
		t.Errorf("phase %q assisted %v, want celebrate by the player", f.r.Phase(), f.r.Assisted())
	}
}

func TestRoundAutoCompletesWhenIdle(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhasePlay)
	sawPointer := false
	f.runUntil(t, f.r.Hints().MaxIdle()+1, func() bool {
		sawPointer = sawPointer || f.r.Pointing()
		return f.r.Phase() == PhaseCelebrate
	})
	if !f.r.Assisted() || f.session().Assisted != 1 || f.session().Solved != 0 {
		t.Errorf("assisted %v session %+v", f.r.Assisted(), *f.session())
	}
	if !sawPointer {
		t.Error("pointer hint never shown before auto-complete")
	}
	if !f.voice.said("together") {
		t.Error("together line not spoken")
	}
	if !f.r.Prompt().Targets[0].Picked {
		t.Error("auto-complete did not pick the correct target")
	}
}

func TestRoundAutoCompletesAfterMissCeiling(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhasePlay)
	for i := 0; i < 3; i++ {
		f.runUntil(t, 2, func() bool { return !f.r.Locked() })
		f.m.HandleClick(400, 100)
	}
	if f.r.Phase() != PhaseCelebrate || !f.r.Assisted() {
		t.Errorf("phase %q assisted %v after three misses", f.r.Phase(), f.r.Assisted())
	}
	if f.session().Misses != 3 {
		t.Errorf("Misses = %d, want 3", f.session().Misses)
	}
}

func TestRoundKeyAnswers(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1, key: "a"})
	f.toPhase(t, PhasePlay)
	f.m.HandleKey(KeySpace)
	if f.session().Misses != 0 {
		t.Error("named key counted as a miss")
	}
	f.m.HandleKey("b")
	if f.session().Misses != 1 {
		t.Errorf("Misses = %d after a wrong letter, want 1", f.session().Misses)
	}
	f.runUntil(t, 2, func() bool { return !f.r.Locked() })
	f.m.HandleKey("a")
	if f.r.Phase() != PhaseCelebrate {
		t.Errorf("Phase = %q after the right key, want celebrate", f.r.Phase())
	}
	if !f.r.Prompt().Targets[0].Picked {
		t.Error("key answer did not mark the correct target")
	}
}

func TestRoundPickerNotified(t *testing.T) {
	a := &pickerActivity{fakeActivity{prompts: 1}}
	f := newRoundFixture(t, a)
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(100, 100)
	if !slices.Equal(a.picked, []int{1}) {
		t.Errorf("picked = %v, want [1]", a.picked)
	}
}

func TestRoundPickerSilentOnAutoComplete(t *testing.T) {
	a := &pickerActivity{fakeActivity{prompts: 1}}
	f := newRoundFixture(t, a)
	f.toPhase(t, PhasePlay)
	f.toPhase(t, PhaseCelebrate)
	if len(a.picked) != 0 {
		t.Errorf("picker notified during auto-complete: %v", a.picked)
	}
}

func TestRoundInterlude(t *testing.T) {
	a := &interludeActivity{fakeActivity: fakeActivity{prompts: 2}}
	f := newRoundFixture(t, a)
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(100, 100)
	f.toPhase(t, "drop")
	if a.entered != 1 {
		t.Errorf("interlude entered %d times, want 1", a.entered)
	}
	f.toPhase(t, PhasePrompt)
	if f.r.Index() != 1 {
		t.Errorf("Index = %d after interlude, want 1", f.r.Index())
	}
}

func TestRoundZeroLengthInterludeStillAdvances(t *testing.T) {
	a := &interludeActivity{fakeActivity: fakeActivity{prompts: 1}}
	f := newRoundFixture(t, a)
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(100, 100)
	f.toPhase(t, PhaseComplete)
	if a.entered != 1 {
		t.Errorf("interlude entered %d times, want 1", a.entered)
	}
}

func TestRoundExitStopsEverything(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhaseEngage)
	if f.r.Tasks().Len() == 0 {
		t.Fatal("expected a pending task during engage")
	}
	if err := f.m.GoTo("calm"); err != nil {
		t.Fatal(err)
	}
	if f.r.Active() || f.r.Phase() != "" {
		t.Errorf("active %v phase %q after Exit", f.r.Active(), f.r.Phase())
	}
	if f.r.Tasks().Len() != 0 || f.r.Animator().Len() != 0 || f.r.Particles().Len() != 0 {
		t.Error("Exit left tasks, tweens or particles behind")
	}
	pose, total := f.r.Mascot().Pose, f.r.Total()
	f.r.Update(5)
	f.r.HandleClick(100, 100)
	if f.r.Mascot().Pose != pose || f.r.Total() != total {
		t.Error("round changed after Exit")
	}
	if f.r.Picks() != 0 {
		t.Error("input accepted after Exit")
	}
}

func TestRoundReenterResets(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 2})
	f.toPhase(t, PhasePlay)
	f.m.HandleClick(100, 100)
	if err := f.m.GoTo("calm"); err != nil {
		t.Fatal(err)
	}
	if err := f.m.GoTo("fake"); err != nil {
		t.Fatal(err)
	}
	if f.r.Phase() != PhaseBanner || f.r.Index() != 0 || f.r.Picks() != 0 || f.r.Total() != 0 {
		t.Errorf("re-entered round phase %q index %d picks %d", f.r.Phase(), f.r.Index(), f.r.Picks())
	}
	if f.session().Rounds != 2 {
		t.Errorf("Rounds = %d, want 2", f.session().Rounds)
	}
}

func TestRoundOnRoundCompleteOverride(t *testing.T) {
	var done []string
	voice := &fakeVoice{}
	m := NewScreenManager(Context{Voice: voice, OnRoundComplete: func(name string) { done = append(done, name) }})
	r := NewRound(&fakeActivity{prompts: 1}, DefaultConfig())
	m.Register("fake", r)
	if err := m.GoTo("fake"); err != nil {
		t.Fatal(err)
	}
	f := &roundFixture{m: m, r: r, voice: voice}
	f.toPhase(t, PhasePlay)
	m.HandleClick(100, 100)
	f.toPhase(t, PhaseComplete)
	f.run(DefaultConfig().CompleteDuration + 1)
	if !slices.Equal(done, []string{"fake"}) {
		t.Errorf("OnRoundComplete calls = %v, want [fake]", done)
	}
	if m.ActiveName() != "fake" {
		t.Errorf("ActiveName = %q, want fake", m.ActiveName())
	}
}

func TestRoundZeroPhaseDurationsStillAdvance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BannerDuration = 0
	cfg.EngageDuration = 0
	cfg.PromptDuration = -1
	cfg.CelebrateDuration = 0
	m := NewScreenManager(Context{Voice: &fakeVoice{}})
	r := NewRound(&fakeActivity{prompts: 1}, cfg)
	calm := &stubScreen{name: "calm"}
	m.Register("fake", r)
	m.Register("calm", calm)
	if err := m.GoTo("fake"); err != nil {
		t.Fatal(err)
	}
	f := &roundFixture{m: m, r: r, calm: calm}
	f.runUntil(t, 1, func() bool { return r.Phase() == PhasePlay })
	m.HandleClick(100, 100)
	f.runUntil(t, 1, func() bool { return r.Phase() == PhaseComplete })
	f.run(cfg.CompleteDuration + 0.5)
	if calm.entered != 1 {
		t.Errorf("calm entered %d times, want 1", calm.entered)
	}
}

// brokenVoice panics on every call.
type brokenVoice struct{}

func (brokenVoice) PlaySound(string) { panic("no audio device") }
func (brokenVoice) Speak(string)     { panic("no audio device") }

func TestRoundSurvivesPanickingVoice(t *testing.T) {
	m := NewScreenManager(Context{Voice: brokenVoice{}})
	r := NewRound(&fakeActivity{prompts: 1}, DefaultConfig())
	m.Register("fake", r)
	m.Register("calm", &stubScreen{name: "calm"})
	if err := m.GoTo("fake"); err != nil {
		t.Fatal(err)
	}
	f := &roundFixture{m: m, r: r}
	f.toPhase(t, PhasePlay)
	m.HandleClick(100, 100)
	f.toPhase(t, PhaseComplete)
	if m.Context().Session.Solved != 1 {
		t.Errorf("Solved = %d, want 1", m.Context().Session.Solved)
	}
}

func TestRoundSubtitleHidesAfterDuration(t *testing.T) {
	f := newRoundFixture(t, &fakeActivity{prompts: 1})
	f.toPhase(t, PhasePrompt)
	ov := f.m.Context().Overlays.(*OverlayLayer)
	if text, shown := ov.Subtitle(); !shown || text != "Tap the left ball" {
		t.Fatalf("subtitle = %q %v", text, shown)
	}
	f.run(DefaultConfig().SubtitleDuration + 0.1)
	if _, shown := ov.Subtitle(); shown {
		t.Error("subtitle still shown after its duration")
	}
}

func TestRoundRenderByPhase(t *testing.T) {
	a := &fakeActivity{prompts: 1}
	f := newRoundFixture(t, a)
	rec := NewRecorder(1280, 800)
	f.r.Render(rec)
	if a.drawn != 1 {
		t.Errorf("activity drawn %d times, want 1", a.drawn)
	}
	f.toPhase(t, PhasePlay)
	f.run(DefaultConfig().HintTimeouts[0] + DefaultConfig().HintTimeouts[1] + 0.1)
	if !f.r.Glowing() {
		t.Fatal("glow hint not reached")
	}
	rec.Clear()
	f.r.Render(rec)
	if rec.Count("ring") == 0 {
		t.Error("glow hint drew no rings")
	}
}

func TestVerdictString(t *testing.T) {
	if VerdictPartial.String() != "partial" || Verdict(9).String() != "unknown" {
		t.Error("unexpected Verdict names")
	}
}

func TestTargetContains(t *testing.T) {
	c := &Target{X: 10, Y: 10, Radius: 5}
	if !c.Contains(12, 12) || c.Contains(20, 20) {
		t.Error("circle hit test wrong")
	}
	r := &Target{X: 10, Y: 10, Radius: 5, Hit: HitRect{X: 0, Y: 0, Width: 100, Height: 20}}
	if !r.Contains(90, 15) {
		t.Error("Hit override ignored")
	}
}
