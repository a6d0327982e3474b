package playtime

import (
	"slices"
	"testing"
)

// countingOverlays counts hide calls per slot.
type countingOverlays struct {
	log                      *[]string
	banner, prompt, subtitle int
}

func (o *countingOverlays) ShowBanner(string)   {}
func (o *countingOverlays) ShowPrompt(string)   {}
func (o *countingOverlays) ShowSubtitle(string) {}

func (o *countingOverlays) HideBanner() {
	o.banner++
	*o.log = append(*o.log, "hide banner")
}

func (o *countingOverlays) HidePrompt() {
	o.prompt++
	*o.log = append(*o.log, "hide prompt")
}

func (o *countingOverlays) HideSubtitle() {
	o.subtitle++
	*o.log = append(*o.log, "hide subtitle")
}

func TestScreenManagerExitBeforeEnter(t *testing.T) {
	var log []string
	ov := &countingOverlays{log: &log}
	m := NewScreenManager(Context{Overlays: ov})
	a := &stubScreen{name: "a", log: &log}
	b := &stubScreen{name: "b", log: &log}
	m.Register("a", a)
	m.Register("b", b)

	if err := m.GoTo("a"); err != nil {
		t.Fatal(err)
	}
	log = log[:0]
	ov.banner, ov.prompt, ov.subtitle = 0, 0, 0

	if err := m.GoTo("b"); err != nil {
		t.Fatal(err)
	}
	want := []string{"exit a", "hide banner", "hide prompt", "hide subtitle", "enter b"}
	if !slices.Equal(log, want) {
		t.Errorf("transition = %v, want %v", log, want)
	}
	if ov.banner != 1 || ov.prompt != 1 || ov.subtitle != 1 {
		t.Errorf("hides = %d %d %d, want 1 each", ov.banner, ov.prompt, ov.subtitle)
	}
	if m.ActiveName() != "b" || m.Active() != Screen(b) {
		t.Errorf("active = %q", m.ActiveName())
	}
}

func TestScreenManagerUnknownScreen(t *testing.T) {
	m := NewScreenManager(Context{})
	a := &stubScreen{name: "a"}
	m.Register("a", a)
	if err := m.GoTo("a"); err != nil {
		t.Fatal(err)
	}
	if err := m.GoTo("nope"); err == nil {
		t.Fatal("GoTo of an unregistered screen returned nil")
	}
	if m.ActiveName() != "a" || a.exited != 0 {
		t.Error("failed GoTo disturbed the active screen")
	}
}

func TestScreenManagerGoToDuringDispatchIsDeferred(t *testing.T) {
	var log []string
	m := NewScreenManager(Context{})
	b := &stubScreen{name: "b", log: &log}
	a := &stubScreen{name: "a", log: &log}
	a.onClick = func() {
		if err := m.GoTo("b"); err != nil {
			t.Error(err)
		}
		log = append(log, "click returns")
	}
	m.Register("a", a)
	m.Register("b", b)
	if err := m.GoTo("a"); err != nil {
		t.Fatal(err)
	}
	log = log[:0]
	m.HandleClick(1, 1)
	want := []string{"click returns", "exit a", "enter b"}
	if !slices.Equal(log, want) {
		t.Errorf("order = %v, want %v", log, want)
	}
}

func TestScreenManagerGoToFromEnterChains(t *testing.T) {
	m := NewScreenManager(Context{})
	c := &stubScreen{name: "c"}
	b := &stubScreen{name: "b", onEnter: func(*Context) { _ = m.GoTo("c") }}
	m.Register("b", b)
	m.Register("c", c)
	if err := m.GoTo("b"); err != nil {
		t.Fatal(err)
	}
	if m.ActiveName() != "c" || b.exited != 1 || c.entered != 1 {
		t.Errorf("active %q, b exited %d, c entered %d", m.ActiveName(), b.exited, c.entered)
	}
}

func TestScreenManagerChainLimit(t *testing.T) {
	m := NewScreenManager(Context{})
	ping := &stubScreen{name: "ping"}
	pong := &stubScreen{name: "pong"}
	ping.onEnter = func(*Context) { _ = m.GoTo("pong") }
	pong.onEnter = func(*Context) { _ = m.GoTo("ping") }
	m.Register("ping", ping)
	m.Register("pong", pong)
	if err := m.GoTo("ping"); err != nil {
		t.Fatal(err)
	}
	if total := ping.entered + pong.entered; total > maxChainedTransitions+1 {
		t.Errorf("%d enters, want at most %d", total, maxChainedTransitions+1)
	}
}

func TestScreenManagerDelegates(t *testing.T) {
	m := NewScreenManager(Context{})
	m.Update(1)
	m.HandleClick(0, 0)
	m.Render(NewRecorder(10, 10))

	a := &stubScreen{name: "a"}
	m.Register("a", a)
	if err := m.GoTo("a"); err != nil {
		t.Fatal(err)
	}
	m.Update(0.1)
	m.HandleClick(3, 4)
	m.HandleKey("z")
	if a.updates != 1 || a.clicks != 1 || !slices.Equal(a.keys, []Key{"z"}) {
		t.Errorf("updates %d clicks %d keys %v", a.updates, a.clicks, a.keys)
	}
}

func TestScreenManagerDefaults(t *testing.T) {
	m := NewScreenManager(Context{})
	ctx := m.Context()
	if ctx.Voice == nil || ctx.Overlays == nil || ctx.Session == nil || ctx.SpawnRate == nil {
		t.Fatal("missing default collaborators")
	}
	if ctx.Config != DefaultConfig() {
		t.Error("zero Config not replaced by DefaultConfig")
	}
	if ctx.Manager != m {
		t.Error("Context.Manager not set")
	}
	m.Register("b", &stubScreen{})
	m.Register("a", &stubScreen{})
	if got := m.Names(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Names = %v", got)
	}
}

func TestOverlayLayerFades(t *testing.T) {
	l := NewOverlayLayer(1280, 800)
	l.ShowBanner("Hi")
	rec := NewRecorder(1280, 800)
	l.Render(rec)
	if rec.HasText("Hi") {
		t.Error("banner drawn before fading in")
	}
	l.Update(1)
	l.Render(rec)
	if !rec.HasText("Hi") {
		t.Error("banner not drawn after fading in")
	}
	l.HideBanner()
	l.Update(1)
	rec.Clear()
	l.Render(rec)
	if rec.HasText("Hi") {
		t.Error("banner drawn after fading out")
	}
	if text, shown := l.Banner(); text != "Hi" || shown {
		t.Errorf("Banner = %q %v", text, shown)
	}
}
