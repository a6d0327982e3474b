package playtime

import (
	"fmt"
	"sort"
)

// Screen is a top-level mode of the application: an activity round, the
// title, the calm reset screen.
type Screen interface {
	Enter(ctx *Context)
	Exit()
	Update(dt float64)
	Render(s Surface)
	HandleClick(x, y float64)
	HandleKey(k Key)
}

// Voice plays sound effects and speech. Calls are fire-and-forget: an
// implementation must not block, and failures stay inside it.
type Voice interface {
	PlaySound(id string)
	Speak(text string)
}

// NopVoice is a silent Voice.
type NopVoice struct{}

func (NopVoice) PlaySound(string) {}
func (NopVoice) Speak(string)     {}

// Session is the mutable play record shared by every screen. Storage and
// durability belong to the host.
type Session struct {
	Turn                int // prompts started
	Rounds              int // rounds entered
	ActivitiesCompleted int
	Solved              int // prompts solved by the player
	Assisted            int // prompts resolved by auto-complete
	Misses              int
}

// Context is handed to every screen on Enter.
type Context struct {
	Manager   *ScreenManager
	Voice     Voice
	Overlays  Overlays
	Session   *Session
	SpawnRate *SpawnRate
	Config    Config
	// OnRoundComplete, when set, replaces the default completion handling
	// (GoTo Config.CalmScreen).
	OnRoundComplete func(name string)
}

func (c *Context) fillDefaults() {
	if c.Voice == nil {
		c.Voice = NopVoice{}
	}
	if c.Config == (Config{}) {
		c.Config = DefaultConfig()
	}
	if c.Overlays == nil {
		c.Overlays = NewOverlayLayer(c.Config.Width, c.Config.Height)
	}
	if c.Session == nil {
		c.Session = &Session{}
	}
	if c.SpawnRate == nil {
		c.SpawnRate = NewSpawnRate()
	}
}

// Speak hands text to the Voice. A panicking Voice is logged and ignored.
func (c *Context) Speak(text string) {
	v := c.Voice
	if v == nil || text == "" {
		return
	}
	safeCall("speak", func() { v.Speak(text) })
}

// PlaySound plays a sound effect, logging and ignoring a panicking Voice.
func (c *Context) PlaySound(id string) {
	v := c.Voice
	if v == nil {
		return
	}
	safeCall("sound "+id, func() { v.PlaySound(id) })
}

// maxChainedTransitions bounds GoTo requests chained from Enter handlers.
const maxChainedTransitions = 8

// ScreenManager owns the registered screens and exactly one active screen.
// It holds no game state; Update, Render and input are pure delegation.
type ScreenManager struct {
	ctx        *Context
	screens    map[string]Screen
	active     Screen
	activeName string

	dispatching bool
	pending     string
	hasPending  bool
}

// NewScreenManager creates a manager. Missing collaborators in ctx are
// filled with defaults: a silent voice, an OverlayLayer, a fresh Session and
// SpawnRate, and DefaultConfig when Config is zero.
func NewScreenManager(ctx Context) *ScreenManager {
	ctx.fillDefaults()
	m := &ScreenManager{
		ctx:     &ctx,
		screens: make(map[string]Screen),
	}
	m.ctx.Manager = m
	return m
}

// Context returns the shared context passed to screens.
func (m *ScreenManager) Context() *Context { return m.ctx }

// Register adds a screen under name, replacing any previous one.
func (m *ScreenManager) Register(name string, s Screen) {
	m.screens[name] = s
}

// Has reports whether name is registered.
func (m *ScreenManager) Has(name string) bool {
	_, ok := m.screens[name]
	return ok
}

// Names returns the registered screen names in sorted order.
func (m *ScreenManager) Names() []string {
	out := make([]string, 0, len(m.screens))
	for n := range m.screens {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Active returns the active screen, or nil.
func (m *ScreenManager) Active() Screen { return m.active }

// ActiveName returns the active screen's name, or "".
func (m *ScreenManager) ActiveName() string { return m.activeName }

// GoTo makes name the active screen: the outgoing screen's Exit runs, every
// transient overlay is hidden, then the incoming screen's Enter runs. When
// called while the manager is dispatching (from a screen's Update, input
// handler, Enter or Exit) the switch is deferred until that dispatch returns.
func (m *ScreenManager) GoTo(name string) error {
	next, ok := m.screens[name]
	if !ok {
		return fmt.Errorf("goto %q: screen not registered", name)
	}
	if m.dispatching {
		m.pending = name
		m.hasPending = true
		return nil
	}
	m.switchTo(name, next)
	m.flush()
	return nil
}

func (m *ScreenManager) switchTo(name string, next Screen) {
	debugf("screen %q -> %q", m.activeName, name)
	m.dispatching = true
	if m.active != nil {
		m.active.Exit()
	}
	m.ctx.Overlays.HideBanner()
	m.ctx.Overlays.HidePrompt()
	m.ctx.Overlays.HideSubtitle()
	m.active = next
	m.activeName = name
	next.Enter(m.ctx)
	m.dispatching = false
}

// flush applies deferred GoTo requests.
func (m *ScreenManager) flush() {
	for hops := 0; m.hasPending; hops++ {
		if hops >= maxChainedTransitions {
			warnf("screen transitions chained more than %d times, dropping %q", maxChainedTransitions, m.pending)
			m.hasPending = false
			return
		}
		name := m.pending
		m.hasPending = false
		m.switchTo(name, m.screens[name])
	}
}

// dispatch runs fn against the active screen with GoTo deferred.
func (m *ScreenManager) dispatch(fn func(s Screen)) {
	if m.active == nil {
		return
	}
	if m.dispatching {
		fn(m.active)
		return
	}
	m.dispatching = true
	fn(m.active)
	m.dispatching = false
	m.flush()
}

// Update advances the active screen by dt seconds.
func (m *ScreenManager) Update(dt float64) {
	m.dispatch(func(s Screen) { s.Update(dt) })
	if r, ok := m.ctx.Overlays.(interface{ Update(float64) }); ok {
		r.Update(dt)
	}
}

// Render draws the active screen, then the overlays on top.
func (m *ScreenManager) Render(s Surface) {
	if m.active != nil {
		m.active.Render(s)
	}
	if r, ok := m.ctx.Overlays.(interface{ Render(Surface) }); ok {
		r.Render(s)
	}
}

// HandleClick forwards a click in logical coordinates to the active screen.
func (m *ScreenManager) HandleClick(x, y float64) {
	m.dispatch(func(s Screen) { s.HandleClick(x, y) })
}

// HandleKey forwards a key press to the active screen.
func (m *ScreenManager) HandleKey(k Key) {
	m.dispatch(func(s Screen) { s.HandleKey(k) })
}
