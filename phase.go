package playtime

import "sort"

// Phase is one named stage of an activity's script.
type Phase string

// Shared phases. Activities may define extra ones (see Interluder).
const (
	PhaseBanner    Phase = "banner"
	PhaseEngage    Phase = "engage"
	PhasePrompt    Phase = "prompt"
	PhasePlay      Phase = "play"
	PhaseCelebrate Phase = "celebrate"
	PhaseNext      Phase = "next"
	PhaseComplete  Phase = "complete"
)

// PhaseHandlers is one row of a PhaseMachine's table.
type PhaseHandlers struct {
	// Enter runs once when the phase becomes current, after the timer reset.
	Enter func()
	// Update runs every tick while the phase is current.
	Update func(dt float64)
	// Exit runs once when the phase is left.
	Exit func()
	// Duration, when > 0, ends the phase after that many seconds and moves
	// to Next. Timed phases always last at least one tick.
	Duration float64
	Next     Phase
	// Accepts marks an input-accepting phase.
	Accepts bool
}

// PhaseMachine sequences phases from a lookup table instead of per-phase
// conditionals. Each transition resets the phase timer and bumps Generation,
// which deferred callbacks use as their guard token.
type PhaseMachine struct {
	table      map[Phase]PhaseHandlers
	current    Phase
	elapsed    float64
	ticks      int
	generation uint64
	running    bool

	inTransition bool
	pending      Phase
	hasPending   bool
}

// NewPhaseMachine returns a machine with an empty table.
func NewPhaseMachine() *PhaseMachine {
	return &PhaseMachine{table: make(map[Phase]PhaseHandlers)}
}

// Define sets the handlers for p, replacing any previous row.
func (m *PhaseMachine) Define(p Phase, h PhaseHandlers) {
	m.table[p] = h
}

// Defined reports whether p has a table row.
func (m *PhaseMachine) Defined(p Phase) bool {
	_, ok := m.table[p]
	return ok
}

// Phases returns the defined phases in name order.
func (m *PhaseMachine) Phases() []Phase {
	out := make([]Phase, 0, len(m.table))
	for p := range m.table {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Start enters p without running any Exit handler.
func (m *PhaseMachine) Start(p Phase) {
	m.running = true
	m.hasPending = false
	m.enter(p)
}

// Go transitions to p. Requests made while a transition is running (from an
// Enter or Exit handler) are applied at the start of the next Update, so no
// phase is skipped within a single tick.
func (m *PhaseMachine) Go(p Phase) {
	if !m.running {
		return
	}
	if m.inTransition {
		m.pending = p
		m.hasPending = true
		return
	}
	m.inTransition = true
	if h, ok := m.table[m.current]; ok && h.Exit != nil {
		h.Exit()
	}
	m.inTransition = false
	m.enter(p)
}

func (m *PhaseMachine) enter(p Phase) {
	debugf("phase %s -> %s", m.current, p)
	m.current = p
	m.elapsed = 0
	m.ticks = 0
	m.generation++
	m.inTransition = true
	if h, ok := m.table[p]; ok && h.Enter != nil {
		h.Enter()
	}
	m.inTransition = false
}

// Update advances the phase timer, runs the current phase's Update handler,
// and applies its timed exit.
func (m *PhaseMachine) Update(dt float64) {
	if !m.running {
		return
	}
	if m.hasPending {
		m.hasPending = false
		m.Go(m.pending)
		return
	}
	m.elapsed += dt
	m.ticks++
	gen := m.generation
	h := m.table[m.current]
	if h.Update != nil {
		h.Update(dt)
	}
	if !m.running || m.generation != gen {
		return
	}
	if h.Duration > 0 && m.elapsed >= h.Duration {
		m.Go(h.Next)
	}
}

// Stop leaves the current phase, running its Exit handler, and halts the
// machine. Generation is bumped so outstanding guard tokens go stale.
func (m *PhaseMachine) Stop() {
	if !m.running {
		return
	}
	if h, ok := m.table[m.current]; ok && h.Exit != nil {
		m.inTransition = true
		h.Exit()
		m.inTransition = false
	}
	m.running = false
	m.hasPending = false
	m.current = ""
	m.generation++
}

// Current returns the current phase ("" when stopped).
func (m *PhaseMachine) Current() Phase { return m.current }

// Elapsed returns seconds spent in the current phase.
func (m *PhaseMachine) Elapsed() float64 { return m.elapsed }

// Ticks returns the number of Updates run in the current phase.
func (m *PhaseMachine) Ticks() int { return m.ticks }

// Generation changes on every transition.
func (m *PhaseMachine) Generation() uint64 { return m.generation }

// Running reports whether the machine has been started and not stopped.
func (m *PhaseMachine) Running() bool { return m.running }

// Accepting reports whether the current phase accepts input.
func (m *PhaseMachine) Accepting() bool {
	return m.running && m.table[m.current].Accepts
}
