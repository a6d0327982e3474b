package playtime

// HintLevel is a rung on the hint ladder. Levels only go up within a prompt.
type HintLevel int

const (
	HintNone         HintLevel = iota // prompt just started
	HintRepeat                        // repeat the spoken prompt
	HintGlow                          // glow/pulse on the correct target
	HintPoint                         // directional pointer toward the correct target
	HintAutoComplete                  // resolve the prompt for the player
)

func (l HintLevel) String() string {
	switch l {
	case HintNone:
		return "none"
	case HintRepeat:
		return "repeat"
	case HintGlow:
		return "glow"
	case HintPoint:
		return "point"
	case HintAutoComplete:
		return "auto-complete"
	default:
		return "unknown"
	}
}

// HintConfig tunes escalation.
type HintConfig struct {
	// Timeouts[k] is the idle time in seconds spent at level k before the
	// ladder escalates to level k+1.
	Timeouts [4]float64
	// MissCeiling is the number of consecutive misses that forces
	// auto-complete.
	MissCeiling int
}

// DefaultHintConfig returns the stock escalation timings.
func DefaultHintConfig() HintConfig {
	return HintConfig{
		Timeouts:    [4]float64{4, 5, 6, 6},
		MissCeiling: 3,
	}
}

// HintLadder is the per-prompt liveness mechanism: idle time and misses push
// it up one level at a time until it reaches HintAutoComplete, after which the
// prompt must be resolved on the player's behalf.
type HintLadder struct {
	cfg      HintConfig
	concept  string
	active   bool
	level    HintLevel
	idle     float64 // seconds since the last input or escalation
	sinceIn  float64 // seconds since the last input
	misses   int     // consecutive misses
	autoDone bool
}

// NewHintLadder creates an inactive ladder. Call StartPrompt to arm it.
func NewHintLadder(cfg HintConfig) *HintLadder {
	if cfg.MissCeiling < 1 {
		cfg.MissCeiling = 1
	}
	return &HintLadder{cfg: cfg}
}

// StartPrompt resets the ladder to level 0 for a new prompt.
func (h *HintLadder) StartPrompt(concept string) {
	h.concept = concept
	h.active = true
	h.level = HintNone
	h.idle = 0
	h.sinceIn = 0
	h.misses = 0
	h.autoDone = false
}

// Update accumulates idle time and reports true on a tick where the ladder
// escalates. A long dt may climb several levels at once; leftover idle time
// carries into the level reached.
func (h *HintLadder) Update(dt float64) bool {
	if !h.active || h.level >= HintAutoComplete {
		return false
	}
	h.idle += dt
	h.sinceIn += dt
	escalated := false
	for h.level < HintAutoComplete {
		timeout := h.cfg.Timeouts[h.level]
		if h.idle < timeout {
			break
		}
		h.idle -= timeout
		h.escalate(h.level + 1)
		escalated = true
	}
	return escalated
}

// OnMiss escalates immediately and returns the new level. Reaching the miss
// ceiling jumps straight to auto-complete.
func (h *HintLadder) OnMiss() HintLevel {
	if !h.active || h.level >= HintAutoComplete {
		return h.level
	}
	h.misses++
	h.idle = 0
	h.sinceIn = 0
	next := h.level + 1
	if h.misses >= h.cfg.MissCeiling {
		next = HintAutoComplete
	}
	h.escalate(next)
	return h.level
}

// OnProgress records a correct or partial input: idle time and the
// consecutive-miss count reset, the level does not.
func (h *HintLadder) OnProgress() {
	h.idle = 0
	h.sinceIn = 0
	h.misses = 0
}

func (h *HintLadder) escalate(to HintLevel) {
	if to > HintAutoComplete {
		to = HintAutoComplete
	}
	if to <= h.level {
		return
	}
	h.level = to
	if to == HintAutoComplete {
		h.autoDone = true
	}
	debugf("hint %q -> %s", h.concept, to)
}

// Level returns the current hint level.
func (h *HintLadder) Level() HintLevel { return h.level }

// AutoCompleted reports whether the ladder reached auto-complete for the
// current prompt.
func (h *HintLadder) AutoCompleted() bool { return h.autoDone }

// Concept returns the concept passed to StartPrompt.
func (h *HintLadder) Concept() string { return h.concept }

// Misses returns the consecutive miss count.
func (h *HintLadder) Misses() int { return h.misses }

// Idle returns the seconds since the last input.
func (h *HintLadder) Idle() float64 { return h.sinceIn }

// MaxIdle returns the total idle time after which an untouched prompt is
// auto-completed.
func (h *HintLadder) MaxIdle() float64 {
	var total float64
	for _, t := range h.cfg.Timeouts {
		total += t
	}
	return total
}
