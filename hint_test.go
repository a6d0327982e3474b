package playtime

import "testing"

func TestHintLadderFirstEscalationAtTimeout(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("red")
	escalations := 0
	for i := 1; i <= 8; i++ {
		if h.Update(0.5) {
			escalations++
			if i != 8 {
				t.Errorf("escalated at step %d (%.1fs), want 4.0s", i, float64(i)*0.5)
			}
		}
	}
	if escalations != 1 {
		t.Errorf("escalations = %d, want 1", escalations)
	}
	if h.Level() != HintRepeat {
		t.Errorf("Level = %v, want repeat", h.Level())
	}
}

func TestHintLadderMaxIdleInOneUpdate(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("x")
	if !h.Update(h.MaxIdle()) {
		t.Fatal("no escalation after MaxIdle")
	}
	if !h.AutoCompleted() || h.Level() != HintAutoComplete {
		t.Errorf("Level = %v auto = %v after one Update(MaxIdle), want auto-complete", h.Level(), h.AutoCompleted())
	}
}

func TestHintLadderLongUpdateCarriesLeftover(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("x")
	// 4s at none plus 5s at repeat, 1s left over at glow.
	if !h.Update(10) {
		t.Fatal("no escalation on a 10s dt")
	}
	if h.Level() != HintGlow {
		t.Fatalf("Level = %v, want glow", h.Level())
	}
	if h.Update(4.9) {
		t.Error("escalated before the glow timeout")
	}
	if !h.Update(0.2) || h.Level() != HintPoint {
		t.Errorf("Level = %v, want point after 6s at glow", h.Level())
	}
}

func TestHintLadderReachesAutoCompleteWhenIdle(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("x")
	prev := h.Level()
	elapsed := 0.0
	for elapsed <= h.MaxIdle()+1 && !h.AutoCompleted() {
		h.Update(1.0 / 60)
		elapsed += 1.0 / 60
		if h.Level() < prev {
			t.Fatalf("level went down from %v to %v", prev, h.Level())
		}
		prev = h.Level()
	}
	if !h.AutoCompleted() {
		t.Fatalf("not auto-completed after %.1fs", elapsed)
	}
	if h.Update(10) {
		t.Error("escalated past auto-complete")
	}
}

func TestHintLadderMissCeiling(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("x")
	if got := h.OnMiss(); got != HintRepeat {
		t.Errorf("first miss level = %v, want repeat", got)
	}
	if got := h.OnMiss(); got != HintGlow {
		t.Errorf("second miss level = %v, want glow", got)
	}
	if got := h.OnMiss(); got != HintAutoComplete {
		t.Errorf("third miss level = %v, want auto-complete", got)
	}
	if !h.AutoCompleted() {
		t.Error("AutoCompleted = false after miss ceiling")
	}
}

func TestHintLadderProgressResetsMissesNotLevel(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("x")
	h.OnMiss()
	h.OnMiss()
	h.OnProgress()
	if h.Misses() != 0 {
		t.Errorf("Misses = %d after progress, want 0", h.Misses())
	}
	if h.Level() != HintGlow {
		t.Errorf("Level = %v after progress, want glow", h.Level())
	}
	if h.Idle() != 0 {
		t.Errorf("Idle = %v after progress, want 0", h.Idle())
	}
	if got := h.OnMiss(); got != HintPoint {
		t.Errorf("miss after progress = %v, want point", got)
	}
}

func TestHintLadderStartPromptResets(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	h.StartPrompt("a")
	h.OnMiss()
	h.OnMiss()
	h.OnMiss()
	h.StartPrompt("b")
	if h.Level() != HintNone || h.AutoCompleted() || h.Misses() != 0 {
		t.Errorf("after StartPrompt: level %v auto %v misses %d", h.Level(), h.AutoCompleted(), h.Misses())
	}
	if h.Concept() != "b" {
		t.Errorf("Concept = %q, want b", h.Concept())
	}
}

func TestHintLadderInactiveUntilStarted(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	if h.Update(100) {
		t.Error("inactive ladder escalated")
	}
	if h.OnMiss() != HintNone {
		t.Error("inactive ladder escalated on miss")
	}
}

func TestHintLevelString(t *testing.T) {
	if HintAutoComplete.String() != "auto-complete" || HintLevel(99).String() != "unknown" {
		t.Error("unexpected HintLevel names")
	}
}

func TestHintLadderMaxIdle(t *testing.T) {
	h := NewHintLadder(DefaultHintConfig())
	assertNear(t, "MaxIdle", h.MaxIdle(), 21)
}
