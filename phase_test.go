package playtime

import (
	"slices"
	"testing"
)

func TestPhaseMachineTimedChain(t *testing.T) {
	m := NewPhaseMachine()
	var log []string
	m.Define("a", PhaseHandlers{
		Enter:    func() { log = append(log, "enter a") },
		Exit:     func() { log = append(log, "exit a") },
		Duration: 1,
		Next:     "b",
	})
	m.Define("b", PhaseHandlers{Enter: func() { log = append(log, "enter b") }})
	m.Start("a")
	m.Update(0.5)
	if m.Current() != "a" {
		t.Fatalf("Current = %q at 0.5s, want a", m.Current())
	}
	m.Update(0.5)
	if m.Current() != "b" {
		t.Fatalf("Current = %q at 1.0s, want b", m.Current())
	}
	want := []string{"enter a", "exit a", "enter b"}
	if !slices.Equal(log, want) {
		t.Errorf("log = %v, want %v", log, want)
	}
}

func TestPhaseMachineMinimumOneTick(t *testing.T) {
	m := NewPhaseMachine()
	m.Define("a", PhaseHandlers{Duration: 0.01, Next: "b"})
	m.Define("b", PhaseHandlers{Duration: 0.01, Next: "c"})
	m.Define("c", PhaseHandlers{})
	m.Start("a")
	m.Update(10)
	if m.Current() != "b" {
		t.Fatalf("Current = %q after one huge tick, want b", m.Current())
	}
	m.Update(10)
	if m.Current() != "c" {
		t.Fatalf("Current = %q after two ticks, want c", m.Current())
	}
}

func TestPhaseMachineGoFromEnterIsDeferred(t *testing.T) {
	m := NewPhaseMachine()
	entered := []Phase{}
	m.Define("a", PhaseHandlers{Enter: func() { entered = append(entered, "a"); m.Go("b") }})
	m.Define("b", PhaseHandlers{Enter: func() { entered = append(entered, "b") }})
	m.Start("a")
	if m.Current() != "a" {
		t.Fatalf("Current = %q right after Start, want a", m.Current())
	}
	m.Update(0.016)
	if m.Current() != "b" {
		t.Fatalf("Current = %q after Update, want b", m.Current())
	}
	if !slices.Equal(entered, []Phase{"a", "b"}) {
		t.Errorf("entered = %v", entered)
	}
}

func TestPhaseMachineGoFromUpdateSkipsTimedExit(t *testing.T) {
	m := NewPhaseMachine()
	m.Define("a", PhaseHandlers{
		Update:   func(float64) { m.Go("x") },
		Duration: 0.001,
		Next:     "b",
	})
	m.Define("b", PhaseHandlers{})
	m.Define("x", PhaseHandlers{})
	m.Start("a")
	m.Update(1)
	if m.Current() != "x" {
		t.Errorf("Current = %q, want x", m.Current())
	}
}

func TestPhaseMachineGenerationAndStop(t *testing.T) {
	m := NewPhaseMachine()
	exited := false
	m.Define("a", PhaseHandlers{Exit: func() { exited = true }, Accepts: true})
	m.Define("b", PhaseHandlers{})
	m.Start("a")
	g1 := m.Generation()
	if !m.Accepting() {
		t.Error("Accepting = false in an accepting phase")
	}
	m.Go("b")
	if m.Generation() == g1 {
		t.Error("Generation unchanged after Go")
	}
	if m.Accepting() {
		t.Error("Accepting = true in a non-accepting phase")
	}
	g2 := m.Generation()
	m.Stop()
	if !exited {
		t.Error("Exit of a did not run on Go")
	}
	if m.Running() || m.Current() != "" || m.Generation() == g2 {
		t.Errorf("after Stop: running %v current %q gen %d", m.Running(), m.Current(), m.Generation())
	}
	m.Go("a")
	m.Update(1)
	if m.Current() != "" {
		t.Errorf("stopped machine moved to %q", m.Current())
	}
}

func TestPhaseMachineElapsedResets(t *testing.T) {
	m := NewPhaseMachine()
	m.Define("a", PhaseHandlers{})
	m.Define("b", PhaseHandlers{})
	m.Start("a")
	m.Update(0.25)
	m.Update(0.25)
	assertNear(t, "Elapsed", m.Elapsed(), 0.5)
	if m.Ticks() != 2 {
		t.Errorf("Ticks = %d, want 2", m.Ticks())
	}
	m.Go("b")
	if m.Elapsed() != 0 || m.Ticks() != 0 {
		t.Errorf("after Go: elapsed %v ticks %d", m.Elapsed(), m.Ticks())
	}
}

func TestPhaseMachinePhasesSorted(t *testing.T) {
	m := NewPhaseMachine()
	m.Define(PhasePlay, PhaseHandlers{})
	m.Define(PhaseBanner, PhaseHandlers{})
	if got := m.Phases(); !slices.Equal(got, []Phase{PhaseBanner, PhasePlay}) {
		t.Errorf("Phases = %v", got)
	}
	if !m.Defined(PhasePlay) || m.Defined(PhaseNext) {
		t.Error("Defined mismatch")
	}
}
