package playtime

import (
	"slices"
	"testing"
)

func TestSchedulerRunsInTimeOrder(t *testing.T) {
	s := NewScheduler()
	var got []string
	cur := func() uint64 { return 1 }
	s.After(0.3, 1, func() { got = append(got, "c") })
	s.After(0.1, 1, func() { got = append(got, "a") })
	s.After(0.2, 1, func() { got = append(got, "b") })
	s.After(0.1, 1, func() { got = append(got, "a2") })

	s.Update(0.15, cur)
	if !slices.Equal(got, []string{"a", "a2"}) {
		t.Errorf("after 0.15s ran %v, want [a a2]", got)
	}
	s.Update(1, cur)
	if !slices.Equal(got, []string{"a", "a2", "b", "c"}) {
		t.Errorf("ran %v, want [a a2 b c]", got)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}

func TestSchedulerDropsStaleToken(t *testing.T) {
	s := NewScheduler()
	token := uint64(1)
	ran := false
	s.After(0.5, token, func() { ran = true })
	token = 2
	s.Update(1, func() uint64 { return token })
	if ran {
		t.Error("task ran with a stale token")
	}
	if s.Len() != 0 {
		t.Errorf("stale task still pending: Len = %d", s.Len())
	}
}

func TestSchedulerTokenChangeInvalidatesBatch(t *testing.T) {
	s := NewScheduler()
	token := uint64(1)
	second := false
	s.After(0.1, 1, func() { token++ })
	s.After(0.1, 1, func() { second = true })
	s.Update(0.2, func() uint64 { return token })
	if second {
		t.Error("second task ran after the first changed the token")
	}
}

func TestSchedulerAddFromCallbackWaitsForNextUpdate(t *testing.T) {
	s := NewScheduler()
	cur := func() uint64 { return 0 }
	inner := false
	s.After(0, 0, func() {
		s.After(0, 0, func() { inner = true })
	})
	s.Update(0.1, cur)
	if inner {
		t.Error("task added from a callback ran in the same Update")
	}
	s.Update(0, cur)
	if !inner {
		t.Error("task added from a callback never ran")
	}
}

func TestSchedulerClear(t *testing.T) {
	s := NewScheduler()
	ran := 0
	s.After(0.1, 0, func() { ran++; s.Clear() })
	s.After(0.1, 0, func() { ran++ })
	s.After(5, 0, func() { ran++ })
	s.Update(10, func() uint64 { return 0 })
	if ran != 1 {
		t.Errorf("ran = %d, want 1", ran)
	}
	if s.Len() != 0 {
		t.Errorf("Len = %d, want 0", s.Len())
	}
}
