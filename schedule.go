package playtime

import "sort"

// task is one deferred callback.
type task struct {
	at    float64
	seq   uint64
	token uint64
	fn    func()
}

// Scheduler is a time-ordered queue of deferred callbacks drained once per
// tick by its owner. Every task carries a guard token; when it comes due it
// only runs if the token still matches the owner's current one, so callbacks
// scheduled for a phase (or a screen) that has since ended are discarded
// instead of acting on stale state.
type Scheduler struct {
	now   float64
	seq   uint64
	tasks []task
	due   []task
	epoch uint64 // bumped by Clear so an in-flight Update stops draining
}

// NewScheduler returns an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// After schedules fn to run delay seconds from now if token is still current
// then.
func (s *Scheduler) After(delay float64, token uint64, fn func()) {
	s.seq++
	t := task{at: s.now + max(delay, 0), seq: s.seq, token: token, fn: fn}
	i := sort.Search(len(s.tasks), func(i int) bool {
		o := s.tasks[i]
		return o.at > t.at || (o.at == t.at && o.seq > t.seq)
	})
	s.tasks = append(s.tasks, task{})
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// Update advances the clock by dt and runs every due task whose token equals
// current() at the moment it comes up, so a callback that changes the owner's
// token invalidates the rest of the batch. Tasks scheduled from inside a
// callback run no earlier than the next Update.
func (s *Scheduler) Update(dt float64, current func() uint64) {
	s.now += dt
	n := 0
	for n < len(s.tasks) && s.tasks[n].at <= s.now {
		n++
	}
	if n == 0 {
		return
	}
	s.due = append(s.due[:0], s.tasks[:n]...)
	s.tasks = append(s.tasks[:0], s.tasks[n:]...)
	epoch := s.epoch
	for i := range s.due {
		t := s.due[i]
		s.due[i] = task{}
		if s.epoch != epoch || t.token != current() {
			continue
		}
		t.fn()
	}
}

// Clear drops every pending task.
func (s *Scheduler) Clear() {
	for i := range s.tasks {
		s.tasks[i] = task{}
	}
	s.tasks = s.tasks[:0]
	s.epoch++
}

// Len returns the number of pending tasks.
func (s *Scheduler) Len() int {
	return len(s.tasks)
}
