package core

// Scheduler advances every active transition once per tick.
// It is not safe for concurrent use; the host drives it from one goroutine.
type Scheduler struct {
	active []Transition
	epoch  uint64
	ticks  uint64
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Start adds t to the active set. Transitions started during a tick first
// advance on the following tick.
func (s *Scheduler) Start(t Transition) {
	s.active = append(s.active, t)
}

// Tick advances all transitions by dt seconds, dropping finished ones.
func (s *Scheduler) Tick(dt float64) {
	s.ticks++
	current := s.active
	s.active = nil
	epoch := s.epoch

	keep := current[:0]
	for _, t := range current {
		done := t.Advance(dt)
		if s.epoch != epoch {
			// Cleared mid-tick: drop everything started before the clear.
			return
		}
		if !done {
			keep = append(keep, t)
		}
	}
	s.active = append(keep, s.active...)
}

// Clear cancels every active transition without running completion.
func (s *Scheduler) Clear() {
	s.active = nil
	s.epoch++
}

// Active returns the number of running transitions.
func (s *Scheduler) Active() int {
	return len(s.active)
}

// Ticks returns how many ticks have run.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}
