package ecs

// System advances one concern of the world by w.Delta().
type System interface {
	Update(w *World)
}

// Scheduler runs systems in registration order once per fixed step.
type Scheduler struct {
	systems []System
}

func NewScheduler(systems ...System) *Scheduler {
	s := &Scheduler{}
	for _, system := range systems {
		s.Add(system)
	}
	return s
}

func (s *Scheduler) Add(system System) {
	if system == nil {
		return
	}
	s.systems = append(s.systems, system)
}

// Step advances the world clock by dt, runs every system, then drops any
// events nobody consumed.
func (s *Scheduler) Step(w *World, dt float64) {
	if s == nil || w == nil {
		return
	}
	w.advance(dt)
	for _, system := range s.systems {
		system.Update(w)
	}
	w.events.flush()
}

func (s *Scheduler) Systems() []System {
	systems := make([]System, 0, len(s.systems))
	return append(systems, s.systems...)
}
