package system

import "github.com/milk9111/gravityfps/ecs"

// TimerSystem fires deferred callbacks whose delay has elapsed. It runs
// first so callbacks armed on tick N fire at the start of a later tick,
// never inside the handler that armed them.
type TimerSystem struct{}

func NewTimerSystem() *TimerSystem {
	return &TimerSystem{}
}

func (s *TimerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	w.Timers().Advance(w.Delta())
}
