package ecs

import "github.com/milk9111/gravityfps/ecs/component"

// World owns entities, component storage, the simulation clock, and the
// attached physics world.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
	timers   Timers

	physicsWorld *PhysicsWorld

	tick  uint64
	time  float64
	delta float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// Timers returns the deferred callback queue.
func (w *World) Timers() *Timers {
	if w == nil {
		return nil
	}
	return &w.timers
}

// SetPhysicsWorld attaches a physics world to this ECS world.
func (w *World) SetPhysicsWorld(pw *PhysicsWorld) {
	if w == nil {
		return
	}
	w.physicsWorld = pw
}

// PhysicsWorld returns the attached physics world, if any.
func (w *World) PhysicsWorld() *PhysicsWorld {
	if w == nil {
		return nil
	}
	return w.physicsWorld
}

// Tick returns the number of completed simulation steps.
func (w *World) Tick() uint64 {
	if w == nil {
		return 0
	}
	return w.tick
}

// Time returns simulated seconds since the world was created.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.time
}

// Delta returns the length of the step currently being simulated.
func (w *World) Delta() float64 {
	if w == nil {
		return 0
	}
	return w.delta
}

func (w *World) advance(dt float64) {
	if dt < 0 {
		dt = 0
	}
	w.delta = dt
	w.time += dt
	w.tick++
}

func (w *World) store(id component.ComponentID, create bool) *SparseSet {
	if w.stores == nil {
		if !create {
			return nil
		}
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &SparseSet{}
		w.stores[id] = s
	}
	return s
}
