package ecs

import "github.com/go-gl/mathgl/mgl64"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

const (
	EventProjectileImpact = "projectile_impact"
	EventEntityTeleported = "entity_teleported"
	EventOverlapBegin     = "overlap_begin"
	EventOverlapEnd       = "overlap_end"
)

// ImpactEvent is emitted when a projectile hits an actor.
type ImpactEvent struct {
	Projectile Entity
	Other      Entity
	Point      mgl64.Vec3
	Normal     mgl64.Vec3
}

// OverlapEvent is emitted when an actor starts or stops overlapping a trigger.
type OverlapEvent struct {
	Trigger Entity
	Other   Entity
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Peek returns the queued events of the given type without consuming them.
func (q *EventQueue) Peek(eventType string) []Event {
	if q == nil {
		return nil
	}
	var out []Event
	for _, evt := range q.items {
		if evt.Type == eventType {
			out = append(out, evt)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
