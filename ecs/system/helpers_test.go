package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/stretchr/testify/require"
)

const testDT = 1.0 / 60.0

func newTestWorld(t *testing.T) *ecs.World {
	t.Helper()
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w
}

// addActor creates an entity at pos, optionally indexed with a collider.
func addActor(t *testing.T, w *ecs.World, pos mgl64.Vec3, collider *component.Collider) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	ecs.MustAdd(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	if collider != nil {
		ecs.MustAdd(w, e, component.ColliderComponent.Kind(), collider)
		require.NoError(t, w.PhysicsWorld().Attach(e, pos, 0, *collider))
	}
	return e
}

func addFloor(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	return addActor(t, w, mgl64.Vec3{0, 0, -10}, &component.Collider{HalfX: 5000, HalfY: 5000, HalfHeight: 10, Static: true})
}

func box(half, halfHeight float64) *component.Collider {
	return &component.Collider{HalfX: half, HalfY: half, HalfHeight: halfHeight}
}

func sphere(radius float64) *component.Collider {
	return &component.Collider{Radius: radius, HalfHeight: radius}
}

func step(w *ecs.World, ticks int, systems ...ecs.System) {
	s := ecs.NewScheduler(systems...)
	for i := 0; i < ticks; i++ {
		s.Step(w, testDT)
	}
}

// eventRecorder keeps every event of the given types seen before the
// scheduler flushes them.
type eventRecorder struct {
	types  []string
	events []ecs.Event
}

func (r *eventRecorder) Update(w *ecs.World) {
	for _, typ := range r.types {
		r.events = append(r.events, w.Events().Peek(typ)...)
	}
}

func (r *eventRecorder) count(typ string) int {
	n := 0
	for _, evt := range r.events {
		if evt.Type == typ {
			n++
		}
	}
	return n
}
