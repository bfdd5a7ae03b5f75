package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

const propRestSpeed = 1.0

// PropSystem moves loose props pushed by impulses: linear damping, gravity
// unless a GravityScale says otherwise, and resting on the floor.
type PropSystem struct{}

func NewPropSystem() *PropSystem {
	return &PropSystem{}
}

func (s *PropSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.PropComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, prop *component.Prop, t *component.Transform) {
		if prop == nil || t == nil {
			return
		}
		if prop.Grounded && prop.Velocity.LenSqr() < propRestSpeed*propRestSpeed {
			prop.Velocity = mgl64.Vec3{}
			return
		}

		gravity := 1.0
		if scale, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			gravity = scale.Scale
		}
		v := prop.Velocity
		v[2] -= WorldGravity * gravity * dt
		if prop.Damping > 0 {
			v = v.Mul(math.Max(0, 1-prop.Damping*dt))
		}

		next := t.Position.Add(v.Mul(dt))
		prop.Grounded = false
		if collider, ok := pw.Collider(e); ok {
			feet := mgl64.Vec3{next.X(), next.Y(), next.Z() - collider.HalfHeight}
			footprint := collider.Radius
			if footprint <= 0 {
				footprint = math.Min(collider.HalfX, collider.HalfY)
			}
			if floor, ok := pw.FloorHeight(feet, footprint, []ecs.Entity{e}); ok && feet.Z() <= floor && v.Z() <= 0 {
				next[2] = floor + collider.HalfHeight
				v[2] = 0
				prop.Grounded = true
			}
		}

		prop.Velocity = v
		t.Position = next
		pw.Sync(e, next)
	})
}
