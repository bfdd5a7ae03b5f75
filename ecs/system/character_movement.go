package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
)

// WorldGravity is the downward acceleration, in cm/s², at gravity scale 1.
const WorldGravity = 980.0

// CharacterMovementSystem integrates every CharacterBody once per tick:
// queued launches and jumps, walking and air control, gravity, the plane
// constraint, then collision against the physics world.
type CharacterMovementSystem struct{}

func NewCharacterMovementSystem() *CharacterMovementSystem {
	return &CharacterMovementSystem{}
}

func (s *CharacterMovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	pw := w.PhysicsWorld()
	ecs.ForEach(w, component.CharacterBodyComponent.Kind(), func(e ecs.Entity, b *component.CharacterBody) {
		if b == nil {
			return
		}

		input := common.Flatten(b.MoveInput)
		b.MoveInput = mgl64.Vec3{}
		if input.Len() > 1 {
			input = input.Normalize()
		}

		v := b.Vel
		if b.LaunchQueued {
			v = applyLaunch(v, b.LaunchVel, b.LaunchXY, b.LaunchZ)
			b.LaunchQueued = false
			b.Falling = true
		}
		if b.JumpPending && !b.Falling && !b.Crouched {
			v[2] = b.JumpZ
			b.JumpPending = false
			b.Falling = true
		}

		if b.Falling {
			v = airControl(v, input, b.WalkMax, b.Acceleration*b.AirControl*dt)
			v[2] -= WorldGravity * b.Gravity * dt
		} else {
			rate := b.Acceleration
			if common.IsZero(input) {
				rate = b.BrakingDecel
			}
			v = moveToward(common.Flatten(v), input.Mul(b.WalkMax), rate*dt)
		}

		if b.PlaneConstrained && !common.IsZero(b.PlaneNormal) {
			v = v.Sub(b.PlaneNormal.Mul(v.Dot(b.PlaneNormal)))
		}

		next := b.Pos.Add(v.Mul(dt))
		if pw != nil {
			next, v = resolveWalls(pw, e, next, v, b.Radius, b.HalfHeight)
			next, v = land(pw, e, b, next, v)
		}

		b.Pos = next
		b.Vel = v
		if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
			t.Position = next
			t.Rotation = common.Rotator{Yaw: b.Control.Yaw}
		}
		pw.Sync(e, next)
	})
}

func applyLaunch(v, launch mgl64.Vec3, overrideXY, overrideZ bool) mgl64.Vec3 {
	if overrideXY {
		v[0], v[1] = launch.X(), launch.Y()
	} else {
		v[0] += launch.X()
		v[1] += launch.Y()
	}
	if overrideZ {
		v[2] = launch.Z()
	} else {
		v[2] += launch.Z()
	}
	return v
}

// airControl steers the horizontal velocity without letting input push it
// past max(walkMax, current speed).
func airControl(v, input mgl64.Vec3, walkMax, accel float64) mgl64.Vec3 {
	if common.IsZero(input) || accel <= 0 {
		return v
	}
	horizontal := common.Flatten(v)
	limit := math.Max(walkMax, horizontal.Len())
	horizontal = common.ClampMagnitude(horizontal.Add(input.Mul(accel)), limit)
	return mgl64.Vec3{horizontal.X(), horizontal.Y(), v.Z()}
}

func moveToward(from, to mgl64.Vec3, step float64) mgl64.Vec3 {
	delta := to.Sub(from)
	dist := delta.Len()
	if dist <= step || dist <= common.Epsilon {
		return to
	}
	return from.Add(delta.Mul(step / dist))
}

// resolveWalls pushes the capsule out of blocking actors it overlaps
// sideways and removes the velocity component into them.
func resolveWalls(pw *ecs.PhysicsWorld, e ecs.Entity, pos, v mgl64.Vec3, radius, halfHeight float64) (mgl64.Vec3, mgl64.Vec3) {
	if radius <= 0 {
		return pos, v
	}
	for _, hit := range pw.OverlapCapsule(pos, radius, halfHeight, []ecs.Entity{e}) {
		if c, ok := pw.Collider(hit.Entity); !ok || c.Sensor {
			continue
		}
		if !common.NearlyZero(hit.Normal.Z()) {
			if hit.Normal.Z() < 0 && v.Z() > 0 {
				v[2] = 0
			}
			continue
		}
		if depth := radius - hit.Distance; depth > 0 {
			pos = pos.Add(hit.Normal.Mul(depth))
		}
		if into := v.Dot(hit.Normal); into < 0 {
			v = v.Sub(hit.Normal.Mul(into))
		}
	}
	return pos, v
}

// land snaps the body onto the floor under it. Walking bodies follow steps
// down up to StepHeight; falling bodies land once their feet reach the top.
func land(pw *ecs.PhysicsWorld, e ecs.Entity, b *component.CharacterBody, pos, v mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	feet := mgl64.Vec3{pos.X(), pos.Y(), pos.Z() - b.HalfHeight}
	floor, ok := pw.FloorHeight(feet, b.Radius, []ecs.Entity{e})

	snap := 0.0
	if !b.Falling {
		snap = ecs.StepHeight
	}
	if !ok || feet.Z() > floor+snap || v.Z() > 0 {
		b.Falling = true
		return pos, v
	}

	pos[2] = floor + b.HalfHeight
	v[2] = 0
	b.Falling = false
	return pos, v
}
