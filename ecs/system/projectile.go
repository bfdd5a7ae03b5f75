package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/sensor"
	"go.uber.org/zap"
)

// ProjectileSystem moves projectiles, expires them, and resolves their
// impacts:
//   - lasers, bullets and missiles push props by velocity x ImpulseScale
//   - nukes destroy what they hit unless it is indestructible, then push
//     every prop within the blast radius
//   - cubes arm on impact and, after their delay, teleport the closest
//     targetable or static actor to the saved location
type ProjectileSystem struct {
	missiles    *sensor.MissileRegistry
	destination func() mgl64.Vec3
	logger      *zap.Logger
}

func NewProjectileSystem(missiles *sensor.MissileRegistry, logger *zap.Logger) *ProjectileSystem {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectileSystem{missiles: missiles, logger: logger}
}

// SetCubeDestination makes cubes read the teleport destination when they
// fire instead of using the one stored at spawn.
func (s *ProjectileSystem) SetCubeDestination(fn func() mgl64.Vec3) {
	s.destination = fn
}

func (s *ProjectileSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	dt := w.Delta()
	pw := w.PhysicsWorld()
	ecs.ForEach2(w, component.ProjectileComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, p *component.Projectile, t *component.Transform) {
		if p == nil || t == nil || p.Held {
			return
		}

		if life, ok := ecs.Get(w, e, component.LifetimeComponent.Kind()); ok {
			life.Remaining -= dt
			if life.Remaining <= 0 {
				s.destroy(w, e)
				return
			}
		}

		if cube, ok := ecs.Get(w, e, component.CubeComponent.Kind()); ok && cube.Armed {
			cube.Remaining -= dt
			if cube.Remaining <= 0 {
				s.teleportClosest(w, e, t.Position, s.cubeDestination(cube))
				s.destroy(w, e)
			}
			return
		}

		if homing, ok := ecs.Get(w, e, component.HomingComponent.Kind()); ok && homing.Locked {
			target, alive := ecs.Get(w, ecs.Entity(homing.Target), component.TransformComponent.Kind())
			if alive {
				p.Velocity = steerHoming(p.Velocity, t.Position, target.Position, homing, dt)
			} else {
				homing.Locked = false
			}
		}
		if gravity, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind()); ok {
			p.Velocity[2] -= WorldGravity * gravity.Scale * dt
		}

		prev := t.Position
		next := prev.Add(p.Velocity.Mul(dt))
		if !p.Spent && pw != nil {
			ignore := []ecs.Entity{e, ecs.Entity(p.Owner)}
			if hits := pw.SweepSphere(prev, next, p.Radius, ignore); len(hits) > 0 {
				s.impact(w, e, p, t, hits[0])
				return
			}
		}

		t.Position = next
		pw.Sync(e, next)
	})
}

// steerHoming accelerates v toward target and caps it at the homing
// profile's max speed.
func steerHoming(v, pos, target mgl64.Vec3, h *component.Homing, dt float64) mgl64.Vec3 {
	dir := common.SafeNormal(target.Sub(pos))
	v = v.Add(dir.Mul(h.Accel * dt))
	if h.MaxSpeed > 0 {
		v = common.ClampMagnitude(v, h.MaxSpeed)
	}
	return v
}

func (s *ProjectileSystem) impact(w *ecs.World, e ecs.Entity, p *component.Projectile, t *component.Transform, hit ecs.TraceHit) {
	w.Events().Push(ecs.Event{Type: ecs.EventProjectileImpact, Data: ecs.ImpactEvent{
		Projectile: e,
		Other:      hit.Entity,
		Point:      hit.Point,
		Normal:     hit.Normal,
	}})
	s.logger.Debug("projectile impact",
		zap.String("kind", string(p.Kind)),
		zap.Stringer("projectile", e),
		zap.Stringer("other", hit.Entity))

	switch p.Kind {
	case component.ProjectileCube:
		cube, ok := ecs.Get(w, e, component.CubeComponent.Kind())
		if !ok || ecs.Has(w, hit.Entity, component.CubeComponent.Kind()) {
			s.destroy(w, e)
			return
		}
		cube.Armed = true
		cube.Remaining = cube.Delay
		p.Velocity = mgl64.Vec3{}
		p.Spent = true
	case component.ProjectileNuke:
		if !ecs.Has(w, hit.Entity, component.IndestructibleTagComponent.Kind()) {
			ecs.DestroyEntity(w, hit.Entity)
		}
		if blast, ok := ecs.Get(w, e, component.BlastComponent.Kind()); ok {
			radialImpulse(w, t.Position, blast.Radius, blast.Impulse)
		}
		s.destroy(w, e)
	default:
		if prop, ok := ecs.Get(w, hit.Entity, component.PropComponent.Kind()); ok {
			ApplyImpulse(prop, p.Velocity.Mul(p.ImpulseScale))
		}
		s.destroy(w, e)
	}
}

func (s *ProjectileSystem) cubeDestination(cube *component.Cube) mgl64.Vec3 {
	if s.destination != nil {
		return s.destination()
	}
	return cube.Destination
}

// teleportClosest moves the actor closest to at, among targetable actors
// and static meshes, to dest.
func (s *ProjectileSystem) teleportClosest(w *ecs.World, cube ecs.Entity, at, dest mgl64.Vec3) {
	locate := sensor.WorldLocator(w)
	var candidates []sensor.Candidate
	for _, e := range ecs.Entities(w) {
		if e == cube {
			continue
		}
		if !ecs.Has(w, e, component.TargetableComponent.Kind()) && !ecs.Has(w, e, component.StaticMeshTagComponent.Kind()) {
			continue
		}
		pos, static, ok := locate(e)
		if !ok {
			continue
		}
		candidates = append(candidates, sensor.Candidate{Entity: e, Position: pos, Static: static, Visible: true})
	}

	closest, ok := sensor.FindClosest(cube, at, candidates, nil, true)
	if !ok {
		return
	}
	t, ok := ecs.Get(w, closest.Entity, component.TransformComponent.Kind())
	if !ok {
		return
	}
	t.Position = dest
	w.PhysicsWorld().Sync(closest.Entity, dest)
	if prop, ok := ecs.Get(w, closest.Entity, component.PropComponent.Kind()); ok {
		prop.Velocity = mgl64.Vec3{}
		prop.Grounded = false
	}

	w.Events().Push(ecs.Event{Type: ecs.EventEntityTeleported, Data: closest.Entity})
	s.logger.Debug("cube teleported actor", zap.Stringer("entity", closest.Entity))
}

func (s *ProjectileSystem) destroy(w *ecs.World, e ecs.Entity) {
	s.missiles.Unregister(e)
	ecs.DestroyEntity(w, e)
}

// ApplyImpulse changes a prop's velocity by impulse / mass.
func ApplyImpulse(prop *component.Prop, impulse mgl64.Vec3) {
	if prop == nil {
		return
	}
	mass := prop.Mass
	if mass <= 0 {
		mass = 1
	}
	prop.Velocity = prop.Velocity.Add(impulse.Mul(1 / mass))
	prop.Grounded = false
}

// radialImpulse pushes every prop within radius of center straight away
// from it. Strength is a velocity change, independent of mass.
func radialImpulse(w *ecs.World, center mgl64.Vec3, radius, strength float64) {
	ecs.ForEach2(w, component.PropComponent.Kind(), component.TransformComponent.Kind(), func(e ecs.Entity, prop *component.Prop, t *component.Transform) {
		d := t.Position.Sub(center)
		if d.Len() > radius {
			return
		}
		prop.Velocity = prop.Velocity.Add(common.SafeNormal(d).Mul(strength))
		prop.Grounded = false
	})
}
