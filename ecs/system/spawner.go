package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/sensor"
	"go.uber.org/zap"
)

// Missile lock-on cone, looking out from the owner's view point.
const (
	lockOnRadius    = 3600.0
	lockOnDistance  = 15e9
	lockOnHalfAngle = 45.0
)

// ProjectileBuilder creates the entity for a projectile kind, with every
// component its prefab declares.
type ProjectileBuilder func(w *ecs.World, kind component.ProjectileKind) (ecs.Entity, error)

// ProjectileSpawner places projectiles for one owner. It satisfies
// character.Spawner.
type ProjectileSpawner struct {
	world    *ecs.World
	owner    ecs.Entity
	build    ProjectileBuilder
	sensor   *sensor.Sensor
	missiles *sensor.MissileRegistry
	view     func() sensor.View
	logger   *zap.Logger
}

type SpawnerOptions struct {
	Owner    ecs.Entity
	Build    ProjectileBuilder
	Sensor   *sensor.Sensor
	Missiles *sensor.MissileRegistry
	// View is where missiles look for a lock.
	View   func() sensor.View
	Logger *zap.Logger
}

func NewProjectileSpawner(w *ecs.World, opts SpawnerOptions) *ProjectileSpawner {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProjectileSpawner{
		world:    w,
		owner:    opts.Owner,
		build:    opts.Build,
		sensor:   opts.Sensor,
		missiles: opts.Missiles,
		view:     opts.View,
		logger:   logger,
	}
}

func (s *ProjectileSpawner) Spawn(req character.SpawnRequest) (character.Projectile, bool) {
	e, p, ok := s.create(req.Kind)
	if !ok {
		return nil, false
	}

	p.Velocity = req.Rotation.Forward().Mul(p.Speed).Add(req.Velocity)
	s.place(e, req.Location, req.Rotation)
	if cube, ok := ecs.Get(s.world, e, component.CubeComponent.Kind()); ok {
		cube.Destination = req.Destination
	}
	if req.Kind == component.ProjectileMissile {
		s.missiles.Register(e)
		s.lockOn(e, req.Location)
	}

	s.logger.Debug("projectile spawned", zap.String("kind", string(req.Kind)), zap.Stringer("entity", e))
	return &projectileHandle{world: s.world, entity: e}, true
}

func (s *ProjectileSpawner) Hold(kind component.ProjectileKind, destination mgl64.Vec3) (character.HeldObject, bool) {
	e, p, ok := s.create(kind)
	if !ok {
		return nil, false
	}
	p.Held = true
	if cube, ok := ecs.Get(s.world, e, component.CubeComponent.Kind()); ok {
		cube.Destination = destination
	}

	var at mgl64.Vec3
	if t, ok := ecs.Get(s.world, s.owner, component.TransformComponent.Kind()); ok {
		at = t.Position
	}
	if !ecs.Has(s.world, e, component.TransformComponent.Kind()) {
		ecs.MustAdd(s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: at})
	}
	return &heldHandle{spawner: s, entity: e}, true
}

func (s *ProjectileSpawner) create(kind component.ProjectileKind) (ecs.Entity, *component.Projectile, bool) {
	if s == nil || s.build == nil {
		return 0, nil, false
	}
	e, err := s.build(s.world, kind)
	if err != nil {
		s.logger.Warn("build projectile", zap.String("kind", string(kind)), zap.Error(err))
		return 0, nil, false
	}
	p, ok := ecs.Get(s.world, e, component.ProjectileComponent.Kind())
	if !ok {
		p = &component.Projectile{Kind: kind}
		ecs.MustAdd(s.world, e, component.ProjectileComponent.Kind(), p)
	}
	p.Kind = kind
	p.Owner = uint64(s.owner)
	return e, p, true
}

// place moves e to loc and indexes it in the physics world when its prefab
// gives it a collider.
func (s *ProjectileSpawner) place(e ecs.Entity, loc mgl64.Vec3, rot common.Rotator) {
	t, ok := ecs.Get(s.world, e, component.TransformComponent.Kind())
	if !ok {
		t = &component.Transform{}
		ecs.MustAdd(s.world, e, component.TransformComponent.Kind(), t)
	}
	t.Position = loc
	t.Rotation = rot

	collider, ok := ecs.Get(s.world, e, component.ColliderComponent.Kind())
	if !ok {
		return
	}
	if err := s.world.PhysicsWorld().Attach(e, loc, rot.Yaw, *collider); err != nil {
		s.logger.Warn("attach projectile collider", zap.Stringer("entity", e), zap.Error(err))
	}
}

// lockOn points a missile's homing at the closest visible targetable actor
// in the owner's view cone. Other missiles and the owner are ignored.
func (s *ProjectileSpawner) lockOn(e ecs.Entity, at mgl64.Vec3) {
	homing, ok := ecs.Get(s.world, e, component.HomingComponent.Kind())
	if !ok || s.sensor == nil || s.view == nil {
		return
	}

	ignore := append([]ecs.Entity{s.owner, e}, s.missiles.Active()...)
	found := s.sensor.Cone(s.view(), lockOnRadius, lockOnDistance, lockOnHalfAngle, ignore)
	found = sensor.Filter(found, func(c sensor.Candidate) bool {
		return sensor.IsTargetable(s.world, c.Entity)
	})

	closest, ok := sensor.FindClosest(e, at, found, nil, true)
	homing.Acquired = true
	if !ok {
		return
	}
	homing.Target = uint64(closest.Entity)
	homing.Locked = true
	s.logger.Debug("missile locked on", zap.Stringer("missile", e), zap.Stringer("target", closest.Entity))
}

type projectileHandle struct {
	world  *ecs.World
	entity ecs.Entity
}

func (h *projectileHandle) AddVelocity(v mgl64.Vec3) {
	if p, ok := ecs.Get(h.world, h.entity, component.ProjectileComponent.Kind()); ok {
		p.Velocity = p.Velocity.Add(v)
	}
}

type heldHandle struct {
	spawner *ProjectileSpawner
	entity  ecs.Entity
}

func (h *heldHandle) Throw(location mgl64.Vec3, rotation common.Rotator, velocity mgl64.Vec3) {
	p, ok := ecs.Get(h.spawner.world, h.entity, component.ProjectileComponent.Kind())
	if !ok {
		return
	}
	p.Held = false
	p.Velocity = velocity
	h.spawner.place(h.entity, location, rotation)
}

func (h *heldHandle) Destroy() {
	ecs.DestroyEntity(h.spawner.world, h.entity)
}
