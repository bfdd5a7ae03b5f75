package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/sensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func addProjectile(w *ecs.World, kind component.ProjectileKind, pos, vel mgl64.Vec3, radius float64) (ecs.Entity, *component.Projectile) {
	e := ecs.CreateEntity(w)
	p := &component.Projectile{Kind: kind, Velocity: vel, Radius: radius, ImpulseScale: 10}
	ecs.MustAdd(w, e, component.ProjectileComponent.Kind(), p)
	ecs.MustAdd(w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	return e, p
}

func addProp(t *testing.T, w *ecs.World, pos mgl64.Vec3, mass float64) (ecs.Entity, *component.Prop) {
	t.Helper()
	e := addActor(t, w, pos, box(50, 50))
	prop := &component.Prop{Mass: mass, Grounded: true}
	ecs.MustAdd(w, e, component.PropComponent.Kind(), prop)
	return e, prop
}

func TestLaserPushesPropAndDies(t *testing.T) {
	w := newTestWorld(t)
	_, prop := addProp(t, w, mgl64.Vec3{500, 0, 100}, 10)
	laser, _ := addProjectile(w, component.ProjectileLaser, mgl64.Vec3{0, 0, 100}, mgl64.Vec3{20000, 0, 0}, 60)
	ecs.MustAdd(w, laser, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 10})

	rec := &eventRecorder{types: []string{ecs.EventProjectileImpact}}
	step(w, 1, NewProjectileSystem(nil, nil), rec)
	require.True(t, ecs.IsAlive(w, laser))
	assert.Zero(t, rec.count(ecs.EventProjectileImpact))

	step(w, 1, NewProjectileSystem(nil, nil), rec)
	assert.False(t, ecs.IsAlive(w, laser))
	assert.Equal(t, 1, rec.count(ecs.EventProjectileImpact))
	assert.InDelta(t, 20000, prop.Velocity.X(), 1e-6, "velocity x 10 over mass 10")
	assert.False(t, prop.Grounded)
}

func TestProjectileLifetimeAndGravity(t *testing.T) {
	w := newTestWorld(t)
	e, p := addProjectile(w, component.ProjectileNuke, mgl64.Vec3{0, 0, 1000}, mgl64.Vec3{100, 0, 0}, 10)
	ecs.MustAdd(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: 1.75})
	ecs.MustAdd(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 0.5})

	step(w, 1, NewProjectileSystem(nil, nil))
	assert.InDelta(t, -WorldGravity*1.75*testDT, p.Velocity.Z(), 1e-9)

	step(w, 30, NewProjectileSystem(nil, nil))
	assert.False(t, ecs.IsAlive(w, e))
}

func TestNukeImpact(t *testing.T) {
	tests := []struct {
		name           string
		indestructible bool
	}{
		{name: "destroys_what_it_hits"},
		{name: "indestructible_survives", indestructible: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWorld(t)
			wall := addActor(t, w, mgl64.Vec3{300, 0, 100}, box(50, 100))
			if tt.indestructible {
				ecs.MustAdd(w, wall, component.IndestructibleTagComponent.Kind(), &component.IndestructibleTag{})
			}
			_, near := addProp(t, w, mgl64.Vec3{200, 500, 100}, 50)
			_, far := addProp(t, w, mgl64.Vec3{200, 3000, 100}, 50)

			nuke, _ := addProjectile(w, component.ProjectileNuke, mgl64.Vec3{0, 0, 100}, mgl64.Vec3{3000, 0, 0}, 20)
			ecs.MustAdd(w, nuke, component.BlastComponent.Kind(), &component.Blast{Radius: 1000, Impulse: 4000})

			step(w, 10, NewProjectileSystem(nil, nil))

			assert.False(t, ecs.IsAlive(w, nuke))
			assert.Equal(t, tt.indestructible, ecs.IsAlive(w, wall))
			assert.InDelta(t, 4000, near.Velocity.Len(), 1e-6, "blast is a velocity change")
			assert.Greater(t, near.Velocity.Y(), 0.0)
			assert.Zero(t, far.Velocity.Len())
		})
	}
}

func TestCubeTeleportsClosestActor(t *testing.T) {
	w := newTestWorld(t)
	dummy := addActor(t, w, mgl64.Vec3{300, 0, 100}, sphere(50))
	ecs.MustAdd(w, dummy, component.TargetableComponent.Kind(), &component.Targetable{})
	pillar := addActor(t, w, mgl64.Vec3{2000, 0, 100}, box(50, 100))
	ecs.MustAdd(w, pillar, component.StaticMeshTagComponent.Kind(), &component.StaticMeshTag{})

	cube, _ := addProjectile(w, component.ProjectileCube, mgl64.Vec3{200, 0, 100}, mgl64.Vec3{1000, 0, 0}, 10)
	state := &component.Cube{Delay: 0.1, Destination: mgl64.Vec3{-500, 0, 100}}
	ecs.MustAdd(w, cube, component.CubeComponent.Kind(), state)

	rec := &eventRecorder{types: []string{ecs.EventEntityTeleported}}
	sys := NewProjectileSystem(nil, nil)
	s := ecs.NewScheduler(sys, rec)
	for i := 0; i < 4 && !state.Armed; i++ {
		s.Step(w, testDT)
	}
	require.True(t, state.Armed)
	require.True(t, ecs.IsAlive(w, cube))

	for i := 0; i < 10; i++ {
		s.Step(w, testDT)
	}
	assert.False(t, ecs.IsAlive(w, cube))
	assert.Equal(t, 1, rec.count(ecs.EventEntityTeleported))

	dt, _ := ecs.Get(w, dummy, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{-500, 0, 100}, dt.Position)
	pt, _ := ecs.Get(w, pillar, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{2000, 0, 100}, pt.Position)

	hit, ok := w.PhysicsWorld().LineTrace(mgl64.Vec3{-800, 0, 100}, mgl64.Vec3{-200, 0, 100}, nil)
	require.True(t, ok, "the physics index follows the teleport")
	assert.Equal(t, dummy, hit.Entity)
}

func TestCubeDestinationOverride(t *testing.T) {
	w := newTestWorld(t)
	dummy := addActor(t, w, mgl64.Vec3{300, 0, 100}, sphere(50))
	ecs.MustAdd(w, dummy, component.TargetableComponent.Kind(), &component.Targetable{})
	cube, _ := addProjectile(w, component.ProjectileCube, mgl64.Vec3{200, 0, 100}, mgl64.Vec3{1000, 0, 0}, 10)
	ecs.MustAdd(w, cube, component.CubeComponent.Kind(), &component.Cube{Delay: 0.1})

	sys := NewProjectileSystem(nil, nil)
	sys.SetCubeDestination(func() mgl64.Vec3 { return mgl64.Vec3{0, 900, 100} })
	step(w, 20, sys)

	dt, _ := ecs.Get(w, dummy, component.TransformComponent.Kind())
	assert.Equal(t, mgl64.Vec3{0, 900, 100}, dt.Position)
}

// missileBuilder mirrors the missile prefab.
func missileBuilder(w *ecs.World, kind component.ProjectileKind) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	p := &component.Projectile{Kind: kind, Speed: 3000, Radius: 60, ImpulseScale: 10}
	ecs.MustAdd(w, e, component.ProjectileComponent.Kind(), p)
	ecs.MustAdd(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: 10})
	if kind == component.ProjectileMissile {
		ecs.MustAdd(w, e, component.HomingComponent.Kind(), &component.Homing{Accel: 2e6, MaxSpeed: 3000})
		ecs.MustAdd(w, e, component.ColliderComponent.Kind(), sphere(60))
	}
	if kind == component.ProjectileCube {
		ecs.MustAdd(w, e, component.CubeComponent.Kind(), &component.Cube{Delay: 0.1})
	}
	return e, nil
}

func newMissileScene(t *testing.T) (*ecs.World, *ProjectileSpawner, *sensor.MissileRegistry, map[string]ecs.Entity) {
	t.Helper()
	w := newTestWorld(t)
	owner := addActor(t, w, mgl64.Vec3{0, 0, 100}, &component.Collider{Radius: 55, HalfHeight: 96})

	ents := map[string]ecs.Entity{"owner": owner}
	ents["far"] = addActor(t, w, mgl64.Vec3{1500, 0, 100}, sphere(50))
	ecs.MustAdd(w, ents["far"], component.HomingTargetTagComponent.Kind(), &component.HomingTargetTag{})
	ents["near"] = addActor(t, w, mgl64.Vec3{800, 300, 100}, sphere(50))
	ecs.MustAdd(w, ents["near"], component.TargetableComponent.Kind(), &component.Targetable{})
	ents["crate"] = addActor(t, w, mgl64.Vec3{500, -300, 100}, box(50, 50))
	ents["behind"] = addActor(t, w, mgl64.Vec3{-400, 0, 100}, sphere(50))
	ecs.MustAdd(w, ents["behind"], component.TargetableComponent.Kind(), &component.Targetable{})

	missiles := sensor.NewMissileRegistry(func(e ecs.Entity) bool { return ecs.IsAlive(w, e) })
	spawner := NewProjectileSpawner(w, SpawnerOptions{
		Owner:    owner,
		Build:    missileBuilder,
		Sensor:   sensor.New(w.PhysicsWorld(), sensor.WorldLocator(w)),
		Missiles: missiles,
		View: func() sensor.View {
			return sensor.View{Origin: mgl64.Vec3{100, 0, 100}, Forward: mgl64.Vec3{1, 0, 0}}
		},
	})
	return w, spawner, missiles, ents
}

func TestMissileLocksOntoClosestVisibleTarget(t *testing.T) {
	w, spawner, missiles, ents := newMissileScene(t)

	handle, ok := spawner.Spawn(characterRequest(component.ProjectileMissile, mgl64.Vec3{200, 0, 100}))
	require.True(t, ok)
	handle.AddVelocity(mgl64.Vec3{0, 0, 50})

	missile := missiles.Active()
	require.Len(t, missile, 1)
	homing, ok := ecs.Get(w, missile[0], component.HomingComponent.Kind())
	require.True(t, ok)
	assert.True(t, homing.Acquired)
	assert.True(t, homing.Locked)
	assert.Equal(t, uint64(ents["near"]), homing.Target)

	p, _ := ecs.Get(w, missile[0], component.ProjectileComponent.Kind())
	assert.Equal(t, uint64(ents["owner"]), p.Owner)
	assert.InDelta(t, 0, p.Velocity.Sub(mgl64.Vec3{3000, 0, 50}).Len(), 1e-9)
	assert.True(t, w.PhysicsWorld().Has(missile[0]))

	_, ok = spawner.Spawn(characterRequest(component.ProjectileMissile, mgl64.Vec3{200, 0, 400}))
	require.True(t, ok)
	assert.Equal(t, 2, missiles.Len())
	second, _ := ecs.Get(w, missiles.Active()[1], component.HomingComponent.Kind())
	assert.Equal(t, uint64(ents["near"]), second.Target)

	step(w, 60, NewProjectileSystem(missiles, nil))
	assert.Zero(t, missiles.Len(), "both missiles home in and are removed on impact")
	assert.True(t, ecs.IsAlive(w, ents["near"]), "missiles only push props")
}

func TestMissileLockOnConeStartsAtView(t *testing.T) {
	cases := []struct {
		name   string
		origin mgl64.Vec3
		want   string
	}{
		{name: "camera_location", origin: mgl64.Vec3{0, 0, 100}, want: "close"},
		{name: "pushed_view_point", origin: mgl64.Vec3{100, 0, 100}, want: "near"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, spawner, missiles, ents := newMissileScene(t)
			ents["close"] = addActor(t, w, mgl64.Vec3{50, 0, 100}, sphere(10))
			ecs.MustAdd(w, ents["close"], component.TargetableComponent.Kind(), &component.Targetable{})
			spawner.view = func() sensor.View {
				return sensor.View{Origin: tc.origin, Forward: mgl64.Vec3{1, 0, 0}}
			}

			_, ok := spawner.Spawn(characterRequest(component.ProjectileMissile, mgl64.Vec3{200, 0, 100}))
			require.True(t, ok)

			homing, _ := ecs.Get(w, missiles.Active()[0], component.HomingComponent.Kind())
			require.True(t, homing.Locked)
			assert.Equal(t, uint64(ents[tc.want]), homing.Target)
		})
	}
}

func characterRequest(kind component.ProjectileKind, at mgl64.Vec3) character.SpawnRequest {
	return character.SpawnRequest{Kind: kind, Location: at}
}

func TestMissileWithoutTargetFliesStraight(t *testing.T) {
	w, spawner, missiles, ents := newMissileScene(t)
	for _, name := range []string{"far", "near"} {
		ecs.DestroyEntity(w, ents[name])
	}

	_, ok := spawner.Spawn(characterRequest(component.ProjectileMissile, mgl64.Vec3{200, 0, 100}))
	require.True(t, ok)
	homing, _ := ecs.Get(w, missiles.Active()[0], component.HomingComponent.Kind())
	assert.True(t, homing.Acquired)
	assert.False(t, homing.Locked, "targets behind the view are outside the cone")
}

func TestHeldCubeThrow(t *testing.T) {
	w, spawner, _, ents := newMissileScene(t)

	held, ok := spawner.Hold(component.ProjectileCube, mgl64.Vec3{0, 0, 500})
	require.True(t, ok)

	var cube ecs.Entity
	ecs.ForEach(w, component.CubeComponent.Kind(), func(e ecs.Entity, c *component.Cube) {
		cube = e
		assert.Equal(t, mgl64.Vec3{0, 0, 500}, c.Destination)
	})
	p, _ := ecs.Get(w, cube, component.ProjectileComponent.Kind())
	require.True(t, p.Held)

	step(w, 5, NewProjectileSystem(nil, nil))
	ct, _ := ecs.Get(w, cube, component.TransformComponent.Kind())
	ot, _ := ecs.Get(w, ents["owner"], component.TransformComponent.Kind())
	assert.Equal(t, ot.Position, ct.Position, "held cubes do not move")

	held.Throw(mgl64.Vec3{100, 0, 100}, common.Rotator{}, mgl64.Vec3{1000, 0, 0})
	assert.False(t, p.Held)
	assert.Equal(t, mgl64.Vec3{1000, 0, 0}, p.Velocity)
	assert.Equal(t, mgl64.Vec3{100, 0, 100}, ct.Position)

	held.Destroy()
	assert.False(t, ecs.IsAlive(w, cube))
}
