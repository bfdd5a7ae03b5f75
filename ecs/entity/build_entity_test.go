package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T) *ecs.World {
	t.Helper()
	prefabs.SetDiskRoot("")
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	return w
}

func TestBuildPlayer(t *testing.T) {
	w := newWorld(t)

	e, err := BuildEntity(w, "player.yaml")
	require.NoError(t, err)

	assert.True(t, ecs.Has(w, e, component.PlayerTagComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.InputComponent.Kind()))
	assert.True(t, ecs.Has(w, e, component.HUDComponent.Kind()))

	body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 55.0, body.Radius)
	assert.Equal(t, 96.0, body.HalfHeight)
	assert.Equal(t, mgl64.Vec3{0, 0, 96}, body.Pos)

	fuel, ok := ecs.Get(w, e, component.FuelComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 4000.0, fuel.Current)
	assert.True(t, fuel.CanFly)

	name, ok := ecs.Get(w, e, component.NameComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "player", name.Value)

	assert.False(t, w.PhysicsWorld().Has(e), "building does not attach")
	require.NoError(t, Attach(w, e))
	assert.True(t, w.PhysicsWorld().Has(e))
}

func TestBuildEntityErrors(t *testing.T) {
	w := newWorld(t)

	_, err := BuildEntity(w, "missing.yaml")
	assert.Error(t, err)

	_, err = BuildEntity(nil, "player.yaml")
	assert.Error(t, err)

	_, err = buildFromSpec(w, "bad.yaml", prefabs.EntityBuildSpec{Components: map[string]any{"sprite": map[string]any{}}})
	assert.ErrorContains(t, err, `no builder for component "sprite"`)

	_, err = buildFromSpec(w, "bad.yaml", prefabs.EntityBuildSpec{Components: map[string]any{"character_body": map[string]any{}}})
	assert.ErrorContains(t, err, "round collider")

	assert.Empty(t, ecs.Entities(w), "failed builds leave nothing behind")
}

func TestLoadTuningMatchesDefaults(t *testing.T) {
	prefabs.SetDiskRoot("")
	tuning, err := LoadTuning("player.yaml")
	require.NoError(t, err)
	assert.Equal(t, character.DefaultTuning(), tuning)
}

func TestLoadLevel(t *testing.T) {
	w := newWorld(t)
	lvl, err := prefabs.LoadLevelSpec("arena.yaml")
	require.NoError(t, err)

	player, err := LoadLevelToWorld(w, lvl)
	require.NoError(t, err)
	assert.True(t, ecs.Has(w, player, component.PlayerTagComponent.Kind()))
	assert.True(t, w.PhysicsWorld().Has(player))

	names := map[string]ecs.Entity{}
	ecs.ForEach(w, component.NameComponent.Kind(), func(e ecs.Entity, n *component.Name) {
		names[n.Value] = e
	})
	for _, name := range []string{"floor", "east_wall", "west_wall", "dummy_near", "gate", "gate_plate"} {
		_, ok := names[name]
		assert.True(t, ok, "missing %s", name)
	}

	wall, ok := ecs.Get(w, names["east_wall"], component.TransformComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{2000, 0, 300}, wall.Position)
	assert.True(t, ecs.Has(w, names["east_wall"], component.WallRunTagComponent.Kind()))

	plate, ok := ecs.Get(w, names["gate_plate"], component.PressurePlateComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, "gate", plate.Target)

	collider, ok := w.PhysicsWorld().Collider(names["gate_plate"])
	require.True(t, ok)
	assert.True(t, collider.Sensor)
}

func TestProjectileFactory(t *testing.T) {
	prefabs.SetDiskRoot("")
	factory, err := NewProjectileFactory()
	require.NoError(t, err)
	assert.Equal(t, 5, factory.Kinds())

	tests := []struct {
		kind  component.ProjectileKind
		speed float64
		check func(t *testing.T, w *ecs.World, e ecs.Entity)
	}{
		{kind: component.ProjectileLaser, speed: 20000},
		{
			kind:  component.ProjectileMissile,
			speed: 3000,
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				homing, ok := ecs.Get(w, e, component.HomingComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, 2e6, homing.Accel)
				assert.True(t, ecs.Has(w, e, component.ColliderComponent.Kind()))
			},
		},
		{
			kind: component.ProjectileNuke,
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				blast, ok := ecs.Get(w, e, component.BlastComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, component.Blast{Radius: 1000, Impulse: 4000}, *blast)
			},
		},
		{
			kind:  component.ProjectileCube,
			speed: 10,
			check: func(t *testing.T, w *ecs.World, e ecs.Entity) {
				gravity, ok := ecs.Get(w, e, component.GravityScaleComponent.Kind())
				require.True(t, ok)
				assert.Equal(t, 1.75, gravity.Scale)
				assert.True(t, ecs.Has(w, e, component.CubeComponent.Kind()))
			},
		},
		{kind: component.ProjectileBullet, speed: 10000},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			w := newWorld(t)
			e, err := factory.Build(w, tt.kind)
			require.NoError(t, err)

			p, ok := ecs.Get(w, e, component.ProjectileComponent.Kind())
			require.True(t, ok)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.speed, p.Speed)
			if tt.check != nil {
				tt.check(t, w, e)
			}
		})
	}

	_, err = factory.Build(ecs.NewWorld(), "rocket")
	assert.Error(t, err)
}

func TestSetEntityTransformMovesBody(t *testing.T) {
	w := newWorld(t)
	e, err := BuildEntity(w, "player.yaml")
	require.NoError(t, err)
	require.NoError(t, Attach(w, e))

	to := mgl64.Vec3{300, 100, 96}
	require.NoError(t, SetEntityTransform(w, e, to, common.Rotator{Yaw: 90}))

	body, _ := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
	assert.Equal(t, to, body.Pos)
	assert.Equal(t, 90.0, body.Control.Yaw)

	hits := w.PhysicsWorld().OverlapCapsule(to, 10, 10, nil)
	require.Len(t, hits, 1)
	assert.Equal(t, e, hits[0].Entity)
}
