package entity

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/common"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/prefabs"
)

type entityPrefabSpec = prefabs.EntityBuildSpec

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":         addPlayerTag,
	"targetable":         addTargetable,
	"homing_target_tag":  addHomingTargetTag,
	"wall_run_tag":       addWallRunTag,
	"indestructible_tag": addIndestructibleTag,
	"static_mesh_tag":    addStaticMeshTag,
	"name":               addName,
	"transform":          addTransform,
	"collider":           addCollider,
	"character_body":     addCharacterBody,
	"fuel":               addFuel,
	"radar":              addRadar,
	"input":              addInput,
	"hud":                addHUD,
	"projectile":         addProjectile,
	"lifetime":           addLifetime,
	"homing":             addHoming,
	"gravity_scale":      addGravityScale,
	"blast":              addBlast,
	"cube":               addCube,
	"prop":               addProp,
	"pickup":             addPickup,
	"door":               addDoor,
	"pressure_plate":     addPressurePlate,
}

// character_body reads transform and collider, so both come first.
var componentBuildOrder = []string{
	"player_tag",
	"targetable",
	"homing_target_tag",
	"wall_run_tag",
	"indestructible_tag",
	"static_mesh_tag",
	"name",
	"transform",
	"collider",
	"character_body",
	"fuel",
	"radar",
	"input",
	"hud",
	"projectile",
	"lifetime",
	"homing",
	"gravity_scale",
	"blast",
	"cube",
	"prop",
	"pickup",
	"door",
	"pressure_plate",
}

// BuildEntity creates an entity from a prefab. The entity is not indexed in
// the physics world; see Attach.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	return buildFromSpec(w, prefabPath, spec)
}

func buildFromSpec(w *ecs.World, prefabPath string, spec entityPrefabSpec) (ecs.Entity, error) {
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components)+1)
	for k, v := range spec.Components {
		remaining[k] = v
	}
	if _, ok := remaining["name"]; !ok && spec.Name != "" {
		remaining["name"] = spec.Name
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform moves e, keeping its character body in step.
func SetEntityTransform(w *ecs.World, e ecs.Entity, pos mgl64.Vec3, rot common.Rotator) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{}
		if err := ecs.Add(w, e, component.TransformComponent.Kind(), t); err != nil {
			return err
		}
	}
	t.Position = pos
	t.Rotation = rot

	if body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind()); ok {
		body.Pos = pos
		body.Control = rot
	}
	w.PhysicsWorld().Sync(e, pos)
	return nil
}

// Attach indexes e's collider in the world's physics world at its
// transform.
func Attach(w *ecs.World, e ecs.Entity) error {
	collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok {
		return nil
	}
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return fmt.Errorf("attach %s: collider without transform", e)
	}
	return w.PhysicsWorld().Attach(e, t.Position, t.Rotation.Yaw, *collider)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTargetable(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.TargetableComponent.Kind(), &component.Targetable{})
}

func addHomingTargetTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HomingTargetTagComponent.Kind(), &component.HomingTargetTag{})
}

func addWallRunTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.WallRunTagComponent.Kind(), &component.WallRunTag{})
}

func addIndestructibleTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.IndestructibleTagComponent.Kind(), &component.IndestructibleTag{})
}

func addStaticMeshTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.StaticMeshTagComponent.Kind(), &component.StaticMeshTag{})
}

func addName(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	name, ok := raw.(string)
	if !ok {
		return fmt.Errorf("name must be a string, got %T", raw)
	}
	return ecs.Add(w, e, component.NameComponent.Kind(), &component.Name{Value: name})
}

type transformSpec = prefabs.TransformComponentSpec

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[transformSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: mgl64.Vec3{spec.X, spec.Y, spec.Z},
		Rotation: common.Rotator{Pitch: spec.Pitch, Yaw: spec.Yaw},
	})
}

type colliderSpec = prefabs.ColliderComponentSpec

func addCollider(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[colliderSpec](raw)
	if err != nil {
		return fmt.Errorf("decode collider spec: %w", err)
	}
	collider := component.Collider{
		Radius:     spec.Radius,
		HalfX:      spec.HalfX,
		HalfY:      spec.HalfY,
		HalfHeight: spec.HalfHeight,
		Static:     spec.Static,
		Sensor:     spec.Sensor,
	}
	if !collider.Valid() {
		return fmt.Errorf("collider has no extent")
	}
	return ecs.Add(w, e, component.ColliderComponent.Kind(), &collider)
}

type characterBodySpec = prefabs.CharacterBodyComponentSpec

func addCharacterBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[characterBodySpec](raw)
	if err != nil {
		return fmt.Errorf("decode character_body spec: %w", err)
	}
	collider, ok := ecs.Get(w, e, component.ColliderComponent.Kind())
	if !ok || collider.Radius <= 0 {
		return fmt.Errorf("character_body requires a round collider on the same entity")
	}

	body := &component.CharacterBody{
		Gravity:      1,
		Radius:       collider.Radius,
		HalfHeight:   collider.HalfHeight,
		Acceleration: spec.Acceleration,
		BrakingDecel: spec.BrakingDecel,
		AirControl:   spec.AirControl,
	}
	if t, ok := ecs.Get(w, e, component.TransformComponent.Kind()); ok {
		body.Pos = t.Position
		body.Control = t.Rotation
	}
	return ecs.Add(w, e, component.CharacterBodyComponent.Kind(), body)
}

type fuelSpec = prefabs.FuelComponentSpec

func addFuel(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[fuelSpec](raw)
	if err != nil {
		return fmt.Errorf("decode fuel spec: %w", err)
	}
	if spec.Max <= 0 {
		return fmt.Errorf("fuel max must be positive, got %v", spec.Max)
	}
	return ecs.Add(w, e, component.FuelComponent.Kind(), &component.Fuel{
		Current: spec.Max,
		Max:     spec.Max,
		Cost:    spec.Cost,
		CanFly:  true,
	})
}

type radarSpec = prefabs.RadarComponentSpec

func addRadar(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[radarSpec](raw)
	if err != nil {
		return fmt.Errorf("decode radar spec: %w", err)
	}
	return ecs.Add(w, e, component.RadarComponent.Kind(), &component.Radar{
		Range:        spec.Range,
		WidgetRadius: spec.WidgetRadius,
		Interval:     spec.Interval,
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addHUD(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.HUDComponent.Kind(), &component.HUD{})
}

type projectileSpec = prefabs.ProjectileComponentSpec

func addProjectile(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[projectileSpec](raw)
	if err != nil {
		return fmt.Errorf("decode projectile spec: %w", err)
	}
	return ecs.Add(w, e, component.ProjectileComponent.Kind(), &component.Projectile{
		Kind:         component.ProjectileKind(spec.Kind),
		Speed:        spec.Speed,
		Radius:       spec.Radius,
		ImpulseScale: spec.ImpulseScale,
	})
}

type lifetimeSpec = prefabs.LifetimeComponentSpec

func addLifetime(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[lifetimeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode lifetime spec: %w", err)
	}
	return ecs.Add(w, e, component.LifetimeComponent.Kind(), &component.Lifetime{Remaining: spec.Seconds})
}

type homingSpec = prefabs.HomingComponentSpec

func addHoming(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[homingSpec](raw)
	if err != nil {
		return fmt.Errorf("decode homing spec: %w", err)
	}
	return ecs.Add(w, e, component.HomingComponent.Kind(), &component.Homing{
		Accel:    spec.Accel,
		MaxSpeed: spec.MaxSpeed,
	})
}

type gravityScaleSpec = prefabs.GravityScaleComponentSpec

func addGravityScale(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[gravityScaleSpec](raw)
	if err != nil {
		return fmt.Errorf("decode gravity_scale spec: %w", err)
	}
	return ecs.Add(w, e, component.GravityScaleComponent.Kind(), &component.GravityScale{Scale: spec.Scale})
}

type blastSpec = prefabs.BlastComponentSpec

func addBlast(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[blastSpec](raw)
	if err != nil {
		return fmt.Errorf("decode blast spec: %w", err)
	}
	return ecs.Add(w, e, component.BlastComponent.Kind(), &component.Blast{Radius: spec.Radius, Impulse: spec.Impulse})
}

type cubeSpec = prefabs.CubeComponentSpec

func addCube(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[cubeSpec](raw)
	if err != nil {
		return fmt.Errorf("decode cube spec: %w", err)
	}
	return ecs.Add(w, e, component.CubeComponent.Kind(), &component.Cube{Delay: spec.Delay})
}

type propSpec = prefabs.PropComponentSpec

func addProp(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[propSpec](raw)
	if err != nil {
		return fmt.Errorf("decode prop spec: %w", err)
	}
	if spec.Mass <= 0 {
		spec.Mass = 1
	}
	return ecs.Add(w, e, component.PropComponent.Kind(), &component.Prop{
		Mass:     spec.Mass,
		Damping:  spec.Damping,
		Grounded: true,
	})
}

type pickupSpec = prefabs.PickupComponentSpec

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pickupSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	if spec.Kind == "" {
		return fmt.Errorf("pickup kind is empty")
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: spec.Kind})
}

type doorSpec = prefabs.DoorComponentSpec

func addDoor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[doorSpec](raw)
	if err != nil {
		return fmt.Errorf("decode door spec: %w", err)
	}
	return ecs.Add(w, e, component.DoorComponent.Kind(), &component.Door{Script: spec.Script, Open: spec.Open})
}

type pressurePlateSpec = prefabs.PressurePlateComponentSpec

func addPressurePlate(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[pressurePlateSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pressure_plate spec: %w", err)
	}
	return ecs.Add(w, e, component.PressurePlateComponent.Kind(), &component.PressurePlate{
		Script: spec.Script,
		Target: spec.Target,
	})
}
