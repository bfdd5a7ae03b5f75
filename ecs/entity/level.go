package entity

import (
	"fmt"

	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/prefabs"
)

// LoadLevelToWorld builds every placement of a level and indexes their
// colliders. It returns the player entity.
func LoadLevelToWorld(w *ecs.World, lvl *prefabs.LevelSpec) (ecs.Entity, error) {
	if w == nil || lvl == nil {
		return 0, fmt.Errorf("level: world or level is nil")
	}
	if w.PhysicsWorld() == nil {
		return 0, fmt.Errorf("level %s: world has no physics world", lvl.Name)
	}

	for i, placement := range lvl.Entities {
		if _, err := Place(w, placement); err != nil {
			return 0, fmt.Errorf("level %s: entity %d: %w", lvl.Name, i, err)
		}
	}

	player, err := Place(w, lvl.Player)
	if err != nil {
		return 0, fmt.Errorf("level %s: player: %w", lvl.Name, err)
	}
	return player, nil
}

// Place builds a prefab with the placement's name, transform and component
// overrides applied, then attaches its collider.
func Place(w *ecs.World, placement prefabs.PlacementSpec) (ecs.Entity, error) {
	spec, err := prefabs.LoadEntityBuildSpec(placement.Prefab)
	if err != nil {
		return 0, fmt.Errorf("place: load %q: %w", placement.Prefab, err)
	}

	components := make(map[string]any, len(spec.Components)+len(placement.Overrides)+1)
	for k, v := range spec.Components {
		components[k] = v
	}
	for k, v := range placement.Overrides {
		components[k] = v
	}
	if placement.Transform != nil {
		components["transform"] = *placement.Transform
	}
	if placement.Name != "" {
		components["name"] = placement.Name
	}
	spec.Components = components

	e, err := buildFromSpec(w, placement.Prefab, spec)
	if err != nil {
		return 0, err
	}
	if err := Attach(w, e); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("place %q: %w", placement.Prefab, err)
	}
	return e, nil
}
