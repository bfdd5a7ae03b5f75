package entity

import (
	"fmt"

	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/prefabs"
)

// ProjectileFactory builds projectiles from prefabs decoded once up front.
type ProjectileFactory struct {
	specs map[component.ProjectileKind]entityPrefabSpec
	paths map[component.ProjectileKind]string
}

func NewProjectileFactory() (*ProjectileFactory, error) {
	f := &ProjectileFactory{}
	if err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload decodes projectiles.yaml and every prefab it names again. On
// error the previous prefabs stay in use.
func (f *ProjectileFactory) Reload() error {
	kinds, err := prefabs.LoadProjectilesSpec()
	if err != nil {
		return err
	}

	specs := make(map[component.ProjectileKind]entityPrefabSpec, len(kinds.Kinds))
	paths := make(map[component.ProjectileKind]string, len(kinds.Kinds))
	for kind, path := range kinds.Kinds {
		spec, err := prefabs.LoadEntityBuildSpec(path)
		if err != nil {
			return fmt.Errorf("projectile %s: %w", kind, err)
		}
		specs[component.ProjectileKind(kind)] = spec
		paths[component.ProjectileKind(kind)] = path
	}
	f.specs = specs
	f.paths = paths
	return nil
}

// Uses reports whether the named prefab file feeds this factory.
func (f *ProjectileFactory) Uses(name string) bool {
	if name == prefabs.ProjectilesPrefab {
		return true
	}
	for _, path := range f.paths {
		if path == name {
			return true
		}
	}
	return false
}

// Build creates an unplaced projectile of the given kind.
func (f *ProjectileFactory) Build(w *ecs.World, kind component.ProjectileKind) (ecs.Entity, error) {
	spec, ok := f.specs[kind]
	if !ok {
		return 0, fmt.Errorf("projectile: no prefab for kind %q", kind)
	}
	return buildFromSpec(w, f.paths[kind], spec)
}

// Kinds returns how many projectile kinds have prefabs.
func (f *ProjectileFactory) Kinds() int { return len(f.specs) }
