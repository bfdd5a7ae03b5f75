package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LevelSpec places prefabs in the arena. Each placement may override the
// prefab's transform and name.
type LevelSpec struct {
	Name     string          `yaml:"name"`
	Player   PlacementSpec   `yaml:"player"`
	Entities []PlacementSpec `yaml:"entities"`
}

type PlacementSpec struct {
	Prefab    string                  `yaml:"prefab"`
	Name      string                  `yaml:"name"`
	Transform *TransformComponentSpec `yaml:"transform"`
	// Overrides are merged over the prefab's components by key.
	Overrides map[string]any `yaml:"overrides"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](filename)
	if err != nil {
		return nil, err
	}
	if spec.Player.Prefab == "" {
		spec.Player.Prefab = "player.yaml"
	}
	for i, ent := range spec.Entities {
		if ent.Prefab == "" {
			return nil, fmt.Errorf("prefabs: level %s: entity %d has no prefab", filename, i)
		}
	}
	return &spec, nil
}

// ProjectilesSpec maps each projectile kind to the prefab it is built from.
type ProjectilesSpec struct {
	Kinds map[string]string `yaml:"kinds"`
}

// ProjectilesPrefab maps projectile kinds to their prefab files.
const ProjectilesPrefab = "projectiles.yaml"

func LoadProjectilesSpec() (*ProjectilesSpec, error) {
	data, err := Load(ProjectilesPrefab)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", ProjectilesPrefab, err)
	}
	var spec ProjectilesSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", ProjectilesPrefab, err)
	}
	return &spec, nil
}

// InputTimelineSpec is a recorded sequence of player actions.
type InputTimelineSpec struct {
	Events []InputEventSpec `yaml:"events"`
}

type InputEventSpec struct {
	At     float64   `yaml:"at"`
	Action string    `yaml:"action"`
	Value  []float64 `yaml:"value,flow"`
}

func LoadInputTimeline(filename string) (*InputTimelineSpec, error) {
	spec, err := LoadSpec[InputTimelineSpec](filename)
	if err != nil {
		return nil, err
	}
	for i, evt := range spec.Events {
		if evt.Action == "" {
			return nil, fmt.Errorf("prefabs: input %s: event %d has no action", filename, i)
		}
		if evt.At < 0 {
			return nil, fmt.Errorf("prefabs: input %s: event %d at %v is negative", filename, i, evt.At)
		}
		if len(evt.Value) > 2 {
			return nil, fmt.Errorf("prefabs: input %s: event %d value has %d components", filename, i, len(evt.Value))
		}
	}
	return &spec, nil
}
