package entity

import (
	"fmt"

	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/prefabs"
)

// LoadTuning reads the tuning block of a character prefab over
// character.DefaultTuning.
func LoadTuning(prefabPath string) (character.Tuning, error) {
	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return character.Tuning{}, fmt.Errorf("tuning: load %q: %w", prefabPath, err)
	}
	tuning, err := prefabs.DecodeOver(character.DefaultTuning(), spec.Tuning)
	if err != nil {
		return character.Tuning{}, fmt.Errorf("tuning: decode %q: %w", prefabPath, err)
	}
	return tuning, nil
}
