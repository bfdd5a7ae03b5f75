package sensor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/stretchr/testify/assert"
)

func TestFindClosest(t *testing.T) {
	ref := ecs.Entity(1)
	at := func(e ecs.Entity, x float64, static bool) Candidate {
		return Candidate{Entity: e, Position: mgl64.Vec3{x, 0, 0}, Static: static}
	}

	cases := []struct {
		name          string
		candidates    []Candidate
		exclude       []ecs.Entity
		includeStatic bool
		want          ecs.Entity
		found         bool
	}{
		{"empty", nil, nil, true, 0, false},
		{"nearest", []Candidate{at(2, 300, false), at(3, -100, false), at(4, 200, false)}, nil, true, 3, true},
		{"skips_ref", []Candidate{at(1, 0, false), at(2, 50, false)}, nil, true, 2, true},
		{"exclude", []Candidate{at(2, 10, false), at(3, 20, false)}, []ecs.Entity{2}, true, 3, true},
		{"static_skipped", []Candidate{at(2, 10, true), at(3, 20, false)}, nil, false, 3, true},
		{"static_included", []Candidate{at(2, 10, true), at(3, 20, false)}, nil, true, 2, true},
		{"all_filtered", []Candidate{at(2, 10, true)}, nil, false, 0, false},
		{"tie_first_wins", []Candidate{at(5, -40, false), at(6, 40, false)}, nil, true, 5, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := FindClosest(ref, mgl64.Vec3{}, tc.candidates, tc.exclude, tc.includeStatic)
			assert.Equal(t, tc.found, ok)
			if tc.found {
				assert.Equal(t, tc.want, got.Entity)
			}
		})
	}
}

func TestMissileRegistry(t *testing.T) {
	dead := map[ecs.Entity]bool{}
	r := NewMissileRegistry(func(e ecs.Entity) bool { return !dead[e] })

	r.Register(2)
	r.Register(3)
	r.Register(2)
	assert.Equal(t, 2, r.Len())

	dead[2] = true
	assert.Equal(t, []ecs.Entity{3}, r.Active())
	assert.Equal(t, 1, r.Len())

	assert.True(t, r.Unregister(3))
	assert.False(t, r.Unregister(3))
	assert.Empty(t, r.Active())

	var none *MissileRegistry
	assert.Empty(t, none.Active())
	assert.Equal(t, 0, none.Len())
}
