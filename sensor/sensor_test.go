package sensor

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scene struct {
	w  *ecs.World
	pw *ecs.PhysicsWorld
	s  *Sensor
}

func newScene() *scene {
	w := ecs.NewWorld()
	pw := ecs.NewPhysicsWorld()
	w.SetPhysicsWorld(pw)
	return &scene{w: w, pw: pw, s: New(pw, WorldLocator(w))}
}

func (sc *scene) actor(t *testing.T, pos mgl64.Vec3, collider component.Collider) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(sc.w)
	ecs.MustAdd(sc.w, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	if collider.Static {
		ecs.MustAdd(sc.w, e, component.StaticMeshTagComponent.Kind(), &component.StaticMeshTag{})
	}
	require.NoError(t, sc.pw.Attach(e, pos, 0, collider))
	return e
}

func ball(r float64) component.Collider {
	return component.Collider{Radius: r, HalfHeight: 100}
}

func entities(cs []Candidate) []ecs.Entity {
	out := make([]ecs.Entity, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Entity)
	}
	return out
}

func TestConeQuery(t *testing.T) {
	sc := newScene()
	front := sc.actor(t, mgl64.Vec3{1000, -150, 100}, ball(50))
	wall := sc.actor(t, mgl64.Vec3{2000, 150, 100}, component.Collider{HalfX: 20, HalfY: 100, HalfHeight: 200, Static: true})
	hidden := sc.actor(t, mgl64.Vec3{3000, 180, 100}, ball(50))
	wide := sc.actor(t, mgl64.Vec3{50, 150, 100}, ball(50))
	far := sc.actor(t, mgl64.Vec3{1000, 2000, 100}, ball(50))

	view := View{Origin: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{1, 0, 0}}

	cases := []struct {
		name   string
		ignore []ecs.Entity
		want   []ecs.Entity
	}{
		{"visible_in_cone", nil, []ecs.Entity{front, wall}},
		{"ignore_set", []ecs.Entity{front}, []ecs.Entity{wall}},
		{"ignoring_occluder_reveals", []ecs.Entity{wall}, []ecs.Entity{front, hidden}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := sc.s.Cone(view, 200, 5000, 45, tc.ignore)
			assert.ElementsMatch(t, tc.want, entities(got))
			for _, c := range got {
				assert.True(t, c.Visible)
				assert.NotEqual(t, wide, c.Entity)
				assert.NotEqual(t, far, c.Entity)
			}
		})
	}
}

func TestConeQueryFindsTargetsBesideTheAimLine(t *testing.T) {
	sc := newScene()
	left := sc.actor(t, mgl64.Vec3{1000, -150, 100}, ball(50))
	right := sc.actor(t, mgl64.Vec3{1000, 150, 100}, ball(50))

	got := sc.s.Cone(View{Origin: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{1, 0, 0}}, 200, 5000, 45, nil)

	assert.ElementsMatch(t, []ecs.Entity{left, right}, entities(got))
}

func TestConeQueryStaticFlag(t *testing.T) {
	sc := newScene()
	wall := sc.actor(t, mgl64.Vec3{500, 0, 100}, component.Collider{HalfX: 20, HalfY: 100, HalfHeight: 200, Static: true})

	got := sc.s.Cone(View{Origin: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{1, 0, 0}}, 100, 1000, 30, nil)

	require.Len(t, got, 1)
	assert.Equal(t, wall, got[0].Entity)
	assert.True(t, got[0].Static)
	assert.Equal(t, mgl64.Vec3{500, 0, 100}, got[0].Position)
}

func TestConeQueryEmpty(t *testing.T) {
	sc := newScene()
	got := sc.s.Cone(View{Origin: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{1, 0, 0}}, 100, 1000, 30, nil)
	assert.Empty(t, got)

	assert.Empty(t, sc.s.Cone(View{}, 100, 1000, 30, nil), "no forward direction")
}

func TestSphereQueryAroundPlayer(t *testing.T) {
	sc := newScene()
	player := sc.actor(t, mgl64.Vec3{0, 0, 100}, ball(55))
	near := sc.actor(t, mgl64.Vec3{300, 0, 100}, ball(50))
	behind := sc.actor(t, mgl64.Vec3{0, -400, 100}, ball(50))
	sc.actor(t, mgl64.Vec3{5000, 0, 100}, ball(50))

	view := View{Origin: mgl64.Vec3{0, 0, 100}, Forward: mgl64.Vec3{0, 0, 1}}
	got := sc.s.Sphere(view, 1000, 1000, []ecs.Entity{player})

	assert.ElementsMatch(t, []ecs.Entity{near, behind}, entities(got))
}

func TestIsTargetable(t *testing.T) {
	w := ecs.NewWorld()
	tagged := ecs.CreateEntity(w)
	ecs.MustAdd(w, tagged, component.HomingTargetTagComponent.Kind(), &component.HomingTargetTag{})
	capable := ecs.CreateEntity(w)
	ecs.MustAdd(w, capable, component.TargetableComponent.Kind(), &component.Targetable{})
	plain := ecs.CreateEntity(w)

	assert.True(t, IsTargetable(w, tagged))
	assert.True(t, IsTargetable(w, capable))
	assert.False(t, IsTargetable(w, plain))
}
