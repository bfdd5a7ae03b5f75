package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSystemReplaysTimeline(t *testing.T) {
	w := ecs.NewWorld()
	player := ecs.CreateEntity(w)
	ecs.MustAdd(w, player, component.PlayerTagComponent.Kind(), &component.PlayerTag{})

	events := []InputEvent{
		{At: 0.1, Action: ActionFireReleased},
		{At: 0, Action: ActionFirePressed},
		{At: 0.05, Action: ActionMove, Value: mgl64.Vec2{0, 1}},
		{At: 0.1, Action: ActionMove},
		{At: 0.1, Action: ActionCycle, Value: mgl64.Vec2{-1, 0}},
		{At: 0.1, Action: "dance"},
	}
	in := NewInputSystem(events, nil)
	s := ecs.NewScheduler(in)
	const dt = 0.05

	s.Step(w, dt)
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	require.True(t, ok)
	assert.True(t, input.PrimaryPressed)
	assert.True(t, input.PrimaryHeld)
	assert.True(t, input.MoveHeld, "events due by the first tick all apply")
	assert.Equal(t, mgl64.Vec2{0, 1}, input.Move)

	s.Step(w, dt)
	assert.False(t, input.PrimaryPressed, "edges last one tick")
	assert.True(t, input.PrimaryReleased)
	assert.False(t, input.PrimaryHeld)
	assert.True(t, input.MoveReleased)
	assert.False(t, input.MoveHeld)
	assert.Equal(t, -1.0, input.Scroll)
	assert.Zero(t, in.Remaining())

	s.Step(w, dt)
	assert.False(t, input.PrimaryReleased)
	assert.Zero(t, input.Scroll)
}
