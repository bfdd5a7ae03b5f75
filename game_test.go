package main

import (
	"context"
	"testing"

	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/config"
	"github.com/milk9111/gravityfps/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() config.SimConfig {
	return config.SimConfig{
		TickRate: 60,
		Duration: 10,
		Level:    "arena.yaml",
		Input:    "demo_input.yaml",
	}
}

func TestGameReplaysDemo(t *testing.T) {
	game, err := NewGame(testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = game.Close() })

	require.NoError(t, game.Run(context.Background()))

	s := game.Summary()
	assert.Equal(t, 600, s.Ticks)
	assert.Equal(t, "human", s.Mode, "the demo swaps armour twice")
	assert.NotEmpty(t, s.MotionState)
	assert.Positive(t, s.Entities)
	assert.Zero(t, game.input.Remaining())

	hud := game.hud.State()
	require.NotNil(t, hud)
	assert.Equal(t, s.Ability, hud.Equipment)
	assert.False(t, hud.FuelVisible, "fuel widget hides once back in human mode")
}

func TestGameRunStopsOnCancel(t *testing.T) {
	game, err := NewGame(testConfig(), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, game.Run(ctx), context.Canceled)
	assert.Zero(t, game.Summary().Ticks)
}

func TestGameRejectsMissingLevel(t *testing.T) {
	cfg := testConfig()
	cfg.Level = "nowhere.yaml"
	_, err := NewGame(cfg, nil)
	assert.Error(t, err)
}

func TestGameReloadsTuning(t *testing.T) {
	game, err := NewGame(testConfig(), nil)
	require.NoError(t, err)

	tuning := game.character.Tuning()
	tuning.HumanMaxWalk = 5000
	game.character.SetTuning(tuning)

	game.applyChange(prefabs.Change{Name: "player.yaml", Path: "prefabs/player.yaml", Removed: true})
	assert.Equal(t, 5000.0, game.character.Tuning().HumanMaxWalk, "a removed file keeps live tuning")

	game.applyChange(prefabs.Change{Name: "player.yaml", Path: "prefabs/player.yaml"})
	assert.Equal(t, character.DefaultTuning(), game.character.Tuning())

	game.applyChange(prefabs.Change{Name: "door.tengo", Path: "prefabs/scripts/door.tengo", Kind: prefabs.ChangeScript})
	game.applyChange(prefabs.Change{Name: "crate.yaml", Path: "prefabs/crate.yaml"})
}

func TestGameReloadsProjectiles(t *testing.T) {
	game, err := NewGame(testConfig(), nil)
	require.NoError(t, err)

	assert.True(t, game.projectiles.Uses("projectiles.yaml"))
	assert.True(t, game.projectiles.Uses("missile.yaml"))
	assert.False(t, game.projectiles.Uses("crate.yaml"))

	kinds := game.projectiles.Kinds()
	game.applyChange(prefabs.Change{Name: "missile.yaml", Path: "prefabs/missile.yaml"})
	assert.Equal(t, kinds, game.projectiles.Kinds())
}

func TestGameTargetingViewUsesViewPoint(t *testing.T) {
	game, err := NewGame(testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = game.Close() })

	view := game.targetingView()
	c := game.character
	assert.Equal(t, c.ViewPoint(), view.Origin)
	assert.Equal(t, c.CameraForward(), view.Forward)
	pushed := c.CameraLocation().Add(c.CameraForward().Mul(c.Tuning().ViewOffset))
	assert.InDelta(t, 0, view.Origin.Sub(pushed).Len(), 1e-9)
	assert.Positive(t, c.Tuning().ViewOffset)
}
