package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load("", t.TempDir()))
	cfg, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 60, cfg.Sim.TickRate)
	assert.Equal(t, 10.0, cfg.Sim.Duration)
	assert.Equal(t, "arena.yaml", cfg.Sim.Level)
	assert.Equal(t, "demo_input.yaml", cfg.Sim.Input)
	assert.False(t, cfg.Sim.Watch)
	assert.Equal(t, "prefabs", cfg.Sim.PrefabDir)
	assert.Equal(t, 600, cfg.Sim.Ticks())
	assert.Empty(t, ConfigFile())
}

func TestLoad_WithConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := "log:\n  level: debug\n  format: json\nsim:\n  tick_rate: 30\n  duration: 2\n  watch: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gravityfps.yaml"), []byte(cfg), 0o644))

	require.NoError(t, Load("", dir))
	got, err := Get()
	require.NoError(t, err)

	assert.Equal(t, "debug", got.Log.Level)
	assert.Equal(t, "json", got.Log.Format)
	assert.Equal(t, 30, got.Sim.TickRate)
	assert.Equal(t, 60, got.Sim.Ticks())
	assert.InDelta(t, 1.0/30, got.Sim.Delta(), 1e-12)
	assert.True(t, got.Sim.Watch)
	assert.Equal(t, "arena.yaml", got.Sim.Level, "unset keys keep defaults")
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Cleanup(viper.Reset)

	err := Load("/nonexistent/gravityfps.yaml", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("GRAVITYFPS_SIM_DURATION", "3.5")
	t.Setenv("GRAVITYFPS_LOG_LEVEL", "warn")

	require.NoError(t, Load("", t.TempDir()))
	cfg, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 3.5, cfg.Sim.Duration)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestSetOverridesFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load("", t.TempDir()))
	Set("sim.level", "other.yaml")
	Set("sim.tick_rate", 0)

	_, err := Get()
	require.Error(t, err)

	Set("sim.tick_rate", 120)
	cfg, err := Get()
	require.NoError(t, err)
	assert.Equal(t, "other.yaml", cfg.Sim.Level)
	assert.Equal(t, 120, cfg.Sim.TickRate)
}
