package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/milk9111/gravityfps/character"
	"github.com/milk9111/gravityfps/config"
	"github.com/milk9111/gravityfps/ecs"
	"github.com/milk9111/gravityfps/ecs/component"
	"github.com/milk9111/gravityfps/ecs/entity"
	"github.com/milk9111/gravityfps/ecs/system"
	"github.com/milk9111/gravityfps/prefabs"
	"github.com/milk9111/gravityfps/sensor"
	"go.uber.org/zap"
)

const playerPrefab = "player.yaml"

// Game is one headless session: a world built from a level prefab, a
// player character and a recorded input timeline.
type Game struct {
	cfg     config.SimConfig
	logger  *zap.Logger
	session uuid.UUID

	world     *ecs.World
	scheduler *ecs.Scheduler
	player    ecs.Entity
	character *character.Character

	input         *system.InputSystem
	interactables *system.InteractableSystem
	missiles      *sensor.MissileRegistry
	projectiles   *entity.ProjectileFactory
	hud           *system.HUDPresenter
	watcher       *prefabs.Watcher

	ticks int
}

// Summary is the state reported when a session ends.
type Summary struct {
	Ticks          int
	Position       mgl64.Vec3
	Mode           string
	Ability        string
	MotionState    string
	FuelPercent    float64
	ActiveMissiles int
	Entities       int
}

func NewGame(cfg config.SimConfig, logger *zap.Logger) (*Game, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	session := uuid.New()
	logger = logger.With(zap.String("session", session.String()))

	prefabs.SetDiskRoot(cfg.PrefabDir)

	lvl, err := prefabs.LoadLevelSpec(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	timeline, err := prefabs.LoadInputTimeline(cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	tuning, err := entity.LoadTuning(lvl.Player.Prefab)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	projectiles, err := entity.NewProjectileFactory()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	world := ecs.NewWorld()
	world.SetPhysicsWorld(ecs.NewPhysicsWorld())

	player, err := entity.LoadLevelToWorld(world, lvl)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	body, ok := ecs.Get(world, player, component.CharacterBodyComponent.Kind())
	if !ok {
		return nil, fmt.Errorf("game: player prefab %q has no character_body", lvl.Player.Prefab)
	}

	g := &Game{
		cfg:      cfg,
		logger:   logger,
		session:  session,
		world:    world,
		player:   player,
		missiles: sensor.NewMissileRegistry(func(e ecs.Entity) bool { return ecs.IsAlive(world, e) }),

		projectiles: projectiles,
	}

	targets := sensor.New(world.PhysicsWorld(), sensor.WorldLocator(world))
	g.hud = system.NewHUDPresenter(world, player, logger.Named("hud"))
	g.interactables = system.NewInteractableSystem(logger.Named("interact"))

	spawner := system.NewProjectileSpawner(world, system.SpawnerOptions{
		Owner:    player,
		Build:    projectiles.Build,
		Sensor:   targets,
		Missiles: g.missiles,
		View:     g.targetingView,
		Logger:   logger.Named("spawner"),
	})

	g.character, err = character.New(tuning, character.Collaborators{
		Self:    player,
		Body:    body,
		Queries: world.PhysicsWorld(),
		HUD:     g.hud,
		Spawner: spawner,
		Sockets: g.hud,
		Timers:  world.Timers(),
		Clock:   world,
		Doors:   system.NewDoorInteractor(world, g.interactables),
		Fuel:    system.NewFuelMeter(world, player),
		WallRunnable: func(e ecs.Entity) bool {
			return ecs.Has(world, e, component.WallRunTagComponent.Kind())
		},
		Describe: func(e ecs.Entity) (string, mgl64.Vec3, bool) {
			t, ok := ecs.Get(world, e, component.TransformComponent.Kind())
			if !ok {
				return "", mgl64.Vec3{}, false
			}
			name := e.String()
			if n, ok := ecs.Get(world, e, component.NameComponent.Kind()); ok && n.Value != "" {
				name = n.Value
			}
			return name, t.Position, true
		},
		Logger: logger.Named("character"),
	})
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	events := make([]system.InputEvent, 0, len(timeline.Events))
	for _, evt := range timeline.Events {
		var value mgl64.Vec2
		copy(value[:], evt.Value)
		events = append(events, system.InputEvent{At: evt.At, Action: evt.Action, Value: value})
	}
	g.input = system.NewInputSystem(events, logger.Named("input"))

	fuel := system.NewFuelSystem(g.character, g.hud)
	projectileSystem := system.NewProjectileSystem(g.missiles, logger.Named("projectile"))
	projectileSystem.SetCubeDestination(g.character.SavedLocation)

	g.scheduler = ecs.NewScheduler(
		system.NewTimerSystem(),
		g.input,
		system.NewPlayerControllerSystem(g.character),
		system.NewCharacterMovementSystem(),
		system.NewCharacterSystem(g.character),
		fuel,
		projectileSystem,
		system.NewPropSystem(),
		system.NewPickupCollectSystem(fuel, logger.Named("pickup")),
		g.interactables,
		system.NewRadarSystem(targets, g.hud, logger.Named("radar")),
		system.NewLifetimeSystem(),
	)

	if cfg.Watch {
		g.startWatcher()
	}

	logger.Info("session started",
		zap.String("level", lvl.Name),
		zap.Int("entities", len(ecs.Entities(world))),
		zap.Int("projectile_kinds", projectiles.Kinds()),
		zap.Int("input_events", len(events)),
	)
	return g, nil
}

func (g *Game) startWatcher() {
	dir := prefabs.DiskRoot()
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		g.logger.Warn("hot reload disabled: prefab directory missing", zap.String("dir", dir))
		return
	}
	watcher, err := prefabs.NewWatcher(dir, filepath.Join(dir, "scripts"))
	if err != nil {
		g.logger.Warn("hot reload disabled", zap.Error(err))
		return
	}
	g.watcher = watcher
}

// targetingView looks from the camera pushed forward by the view offset.
func (g *Game) targetingView() sensor.View {
	return sensor.View{Origin: g.character.ViewPoint(), Forward: g.character.CameraForward()}
}

// Update advances the session by one fixed tick.
func (g *Game) Update() error {
	g.reload()
	g.scheduler.Step(g.world, g.cfg.Delta())
	g.ticks++
	return nil
}

// Run steps the session for the configured duration or until ctx is done.
func (g *Game) Run(ctx context.Context) error {
	total := g.cfg.Ticks()
	for g.ticks < total {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if err := g.Update(); err != nil {
			return err
		}
	}
	return nil
}

// reload applies pending hot reload events between ticks.
func (g *Game) reload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.applyChange(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.logger.Warn("prefab watcher", zap.Error(err))
			}
		default:
			return
		}
	}
}

func (g *Game) applyChange(change prefabs.Change) {
	logger := g.logger.With(zap.String("file", change.Name), zap.Stringer("kind", change.Kind))
	if change.Removed {
		// the embedded copy takes over; live state is left as it is
		logger.Info("prefab removed from disk")
		return
	}

	switch {
	case change.Kind == prefabs.ChangeScript:
		g.interactables.Invalidate()
		logger.Info("scripts reloaded")
	case change.Name == playerPrefab:
		tuning, err := entity.LoadTuning(playerPrefab)
		if err != nil {
			logger.Warn("reload tuning", zap.Error(err))
			return
		}
		g.character.SetTuning(tuning)
		if modified, ok := prefabs.ModTime(playerPrefab); ok {
			logger = logger.With(zap.Time("modified", modified))
		}
		logger.Info("tuning reloaded")
	case g.projectiles.Uses(change.Name):
		if err := g.projectiles.Reload(); err != nil {
			logger.Warn("reload projectiles", zap.Error(err))
			return
		}
		logger.Info("projectiles reloaded", zap.Int("kinds", g.projectiles.Kinds()))
	default:
		logger.Debug("prefab changed; applies to entities built later")
	}
}

func (g *Game) Summary() Summary {
	s := Summary{
		Ticks:          g.ticks,
		Position:       g.character.Body().Position(),
		Mode:           g.character.Mode().String(),
		Ability:        g.character.AbilityLabel(),
		MotionState:    g.character.MotionState(),
		ActiveMissiles: len(g.missiles.Active()),
		Entities:       len(ecs.Entities(g.world)),
	}
	if fuel, ok := ecs.Get(g.world, g.player, component.FuelComponent.Kind()); ok {
		s.FuelPercent = fuel.Percent()
	}
	return s
}

func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	err := g.watcher.Close()
	g.watcher = nil
	return err
}
