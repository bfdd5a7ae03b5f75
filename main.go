package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/milk9111/gravityfps/config"
	"github.com/milk9111/gravityfps/logging"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "", "config file (defaults to ./gravityfps.yaml when present)")
	levelName := flag.String("level", "", "level prefab to load")
	inputName := flag.String("input", "", "input timeline prefab to replay")
	duration := flag.Float64("duration", 0, "seconds of simulated time to run")
	watch := flag.Bool("watch", false, "hot reload prefabs and scripts from disk")
	flag.Parse()

	if err := config.Load(*configPath, "."); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "level":
			config.Set("sim.level", *levelName)
		case "input":
			config.Set("sim.input", *inputName)
		case "duration":
			config.Set("sim.duration", *duration)
		case "watch":
			config.Set("sim.watch", *watch)
		}
	})

	cfg, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Error("session failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if file := config.ConfigFile(); file != "" {
		logger.Info("config loaded", zap.String("file", file))
	}

	game, err := NewGame(cfg.Sim, logger)
	if err != nil {
		return err
	}
	defer func() { _ = game.Close() }()

	runErr := game.Run(ctx)

	s := game.Summary()
	game.logger.Info("session finished",
		zap.Int("ticks", s.Ticks),
		zap.Float64s("position", s.Position[:]),
		zap.String("mode", s.Mode),
		zap.String("ability", s.Ability),
		zap.String("motion_state", s.MotionState),
		zap.Float64("fuel", s.FuelPercent),
		zap.Int("active_missiles", s.ActiveMissiles),
		zap.Int("entities", s.Entities),
	)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	return nil
}
