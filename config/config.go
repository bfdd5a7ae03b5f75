package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// SimConfig controls a headless session.
type SimConfig struct {
	TickRate  int     `mapstructure:"tick_rate"`
	Duration  float64 `mapstructure:"duration"`
	Level     string  `mapstructure:"level"`
	Input     string  `mapstructure:"input"`
	Watch     bool    `mapstructure:"watch"`
	PrefabDir string  `mapstructure:"prefab_dir"`
}

// LogConfig selects the zap level and encoding.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Log LogConfig `mapstructure:"log"`
	Sim SimConfig `mapstructure:"sim"`
}

// Ticks returns the number of fixed steps the session runs for.
func (c SimConfig) Ticks() int {
	if c.TickRate <= 0 || c.Duration <= 0 {
		return 0
	}
	return int(c.Duration * float64(c.TickRate))
}

// Delta returns the fixed step in seconds.
func (c SimConfig) Delta() float64 {
	if c.TickRate <= 0 {
		return 0
	}
	return 1 / float64(c.TickRate)
}

func setDefaults() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	viper.SetDefault("sim.tick_rate", 60)
	viper.SetDefault("sim.duration", 10.0)
	viper.SetDefault("sim.level", "arena.yaml")
	viper.SetDefault("sim.input", "demo_input.yaml")
	viper.SetDefault("sim.watch", false)
	viper.SetDefault("sim.prefab_dir", "prefabs")
}

// Load reads configuration into viper. path names a config file; when it
// is empty, gravityfps.yaml is looked up in configDir and may be absent.
// GRAVITYFPS_ environment variables override file values.
func Load(path, configDir string) error {
	setDefaults()

	viper.SetEnvPrefix("gravityfps")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", path, err)
		}
		return nil
	}

	viper.SetConfigName("gravityfps")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read gravityfps.yaml: %w", err)
	}
	return nil
}

// Get decodes the loaded configuration.
func Get() (Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshal: %w", err)
	}
	if cfg.Sim.TickRate <= 0 {
		return Config{}, fmt.Errorf("config: sim.tick_rate must be positive, got %d", cfg.Sim.TickRate)
	}
	if cfg.Sim.Duration < 0 {
		return Config{}, fmt.Errorf("config: sim.duration must not be negative, got %v", cfg.Sim.Duration)
	}
	return cfg, nil
}

// Set overrides a loaded value, for command line flags.
func Set(key string, value any) {
	viper.Set(key, value)
}

// ConfigFile returns the file configuration was read from, if any.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}
