// Package config loads the YAML configuration shared by the game and the headless report.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Pellet-Maze/internal/level"
	"github.com/Garsondee/Pellet-Maze/internal/logging"
	"github.com/Garsondee/Pellet-Maze/internal/maze"
)

// MaxAgents bounds agents.count.
const MaxAgents = 16

type Config struct {
	Level        LevelConfig        `yaml:"level"`
	Player       PlayerConfig       `yaml:"player"`
	Agents       AgentsConfig       `yaml:"agents"`
	Collectibles CollectiblesConfig `yaml:"collectibles"`
	Log          LogConfig          `yaml:"log"`
	Window       WindowConfig       `yaml:"window"`
	Seed         int64              `yaml:"seed"` // 0 picks a time-based seed
}

type LevelConfig struct {
	Path     string  `yaml:"path"`
	TileSize float64 `yaml:"tile_size"`
	WrapX    bool    `yaml:"wrap_x"`
	WrapZ    bool    `yaml:"wrap_z"`

	// ReservedRows overrides the default (the spawn marker's row) when set.
	// An explicit empty list reserves nothing.
	ReservedRows *[]int `yaml:"reserved_rows,omitempty"`
}

type PlayerConfig struct {
	MoveSpeed  float64 `yaml:"move_speed"`
	TurnSpeed  float64 `yaml:"turn_speed"`
	StartYaw   float64 `yaml:"start_yaw"`
	StartPitch float64 `yaml:"start_pitch"`
}

type AgentsConfig struct {
	Count       int     `yaml:"count"`
	SpeedScale  float64 `yaml:"speed_scale"`
	CatchRadius float64 `yaml:"catch_radius"`
	Bias        int     `yaml:"bias"` // 0 keeps the per-agent default of id+1
}

type CollectiblesConfig struct {
	Radius float64 `yaml:"radius"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// Default returns the classic configuration.
func Default() Config {
	player := maze.DefaultPlayerConfig()
	agent := maze.DefaultAgentConfig()
	return Config{
		Level: LevelConfig{
			Path:     "configs/classic.lvl",
			TileSize: level.DefaultTileSize,
			WrapX:    true,
		},
		Player: PlayerConfig{
			MoveSpeed: player.MoveSpeed,
			TurnSpeed: player.TurnSpeed,
		},
		Agents: AgentsConfig{
			Count:       4,
			SpeedScale:  agent.SpeedScale,
			CatchRadius: maze.DefaultCatchRadius,
		},
		Collectibles: CollectiblesConfig{Radius: maze.DefaultCollectRadius},
		Log:          LogConfig{Level: "info"},
		Window:       WindowConfig{Width: 960, Height: 720, Title: "Pellet Maze"},
	}
}

// Load reads a YAML file over the defaults and validates the result. A relative
// level path set in the file is resolved against the file's directory.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	if p := cfg.Level.Path; p != Default().Level.Path && !filepath.IsAbs(p) {
		cfg.Level.Path = filepath.Join(filepath.Dir(path), cfg.Level.Path)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result. Unknown keys
// are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every out-of-range setting at once.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	check(c.Level.Path != "", "level.path is required")
	check(c.Level.TileSize > 0, "level.tile_size must be positive, got %v", c.Level.TileSize)
	check(c.Player.MoveSpeed > 0, "player.move_speed must be positive, got %v", c.Player.MoveSpeed)
	check(c.Player.TurnSpeed >= 0, "player.turn_speed must not be negative, got %v", c.Player.TurnSpeed)
	check(c.Agents.Count >= 0 && c.Agents.Count <= MaxAgents, "agents.count must be in [0,%d], got %d", MaxAgents, c.Agents.Count)
	check(c.Agents.SpeedScale > 0, "agents.speed_scale must be positive, got %v", c.Agents.SpeedScale)
	check(c.Agents.CatchRadius >= 0, "agents.catch_radius must not be negative, got %v", c.Agents.CatchRadius)
	check(c.Agents.Bias >= 0, "agents.bias must not be negative, got %d", c.Agents.Bias)
	check(c.Collectibles.Radius > 0, "collectibles.radius must be positive, got %v", c.Collectibles.Radius)
	check(c.Window.Width > 0 && c.Window.Height > 0, "window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	return errors.Join(errs...)
}

// LevelOptions translates the level section into grid build options.
func (c Config) LevelOptions() []level.Option {
	opts := []level.Option{
		level.WithTileSize(c.Level.TileSize),
		level.WithWrap(c.Level.WrapX, c.Level.WrapZ),
	}
	if c.Level.ReservedRows != nil {
		opts = append(opts, level.WithReservedRows(*c.Level.ReservedRows...))
	}
	return opts
}

// LoadLevel loads the configured level file.
func (c Config) LoadLevel() (*level.Grid, error) {
	return level.Load(c.Level.Path, c.LevelOptions()...)
}

// Session translates the gameplay sections into a session configuration.
func (c Config) Session() maze.SessionConfig {
	s := maze.DefaultSessionConfig()
	s.Player.MoveSpeed = c.Player.MoveSpeed
	s.Player.TurnSpeed = c.Player.TurnSpeed
	s.Player.StartYaw = c.Player.StartYaw
	s.Player.StartPitch = c.Player.StartPitch
	s.Agent.SpeedScale = c.Agents.SpeedScale
	s.Agent.Bias = c.Agents.Bias
	s.AgentCount = c.Agents.Count
	s.CatchRadius = c.Agents.CatchRadius
	s.CollectRadius = c.Collectibles.Radius
	return s
}
