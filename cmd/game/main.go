package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Garsondee/Pellet-Maze/internal/config"
	"github.com/Garsondee/Pellet-Maze/internal/game"
	"github.com/Garsondee/Pellet-Maze/internal/logging"
)

func main() {
	var configPath string
	var levelPath string
	var seed int64

	flag.StringVar(&configPath, "config", "configs/maze.yaml", "YAML config file (empty for built-in defaults)")
	flag.StringVar(&levelPath, "level", "", "level file, overrides level.path from the config")
	flag.Int64Var(&seed, "seed", 0, "RNG seed, overrides the config when non-zero")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if levelPath != "" {
		cfg.Level.Path = levelPath
	}
	if seed != 0 {
		cfg.Seed = seed
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	grid, err := cfg.LoadLevel()
	if err != nil {
		log.Fatal("load level", zap.String("path", cfg.Level.Path), zap.Error(err))
	}
	g, err := game.New(cfg, grid, log)
	if err != nil {
		log.Fatal("start game", zap.Error(err))
	}

	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal("game exited", zap.Error(err))
	}
}
