// Command hordesim runs the enemy simulation headless against a scripted
// player and logs what happened.
package main

import (
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/leveldata"
	"github.com/charmbracelet/log"
)

func main() {
	seed := flag.Int64("seed", 1, "Random seed for the simulation and waves")
	frames := flag.Int("frames", 60*60*3, "Number of frames to simulate")
	tickRate := flag.Int("tickrate", 60, "Simulation tick rate (updates per second)")
	realtime := flag.Bool("realtime", false, "Pace frames on a wall-clock ticker")
	configPath := flag.String("config", "", "YAML config overlay (empty = defaults)")
	levelPath := flag.String("level", "", "TMX arena to load obstacles and spawns from")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix:          "hordesim",
		ReportTimestamp: *realtime,
	})
	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		logger.Fatal("bad log level", "level", *logLevel, "err", err)
	}
	logger.SetLevel(level)

	if *tickRate <= 0 {
		logger.Fatal("tickrate must be > 0", "tickrate", *tickRate)
	}

	cfg := config.Default()
	if *configPath != "" {
		if cfg, err = config.LoadFile(*configPath); err != nil {
			logger.Fatal("failed to load config", "err", err)
		}
	}

	var arena *leveldata.Arena
	if *levelPath != "" {
		arena, err = leveldata.LoadArena(os.DirFS(filepath.Dir(*levelPath)), filepath.Base(*levelPath))
		if err != nil {
			logger.Fatal("failed to load level", "err", err)
		}
		logger.Info("arena loaded", "name", arena.Name, "obstacles", len(arena.Obstacles), "spawns", len(arena.EnemySpawns))
	}

	game, err := NewGame(cfg, arena, *seed, logger)
	if err != nil {
		logger.Fatal("failed to start simulation", "err", err)
	}

	loop := NewGameLoop(game, logger, *tickRate, *frames, *realtime)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		logger.Info("shutting down")
		loop.Stop()
	}()

	loop.Run()
	game.Report()
}
