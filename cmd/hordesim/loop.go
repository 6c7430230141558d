package main

import (
	"time"

	"github.com/charmbracelet/log"
)

// GameLoop drives a Game at a fixed tick rate, either on a wall-clock ticker
// or as fast as possible.
type GameLoop struct {
	game     *Game
	logger   *log.Logger
	tickRate int
	frames   int
	realtime bool
	stopChan chan struct{}
}

func NewGameLoop(game *Game, logger *log.Logger, tickRate, frames int, realtime bool) *GameLoop {
	return &GameLoop{
		game:     game,
		logger:   logger,
		tickRate: tickRate,
		frames:   frames,
		realtime: realtime,
		stopChan: make(chan struct{}),
	}
}

// Run blocks until the frame budget is spent, the game ends or Stop is called.
func (g *GameLoop) Run() {
	delta := 1 / float64(g.tickRate)
	g.logger.Info("game loop started", "tickrate", g.tickRate, "frames", g.frames, "realtime", g.realtime)

	if !g.realtime {
		for i := 0; i < g.frames; i++ {
			select {
			case <-g.stopChan:
				g.logger.Info("game loop stopped", "frame", i)
				return
			default:
			}
			if !g.game.Step(delta) {
				return
			}
		}
		return
	}

	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	for i := 0; i < g.frames; i++ {
		select {
		case <-g.stopChan:
			g.logger.Info("game loop stopped", "frame", i)
			return
		case <-ticker.C:
			if !g.game.Step(delta) {
				return
			}
		}
	}
}

func (g *GameLoop) Stop() {
	close(g.stopChan)
}
