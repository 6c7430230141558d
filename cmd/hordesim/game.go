package main

import (
	"math"
	"math/rand"

	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/automoto/horde/shared/leveldata"
	"github.com/automoto/horde/systems"
	"github.com/automoto/horde/waves"
	"github.com/charmbracelet/log"
	"github.com/yohamta/donburi"
)

// Scripted player
const (
	playerHealth   = 100.0
	orbitRadius    = 10.0
	orbitSpeed     = 0.35 // radians per second
	weaponRange    = 6.0
	weaponDamage   = 20.0
	weaponCooldown = 0.5 // seconds
)

// Stats is what the final report prints.
type Stats struct {
	Frames      int
	Spawned     int
	Summoned    int
	Killed      int
	Explosions  int
	Shots       int
	Failed      int
	PeakAlive   int
	DamageTaken map[systems.DamageKind]float64
}

// Game is the host side of the simulation: it moves the player, feeds the
// wave director, honours spawn requests and fires the player's weapon.
type Game struct {
	sim      *systems.Simulation
	director *waves.Director
	logger   *log.Logger

	player systems.Player
	center gamemath.Vec
	angle  float64
	weapon float64

	stats Stats
}

func NewGame(cfg config.SimulationConfig, arena *leveldata.Arena, seed int64, logger *log.Logger) (*Game, error) {
	var obstacles []systems.Obstacle
	var spawnPoints []gamemath.Vec
	center := gamemath.Vec{}
	if arena != nil {
		for _, o := range arena.Obstacles {
			obstacles = append(obstacles, systems.Obstacle{
				Position: gamemath.V(o.X, o.Z),
				Radius:   o.Radius,
			})
		}
		for _, sp := range arena.EnemySpawns {
			spawnPoints = append(spawnPoints, gamemath.V(sp.X, sp.Z))
		}
		center = gamemath.V(arena.Width/2, arena.Height/2)
		if arena.PlayerStart != nil {
			center = gamemath.V(arena.PlayerStart.X, arena.PlayerStart.Z)
		}
	}

	sim, err := systems.NewSimulation(cfg, obstacles,
		systems.WithSeed(seed),
		systems.WithLogger(logger.WithPrefix("horde")),
	)
	if err != nil {
		return nil, err
	}

	opts := []waves.Option{waves.WithLogger(logger.WithPrefix("waves"))}
	if len(spawnPoints) > 0 {
		opts = append(opts, waves.WithSpawnPoints(spawnPoints))
	}

	g := &Game{
		sim:      sim,
		director: waves.NewDirector(cfg.Waves, rand.New(rand.NewSource(seed+1)), opts...),
		logger:   logger,
		player: systems.Player{
			Position:  gamemath.Add(center, gamemath.V(orbitRadius, 0)),
			Health:    playerHealth,
			MaxHealth: playerHealth,
		},
		center: center,
		stats:  Stats{DamageTaken: make(map[systems.DamageKind]float64)},
	}

	if arena != nil {
		for _, sp := range arena.EnemySpawns {
			for i := 0; i < sp.Count; i++ {
				if _, err := sim.Spawn(sp.Type, gamemath.V(sp.X, sp.Z)); err != nil {
					logger.Warn("skipping arena spawn", "type", sp.Type, "err", err)
					continue
				}
				g.stats.Spawned++
			}
		}
	}

	return g, nil
}

// Step advances one frame. It returns false once the player is dead.
func (g *Game) Step(delta float64) bool {
	g.angle += orbitSpeed * delta
	g.player.Position = gamemath.Add(g.center, gamemath.Scale(gamemath.V(math.Cos(g.angle), math.Sin(g.angle)), orbitRadius))

	spawned, err := g.director.Update(g.sim, g.player.Position, delta)
	if err != nil {
		g.logger.Error("wave spawn failed", "err", err)
	}
	g.stats.Spawned += spawned

	res := g.sim.Update(&g.player, delta)
	g.stats.Frames++
	g.stats.Explosions += len(res.Explosions)
	g.stats.Failed += len(res.Failed)
	for _, d := range res.PlayerDamage {
		g.stats.DamageTaken[d.Kind] += d.Amount
	}

	// Projectiles are instant hits in the headless runner
	for _, shot := range res.RangedAttacks {
		g.stats.Shots++
		g.stats.DamageTaken[systems.DamageRanged] += g.player.Damage(shot.Damage)
	}

	g.summon(res.Spawns)
	g.fire(delta)

	if alive := g.sim.Count(); alive > g.stats.PeakAlive {
		g.stats.PeakAlive = alive
	}

	if g.player.Dead() {
		g.logger.Warn("player died", "frame", res.Frame, "alive", g.sim.Count())
		return false
	}
	return true
}

// summon honours spawn requests up to the wave cap.
func (g *Game) summon(requests []systems.SpawnRequest) {
	limit := g.sim.Config().Waves.MaxAlive
	for _, req := range requests {
		for _, pos := range req.Positions {
			if limit > 0 && g.sim.Count() >= limit {
				return
			}
			if _, err := g.sim.Spawn(req.TypeName, pos); err != nil {
				g.logger.Warn("summon failed", "type", req.TypeName, "source", req.Source, "err", err)
				continue
			}
			g.stats.Summoned++
		}
	}
}

// fire hits the nearest enemy in range on a cooldown.
func (g *Game) fire(delta float64) {
	g.weapon -= delta
	if g.weapon > 0 {
		return
	}

	target := donburi.Null
	best := weaponRange
	g.sim.Each(func(e systems.EnemyView) {
		if e.MarkedForRemoval || e.Health <= 0 {
			return
		}
		if d := gamemath.Distance(e.Position, g.player.Position); d <= best {
			best = d
			target = e.ID
		}
	})
	if target == donburi.Null {
		return
	}

	g.weapon = weaponCooldown
	g.sim.DamageEnemy(target, weaponDamage)
	if e, ok := g.sim.Enemy(target); ok && e.Health <= 0 {
		g.stats.Killed++
	}
}

// Report logs the run summary.
func (g *Game) Report() {
	g.logger.Info("simulation finished",
		"frames", g.stats.Frames,
		"waves", g.director.Wave(),
		"alive", g.sim.Count(),
		"peak", g.stats.PeakAlive,
		"spawned", g.stats.Spawned,
		"summoned", g.stats.Summoned,
		"killed", g.stats.Killed,
		"explosions", g.stats.Explosions,
		"failed", g.stats.Failed,
	)
	g.logger.Info("player damage",
		"health", g.player.Health,
		"contact", g.stats.DamageTaken[systems.DamageContact],
		"aura", g.stats.DamageTaken[systems.DamageAura],
		"explosion", g.stats.DamageTaken[systems.DamageExplosion],
		"ranged", g.stats.DamageTaken[systems.DamageRanged],
		"shots", g.stats.Shots,
	)
}
