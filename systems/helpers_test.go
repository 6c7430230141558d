package systems

import (
	"io"
	"math/rand"
	"testing"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/automoto/horde/systems/factory"
	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi"
)

const frame = 1.0 / 60

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newTestSimulation(t *testing.T, obstacles []Obstacle, opts ...Option) *Simulation {
	t.Helper()
	opts = append([]Option{WithSeed(42), WithLogger(quietLogger())}, opts...)
	sim, err := NewSimulation(config.Default(), obstacles, opts...)
	require.NoError(t, err)
	return sim
}

func spawn(t *testing.T, sim *Simulation, typeName string, x, z float64) donburi.Entity {
	t.Helper()
	id, err := sim.Spawn(typeName, gamemath.V(x, z))
	require.NoError(t, err)
	return id
}

func newPlayer(x, z float64) *Player {
	return &Player{Position: gamemath.V(x, z), Health: 100, MaxHealth: 100}
}

// createEnemy builds an enemy straight into world, bypassing the simulation.
func createEnemy(t *testing.T, world donburi.World, typeName string, pos gamemath.Vec, mass float64) *donburi.Entry {
	t.Helper()
	enemyType := config.Default().Enemy.Types[typeName]
	if mass > 0 {
		enemyType.Mass = mass
	}
	e, err := factory.CreateEnemy(world, enemyType, pos, rand.New(rand.NewSource(1)), 0.8)
	require.NoError(t, err)
	return e
}

func agentFor(e *donburi.Entry) *Agent {
	return &Agent{
		Entry:    e,
		ID:       e.Entity(),
		Position: components.Position.Get(e).Vec2,
		Enemy:    components.Enemy.Get(e),
		State:    components.State.Get(e),
		Health:   components.Health.Get(e),
	}
}

func stepContext(player gamemath.Vec, agent *Agent, delta float64) *StepContext {
	cfg := config.Default()
	p := NewTargetPredictor(cfg.Predictor)
	p.Observe(player, delta)
	return &StepContext{
		Delta:        delta,
		ReferenceFPS: cfg.ReferenceFPS,
		Player:       player,
		Aim:          p.Aim(agent.Position, agent.Enemy.JitterFactor, agent.Enemy.LeadFactor),
		Collision:    cfg.Collision,
		Rand:         rand.New(rand.NewSource(5)),
	}
}

func position(t *testing.T, sim *Simulation, id donburi.Entity) gamemath.Vec {
	t.Helper()
	v, ok := sim.Enemy(id)
	require.True(t, ok, "enemy %v missing", id)
	return v.Position
}
