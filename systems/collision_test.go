package systems

import (
	"math"
	"testing"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/stretchr/testify/assert"
	"github.com/yohamta/donburi"
)

func newResolver(cfg config.SimulationConfig, obstacles []Obstacle, entries ...*donburi.Entry) *CollisionResolver {
	grid := NewSpatialIndex(cfg.Spatial)
	grid.Rebuild(entries)
	return NewCollisionResolver(cfg.Collision, grid, NewObstacleField(obstacles, cfg.Spatial), Hooks{})
}

func TestResolveClampsToPlayer(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(0, 1.02), 0)
	r := newResolver(cfg, nil, a)

	res := r.Resolve(world, agentFor(a), gamemath.V(0, 0.97), gamemath.V(0, 0), frame)
	assert.InDelta(t, cfg.Collision.CollisionDistance, gamemath.Length(res.Position), 1e-9)
	assert.InDelta(t, cfg.Collision.DamagePerSecond*frame, res.ContactDamage, 1e-12)
}

func TestResolveCoincidentWithPlayer(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(0, 0.5), 0)
	r := newResolver(cfg, nil, a)

	res := r.Resolve(world, agentFor(a), gamemath.V(3, 3), gamemath.V(3, 3), frame)
	assert.InDelta(t, cfg.Collision.CollisionDistance, gamemath.Distance(res.Position, gamemath.V(3, 3)), 1e-9)
}

func TestResolveMassDominance(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	heavy := createEnemy(t, world, "Walker", gamemath.V(0, 0), 2.0)
	light := createEnemy(t, world, "Walker", gamemath.V(1, 0), 1.0)
	r := newResolver(cfg, nil, heavy, light)

	res := r.Resolve(world, agentFor(heavy), gamemath.V(0.5, 0), gamemath.V(100, 100), frame)

	// Light enemy shoved by half the heavy one's movement
	assert.InDelta(t, 1.25, components.Position.Get(light).X, 1e-9)
	assert.InDelta(t, 0, components.Position.Get(light).Y, 1e-9)

	// Heavy enemy keeps 80% of its intended position
	assert.InDelta(t, 0.44, res.Position.X, 1e-9)
	assert.Equal(t, 1, res.Displaced)
}

func TestResolveEqualMassIsSymmetric(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(0, 0), 1.0)
	b := createEnemy(t, world, "Walker", gamemath.V(1, 0), 1.0)
	r := newResolver(cfg, nil, a, b)

	intended := gamemath.V(0.5, 0)
	res := r.Resolve(world, agentFor(a), intended, gamemath.V(100, 100), frame)
	bPos := components.Position.Get(b).Vec2

	assert.InDelta(t, 0.35, res.Position.X, 1e-9)
	assert.InDelta(t, 1.15, bPos.X, 1e-9)
	assert.InDelta(t, intended.X-res.Position.X, bPos.X-1, 1e-9)
	assert.GreaterOrEqual(t, gamemath.Distance(res.Position, bPos), cfg.Collision.EnemyCollisionDistance/2)
}

func TestResolveSameIntendedPoint(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(-0.5, 0), 1.0)
	b := createEnemy(t, world, "Walker", gamemath.V(0, 0), 1.0)
	r := newResolver(cfg, nil, a, b)

	res := r.Resolve(world, agentFor(a), gamemath.V(0, 0), gamemath.V(100, 100), frame)
	bPos := components.Position.Get(b).Vec2

	assert.GreaterOrEqual(t, gamemath.Distance(res.Position, bPos), cfg.Collision.EnemyCollisionDistance/2)
}

func TestResolveIgnoresDeadNeighbours(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(0, 0), 1.0)
	b := createEnemy(t, world, "Walker", gamemath.V(0.6, 0), 1.0)
	r := newResolver(cfg, nil, a, b)
	components.Health.Get(b).Current = 0

	res := r.Resolve(world, agentFor(a), gamemath.V(0.5, 0), gamemath.V(100, 100), frame)
	assert.Equal(t, gamemath.V(0.5, 0), res.Position)
	assert.Equal(t, gamemath.V(0.6, 0), components.Position.Get(b).Vec2)
}

func TestResolveObstacleOrdering(t *testing.T) {
	obstacles := []Obstacle{{Position: gamemath.V(0, 2), Radius: 1.5}}
	player := gamemath.V(0, 0)

	t.Run("default clamps after obstacles", func(t *testing.T) {
		cfg := config.Default()
		world := donburi.NewWorld()
		a := createEnemy(t, world, "Walker", gamemath.V(0, 1.2), 0)
		r := newResolver(cfg, obstacles, a)

		res := r.Resolve(world, agentFor(a), gamemath.V(0, 1.15), player, frame)
		assert.GreaterOrEqual(t, gamemath.Distance(res.Position, player), cfg.Collision.CollisionDistance-1e-9)
	})

	t.Run("legacy leaves the obstacle push last", func(t *testing.T) {
		cfg := config.Default()
		cfg.Collision.LegacyObstacleOrdering = true
		world := donburi.NewWorld()
		a := createEnemy(t, world, "Walker", gamemath.V(0, 1.2), 0)
		r := newResolver(cfg, obstacles, a)

		res := r.Resolve(world, agentFor(a), gamemath.V(0, 1.15), player, frame)
		assert.InDelta(t, 1.51, gamemath.Distance(res.Position, gamemath.V(0, 2)), 1e-9)
		assert.Less(t, gamemath.Distance(res.Position, player), cfg.Collision.CollisionDistance)
	})
}

func TestResolveUsesHooks(t *testing.T) {
	cfg := config.Default()
	world := donburi.NewWorld()
	a := createEnemy(t, world, "Walker", gamemath.V(0, 1.02), 0)
	grid := NewSpatialIndex(cfg.Spatial)
	grid.Rebuild([]*donburi.Entry{a})

	calls := 0
	r := NewCollisionResolver(cfg.Collision, grid, nil, Hooks{
		CheckCollision: func(a, b gamemath.Vec, threshold float64) bool {
			calls++
			return gamemath.CheckCollision(a, b, threshold)
		},
	})
	r.Resolve(world, agentFor(a), gamemath.V(0, 0.97), gamemath.V(0, 0), frame)
	assert.Positive(t, calls)
}

func TestPlayerDistanceHoldsEveryFrame(t *testing.T) {
	obstacles := []Obstacle{
		{Position: gamemath.V(2, 0), Radius: 1.5},
		{Position: gamemath.V(0, -2.5), Radius: 1},
	}
	sim := newTestSimulation(t, obstacles)
	minDist := config.Default().Collision.CollisionDistance

	types := []string{"Walker", "Runner", "Brute", "Abomination"}
	for i := 0; i < 40; i++ {
		angle := float64(i) / 40 * 2 * math.Pi
		r := 3 + float64(i%5)
		spawn(t, sim, types[i%len(types)], r*math.Cos(angle), r*math.Sin(angle))
	}

	player := &Player{Position: gamemath.V(0, 0), Health: math.MaxFloat64, MaxHealth: math.MaxFloat64}
	for f := 0; f < 300; f++ {
		player.Position = gamemath.V(math.Sin(float64(f)/50), 0)
		sim.Update(player, frame)
		sim.Each(func(e EnemyView) {
			assert.GreaterOrEqual(t, gamemath.Distance(e.Position, player.Position), minDist-1e-9,
				"frame %d enemy %v", f, e.ID)
		})
	}
}
