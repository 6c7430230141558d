package systems

import (
	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/yohamta/donburi"
)

// Resolution is the outcome of resolving one enemy's intended move.
type Resolution struct {
	Position      gamemath.Vec
	ContactDamage float64 // Damage dealt to the player on contact this frame
	Displaced     int     // Neighbours shoved by this enemy
}

// CollisionResolver turns an intended position into a committed one, resolving
// against the player, nearby enemies and static obstacles in that order.
type CollisionResolver struct {
	cfg       config.CollisionConfig
	grid      *SpatialIndex
	obstacles *ObstacleField
	hooks     Hooks

	neighbours []donburi.Entity
}

func NewCollisionResolver(cfg config.CollisionConfig, grid *SpatialIndex, obstacles *ObstacleField, hooks Hooks) *CollisionResolver {
	return &CollisionResolver{
		cfg:        cfg,
		grid:       grid,
		obstacles:  obstacles,
		hooks:      hooks,
		neighbours: make([]donburi.Entity, 0, 32),
	}
}

// Resolve moves the agent from current toward intended. Neighbours pushed by
// the agent have their stored positions updated in place.
func (r *CollisionResolver) Resolve(world donburi.World, agent *Agent, intended, player gamemath.Vec, delta float64) Resolution {
	res := Resolution{}
	current := agent.Position

	// Player
	intended = r.clampToPlayer(intended, player, agent.ID)
	if r.hooks.checkCollision(intended, player, r.cfg.DamageDistance) {
		res.ContactDamage = r.cfg.DamagePerSecond * delta * agent.Enemy.ContactDamageMultiplier
	}

	// Enemies
	intended, res.Displaced = r.resolveNeighbours(world, agent, current, intended, player)

	// Obstacles
	if r.obstacles != nil {
		intended, _ = r.obstacles.PushOut(intended, r.cfg.ObstacleEpsilon)
	}

	// The obstacle push must not put the enemy back inside the player
	if !r.cfg.LegacyObstacleOrdering {
		intended = r.clampToPlayer(intended, player, agent.ID)
	}

	res.Position = intended
	return res
}

func (r *CollisionResolver) resolveNeighbours(world donburi.World, agent *Agent, current, intended, player gamemath.Vec) (gamemath.Vec, int) {
	minDist := r.cfg.EnemyCollisionDistance
	moved := gamemath.Distance(current, intended)
	displaced := 0

	r.neighbours = r.grid.Query(intended, r.neighbours[:0])
	for _, id := range r.neighbours {
		if id == agent.ID || !world.Valid(id) {
			continue
		}
		other := world.Entry(id)
		if !indexable(other) {
			continue
		}
		otherPos := components.Position.Get(other)
		if !r.hooks.checkCollision(intended, otherPos.Vec2, minDist) {
			continue
		}

		// Axis from the neighbour toward us; stacked enemies get a fixed
		// per-entity direction instead
		axis := gamemath.Normalize(gamemath.Sub(intended, otherPos.Vec2))
		if axis == (gamemath.Vec{}) {
			axis = gamemath.FallbackDirection(uint64(agent.ID))
		}
		pushedAway := r.separate(intended, otherPos.Vec2, minDist, axis)
		otherMass := components.Enemy.Get(other).Mass

		var next gamemath.Vec
		if agent.Enemy.Mass > otherMass*r.cfg.MassDominanceRatio {
			// Heavy enemies shove lighter ones and barely deflect
			next = gamemath.Add(otherPos.Vec2, gamemath.Scale(axis, -moved*r.cfg.PushShare))
			intended = gamemath.Lerp(pushedAway, intended, r.cfg.DominantBlend)
		} else {
			away := r.separate(otherPos.Vec2, intended, minDist, gamemath.Scale(axis, -1))
			next = gamemath.Lerp(otherPos.Vec2, away, 0.5)
			intended = gamemath.Lerp(intended, pushedAway, 0.5)
		}

		if next != otherPos.Vec2 {
			otherPos.Vec2 = r.clampToPlayer(next, player, id)
			displaced++
		}
	}
	return intended, displaced
}

// clampToPlayer keeps pos at least CollisionDistance from the player.
func (r *CollisionResolver) clampToPlayer(pos, player gamemath.Vec, id donburi.Entity) gamemath.Vec {
	if !r.hooks.checkCollision(pos, player, r.cfg.CollisionDistance) {
		return pos
	}
	return r.separate(pos, player, r.cfg.CollisionDistance, gamemath.FallbackDirection(uint64(id)))
}

// separate pushes pos out to minDist from `from`, using fallback as the
// direction when the two points coincide.
func (r *CollisionResolver) separate(pos, from gamemath.Vec, minDist float64, fallback gamemath.Vec) gamemath.Vec {
	if pos == from {
		return gamemath.Add(from, gamemath.Scale(fallback, minDist))
	}
	return r.hooks.pushAway(pos, from, minDist)
}
