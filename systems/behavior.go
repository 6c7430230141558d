package systems

import (
	"math/rand"

	"github.com/automoto/horde/components"
	"github.com/automoto/horde/config"
	"github.com/automoto/horde/shared/gamemath"
	"github.com/yohamta/donburi"
)

// StepContext is what a behaviour sees of the world for one enemy step.
type StepContext struct {
	Frame        uint64
	Delta        float64
	ReferenceFPS float64
	Player       gamemath.Vec
	Aim          Aim
	Collision    config.CollisionConfig
	Rand         *rand.Rand
}

// Agent is the enemy being stepped. The data pointers write straight into the
// world's component storage.
type Agent struct {
	Entry    *donburi.Entry
	ID       donburi.Entity
	Position gamemath.Vec
	Enemy    *components.EnemyData
	State    *components.StateData
	Health   *components.HealthData
}

// Decision is what a behaviour wants to happen this frame. The driver applies
// it: moves go through collision resolution, effects are collected for the host.
type Decision struct {
	State  config.StateID
	Move   gamemath.Vec // Displacement before collision
	Facing gamemath.Vec // Direction to face, zero keeps the current heading

	Explosion  *Explosion
	Spawn      *SpawnRequest
	Ranged     *RangedAttack
	AuraDamage float64

	Remove bool
}

// Behavior steps one archetype of enemy.
type Behavior interface {
	Archetype() config.ArchetypeID
	Step(ctx *StepContext, agent *Agent) Decision
}

var (
	chaser    Behavior = chaserBehavior{}
	kiter     Behavior = kiterBehavior{}
	detonator Behavior = detonatorBehavior{}
	summoner  Behavior = summonerBehavior{}
	aura      Behavior = auraBehavior{}
)

// behaviorFor picks the behaviour from the specialisation component the entity
// carries. Plain enemies chase.
func behaviorFor(e *donburi.Entry) Behavior {
	switch {
	case e.HasComponent(components.Kiter):
		return kiter
	case e.HasComponent(components.Detonator):
		return detonator
	case e.HasComponent(components.Summoner):
		return summoner
	case e.HasComponent(components.Aura):
		return aura
	}
	return chaser
}

// moveAlong turns a unit direction into this frame's displacement. Speed is per
// reference frame, so delta is scaled by the reference rate.
func moveAlong(ctx *StepContext, agent *Agent, dir gamemath.Vec) gamemath.Vec {
	return gamemath.Scale(dir, agent.Enemy.Speed*ctx.Delta*ctx.ReferenceFPS)
}

// chaseMove steers toward the predicted aim point. Every archetype that moves
// toward the player goes through here.
func chaseMove(ctx *StepContext, agent *Agent) (move, facing gamemath.Vec) {
	dir := ctx.Aim.Direction
	return moveAlong(ctx, agent, dir), dir
}

type chaserBehavior struct{}

func (chaserBehavior) Archetype() config.ArchetypeID {
	return config.ArchetypeChaser
}

func (chaserBehavior) Step(ctx *StepContext, agent *Agent) Decision {
	move, facing := chaseMove(ctx, agent)
	return Decision{State: config.StateChasing, Move: move, Facing: facing}
}
